package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-core/internal/command"
	"github.com/vancomm/minesweeper-core/internal/mines"
)

const playHelp = `commands:
	o R C  reveal the cell at row R, column C
	f R C  toggle a flag on the cell at row R, column C
	n      new game
	g      show the board
	q      quit
`

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, map[string]string{
			"game.size":       "size",
			"game.mine_count": "mines",
		})
		if err != nil {
			return err
		}

		params := cfg.Game.Params()
		flags := cmd.Flags()
		if flags.Changed("classic") {
			classic, _ := flags.GetBool("classic")
			params.FirstClickSafe = !classic
		}

		var rnd *rand.Rand
		if seed, _ := flags.GetUint64("seed"); seed != 0 {
			rnd = rand.New(rand.NewPCG(seed, seed))
		}
		game, err := mines.NewGame(params, rnd)
		if err != nil {
			return err
		}

		snapshotsDir, _ := flags.GetString("snapshots-dir")
		return runPlay(cmd.InOrStdin(), cmd.OutOrStdout(), game, snapshotsDir, time.Now)
	},
}

func init() {
	def := mines.DefaultParams()
	flags := playCmd.Flags()
	flags.IntP("size", "s", def.Size, "board side length, in cells")
	flags.IntP("mines", "m", def.MineCount, "number of mines to place")
	flags.Bool("classic", false, "place mines before the first reveal, which may then lose")
	flags.Uint64("seed", 0, "random seed; 0 picks one")
	flags.String("snapshots-dir", "", "directory to save finished boards to")
}

func printGame(out io.Writer, snap mines.Snapshot) {
	fmt.Fprintf(out, "\n%s", snap.View().ToString(snap.Params.Size))
	switch snap.Status {
	case mines.Won:
		fmt.Fprintln(out, "you won!")
	case mines.Lost:
		fmt.Fprintln(out, "boom, you lost")
	default:
		fmt.Fprintf(out, "mines left: %d\n", snap.MinesRemaining())
	}
}

// runPlay reads commands from in until it is exhausted or the player quits,
// printing the board after every command.
func runPlay(
	in io.Reader,
	out io.Writer,
	game *mines.Game,
	snapshotsDir string,
	now func() time.Time,
) error {
	fmt.Fprint(out, playHelp)
	printGame(out, game.Snapshot())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "q" {
			return nil
		}

		c, err := command.Parse(line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		wasOver := game.Status().Over()
		if _, err := c.Apply(game); err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		snap := game.Snapshot()
		printGame(out, snap)

		if !wasOver && snap.Status.Over() && snapshotsDir != "" {
			path, err := writeSnapshot(snapshotsDir, snap, now())
			if err != nil {
				log.WithError(err).Error("unable to save board")
				continue
			}
			fmt.Fprintf(out, "board saved to %s\n", path)
		}
	}
}

func writeSnapshot(dir string, snap mines.Snapshot, at time.Time) (string, error) {
	text, err := snap.Export().Serialize()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	result := "loss"
	if snap.Status == mines.Won {
		result = "win"
	}
	path := filepath.Join(dir, at.Format("20060102_150405")+"_"+result+".yaml")
	return path, os.WriteFile(path, []byte(text), 0o644)
}
