package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-core/internal/config"
)

var (
	log = logrus.New()

	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "mines",
	Short: "Minesweeper rule engine with a terminal player and an HTTP host",
	Long: `mines runs single-player Minesweeper games.

Play in the terminal
	mines play --size 9 --mines 10

Serve games over HTTP and websockets
	mines serve --addr :8080
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	const usage = "config file path (yaml, json or toml)"
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", usage)

	rootCmd.AddCommand(serveCmd, playCmd)
}

// loadConfig reads the configuration with the given flags of cmd bound
// over it, validates it and sets up logging.
func loadConfig(cmd *cobra.Command, bindings map[string]string) (*config.Config, error) {
	cfg, err := config.Load(configPath, cmd.Flags(), bindings)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := setupLogging(cfg); err != nil {
		return nil, err
	}

	log.Debug("starting up, mode = ", cfg.Mode)
	log.WithFields(cfg.Fields()).Debug("config")

	return cfg, nil
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if err := rootCmd.ExecuteContext(mainCtx); err != nil {
		log.Error(err)
		stop()
		os.Exit(1)
	}
}
