// Package command parses the line protocol shared by the batch endpoint,
// the websocket stream and the terminal player:
//
//	g      // get state, changes nothing
//	o R C  // reveal the cell at row R, column C
//	f R C  // toggle a flag at row R, column C
//	n      // start a new game with the same parameters
package command

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-core/internal/mines"
)

var (
	ErrEmpty          = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgCount       = errors.New("invalid number of arguments")
	ErrBadArgument    = errors.New("arguments must be integers")
	ErrBadCoordinates = errors.New("invalid cell coordinates")
)

type Kind int

const (
	Get Kind = iota
	Open
	Flag
	NewGame
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"n": 0,
}

var commandKinds = map[string]Kind{
	"g": Get,
	"o": Open,
	"f": Flag,
	"n": NewGame,
}

type Command struct {
	Kind     Kind
	Row, Col int
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		return 0, 0, fmt.Errorf("%w: row %q", ErrBadArgument, twoStrings[0])
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		return 0, 0, fmt.Errorf("%w: column %q", ErrBadArgument, twoStrings[1])
	}
	return
}

func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, ErrEmpty
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return Command{}, ErrArgCount
	}
	c := Command{Kind: commandKinds[parts[0]]}
	if nargs == 2 {
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return Command{}, err
		}
		c.Row, c.Col = row, col
	}
	return c, nil
}

// Check reports whether the command fits a game with the given parameters.
func (c Command) Check(params mines.GameParams) error {
	if c.Kind != Open && c.Kind != Flag {
		return nil
	}
	if c.Row < 0 || c.Row >= params.Size || c.Col < 0 || c.Col >= params.Size {
		return fmt.Errorf("%w: %d:%d", ErrBadCoordinates, c.Row, c.Col)
	}
	return nil
}

// Apply runs the command against g and reports whether the game changed.
func (c Command) Apply(g *mines.Game) (bool, error) {
	if err := c.Check(g.Params()); err != nil {
		return false, err
	}
	switch c.Kind {
	case Open:
		return g.Reveal(c.Row, c.Col), nil
	case Flag:
		return g.ToggleFlag(c.Row, c.Col), nil
	case NewGame:
		g.Reset()
		return true, nil
	}
	return false, nil
}

func (c Command) String() string {
	switch c.Kind {
	case Open:
		return fmt.Sprintf("o %d %d", c.Row, c.Col)
	case Flag:
		return fmt.Sprintf("f %d %d", c.Row, c.Col)
	case NewGame:
		return "n"
	default:
		return "g"
	}
}

// Lines yields the pieces of s separated by newlines, numbered from 0.
func Lines(s string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, "\n")
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

// BatchError points at the line of a batch that could not be used. Lines
// are numbered from 1.
type BatchError struct {
	Line int
	Err  error
}

// [BatchError] implements [error]
func (e *BatchError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// ApplyBatch runs every command in text, one per line, in order. Blank lines
// are skipped. All lines are parsed and checked before anything runs, so a
// malformed batch leaves g untouched. Interpretation stops as soon as a
// command ends the game.
func ApplyBatch(g *mines.Game, text string) error {
	var cmds []Command
	for i, line := range Lines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		c, err := Parse(line)
		if err == nil {
			err = c.Check(g.Params())
		}
		if err != nil {
			return &BatchError{Line: i + 1, Err: err}
		}
		cmds = append(cmds, c)
	}

	for _, c := range cmds {
		if _, err := c.Apply(g); err != nil {
			return err
		}
		if g.Status().Over() {
			break
		}
	}
	return nil
}
