package mines

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Status int8

const (
	InProgress Status = iota
	Lost
	Won
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Lost:
		return "lost"
	case Won:
		return "won"
	default:
		return fmt.Sprintf("Status(%d)", int8(s))
	}
}

// [Status] implements [encoding.TextMarshaler]
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s Status) Over() bool {
	return s == Lost || s == Won
}

// Game owns one board and its state machine. It is not safe for concurrent
// use; callers serialise access.
type Game struct {
	params           GameParams
	board            Board
	status           Status
	firstMovePending bool
	rnd              *rand.Rand
}

// Snapshot is a deep copy of a game, detached from the engine.
type Snapshot struct {
	Params           GameParams
	Board            Board
	Status           Status
	FirstMovePending bool
}

func NewGame(params GameParams, r *rand.Rand) (*Game, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	g := &Game{
		params: params,
		rnd:    r,
	}
	g.Reset()
	return g, nil
}

// Reset throws the current board away and starts over with the same
// parameters.
func (g *Game) Reset() {
	g.board = newBoard(g.params.Size)
	g.status = InProgress
	g.firstMovePending = true

	if !g.params.FirstClickSafe {
		g.layMines(nil)
	}
}

func (g *Game) layMines(exclude *Point) {
	placeMines(&g.board, g.params.MineCount, exclude, g.rnd)
	fillAdjacency(&g.board)

	fields := logrus.Fields{"params": g.params.String()}
	if exclude != nil {
		fields["safe"] = exclude.String()
	}
	Log.WithFields(fields).Debug("mines placed")
}

// Reveal opens the cell at row:col and reports whether anything changed.
// Out of range coordinates, flagged or open cells and finished games are
// ignored. The first reveal of a game places the mines.
func (g *Game) Reveal(row, col int) bool {
	if g.status.Over() || !g.board.InBounds(row, col) {
		return false
	}
	p := Point{row, col}
	c := g.board.cell(p)
	if c.IsFlagged || c.IsRevealed {
		return false
	}

	if g.firstMovePending {
		if g.params.FirstClickSafe {
			g.layMines(&p)
		}
		g.firstMovePending = false
	}

	switch {
	case c.IsMine:
		c.IsRevealed = true
		g.status = Lost
		Log.WithField("cell", p.String()).Debug("mine revealed, game lost")
		return true
	case c.AdjacentMines == 0:
		opened := floodReveal(&g.board, p)
		Log.WithFields(logrus.Fields{
			"cell":   p.String(),
			"opened": opened,
		}).Debug("flood reveal")
	default:
		c.IsRevealed = true
	}

	if g.board.countRevealedSafe() == g.params.SafeCells() {
		g.status = Won
		Log.WithField("params", g.params.String()).Debug("game won")
	}
	return true
}

// ToggleFlag flips the flag on a covered cell. Flags are refused before the
// first reveal, since there are no mines to mark yet.
func (g *Game) ToggleFlag(row, col int) bool {
	if g.status.Over() || g.firstMovePending || !g.board.InBounds(row, col) {
		return false
	}
	c := g.board.cell(Point{row, col})
	if c.IsRevealed {
		return false
	}
	c.IsFlagged = !c.IsFlagged
	return true
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Params:           g.params,
		Board:            g.board.Clone(),
		Status:           g.status,
		FirstMovePending: g.firstMovePending,
	}
}

func (g *Game) Params() GameParams {
	return g.params
}

func (g *Game) Status() Status {
	return g.status
}

func (g *Game) FirstMovePending() bool {
	return g.firstMovePending
}

func (g *Game) InBounds(row, col int) bool {
	return g.board.InBounds(row, col)
}

func (g *Game) FlagsPlaced() int {
	return g.board.countFlags()
}

// MinesRemaining is the mine count minus the flags placed. It goes negative
// when the player over-flags.
func (g *Game) MinesRemaining() int {
	return g.params.MineCount - g.board.countFlags()
}

func (s Snapshot) MinesRemaining() int {
	return s.Params.MineCount - s.Board.countFlags()
}
