package mines

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// armedGame returns a game past its first move with mines at the given
// points.
func armedGame(size int, mines ...Point) *Game {
	return &Game{
		params: GameParams{Size: size, MineCount: len(mines), FirstClickSafe: true},
		board:  boardWithMines(size, mines...),
		status: InProgress,
		rnd:    rand.New(rand.NewPCG(1, 2)),
	}
}

func newTestGame(t *testing.T, seed uint64) *Game {
	t.Helper()
	g, err := NewGame(DefaultParams(), rand.New(rand.NewPCG(seed, seed+1)))
	require.NoError(t, err)
	return g
}

func TestNewGameValidatesParams(t *testing.T) {
	tests := []struct {
		name   string
		params GameParams
		valid  bool
	}{
		{"default", DefaultParams(), true},
		{"no mines", GameParams{Size: 8, MineCount: 0}, true},
		{"densest", GameParams{Size: 8, MineCount: 62}, true},
		{"one cell left", GameParams{Size: 8, MineCount: 63}, false},
		{"full", GameParams{Size: 8, MineCount: 64}, false},
		{"negative mines", GameParams{Size: 8, MineCount: -1}, false},
		{"zero size", GameParams{Size: 0, MineCount: 0}, false},
		{"single cell", GameParams{Size: 1, MineCount: 0}, false},
		{"too large", GameParams{Size: MaxSize + 1, MineCount: 10}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g, err := NewGame(test.params, nil)
			if test.valid {
				require.NoError(t, err)
				assert.NotNil(t, g)
				return
			}
			require.Error(t, err)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, ErrInvalidConfiguration))

			var cerr *ConfigError
			assert.True(t, errors.As(err, &cerr))
		})
	}
}

func TestNewGameInitialState(t *testing.T) {
	g := newTestGame(t, 1)
	snap := g.Snapshot()

	assert.Equal(t, InProgress, snap.Status)
	assert.True(t, snap.FirstMovePending)
	assert.Equal(t, DefaultParams(), snap.Params)
	assert.Len(t, snap.Board.Cells, 64)
	for _, c := range snap.Board.Cells {
		assert.Equal(t, Cell{}, c)
	}
	assert.Equal(t, DefaultMineCount, g.MinesRemaining())
}

func TestFirstReveal(t *testing.T) {
	g := newTestGame(t, 42)

	require.True(t, g.Reveal(0, 0))

	snap := g.Snapshot()
	assert.False(t, snap.FirstMovePending)
	assert.Equal(t, DefaultMineCount, snap.Board.countMines())

	first := snap.Board.At(0, 0)
	assert.False(t, first.IsMine)
	assert.True(t, first.IsRevealed)

	for row := range DefaultSize {
		for col := range DefaultSize {
			p := Point{row, col}
			c := snap.Board.At(row, col)
			if !c.IsMine {
				assert.Equal(t, countAdjacent(&snap.Board, p), c.AdjacentMines, "cell %s", p)
			}
		}
	}

	if first.AdjacentMines == 0 {
		for n := range snap.Board.neighbors(Point{0, 0}) {
			assert.True(t, snap.Board.cell(n).IsRevealed, "neighbour %s", n)
		}
	}

	if snap.Board.countRevealedSafe() < DefaultParams().SafeCells() {
		assert.Equal(t, InProgress, snap.Status)
	} else {
		assert.Equal(t, Won, snap.Status)
	}
}

func TestFirstRevealIsNeverAMine(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(9, 10))
	for i := range 500 {
		g, err := NewGame(GameParams{Size: 8, MineCount: 62, FirstClickSafe: true}, r)
		require.NoError(t, err)

		row, col := i%8, (i/8)%8
		g.Reveal(row, col)

		require.NotEqual(t, Lost, g.Status(), "lost on first reveal at %d:%d", row, col)
		assert.Equal(t, 62, g.Snapshot().Board.countMines())
	}
}

func TestMinesArePlacedOnce(t *testing.T) {
	g := newTestGame(t, 3)
	g.Reveal(4, 4)
	before := g.Snapshot()

	for row := range DefaultSize {
		for col := range DefaultSize {
			if g.Status().Over() {
				break
			}
			if c := before.Board.At(row, col); !c.IsMine && !c.IsRevealed {
				g.Reveal(row, col)
			}
		}
	}

	after := g.Snapshot()
	for i := range before.Board.Cells {
		assert.Equal(t, before.Board.Cells[i].IsMine, after.Board.Cells[i].IsMine)
		assert.Equal(t, before.Board.Cells[i].AdjacentMines, after.Board.Cells[i].AdjacentMines)
	}
}

func TestFlagBeforeFirstMoveIsIgnored(t *testing.T) {
	g := newTestGame(t, 1)

	assert.False(t, g.ToggleFlag(3, 3))
	assert.False(t, g.Snapshot().Board.At(3, 3).IsFlagged)
	assert.True(t, g.FirstMovePending())
}

func TestToggleFlagTwice(t *testing.T) {
	g := armedGame(DefaultSize, Point{7, 7})

	require.True(t, g.ToggleFlag(5, 5))
	assert.True(t, g.Snapshot().Board.At(5, 5).IsFlagged)
	assert.Equal(t, 1, g.FlagsPlaced())
	assert.Equal(t, 0, g.MinesRemaining())

	require.True(t, g.ToggleFlag(5, 5))
	assert.False(t, g.Snapshot().Board.At(5, 5).IsFlagged)
	assert.Equal(t, 1, g.MinesRemaining())
}

func TestToggleFlagOnOpenCellIsIgnored(t *testing.T) {
	g := armedGame(DefaultSize, Point{7, 7})
	require.True(t, g.Reveal(6, 6))

	assert.False(t, g.ToggleFlag(6, 6))
	assert.False(t, g.Snapshot().Board.At(6, 6).IsFlagged)
}

func TestRevealFlaggedCellIsIgnored(t *testing.T) {
	g := armedGame(DefaultSize, Point{7, 7})
	require.True(t, g.ToggleFlag(0, 0))
	before := g.Snapshot()

	assert.False(t, g.Reveal(0, 0))
	assert.Equal(t, before, g.Snapshot())
}

func TestRevealOpenCellIsIgnored(t *testing.T) {
	g := armedGame(DefaultSize, Point{0, 0})
	require.True(t, g.Reveal(1, 1))
	before := g.Snapshot()

	assert.False(t, g.Reveal(1, 1))
	assert.Equal(t, before, g.Snapshot())
}

func TestOutOfRangeIsIgnored(t *testing.T) {
	g := armedGame(DefaultSize, Point{0, 0})
	before := g.Snapshot()

	for _, p := range []Point{{-1, 0}, {0, -1}, {8, 0}, {0, 8}} {
		assert.False(t, g.Reveal(p.Row, p.Col))
		assert.False(t, g.ToggleFlag(p.Row, p.Col))
	}
	assert.Equal(t, before, g.Snapshot())
}

func TestRevealMineLoses(t *testing.T) {
	g := armedGame(DefaultSize, Point{2, 2}, Point{5, 5})
	require.True(t, g.ToggleFlag(0, 7))

	require.True(t, g.Reveal(2, 2))

	assert.Equal(t, Lost, g.Status())
	assert.True(t, g.Snapshot().Board.At(2, 2).IsRevealed)

	before := g.Snapshot()
	assert.False(t, g.Reveal(0, 0))
	assert.False(t, g.Reveal(5, 5))
	assert.False(t, g.ToggleFlag(1, 1))
	assert.False(t, g.ToggleFlag(0, 7))
	assert.Equal(t, before, g.Snapshot())
}

func TestWinBySingleFlood(t *testing.T) {
	g := armedGame(3, Point{0, 0})

	require.True(t, g.Reveal(2, 2))

	assert.Equal(t, Won, g.Status())
	assert.Equal(t, 8, g.Snapshot().Board.countRevealedSafe())
	assert.False(t, g.Reveal(0, 0))
}

func TestWinAfterAllSafeCells(t *testing.T) {
	g := newTestGame(t, 11)
	g.Reveal(0, 0)
	layout := g.Snapshot().Board
	safe := DefaultParams().SafeCells()
	require.Equal(t, 54, safe)

	for row := range DefaultSize {
		for col := range DefaultSize {
			if layout.At(row, col).IsMine {
				continue
			}
			g.Reveal(row, col)

			if g.Snapshot().Board.countRevealedSafe() < safe {
				require.Equal(t, InProgress, g.Status())
			}
		}
	}

	assert.Equal(t, Won, g.Status())
	assert.Equal(t, safe, g.Snapshot().Board.countRevealedSafe())
}

func TestZeroMinesWinOnFirstReveal(t *testing.T) {
	g, err := NewGame(GameParams{Size: 5, MineCount: 0, FirstClickSafe: true}, nil)
	require.NoError(t, err)

	require.True(t, g.Reveal(2, 2))

	assert.Equal(t, Won, g.Status())
	for _, c := range g.Snapshot().Board.Cells {
		assert.True(t, c.IsRevealed)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	g := armedGame(DefaultSize, Point{0, 0})
	snap := g.Snapshot()

	snap.Board.Cells[10].IsRevealed = true
	snap.Board.Cells[0].IsFlagged = true

	fresh := g.Snapshot()
	assert.False(t, fresh.Board.Cells[10].IsRevealed)
	assert.False(t, fresh.Board.Cells[0].IsFlagged)
}

func TestReset(t *testing.T) {
	g := newTestGame(t, 5)
	g.Reveal(3, 3)
	g.ToggleFlag(0, 0)

	g.Reset()

	snap := g.Snapshot()
	assert.Equal(t, InProgress, snap.Status)
	assert.True(t, snap.FirstMovePending)
	for _, c := range snap.Board.Cells {
		assert.Equal(t, Cell{}, c)
	}
}

func TestResetAfterLoss(t *testing.T) {
	g := armedGame(DefaultSize, Point{1, 1})
	g.Reveal(1, 1)
	require.Equal(t, Lost, g.Status())

	g.Reset()

	assert.Equal(t, InProgress, g.Status())
	assert.True(t, g.Reveal(4, 4))
}

func TestClassicModePlacesMinesUpfront(t *testing.T) {
	params := GameParams{Size: 8, MineCount: 10, FirstClickSafe: false}
	g, err := NewGame(params, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	snap := g.Snapshot()
	assert.Equal(t, 10, snap.Board.countMines())
	assert.True(t, snap.FirstMovePending)
	assert.False(t, g.ToggleFlag(0, 0))

	g.Reset()
	assert.Equal(t, 10, g.Snapshot().Board.countMines())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "in_progress", InProgress.String())
	assert.Equal(t, "lost", Lost.String())
	assert.Equal(t, "won", Won.String())

	text, err := Won.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "won", string(text))
}
