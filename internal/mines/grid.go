package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// CellState is what a player is allowed to see of a cell.
type CellState int8

const (
	Unknown       CellState = -2
	Flag          CellState = -1
	CorrectFlag   CellState = 64 // post-game-over
	ExplodedMine  CellState = 65
	WrongFlag     CellState = 66
	UnflaggedMine CellState = 67
	// 0-8 for an open cell with that many mined neighbours
)

func (s CellState) String() string {
	switch s {
	case Unknown:
		return "-"
	case Flag, CorrectFlag:
		return "F"
	case WrongFlag:
		return "x"
	case ExplodedMine:
		return "*"
	case UnflaggedMine:
		return "o"
	case 0:
		return "."
	case 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

// View renders the snapshot for a player. While the game is running,
// covered cells only show as unknown or flagged. Once it is over the mines
// and the flag verdicts are uncovered too.
func (s Snapshot) View() Grid {
	over := s.Status.Over()
	grid := make(Grid, len(s.Board.Cells))
	for i, c := range s.Board.Cells {
		switch {
		case c.IsRevealed && c.IsMine:
			grid[i] = ExplodedMine
		case c.IsRevealed:
			grid[i] = CellState(c.AdjacentMines)
		case !over && c.IsFlagged:
			grid[i] = Flag
		case !over:
			grid[i] = Unknown
		case c.IsFlagged && c.IsMine:
			grid[i] = CorrectFlag
		case c.IsFlagged:
			grid[i] = WrongFlag
		case c.IsMine:
			grid[i] = UnflaggedMine
		default:
			grid[i] = Unknown
		}
	}
	return grid
}
