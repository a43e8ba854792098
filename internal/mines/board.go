package mines

import (
	"fmt"
	"iter"
)

// Point addresses a cell by zero-based row and column.
type Point struct {
	Row, Col int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

type Cell struct {
	IsRevealed    bool
	IsMine        bool
	IsFlagged     bool
	AdjacentMines int
}

// Board is a square grid of cells stored row-major in a single slice.
// Every cell is its own value, so writing through one index never shows up
// at another.
type Board struct {
	Size  int
	Cells []Cell
}

func newBoard(size int) Board {
	return Board{
		Size:  size,
		Cells: make([]Cell, size*size),
	}
}

func (b Board) InBounds(row, col int) bool {
	return 0 <= row && row < b.Size && 0 <= col && col < b.Size
}

// At returns a copy of the cell at row:col. It panics when out of bounds.
func (b Board) At(row, col int) Cell {
	return b.Cells[row*b.Size+col]
}

func (b *Board) cell(p Point) *Cell {
	return &b.Cells[p.Row*b.Size+p.Col]
}

func (b Board) Clone() Board {
	cells := make([]Cell, len(b.Cells))
	copy(cells, b.Cells)
	return Board{Size: b.Size, Cells: cells}
}

// neighbors yields the up to 8 cells around p, clipped at the edges.
func (b Board) neighbors(p Point) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				n := Point{p.Row + dr, p.Col + dc}
				if b.InBounds(n.Row, n.Col) && !yield(n) {
					return
				}
			}
		}
	}
}

func (b Board) countMines() (count int) {
	for _, c := range b.Cells {
		if c.IsMine {
			count++
		}
	}
	return
}

func (b Board) countRevealedSafe() (count int) {
	for _, c := range b.Cells {
		if c.IsRevealed && !c.IsMine {
			count++
		}
	}
	return
}

func (b Board) countFlags() (count int) {
	for _, c := range b.Cells {
		if c.IsFlagged {
			count++
		}
	}
	return
}
