package mines

// countAdjacent returns the number of mines around p. The cell itself is
// not counted.
func countAdjacent(b *Board, p Point) int {
	n := 0
	for q := range b.neighbors(p) {
		if b.cell(q).IsMine {
			n++
		}
	}
	return n
}

// fillAdjacency stores the neighbour mine count in every cell. It runs once,
// right after the mines are placed; the layout never changes afterwards.
func fillAdjacency(b *Board) {
	for row := range b.Size {
		for col := range b.Size {
			p := Point{row, col}
			b.cell(p).AdjacentMines = countAdjacent(b, p)
		}
	}
}
