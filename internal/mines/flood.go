package mines

import "github.com/gammazero/deque"

// floodReveal opens start and, while the opened cells have no neighbouring
// mines, everything connected to it. Numbered cells are opened but do not
// spread further. Flagged cells are left alone. Returns how many cells were
// opened.
func floodReveal(b *Board, start Point) (opened int) {
	queue := deque.New[Point]()
	queue.PushBack(start)

	for queue.Len() > 0 {
		p := queue.PopFront()
		c := b.cell(p)

		// Already visited, or flagged
		if c.IsRevealed || c.IsFlagged {
			continue
		}

		c.IsRevealed = true
		opened++

		if c.AdjacentMines != 0 {
			continue
		}
		for n := range b.neighbors(p) {
			if nc := b.cell(n); !nc.IsRevealed && !nc.IsFlagged {
				queue.PushBack(n)
			}
		}
	}

	return
}
