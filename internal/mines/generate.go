package mines

import (
	"math/rand/v2"
)

// placeMines scatters count mines over b by rejection sampling: pick a
// uniformly random cell and accept it unless it is the excluded cell or
// already mined. There is no cap on retries; GameParams.Validate keeps
// count below the number of candidate cells. Only IsMine is written.
func placeMines(b *Board, count int, exclude *Point, r *rand.Rand) {
	placed := 0
	for placed < count {
		p := Point{r.IntN(b.Size), r.IntN(b.Size)}
		if exclude != nil && p == *exclude {
			continue
		}
		c := b.cell(p)
		if c.IsMine {
			continue
		}
		c.IsMine = true
		placed++
	}
}
