package mines

import (
	"fmt"
)

const (
	DefaultSize      = 8
	DefaultMineCount = 10
	MaxSize          = 100
)

type GameParams struct {
	Size      int `json:"size"`
	MineCount int `json:"mine_count"`
	// When set, mines are placed after the first reveal and never under it.
	// Otherwise they are placed as soon as the board is created.
	FirstClickSafe bool `json:"first_click_safe"`
}

func DefaultParams() GameParams {
	return GameParams{
		Size:           DefaultSize,
		MineCount:      DefaultMineCount,
		FirstClickSafe: true,
	}
}

func (p GameParams) Cells() int {
	return p.Size * p.Size
}

// SafeCells is the number of cells that have to be revealed to win.
func (p GameParams) SafeCells() int {
	return p.Cells() - p.MineCount
}

// Validate rejects parameters the mine placer could not satisfy.
func (p GameParams) Validate() error {
	switch {
	case p.Size < 1:
		return &ConfigError{"size", "must be positive"}
	case p.Size > MaxSize:
		return &ConfigError{"size", fmt.Sprintf("must not exceed %d", MaxSize)}
	case p.MineCount < 0:
		return &ConfigError{"mine_count", "must not be negative"}
	case p.MineCount >= p.Cells()-1:
		return &ConfigError{
			"mine_count",
			fmt.Sprintf("must be less than %d for a %dx%d board", p.Cells()-1, p.Size, p.Size),
		}
	}
	return nil
}

// String encodes the parameters as size:mines:safe, e.g. "8:10:1".
func (p GameParams) String() string {
	u := 0
	if p.FirstClickSafe {
		u = 1
	}
	return fmt.Sprintf("%d:%d:%d", p.Size, p.MineCount, u)
}
