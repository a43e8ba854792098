package mines

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// BoardExport is the on-disk form of a finished (or running) board.
type BoardExport struct {
	Params string   `yaml:"params"`
	Status string   `yaml:"status"`
	Board  []string `yaml:"board"`
}

func exportCell(c Cell) string {
	switch {
	case c.IsMine:
		switch {
		case c.IsRevealed:
			return "*"
		case c.IsFlagged:
			return "F"
		default:
			return "O"
		}
	case c.IsFlagged:
		return "f"
	case c.IsRevealed:
		if c.AdjacentMines == 0 {
			return "."
		}
		return strconv.Itoa(c.AdjacentMines)
	default:
		return "#"
	}
}

// Export lays the whole board out, mines included, one string per row.
func (s Snapshot) Export() BoardExport {
	rows := make([]string, s.Board.Size)
	for row := range s.Board.Size {
		var b strings.Builder
		for col := range s.Board.Size {
			b.WriteString(exportCell(s.Board.At(row, col)))
		}
		rows[row] = b.String()
	}
	return BoardExport{
		Params: s.Params.String(),
		Status: s.Status.String(),
		Board:  rows,
	}
}

func (e BoardExport) Serialize() (string, error) {
	out, err := yaml.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
