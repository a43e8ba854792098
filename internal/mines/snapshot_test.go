package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExport(t *testing.T) {
	g := armedGame(3, Point{0, 0}, Point{2, 2})
	g.ToggleFlag(0, 0)
	g.ToggleFlag(0, 1)
	g.Reveal(1, 1)
	g.Reveal(2, 2)

	export := g.Snapshot().Export()

	assert.Equal(t, "3:2:1", export.Params)
	assert.Equal(t, "lost", export.Status)
	assert.Equal(t, []string{
		"Ff#",
		"#2#",
		"##*",
	}, export.Board)
}

func TestExportSerialize(t *testing.T) {
	g := armedGame(3, Point{0, 0})
	g.Reveal(2, 2)

	out, err := g.Snapshot().Export().Serialize()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "won", doc["status"])
	assert.Equal(t, []any{"O1.", "11.", "..."}, doc["board"])
}
