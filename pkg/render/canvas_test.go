package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/convograph/pkg/graph"
	"github.com/dd0wney/convograph/pkg/interaction"
	"github.com/dd0wney/convograph/pkg/layout"
	"github.com/dd0wney/convograph/pkg/viewport"
)

func TestCanvasCells(t *testing.T) {
	c := NewCanvas(80, 30, 800, 600)
	assert.Equal(t, 10.0, c.CellWidth)
	assert.Equal(t, 20.0, c.CellHeight)

	col, row, ok := c.Cell(405, 301)
	require.True(t, ok)
	assert.Equal(t, 40, col)
	assert.Equal(t, 15, row)

	x, y := c.CellCenter(col, row)
	assert.Equal(t, 405.0, x)
	assert.Equal(t, 310.0, y)

	_, _, ok = c.Cell(-1, 10)
	assert.False(t, ok)
	_, _, ok = c.Cell(800, 10)
	assert.False(t, ok)
}

func TestCanvasRender(t *testing.T) {
	sim := layout.New(abc(), layout.Config{Width: 800, Height: 600, Seed: 3})
	sim.Settle(1000)
	sel := interaction.Selection{NodeID: "B"}
	s := Build(sim, interaction.NewHighlighter(sel, graph.Resolve(abc()).Edges), DefaultStyle())

	c := NewCanvas(80, 30, 800, 600)
	out := c.Render(s, viewport.Identity)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 30)
	for _, l := range lines {
		assert.Equal(t, 80, lipgloss.Width(l))
	}

	assert.Contains(t, out, string(glyphSelected))
	assert.Contains(t, out, string(glyphConnected))
	assert.Contains(t, out, string(glyphEdgeHot))
}

func TestCanvasLabels(t *testing.T) {
	data := graph.Data{Nodes: []graph.Node{{ID: "weather", Type: graph.NodeTopic}}}
	sim := layout.New(data, layout.Config{Width: 800, Height: 600})
	sim.Pin("weather", 400, 310)
	sim.Tick(1)
	s := Build(sim, interaction.NewHighlighter(interaction.Selection{}, nil), DefaultStyle())

	c := NewCanvas(80, 30, 800, 600)
	lines := strings.Split(c.Render(s, viewport.Identity), "\n")
	assert.Contains(t, lines[14], "weather")
	assert.Contains(t, lines[15], string(glyphNode))

	c.ShowLabels = false
	assert.NotContains(t, c.Render(s, viewport.Identity), "weather")
}

func TestCanvasRenderZoomedOut(t *testing.T) {
	sim := layout.New(abc(), layout.Config{Width: 800, Height: 600, Seed: 3})
	s := Build(sim, interaction.NewHighlighter(interaction.Selection{}, nil), DefaultStyle())

	c := NewCanvas(40, 10, 800, 600)
	c.ShowLabels = false

	// Everything shrinks toward the origin but stays drawable
	out := c.Render(s, viewport.Transform{K: 0.1})
	assert.Contains(t, out, string(glyphNode))

	// Off-screen content is skipped, not wrapped
	out = c.Render(s, viewport.Transform{K: 1, X: 10_000})
	assert.Equal(t, strings.Repeat(" ", 40), strings.Split(out, "\n")[0])
	assert.NotContains(t, out, string(glyphNode))
}

func TestWriteSVG(t *testing.T) {
	sim := layout.New(abc(), layout.Config{Width: 800, Height: 600, Seed: 3})
	sim.Settle(1000)
	s := Build(sim, interaction.NewHighlighter(interaction.Selection{NodeID: "A"}, nil), DefaultStyle())

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, s, viewport.Transform{K: 2, X: 5, Y: -5}, true))

	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "translate(5,-5) scale(2)")
	assert.Equal(t, 3+3, strings.Count(out, "<circle"), "three nodes plus three legend swatches")
	assert.Equal(t, 2, strings.Count(out, "<line"))
	assert.Contains(t, out, "fill:#0074D9;stroke:#FFA500;stroke-width:3")
	assert.Contains(t, out, "Participant")
	assert.Contains(t, out, "</svg>")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestWriteSVGError(t *testing.T) {
	sim := layout.New(abc(), layout.Config{})
	s := Build(sim, interaction.NewHighlighter(interaction.Selection{}, nil), DefaultStyle())

	err := WriteSVG(failingWriter{}, s, viewport.Identity, false)
	assert.ErrorIs(t, err, assert.AnError)
}
