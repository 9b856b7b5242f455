package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/convograph/pkg/graph"
	"github.com/dd0wney/convograph/pkg/interaction"
	"github.com/dd0wney/convograph/pkg/layout"
)

func abc() graph.Data {
	return graph.Data{
		Nodes: []graph.Node{
			{ID: "A", Type: graph.NodeParticipant},
			{ID: "B", Type: graph.NodeMessage},
			{ID: "C", Type: graph.NodeTopic},
		},
		Edges: []graph.Edge{
			{From: "A", To: "B", Type: graph.EdgeAuthored},
			{From: "B", To: "C", Type: graph.EdgeDiscusses},
			{From: "C", To: "ghost", Type: graph.EdgeMentions},
		},
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		wx   float64
		wy   float64
	}{
		{"inside", 200, 200, 200, 200},
		{"left", -100, 200, 50, 200},
		{"right", 5000, 200, 750, 200},
		{"top", 200, 0, 200, 30},
		{"bottom edge", 200, 600, 200, 600},
		{"below bottom snaps inside", 200, 601, 200, 570},
		{"NaN", math.NaN(), math.NaN(), 50, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wx, clampX(tt.x, 800))
			assert.Equal(t, tt.wy, clampY(tt.y, 600))
		})
	}
}

func TestLabelPosition(t *testing.T) {
	x, y := labelPosition(400, 300, 800, 600)
	assert.Equal(t, 400.0, x)
	assert.Equal(t, 285.0, y)

	x, y = labelPosition(790, 600, 800, 600)
	assert.Equal(t, 780.0, x)
	assert.Equal(t, 575.0, y)

	x, y = labelPosition(0, 0, 800, 600)
	assert.Equal(t, 20.0, x)
	assert.Equal(t, 10.0, y)
}

func TestBuildScene(t *testing.T) {
	sim := layout.New(abc(), layout.Config{Width: 800, Height: 600, Seed: 1})
	h := interaction.NewHighlighter(interaction.Selection{NodeID: "A"}, graph.Resolve(abc()).Edges)
	s := Build(sim, h, DefaultStyle())

	require.Len(t, s.Nodes, 3)
	require.Len(t, s.Edges, 2, "unresolved edge is not drawn")
	require.Len(t, s.Labels, 3)

	assert.Equal(t, "#0074D9", s.Nodes[0].Fill)
	assert.Equal(t, "#2ECC40", s.Nodes[1].Fill)
	assert.Equal(t, "#FF4136", s.Nodes[2].Fill)

	assert.Equal(t, Stroke{Color: "#FFA500", Width: 3}, s.Nodes[0].Stroke)
	assert.Equal(t, interaction.Connected, s.Nodes[1].Highlight)
	assert.Equal(t, Stroke{Color: "#fff", Width: 1.5}, s.Nodes[2].Stroke)

	assert.Equal(t, interaction.Connected, s.Edges[0].Highlight)
	assert.Equal(t, Stroke{Color: "#999", Width: 2}, s.Edges[1].Stroke)

	assert.Equal(t, "B", s.Labels[1].Text)
}

func TestSyncTracksNodes(t *testing.T) {
	sim := layout.New(abc(), layout.Config{Seed: 4})
	s := Build(sim, interaction.NewHighlighter(interaction.Selection{}, nil), DefaultStyle())

	sim.Tick(20)
	require.True(t, s.Sync(sim))

	for i, n := range sim.Nodes() {
		assert.Equal(t, n.X, s.Nodes[i].X)
		assert.Equal(t, n.Y, s.Nodes[i].Y)
		assert.GreaterOrEqual(t, n.X, 50.0)
		assert.LessOrEqual(t, n.X, 750.0)
		assert.GreaterOrEqual(t, n.Y, 30.0)
		assert.LessOrEqual(t, n.Y, 600.0)

		lx, ly := labelPosition(s.Nodes[i].X, s.Nodes[i].Y, 800, 600)
		assert.Equal(t, lx, s.Labels[i].X)
		assert.Equal(t, ly, s.Labels[i].Y)
	}

	e := s.Edges[1]
	assert.Equal(t, s.Nodes[1].X, e.X1)
	assert.Equal(t, s.Nodes[1].Y, e.Y1)
	assert.Equal(t, s.Nodes[2].X, e.X2)
	assert.Equal(t, s.Nodes[2].Y, e.Y2)
}

func TestSyncWritesBackFreeNodes(t *testing.T) {
	sim := layout.New(abc(), layout.Config{})
	s := Build(sim, interaction.NewHighlighter(interaction.Selection{}, nil), DefaultStyle())

	c, _ := sim.Node("C")
	c.X, c.Y = -500, 900
	s.Sync(sim)

	assert.Equal(t, 50.0, c.X)
	assert.Equal(t, 570.0, c.Y)
}

// TestDragOutsideBounds drags a node past the canvas edge: the drawn
// position stays inside while the simulation keeps the pointer target
func TestDragOutsideBounds(t *testing.T) {
	sim := layout.New(abc(), layout.Config{Width: 800, Height: 600})
	s := Build(sim, interaction.NewHighlighter(interaction.Selection{}, nil), DefaultStyle())

	sel := interaction.Selection{}
	for _, cmd := range []interaction.Command{
		interaction.DragStart{ID: "B"},
		interaction.DragMove{ID: "B", X: 2000, Y: -300},
	} {
		var effects []interaction.Effect
		sel, effects = interaction.Reduce(sel, cmd, sim)
		interaction.Apply(sim, effects)
	}

	sim.Tick(1)
	s.Sync(sim)

	b, _ := sim.Node("B")
	assert.Equal(t, 2000.0, b.X)
	assert.Equal(t, -300.0, b.Y)

	drawn, ok := s.Node("B")
	require.True(t, ok)
	assert.Equal(t, 750.0, drawn.X)
	assert.Equal(t, 30.0, drawn.Y)
}

func TestSyncIgnoresOtherSimulation(t *testing.T) {
	first := layout.New(abc(), layout.Config{})
	s := Build(first, interaction.NewHighlighter(interaction.Selection{}, nil), DefaultStyle())
	before := append([]NodeVisual(nil), s.Nodes...)

	second := layout.New(abc(), layout.Config{Seed: 99, Placement: layout.PlacementRandom})
	assert.False(t, s.Sync(second))
	assert.Equal(t, before, s.Nodes)
}

func TestSceneHitTest(t *testing.T) {
	sim := layout.New(abc(), layout.Config{Seed: 2})
	sim.Settle(1000)
	s := Build(sim, interaction.NewHighlighter(interaction.Selection{}, nil), DefaultStyle())

	a := s.Nodes[0]
	hit := s.HitTest(a.X+3, a.Y-3, 4)
	assert.Equal(t, interaction.HitNode, hit.Kind)
	assert.Equal(t, "A", hit.NodeID)

	assert.Len(t, s.Points(), 3)
	assert.Len(t, s.Segments(), 2)

	_, ok := s.Node("ghost")
	assert.False(t, ok)
}

func TestStyleFallback(t *testing.T) {
	st := DefaultStyle()
	assert.Equal(t, "#2ECC40", st.Fill("unknown"))
	assert.Len(t, st.Legend(), 3)
	assert.Equal(t, "#FF4136", st.Legend()[1].Color)
}
