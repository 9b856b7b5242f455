package render

import (
	"github.com/dd0wney/convograph/pkg/graph"
	"github.com/dd0wney/convograph/pkg/interaction"
	"github.com/dd0wney/convograph/pkg/layout"
)

// NodeVisual is a drawn node
type NodeVisual struct {
	ID        string                `json:"id"`
	Type      graph.NodeType        `json:"type"`
	X         float64               `json:"x"`
	Y         float64               `json:"y"`
	Radius    float64               `json:"r"`
	Fill      string                `json:"fill"`
	Stroke    Stroke                `json:"stroke"`
	Highlight interaction.Highlight `json:"highlight"`
}

// EdgeVisual is a drawn edge whose endpoints track its nodes
type EdgeVisual struct {
	Edge      graph.Edge            `json:"edge"`
	X1        float64               `json:"x1"`
	Y1        float64               `json:"y1"`
	X2        float64               `json:"x2"`
	Y2        float64               `json:"y2"`
	Stroke    Stroke                `json:"stroke"`
	Highlight interaction.Highlight `json:"highlight"`

	source, target int
}

// LabelVisual is the id text above a node
type LabelVisual struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Scene is the visual state of one simulation. It is rebuilt from scratch
// when the graph or selection changes and synced in place on every tick.
type Scene struct {
	Generation uint64        `json:"generation"`
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	Style      Style         `json:"-"`
	Nodes      []NodeVisual  `json:"nodes"`
	Edges      []EdgeVisual  `json:"edges"`
	Labels     []LabelVisual `json:"labels"`
}

// Build derives a scene from sim with highlight tiers from h, then syncs it
func Build(sim *layout.Simulation, h *interaction.Highlighter, style Style) *Scene {
	cfg := sim.Config()
	nodes := sim.Nodes()
	links := sim.Links()

	s := &Scene{
		Generation: sim.Generation(),
		Width:      cfg.Width,
		Height:     cfg.Height,
		Style:      style,
		Nodes:      make([]NodeVisual, len(nodes)),
		Edges:      make([]EdgeVisual, len(links)),
		Labels:     make([]LabelVisual, len(nodes)),
	}

	for i, n := range nodes {
		tier := h.Node(n.ID)
		s.Nodes[i] = NodeVisual{
			ID:        n.ID,
			Type:      n.Type,
			Radius:    style.NodeRadius,
			Fill:      style.Fill(n.Type),
			Stroke:    style.NodeStroke[tier],
			Highlight: tier,
		}
		s.Labels[i] = LabelVisual{Text: n.ID}
	}

	for i, l := range links {
		tier := h.Edge(l.Edge)
		s.Edges[i] = EdgeVisual{
			Edge:      l.Edge,
			Stroke:    style.EdgeStroke[tier],
			Highlight: tier,
			source:    l.Source.Index,
			target:    l.Target.Index,
		}
	}

	s.Sync(sim)
	return s
}

// Sync copies the current simulation positions into the scene, clamped to
// the drawing area. Free axes get the clamped value written back to the
// simulation; pinned axes are clamped on screen only. It reports false and
// does nothing if sim is not the simulation the scene was built from.
func (s *Scene) Sync(sim *layout.Simulation) bool {
	if sim.Generation() != s.Generation {
		return false
	}

	for i, n := range sim.Nodes() {
		x := clampX(n.X, s.Width)
		y := clampY(n.Y, s.Height)
		if n.FX == nil {
			n.X = x
		}
		if n.FY == nil {
			n.Y = y
		}

		s.Nodes[i].X, s.Nodes[i].Y = x, y
		s.Labels[i].X, s.Labels[i].Y = labelPosition(x, y, s.Width, s.Height)
	}

	for i := range s.Edges {
		e := &s.Edges[i]
		src, dst := s.Nodes[e.source], s.Nodes[e.target]
		e.X1, e.Y1 = src.X, src.Y
		e.X2, e.Y2 = dst.X, dst.Y
	}
	return true
}

// Points returns the drawn node centres for hit testing
func (s *Scene) Points() []interaction.Point {
	out := make([]interaction.Point, len(s.Nodes))
	for i, n := range s.Nodes {
		out[i] = interaction.Point{ID: n.ID, X: n.X, Y: n.Y}
	}
	return out
}

// Segments returns the drawn edges for hit testing
func (s *Scene) Segments() []interaction.Segment {
	out := make([]interaction.Segment, len(s.Edges))
	for i, e := range s.Edges {
		out[i] = interaction.Segment{Edge: e.Edge, X1: e.X1, Y1: e.Y1, X2: e.X2, Y2: e.Y2}
	}
	return out
}

// HitTest resolves a world-space point against the scene
func (s *Scene) HitTest(x, y, tolerance float64) interaction.Hit {
	return interaction.HitTest(s.Points(), s.Segments(), x, y, s.Style.NodeRadius, tolerance)
}

// Node returns the visual for id
func (s *Scene) Node(id string) (NodeVisual, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeVisual{}, false
}
