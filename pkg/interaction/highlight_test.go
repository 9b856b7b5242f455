package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dd0wney/convograph/pkg/graph"
)

func TestNeighborHighlight(t *testing.T) {
	edges := abc().Edges
	h := NewHighlighter(Selection{NodeID: "B"}, edges)

	assert.Equal(t, Selected, h.Node("B"))
	assert.Equal(t, Connected, h.Node("A"))
	assert.Equal(t, Connected, h.Node("C"))
	assert.ElementsMatch(t, []string{"A", "C"}, h.Neighbors())

	for _, e := range edges {
		assert.Equal(t, Connected, h.Edge(e))
	}

	// A and C are not connected to each other
	h = NewHighlighter(Selection{NodeID: "A"}, edges)
	assert.Equal(t, Connected, h.Node("B"))
	assert.Equal(t, Default, h.Node("C"))
	assert.Equal(t, Default, h.Edge(edges[1]))
}

func TestNeighborHighlightIsSymmetric(t *testing.T) {
	forward := NewHighlighter(Selection{NodeID: "A"}, []graph.Edge{{From: "A", To: "B"}})
	backward := NewHighlighter(Selection{NodeID: "A"}, []graph.Edge{{From: "B", To: "A"}})

	assert.Equal(t, Connected, forward.Node("B"))
	assert.Equal(t, Connected, backward.Node("B"))
}

func TestSelectedEdgeIsDirectional(t *testing.T) {
	ab := graph.Edge{From: "A", To: "B", Type: graph.EdgeAgrees}
	ba := graph.Edge{From: "B", To: "A", Type: graph.EdgeAgrees}
	key := ab.Key()

	h := NewHighlighter(Selection{Edge: &key}, []graph.Edge{ab, ba})
	assert.Equal(t, Selected, h.Edge(ab))
	assert.Equal(t, Default, h.Edge(ba))

	// Identity is by endpoint ids, not the record
	retyped := graph.Edge{From: "A", To: "B", Type: graph.EdgeDisagrees}
	assert.Equal(t, Selected, h.Edge(retyped))

	// An edge selection does not highlight nodes
	assert.Equal(t, Default, h.Node("A"))
}

func TestEmptySelection(t *testing.T) {
	h := NewHighlighter(Selection{}, abc().Edges)
	assert.Equal(t, Default, h.Node("A"))
	assert.Equal(t, Default, h.Node(""))
	assert.Equal(t, Default, h.Edge(abc().Edges[0]))
	assert.Empty(t, h.Neighbors())
}

func TestHighlightString(t *testing.T) {
	assert.Equal(t, "selected", Selected.String())
	assert.Equal(t, "connected", Connected.String())
	assert.Equal(t, "default", Default.String())
}
