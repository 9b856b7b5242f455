package interaction

import "github.com/dd0wney/convograph/pkg/graph"

// Highlight is the styling tier of a node or edge
type Highlight int

const (
	Default Highlight = iota
	Connected
	Selected
)

func (h Highlight) String() string {
	switch h {
	case Selected:
		return "selected"
	case Connected:
		return "connected"
	default:
		return "default"
	}
}

// Highlighter derives highlight tiers from a selection and the
// materialized edges. Neighbourhood ignores edge direction.
type Highlighter struct {
	sel       Selection
	neighbors map[string]bool
}

// NewHighlighter indexes the neighbours of the selected node
func NewHighlighter(sel Selection, edges []graph.Edge) *Highlighter {
	h := &Highlighter{sel: sel, neighbors: make(map[string]bool)}
	if sel.NodeID == "" {
		return h
	}
	for _, e := range edges {
		if e.From == sel.NodeID {
			h.neighbors[e.To] = true
		}
		if e.To == sel.NodeID {
			h.neighbors[e.From] = true
		}
	}
	return h
}

// Selection returns the selection the highlighter was built from
func (h *Highlighter) Selection() Selection { return h.sel }

// Node returns the tier of a node: selected, then connected
func (h *Highlighter) Node(id string) Highlight {
	if h.sel.NodeID != "" && id == h.sel.NodeID {
		return Selected
	}
	if h.neighbors[id] {
		return Connected
	}
	return Default
}

// Edge returns the tier of an edge: selected, then connected
func (h *Highlighter) Edge(e graph.Edge) Highlight {
	if h.sel.IsEdge(e.Key()) {
		return Selected
	}
	if h.sel.NodeID != "" && (e.From == h.sel.NodeID || e.To == h.sel.NodeID) {
		return Connected
	}
	return Default
}

// Neighbors returns the ids connected to the selected node
func (h *Highlighter) Neighbors() []string {
	out := make([]string, 0, len(h.neighbors))
	for id := range h.neighbors {
		out = append(out, id)
	}
	return out
}
