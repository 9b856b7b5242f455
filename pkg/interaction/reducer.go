package interaction

import (
	"github.com/dd0wney/convograph/pkg/graph"
	"github.com/dd0wney/convograph/pkg/layout"
)

// Selection is the single selected element. At most one field is set.
type Selection struct {
	NodeID string         `json:"nodeId,omitempty"`
	Edge   *graph.EdgeKey `json:"edge,omitempty"`
}

// Empty reports whether nothing is selected
func (s Selection) Empty() bool {
	return s.NodeID == "" && s.Edge == nil
}

// IsEdge reports whether k is the selected edge. Direction matters.
func (s Selection) IsEdge(k graph.EdgeKey) bool {
	return s.Edge != nil && *s.Edge == k
}

// NodeLookup resolves simulation nodes by id
type NodeLookup interface {
	Node(id string) (*layout.Node, bool)
}

// Reduce applies cmd to the selection and returns the new selection along
// with the effects the caller must carry out. It never mutates nodes.
func Reduce(sel Selection, cmd Command, nodes NodeLookup) (Selection, []Effect) {
	switch c := cmd.(type) {
	case ClickNode:
		n, ok := nodes.Node(c.ID)
		if !ok {
			return sel, nil
		}
		effects := []Effect{togglePin(n), Reheat{Alpha: ReheatAlpha}, NodeClicked{Node: n.Node}}
		return Selection{NodeID: c.ID}, effects

	case PinToggle:
		n, ok := nodes.Node(c.ID)
		if !ok {
			return sel, nil
		}
		return sel, []Effect{togglePin(n), Reheat{Alpha: ReheatAlpha}}

	case ClickEdge:
		key := c.Edge.Key()
		return Selection{Edge: &key}, []Effect{EdgeClicked{Edge: c.Edge}}

	case SelectNode:
		if c.ID == "" {
			return Selection{}, nil
		}
		return Selection{NodeID: c.ID}, nil

	case SelectEdge:
		key := c.Key
		return Selection{Edge: &key}, nil

	case ClickCanvas:
		return Selection{}, nil

	case DragStart:
		n, ok := nodes.Node(c.ID)
		if !ok {
			return sel, nil
		}
		return sel, []Effect{AlphaTarget{Target: ReheatAlpha}, Pin{ID: c.ID, X: n.X, Y: n.Y}}

	case DragMove:
		if _, ok := nodes.Node(c.ID); !ok {
			return sel, nil
		}
		return sel, []Effect{Pin{ID: c.ID, X: c.X, Y: c.Y}}

	case DragEnd:
		if _, ok := nodes.Node(c.ID); !ok {
			return sel, nil
		}
		return sel, []Effect{AlphaTarget{Target: 0}, Unpin{ID: c.ID}}
	}
	return sel, nil
}

func togglePin(n *layout.Node) Effect {
	if n.Pinned() {
		return Unpin{ID: n.ID}
	}
	return Pin{ID: n.ID, X: n.X, Y: n.Y}
}
