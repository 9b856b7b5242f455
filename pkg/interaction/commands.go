package interaction

import "github.com/dd0wney/convograph/pkg/graph"

// Command is a user intent fed to Reduce
type Command interface {
	command()
}

// ClickNode toggles the node's pin, reheats the layout and selects it
type ClickNode struct {
	ID string
}

// ClickEdge selects an edge without touching its endpoints
type ClickEdge struct {
	Edge graph.Edge
}

// ClickCanvas clears the selection
type ClickCanvas struct{}

// PinToggle flips a node's pin without changing the selection
type PinToggle struct {
	ID string
}

// SelectNode selects a node programmatically
type SelectNode struct {
	ID string
}

// SelectEdge selects an edge programmatically
type SelectEdge struct {
	Key graph.EdgeKey
}

// DragStart begins a drag of a node
type DragStart struct {
	ID string
}

// DragMove moves a dragged node to a world position
type DragMove struct {
	ID   string
	X, Y float64
}

// DragEnd releases a dragged node
type DragEnd struct {
	ID string
}

func (ClickNode) command()   {}
func (ClickEdge) command()   {}
func (ClickCanvas) command() {}
func (PinToggle) command()   {}
func (SelectNode) command()  {}
func (SelectEdge) command()  {}
func (DragStart) command()   {}
func (DragMove) command()    {}
func (DragEnd) command()     {}

// Name is a short label for logs and metrics
func Name(c Command) string {
	switch c.(type) {
	case ClickNode:
		return "click_node"
	case ClickEdge:
		return "click_edge"
	case ClickCanvas:
		return "click_canvas"
	case PinToggle:
		return "pin_toggle"
	case SelectNode:
		return "select_node"
	case SelectEdge:
		return "select_edge"
	case DragStart:
		return "drag_start"
	case DragMove:
		return "drag_move"
	case DragEnd:
		return "drag_end"
	default:
		return "unknown"
	}
}
