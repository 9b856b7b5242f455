package interaction

import "math"

// DragThreshold is how far, in screen units, a press must travel before it
// becomes a drag instead of a click
const DragThreshold = 3.0

// Gesture turns raw pointer events into commands. A press on a node becomes
// a ClickNode on release unless the pointer travelled past DragThreshold,
// in which case it becomes a drag. A press on empty canvas pans.
type Gesture struct {
	active   bool
	hit      Hit
	dragging bool
	downX    float64
	downY    float64
	lastX    float64
	lastY    float64
}

// Output is what a pointer event produced
type Output struct {
	Commands []Command
	PanX     float64
	PanY     float64
}

// Active reports whether a press is in progress
func (g *Gesture) Active() bool { return g.active }

// Dragging reports whether a node drag is in progress
func (g *Gesture) Dragging() bool { return g.dragging }

// Press starts a gesture on hit at screen position (sx, sy)
func (g *Gesture) Press(hit Hit, sx, sy float64) Output {
	*g = Gesture{active: true, hit: hit, downX: sx, downY: sy, lastX: sx, lastY: sy}
	return Output{}
}

// Move continues the gesture. (wx, wy) is the pointer in world coordinates.
func (g *Gesture) Move(sx, sy, wx, wy float64) Output {
	if !g.active {
		return Output{}
	}
	var out Output

	switch g.hit.Kind {
	case HitNode:
		if !g.dragging && math.Hypot(sx-g.downX, sy-g.downY) >= DragThreshold {
			g.dragging = true
			out.Commands = append(out.Commands, DragStart{ID: g.hit.NodeID})
		}
		if g.dragging {
			out.Commands = append(out.Commands, DragMove{ID: g.hit.NodeID, X: wx, Y: wy})
		}
	case HitCanvas:
		out.PanX, out.PanY = sx-g.lastX, sy-g.lastY
	}

	g.lastX, g.lastY = sx, sy
	return out
}

// Release ends the gesture at screen position (sx, sy)
func (g *Gesture) Release(sx, sy float64) Output {
	if !g.active {
		return Output{}
	}
	defer func() { *g = Gesture{} }()

	moved := math.Hypot(sx-g.downX, sy-g.downY) >= DragThreshold

	switch g.hit.Kind {
	case HitNode:
		if g.dragging {
			return Output{Commands: []Command{DragEnd{ID: g.hit.NodeID}}}
		}
		return Output{Commands: []Command{ClickNode{ID: g.hit.NodeID}}}
	case HitEdge:
		if moved {
			return Output{}
		}
		return Output{Commands: []Command{ClickEdge{Edge: g.hit.Edge}}}
	default:
		if moved {
			return Output{}
		}
		return Output{Commands: []Command{ClickCanvas{}}}
	}
}
