package interaction

import (
	"math"

	"github.com/dd0wney/convograph/pkg/graph"
)

// HitKind says what a pointer landed on
type HitKind int

const (
	HitCanvas HitKind = iota
	HitNode
	HitEdge
)

// Hit is the result of a pointer hit test
type Hit struct {
	Kind   HitKind
	NodeID string
	Edge   graph.Edge
}

// Point is a drawn node position
type Point struct {
	ID   string
	X, Y float64
}

// Segment is a drawn edge
type Segment struct {
	Edge           graph.Edge
	X1, Y1, X2, Y2 float64
}

// HitTest resolves (x, y) against drawn nodes, then edges. Nodes win over
// edges and later-drawn elements win over earlier ones.
func HitTest(points []Point, segments []Segment, x, y, radius, tolerance float64) Hit {
	r2 := radius * radius
	for i := len(points) - 1; i >= 0; i-- {
		p := points[i]
		dx, dy := p.X-x, p.Y-y
		if dx*dx+dy*dy <= r2 {
			return Hit{Kind: HitNode, NodeID: p.ID}
		}
	}

	best := -1
	bestDist := tolerance
	for i := len(segments) - 1; i >= 0; i-- {
		s := segments[i]
		if d := segmentDistance(x, y, s.X1, s.Y1, s.X2, s.Y2); d <= bestDist {
			if best == -1 || d < bestDist {
				best, bestDist = i, d
			}
		}
	}
	if best >= 0 {
		return Hit{Kind: HitEdge, Edge: segments[best].Edge}
	}
	return Hit{Kind: HitCanvas}
}

// segmentDistance is the distance from (px, py) to the segment a-b
func segmentDistance(px, py, ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	t := ((px-ax)*dx + (py-ay)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}
