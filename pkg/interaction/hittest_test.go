package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dd0wney/convograph/pkg/graph"
)

func TestHitTest(t *testing.T) {
	ab := graph.Edge{From: "A", To: "B"}
	points := []Point{{ID: "A", X: 0, Y: 0}, {ID: "B", X: 100, Y: 0}, {ID: "C", X: 105, Y: 0}}
	segments := []Segment{{Edge: ab, X1: 0, Y1: 0, X2: 100, Y2: 0}}

	tests := []struct {
		name string
		x, y float64
		want Hit
	}{
		{"node centre", 0, 0, Hit{Kind: HitNode, NodeID: "A"}},
		{"node rim", 6, 8, Hit{Kind: HitNode, NodeID: "A"}},
		{"overlap picks topmost", 102, 0, Hit{Kind: HitNode, NodeID: "C"}},
		{"edge body", 50, 3, Hit{Kind: HitEdge, Edge: ab}},
		{"beyond tolerance", 50, 6, Hit{Kind: HitCanvas}},
		{"past segment end", -20, 0, Hit{Kind: HitCanvas}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HitTest(points, segments, tt.x, tt.y, 10, 4))
		})
	}
}

func TestHitTestPicksNearestEdge(t *testing.T) {
	e1 := graph.Edge{From: "A", To: "B"}
	e2 := graph.Edge{From: "C", To: "D"}
	segments := []Segment{
		{Edge: e1, X1: 0, Y1: 0, X2: 100, Y2: 0},
		{Edge: e2, X1: 0, Y1: 4, X2: 100, Y2: 4},
	}

	assert.Equal(t, e1, HitTest(nil, segments, 50, 1, 10, 5).Edge)
	assert.Equal(t, e2, HitTest(nil, segments, 50, 3, 10, 5).Edge)
}

func TestSegmentDistanceDegenerate(t *testing.T) {
	assert.Equal(t, 5.0, segmentDistance(3, 4, 0, 0, 0, 0))
}
