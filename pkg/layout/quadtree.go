package layout

import "math"

// maxQuadDepth bounds subdivision when many nodes sit almost on top of each other
const maxQuadDepth = 32

// quad is a square cell of a point quadtree. Leaves hold one or more nodes;
// internal cells carry the aggregated charge and its weighted centre.
type quad struct {
	x0, y0, x1, y1 float64
	children       [4]*quad
	points         []*Node

	value  float64
	cx, cy float64
}

func (q *quad) leaf() bool {
	return q.points != nil
}

// buildQuadtree indexes nodes by position. The root cell is the smallest
// square covering every node.
func buildQuadtree(nodes []*Node) *quad {
	if len(nodes) == 0 {
		return nil
	}

	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		x0 = math.Min(x0, n.X)
		y0 = math.Min(y0, n.Y)
		x1 = math.Max(x1, n.X)
		y1 = math.Max(y1, n.Y)
	}

	size := math.Max(x1-x0, y1-y0)
	if !(size > 0) {
		size = 1
	}
	return buildQuad(nodes, x0, y0, x0+size, y0+size, 0)
}

func buildQuad(points []*Node, x0, y0, x1, y1 float64, depth int) *quad {
	q := &quad{x0: x0, y0: y0, x1: x1, y1: y1}
	if len(points) == 1 || depth >= maxQuadDepth || coincident(points) {
		q.points = points
		return q
	}

	xm, ym := (x0+x1)/2, (y0+y1)/2
	var buckets [4][]*Node
	for _, p := range points {
		i := 0
		if p.X >= xm {
			i |= 1
		}
		if p.Y >= ym {
			i |= 2
		}
		buckets[i] = append(buckets[i], p)
	}

	for i, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		cx0, cy0, cx1, cy1 := x0, y0, xm, ym
		if i&1 != 0 {
			cx0, cx1 = xm, x1
		}
		if i&2 != 0 {
			cy0, cy1 = ym, y1
		}
		q.children[i] = buildQuad(bucket, cx0, cy0, cx1, cy1, depth+1)
	}
	return q
}

func coincident(points []*Node) bool {
	for _, p := range points[1:] {
		if p.X != points[0].X || p.Y != points[0].Y {
			return false
		}
	}
	return true
}

// accumulate computes charge sums and charge-weighted centres bottom-up
func (q *quad) accumulate(strength float64) {
	if q.leaf() {
		q.cx, q.cy = q.points[0].X, q.points[0].Y
		q.value = strength * float64(len(q.points))
		return
	}

	var weight, x, y float64
	q.value = 0
	for _, c := range q.children {
		if c == nil {
			continue
		}
		c.accumulate(strength)
		w := math.Abs(c.value)
		if w == 0 {
			continue
		}
		q.value += c.value
		weight += w
		x += w * c.cx
		y += w * c.cy
	}
	if weight > 0 {
		q.cx, q.cy = x/weight, y/weight
	} else {
		q.cx, q.cy = (q.x0+q.x1)/2, (q.y0+q.y1)/2
	}
}
