package layout

import "math"

// manyBody pushes every pair of nodes apart. Far-away groups are
// approximated by their quadtree cell (Barnes-Hut), giving O(n log n) per tick.
type manyBody struct {
	nodes        []*Node
	strength     float64
	theta2       float64
	distanceMin2 float64
	distanceMax2 float64
	jiggle       func() float64
}

func newManyBody(nodes []*Node, cfg Config, jiggle func() float64) *manyBody {
	return &manyBody{
		nodes:        nodes,
		strength:     cfg.ChargeStrength,
		theta2:       cfg.Theta * cfg.Theta,
		distanceMin2: cfg.DistanceMin * cfg.DistanceMin,
		distanceMax2: cfg.DistanceMax * cfg.DistanceMax,
		jiggle:       jiggle,
	}
}

func (f *manyBody) apply(alpha float64) {
	tree := buildQuadtree(f.nodes)
	if tree == nil {
		return
	}
	tree.accumulate(f.strength)
	for _, n := range f.nodes {
		f.visit(tree, n, alpha)
	}
}

func (f *manyBody) visit(q *quad, node *Node, alpha float64) {
	if q.value == 0 {
		return
	}

	x := q.cx - node.X
	y := q.cy - node.Y
	w := q.x1 - q.x0
	l := x*x + y*y

	// Far enough away: treat the whole cell as one body.
	if w*w/f.theta2 < l {
		if l < f.distanceMax2 {
			x, y, l = f.separate(x, y, l)
			node.VX += x * q.value * alpha / l
			node.VY += y * q.value * alpha / l
		}
		return
	}

	if !q.leaf() {
		for _, c := range q.children {
			if c != nil {
				f.visit(c, node, alpha)
			}
		}
		return
	}
	if l >= f.distanceMax2 {
		return
	}

	if q.points[0] != node || len(q.points) > 1 {
		x, y, l = f.separate(x, y, l)
	}
	for _, p := range q.points {
		if p == node {
			continue
		}
		k := f.strength * alpha / l
		node.VX += x * k
		node.VY += y * k
	}
}

// separate nudges zero offsets apart and enforces the minimum distance
func (f *manyBody) separate(x, y, l float64) (float64, float64, float64) {
	if x == 0 {
		x = f.jiggle()
		l += x * x
	}
	if y == 0 {
		y = f.jiggle()
		l += y * y
	}
	if l < f.distanceMin2 {
		l = math.Sqrt(f.distanceMin2 * l)
	}
	return x, y, l
}
