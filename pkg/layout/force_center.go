package layout

// centerForce translates the whole node set so its centroid sits on (x, y).
// It moves positions directly and leaves velocities alone.
type centerForce struct {
	nodes    []*Node
	x, y     float64
	strength float64
}

func newCenterForce(nodes []*Node, x, y, strength float64) *centerForce {
	return &centerForce{nodes: nodes, x: x, y: y, strength: strength}
}

func (f *centerForce) apply(float64) {
	if len(f.nodes) == 0 {
		return
	}

	var sx, sy float64
	for _, n := range f.nodes {
		sx += n.X
		sy += n.Y
	}

	n := float64(len(f.nodes))
	sx = (sx/n - f.x) * f.strength
	sy = (sy/n - f.y) * f.strength
	for _, node := range f.nodes {
		node.X -= sx
		node.Y -= sy
	}
}
