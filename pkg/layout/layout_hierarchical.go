package layout

// placeHierarchical puts nodes on horizontal bands by BFS depth from the
// nodes nothing points at. Conversations read top-down this way:
// participants first, then what they authored, then what that discusses.
func placeHierarchical(nodes []*Node, links []*Link, cfg Config) {
	if len(nodes) == 0 {
		return
	}

	outgoing := make(map[*Node][]*Node)
	hasIncoming := make(map[*Node]bool)
	for _, l := range links {
		outgoing[l.Source] = append(outgoing[l.Source], l.Target)
		hasIncoming[l.Target] = true
	}

	// Find root nodes (nodes with no incoming links)
	roots := make([]*Node, 0)
	for _, n := range nodes {
		if !hasIncoming[n] {
			roots = append(roots, n)
		}
	}
	if len(roots) == 0 {
		roots = []*Node{nodes[0]}
	}

	levels := make([][]*Node, 0)
	visited := make(map[*Node]bool)
	for _, r := range roots {
		visited[r] = true
	}
	current := roots
	for len(current) > 0 {
		levels = append(levels, current)
		next := make([]*Node, 0)
		for _, n := range current {
			for _, child := range outgoing[n] {
				if !visited[child] {
					visited[child] = true
					next = append(next, child)
				}
			}
		}
		current = next
	}

	// Cycles unreachable from any root land on the last band
	for _, n := range nodes {
		if !visited[n] {
			levels[len(levels)-1] = append(levels[len(levels)-1], n)
		}
	}

	levelHeight := (cfg.Height - 2*cfg.Padding) / float64(len(levels))
	levelWidth := cfg.Width - 2*cfg.Padding
	for li, level := range levels {
		y := cfg.Padding + float64(li)*levelHeight + levelHeight/2
		spacing := levelWidth / float64(len(level)+1)
		for ni, n := range level {
			n.X = cfg.Padding + spacing*float64(ni+1)
			n.Y = y
		}
	}
}
