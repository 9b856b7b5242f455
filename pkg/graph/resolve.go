package graph

import "strings"

// Resolve maps node ids to their position in data.Nodes and keeps only the
// edges whose endpoints are both present. Unresolvable edges are counted,
// not reported: malformed upstream data must not stop rendering.
//
// Duplicate node ids collide and the last one wins.
func Resolve(data Data) Resolved {
	index := make(map[string]int, len(data.Nodes))
	for i, n := range data.Nodes {
		index[n.ID] = i
	}

	kept := make([]Edge, 0, len(data.Edges))
	dropped := 0
	for _, e := range data.Edges {
		_, okFrom := index[e.From]
		_, okTo := index[e.To]
		if !okFrom || !okTo {
			dropped++
			continue
		}
		kept = append(kept, e)
	}

	return Resolved{Index: index, Edges: kept, Dropped: dropped}
}

// Clone returns a deep copy of the snapshot so callers can hand it to the
// engine without sharing backing arrays
func (d Data) Clone() Data {
	out := Data{
		Nodes: make([]Node, len(d.Nodes)),
		Edges: make([]Edge, len(d.Edges)),
	}
	copy(out.Nodes, d.Nodes)
	copy(out.Edges, d.Edges)
	return out
}

// FindEdge returns the first edge with the given key
func (d Data) FindEdge(key EdgeKey) (Edge, bool) {
	for _, e := range d.Edges {
		if e.From == key.From && e.To == key.To {
			return e, true
		}
	}
	return Edge{}, false
}

// ParseEdgeKey parses the "from->to" form produced by EdgeKey.String
func ParseEdgeKey(s string) (EdgeKey, bool) {
	from, to, ok := strings.Cut(s, "->")
	if !ok || from == "" || to == "" {
		return EdgeKey{}, false
	}
	return EdgeKey{From: from, To: to}, true
}
