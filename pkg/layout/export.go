package layout

import (
	"encoding/json"
	"fmt"

	"github.com/golang/snappy"

	"github.com/dd0wney/convograph/pkg/graph"
)

// Layout is a serializable snapshot of simulation positions
type Layout struct {
	Generation uint64       `json:"generation"`
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Ticks      int          `json:"ticks"`
	Alpha      float64      `json:"alpha"`
	Nodes      []NodeLayout `json:"nodes"`
	Links      []LinkLayout `json:"links"`
}

// NodeLayout is one positioned node
type NodeLayout struct {
	ID      string         `json:"id"`
	Type    graph.NodeType `json:"type"`
	Content string         `json:"content,omitempty"`
	User    string         `json:"user,omitempty"`
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	Pinned  bool           `json:"pinned,omitempty"`
}

// LinkLayout is one materialized edge
type LinkLayout struct {
	From string         `json:"from"`
	To   string         `json:"to"`
	Type graph.EdgeType `json:"type"`
}

// Export captures the current positions of s
func Export(s *Simulation) Layout {
	l := Layout{
		Generation: s.generation,
		Width:      s.cfg.Width,
		Height:     s.cfg.Height,
		Ticks:      s.ticks,
		Alpha:      s.alpha,
		Nodes:      make([]NodeLayout, 0, len(s.nodes)),
		Links:      make([]LinkLayout, 0, len(s.links)),
	}

	for _, n := range s.nodes {
		l.Nodes = append(l.Nodes, NodeLayout{
			ID:      n.ID,
			Type:    n.Type,
			Content: n.Content,
			User:    n.User,
			X:       n.X,
			Y:       n.Y,
			Pinned:  n.Pinned(),
		})
	}

	for _, link := range s.links {
		l.Links = append(l.Links, LinkLayout{
			From: link.Edge.From,
			To:   link.Edge.To,
			Type: link.Edge.Type,
		})
	}

	return l
}

// JSON encodes the layout
func (l Layout) JSON() ([]byte, error) {
	return json.Marshal(l)
}

// Snappy encodes the layout as snappy-compressed JSON
func (l Layout) Snappy() ([]byte, error) {
	data, err := l.JSON()
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, data), nil
}

// DecodeSnappy reverses Layout.Snappy
func DecodeSnappy(compressed []byte) (Layout, error) {
	var l Layout
	data, err := snappy.Decode(nil, compressed)
	if err != nil {
		return l, fmt.Errorf("failed to decompress layout: %w", err)
	}
	if err := json.Unmarshal(data, &l); err != nil {
		return l, fmt.Errorf("failed to decode layout: %w", err)
	}
	return l, nil
}
