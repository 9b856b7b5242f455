package render

import (
	"github.com/dd0wney/convograph/pkg/graph"
	"github.com/dd0wney/convograph/pkg/interaction"
)

// Stroke is an outline colour and width
type Stroke struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// Style holds the visual constants of a scene
type Style struct {
	NodeRadius    float64
	LabelFontSize float64
	LabelColor    string

	NodeFill     map[graph.NodeType]string
	FallbackFill string // unknown node types

	NodeStroke  map[interaction.Highlight]Stroke
	EdgeStroke  map[interaction.Highlight]Stroke
	EdgeOpacity float64
}

// DefaultStyle returns the stock palette
func DefaultStyle() Style {
	return Style{
		NodeRadius:    10,
		LabelFontSize: 16,
		LabelColor:    "#000",
		NodeFill: map[graph.NodeType]string{
			graph.NodeParticipant: "#0074D9",
			graph.NodeTopic:       "#FF4136",
			graph.NodeMessage:     "#2ECC40",
		},
		FallbackFill: "#2ECC40",
		NodeStroke: map[interaction.Highlight]Stroke{
			interaction.Selected:  {Color: "#FFA500", Width: 3},
			interaction.Connected: {Color: "#FFD27F", Width: 2},
			interaction.Default:   {Color: "#fff", Width: 1.5},
		},
		EdgeStroke: map[interaction.Highlight]Stroke{
			interaction.Selected:  {Color: "#FFA500", Width: 3},
			interaction.Connected: {Color: "#FFD27F", Width: 2},
			interaction.Default:   {Color: "#999", Width: 2},
		},
		EdgeOpacity: 0.6,
	}
}

// Fill returns the fill colour for a node type
func (s Style) Fill(t graph.NodeType) string {
	if c, ok := s.NodeFill[t]; ok {
		return c
	}
	return s.FallbackFill
}

// LegendEntry is one row of the node type legend
type LegendEntry struct {
	Label string
	Color string
}

// Legend lists the node types with their fill colours
func (s Style) Legend() []LegendEntry {
	return []LegendEntry{
		{Label: "Participant", Color: s.Fill(graph.NodeParticipant)},
		{Label: "Topic", Color: s.Fill(graph.NodeTopic)},
		{Label: "Message", Color: s.Fill(graph.NodeMessage)},
	}
}
