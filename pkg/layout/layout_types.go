package layout

import (
	"math"

	"github.com/dd0wney/convograph/pkg/graph"
)

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Placement selects how nodes are seeded before the first tick
type Placement string

const (
	PlacementPhyllotaxis  Placement = "phyllotaxis"
	PlacementRandom       Placement = "random"
	PlacementCircular     Placement = "circular"
	PlacementHierarchical Placement = "hierarchical"
)

// Config configures the simulation
type Config struct {
	Width  float64 // Canvas width
	Height float64 // Canvas height

	// Forces
	LinkDistance   float64 // default 100
	ChargeStrength float64 // default -300
	Theta          float64 // Barnes-Hut accuracy, default 0.9
	DistanceMin    float64 // default 1
	DistanceMax    float64 // default unbounded
	CenterStrength float64 // default 1

	// Cooling
	AlphaMin      float64 // default 0.001
	AlphaDecay    float64 // default 1 - AlphaMin^(1/300)
	VelocityDecay float64 // friction, default 0.4

	// Seeding
	Placement Placement // default phyllotaxis
	Padding   float64   // margin used by the random, circular and hierarchical placements
	Seed      int64
}

// DefaultConfig returns the stock settings for a canvas of the given size
func DefaultConfig(width, height float64) Config {
	return Config{Width: width, Height: height}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.LinkDistance == 0 {
		c.LinkDistance = 100
	}
	if c.ChargeStrength == 0 {
		c.ChargeStrength = -300
	}
	if c.Theta == 0 {
		c.Theta = 0.9
	}
	if c.DistanceMin == 0 {
		c.DistanceMin = 1
	}
	if c.DistanceMax == 0 {
		c.DistanceMax = math.Inf(1)
	}
	if c.CenterStrength == 0 {
		c.CenterStrength = 1
	}
	if c.AlphaMin == 0 {
		c.AlphaMin = 0.001
	}
	if c.AlphaDecay == 0 {
		c.AlphaDecay = 1 - math.Pow(c.AlphaMin, 1.0/300)
	}
	if c.VelocityDecay == 0 {
		c.VelocityDecay = 0.4
	}
	if c.Placement == "" {
		c.Placement = PlacementPhyllotaxis
	}
	if c.Padding == 0 {
		c.Padding = 50
	}
	return c
}

// Node is a graph node owned by one simulation. FX/FY pin the node when set.
type Node struct {
	graph.Node

	Index  int
	X, Y   float64
	VX, VY float64
	FX, FY *float64
}

// Pinned reports whether either axis is fixed
func (n *Node) Pinned() bool {
	return n.FX != nil || n.FY != nil
}

// Position returns the current simulation coordinate
func (n *Node) Position() Position {
	return Position{X: n.X, Y: n.Y}
}

// Link is a resolved edge between two simulation nodes
type Link struct {
	Index  int
	Source *Node
	Target *Node
	Edge   graph.Edge
}

// Rect is an axis-aligned bounding box
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the horizontal extent
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent
func (r Rect) Height() float64 { return r.MaxY - r.MinY }
