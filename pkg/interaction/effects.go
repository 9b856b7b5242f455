package interaction

import "github.com/dd0wney/convograph/pkg/graph"

// ReheatAlpha is the energy an interaction puts back into the layout
const ReheatAlpha = 0.3

// Effect is a side effect requested by Reduce
type Effect interface {
	effect()
}

// Pin fixes a node at a position
type Pin struct {
	ID   string
	X, Y float64
}

// Unpin releases a node
type Unpin struct {
	ID string
}

// Reheat sets alpha and restarts stepping
type Reheat struct {
	Alpha float64
}

// AlphaTarget sets the level alpha decays toward and restarts stepping
type AlphaTarget struct {
	Target float64
}

// NodeClicked reports a click on a node to the embedding application
type NodeClicked struct {
	Node graph.Node
}

// EdgeClicked reports a click on an edge to the embedding application
type EdgeClicked struct {
	Edge graph.Edge
}

func (Pin) effect()         {}
func (Unpin) effect()       {}
func (Reheat) effect()      {}
func (AlphaTarget) effect() {}
func (NodeClicked) effect() {}
func (EdgeClicked) effect() {}

// Simulation is the part of the layout engine effects act on
type Simulation interface {
	Pin(id string, x, y float64) bool
	Unpin(id string) bool
	SetAlpha(alpha float64)
	SetAlphaTarget(target float64)
	Restart()
}

// Apply carries out the physics effects on sim. Event effects are
// returned for the caller to dispatch.
func Apply(sim Simulation, effects []Effect) []Effect {
	var events []Effect
	for _, e := range effects {
		switch e := e.(type) {
		case Pin:
			sim.Pin(e.ID, e.X, e.Y)
		case Unpin:
			sim.Unpin(e.ID)
		case Reheat:
			sim.SetAlpha(e.Alpha)
			sim.Restart()
		case AlphaTarget:
			sim.SetAlphaTarget(e.Target)
			sim.Restart()
		default:
			events = append(events, e)
		}
	}
	return events
}
