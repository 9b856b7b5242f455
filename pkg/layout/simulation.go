package layout

import (
	"math"
	"math/rand"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dd0wney/convograph/pkg/graph"
)

// generations hands out a fresh number to every simulation so that frames
// scheduled for a replaced simulation can be recognised and dropped
var generations atomic.Uint64

// force is one contribution to node velocities, applied every tick
type force interface {
	apply(alpha float64)
}

// Simulation is an alpha-cooled force-directed layout over one graph snapshot.
// It owns its nodes: nothing outside the simulation aliases them.
type Simulation struct {
	id         uuid.UUID
	generation uint64
	cfg        Config

	nodes   []*Node
	links   []*Link
	byID    map[string]*Node
	dropped int
	forces  []force
	rng     *rand.Rand

	alpha         float64
	alphaTarget   float64
	velocityDecay float64
	running       bool
	ticks         int
}

// New builds a simulation from a snapshot. Nodes are copied, edges with an
// unknown endpoint are dropped, and positions are seeded from cfg.Placement.
func New(data graph.Data, cfg Config) *Simulation {
	cfg = cfg.withDefaults()
	resolved := graph.Resolve(data)

	s := &Simulation{
		id:            uuid.New(),
		generation:    generations.Add(1),
		cfg:           cfg,
		nodes:         make([]*Node, len(data.Nodes)),
		links:         make([]*Link, len(resolved.Edges)),
		byID:          make(map[string]*Node, len(resolved.Index)),
		dropped:       resolved.Dropped,
		rng:           rand.New(rand.NewSource(cfg.Seed)),
		alpha:         1,
		velocityDecay: 1 - cfg.VelocityDecay,
		running:       true,
	}

	for i, n := range data.Nodes {
		s.nodes[i] = &Node{Node: n, Index: i, X: math.NaN(), Y: math.NaN()}
	}
	for id, i := range resolved.Index {
		s.byID[id] = s.nodes[i]
	}
	for i, e := range resolved.Edges {
		s.links[i] = &Link{Index: i, Source: s.byID[e.From], Target: s.byID[e.To], Edge: e}
	}

	s.place()

	s.forces = []force{
		newLinkForce(s.nodes, s.links, cfg.LinkDistance, s.jiggle),
		newManyBody(s.nodes, cfg, s.jiggle),
		newCenterForce(s.nodes, cfg.Width/2, cfg.Height/2, cfg.CenterStrength),
	}
	return s
}

// ID is a unique identifier for log correlation
func (s *Simulation) ID() string { return s.id.String() }

// Generation increases with every simulation built in this process
func (s *Simulation) Generation() uint64 { return s.generation }

// Config returns the effective configuration
func (s *Simulation) Config() Config { return s.cfg }

// Nodes returns the simulation nodes in input order
func (s *Simulation) Nodes() []*Node { return s.nodes }

// Links returns the resolved links
func (s *Simulation) Links() []*Link { return s.links }

// Dropped is the number of edges discarded for unknown endpoints
func (s *Simulation) Dropped() int { return s.dropped }

// Node looks up a node by id
func (s *Simulation) Node(id string) (*Node, bool) {
	n, ok := s.byID[id]
	return n, ok
}

// Alpha returns the current energy
func (s *Simulation) Alpha() float64 { return s.alpha }

// AlphaTarget returns the level alpha decays toward
func (s *Simulation) AlphaTarget() float64 { return s.alphaTarget }

// SetAlpha sets the current energy
func (s *Simulation) SetAlpha(alpha float64) { s.alpha = alpha }

// SetAlphaTarget sets the level alpha decays toward
func (s *Simulation) SetAlphaTarget(target float64) { s.alphaTarget = target }

// Running reports whether Step will keep ticking
func (s *Simulation) Running() bool { return s.running }

// Ticks is the number of ticks applied so far
func (s *Simulation) Ticks() int { return s.ticks }

// Restart resumes stepping without changing alpha
func (s *Simulation) Restart() { s.running = true }

// Stop halts stepping; Tick still works
func (s *Simulation) Stop() { s.running = false }

// Tick advances the simulation by n ticks regardless of the running state
func (s *Simulation) Tick(n int) {
	for k := 0; k < n; k++ {
		s.alpha += (s.alphaTarget - s.alpha) * s.cfg.AlphaDecay

		for _, f := range s.forces {
			f.apply(s.alpha)
		}

		for _, node := range s.nodes {
			if node.FX == nil {
				node.VX *= s.velocityDecay
				node.X += node.VX
			} else {
				node.X = *node.FX
				node.VX = 0
			}
			if node.FY == nil {
				node.VY *= s.velocityDecay
				node.Y += node.VY
			} else {
				node.Y = *node.FY
				node.VY = 0
			}
		}
		s.ticks++
	}
}

// Step is one timer step: a tick, then stop once alpha falls below AlphaMin.
// It returns whether the simulation is still running.
func (s *Simulation) Step() bool {
	if !s.running {
		return false
	}
	s.Tick(1)
	if s.alpha < s.cfg.AlphaMin {
		s.running = false
	}
	return s.running
}

// Settle steps until the simulation stops or maxTicks is reached
func (s *Simulation) Settle(maxTicks int) int {
	n := 0
	for n < maxTicks && s.Step() {
		n++
	}
	return n
}

// Pin fixes a node at (x, y)
func (s *Simulation) Pin(id string, x, y float64) bool {
	n, ok := s.byID[id]
	if !ok {
		return false
	}
	n.FX, n.FY = &x, &y
	return true
}

// Unpin releases a node back to the forces
func (s *Simulation) Unpin(id string) bool {
	n, ok := s.byID[id]
	if !ok {
		return false
	}
	n.FX, n.FY = nil, nil
	return true
}

// Bounds returns the bounding box of all node positions
func (s *Simulation) Bounds() (Rect, bool) {
	if len(s.nodes) == 0 {
		return Rect{}, false
	}
	r := Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, n := range s.nodes {
		r.MinX = math.Min(r.MinX, n.X)
		r.MaxX = math.Max(r.MaxX, n.X)
		r.MinY = math.Min(r.MinY, n.Y)
		r.MaxY = math.Max(r.MaxY, n.Y)
	}
	return r, true
}

// jiggle returns a tiny random offset used to separate coincident nodes
func (s *Simulation) jiggle() float64 {
	return (s.rng.Float64() - 0.5) * 1e-6
}
