// Package explorer owns one viewing session: the current graph snapshot,
// its simulation and scene, the selection, and the Loading, Error and Ready
// states between them. All methods except Fetch must be called from a
// single goroutine.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dd0wney/convograph/pkg/graph"
	"github.com/dd0wney/convograph/pkg/interaction"
	"github.com/dd0wney/convograph/pkg/layout"
	"github.com/dd0wney/convograph/pkg/logging"
	"github.com/dd0wney/convograph/pkg/metrics"
	"github.com/dd0wney/convograph/pkg/render"
	"github.com/dd0wney/convograph/pkg/source"
	"github.com/dd0wney/convograph/pkg/viewport"
)

// ErrNotReady is returned by operations that need a loaded graph
var ErrNotReady = errors.New("explorer is not ready")

// State is the session phase
type State int

const (
	StateLoading State = iota
	StateError
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// FramePublisher receives every synced frame
type FramePublisher interface {
	Publish(render.Frame) error
}

// Options configures New. Zero values get defaults.
type Options struct {
	Layout    layout.Config
	Style     *render.Style
	Logger    logging.Logger
	Metrics   *metrics.Registry
	Publisher FramePublisher
}

// Explorer is one viewing session
type Explorer struct {
	layoutCfg layout.Config
	style     render.Style
	logger    logging.Logger
	metrics   *metrics.Registry
	publisher FramePublisher

	state State
	phase atomic.Int32
	err   error

	data  graph.Data
	sim   *layout.Simulation
	scene *render.Scene
	sel   interaction.Selection
	hl    *interaction.Highlighter

	onNodeClick func(graph.Node)
	onEdgeClick func(graph.Edge)
}

// New creates an explorer in the Loading state
func New(opts Options) *Explorer {
	style := render.DefaultStyle()
	if opts.Style != nil {
		style = *opts.Style
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	e := &Explorer{
		layoutCfg: opts.Layout,
		style:     style,
		logger:    logger.With(logging.Component("explorer")),
		metrics:   opts.Metrics,
		publisher: opts.Publisher,
	}
	e.setState(StateLoading)
	return e
}

// OnNodeClick registers the handler fired synchronously by node clicks
func (e *Explorer) OnNodeClick(fn func(graph.Node)) { e.onNodeClick = fn }

// OnEdgeClick registers the handler fired synchronously by edge clicks
func (e *Explorer) OnEdgeClick(fn func(graph.Edge)) { e.onEdgeClick = fn }

// State returns the current phase
func (e *Explorer) State() State { return e.state }

// Phase returns the current phase and is safe to call from any goroutine
func (e *Explorer) Phase() State { return State(e.phase.Load()) }

func (e *Explorer) setState(s State) {
	e.state = s
	e.phase.Store(int32(s))
}

// Err returns the error behind the Error state
func (e *Explorer) Err() error { return e.err }

// Message returns the user-visible text for the Error state
func (e *Explorer) Message() string { return source.Message(e.err) }

// Simulation returns the current simulation, nil unless Ready
func (e *Explorer) Simulation() *layout.Simulation { return e.sim }

// Scene returns the current scene, nil unless Ready
func (e *Explorer) Scene() *render.Scene { return e.scene }

// Selection returns the current selection
func (e *Explorer) Selection() interaction.Selection { return e.sel }

// Highlighter returns the highlight tiers for the current selection
func (e *Explorer) Highlighter() *interaction.Highlighter { return e.hl }

// Style returns the render style
func (e *Explorer) Style() render.Style { return e.style }

// Generation returns the current simulation generation, 0 if none
func (e *Explorer) Generation() uint64 {
	if e.sim == nil {
		return 0
	}
	return e.sim.Generation()
}

// Running reports whether the simulation still wants frames
func (e *Explorer) Running() bool {
	return e.sim != nil && e.sim.Running()
}

// Resize changes the layout surface used by the next load
func (e *Explorer) Resize(width, height float64) {
	e.layoutCfg.Width = width
	e.layoutCfg.Height = height
}

// Loading enters the Loading state, keeping nothing of the previous graph
func (e *Explorer) Loading() {
	e.reset()
	e.setState(StateLoading)
}

// Fetch retrieves a snapshot from src and records the outcome. It touches
// no session state and is safe to call from a command goroutine.
func (e *Explorer) Fetch(ctx context.Context, src source.Source) (*graph.Data, error) {
	kind := source.Kind(src)
	start := time.Now()

	data, err := src.Fetch(ctx)
	elapsed := time.Since(start)

	size := 0
	if data != nil {
		size = len(data.Nodes) + len(data.Edges)
	}
	if e.metrics != nil {
		e.metrics.RecordFetch(kind, source.Status(err), elapsed, size)
	}

	if err != nil {
		e.logger.Error("fetch failed",
			logging.SourceKind(kind),
			logging.Latency(elapsed),
			logging.Error(err))
		return nil, err
	}
	e.logger.Info("fetched graph",
		logging.SourceKind(kind),
		logging.Latency(elapsed),
		logging.Int("nodes", len(data.Nodes)),
		logging.Int("edges", len(data.Edges)))
	return data, nil
}

// Receive applies a fetch result
func (e *Explorer) Receive(data *graph.Data, err error) {
	if err == nil && data == nil {
		err = fmt.Errorf("%w: empty response", source.ErrMalformed)
	}
	if err != nil {
		e.Fail(err)
		return
	}
	e.SetData(*data)
}

// Load fetches from src and applies the result
func (e *Explorer) Load(ctx context.Context, src source.Source) error {
	e.Loading()
	data, err := e.Fetch(ctx, src)
	e.Receive(data, err)
	return err
}

// Fail enters the Error state. Nothing is rendered.
func (e *Explorer) Fail(err error) {
	e.reset()
	e.setState(StateError)
	e.err = err
	if e.metrics != nil {
		e.metrics.RecordGraphLoadError()
	}
}

// SetData replaces the graph. The snapshot is copied; a fresh simulation
// with a new generation replaces any previous one and the selection is
// cleared. Validation issues are logged and never reject the data.
func (e *Explorer) SetData(data graph.Data) {
	issues := graph.Validate(data)
	for _, issue := range issues {
		e.logger.Warn("graph validation issue", logging.String("issue", issue.String()))
	}

	e.reset()
	e.data = data.Clone()
	e.sim = layout.New(e.data, e.layoutCfg)
	e.setState(StateReady)
	e.rebuild()

	e.logger.Info("graph loaded",
		logging.Generation(e.sim.Generation()),
		logging.SimulationID(e.sim.ID()),
		logging.Int("nodes", len(e.sim.Nodes())),
		logging.Int("links", len(e.sim.Links())),
		logging.Int("dropped", e.sim.Dropped()))

	if e.metrics != nil {
		e.metrics.RecordGraphLoad(len(e.sim.Nodes()), len(e.sim.Links()), e.sim.Dropped(), len(issues), e.sim.Generation())
	}
}

// Select applies the externally controlled selection inputs. An edge id
// takes the "from->to" form; when both are empty the selection is cleared.
func (e *Explorer) Select(nodeID, edgeID string) error {
	if edgeID != "" {
		key, ok := graph.ParseEdgeKey(edgeID)
		if !ok {
			return fmt.Errorf("invalid edge id %q", edgeID)
		}
		return e.Dispatch(interaction.SelectEdge{Key: key})
	}
	return e.Dispatch(interaction.SelectNode{ID: nodeID})
}

// Dispatch reduces cmd against the selection, applies its effects to the
// simulation and fires click handlers
func (e *Explorer) Dispatch(cmd interaction.Command) error {
	if e.state != StateReady {
		return ErrNotReady
	}

	wasRunning := e.sim.Running()
	sel, effects := interaction.Reduce(e.sel, cmd, e.sim)
	events := interaction.Apply(e.sim, effects)

	if !wasRunning && e.sim.Running() && e.metrics != nil {
		e.metrics.RecordRestart()
	}

	if !selectionEqual(sel, e.sel) {
		e.sel = sel
		e.rebuild()
	}

	name := interaction.Name(cmd)
	e.logger.Debug("command", logging.Command(name), logging.Alpha(e.sim.Alpha()))
	if e.metrics != nil {
		e.metrics.RecordCommand(name, e.pinned())
	}

	for _, ev := range events {
		switch ev := ev.(type) {
		case interaction.NodeClicked:
			if e.onNodeClick != nil {
				e.onNodeClick(ev.Node)
			}
		case interaction.EdgeClicked:
			if e.onEdgeClick != nil {
				e.onEdgeClick(ev.Edge)
			}
		}
	}
	return nil
}

// Render rasterizes the current scene onto c through t and records the
// frame. It returns "" unless the explorer is Ready.
func (e *Explorer) Render(c render.Canvas, t viewport.Transform) string {
	if e.state != StateReady {
		return ""
	}
	start := time.Now()
	out := c.Render(e.scene, t)
	if e.metrics != nil {
		e.metrics.RecordFrame(time.Since(start))
	}
	return out
}

// Frame advances the simulation one step for a frame scheduled under
// generation and syncs the scene. It reports whether another frame should
// be scheduled; frames of a superseded simulation are dropped.
func (e *Explorer) Frame(generation uint64) bool {
	if e.state != StateReady || generation != e.sim.Generation() {
		if e.metrics != nil {
			e.metrics.RecordStaleFrame()
		}
		return false
	}

	running := e.sim.Step()
	e.scene.Sync(e.sim)

	if e.metrics != nil {
		e.metrics.RecordTicks(1, e.sim.Alpha())
		if !running {
			e.metrics.RecordSettled(e.sim.Ticks())
		}
	}
	if !running {
		e.logger.Debug("simulation settled",
			logging.Generation(generation),
			logging.Int("ticks", e.sim.Ticks()))
	}

	e.publish()
	return running
}

// Settle runs the simulation to rest without frames and syncs the scene
func (e *Explorer) Settle(maxTicks int) (int, error) {
	if e.state != StateReady {
		return 0, ErrNotReady
	}
	n := e.sim.Settle(maxTicks)
	e.scene.Sync(e.sim)
	if e.metrics != nil {
		e.metrics.RecordTicks(n, e.sim.Alpha())
		e.metrics.RecordSettled(e.sim.Ticks())
	}
	e.publish()
	return n, nil
}

// HitTest resolves a world-space point against the current scene
func (e *Explorer) HitTest(x, y, tolerance float64) interaction.Hit {
	if e.state != StateReady {
		return interaction.Hit{Kind: interaction.HitCanvas}
	}
	return e.scene.HitTest(x, y, tolerance)
}

// SelectedNode returns the selected node record
func (e *Explorer) SelectedNode() (graph.Node, bool) {
	if e.sim == nil || e.sel.NodeID == "" {
		return graph.Node{}, false
	}
	n, ok := e.sim.Node(e.sel.NodeID)
	if !ok {
		return graph.Node{}, false
	}
	return n.Node, true
}

// SelectedEdge returns the selected edge record
func (e *Explorer) SelectedEdge() (graph.Edge, bool) {
	if e.sel.Edge == nil {
		return graph.Edge{}, false
	}
	return e.data.FindEdge(*e.sel.Edge)
}

// Export snapshots the current layout
func (e *Explorer) Export() (layout.Layout, error) {
	if e.state != StateReady {
		return layout.Layout{}, ErrNotReady
	}
	return layout.Export(e.sim), nil
}

func (e *Explorer) reset() {
	e.err = nil
	e.data = graph.Data{}
	e.sim = nil
	e.scene = nil
	e.sel = interaction.Selection{}
	e.hl = nil
}

// rebuild re-derives highlight tiers and the scene from the selection
func (e *Explorer) rebuild() {
	links := e.sim.Links()
	edges := make([]graph.Edge, len(links))
	for i, l := range links {
		edges[i] = l.Edge
	}
	e.hl = interaction.NewHighlighter(e.sel, edges)
	e.scene = render.Build(e.sim, e.hl, e.style)
}

func (e *Explorer) publish() {
	if e.publisher == nil {
		return
	}
	err := e.publisher.Publish(render.Frame{
		Generation: e.sim.Generation(),
		Alpha:      e.sim.Alpha(),
		Scene:      e.scene,
	})
	if e.metrics != nil {
		e.metrics.RecordPublish(err)
	}
	if err != nil {
		e.logger.Debug("publish failed", logging.Error(err))
	}
}

func (e *Explorer) pinned() int {
	n := 0
	for _, node := range e.sim.Nodes() {
		if node.Pinned() {
			n++
		}
	}
	return n
}

func selectionEqual(a, b interaction.Selection) bool {
	if a.NodeID != b.NodeID {
		return false
	}
	if a.Edge == nil || b.Edge == nil {
		return a.Edge == nil && b.Edge == nil
	}
	return *a.Edge == *b.Edge
}
