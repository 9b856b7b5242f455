// Package tui is the interactive terminal view of a conversation graph.
package tui

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/convograph/pkg/explorer"
	"github.com/dd0wney/convograph/pkg/graph"
	"github.com/dd0wney/convograph/pkg/interaction"
	"github.com/dd0wney/convograph/pkg/logging"
	"github.com/dd0wney/convograph/pkg/render"
	"github.com/dd0wney/convograph/pkg/source"
	"github.com/dd0wney/convograph/pkg/viewport"
)

const (
	headerRows = 1
	footerRows = 1
	panelWidth = 34

	panStep  = 40.0
	zoomStep = 1.25
	fitPad   = 40.0
)

// Options configures a Model
type Options struct {
	Explorer *explorer.Explorer
	Source   source.Source
	Logger   logging.Logger

	// Height is the logical drawing height. Width is fixed when the first
	// window size arrives: canvas columns times CellWidth.
	Height        float64
	CellWidth     float64
	FrameInterval time.Duration
	EdgeTolerance float64
	ShowLabels    bool
	FetchTimeout  time.Duration

	// Changes delivers a value whenever the source should be reloaded
	Changes <-chan struct{}
}

type fetchedMsg struct {
	data *graph.Data
	err  error
}

type frameMsg struct {
	generation uint64
}

type reloadMsg struct{}

// Model is the bubbletea model. It is used through a pointer so explorer
// callbacks can update it.
type Model struct {
	opts     Options
	explorer *explorer.Explorer
	logger   logging.Logger

	viewport *viewport.Controller
	canvas   render.Canvas
	gesture  interaction.Gesture
	spinner  spinner.Model
	help     help.Model
	keys     keyMap

	width, height int
	mounted       bool
	logicalWidth  float64

	framePending bool
	frameGen     uint64

	lastNode *graph.Node
	lastEdge *graph.Edge
	status   string
}

// New creates the model; the fetch starts once the terminal size is known
func New(opts Options) *Model {
	if opts.Height <= 0 {
		opts.Height = 600
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = 10
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = time.Second / 30
	}
	if opts.EdgeTolerance <= 0 {
		opts.EdgeTolerance = 4
	}
	if opts.Explorer == nil {
		opts.Explorer = explorer.New(explorer.Options{})
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		opts:     opts,
		explorer: opts.Explorer,
		logger:   logger.With(logging.Component("tui")),
		viewport: viewport.New(viewport.Options{}),
		spinner:  sp,
		help:     help.New(),
		keys:     keys,
	}

	m.explorer.OnNodeClick(func(n graph.Node) {
		m.lastNode = &n
		m.status = "clicked node " + n.ID
		m.logger.Info("node clicked", logging.NodeID(n.ID))
	})
	m.explorer.OnEdgeClick(func(e graph.Edge) {
		m.lastEdge = &e
		m.status = "clicked edge " + e.Key().String()
		m.logger.Info("edge clicked", logging.Edge(e.Key().String()))
	})
	return m
}

// Explorer returns the session behind the view
func (m *Model) Explorer() *explorer.Explorer { return m.explorer }

// Transform returns the current viewport transform
func (m *Model) Transform() viewport.Transform { return m.viewport.Transform() }

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForChange())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.resize(msg.Width, msg.Height)

	case fetchedMsg:
		m.explorer.Receive(msg.data, msg.err)
		m.lastNode, m.lastEdge = nil, nil
		if m.explorer.State() == explorer.StateError {
			m.status = ""
			return m, nil
		}
		m.status = fmt.Sprintf("loaded %d nodes", len(m.explorer.Simulation().Nodes()))
		return m, m.scheduleFrame()

	case frameMsg:
		if msg.generation == m.frameGen {
			m.framePending = false
		}
		if m.explorer.Frame(msg.generation) {
			return m, m.scheduleFrame()
		}
		return m, nil

	case reloadMsg:
		m.logger.Info("source changed, reloading")
		return m, tea.Batch(m.reload(), m.waitForChange())

	case spinner.TickMsg:
		if m.explorer.State() != explorer.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m, m.mouse(msg)

	case tea.KeyMsg:
		return m, m.key(msg)
	}
	return m, nil
}

func (m *Model) resize(width, height int) tea.Cmd {
	m.width, m.height = width, height
	m.help.Width = width

	cols := max(width-panelWidth-1, 10)
	rows := max(height-headerRows-footerRows, 5)

	var cmd tea.Cmd
	if !m.mounted {
		m.mounted = true
		m.logicalWidth = float64(cols) * m.opts.CellWidth
		m.explorer.Resize(m.logicalWidth, m.opts.Height)
		cmd = m.fetch()
	}

	showLabels := m.canvas.ShowLabels
	if m.canvas.Cols == 0 {
		showLabels = m.opts.ShowLabels
	}
	m.canvas = render.NewCanvas(cols, rows, m.logicalWidth, m.opts.Height)
	m.canvas.ShowLabels = showLabels
	return cmd
}

func (m *Model) fetch() tea.Cmd {
	src := m.opts.Source
	if src == nil {
		return func() tea.Msg { return fetchedMsg{err: fmt.Errorf("no source configured")} }
	}
	ex, timeout := m.explorer, m.opts.FetchTimeout
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		data, err := ex.Fetch(ctx, src)
		return fetchedMsg{data: data, err: err}
	})
}

func (m *Model) reload() tea.Cmd {
	m.explorer.Loading()
	m.gesture = interaction.Gesture{}
	m.status = "reloading"
	return m.fetch()
}

func (m *Model) waitForChange() tea.Cmd {
	ch := m.opts.Changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return reloadMsg{}
	}
}

// scheduleFrame asks for the next frame of the current simulation unless
// one is already pending
func (m *Model) scheduleFrame() tea.Cmd {
	gen := m.explorer.Generation()
	if !m.explorer.Running() || (m.framePending && m.frameGen == gen) {
		return nil
	}
	m.framePending, m.frameGen = true, gen
	return tea.Tick(m.opts.FrameInterval, func(time.Time) tea.Msg {
		return frameMsg{generation: gen}
	})
}

func (m *Model) dispatch(cmds ...interaction.Command) tea.Cmd {
	for _, c := range cmds {
		if err := m.explorer.Dispatch(c); err != nil {
			m.logger.Debug("command ignored", logging.Command(interaction.Name(c)), logging.Error(err))
			return nil
		}
	}
	return m.scheduleFrame()
}

func (m *Model) key(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	}

	if m.explorer.State() != explorer.StateReady {
		return nil
	}

	w, h := m.logicalWidth, m.opts.Height
	switch {
	case key.Matches(msg, m.keys.Next):
		return m.dispatch(interaction.SelectNode{ID: m.cycle(1)})
	case key.Matches(msg, m.keys.Prev):
		return m.dispatch(interaction.SelectNode{ID: m.cycle(-1)})
	case key.Matches(msg, m.keys.Click):
		if id := m.explorer.Selection().NodeID; id != "" {
			return m.dispatch(interaction.ClickNode{ID: id})
		}
	case key.Matches(msg, m.keys.Pin):
		if id := m.explorer.Selection().NodeID; id != "" {
			return m.dispatch(interaction.PinToggle{ID: id})
		}
	case key.Matches(msg, m.keys.Clear):
		return m.dispatch(interaction.ClickCanvas{})
	case key.Matches(msg, m.keys.Up):
		m.viewport.Pan(0, panStep)
	case key.Matches(msg, m.keys.Down):
		m.viewport.Pan(0, -panStep)
	case key.Matches(msg, m.keys.Left):
		m.viewport.Pan(panStep, 0)
	case key.Matches(msg, m.keys.Right):
		m.viewport.Pan(-panStep, 0)
	case key.Matches(msg, m.keys.ZoomIn):
		m.viewport.ZoomAt(w/2, h/2, zoomStep)
	case key.Matches(msg, m.keys.ZoomOut):
		m.viewport.ZoomAt(w/2, h/2, 1/zoomStep)
	case key.Matches(msg, m.keys.Fit):
		if b, ok := m.explorer.Simulation().Bounds(); ok {
			m.viewport.Fit(b, w, h, fitPad)
		}
	case key.Matches(msg, m.keys.Focus):
		if v, ok := m.explorer.Scene().Node(m.explorer.Selection().NodeID); ok {
			m.viewport.Focus(v.X, v.Y, w, h, m.viewport.Scale())
		}
	case key.Matches(msg, m.keys.Reset):
		m.viewport.Reset()
	case key.Matches(msg, m.keys.Labels):
		m.canvas.ShowLabels = !m.canvas.ShowLabels
	}
	return nil
}

// cycle returns the id of the node dir steps from the selected one
func (m *Model) cycle(dir int) string {
	nodes := m.explorer.Simulation().Nodes()
	if len(nodes) == 0 {
		return ""
	}
	current := -1
	if id := m.explorer.Selection().NodeID; id != "" {
		if n, ok := m.explorer.Simulation().Node(id); ok {
			current = n.Index
		}
	}
	next := current + dir
	if current < 0 && dir < 0 {
		next = len(nodes) - 1
	}
	next = (next%len(nodes) + len(nodes)) % len(nodes)
	return nodes[next].ID
}

func (m *Model) mouse(msg tea.MouseMsg) tea.Cmd {
	if m.explorer.State() != explorer.StateReady {
		return nil
	}

	col, row := msg.X, msg.Y-headerRows
	inCanvas := col >= 0 && row >= 0 && col < m.canvas.Cols && row < m.canvas.Rows
	sx, sy := m.canvas.CellCenter(col, row)
	wx, wy := m.viewport.ScreenToWorld(sx, sy)

	switch {
	case msg.Button == tea.MouseButtonWheelUp && inCanvas:
		m.viewport.ZoomWheel(sx, sy, -100)
		return nil
	case msg.Button == tea.MouseButtonWheelDown && inCanvas:
		m.viewport.ZoomWheel(sx, sy, 100)
		return nil
	}

	var out interaction.Output
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inCanvas {
			return nil
		}
		out = m.gesture.Press(m.hitTest(wx, wy), sx, sy)
	case tea.MouseActionMotion:
		out = m.gesture.Move(sx, sy, wx, wy)
	case tea.MouseActionRelease:
		out = m.gesture.Release(sx, sy)
	}

	if out.PanX != 0 || out.PanY != 0 {
		m.viewport.Pan(out.PanX, out.PanY)
	}
	return m.dispatch(out.Commands...)
}

// hitTest resolves a world point with a pick radius of at least half a
// cell, since a glyph only shows which cell a node falls in
func (m *Model) hitTest(wx, wy float64) interaction.Hit {
	scene := m.explorer.Scene()
	k := m.viewport.Scale()
	cell := math.Hypot(m.canvas.CellWidth, m.canvas.CellHeight) / 2 / k
	radius := math.Max(scene.Style.NodeRadius, cell)
	tolerance := math.Max(m.opts.EdgeTolerance/k, math.Min(m.canvas.CellWidth, m.canvas.CellHeight)/2/k)
	return interaction.HitTest(scene.Points(), scene.Segments(), wx, wy, radius, tolerance)
}
