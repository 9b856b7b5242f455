package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/convograph/pkg/interaction"
	"github.com/dd0wney/convograph/pkg/viewport"
)

const (
	glyphNode      = '●'
	glyphConnected = '◎'
	glyphSelected  = '◉'
	glyphEdge      = '·'
	glyphEdgeHot   = '•'
)

// Canvas rasterizes scenes onto a character grid. Each cell covers
// CellWidth x CellHeight screen units.
type Canvas struct {
	Cols       int
	Rows       int
	CellWidth  float64
	CellHeight float64

	LabelColor lipgloss.TerminalColor
	ShowLabels bool
}

// NewCanvas sizes a canvas so that cols x rows cells cover width x height
func NewCanvas(cols, rows int, width, height float64) Canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	return Canvas{
		Cols:       cols,
		Rows:       rows,
		CellWidth:  width / float64(cols),
		CellHeight: height / float64(rows),
		LabelColor: lipgloss.AdaptiveColor{Light: "#000000", Dark: "#DDDDDD"},
		ShowLabels: true,
	}
}

// CellCenter returns the screen position of the middle of a cell
func (c Canvas) CellCenter(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * c.CellWidth, (float64(row) + 0.5) * c.CellHeight
}

// Cell returns the cell containing screen position (x, y)
func (c Canvas) Cell(x, y float64) (int, int, bool) {
	if !finite(x) || !finite(y) || x < 0 || y < 0 {
		return 0, 0, false
	}
	col := int(x / c.CellWidth)
	row := int(y / c.CellHeight)
	if col >= c.Cols || row >= c.Rows {
		return 0, 0, false
	}
	return col, row, true
}

type cell struct {
	r     rune
	color lipgloss.TerminalColor
	bold  bool
}

type grid struct {
	canvas Canvas
	cells  [][]cell
}

func (g *grid) set(x, y float64, c cell) {
	col, row, ok := g.canvas.Cell(x, y)
	if !ok {
		return
	}
	g.cells[row][col] = c
}

// line draws a DDA line between two screen points
func (g *grid) line(x1, y1, x2, y2 float64, c cell) {
	if !finite(x1) || !finite(y1) || !finite(x2) || !finite(y2) {
		return
	}
	dc := (x2 - x1) / g.canvas.CellWidth
	dr := (y2 - y1) / g.canvas.CellHeight
	span := math.Min(math.Max(math.Abs(dc), math.Abs(dr)), float64(4*(g.canvas.Cols+g.canvas.Rows)))
	steps := max(int(math.Ceil(span)), 1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		g.set(x1+(x2-x1)*t, y1+(y2-y1)*t, c)
	}
}

func (g *grid) text(x, y float64, s string, c cell) {
	runes := []rune(s)
	start := x - float64(len(runes))*g.canvas.CellWidth/2
	for i, r := range runes {
		c.r = r
		g.set(start+(float64(i)+0.5)*g.canvas.CellWidth, y, c)
	}
}

// Render draws s through transform t and returns the grid as styled text
func (c Canvas) Render(s *Scene, t viewport.Transform) string {
	g := &grid{canvas: c, cells: make([][]cell, c.Rows)}
	for i := range g.cells {
		g.cells[i] = make([]cell, c.Cols)
	}

	for _, e := range s.Edges {
		x1, y1 := t.Apply(e.X1, e.Y1)
		x2, y2 := t.Apply(e.X2, e.Y2)
		glyph := glyphEdge
		if e.Highlight != interaction.Default {
			glyph = glyphEdgeHot
		}
		g.line(x1, y1, x2, y2, cell{r: glyph, color: lipgloss.Color(e.Stroke.Color)})
	}

	if c.ShowLabels {
		for i, l := range s.Labels {
			x, y := t.Apply(l.X, l.Y)
			g.text(x, y, l.Text, cell{color: c.LabelColor, bold: s.Nodes[i].Highlight == interaction.Selected})
		}
	}

	for _, n := range s.Nodes {
		x, y := t.Apply(n.X, n.Y)
		glyph := glyphNode
		switch n.Highlight {
		case interaction.Selected:
			glyph = glyphSelected
		case interaction.Connected:
			glyph = glyphConnected
		}
		g.set(x, y, cell{r: glyph, color: lipgloss.Color(n.Fill), bold: n.Highlight != interaction.Default})
	}

	return g.String()
}

func (g *grid) String() string {
	styles := make(map[cell]lipgloss.Style)
	styleFor := func(c cell) lipgloss.Style {
		key := cell{color: c.color, bold: c.bold}
		st, ok := styles[key]
		if !ok {
			st = lipgloss.NewStyle().Foreground(c.color).Bold(c.bold)
			styles[key] = st
		}
		return st
	}

	var b strings.Builder
	for row, cells := range g.cells {
		if row > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		var runCell cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runCell.color == nil {
				b.WriteString(run.String())
			} else {
				b.WriteString(styleFor(runCell).Render(run.String()))
			}
			run.Reset()
		}
		for _, c := range cells {
			if c.r == 0 {
				c = cell{r: ' '}
			}
			if c.color != runCell.color || c.bold != runCell.bold {
				flush()
				runCell = c
			}
			run.WriteRune(c.r)
		}
		flush()
	}
	return b.String()
}
