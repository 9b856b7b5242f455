package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/dd0wney/convograph/pkg/viewport"
)

// WriteSVG draws the scene as an SVG document. The viewport transform is
// applied as a group transform, like a zoomable SVG in a browser.
func WriteSVG(w io.Writer, s *Scene, t viewport.Transform, legend bool) error {
	cw := &errWriter{w: w}
	canvas := svg.New(cw)
	canvas.Start(int(math.Ceil(s.Width)), int(math.Ceil(s.Height)))
	canvas.Title("Conversation Graph")

	canvas.Gtransform(fmt.Sprintf("translate(%g,%g) scale(%g)", t.X, t.Y, t.K))

	canvas.Gstyle(fmt.Sprintf("stroke-opacity:%g", s.Style.EdgeOpacity))
	for _, e := range s.Edges {
		canvas.Line(px(e.X1), px(e.Y1), px(e.X2), px(e.Y2),
			fmt.Sprintf("stroke:%s;stroke-width:%g", e.Stroke.Color, e.Stroke.Width))
	}
	canvas.Gend()

	canvas.Group()
	for _, n := range s.Nodes {
		canvas.Circle(px(n.X), px(n.Y), px(n.Radius),
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%g", n.Fill, n.Stroke.Color, n.Stroke.Width))
	}
	for _, l := range s.Labels {
		canvas.Text(px(l.X), px(l.Y), l.Text,
			fmt.Sprintf("text-anchor:middle;font-size:%gpx;fill:%s", s.Style.LabelFontSize, s.Style.LabelColor))
	}
	canvas.Gend()

	canvas.Gend()

	if legend {
		for i, entry := range s.Style.Legend() {
			y := 20 + i*28
			canvas.Circle(20, y, 10, "fill:"+entry.Color)
			canvas.Text(40, y+5, entry.Label, "font-size:14px;fill:#000")
		}
	}

	canvas.End()
	return cw.err
}

func px(v float64) int {
	return int(math.Round(v))
}

// errWriter remembers the first write error; svgo discards them
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
