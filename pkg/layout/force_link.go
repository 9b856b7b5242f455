package layout

import "math"

// linkForce pulls linked nodes toward a fixed distance. Stiffness falls with
// degree so hubs are not torn apart by their many neighbours.
type linkForce struct {
	links     []*Link
	distance  float64
	strengths []float64
	bias      []float64
	jiggle    func() float64
}

func newLinkForce(nodes []*Node, links []*Link, distance float64, jiggle func() float64) *linkForce {
	count := make([]int, len(nodes))
	for _, l := range links {
		count[l.Source.Index]++
		count[l.Target.Index]++
	}

	f := &linkForce{
		links:     links,
		distance:  distance,
		strengths: make([]float64, len(links)),
		bias:      make([]float64, len(links)),
		jiggle:    jiggle,
	}
	for i, l := range links {
		cs, ct := count[l.Source.Index], count[l.Target.Index]
		f.strengths[i] = 1 / float64(min(cs, ct))
		f.bias[i] = float64(cs) / float64(cs+ct)
	}
	return f
}

func (f *linkForce) apply(alpha float64) {
	for i, link := range f.links {
		source, target := link.Source, link.Target

		x := target.X + target.VX - source.X - source.VX
		if x == 0 {
			x = f.jiggle()
		}
		y := target.Y + target.VY - source.Y - source.VY
		if y == 0 {
			y = f.jiggle()
		}

		l := math.Sqrt(x*x + y*y)
		l = (l - f.distance) / l * alpha * f.strengths[i]
		x *= l
		y *= l

		b := f.bias[i]
		target.VX -= x * b
		target.VY -= y * b
		b = 1 - b
		source.VX += x * b
		source.VY += y * b
	}
}
