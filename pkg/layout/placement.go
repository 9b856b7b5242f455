package layout

import "math"

const initialRadius = 10

var initialAngle = math.Pi * (3 - math.Sqrt(5))

// place seeds positions for every node that has none yet
func (s *Simulation) place() {
	switch s.cfg.Placement {
	case PlacementRandom:
		s.placeRandom()
	case PlacementCircular:
		placeCircular(s.nodes, s.cfg)
	case PlacementHierarchical:
		placeHierarchical(s.nodes, s.links, s.cfg)
	}
	s.placePhyllotaxis()
}

// placePhyllotaxis spirals unplaced nodes out from the canvas centre.
// It doubles as the fallback for anything another placement left unset.
func (s *Simulation) placePhyllotaxis() {
	cx, cy := s.cfg.Width/2, s.cfg.Height/2
	for i, n := range s.nodes {
		if n.FX != nil {
			n.X = *n.FX
		}
		if n.FY != nil {
			n.Y = *n.FY
		}
		if math.IsNaN(n.X) || math.IsNaN(n.Y) {
			radius := initialRadius * math.Sqrt(0.5+float64(i))
			angle := float64(i) * initialAngle
			n.X = cx + radius*math.Cos(angle)
			n.Y = cy + radius*math.Sin(angle)
		}
	}
}

func (s *Simulation) placeRandom() {
	w := s.cfg.Width - 2*s.cfg.Padding
	h := s.cfg.Height - 2*s.cfg.Padding
	for _, n := range s.nodes {
		n.X = s.rng.Float64()*w + s.cfg.Padding
		n.Y = s.rng.Float64()*h + s.cfg.Padding
	}
}
