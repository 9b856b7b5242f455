package layout

import "math"

// placeCircular arranges nodes evenly on a circle around the canvas centre
func placeCircular(nodes []*Node, cfg Config) {
	if len(nodes) == 0 {
		return
	}

	centerX := cfg.Width / 2
	centerY := cfg.Height / 2
	radius := math.Max(math.Min(centerX, centerY)-cfg.Padding, initialRadius)

	angleStep := 2 * math.Pi / float64(len(nodes))
	for i, n := range nodes {
		angle := float64(i) * angleStep
		n.X = centerX + radius*math.Cos(angle)
		n.Y = centerY + radius*math.Sin(angle)
	}
}
