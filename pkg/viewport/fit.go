package viewport

import "github.com/dd0wney/convograph/pkg/layout"

// Fit frames bounds inside a width x height screen with padding on every side
func (c *Controller) Fit(bounds layout.Rect, width, height, padding float64) {
	gw, gh := bounds.Width(), bounds.Height()
	if gw < 0.01 {
		gw = 1
	}
	if gh < 0.01 {
		gh = 1
	}

	sx := (width - 2*padding) / gw
	sy := (height - 2*padding) / gh
	k := min(sx, sy)
	if k <= 0 {
		k = 1
	}
	k = c.clampScale(k)

	// Centre the box in the remaining space
	cx := (bounds.MinX + bounds.MaxX) / 2
	cy := (bounds.MinY + bounds.MaxY) / 2
	c.set(Transform{K: k, X: width/2 - cx*k, Y: height/2 - cy*k})
}

// Focus centres the world point (x, y) on a width x height screen at scale k
func (c *Controller) Focus(x, y, width, height, k float64) {
	k = c.clampScale(k)
	c.set(Transform{K: k, X: width/2 - x*k, Y: height/2 - y*k})
}
