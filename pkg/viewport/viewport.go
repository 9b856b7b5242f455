package viewport

import "math"

const (
	DefaultMinScale = 0.1
	DefaultMaxScale = 4.0

	// wheelSensitivity matches a browser wheel in pixel mode
	wheelSensitivity = 0.002
)

// Transform maps simulation coordinates to screen coordinates:
// screen = world*K + (X, Y)
type Transform struct {
	K float64 `json:"k"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Identity is the transform of an untouched viewport
var Identity = Transform{K: 1}

// Apply maps a world point to the screen
func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.K + t.X, y*t.K + t.Y
}

// Invert maps a screen point back to world coordinates
func (t Transform) Invert(x, y float64) (float64, float64) {
	return (x - t.X) / t.K, (y - t.Y) / t.K
}

// Options configures a Controller
type Options struct {
	MinScale float64 // default 0.1
	MaxScale float64 // default 4
}

func (o Options) withDefaults() Options {
	if o.MinScale <= 0 {
		o.MinScale = DefaultMinScale
	}
	if o.MaxScale <= 0 {
		o.MaxScale = DefaultMaxScale
	}
	if o.MaxScale < o.MinScale {
		o.MaxScale = o.MinScale
	}
	return o
}

// Controller owns the pan/zoom transform of one view. It works purely in
// screen space and never sees simulation state.
type Controller struct {
	opts      Options
	transform Transform
	onChange  func(Transform)
}

// New creates a controller at the identity transform
func New(opts Options) *Controller {
	return &Controller{opts: opts.withDefaults(), transform: Identity}
}

// OnChange registers a callback fired after every transform change
func (c *Controller) OnChange(fn func(Transform)) {
	c.onChange = fn
}

// Transform returns the current transform
func (c *Controller) Transform() Transform { return c.transform }

// Scale returns the current zoom factor
func (c *Controller) Scale() float64 { return c.transform.K }

// ScreenToWorld maps a screen point to world coordinates
func (c *Controller) ScreenToWorld(x, y float64) (float64, float64) {
	return c.transform.Invert(x, y)
}

// WorldToScreen maps a world point to screen coordinates
func (c *Controller) WorldToScreen(x, y float64) (float64, float64) {
	return c.transform.Apply(x, y)
}

// Pan translates the view by a screen-space delta
func (c *Controller) Pan(dx, dy float64) {
	c.set(Transform{K: c.transform.K, X: c.transform.X + dx, Y: c.transform.Y + dy})
}

// ZoomAt multiplies the scale by factor, keeping the world point under
// (px, py) fixed on screen. The result is clamped to the scale extent.
func (c *Controller) ZoomAt(px, py, factor float64) {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return
	}
	k := c.clampScale(c.transform.K * factor)
	wx, wy := c.transform.Invert(px, py)
	c.set(Transform{K: k, X: px - wx*k, Y: py - wy*k})
}

// ZoomWheel applies a wheel event with the given deltaY at (px, py)
func (c *Controller) ZoomWheel(px, py, deltaY float64) {
	c.ZoomAt(px, py, math.Pow(2, -deltaY*wheelSensitivity))
}

// Reset returns to the identity transform
func (c *Controller) Reset() {
	c.set(Identity)
}

func (c *Controller) clampScale(k float64) float64 {
	if math.IsNaN(k) {
		return c.transform.K
	}
	return math.Max(c.opts.MinScale, math.Min(c.opts.MaxScale, k))
}

func (c *Controller) set(t Transform) {
	if t == c.transform {
		return
	}
	c.transform = t
	if c.onChange != nil {
		c.onChange(t)
	}
}
