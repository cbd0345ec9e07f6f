package obj

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Camera maps world units (Y up) to screen pixels (Y down). It follows a
// target and stays inside its bounds, normally the current room.
type Camera struct {
	Pos cp.Vector

	screenW int
	screenH int
	scale   float64

	// smoothing factor (0..1). higher -> faster follow.
	smooth float64
	bounds cp.BB
}

// NewCamera creates a camera for a screen of w x h pixels drawing scale
// pixels per world unit.
func NewCamera(w, h int, scale float64) *Camera {
	return &Camera{screenW: w, screenH: h, scale: scale, smooth: 0.15}
}

func (c *Camera) Scale() float64 {
	return c.scale
}

func (c *Camera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.screenW = w
	c.screenH = h
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = math.Max(0, f)
}

// SetBounds limits the view to bb. A zero box leaves the camera unbounded.
func (c *Camera) SetBounds(bb cp.BB) {
	c.bounds = bb
}

func (c *Camera) Bounds() cp.BB {
	return c.bounds
}

func (c *Camera) halfView() cp.Vector {
	return cp.Vector{X: float64(c.screenW) / c.scale / 2, Y: float64(c.screenH) / c.scale / 2}
}

// View is the visible region in world units.
func (c *Camera) View() cp.BB {
	h := c.halfView()
	return cp.NewBBForExtents(c.Pos, h.X, h.Y)
}

// Update moves the camera toward target. Call it once per frame.
func (c *Camera) Update(target cp.Vector) {
	if c.smooth <= 0 {
		c.Pos = target
	} else {
		c.Pos = c.Pos.Lerp(target, math.Min(c.smooth, 1))
	}
	c.clamp()
}

// SnapTo places the camera on target immediately.
func (c *Camera) SnapTo(target cp.Vector) {
	c.Pos = target
	c.clamp()
}

func (c *Camera) clamp() {
	// snap to the pixel grid so tiles don't shimmer
	c.Pos.X = math.Round(c.Pos.X*c.scale) / c.scale
	c.Pos.Y = math.Round(c.Pos.Y*c.scale) / c.scale

	if c.bounds == (cp.BB{}) {
		return
	}
	h := c.halfView()
	c.Pos.X = clampAxis(c.Pos.X, c.bounds.L, c.bounds.R, h.X)
	c.Pos.Y = clampAxis(c.Pos.Y, c.bounds.B, c.bounds.T, h.Y)
}

// clampAxis keeps a view of half-size half inside [lo, hi], centring it
// when the range is smaller than the view.
func clampAxis(v, lo, hi, half float64) float64 {
	if hi-lo <= 2*half {
		return (lo + hi) / 2
	}
	return math.Max(lo+half, math.Min(v, hi-half))
}

// ToScreen converts a world point to screen pixels.
func (c *Camera) ToScreen(p cp.Vector) (float64, float64) {
	view := c.View()
	return (p.X - view.L) * c.scale, (view.T - p.Y) * c.scale
}

// RectToScreen converts a world box to a screen rectangle's top-left corner
// and size.
func (c *Camera) RectToScreen(bb cp.BB) (x, y, w, h float64) {
	x, y = c.ToScreen(cp.Vector{X: bb.L, Y: bb.T})
	return x, y, (bb.R - bb.L) * c.scale, (bb.T - bb.B) * c.scale
}
