package obj

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/common"
	"golang.org/x/image/colornames"
)

// DebugDraw outlines every shape in the space through cam, coloured by
// layer.
func (cw *CollisionWorld) DebugDraw(screen *ebiten.Image, cam *Camera) {
	if cw == nil || cw.space == nil || screen == nil || cam == nil {
		return
	}
	cp.DrawSpace(cw.space, &chipmunkDrawer{screen: screen, cam: cam, world: cw})
}

// DebugRay draws a sensor probe from origin along dir.
func DebugRay(screen *ebiten.Image, cam *Camera, origin, dir cp.Vector, distance float64, hit bool) {
	clr := color.Color(colornames.Lightgrey)
	if hit {
		clr = colornames.Orange
	}
	x0, y0 := cam.ToScreen(origin)
	x1, y1 := cam.ToScreen(origin.Add(dir.Mult(distance)))
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, clr, false)
}

// DebugCircle draws a circle probe such as the ground check.
func DebugCircle(screen *ebiten.Image, cam *Camera, center cp.Vector, radius float64, hit bool) {
	clr := color.Color(colornames.Lightgrey)
	if hit {
		clr = colornames.Lime
	}
	x, y := cam.ToScreen(center)
	vector.StrokeCircle(screen, float32(x), float32(y), float32(radius*cam.Scale()), 1, clr, true)
}

type chipmunkDrawer struct {
	screen *ebiten.Image
	cam    *Camera
	world  *CollisionWorld
}

func (d *chipmunkDrawer) line(a, b cp.Vector, c color.Color) {
	x0, y0 := d.cam.ToScreen(a)
	x1, y1 := d.cam.ToScreen(b)
	vector.StrokeLine(d.screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, c, false)
}

func (d *chipmunkDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	steps := 20
	prev := cp.Vector{X: pos.X + radius, Y: pos.Y}
	for i := 1; i <= steps; i++ {
		th := float64(i) * (2 * math.Pi / float64(steps))
		cur := cp.Vector{X: pos.X + math.Cos(th)*radius, Y: pos.Y + math.Sin(th)*radius}
		d.line(prev, cur, c)
		prev = cur
	}
	d.line(pos, pos.Add(cp.ForAngle(angle).Mult(radius)), c)
}

func (d *chipmunkDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(fill))
}

func (d *chipmunkDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(outline))
	if radius > 0 {
		d.DrawCircle(a, 0, radius, outline, fill, data)
		d.DrawCircle(b, 0, radius, outline, fill, data)
	}
}

func (d *chipmunkDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count == 0 {
		return
	}
	c := fcolorToRGBA(fill)
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], c)
	}
}

func (d *chipmunkDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	x, y := d.cam.ToScreen(pos)
	l := float32(size / 2)
	vector.FillRect(d.screen, float32(x)-l, float32(y)-l, 2*l, 2*l, fcolorToRGBA(fill), false)
}

func (d *chipmunkDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *chipmunkDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1.0, B: 0.2, A: 1.0}
}

// ShapeColor picks the colour by layer: hazards red, barriers yellow, the
// player magenta and plain ground blue.
func (d *chipmunkDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape == nil {
		return cp.FColor{R: 1, G: 1, B: 1, A: 1}
	}
	layer := d.world.LayerOf(shape)
	switch {
	case layer.Has(common.LayerHazard):
		return cp.FColor{R: 1.0, G: 0.2, B: 0.2, A: 1.0}
	case layer.Has(common.LayerBarrier):
		return cp.FColor{R: 1.0, G: 0.85, B: 0.2, A: 1.0}
	case layer.Has(common.LayerPlayer):
		return cp.FColor{R: 0.9, G: 0.4, B: 0.9, A: 1.0}
	case shape.Sensor():
		return cp.FColor{R: 0.5, G: 0.5, B: 0.5, A: 0.5}
	}
	return cp.FColor{R: 0.4, G: 0.7, B: 1.0, A: 1.0}
}

func (d *chipmunkDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *chipmunkDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *chipmunkDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(v * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
