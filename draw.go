package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/entity"
	"github.com/milk9111/climber/levels"
	"github.com/milk9111/climber/obj"
	"github.com/milk9111/climber/player"
	"golang.org/x/image/colornames"
)

// tilePixels is the size of the cached tile images before scaling.
const tilePixels = 32

var background = color.RGBA{R: 0x1b, G: 0x1d, B: 0x2b, A: 0xff}

type drawer struct {
	tiles map[byte]*ebiten.Image
}

func newDrawer() *drawer {
	return &drawer{tiles: make(map[byte]*ebiten.Image)}
}

// tileImage returns the cached image for a level tile, building it on first use.
func (d *drawer) tileImage(tile byte) *ebiten.Image {
	if img, ok := d.tiles[tile]; ok {
		return img
	}
	var img *ebiten.Image
	switch tile {
	case levels.TileSolid:
		img = squareImage(color.RGBA{R: 0x3c, G: 0x78, B: 0xff, A: 0xff})
	case levels.TileLedge:
		img = ebiten.NewImage(tilePixels, tilePixels)
		img.SubImage(image.Rect(0, 0, tilePixels, tilePixels/4)).(*ebiten.Image).Fill(colornames.Tan)
	case levels.TileBarrier:
		img = squareImage(color.NRGBA{R: 0xf0, G: 0xd0, B: 0x40, A: 0x90})
	case levels.TileSpike:
		img = triangleImage(tilePixels, color.RGBA{R: 0xff, A: 0xff})
	}
	d.tiles[tile] = img
	return img
}

func squareImage(c color.Color) *ebiten.Image {
	img := ebiten.NewImage(tilePixels, tilePixels)
	img.Fill(c)
	return img
}

// triangleImage builds an upward-pointing triangle filling the lower half
// of a tile.
func triangleImage(size int, col color.RGBA) *ebiten.Image {
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	half := size / 2
	cx := float64(size) / 2
	for y := half; y < size; y++ {
		progress := float64(y-half) / float64(half-1)
		rowWidth := progress * float64(size)
		left := cx - rowWidth/2
		right := cx + rowWidth/2
		for x := 0; x < size; x++ {
			fx := float64(x) + 0.5
			if fx >= left && fx <= right {
				rgba.Set(x, y, col)
			}
		}
	}
	return ebiten.NewImageFromImage(rgba)
}

func (d *drawer) Draw(screen *ebiten.Image, g *Game) {
	screen.Fill(background)
	w := g.world
	cam := g.camera

	d.drawTiles(screen, cam, w.Level)
	for _, c := range w.Crumbles {
		d.drawCrumble(screen, cam, c)
	}
	for _, p := range w.Platforms {
		fillRect(screen, cam, p.Bounds(), colornames.Slategray)
	}
	for _, p := range w.Pickups {
		d.drawPickup(screen, cam, p)
	}
	d.drawPuffs(screen, cam, w.Player.Puffs)
	d.drawPlayer(screen, cam, w.Player, w.Respawning())

	if g.opts.Debug {
		w.CollisionWorld.DebugDraw(screen, cam)
		d.drawSensors(screen, cam, w.Controller())
	}
	d.drawHUD(screen, g)
}

func (d *drawer) drawTiles(screen *ebiten.Image, cam *obj.Camera, lvl *levels.Level) {
	view := cam.View()
	x0 := max(int(math.Floor(view.L)), 0)
	x1 := min(int(math.Ceil(view.R)), lvl.Width-1)
	y0 := max(int(math.Floor(view.B)), 0)
	y1 := min(int(math.Ceil(view.T)), lvl.Height-1)
	scale := cam.Scale() / tilePixels

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img := d.tileImage(lvl.At(x, y))
			if img == nil {
				continue
			}
			sx, sy := cam.ToScreen(cp.Vector{X: float64(x), Y: float64(y + 1)})
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(scale, scale)
			op.GeoM.Translate(sx, sy)
			screen.DrawImage(img, op)
		}
	}
}

func (d *drawer) drawCrumble(screen *ebiten.Image, cam *obj.Camera, c *obj.Crumble) {
	bb := c.Bounds()
	switch c.State() {
	case obj.CrumbleGone:
		strokeRect(screen, cam, bb, color.NRGBA{R: 0x80, G: 0x60, B: 0x40, A: 0x60})
		return
	case obj.CrumbleShaking:
		shake := math.Sin(c.Progress()*60) * 0.04
		bb = bb.Offset(cp.Vector{X: shake})
	}
	fillRect(screen, cam, bb, colornames.Peru)
}

func (d *drawer) drawPickup(screen *ebiten.Image, cam *obj.Camera, p *obj.Pickup) {
	if p.Disabled {
		return
	}
	if p.Kind == obj.PickupSpring {
		fillRect(screen, cam, p.Bounds(), colornames.Orangered)
		return
	}
	x, y := cam.ToScreen(p.Pos.Add(cp.Vector{Y: p.Hover()}))
	vector.FillCircle(screen, float32(x), float32(y), float32(0.25*cam.Scale()), colornames.Springgreen, true)
}

func (d *drawer) drawPlayer(screen *ebiten.Image, cam *obj.Camera, p *entity.Player, respawning bool) {
	c := p.Controller
	bb := p.Body.Bounds()

	var body color.Color = p.Spec.Color
	switch {
	case respawning:
		r, g, b, _ := p.Spec.Color.RGBA()
		body = color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0x60}
	case c.Flashing():
		body = colornames.White
	case !c.CanDash():
		body = colornames.Lightskyblue
	}
	fillRect(screen, cam, bb, body)

	// Eye on the facing side.
	eye := cp.Vector{X: (bb.L+bb.R)/2 + float64(c.Facing())*0.15, Y: bb.T - 0.2}
	x, y := cam.ToScreen(eye)
	vector.FillCircle(screen, float32(x), float32(y), float32(0.06*cam.Scale()), colornames.Black, true)
}

func (d *drawer) drawPuffs(screen *ebiten.Image, cam *obj.Camera, puffs *entity.Puffs) {
	for _, it := range puffs.Items() {
		t := puffs.Progress(it)
		x, y := cam.ToScreen(it.At)
		radius := (0.15 + 0.35*t) * cam.Scale()
		clr := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: uint8(0xc0 * (1 - t))}
		if it.Effect == player.EffectDashStart || it.Effect == player.EffectDashStop {
			clr.R, clr.G = 0x80, 0xd0
		}
		vector.StrokeCircle(screen, float32(x), float32(y), float32(radius), 2, clr, true)
	}
}

func (d *drawer) drawSensors(screen *ebiten.Image, cam *obj.Camera, c *player.Controller) {
	s := c.Sensors()
	cfg := c.Config()
	obj.DebugCircle(screen, cam, s.GroundCheckPosition(), cfg.GroundCheckRadius, c.Grounded())
	obj.DebugRay(screen, cam, s.WallCheckPosition(), cp.Vector{X: float64(c.Facing())}, cfg.WallCheckDistance, c.TouchingWall())
}

func (d *drawer) drawHUD(screen *ebiten.Image, g *Game) {
	c := g.world.Controller()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  state: %s  stamina: %.0f  deaths: %d",
		ebiten.ActualFPS(), c.State(), c.Stamina(), g.world.Deaths()))
	if g.statusLeft > 0 {
		ebitenutil.DebugPrintAt(screen, g.status, 0, 20)
	}
	if g.script != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("script %s frame %d", g.script.Name, g.script.Frame()), 0, 40)
	}
}

func fillRect(screen *ebiten.Image, cam *obj.Camera, bb cp.BB, c color.Color) {
	x, y, w, h := cam.RectToScreen(bb)
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), c, false)
}

func strokeRect(screen *ebiten.Image, cam *obj.Camera, bb cp.BB, c color.Color) {
	x, y, w, h := cam.RectToScreen(bb)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, c, false)
}
