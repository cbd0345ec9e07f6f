package main

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// pauseMenu holds the widgets whose contents change while paused.
type pauseMenu struct {
	readout *widget.Text
}

// Refresh rewrites the live readout from the current player state.
func (m *pauseMenu) Refresh(g *Game) {
	m.readout.Label = readout(g)
}

func readout(g *Game) string {
	c := g.world.Controller()
	pos := c.Body().Position()
	vel := c.Body().Velocity()

	var b strings.Builder
	fmt.Fprintf(&b, "level %s  room %s\n", g.opts.Level, g.world.Level.Rooms[g.world.Room()].Name)
	fmt.Fprintf(&b, "state %s (%.2fs)\n", c.State(), c.StateElapsed())
	fmt.Fprintf(&b, "pos (%.2f, %.2f)  vel (%.2f, %.2f)\n", pos.X, pos.Y, vel.X, vel.Y)
	fmt.Fprintf(&b, "stamina %.0f  dash %t  deaths %d\n", c.Stamina(), c.CanDash(), g.world.Deaths())
	fmt.Fprintf(&b, "anim %s", strings.Join(g.world.Player.Flags.Active(), " "))
	return b.String()
}

// NewPauseUI builds a centered pause menu with a state readout and Resume,
// Restart, Copy snapshot and Quit buttons.
func NewPauseUI(g *Game) (*ebitenui.UI, *pauseMenu) {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, white),
		widget.TextOpts.WidgetOpts(centered),
	)
	menu := &pauseMenu{
		readout: widget.NewText(
			widget.TextOpts.Text(readout(g), &face, color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}),
			widget.TextOpts.WidgetOpts(centered),
		),
	}

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(centered),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth/2, baseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(menu.readout)
	panel.AddChild(button("Resume", func() { g.paused = false }))
	panel.AddChild(button("Restart", func() {
		g.Restart()
		g.paused = false
	}))
	panel.AddChild(button("Copy snapshot", g.CopySnapshot))
	panel.AddChild(button("Quit", func() { g.quit = true }))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}, menu
}
