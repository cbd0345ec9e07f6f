package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/assets"
	"github.com/milk9111/climber/common"
	"github.com/milk9111/climber/obj"
	"github.com/milk9111/climber/player"
	"github.com/milk9111/climber/prefabs"
	"github.com/milk9111/climber/system"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	cameraSmooth = 0.2
	statusTime   = 2.0
)

type GameOptions struct {
	Level  string
	Script string
	Debug  bool
	Scale  float64
	Mute   bool
	Watch  bool
}

type Game struct {
	opts   GameOptions
	frames int

	input   *obj.Input
	world   *system.World
	camera  *obj.Camera
	sounds  *assets.SoundBank
	script  *system.ScriptedInput
	watcher *prefabs.Watcher
	drawer  *drawer

	paused bool
	quit   bool
	ui     *ebitenui.UI
	pause  *pauseMenu

	clipboardOK bool
	status      string
	statusLeft  float64
}

func NewGame(opts GameOptions) (*Game, error) {
	if opts.Scale <= 0 {
		opts.Scale = 40
	}
	g := &Game{
		opts:   opts,
		input:  obj.NewInput(),
		camera: obj.NewCamera(baseWidth, baseHeight, opts.Scale),
		drawer: newDrawer(),
	}
	g.camera.SetSmooth(cameraSmooth)

	if err := g.loadSounds(); err != nil {
		return nil, err
	}
	g.sounds.Muted = opts.Mute

	if err := g.loadWorld(); err != nil {
		return nil, err
	}
	if opts.Script != "" {
		if err := g.loadScript(); err != nil {
			return nil, err
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(watchDirs()...)
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.ui, g.pause = NewPauseUI(g)
	return g, nil
}

// watchDirs are the source directories a checkout has next to the binary.
func watchDirs() []string {
	return []string{"prefabs", filepath.Join("prefabs", "scripts"), "levels"}
}

func (g *Game) loadSounds() error {
	spec, err := prefabs.LoadSoundBankSpec("sounds.yaml")
	if err != nil {
		return err
	}
	bank, err := assets.NewSoundBank(spec)
	if err != nil {
		return err
	}
	if g.sounds != nil {
		g.sounds.StopAll()
		bank.Muted = g.sounds.Muted
	}
	g.sounds = bank
	return nil
}

func (g *Game) loadWorld() error {
	spec, err := prefabs.LoadPlayerSpec("player.yaml")
	if err != nil {
		return err
	}
	w, err := system.NewWorld(g.opts.Level, system.Options{
		Spec:     spec,
		Services: player.Services{Audio: g.sounds},
	})
	if err != nil {
		return err
	}
	if g.world != nil {
		g.world.Remove()
	}
	g.world = w
	g.camera.SetBounds(w.RoomBounds(w.Room()))
	g.camera.SnapTo(w.Player.Body.Position())
	return nil
}

func (g *Game) loadScript() error {
	s, err := system.LoadScriptedInput(g.opts.Script)
	if err != nil {
		return err
	}
	g.script = s
	return nil
}

// Restart reloads the level and puts the player back at its spawn.
func (g *Game) Restart() {
	if err := g.loadWorld(); err != nil {
		g.setStatus(fmt.Sprintf("restart failed: %v", err))
		return
	}
	if g.script != nil {
		if err := g.loadScript(); err != nil {
			g.setStatus(fmt.Sprintf("script reload failed: %v", err))
		}
	}
	g.setStatus("restarted " + g.opts.Level)
}

// CopySnapshot puts the player's current snapshot on the clipboard as YAML.
func (g *Game) CopySnapshot() {
	snap := g.world.Controller().Snapshot()
	out, err := yaml.Marshal(snap)
	if err != nil {
		g.setStatus(fmt.Sprintf("snapshot: %v", err))
		return
	}
	if !g.clipboardOK {
		log.Printf("snapshot:\n%s", out)
		g.setStatus("snapshot logged")
		return
	}
	clipboard.Write(clipboard.FmtText, out)
	g.setStatus("snapshot copied")
}

func (g *Game) setStatus(s string) {
	log.Print(s)
	g.status = s
	g.statusLeft = statusTime
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.sounds != nil {
		g.sounds.StopAll()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++
	dt := 1.0 / float64(ebiten.TPS())

	g.handleReloads()
	g.input.Update()

	if g.input.PausePressed {
		g.paused = !g.paused
	}
	if g.paused {
		g.pause.Refresh(g)
		g.ui.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.opts.Debug = !g.opts.Debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.CopySnapshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.Restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.sounds.Muted = !g.sounds.Muted
		if g.sounds.Muted {
			g.sounds.StopAll()
		}
	}

	in := g.input.Frame()
	if g.script != nil {
		scripted, err := g.script.Next(context.Background(), g.world.Controller())
		if err != nil {
			g.setStatus(err.Error())
			g.script = nil
		} else {
			in = scripted
		}
	}

	g.world.Update(dt, in)
	g.sounds.Listener = g.world.Player.Body.Position()
	g.updateCamera()

	if g.statusLeft > 0 {
		g.statusLeft -= dt
	}
	return nil
}

func (g *Game) updateCamera() {
	w := g.world
	bounds := w.RoomBounds(w.Room())
	if from, to, t, ok := w.TransitionProgress(); ok {
		bounds = lerpBB(w.RoomBounds(from), w.RoomBounds(to), smoothStep(t))
	}
	g.camera.SetBounds(bounds)
	g.camera.Update(w.Player.Body.Position())
}

func lerpBB(a, b cp.BB, t float64) cp.BB {
	return cp.BB{
		L: common.Lerp(a.L, b.L, t),
		B: common.Lerp(a.B, b.B, t),
		R: common.Lerp(a.R, b.R, t),
		T: common.Lerp(a.T, b.T, t),
	}
}

func smoothStep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// handleReloads applies file changes reported by the watcher.
func (g *Game) handleReloads() {
	if g.watcher == nil {
		return
	}
	for {
		change, ok := g.watcher.Poll()
		if !ok {
			return
		}
		switch change.Kind {
		case prefabs.ChangeScript:
			if g.script == nil || change.Name != g.script.Name {
				continue
			}
			if err := g.loadScript(); err != nil {
				g.setStatus(fmt.Sprintf("reload %s: %v", change.Name, err))
				continue
			}
			g.setStatus("reloaded script " + change.Name)
		case prefabs.ChangeSpec:
			if change.Name == "sounds" {
				if err := g.loadSounds(); err != nil {
					g.setStatus(fmt.Sprintf("reload sounds: %v", err))
					continue
				}
			}
			g.Restart()
		case prefabs.ChangeLevel:
			g.Restart()
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawer.Draw(screen, g)
	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
