package system

import (
	"errors"
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/common"
	"github.com/milk9111/climber/entity"
	"github.com/milk9111/climber/levels"
	"github.com/milk9111/climber/obj"
	"github.com/milk9111/climber/player"
	"github.com/milk9111/climber/prefabs"
)

// maxStepsPerFrame bounds the fixed-step catch-up after a long frame.
const maxStepsPerFrame = 8

// fallMargin is how far below the map the player may drop before dying.
const fallMargin = 2.0

// hazardInset shrinks the player box for spike checks so touching a spike
// tile's side does not kill.
const hazardInset = 0.05

// Sounds the world plays itself.
const (
	SoundDeath   player.Sound = "death"
	SoundRespawn player.Sound = "respawn"
	SoundRefill  player.Sound = "refill"
	SoundSpring  player.Sound = "spring"
)

var ErrNilLevel = errors.New("system: nil level")

// World owns a loaded level, its collision world, the level objects and the
// player, and drives them at a fixed physics step.
type World struct {
	Level          *levels.Level
	CollisionWorld *obj.CollisionWorld
	Platforms      []*obj.Platform
	Crumbles       []*obj.Crumble
	Pickups        []*obj.Pickup
	Player         *entity.Player

	audio player.Audio
	step  float64
	acc   float64
	frame int
	steps int

	room           int
	checkpoint     cp.Vector
	checkpointRoom int

	respawn    *respawn
	transition *transition
	deaths     int
}

// Options configures NewWorld. Spec defaults to player.yaml.
type Options struct {
	Spec     *prefabs.PlayerSpec
	Services player.Services
}

// NewWorld loads the named level and spawns the player at its spawn tile.
func NewWorld(levelName string, opts Options) (*World, error) {
	lvl, err := levels.Load(levelName)
	if err != nil {
		return nil, err
	}
	return NewWorldFromLevel(lvl, opts)
}

func NewWorldFromLevel(lvl *levels.Level, opts Options) (*World, error) {
	if lvl == nil {
		return nil, ErrNilLevel
	}
	spec := opts.Spec
	if spec == nil {
		s, err := prefabs.LoadPlayerSpec("player.yaml")
		if err != nil {
			return nil, err
		}
		spec = s
	}

	w := &World{
		Level:          lvl,
		CollisionWorld: obj.NewCollisionWorld(lvl),
		audio:          opts.Services.Audio,
		step:           spec.Movement.FixedStep,
		checkpoint:     lvl.Spawn,
	}
	w.spawnObjects(spec)

	p, err := entity.BuildPlayer(spec, w.CollisionWorld, lvl.Spawn, opts.Services)
	if err != nil {
		return nil, fmt.Errorf("system: new world %s: %w", lvl.Name, err)
	}
	w.Player = p
	p.Controller.OnDeath(w.onDeath)

	if room, ok := lvl.RoomAt(p.Body.Position()); ok {
		w.room = room
	}
	w.checkpointRoom = w.room
	return w, nil
}

// Controller is shorthand for the player's controller.
func (w *World) Controller() *player.Controller {
	return w.Player.Controller
}

// Frame is the number of Update calls so far.
func (w *World) Frame() int {
	return w.frame
}

// Steps is the number of fixed physics steps so far.
func (w *World) Steps() int {
	return w.steps
}

// Room is the index of the room the camera is locked to.
func (w *World) Room() int {
	return w.room
}

func (w *World) Deaths() int {
	return w.deaths
}

func (w *World) Checkpoint() cp.Vector {
	return w.checkpoint
}

// Respawning reports whether a death is being played out.
func (w *World) Respawning() bool {
	return w.respawn != nil
}

// Transitioning reports whether a room transition is running.
func (w *World) Transitioning() bool {
	return w.transition != nil
}

// Update advances the world by one rendered frame of dt seconds: the
// controller's logic phase, then as many fixed physics steps as have
// accumulated.
func (w *World) Update(dt float64, in player.Input) {
	w.frame++
	c := w.Controller()

	w.updateRespawn(dt)
	w.updateTransition(dt, in)

	c.Update(dt, in)

	w.acc += dt
	n := 0
	for w.acc >= w.step && n < maxStepsPerFrame {
		w.fixedStep()
		w.acc -= w.step
		n++
	}
	if n == maxStepsPerFrame {
		w.acc = 0
	}

	w.checkHazards()
	w.checkRoom()
	w.updateCheckpoint()
}

func (w *World) fixedStep() {
	c := w.Controller()
	for _, p := range w.Platforms {
		p.Step(w.step, c)
	}
	for _, cr := range w.Crumbles {
		cr.Update(w.step, c)
	}
	for _, pk := range w.Pickups {
		if pk.Update(w.step, c) {
			w.play(pickupSound(pk.Kind), pk.Pos)
		}
	}

	c.FixedUpdate(w.step)
	w.CollisionWorld.Step(w.step)
	w.Player.Puffs.Update(w.step)
	w.steps++
}

// checkHazards kills the player on spikes or below the map. The hit
// direction points back the way the player came.
func (w *World) checkHazards() {
	c := w.Controller()
	if c.Dead() || w.transition != nil {
		return
	}

	bb := w.Player.Body.Bounds()
	inset := cp.BB{L: bb.L + hazardInset, B: bb.B + hazardInset, R: bb.R - hazardInset, T: bb.T - hazardInset}
	fell := bb.T < -fallMargin
	if !fell && !w.CollisionWorld.OverlapBox(inset, common.LayerHazard) {
		return
	}

	v := w.Player.Body.Velocity()
	hit := cp.Vector{}
	if v.LengthSq() > 0 {
		hit = v.Normalize().Neg()
	}
	c.Die(hit, w.Player.Spec.DeathStrategy("default"))
}

func (w *World) updateCheckpoint() {
	c := w.Controller()
	if c.Dead() || w.transition != nil || !c.Grounded() || c.PlatformLatched() {
		return
	}
	if w.checkpointRoom == w.room {
		return
	}
	w.checkpoint = w.Player.Feet()
	w.checkpointRoom = w.room
	log.Printf("system: checkpoint room=%d at (%.2f, %.2f)", w.room, w.checkpoint.X, w.checkpoint.Y)
}

func (w *World) play(s player.Sound, at cp.Vector) {
	if w.audio == nil || s == "" {
		return
	}
	w.audio.PlayOneShot(s, at)
}

func pickupSound(k obj.PickupKind) player.Sound {
	if k == obj.PickupSpring {
		return SoundSpring
	}
	return SoundRefill
}

// Remove tears the player out of the collision world.
func (w *World) Remove() {
	if w.Player != nil {
		w.Player.Remove()
	}
}
