package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/player"
)

// Fallbacks when a death arrives without a strategy.
const (
	defaultDeathDuration = 0.5
	defaultRespawnDelay  = 0.3
)

type respawnPhase int

const (
	phaseDying respawnPhase = iota
	phaseWaiting
)

// respawn plays out one death: the body stays frozen where it died for the
// strategy's death duration, then waits at the checkpoint for the respawn
// delay before the controller is revived.
type respawn struct {
	strategy *player.DeathStrategy
	hitDir   cp.Vector
	phase    respawnPhase
	timer    float64
}

func (r *respawn) deathDuration() float64 {
	if r.strategy == nil || r.strategy.DeathDuration <= 0 {
		return defaultDeathDuration
	}
	return r.strategy.DeathDuration
}

func (r *respawn) respawnDelay() float64 {
	if r.strategy == nil || r.strategy.RespawnDelay < 0 {
		return defaultRespawnDelay
	}
	return r.strategy.RespawnDelay
}

// onDeath consumes the controller's death event.
func (w *World) onDeath(ev player.DeathEvent) {
	if w.respawn != nil {
		return
	}
	w.deaths++
	w.respawn = &respawn{strategy: ev.Strategy, hitDir: ev.HitDirection}

	body := w.Player.Body
	body.SetVelocity(cp.Vector{})
	body.SetSimulated(false)
	w.play(SoundDeath, body.Position())
	log.Printf("system: player died (strategy=%s hit=(%.2f, %.2f))", ev.Strategy, ev.HitDirection.X, ev.HitDirection.Y)
}

// DeathDirection is the hit direction of the death being played out.
func (w *World) DeathDirection() (cp.Vector, bool) {
	if w.respawn == nil {
		return cp.Vector{}, false
	}
	return w.respawn.hitDir, true
}

func (w *World) updateRespawn(dt float64) {
	r := w.respawn
	if r == nil {
		return
	}
	r.timer += dt

	switch r.phase {
	case phaseDying:
		if r.timer < r.deathDuration() {
			return
		}
		w.Player.Place(w.checkpoint)
		if room, ok := w.Level.RoomAt(w.Player.Body.Position()); ok {
			w.room = room
		}
		w.transition = nil
		r.phase = phaseWaiting
		r.timer = 0
		fallthrough
	case phaseWaiting:
		if r.timer < r.respawnDelay() {
			return
		}
		w.revive()
	}
}

func (w *World) revive() {
	c := w.Controller()
	w.respawn = nil
	w.Player.Place(w.checkpoint)
	c.Revive()
	c.Spawn()
	w.play(SoundRespawn, w.Player.Body.Position())
	log.Printf("system: respawned at (%.2f, %.2f)", w.checkpoint.X, w.checkpoint.Y)
}
