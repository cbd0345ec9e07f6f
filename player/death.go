package player

import (
	"log"

	"github.com/jakecoffman/cp"
)

// DeathStrategy names how a death is presented and how long the respawn
// sequencer waits. A nil strategy means the sequencer's default.
type DeathStrategy struct {
	Name          string  `yaml:"name"`
	DeathDuration float64 `yaml:"death_duration"`
	RespawnDelay  float64 `yaml:"respawn_delay"`
}

func (s *DeathStrategy) String() string {
	if s == nil {
		return "none"
	}
	return s.Name
}

// DeathEvent is emitted once per death.
type DeathEvent struct {
	Controller   *Controller
	HitDirection cp.Vector
	Strategy     *DeathStrategy
}

// OnDeath registers a listener for death events.
func (c *Controller) OnDeath(fn func(DeathEvent)) {
	if fn == nil {
		return
	}
	c.deathListeners = append(c.deathListeners, fn)
}

// Die freezes the controller and notifies listeners. Calls while already
// dead do nothing.
func (c *Controller) Die(hitDir cp.Vector, strategy *DeathStrategy) {
	if c.dead {
		return
	}
	c.dead = true
	c.audio.SetLoop(c.sounds.WallSlide, false)

	ev := DeathEvent{Controller: c, HitDirection: hitDir, Strategy: strategy}
	for _, fn := range c.deathListeners {
		fn(ev)
	}
}

// Revive is called by the respawn sequencer once the death presentation is
// done. The body must already be at the respawn point.
func (c *Controller) Revive() {
	// Exit the state the actor died in while still dead, so its flags and
	// loops are cleared without exit effects.
	c.saved = nil
	c.startingTransition = false
	c.resuming = false
	c.sm.ChangeState(c.idle)

	c.dead = false
	c.body.SetSimulated(true)
	c.setVelocityZero()
	c.body.SetGravityScale(c.cfg.GravityScale)

	c.timers.LastJumpPressed = Never
	c.timers.LastDashPressed = Never
	c.timers.InputLockRemaining = 0
	c.timers.VarJumpWindowEnd = Never
	c.timers.DashAttackWindowEnd = Never
	c.jumpInput = false
	c.isJumping = false
	c.isWallJumping = false
	c.backstepping = false
	c.move = cp.Vector{}
	c.grab = false
	c.jumpHeld = false

	c.Refill()
}

// Refill restores the dash and full stamina. Pickups, Revive and Bounce all
// come through here.
func (c *Controller) Refill() {
	c.dash.canDash = true
	c.stamina = c.cfg.MaxStamina
}

// ForceCrushDeath kills the actor on behalf of a crushing platform.
func (c *Controller) ForceCrushDeath(strategy *DeathStrategy) {
	if c.dead {
		return
	}
	c.Die(cp.Vector{}, strategy)
	log.Printf("player: crushed by platform (strategy=%s)", strategy)
}
