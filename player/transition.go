package player

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/common"
)

// Snapshot is the state saved across a room transition.
type Snapshot struct {
	State            Kind      `yaml:"state"`
	Velocity         cp.Vector `yaml:"velocity"`
	DashAttackRemain float64   `yaml:"dash_attack_remaining"`
	VarJumpRemain    float64   `yaml:"var_jump_remaining"`
	StateElapsed     float64   `yaml:"state_elapsed"`
}

// StartRoomTransition freezes the actor in the cutscene state, remembering
// enough to resume the interrupted state exactly. dirX turns the actor to
// face the new room when non-zero.
func (c *Controller) StartRoomTransition(dirX float64) {
	if c.dead || c.sm.Is(KindCutscene) {
		return
	}

	c.saved = &Snapshot{
		State:            c.sm.Current().Kind(),
		Velocity:         c.body.Velocity(),
		DashAttackRemain: Remaining(c.now, c.timers.DashAttackWindowEnd),
		VarJumpRemain:    Remaining(c.now, c.timers.VarJumpWindowEnd),
		StateElapsed:     c.sm.Elapsed(),
	}

	c.startingTransition = true
	c.sm.ChangeState(c.cutscene)
	c.startingTransition = false

	c.body.SetSimulated(false)
	if dirX != 0 {
		c.facing = int(common.Sign(dirX))
	}
}

// EndRoomTransition resumes the state saved by StartRoomTransition. Buffered
// jump and dash presses from before the transition are dropped.
func (c *Controller) EndRoomTransition(in Input) {
	if c.saved == nil || !c.sm.Is(KindCutscene) {
		return
	}
	snap := *c.saved
	c.saved = nil

	c.body.SetSimulated(true)
	c.body.SetVelocity(snap.Velocity)
	c.timers.DashAttackWindowEnd = windowEnd(c.now, snap.DashAttackRemain)
	c.timers.VarJumpWindowEnd = windowEnd(c.now, snap.VarJumpRemain)

	c.UseJumpInput()
	c.UseDashInput()
	c.move = in.Move

	c.resuming = true
	c.sm.ChangeState(c.stateFor(snap.State))
	c.sm.SetStartTime(c.now - snap.StateElapsed)
	c.resuming = false
}

// PendingSnapshot returns the saved state while a transition is running.
func (c *Controller) PendingSnapshot() (Snapshot, bool) {
	if c.saved == nil {
		return Snapshot{}, false
	}
	return *c.saved, true
}

// Snapshot captures the current state the way a room transition would.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		State:            c.sm.Current().Kind(),
		Velocity:         c.body.Velocity(),
		DashAttackRemain: Remaining(c.now, c.timers.DashAttackWindowEnd),
		VarJumpRemain:    Remaining(c.now, c.timers.VarJumpWindowEnd),
		StateElapsed:     c.sm.Elapsed(),
	}
}

func windowEnd(now, remaining float64) float64 {
	if remaining <= 0 {
		return Never
	}
	return now + remaining
}

func (c *Controller) stateFor(k Kind) State {
	switch k {
	case KindRun:
		return c.run
	case KindJump:
		return c.jump
	case KindInAir:
		return c.inAir
	case KindDash:
		return c.dash
	case KindWallSlide:
		return c.wallSlide
	case KindWallGrab:
		return c.wallGrab
	case KindCutscene:
		return c.cutscene
	case KindSpawn:
		return c.spawn
	}
	return c.idle
}
