package player

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoyoteJumpAfterLeavingGround(t *testing.T) {
	w := newTestWorld().floor()
	f := newFixture(t, w, cp.Vector{Y: 0.5}, nil)

	f.c.Update(testDt, Input{})
	require.Equal(t, KindIdle, f.c.State())
	groundedAt := f.c.Timers().LastGrounded

	w.clear()
	f.c.Update(testDt, Input{})
	require.Equal(t, KindInAir, f.c.State())

	f.c.Update(testDt, Input{JumpPressed: true})
	require.LessOrEqual(t, f.c.Now()-groundedAt, f.c.Config().CoyoteTime)

	assert.Equal(t, KindJump, f.c.State())
	assert.Equal(t, f.c.Config().JumpVelocity, f.body.velocity.Y)
	assert.False(t, f.c.CheckJumpInput())
}

func TestCoyoteExpires(t *testing.T) {
	w := newTestWorld().floor()
	f := newFixture(t, w, cp.Vector{Y: 0.5}, nil)

	f.c.Update(testDt, Input{})
	w.clear()
	for i := 0; i < 12; i++ {
		f.c.Update(testDt, Input{})
	}
	require.Equal(t, KindInAir, f.c.State())

	f.c.Update(testDt, Input{JumpPressed: true})

	assert.Equal(t, KindInAir, f.c.State())
	assert.Zero(t, f.body.velocity.Y)
	assert.True(t, f.c.CheckJumpInput())
}

func TestJumpBufferedBeforeLanding(t *testing.T) {
	w := newTestWorld()
	f := newFixture(t, w, cp.Vector{Y: 0.5}, nil)

	f.c.Update(testDt, Input{})
	require.Equal(t, KindInAir, f.c.State())

	f.body.velocity = cp.Vector{Y: -5}
	f.c.Update(testDt, Input{JumpPressed: true})
	require.Equal(t, KindInAir, f.c.State())
	pressedAt := f.c.Now()

	f.c.Update(testDt, Input{JumpHeld: true})
	f.c.Update(testDt, Input{JumpHeld: true})

	w.floor()
	f.body.velocity = cp.Vector{}
	f.c.Update(testDt, Input{JumpHeld: true})
	require.LessOrEqual(t, f.c.Now()-pressedAt, f.c.Config().JumpBufferTime)

	assert.Equal(t, KindJump, f.c.State())
	assert.Equal(t, f.c.Config().JumpVelocity, f.body.velocity.Y)
	assert.Contains(t, f.audio.played, Sound("land"))
	assert.Contains(t, f.audio.played, Sound("jump"))
}

func TestJumpHandsOverToInAir(t *testing.T) {
	f := newFixture(t, newTestWorld().floor(), cp.Vector{Y: 0.5}, nil)

	f.c.Update(testDt, Input{JumpPressed: true, JumpHeld: true})
	require.Equal(t, KindJump, f.c.State())
	assert.True(t, f.c.Jumping())
	assert.True(t, f.anim.flags["Jump"])

	f.c.Update(testDt, Input{JumpHeld: true})
	assert.Equal(t, KindInAir, f.c.State())
	assert.False(t, f.anim.flags["Jump"])
	assert.True(t, f.anim.flags["InAir"])
}

func TestVariableJumpHoldsLaunchSpeed(t *testing.T) {
	w := newTestWorld().floor()
	f := newFixture(t, w, cp.Vector{Y: 0.5}, nil)

	f.c.Update(testDt, Input{JumpPressed: true, JumpHeld: true})
	w.clear()
	f.c.Update(testDt, Input{JumpHeld: true})
	require.Equal(t, KindInAir, f.c.State())

	f.body.velocity.Y = 10
	f.c.Update(testDt, Input{JumpHeld: true})
	assert.Equal(t, f.c.Config().JumpVelocity, f.body.velocity.Y)

	f.c.Update(testDt, Input{})
	f.body.velocity.Y = 10
	f.c.Update(testDt, Input{JumpHeld: true})
	assert.Equal(t, 10.0, f.body.velocity.Y)
}

func TestRunAndFacing(t *testing.T) {
	f := newFixture(t, newTestWorld().floor(), cp.Vector{Y: 0.5}, nil)

	f.frame(Input{Move: cp.Vector{X: -1}})
	assert.Equal(t, KindRun, f.c.State())
	assert.Equal(t, -1, f.c.Facing())
	assert.Less(t, f.body.velocity.X, 0.0)

	for i := 0; i < 30; i++ {
		f.frame(Input{Move: cp.Vector{X: -1}})
	}
	assert.Equal(t, -f.c.Config().MoveSpeed, f.body.velocity.X)

	f.frame(Input{})
	assert.Equal(t, KindIdle, f.c.State())
	assert.Equal(t, -1, f.c.Facing())
}

func TestDieIsIdempotent(t *testing.T) {
	f := newFixture(t, newTestWorld().floor(), cp.Vector{Y: 0.5}, nil)

	var events []DeathEvent
	f.c.OnDeath(func(ev DeathEvent) { events = append(events, ev) })

	crush := &DeathStrategy{Name: "crush"}
	f.c.Die(cp.Vector{X: 1}, crush)
	f.c.Die(cp.Vector{X: -1}, nil)
	f.c.ForceCrushDeath(crush)

	require.Len(t, events, 1)
	assert.Same(t, f.c, events[0].Controller)
	assert.Equal(t, cp.Vector{X: 1}, events[0].HitDirection)
	assert.Same(t, crush, events[0].Strategy)
	assert.True(t, f.c.Dead())

	f.c.Update(testDt, Input{JumpPressed: true})
	f.c.FixedUpdate(testDt)
	assert.Equal(t, KindIdle, f.c.State())
	assert.False(t, f.c.CheckJumpInput())
}

func TestReviveResetsController(t *testing.T) {
	f := newFixture(t, newTestWorld().floor(), cp.Vector{Y: 0.5}, nil)

	f.c.Update(testDt, Input{DashPressed: true})
	require.Equal(t, KindDash, f.c.State())
	f.c.DecreaseStamina(50)
	f.c.Die(cp.Vector{}, nil)

	f.body.velocity = cp.Vector{X: 4, Y: 4}
	f.body.simulated = false
	f.c.Revive()

	assert.False(t, f.c.Dead())
	assert.Equal(t, KindIdle, f.c.State())
	assert.Equal(t, f.c.Config().MaxStamina, f.c.Stamina())
	assert.True(t, f.c.CanDash() || f.c.Now() < f.c.Timers().DashCooldownEnd)
	assert.Equal(t, cp.Vector{}, f.body.velocity)
	assert.True(t, f.body.simulated)
	assert.Equal(t, f.c.Config().GravityScale, f.body.gravityScale)
}

func TestReviveExitsDashFlags(t *testing.T) {
	f := newFixture(t, newTestWorld().floor(), cp.Vector{Y: 0.5}, nil)

	f.c.Update(testDt, Input{DashPressed: true})
	require.Equal(t, KindDash, f.c.State())
	require.True(t, f.anim.flags["Dash"])
	f.c.Die(cp.Vector{}, nil)
	f.body.velocity = cp.Vector{X: 0, Y: 3}

	f.c.Revive()

	assert.Equal(t, KindIdle, f.c.State())
	assert.False(t, f.anim.flags["Dash"])
	assert.True(t, f.anim.flags["Idle"])
	assert.Equal(t, cp.Vector{}, f.body.velocity)
}

func TestReviveDuringRoomTransition(t *testing.T) {
	f := newFixture(t, newTestWorld().floor(), cp.Vector{Y: 0.5}, nil)

	f.frame(Input{Move: cp.Vector{X: 1}})
	require.Equal(t, KindRun, f.c.State())
	f.c.StartRoomTransition(1)
	require.Equal(t, KindCutscene, f.c.State())
	f.c.Die(cp.Vector{}, nil)

	f.c.Revive()

	assert.Equal(t, KindIdle, f.c.State())
	assert.False(t, f.anim.flags["Run"])
	assert.True(t, f.anim.flags["Idle"])
	assert.True(t, f.body.simulated)
	_, pending := f.c.PendingSnapshot()
	assert.False(t, pending)

	f.c.EndRoomTransition(Input{Move: cp.Vector{X: 1}})
	assert.Equal(t, KindIdle, f.c.State())
}

func TestBounceRefillsAndLocksInput(t *testing.T) {
	f := newFixture(t, newTestWorld(), cp.Vector{Y: 5}, nil)

	f.c.Update(testDt, Input{DashPressed: true})
	require.Equal(t, KindDash, f.c.State())
	f.c.DecreaseStamina(1000)

	f.c.Bounce(cp.Vector{X: 3, Y: 0.1}, 0.1)

	assert.Equal(t, KindInAir, f.c.State())
	assert.Equal(t, cp.Vector{X: 3, Y: 2}, f.body.velocity)
	assert.Equal(t, f.c.Config().MaxStamina, f.c.Stamina())
	assert.Equal(t, float64(Never), f.c.Timers().LastGrounded)

	f.c.Update(testDt, Input{Move: cp.Vector{X: 1}})
	assert.Equal(t, cp.Vector{}, f.c.Move())
}

func TestOverrideVelocity(t *testing.T) {
	f := newFixture(t, newTestWorld().floor(), cp.Vector{Y: 0.5}, nil)

	f.c.OverrideVelocity(cp.Vector{X: -6, Y: 9}, 0.2)

	assert.Equal(t, KindInAir, f.c.State())
	assert.Equal(t, cp.Vector{X: -6, Y: 9}, f.body.velocity)
	assert.Equal(t, 0.2, f.c.Timers().InputLockRemaining)
	assert.False(t, f.c.Jumping())
	assert.False(t, f.c.InCoyoteTime())
}

func TestOverrideVelocityEndsDashFirst(t *testing.T) {
	f := newFixture(t, newTestWorld(), cp.Vector{Y: 5}, nil)

	f.c.Update(testDt, Input{DashPressed: true, Move: cp.Vector{Y: 1}})
	require.Equal(t, KindDash, f.c.State())
	f.c.FixedUpdate(testDt)

	f.c.OverrideVelocity(cp.Vector{X: -6, Y: 9}, 0)

	assert.Equal(t, KindInAir, f.c.State())
	assert.Equal(t, cp.Vector{X: -6, Y: 9}, f.body.velocity)
	assert.Equal(t, f.c.Now(), f.c.Timers().LastDashEnd)
}

func TestStaminaRegeneratesOnGround(t *testing.T) {
	f := newFixture(t, newTestWorld().floor(), cp.Vector{Y: 0.5}, nil)

	f.c.DecreaseStamina(1000)
	assert.Zero(t, f.c.Stamina())

	f.c.Update(testDt, Input{})
	assert.Equal(t, f.c.Config().MaxStamina, f.c.Stamina())
}

func TestTiredFlag(t *testing.T) {
	f := newFixture(t, newTestWorld(), cp.Vector{Y: 5}, nil)

	f.c.DecreaseStamina(f.c.Config().MaxStamina - 1)
	f.c.Update(testDt, Input{})

	assert.True(t, f.c.Tired())
	assert.True(t, f.anim.flags["Tired"])

	f.c.Refill()
	f.c.Update(testDt, Input{})
	assert.False(t, f.c.Tired())
	assert.False(t, f.anim.flags["Tired"])
}

func TestCornerCorrectionNudgesAwayFromLedge(t *testing.T) {
	w := newTestWorld().add(-1, 0.55, -0.3, 1, groundAndWall)
	f := newFixture(t, w, cp.Vector{}, nil)

	f.c.Update(testDt, Input{})
	require.Equal(t, KindInAir, f.c.State())

	f.body.velocity = cp.Vector{Y: 5}
	f.c.FixedUpdate(testDt)

	assert.InDelta(t, f.c.Config().CornerCorrectionNudge, f.body.position.X, 1e-12)
}

func TestCornerCorrectionSkipsWhenCenterBlocked(t *testing.T) {
	w := newTestWorld().add(-1, 0.55, 1, 1, groundAndWall)
	f := newFixture(t, w, cp.Vector{}, nil)

	f.c.Update(testDt, Input{})
	f.body.velocity = cp.Vector{Y: 5}
	f.c.FixedUpdate(testDt)

	assert.Zero(t, f.body.position.X)
}

func TestLandingCorrectionShiftsOntoLip(t *testing.T) {
	w := newTestWorld().add(0.32, -1, 1, -0.52, groundAndWall)
	f := newFixture(t, w, cp.Vector{}, nil)

	f.c.Update(testDt, Input{})
	require.Equal(t, KindInAir, f.c.State())

	f.body.velocity = cp.Vector{Y: -5}
	f.c.FixedUpdate(testDt)

	assert.InDelta(t, f.c.Config().CornerCorrectionNudge, f.body.position.X, 1e-12)
}

func TestWallGrabDrainsStamina(t *testing.T) {
	w := newTestWorld().add(0.6, -10, 2, 20, groundAndWall)
	f := newFixture(t, w, cp.Vector{Y: 5}, nil)

	f.frame(Input{})
	require.True(t, f.c.TouchingWall())

	f.body.velocity = cp.Vector{X: 1, Y: -3}
	f.c.Update(testDt, Input{GrabHeld: true})
	require.Equal(t, KindWallGrab, f.c.State())
	assert.Zero(t, f.body.gravityScale)
	assert.Equal(t, cp.Vector{}, f.body.velocity)

	before := f.c.Stamina()
	f.c.Update(testDt, Input{GrabHeld: true})
	assert.Less(t, f.c.Stamina(), before)

	f.c.FixedUpdate(testDt)
	f.c.Update(testDt, Input{})
	assert.Equal(t, KindWallSlide, f.c.State())
	assert.Equal(t, f.c.Config().GravityScale, f.body.gravityScale)
	assert.True(t, f.audio.loops["wall_slide"])

	f.c.Update(testDt, Input{})
	assert.Equal(t, KindInAir, f.c.State())
	assert.False(t, f.audio.loops["wall_slide"])
}

func TestSpawnHoldsThenDrops(t *testing.T) {
	f := newFixture(t, newTestWorld(), cp.Vector{Y: 5}, func(c *Config) { c.SpawnTime = 0.1 })

	f.body.velocity = cp.Vector{X: 2, Y: 2}
	f.c.Spawn()
	require.Equal(t, KindSpawn, f.c.State())
	assert.Zero(t, f.body.gravityScale)
	assert.Equal(t, cp.Vector{}, f.body.velocity)

	f.idleFrames(3)
	assert.Equal(t, KindSpawn, f.c.State())

	f.idleFrames(5)
	assert.Equal(t, KindInAir, f.c.State())
	assert.Equal(t, f.c.Config().GravityScale, f.body.gravityScale)
}
