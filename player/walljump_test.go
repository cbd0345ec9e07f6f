package player

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newWallFixture returns an airborne controller pressed against a wall on
// its right.
func newWallFixture(t *testing.T) *fixture {
	t.Helper()
	w := newTestWorld().add(0.45, 0, 2, 10, common.LayerWall)
	f := newFixture(t, w, cp.Vector{Y: 5}, nil)

	f.frame(Input{})
	require.Equal(t, KindInAir, f.c.State())
	require.True(t, f.c.TouchingWall())
	return f
}

func TestWallJumpBackstep(t *testing.T) {
	f := newWallFixture(t)

	f.c.Update(testDt, Input{JumpPressed: true})

	cfg := f.c.Config()
	assert.Equal(t, KindInAir, f.c.State())
	assert.Equal(t, cp.Vector{X: -cfg.WallJumpOffX, Y: cfg.WallJumpOffY}, f.body.velocity)
	assert.Equal(t, 1, f.c.Facing())
	assert.Equal(t, cfg.MaxStamina-cfg.WallJumpStaminaCost, f.c.Stamina())
	assert.Equal(t, cfg.WallJumpTime, f.c.Timers().InputLockRemaining)
	assert.True(t, f.c.WallJumping())
	assert.True(t, f.c.Jumping())
	assert.False(t, f.c.CheckJumpInput())
	assert.Contains(t, f.audio.played, Sound("wall_jump"))

	f.c.Update(testDt, Input{Move: cp.Vector{X: 1}})
	assert.Equal(t, cp.Vector{}, f.c.Move())
}

func TestWallJumpAwayFlipsFacing(t *testing.T) {
	f := newWallFixture(t)

	f.c.Update(testDt, Input{JumpPressed: true, Move: cp.Vector{X: -1}})

	cfg := f.c.Config()
	assert.Equal(t, cp.Vector{X: -cfg.WallJumpOffX, Y: cfg.WallJumpOffY}, f.body.velocity)
	assert.Equal(t, -1, f.c.Facing())
}

func TestWallJumpDeniedWithoutStamina(t *testing.T) {
	f := newWallFixture(t)
	f.c.DecreaseStamina(1000)

	f.c.Update(testDt, Input{JumpPressed: true})

	assert.Equal(t, KindInAir, f.c.State())
	assert.Equal(t, cp.Vector{}, f.body.velocity)
	assert.True(t, f.c.CheckJumpInput())
	assert.False(t, f.c.WallJumping())
	assert.Zero(t, f.c.Timers().InputLockRemaining)
}

func TestWallJumpGrabClimbs(t *testing.T) {
	f := newWallFixture(t)

	f.c.Update(testDt, Input{GrabHeld: true})
	require.Equal(t, KindWallGrab, f.c.State())

	f.c.Update(testDt, Input{GrabHeld: true, JumpPressed: true})

	cfg := f.c.Config()
	assert.Equal(t, KindInAir, f.c.State())
	assert.Equal(t, cp.Vector{Y: cfg.WallJumpClimbY}, f.body.velocity)
	assert.Equal(t, cfg.GravityScale, f.body.gravityScale)
	assert.Less(t, f.c.Stamina(), cfg.MaxStamina-cfg.WallJumpStaminaCost+0.001)
}

func TestWallJumpComboIgnoresStamina(t *testing.T) {
	f := newWallFixture(t)

	f.c.Update(testDt, Input{JumpPressed: true})
	require.True(t, f.c.WallJumping())
	f.c.FixedUpdate(testDt)

	f.c.DecreaseStamina(1000)
	f.idleFrames(11)
	require.Zero(t, f.c.Timers().InputLockRemaining)
	require.False(t, f.c.WallJumping())
	require.True(t, Open(f.c.Now(), f.c.Timers().WallBounceWindowEnd))

	f.body.velocity = cp.Vector{Y: -1}
	f.c.Update(testDt, Input{JumpPressed: true})

	cfg := f.c.Config()
	assert.Equal(t, cp.Vector{X: -cfg.WallJumpOffX, Y: cfg.WallJumpOffY}, f.body.velocity)
	assert.Equal(t, -1, f.c.Facing())
	assert.Zero(t, f.c.Stamina())
	assert.True(t, f.c.WallJumping())
}

func TestWallJumpFromMemory(t *testing.T) {
	f := newWallFixture(t)

	f.c.Update(testDt, Input{})
	f.world.clear()
	f.c.FixedUpdate(testDt)
	require.False(t, f.c.TouchingWall())

	f.c.Update(testDt, Input{JumpPressed: true})

	cfg := f.c.Config()
	assert.Equal(t, cp.Vector{X: -cfg.WallJumpOffX, Y: cfg.WallJumpOffY}, f.body.velocity)
	assert.True(t, f.c.WallJumping())
}

func TestWallJumpMemoryExpires(t *testing.T) {
	f := newWallFixture(t)

	f.c.Update(testDt, Input{})
	f.world.clear()
	f.c.FixedUpdate(testDt)
	for i := 0; i < 10; i++ {
		f.frame(Input{})
	}

	f.c.Update(testDt, Input{JumpPressed: true})

	assert.Equal(t, cp.Vector{}, f.body.velocity)
	assert.False(t, f.c.WallJumping())
	assert.True(t, f.c.CheckJumpInput())
}

func TestWallSlideClampsFall(t *testing.T) {
	f := newWallFixture(t)

	f.c.Update(testDt, Input{Move: cp.Vector{X: 1}})
	require.Equal(t, KindWallSlide, f.c.State())
	assert.True(t, f.audio.loops["wall_slide"])

	f.body.velocity = cp.Vector{X: 3, Y: -20}
	f.c.FixedUpdate(testDt)
	assert.Equal(t, cp.Vector{Y: -f.c.Config().WallSlideSpeed}, f.body.velocity)

	f.c.Update(testDt, Input{})
	assert.Equal(t, KindInAir, f.c.State())
	assert.False(t, f.audio.loops["wall_slide"])
}

func TestWallJumpInShaftUsesFacingWall(t *testing.T) {
	w := newTestWorld().
		add(0.45, 0, 2, 10, common.LayerWall).
		add(-2, 0, -0.45, 10, common.LayerWall)
	f := newFixture(t, w, cp.Vector{Y: 5}, nil)

	f.frame(Input{Move: cp.Vector{X: -1}})
	require.Equal(t, KindInAir, f.c.State())
	require.Equal(t, -1, f.c.Facing())
	require.True(t, f.c.TouchingWall())

	f.c.Update(testDt, Input{JumpPressed: true})

	cfg := f.c.Config()
	assert.Equal(t, cp.Vector{X: cfg.WallJumpOffX, Y: cfg.WallJumpOffY}, f.body.velocity)
	assert.True(t, f.c.WallJumping())
}

func TestWallJumpLockClearsAfterLanding(t *testing.T) {
	f := newFixture(t, newTestWorld().floor(), cp.Vector{Y: 0.5}, nil)
	f.frame(Input{})
	require.Equal(t, KindIdle, f.c.State())

	f.c.isWallJumping = true
	f.c.timers.WallJumpStart = f.c.Now()

	frames := int(f.c.Config().WallJumpTime/testDt) + 2
	f.idleFrames(frames)

	assert.Equal(t, KindIdle, f.c.State())
	assert.False(t, f.c.WallJumping())
}
