package player

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRoomTransitionResumesDash(t *testing.T) {
	f := newFixture(t, newTestWorld(), cp.Vector{Y: 5}, nil)
	dashUp(t, f)
	f.frame(Input{JumpPressed: true, DashPressed: true})
	require.Equal(t, KindDash, f.c.State())
	require.True(t, f.c.CheckJumpInput())

	attackLeft := Remaining(f.c.Now(), f.c.Timers().DashAttackWindowEnd)
	elapsed := f.c.StateElapsed()

	f.c.StartRoomTransition(-1)

	assert.Equal(t, KindCutscene, f.c.State())
	assert.False(t, f.body.simulated)
	assert.Equal(t, cp.Vector{Y: f.c.Config().DashSpeed}, f.body.velocity)
	assert.Equal(t, -1, f.c.Facing())

	snap, ok := f.c.PendingSnapshot()
	require.True(t, ok)
	assert.Equal(t, KindDash, snap.State)
	assert.InDelta(t, attackLeft, snap.DashAttackRemain, 1e-12)
	assert.InDelta(t, elapsed, snap.StateElapsed, 1e-12)

	for i := 0; i < 5; i++ {
		f.frame(Input{Move: cp.Vector{X: 1}, JumpPressed: true})
		assert.Equal(t, cp.Vector{}, f.c.Move())
	}

	f.c.EndRoomTransition(Input{Move: cp.Vector{Y: 1}})

	assert.Equal(t, KindDash, f.c.State())
	assert.True(t, f.body.simulated)
	assert.Equal(t, cp.Vector{Y: f.c.Config().DashSpeed}, f.body.velocity)
	assert.Zero(t, f.body.gravityScale)
	assert.InDelta(t, elapsed, f.c.StateElapsed(), 1e-9)
	assert.InDelta(t, attackLeft, Remaining(f.c.Now(), f.c.Timers().DashAttackWindowEnd), 1e-9)
	assert.False(t, f.c.CheckJumpInput())
	assert.False(t, f.c.CheckDashInput())
	assert.True(t, f.anim.flags["Dash"])
	assert.False(t, f.anim.flags["Run"])
	assert.Equal(t, cp.Vector{Y: 1}, f.c.DashDirection())

	_, ok = f.c.PendingSnapshot()
	assert.False(t, ok)

	for i := 0; i < 60 && f.c.State() == KindDash; i++ {
		f.frame(Input{})
	}
	assert.Equal(t, KindInAir, f.c.State())
	assert.Equal(t, f.c.Config().GravityScale, f.body.gravityScale)
}

func TestRoomTransitionIgnoredWhenDeadOrRunning(t *testing.T) {
	f := newFixture(t, newTestWorld().floor(), cp.Vector{Y: 0.5}, nil)

	f.c.Die(cp.Vector{}, nil)
	f.c.StartRoomTransition(1)
	assert.Equal(t, KindIdle, f.c.State())
	_, ok := f.c.PendingSnapshot()
	assert.False(t, ok)

	f.c.Revive()
	f.c.StartRoomTransition(1)
	first, ok := f.c.PendingSnapshot()
	require.True(t, ok)

	f.c.StartRoomTransition(-1)
	second, _ := f.c.PendingSnapshot()
	assert.Equal(t, first, second)
	assert.Equal(t, KindIdle, second.State)

	f.c.EndRoomTransition(Input{})
	assert.Equal(t, KindIdle, f.c.State())
}

func TestEndRoomTransitionWithoutStart(t *testing.T) {
	f := newFixture(t, newTestWorld().floor(), cp.Vector{Y: 0.5}, nil)
	f.c.EndRoomTransition(Input{})
	assert.Equal(t, KindIdle, f.c.State())
}

func TestSnapshotYAML(t *testing.T) {
	snap := Snapshot{State: KindWallGrab, Velocity: cp.Vector{X: 1, Y: -2}, VarJumpRemain: 0.1}

	out, err := yaml.Marshal(snap)
	require.NoError(t, err)
	assert.Contains(t, string(out), "state: wall_grab")
	assert.Contains(t, string(out), "var_jump_remaining: 0.1")
}
