package player

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyManualDeltaLandsFallingRider(t *testing.T) {
	tests := []struct {
		name string
		move cp.Vector
		want Kind
	}{
		{"still", cp.Vector{}, KindIdle},
		{"moving", cp.Vector{X: 1}, KindRun},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, newTestWorld(), cp.Vector{Y: 5}, nil)
			f.c.Update(testDt, Input{Move: tt.move})
			require.Equal(t, KindInAir, f.c.State())

			f.c.ApplyManualDelta(cp.Vector{Y: 0.1})

			cfg := f.c.Config()
			assert.Equal(t, tt.want, f.c.State())
			assert.InDelta(t, 5.1, f.body.position.Y, 1e-12)
			assert.InDelta(t, 30*cfg.GravityScale*cfg.FixedStep, f.body.velocity.Y, 1e-12)
			assert.True(t, f.c.PlatformLatched())
			assert.True(t, f.c.InCoyoteTime())
		})
	}
}

func TestPlatformLatchLastsOneFrame(t *testing.T) {
	f := newFixture(t, newTestWorld(), cp.Vector{Y: 5}, nil)
	f.c.Update(testDt, Input{})
	require.Equal(t, KindInAir, f.c.State())

	f.c.ApplyManualDelta(cp.Vector{X: 0.05})
	require.Equal(t, KindIdle, f.c.State())

	probes := f.world.groundProbes
	f.c.Update(testDt, Input{})
	assert.Equal(t, probes, f.world.groundProbes)
	assert.True(t, f.c.Grounded())
	assert.Equal(t, KindIdle, f.c.State())
	assert.False(t, f.c.PlatformLatched())

	f.c.Update(testDt, Input{})
	assert.Equal(t, probes+1, f.world.groundProbes)
	assert.False(t, f.c.Grounded())
	assert.Equal(t, KindInAir, f.c.State())
}

func TestApplyManualDeltaKeepsAscendingRider(t *testing.T) {
	f := newFixture(t, newTestWorld(), cp.Vector{Y: 5}, nil)
	f.c.Update(testDt, Input{})
	f.body.velocity = cp.Vector{X: 1, Y: 5}

	f.c.ApplyManualDelta(cp.Vector{X: 0.2})

	assert.Equal(t, KindInAir, f.c.State())
	assert.Equal(t, cp.Vector{X: 1, Y: 5}, f.body.velocity)
	assert.InDelta(t, 0.2, f.body.position.X, 1e-12)
	assert.True(t, f.c.PlatformLatched())
}

func TestQueryWouldCrush(t *testing.T) {
	w := newTestWorld().floor().add(-5, 1.05, 5, 2, groundAndWall)
	f := newFixture(t, w, cp.Vector{Y: 0.5}, nil)

	assert.True(t, f.c.QueryWouldCrush(cp.Vector{Y: -1}, 0.1))
	assert.True(t, f.c.QueryWouldCrush(cp.Vector{Y: 1}, 0.1))
	assert.False(t, f.c.QueryWouldCrush(cp.Vector{Y: 1}, 0.01))
	assert.False(t, f.c.QueryWouldCrush(cp.Vector{X: 1}, 0.5))
}

func TestBounds(t *testing.T) {
	f := newFixture(t, newTestWorld(), cp.Vector{Y: 0.5}, nil)
	assert.Equal(t, cp.BB{L: -0.4, B: 0, R: 0.4, T: 1}, f.c.Bounds())
}

func TestForceCrushDeathEmitsOnce(t *testing.T) {
	f := newFixture(t, newTestWorld().floor(), cp.Vector{Y: 0.5}, nil)

	var events []DeathEvent
	f.c.OnDeath(func(ev DeathEvent) { events = append(events, ev) })

	strategy := &DeathStrategy{Name: "crush", DeathDuration: 0.5}
	f.c.ForceCrushDeath(strategy)
	f.c.ForceCrushDeath(strategy)
	f.c.Die(cp.Vector{X: 1}, nil)

	require.Len(t, events, 1)
	assert.Same(t, strategy, events[0].Strategy)
	assert.Same(t, f.c, events[0].Controller)
	assert.True(t, f.c.Dead())
}
