package obj

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/player"
	"github.com/stretchr/testify/assert"
)

var _ player.RigidBody = (*Body)(nil)

func TestBodyGravityScale(t *testing.T) {
	cw := NewCollisionWorld(nil)
	b := NewBody(cw, cp.Vector{Y: 10}, cp.Vector{X: 0.6, Y: 0.8}, cp.Vector{})
	b.SetGravityScale(2)

	cw.Step(0.02)
	cw.Step(0.02)

	assert.InDelta(t, -2.4, b.Velocity().Y, 1e-9)
	assert.InDelta(t, 10-0.024, b.Position().Y, 1e-9)
}

func TestBodyUnsimulatedIsFrozen(t *testing.T) {
	cw := NewCollisionWorld(nil)
	b := NewBody(cw, cp.Vector{X: 1, Y: 1}, cp.Vector{X: 0.6, Y: 0.8}, cp.Vector{})
	b.SetSimulated(false)
	b.SetVelocity(cp.Vector{X: 3, Y: 5})

	for i := 0; i < 10; i++ {
		cw.Step(0.02)
	}

	assert.False(t, b.Simulated())
	assert.True(t, b.Shape().Sensor())
	assert.Equal(t, cp.Vector{X: 1, Y: 1}, b.Position())
	assert.Equal(t, cp.Vector{X: 3, Y: 5}, b.Velocity())

	b.SetSimulated(true)
	cw.Step(0.02)
	assert.InDelta(t, 1.06, b.Position().X, 1e-9)
}

func TestBodyRestsOnFloor(t *testing.T) {
	cw := pitWorld(t)
	b := NewBody(cw, cp.Vector{X: 2.5, Y: 3}, cp.Vector{X: 0.6, Y: 0.8}, cp.Vector{})

	for i := 0; i < 120; i++ {
		cw.Step(0.02)
	}

	assert.InDelta(t, 1.0, b.Bounds().B, 0.15)
	assert.InDelta(t, 0, b.Velocity().Y, 0.5)
}

func TestBodyBoundsUseOffset(t *testing.T) {
	cw := NewCollisionWorld(nil)
	b := NewBody(cw, cp.Vector{X: 2, Y: 2}, cp.Vector{X: 1, Y: 2}, cp.Vector{Y: 1})

	assert.Equal(t, cp.BB{L: 1.5, B: 2, R: 2.5, T: 4}, b.Bounds())

	b.SetPosition(cp.Vector{X: 5, Y: 0})
	assert.Equal(t, cp.BB{L: 4.5, B: 0, R: 5.5, T: 2}, b.Bounds())
}
