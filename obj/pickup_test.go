package obj

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Collector = (*player.Controller)(nil)

type fakeCollector struct {
	bb      cp.BB
	dead    bool
	canDash bool
	tired   bool

	refills int
	bounces []cp.Vector
}

func (c *fakeCollector) Bounds() cp.BB  { return c.bb }
func (c *fakeCollector) Dead() bool     { return c.dead }
func (c *fakeCollector) CanDash() bool  { return c.canDash }
func (c *fakeCollector) Tired() bool    { return c.tired }
func (c *fakeCollector) Refill()        { c.refills++; c.canDash = true; c.tired = false }
func (c *fakeCollector) Bounce(force cp.Vector, _ float64) {
	c.bounces = append(c.bounces, force)
}

func around(p cp.Vector) cp.BB {
	return cp.NewBBForExtents(p, 0.3, 0.4)
}

func TestRefillPickup(t *testing.T) {
	pos := cp.Vector{X: 4.5, Y: 2.5}
	p := NewPickup(PickupRefill, pos)
	c := &fakeCollector{bb: around(pos)}

	assert.True(t, p.Update(0.02, c))
	assert.Equal(t, 1, c.refills)
	assert.True(t, p.Disabled)

	// Used up until it respawns.
	c.canDash = false
	assert.False(t, p.Update(0.02, c))

	away := &fakeCollector{bb: around(cp.Vector{X: 10, Y: 10})}
	p.Update(p.RespawnTime, away)
	assert.False(t, p.Disabled)

	// Nothing to restore, so it stays.
	full := &fakeCollector{bb: around(pos), canDash: true}
	assert.False(t, p.Update(0.02, full))
	full.tired = true
	assert.True(t, p.Update(0.02, full))
	assert.Equal(t, 1, full.refills)
}

func TestSpringPickupFiresOncePerTouch(t *testing.T) {
	pos := cp.Vector{X: 4.5, Y: 1.5}
	p := NewPickup(PickupSpring, pos)
	c := &fakeCollector{bb: cp.BB{L: 4.2, B: 1, R: 4.8, T: 1.8}, canDash: true}

	assert.True(t, p.Update(0.02, c))
	assert.False(t, p.Update(0.02, c))
	require.Len(t, c.bounces, 1)
	assert.Equal(t, cp.Vector{Y: p.SpringForce}, c.bounces[0])

	c.bb = c.bb.Offset(cp.Vector{Y: 3})
	assert.False(t, p.Update(0.02, c))
	c.bb = c.bb.Offset(cp.Vector{Y: -3})
	assert.True(t, p.Update(0.02, c))
	assert.Len(t, c.bounces, 2)
	assert.False(t, p.Disabled)
}

func TestPickupSkipsDeadCollector(t *testing.T) {
	pos := cp.Vector{X: 1.5, Y: 1.5}
	p := NewPickup(PickupRefill, pos)

	assert.False(t, p.Update(0.02, &fakeCollector{bb: around(pos), dead: true}))
	assert.False(t, p.Update(0.02, nil))
}
