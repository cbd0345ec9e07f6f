package player

import (
	"math"

	"github.com/jakecoffman/cp"
)

// ApplyManualDelta moves the body with a platform, outside velocity
// integration. The actor counts as grounded for the next logic frame.
func (c *Controller) ApplyManualDelta(delta cp.Vector) {
	c.body.SetPosition(c.body.Position().Add(delta))
	c.platformLatch = true

	v := c.body.Velocity()
	if v.Y > 0 {
		return
	}

	// Cancel one fixed step of gravity so the rider neither sinks nor floats.
	g := c.world.Gravity()
	c.setVelocityY(-g.Y * c.body.GravityScale() * c.fixedDt)

	if c.sm.Is(KindInAir) || c.sm.Is(KindJump) {
		c.timers.LastGrounded = c.now
		c.isJumping = false
		if math.Abs(c.move.X) > 0.01 {
			c.sm.ChangeState(c.run)
		} else {
			c.sm.ChangeState(c.idle)
		}
	}
}

// Push moves the body out of a platform's way without treating the
// platform as ground. State and velocity are left alone.
func (c *Controller) Push(delta cp.Vector) {
	c.body.SetPosition(c.body.Position().Add(delta))
}

// QueryWouldCrush reports whether pushing the actor dist along dir would
// pin it against ground or wall.
func (c *Controller) QueryWouldCrush(dir cp.Vector, dist float64) bool {
	return c.sensors.WouldCrush(dir, dist)
}

// Bounds returns the collider box in world space.
func (c *Controller) Bounds() cp.BB {
	return c.sensors.Bounds()
}

// PlatformLatched reports whether a platform carried the actor since the
// last logic frame.
func (c *Controller) PlatformLatched() bool {
	return c.platformLatch
}
