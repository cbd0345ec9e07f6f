package player

import "github.com/jakecoffman/cp"

// RigidBody is the port through which the controller changes physical state.
// Outside the room-transition snapshot and the platform rider, only the
// active state writes through it.
type RigidBody interface {
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
	GravityScale() float64
	SetGravityScale(scale float64)
	Simulated() bool
	SetSimulated(simulated bool)
	Position() cp.Vector
	SetPosition(p cp.Vector)
}

func (c *Controller) setVelocityX(x float64) {
	v := c.body.Velocity()
	c.body.SetVelocity(cp.Vector{X: x, Y: v.Y})
}

func (c *Controller) setVelocityY(y float64) {
	v := c.body.Velocity()
	c.body.SetVelocity(cp.Vector{X: v.X, Y: y})
}

func (c *Controller) setVelocityZero() {
	c.body.SetVelocity(cp.Vector{})
}

func (c *Controller) nudgeX(dx float64) {
	p := c.body.Position()
	c.body.SetPosition(cp.Vector{X: p.X + dx, Y: p.Y})
}
