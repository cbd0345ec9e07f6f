package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/common"
)

// Body is a dynamic box body in a CollisionWorld. It implements
// player.RigidBody: gravity is scaled per body and an unsimulated body is
// neither integrated nor solid.
type Body struct {
	world *CollisionWorld
	body  *cp.Body
	shape *cp.Shape

	size         cp.Vector
	offset       cp.Vector
	gravityScale float64
	simulated    bool
}

// NewBody adds a box of size, offset from the body centre, at pos.
func NewBody(cw *CollisionWorld, pos, size, offset cp.Vector) *Body {
	b := &Body{
		world:        cw,
		size:         size,
		offset:       offset,
		gravityScale: 1,
		simulated:    true,
	}

	body := cp.NewBody(1, math.Inf(1))
	body.SetAngle(0)
	body.SetAngularVelocity(0)
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		if !b.simulated {
			return
		}
		cp.BodyUpdateVelocity(body, gravity.Mult(b.gravityScale), damping, dt)
	})
	body.SetPositionUpdateFunc(func(body *cp.Body, dt float64) {
		if !b.simulated {
			return
		}
		cp.BodyUpdatePosition(body, dt)
	})

	bb := cp.NewBBForExtents(offset, size.X/2, size.Y/2)
	shape := cp.NewBox2(body, bb, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)

	cw.space.AddBody(body)
	body.SetPosition(pos)
	cw.AddShape(shape, common.LayerPlayer)

	b.body = body
	b.shape = shape
	return b
}

func (b *Body) Velocity() cp.Vector {
	return b.body.Velocity()
}

func (b *Body) SetVelocity(v cp.Vector) {
	b.body.SetVelocity(v.X, v.Y)
}

func (b *Body) GravityScale() float64 {
	return b.gravityScale
}

func (b *Body) SetGravityScale(scale float64) {
	b.gravityScale = scale
}

func (b *Body) Simulated() bool {
	return b.simulated
}

// SetSimulated freezes or releases the body. A frozen body keeps its
// velocity and passes through everything.
func (b *Body) SetSimulated(simulated bool) {
	b.simulated = simulated
	b.shape.SetSensor(!simulated)
}

func (b *Body) Position() cp.Vector {
	return b.body.Position()
}

// SetPosition teleports the body. The shape's cached bounds catch up on the
// next space step; Bounds is always current.
func (b *Body) SetPosition(p cp.Vector) {
	b.body.SetPosition(p)
}

// Bounds is the collider box in world space.
func (b *Body) Bounds() cp.BB {
	return cp.NewBBForExtents(b.Position().Add(b.offset), b.size.X/2, b.size.Y/2)
}

func (b *Body) Shape() *cp.Shape {
	return b.shape
}

// Remove takes the body out of its space.
func (b *Body) Remove() {
	b.world.RemoveShape(b.shape)
	b.world.space.RemoveBody(b.body)
}
