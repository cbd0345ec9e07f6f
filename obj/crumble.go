package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/common"
)

type CrumbleState int

const (
	CrumbleSolid CrumbleState = iota
	CrumbleShaking
	CrumbleGone
)

// Crumble is a ledge that breaks a moment after something stands on it and
// rebuilds itself later.
type Crumble struct {
	world *CollisionWorld
	shape *cp.Shape
	bb    cp.BB

	Lifetime   float64
	ResetDelay float64

	state CrumbleState
	timer float64
}

func NewCrumble(cw *CollisionWorld, bb cp.BB) *Crumble {
	c := &Crumble{
		world:      cw,
		bb:         bb,
		Lifetime:   0.7,
		ResetDelay: 2,
	}
	c.shape = cp.NewBox2(cw.space.StaticBody, bb, 0)
	c.shape.SetFriction(0.8)
	cw.AddShape(c.shape, common.LayerGround)
	return c
}

func (c *Crumble) Bounds() cp.BB {
	return c.bb
}

func (c *Crumble) State() CrumbleState {
	return c.state
}

// Progress is how far the current shake or rebuild wait has run, in [0,1].
func (c *Crumble) Progress() float64 {
	switch c.state {
	case CrumbleShaking:
		return common.Clamp(c.timer/c.Lifetime, 0, 1)
	case CrumbleGone:
		return common.Clamp(c.timer/c.ResetDelay, 0, 1)
	}
	return 0
}

func (c *Crumble) Update(dt float64, riders ...Rider) {
	switch c.state {
	case CrumbleSolid:
		for _, r := range riders {
			if r != nil && !r.Dead() && standingOn(c.bb, r.Bounds()) {
				c.state = CrumbleShaking
				c.timer = 0
				return
			}
		}
	case CrumbleShaking:
		c.timer += dt
		if c.timer >= c.Lifetime {
			c.setSolid(false)
			c.state = CrumbleGone
			c.timer = 0
		}
	case CrumbleGone:
		c.timer += dt
		if c.timer < c.ResetDelay {
			return
		}
		for _, r := range riders {
			if r != nil && r.Bounds().Intersects(c.bb) {
				return
			}
		}
		c.setSolid(true)
		c.state = CrumbleSolid
		c.timer = 0
	}
}

func (c *Crumble) setSolid(solid bool) {
	c.shape.SetSensor(!solid)
	if solid {
		c.shape.SetFilter(shapeFilter(common.LayerGround))
		return
	}
	c.shape.SetFilter(cp.SHAPE_FILTER_NONE)
}
