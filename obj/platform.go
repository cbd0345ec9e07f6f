package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/common"
	"github.com/milk9111/climber/levels"
	"github.com/milk9111/climber/player"
)

// carryTolerance is how far a rider's feet may be from the platform top and
// still ride it.
const carryTolerance = 0.1

// Rider is an actor a platform can carry, push and crush. Carrying goes
// through ApplyManualDelta and counts as standing on the platform; Push does not.
type Rider interface {
	Bounds() cp.BB
	Dead() bool
	ApplyManualDelta(delta cp.Vector)
	Push(delta cp.Vector)
	QueryWouldCrush(dir cp.Vector, dist float64) bool
	ForceCrushDeath(strategy *player.DeathStrategy)
}

// Platform is a kinematic box that ping-pongs between two points.
type Platform struct {
	Name string

	world *CollisionWorld
	body  *cp.Body
	shape *cp.Shape

	from, to cp.Vector
	size     cp.Vector
	speed    float64
	pause    float64

	pos     cp.Vector
	t       float64
	dir     float64
	waiting float64

	Crush *player.DeathStrategy
}

func NewPlatform(cw *CollisionWorld, spec levels.Platform) *Platform {
	p := &Platform{
		Name:  spec.Name,
		world: cw,
		from:  spec.From,
		to:    spec.To,
		size:  spec.Size,
		speed: spec.Speed,
		pause: spec.Pause,
		pos:   spec.From,
		dir:   1,
	}

	p.body = cp.NewKinematicBody()
	cw.space.AddBody(p.body)
	p.body.SetPosition(p.pos)

	p.shape = cp.NewBox(p.body, spec.Size.X, spec.Size.Y, 0)
	p.shape.SetFriction(0.8)
	cw.AddShape(p.shape, common.LayerGround|common.LayerWall)
	return p
}

func (p *Platform) Position() cp.Vector {
	return p.pos
}

func (p *Platform) Bounds() cp.BB {
	return p.boundsAt(p.pos)
}

func (p *Platform) boundsAt(pos cp.Vector) cp.BB {
	return cp.NewBBForExtents(pos, p.size.X/2, p.size.Y/2)
}

// advance moves along the path and returns the new position.
func (p *Platform) advance(dt float64) cp.Vector {
	length := p.from.Distance(p.to)
	if length == 0 || p.speed <= 0 {
		return p.pos
	}
	if p.waiting > 0 {
		p.waiting = math.Max(0, p.waiting-dt)
		return p.pos
	}

	p.t += p.dir * p.speed * dt / length
	if p.t >= 1 || p.t <= 0 {
		p.t = common.Clamp(p.t, 0, 1)
		p.dir = -p.dir
		p.waiting = p.pause
	}
	return p.from.Lerp(p.to, p.t)
}

// Step moves the platform one fixed step and carries, pushes or crushes
// the riders it touches. Call it once before each space step of dt.
func (p *Platform) Step(dt float64, riders ...Rider) {
	next := p.advance(dt)
	delta := next.Sub(p.pos)
	p.body.SetPosition(p.pos)
	if delta.LengthSq() == 0 {
		p.body.SetVelocity(0, 0)
		return
	}

	oldBB := p.Bounds()
	newBB := p.boundsAt(next)

	// The platform must not see itself in the riders' crush probes.
	p.shape.SetFilter(cp.SHAPE_FILTER_NONE)
	for _, r := range riders {
		if r == nil || r.Dead() {
			continue
		}
		p.moveRider(r, oldBB, newBB, delta)
	}
	p.shape.SetFilter(shapeFilter(common.LayerGround | common.LayerWall))

	// The space integrates kinematic bodies, so the step itself lands the
	// body on next.
	p.pos = next
	p.body.SetVelocity(delta.X/dt, delta.Y/dt)
}

func (p *Platform) moveRider(r Rider, oldBB, newBB cp.BB, delta cp.Vector) {
	rb := r.Bounds()

	if standingOn(oldBB, rb) {
		if delta.Y > 0 && r.QueryWouldCrush(cp.Vector{Y: 1}, delta.Y) {
			r.ForceCrushDeath(p.Crush)
			return
		}
		r.ApplyManualDelta(delta)
		return
	}

	push, ok := pushOut(newBB, rb, delta)
	if !ok {
		return
	}
	dist := push.Length()
	if r.QueryWouldCrush(push.Mult(1/dist), dist) {
		r.ForceCrushDeath(p.Crush)
		return
	}
	// Only a push up onto the top face lands the rider.
	if push.X == 0 && push.Y > 0 {
		r.ApplyManualDelta(push)
		return
	}
	r.Push(push)
}

func standingOn(platform, rider cp.BB) bool {
	if rider.R <= platform.L || rider.L >= platform.R {
		return false
	}
	return math.Abs(rider.B-platform.T) <= carryTolerance
}

// pushOut returns the displacement that moves rider out of platform along
// the dominant axis of the platform's motion.
func pushOut(platform, rider cp.BB, delta cp.Vector) (cp.Vector, bool) {
	overlaps := platform.L < rider.R && rider.L < platform.R && platform.B < rider.T && rider.B < platform.T
	if !overlaps {
		return cp.Vector{}, false
	}
	if math.Abs(delta.X) >= math.Abs(delta.Y) {
		if delta.X > 0 {
			return cp.Vector{X: platform.R - rider.L}, true
		}
		return cp.Vector{X: platform.L - rider.R}, true
	}
	if delta.Y > 0 {
		return cp.Vector{Y: platform.T - rider.B}, true
	}
	return cp.Vector{Y: platform.B - rider.T}, true
}
