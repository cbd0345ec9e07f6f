package obj

import (
	"math"

	"github.com/jakecoffman/cp"
)

type PickupKind int

const (
	// PickupRefill restores the dash and stamina, then respawns.
	PickupRefill PickupKind = iota
	// PickupSpring launches the collector upward.
	PickupSpring
)

func (k PickupKind) String() string {
	if k == PickupSpring {
		return "spring"
	}
	return "refill"
}

// Collector is an actor that can use pickups.
type Collector interface {
	Bounds() cp.BB
	Dead() bool
	CanDash() bool
	Tired() bool
	Refill()
	Bounce(force cp.Vector, lockTime float64)
}

// Pickup is a placed trigger that fires once per touch.
type Pickup struct {
	Kind     PickupKind
	Pos      cp.Vector
	Disabled bool

	RespawnTime float64
	SpringForce float64
	LockTime    float64

	respawn   float64
	phase     float64
	amplitude float64
	frequency float64
	touched   bool
}

func NewPickup(kind PickupKind, pos cp.Vector) *Pickup {
	return &Pickup{
		Kind:        kind,
		Pos:         pos,
		RespawnTime: 2.5,
		SpringForce: 22,
		LockTime:    0.1,
		amplitude:   0.1,
		frequency:   2.0,
		phase:       math.Mod(pos.X, 7) * 0.3,
	}
}

// Bounds is the trigger area. Springs sit on the floor of their tile.
func (p *Pickup) Bounds() cp.BB {
	if p.Kind == PickupSpring {
		return cp.BB{L: p.Pos.X - 0.4, B: p.Pos.Y - 0.5, R: p.Pos.X + 0.4, T: p.Pos.Y - 0.1}
	}
	return cp.NewBBForExtents(p.Pos, 0.3, 0.3)
}

// Hover is the vertical draw offset of a floating pickup.
func (p *Pickup) Hover() float64 {
	if p.Kind == PickupSpring {
		return 0
	}
	return math.Sin(p.phase*p.frequency) * p.amplitude
}

// Update advances timers and fires on the frame c starts touching the
// pickup. It reports whether the pickup fired.
func (p *Pickup) Update(dt float64, c Collector) bool {
	p.phase += dt
	if p.Disabled {
		p.respawn -= dt
		if p.respawn > 0 {
			return false
		}
		p.Disabled = false
	}
	if c == nil || c.Dead() {
		p.touched = false
		return false
	}

	colliding := p.Bounds().Intersects(c.Bounds())
	if !colliding {
		p.touched = false
		return false
	}
	if p.touched {
		return false
	}

	switch p.Kind {
	case PickupRefill:
		if c.CanDash() && !c.Tired() {
			return false
		}
		c.Refill()
		p.Disabled = true
		p.respawn = p.RespawnTime
	case PickupSpring:
		c.Bounce(cp.Vector{Y: p.SpringForce}, p.LockTime)
	}
	p.touched = true
	return true
}
