package entity

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/obj"
	"github.com/milk9111/climber/player"
	"github.com/milk9111/climber/prefabs"
)

var ErrNilSpec = errors.New("entity: nil player spec")

// Player is a controller together with the physics body it drives.
type Player struct {
	Controller *player.Controller
	Body       *obj.Body
	Spec       *prefabs.PlayerSpec
	Flags      *Flags
	Puffs      *Puffs
}

// NewPlayer builds the player from player.yaml standing on feet.
func NewPlayer(cw *obj.CollisionWorld, feet cp.Vector, svc player.Services) (*Player, error) {
	spec, err := prefabs.LoadPlayerSpec("player.yaml")
	if err != nil {
		return nil, err
	}
	return BuildPlayer(spec, cw, feet, svc)
}

// BuildPlayer adds a body for spec to cw with the bottom of its collider at
// feet and wires a controller to it. Nil animator and effects services are
// replaced by the recording Flags and Puffs; sound names come from spec.
func BuildPlayer(spec *prefabs.PlayerSpec, cw *obj.CollisionWorld, feet cp.Vector, svc player.Services) (*Player, error) {
	if spec == nil {
		return nil, ErrNilSpec
	}
	if cw == nil {
		return nil, fmt.Errorf("entity: build player: %w", player.ErrNilWorld)
	}

	size := spec.Collider.Size()
	offset := spec.Collider.Offset()
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("entity: build player: %w: collider size %v", player.ErrMissingAnchor, size)
	}

	p := &Player{Spec: spec, Flags: NewFlags(), Puffs: NewPuffs(0.35)}
	if svc.Animator == nil {
		svc.Animator = p.Flags
	}
	if svc.Effects == nil {
		svc.Effects = p.Puffs
	}
	if svc.Sounds == (player.Sounds{}) {
		svc.Sounds = spec.Sounds
	}

	p.Body = obj.NewBody(cw, bodyCenter(spec, feet), size, offset)
	c, err := player.New(player.Options{
		Config: spec.Movement,
		Body:   p.Body,
		World:  cw,
		Anchors: player.Anchors{
			GroundCheck:    spec.Anchors.GroundCheck,
			WallCheck:      spec.Anchors.WallCheck,
			ColliderSize:   size,
			ColliderOffset: offset,
		},
		Services: svc,
	})
	if err != nil {
		p.Body.Remove()
		return nil, fmt.Errorf("entity: build player: %w", err)
	}
	p.Controller = c
	return p, nil
}

func bodyCenter(spec *prefabs.PlayerSpec, feet cp.Vector) cp.Vector {
	return feet.Add(cp.Vector{X: -spec.Collider.OffsetX, Y: spec.Collider.Height/2 - spec.Collider.OffsetY})
}

// Place moves the player so its feet are at feet and stops it.
func (p *Player) Place(feet cp.Vector) {
	p.Body.SetPosition(bodyCenter(p.Spec, feet))
	p.Body.SetVelocity(cp.Vector{})
}

// Feet is the bottom centre of the collider.
func (p *Player) Feet() cp.Vector {
	bb := p.Body.Bounds()
	return cp.Vector{X: (bb.L + bb.R) / 2, Y: bb.B}
}

// Remove takes the body out of the world.
func (p *Player) Remove() {
	p.Body.Remove()
}
