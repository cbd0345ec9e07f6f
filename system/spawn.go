package system

import (
	"github.com/milk9111/climber/levels"
	"github.com/milk9111/climber/obj"
	"github.com/milk9111/climber/prefabs"
)

// spawnObjects builds the moving platforms, crumbling ledges and pickups the
// level places.
func (w *World) spawnObjects(spec *prefabs.PlayerSpec) {
	if w == nil || w.Level == nil {
		return
	}
	w.Platforms = w.spawnPlatforms(spec)
	w.Crumbles = w.spawnCrumbles()
	w.Pickups = w.spawnPickups()
}

func (w *World) spawnPlatforms(spec *prefabs.PlayerSpec) []*obj.Platform {
	platforms := make([]*obj.Platform, 0, len(w.Level.Platforms))
	for _, ps := range w.Level.Platforms {
		if ps.Size.X <= 0 || ps.Size.Y <= 0 {
			continue
		}
		p := obj.NewPlatform(w.CollisionWorld, ps)
		if spec != nil {
			p.Crush = spec.DeathStrategy("crush")
		}
		platforms = append(platforms, p)
	}
	return platforms
}

func (w *World) spawnCrumbles() []*obj.Crumble {
	runs := w.Level.Runs(levels.TileCrumble)
	crumbles := make([]*obj.Crumble, 0, len(runs))
	for _, bb := range runs {
		crumbles = append(crumbles, obj.NewCrumble(w.CollisionWorld, bb))
	}
	return crumbles
}

func (w *World) spawnPickups() []*obj.Pickup {
	var pickups []*obj.Pickup
	for _, pos := range w.Level.Find(levels.TileRefill) {
		pickups = append(pickups, obj.NewPickup(obj.PickupRefill, pos))
	}
	for _, pos := range w.Level.Find(levels.TileSpring) {
		pickups = append(pickups, obj.NewPickup(obj.PickupSpring, pos))
	}
	return pickups
}
