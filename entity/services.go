package entity

import (
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/player"
)

// Flags records the animator booleans the controller sets so the renderer
// can pick a pose.
type Flags struct {
	values map[string]bool
}

func NewFlags() *Flags {
	return &Flags{values: make(map[string]bool)}
}

func (f *Flags) SetBool(name string, value bool) {
	f.values[name] = value
}

func (f *Flags) Get(name string) bool {
	return f.values[name]
}

// Active lists the flags currently set.
func (f *Flags) Active() []string {
	var out []string
	for name, v := range f.values {
		if v {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Puff is one spawned effect.
type Puff struct {
	Effect player.Effect
	At     cp.Vector
	Dir    cp.Vector
	Age    float64
}

// Puffs keeps recently spawned effects alive for a fixed lifetime.
type Puffs struct {
	lifetime float64
	items    []Puff
}

func NewPuffs(lifetime float64) *Puffs {
	return &Puffs{lifetime: lifetime}
}

func (p *Puffs) Spawn(effect player.Effect, at, dir cp.Vector) {
	p.items = append(p.items, Puff{Effect: effect, At: at, Dir: dir})
}

// Update ages every puff and drops the expired ones.
func (p *Puffs) Update(dt float64) {
	live := p.items[:0]
	for _, it := range p.items {
		it.Age += dt
		if it.Age < p.lifetime {
			live = append(live, it)
		}
	}
	p.items = live
}

func (p *Puffs) Items() []Puff {
	return p.items
}

// Progress is how far through its life a puff is, in [0,1].
func (p *Puffs) Progress(it Puff) float64 {
	if p.lifetime <= 0 {
		return 1
	}
	return min(it.Age/p.lifetime, 1)
}
