package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/common"
	"github.com/milk9111/climber/levels"
)

// CollisionWorld owns the Chipmunk space and the static level shapes. Shape
// filter categories carry the common.Layer bits so every query can select
// surfaces by mask.
type CollisionWorld struct {
	level *levels.Level
	space *cp.Space

	layers map[*cp.Shape]common.Layer
}

func NewCollisionWorld(level *levels.Level) *CollisionWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	gravity := common.Gravity
	if level != nil && level.Gravity != 0 {
		gravity = level.Gravity
	}
	space.SetGravity(cp.Vector{X: 0, Y: -gravity})

	cw := &CollisionWorld{
		level:  level,
		space:  space,
		layers: make(map[*cp.Shape]common.Layer),
	}
	cw.buildStaticShapes()
	return cw
}

// tileLayer maps a level tile to the layers of its static shape.
func tileLayer(tile byte) common.Layer {
	switch tile {
	case levels.TileSolid:
		return common.LayerGround | common.LayerWall
	case levels.TileLedge:
		return common.LayerGround
	case levels.TileBarrier:
		return common.LayerGround | common.LayerBarrier
	case levels.TileSpike:
		return common.LayerHazard
	}
	return common.LayerNone
}

func (cw *CollisionWorld) buildStaticShapes() {
	if cw.level == nil || cw.level.Width == 0 || cw.level.Height == 0 {
		return
	}
	w, h := cw.level.Width, cw.level.Height

	// Merge contiguous tiles of the same kind into larger rectangles so the
	// space holds fewer static boxes than one per tile.
	processed := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if processed[idx] {
				continue
			}
			layer := tileLayer(cw.level.At(x, y))
			if layer == common.LayerNone {
				processed[idx] = true
				continue
			}

			same := func(xx, yy int) bool {
				return !processed[yy*w+xx] && tileLayer(cw.level.At(xx, yy)) == layer
			}

			rw := 1
			for x+rw < w && same(x+rw, y) {
				rw++
			}
			rh := 1
		heightLoop:
			for y+rh < h {
				for xi := x; xi < x+rw; xi++ {
					if !same(xi, y+rh) {
						break heightLoop
					}
				}
				rh++
			}

			bb := cp.BB{L: float64(x), B: float64(y), R: float64(x + rw), T: float64(y + rh)}
			if layer == common.LayerHazard {
				// Spikes only fill the lower half of their row.
				bb.T = bb.B + float64(rh) - 0.5
			}
			shape := cp.NewBox2(cw.space.StaticBody, bb, 0)
			shape.SetFriction(0.8)
			if layer == common.LayerHazard {
				shape.SetSensor(true)
			}
			cw.AddShape(shape, layer)

			for yy := y; yy < y+rh; yy++ {
				for xx := x; xx < x+rw; xx++ {
					processed[yy*w+xx] = true
				}
			}
		}
	}
}

// Space returns the underlying Chipmunk space.
func (cw *CollisionWorld) Space() *cp.Space {
	return cw.space
}

func (cw *CollisionWorld) Level() *levels.Level {
	return cw.level
}

// AddShape adds shape to the space tagged with layer. Shapes tagged with the
// player layer collide with solids only.
func (cw *CollisionWorld) AddShape(shape *cp.Shape, layer common.Layer) {
	shape.SetFilter(shapeFilter(layer))
	cw.layers[shape] = layer
	cw.space.AddShape(shape)
}

func (cw *CollisionWorld) RemoveShape(shape *cp.Shape) {
	delete(cw.layers, shape)
	cw.space.RemoveShape(shape)
}

// LayerOf returns the layers shape was added with.
func (cw *CollisionWorld) LayerOf(shape *cp.Shape) common.Layer {
	return cw.layers[shape]
}

// StaticShapes counts the shapes built from level tiles.
func (cw *CollisionWorld) StaticShapes() int {
	n := 0
	for shape := range cw.layers {
		if shape.Body() == cw.space.StaticBody {
			n++
		}
	}
	return n
}

func shapeFilter(layer common.Layer) cp.ShapeFilter {
	mask := uint(cp.ALL_CATEGORIES)
	if layer.Has(common.LayerPlayer) {
		mask = uint(common.LayerGround | common.LayerWall | common.LayerBarrier)
	}
	return cp.ShapeFilter{Group: cp.NO_GROUP, Categories: uint(layer), Mask: mask}
}

func queryFilter(mask common.Layer) cp.ShapeFilter {
	return cp.ShapeFilter{Group: cp.NO_GROUP, Categories: uint(cp.ALL_CATEGORIES), Mask: uint(mask)}
}

func (cw *CollisionWorld) Gravity() cp.Vector {
	return cw.space.Gravity()
}

func (cw *CollisionWorld) Step(dt float64) {
	cw.space.Step(dt)
}

// Raycast reports whether the segment from origin along dir for distance
// crosses any shape in mask. Sensors count.
func (cw *CollisionWorld) Raycast(origin, dir cp.Vector, distance float64, mask common.Layer) bool {
	_, ok := cw.RaycastHit(origin, dir, distance, mask)
	return ok
}

// RaycastHit returns the nearest hit along the ray.
func (cw *CollisionWorld) RaycastHit(origin, dir cp.Vector, distance float64, mask common.Layer) (cp.SegmentQueryInfo, bool) {
	end := origin.Add(dir.Mult(distance))
	best := cp.SegmentQueryInfo{Alpha: 2}
	cw.space.SegmentQuery(origin, end, 0, queryFilter(mask), func(shape *cp.Shape, point, normal cp.Vector, alpha float64, _ interface{}) {
		if alpha < best.Alpha {
			best = cp.SegmentQueryInfo{Shape: shape, Point: point, Normal: normal, Alpha: alpha}
		}
	}, nil)
	return best, best.Shape != nil
}

// OverlapCircle reports whether any shape in mask lies within radius of
// center.
func (cw *CollisionWorld) OverlapCircle(center cp.Vector, radius float64, mask common.Layer) bool {
	hit := false
	bb := cp.NewBBForCircle(center, radius)
	cw.space.BBQuery(bb, queryFilter(mask), func(shape *cp.Shape, _ interface{}) {
		if hit {
			return
		}
		if info := shape.PointQuery(center); info.Distance <= radius {
			hit = true
		}
	}, nil)
	return hit
}

// OverlapBox reports whether any shape in mask overlaps bb.
func (cw *CollisionWorld) OverlapBox(bb cp.BB, mask common.Layer) bool {
	return len(cw.ShapesInBox(bb, mask)) > 0
}

// ShapesInBox returns the shapes in mask whose bounds overlap bb.
func (cw *CollisionWorld) ShapesInBox(bb cp.BB, mask common.Layer) []*cp.Shape {
	var shapes []*cp.Shape
	cw.space.BBQuery(bb, queryFilter(mask), func(shape *cp.Shape, _ interface{}) {
		if shape.BB().Intersects(bb) {
			shapes = append(shapes, shape)
		}
	}, nil)
	return shapes
}

// BoxCast sweeps an axis-aligned box of size centred on center along dir
// and reports whether the swept area touches any shape in mask.
func (cw *CollisionWorld) BoxCast(center, size, dir cp.Vector, distance float64, mask common.Layer) bool {
	start := cp.NewBBForExtents(center, size.X/2, size.Y/2)
	swept := start.Merge(start.Offset(dir.Mult(distance)))
	return cw.OverlapBox(swept, mask)
}
