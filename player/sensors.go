package player

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/common"
)

// World answers the read-only queries the sensors need. Distances are in
// world units and masks select which tagged surfaces count as hits.
type World interface {
	Raycast(origin, dir cp.Vector, distance float64, mask common.Layer) bool
	OverlapCircle(center cp.Vector, radius float64, mask common.Layer) bool
	BoxCast(center, size, dir cp.Vector, distance float64, mask common.Layer) bool
	Gravity() cp.Vector
}

// Anchors places the sensors relative to the body position. GroundCheck and
// WallCheck are required.
type Anchors struct {
	GroundCheck    *cp.Vector
	WallCheck      *cp.Vector
	ColliderSize   cp.Vector
	ColliderOffset cp.Vector
}

// Sensors runs the probes. It never writes to the body.
type Sensors struct {
	world   World
	body    RigidBody
	anchors Anchors
	cfg     *Config
}

func (s *Sensors) Bounds() cp.BB {
	center := s.body.Position().Add(s.anchors.ColliderOffset)
	return cp.NewBBForExtents(center, s.anchors.ColliderSize.X/2, s.anchors.ColliderSize.Y/2)
}

func (s *Sensors) GroundCheckPosition() cp.Vector {
	return s.body.Position().Add(*s.anchors.GroundCheck)
}

func (s *Sensors) WallCheckPosition() cp.Vector {
	return s.body.Position().Add(*s.anchors.WallCheck)
}

// Grounded probes a circle under the feet against ground surfaces.
func (s *Sensors) Grounded() bool {
	return s.world.OverlapCircle(s.GroundCheckPosition(), s.cfg.GroundCheckRadius, common.LayerGround)
}

// TouchingWall casts from just outside the leading edge in the facing direction.
func (s *Sensors) TouchingWall(facing int) bool {
	bb := s.Bounds()
	x := bb.R + 0.01
	if facing < 0 {
		x = bb.L - 0.01
	}
	center := bb.Center()
	origin := cp.Vector{X: x, Y: center.Y}
	return s.world.Raycast(origin, cp.Vector{X: float64(facing)}, s.cfg.WallCheckDistance, common.LayerWall)
}

// WallSide looks for a wall on either side of the wall-check anchor, right
// first. It returns 0 when neither side has one.
func (s *Sensors) WallSide() int {
	origin := s.WallCheckPosition()
	if s.world.Raycast(origin, cp.Vector{X: 1}, s.cfg.WallCheckDistance, common.LayerWall) {
		return 1
	}
	if s.world.Raycast(origin, cp.Vector{X: -1}, s.cfg.WallCheckDistance, common.LayerWall) {
		return -1
	}
	return 0
}

// CornerCorrection returns the horizontal nudge that slides an ascending body
// past a ledge clipped by one top corner. Zero means no correction.
func (s *Sensors) CornerCorrection(vy float64) float64 {
	if vy <= 0 {
		return 0
	}
	bb := s.Bounds()
	y := bb.T + 0.01
	up := cp.Vector{Y: 1}
	left, right, center := s.edgeProbes(bb, y, up, s.cfg.CornerCorrectionDistance)

	switch {
	case left && !center:
		return s.cfg.CornerCorrectionNudge
	case right && !center:
		return -s.cfg.CornerCorrectionNudge
	}
	return 0
}

// LandingCorrection is the descending counterpart of CornerCorrection. It
// shifts the body toward the lip one bottom corner is resting on.
func (s *Sensors) LandingCorrection(vy float64) float64 {
	if vy >= 0 {
		return 0
	}
	bb := s.Bounds()
	y := bb.B + 0.05
	down := cp.Vector{Y: -1}
	left, right, center := s.edgeProbes(bb, y, down, s.cfg.LandingProbeDistance)

	switch {
	case left && !center:
		return -s.cfg.CornerCorrectionNudge
	case right && !center:
		return s.cfg.CornerCorrectionNudge
	}
	return 0
}

func (s *Sensors) edgeProbes(bb cp.BB, y float64, dir cp.Vector, dist float64) (left, right, center bool) {
	edge := s.cfg.CornerEdgeOffset
	left = s.world.Raycast(cp.Vector{X: bb.L + edge, Y: y}, dir, dist, common.LayerGround)
	right = s.world.Raycast(cp.Vector{X: bb.R - edge, Y: y}, dir, dist, common.LayerGround)
	center = s.world.Raycast(cp.Vector{X: (bb.L + bb.R) / 2, Y: y}, dir, dist, common.LayerGround)
	return left, right, center
}

// BounceSide reports whether a dash wall bounce may fire off the wall on side
// dir. A barrier anywhere near cancels that side; a hazard inside the safe
// distance shortens the probe.
func (s *Sensors) BounceSide(dir int) bool {
	origin := s.body.Position()
	direction := cp.Vector{X: float64(dir)}
	safe := s.cfg.WallBounceSafeDistance

	if s.world.Raycast(origin, direction, safe+s.cfg.BarrierMargin, common.LayerBarrier) {
		return false
	}

	dist := safe
	if s.world.Raycast(origin, direction, safe, common.LayerHazard) {
		dist = s.cfg.WallBounceHazardDist
	}
	return s.world.Raycast(origin, direction, dist, common.LayerWall)
}

// WouldCrush casts the collider, shrunk slightly, along dir.
func (s *Sensors) WouldCrush(dir cp.Vector, dist float64) bool {
	size := s.anchors.ColliderSize.Sub(cp.Vector{X: 0.02, Y: 0.02})
	center := s.body.Position().Add(s.anchors.ColliderOffset)
	return s.world.BoxCast(center, size, dir, dist+0.01, common.LayerGround|common.LayerWall)
}
