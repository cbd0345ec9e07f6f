package player

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/common"
	"github.com/stretchr/testify/require"
)

const (
	testDt        = 1.0 / 60.0
	groundAndWall = common.LayerGround | common.LayerWall
)

type testBox struct {
	bb    cp.BB
	layer common.Layer
}

// testWorld answers sensor queries against axis-aligned boxes.
type testWorld struct {
	boxes        []testBox
	gravity      cp.Vector
	groundProbes int
}

func newTestWorld() *testWorld {
	return &testWorld{gravity: cp.Vector{Y: -30}}
}

func (w *testWorld) add(l, b, r, t float64, layer common.Layer) *testWorld {
	w.boxes = append(w.boxes, testBox{bb: cp.BB{L: l, B: b, R: r, T: t}, layer: layer})
	return w
}

func (w *testWorld) floor() *testWorld {
	return w.add(-50, -1, 50, 0, groundAndWall)
}

func (w *testWorld) clear() {
	w.boxes = nil
}

func (w *testWorld) Raycast(origin, dir cp.Vector, distance float64, mask common.Layer) bool {
	end := origin.Add(dir.Mult(distance))
	for _, b := range w.boxes {
		if b.layer&mask == 0 {
			continue
		}
		if b.bb.IntersectsSegment(origin, end) {
			return true
		}
	}
	return false
}

func (w *testWorld) OverlapCircle(center cp.Vector, radius float64, mask common.Layer) bool {
	w.groundProbes++
	for _, b := range w.boxes {
		if b.layer&mask == 0 {
			continue
		}
		closest := b.bb.ClampVect(&center)
		if closest.Distance(center) <= radius {
			return true
		}
	}
	return false
}

func (w *testWorld) BoxCast(center, size, dir cp.Vector, distance float64, mask common.Layer) bool {
	start := cp.NewBBForExtents(center, size.X/2, size.Y/2)
	swept := start.Merge(start.Offset(dir.Mult(distance)))
	for _, b := range w.boxes {
		if b.layer&mask == 0 {
			continue
		}
		if swept.Intersects(b.bb) {
			return true
		}
	}
	return false
}

func (w *testWorld) Gravity() cp.Vector {
	return w.gravity
}

type testBody struct {
	velocity     cp.Vector
	position     cp.Vector
	gravityScale float64
	simulated    bool
}

func (b *testBody) Velocity() cp.Vector           { return b.velocity }
func (b *testBody) SetVelocity(v cp.Vector)       { b.velocity = v }
func (b *testBody) GravityScale() float64         { return b.gravityScale }
func (b *testBody) SetGravityScale(scale float64) { b.gravityScale = scale }
func (b *testBody) Simulated() bool               { return b.simulated }
func (b *testBody) SetSimulated(simulated bool)   { b.simulated = simulated }
func (b *testBody) Position() cp.Vector           { return b.position }
func (b *testBody) SetPosition(p cp.Vector)       { b.position = p }

type testAnimator struct {
	flags map[string]bool
}

func (a *testAnimator) SetBool(name string, value bool) {
	a.flags[name] = value
}

type testAudio struct {
	played []Sound
	loops  map[Sound]bool
}

func (a *testAudio) PlayOneShot(s Sound, _ cp.Vector) {
	a.played = append(a.played, s)
}

func (a *testAudio) SetLoop(s Sound, playing bool) {
	a.loops[s] = playing
}

type fixture struct {
	c     *Controller
	body  *testBody
	world *testWorld
	anim  *testAnimator
	audio *testAudio
}

func testAnchors() Anchors {
	ground := cp.Vector{Y: -0.5}
	wall := cp.Vector{}
	return Anchors{
		GroundCheck:  &ground,
		WallCheck:    &wall,
		ColliderSize: cp.Vector{X: 0.8, Y: 1},
	}
}

// newFixture builds a controller whose body is centred at pos. A body at
// y=0.5 stands on the floor added by testWorld.floor.
func newFixture(t *testing.T, world *testWorld, pos cp.Vector, tweak func(*Config)) *fixture {
	t.Helper()

	cfg := DefaultConfig()
	if tweak != nil {
		tweak(&cfg)
	}

	f := &fixture{
		body:  &testBody{position: pos, simulated: true},
		world: world,
		anim:  &testAnimator{flags: map[string]bool{}},
		audio: &testAudio{loops: map[Sound]bool{}},
	}
	c, err := New(Options{
		Config:  cfg,
		Body:    f.body,
		World:   world,
		Anchors: testAnchors(),
		Services: Services{
			Audio:    f.audio,
			Animator: f.anim,
			Sounds:   Sounds{Jump: "jump", Dash: "dash", WallJump: "wall_jump", Land: "land", WallSlide: "wall_slide"},
		},
	})
	require.NoError(t, err)
	f.c = c
	return f
}

// frame runs one logic frame followed by one physics step.
func (f *fixture) frame(in Input) {
	f.c.Update(testDt, in)
	f.c.FixedUpdate(testDt)
}

func (f *fixture) idleFrames(n int) {
	for i := 0; i < n; i++ {
		f.frame(Input{})
	}
}
