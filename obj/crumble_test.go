package obj

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/common"
	"github.com/stretchr/testify/assert"
)

func TestCrumbleCycle(t *testing.T) {
	cw := NewCollisionWorld(nil)
	c := NewCrumble(cw, cp.BB{L: 0, B: 2, R: 3, T: 3})
	probe := cp.BB{L: 1, B: 2.4, R: 2, T: 2.6}
	standing := &fakeRider{bb: cp.BB{L: 1, B: 3, R: 1.6, T: 3.8}}

	c.Update(0.1)
	assert.Equal(t, CrumbleSolid, c.State())

	c.Update(0.1, standing)
	assert.Equal(t, CrumbleShaking, c.State())
	assert.InDelta(t, 0, c.Progress(), 1e-9)

	c.Update(0.35)
	assert.InDelta(t, 0.5, c.Progress(), 1e-9)
	assert.True(t, cw.OverlapBox(probe, common.LayerGround))

	c.Update(0.4)
	assert.Equal(t, CrumbleGone, c.State())
	assert.False(t, cw.OverlapBox(probe, common.LayerGround))
	assert.True(t, c.shape.Sensor())

	// Something inside the ledge keeps it from rebuilding.
	inside := &fakeRider{bb: cp.BB{L: 1, B: 2.2, R: 1.6, T: 3}}
	c.Update(2.5, inside)
	assert.Equal(t, CrumbleGone, c.State())

	c.Update(0.1)
	assert.Equal(t, CrumbleSolid, c.State())
	assert.True(t, cw.OverlapBox(probe, common.LayerGround))
	assert.False(t, c.shape.Sensor())
}

func TestCrumbleIgnoresDeadRider(t *testing.T) {
	c := NewCrumble(NewCollisionWorld(nil), cp.BB{L: 0, B: 2, R: 3, T: 3})

	c.Update(0.1, &fakeRider{bb: cp.BB{L: 1, B: 3, R: 1.6, T: 3.8}, dead: true})

	assert.Equal(t, CrumbleSolid, c.State())
}
