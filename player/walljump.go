package player

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/common"
)

// PerformWallJump jumps off a wall the actor touches or touched within the
// wall memory window. It reports false, leaving velocity and the buffered
// jump untouched, when the jump is not allowed or stamina is exhausted.
func (c *Controller) PerformWallJump() bool {
	wallDir := c.facing
	if !c.touchingWall {
		wallDir = c.sensors.WallSide()
		if wallDir == 0 {
			wallDir = c.lastWallDir
		}
	}

	canWallJump := c.touchingWall || Within(c.now, c.timers.LastWallExit, c.cfg.WallMemoryTime)
	if !canWallJump {
		return false
	}

	combo := Open(c.now, c.timers.WallBounceWindowEnd) && !c.grab
	off := c.cfg.wallJumpOff()
	away := cp.Vector{X: -float64(wallDir) * off.X, Y: off.Y}

	switch {
	case combo:
		c.setWallJumpVelocity(away)
	case c.grab:
		if c.stamina <= 0 {
			return false
		}
		c.DecreaseStamina(c.cfg.WallJumpStaminaCost)
		c.body.SetVelocity(cp.Vector{Y: c.cfg.WallJumpClimbY})
	default:
		if c.stamina <= 0 {
			return false
		}
		c.DecreaseStamina(c.cfg.WallJumpStaminaCost)
		if common.RoundAxis(c.move.X) == 0 {
			c.backstepping = true
			c.body.SetVelocity(away)
		} else {
			c.backstepping = false
			c.setWallJumpVelocity(away)
		}
	}

	c.timers.InputLockRemaining = c.cfg.WallJumpTime
	c.timers.WallBounceWindowEnd = c.now + c.cfg.WallBounceWindow
	c.lastWallDir = wallDir
	c.isJumping = true
	c.isWallJumping = true
	c.timers.WallJumpStart = c.now
	c.UseJumpInput()

	c.anim.SetBool("Jump", true)
	c.fx.Spawn(EffectWallJump, c.sensors.WallCheckPosition(), cp.Vector{X: -float64(wallDir)})
	c.playSound(c.sounds.WallJump)
	return true
}

func (c *Controller) setWallJumpVelocity(v cp.Vector) {
	c.body.SetVelocity(v)
	if v.X != 0 {
		c.facing = int(common.Sign(v.X))
	}
	c.isWallJumping = true
	c.timers.WallJumpStart = c.now
}

// PerformWallBounce launches away from the wall on side wallDir out of an
// upward dash.
func (c *Controller) PerformWallBounce(wallDir int) {
	dirX := -float64(wallDir)
	c.body.SetVelocity(cp.Vector{X: c.cfg.WallBounceSpeedX * dirX, Y: c.cfg.WallBounceSpeedY})

	c.timers.VarJumpWindowEnd = c.now + c.cfg.WallBounceVarJumpTime
	c.varJumpSpeed = c.cfg.WallBounceSpeedY
	c.isWallJumping = false
	c.facing = int(dirX)

	c.fx.Spawn(EffectJump, c.body.Position(), cp.Vector{X: dirX, Y: 1})
}

// PerformSuperJump turns a grounded dash into a long jump.
func (c *Controller) PerformSuperJump() {
	v := c.body.Velocity()
	c.body.SetVelocity(cp.Vector{X: v.X * c.cfg.SuperDashSpeedMult, Y: c.cfg.JumpVelocity})
	c.isJumping = true
	c.timers.VarJumpWindowEnd = c.now + c.cfg.VarJumpTime
	c.varJumpSpeed = c.cfg.JumpVelocity
	c.anim.SetBool("Jump", true)
}

// CheckWallJumpLock clears the wall-jumping flag once WallJumpTime has
// passed since it was set.
func (c *Controller) CheckWallJumpLock() {
	if c.isWallJumping && c.now >= c.timers.WallJumpStart+c.cfg.WallJumpTime {
		c.isWallJumping = false
	}
}
