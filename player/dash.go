package player

import "github.com/jakecoffman/cp"

// ResolveDashDirection returns the unit dash direction for input, falling
// back to the facing direction when there is no input.
func ResolveDashDirection(input cp.Vector, facing int) cp.Vector {
	if input.LengthSq() == 0 {
		if facing < 0 {
			return cp.Vector{X: -1}
		}
		return cp.Vector{X: 1}
	}
	return input.Normalize()
}

// dashState moves at a fixed velocity with gravity off for DashTime seconds.
type dashState struct {
	baseState

	canDash   bool
	direction cp.Vector
}

// CanDash reports whether a new dash may start: the dash has been refilled
// and the cooldown from the last dash start has run out.
func (s *dashState) CanDash() bool {
	return s.canDash && s.c.now >= s.c.timers.DashCooldownEnd
}

func (s *dashState) Enter() {
	c := s.c
	s.enterAnim()
	c.body.SetGravityScale(0)
	if c.resuming {
		return
	}

	c.playSound(c.sounds.Dash)

	s.canDash = false
	c.timers.DashCooldownEnd = c.now + c.cfg.DashCooldown
	c.timers.DashAttackWindowEnd = c.now + c.cfg.DashAttackTime

	s.direction = ResolveDashDirection(c.move, c.facing)
	c.body.SetVelocity(s.velocity())

	c.fx.Spawn(EffectDashStart, c.body.Position(), s.direction)
}

func (s *dashState) velocity() cp.Vector {
	return s.direction.Mult(s.c.cfg.DashSpeed)
}

func (s *dashState) LogicUpdate() {
	c := s.c
	c.body.SetVelocity(s.velocity())

	if s.direction.Y > 0 && Open(c.now, c.timers.DashAttackWindowEnd) && c.CheckJumpInput() {
		if side := s.wallBounceSide(); side != 0 {
			c.UseJumpInput()
			c.PerformWallBounce(side)
			c.sm.ChangeState(c.inAir)
			return
		}
	}

	if c.grounded && c.CheckJumpInput() {
		c.UseJumpInput()
		c.PerformSuperJump()
		c.sm.ChangeState(c.inAir)
		return
	}

	if c.sm.Elapsed() >= c.cfg.DashTime {
		if c.grounded {
			c.sm.ChangeState(c.idle)
			return
		}
		c.sm.ChangeState(c.inAir)
	}
}

// wallBounceSide returns the side of a wall the dash can bounce off, right
// side first, or 0.
func (s *dashState) wallBounceSide() int {
	if s.c.sensors.BounceSide(1) {
		return 1
	}
	if s.c.sensors.BounceSide(-1) {
		return -1
	}
	return 0
}

func (s *dashState) PhysicsUpdate() {
	c := s.c
	v := c.body.Velocity()
	if v.Y > 0 {
		if dx := c.sensors.CornerCorrection(v.Y); dx != 0 {
			c.nudgeX(dx)
		}
	}
}

func (s *dashState) Exit() {
	c := s.c
	s.exitAnim()

	c.timers.LastDashEnd = c.now
	c.body.SetGravityScale(c.cfg.GravityScale)

	if c.startingTransition || c.dead {
		return
	}

	v := c.body.Velocity()
	if v.Y > 0 {
		c.setVelocityY(v.Y * c.cfg.DragY)
	} else if v.Y < -c.cfg.DashTerminalSpeed {
		c.setVelocityY(-c.cfg.DashTerminalSpeed)
	}

	c.fx.Spawn(EffectDashStop, c.body.Position(), s.direction)
}
