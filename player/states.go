package player

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/common"
)

type baseState struct {
	c    *Controller
	kind Kind
	anim string
}

func (s *baseState) Kind() Kind {
	return s.kind
}

func (s *baseState) enterAnim() {
	s.c.anim.SetBool(s.anim, true)
}

func (s *baseState) exitAnim() {
	s.c.anim.SetBool(s.anim, false)
}

// groundedTransitions handles the exits shared by Idle and Run.
func (c *Controller) groundedTransitions() bool {
	if c.tryDash() {
		return true
	}
	if c.CheckJumpInput() && (c.grounded || c.InCoyoteTime()) {
		return c.sm.ChangeState(c.jump)
	}
	if !c.grounded {
		return c.sm.ChangeState(c.inAir)
	}
	if c.touchingWall && c.grab && c.stamina > 0 {
		return c.sm.ChangeState(c.wallGrab)
	}
	return false
}

func (c *Controller) landOrRun() {
	if math.Abs(c.move.X) > 0.01 {
		c.sm.ChangeState(c.run)
		return
	}
	c.sm.ChangeState(c.idle)
}

func (c *Controller) runPhysics() {
	v := c.body.Velocity()
	target := c.move.X * c.cfg.MoveSpeed
	accel := c.cfg.GroundAccel
	if target == 0 {
		accel = c.cfg.GroundDecel
	}
	c.setVelocityX(common.Approach(v.X, target, accel*c.fixedDt))
}

func (c *Controller) airPhysics() {
	v := c.body.Velocity()
	if !c.isWallJumping {
		v.X = common.Approach(v.X, c.move.X*c.cfg.MoveSpeed, c.cfg.AirAccel*c.fixedDt)
	}
	if c.cfg.MaxFallSpeed > 0 && v.Y < -c.cfg.MaxFallSpeed {
		v.Y = -c.cfg.MaxFallSpeed
	}
	c.body.SetVelocity(v)

	if dx := c.sensors.CornerCorrection(v.Y); dx != 0 {
		c.nudgeX(dx)
	} else if dx := c.sensors.LandingCorrection(v.Y); dx != 0 {
		c.nudgeX(dx)
	}
}

// applyVarJump holds the launch speed while jump stays held inside the
// variable-jump window.
func (c *Controller) applyVarJump() {
	if !Open(c.now, c.timers.VarJumpWindowEnd) {
		return
	}
	if !c.jumpHeld {
		c.timers.VarJumpWindowEnd = Never
		return
	}
	if v := c.body.Velocity(); v.Y < c.varJumpSpeed {
		c.setVelocityY(c.varJumpSpeed)
	}
}

type idleState struct {
	baseState
}

func (s *idleState) Enter() {
	s.enterAnim()
}

func (s *idleState) LogicUpdate() {
	c := s.c
	c.checkFlip()
	if c.groundedTransitions() {
		return
	}
	if c.move.X != 0 {
		c.sm.ChangeState(c.run)
	}
}

func (s *idleState) PhysicsUpdate() {
	s.c.runPhysics()
}

func (s *idleState) Exit() {
	s.exitAnim()
}

type runState struct {
	baseState
	stepTimer float64
}

func (s *runState) Enter() {
	s.enterAnim()
	s.stepTimer = 0
}

func (s *runState) LogicUpdate() {
	c := s.c
	c.checkFlip()
	if c.groundedTransitions() {
		return
	}
	if c.move.X == 0 {
		c.sm.ChangeState(c.idle)
		return
	}

	s.stepTimer -= c.dt
	if s.stepTimer <= 0 {
		c.playSound(c.sounds.RunStep)
		s.stepTimer = c.cfg.StepInterval
	}
}

func (s *runState) PhysicsUpdate() {
	s.c.runPhysics()
}

func (s *runState) Exit() {
	s.exitAnim()
}

// jumpState launches and hands over to InAir on the next frame.
type jumpState struct {
	baseState
}

func (s *jumpState) Enter() {
	c := s.c
	s.enterAnim()
	if c.resuming {
		return
	}

	c.UseJumpInput()
	c.ConsumeCoyoteTime()
	c.setVelocityY(c.cfg.JumpVelocity)
	c.isJumping = true
	c.timers.VarJumpWindowEnd = c.now + c.cfg.VarJumpTime
	c.varJumpSpeed = c.cfg.JumpVelocity

	c.playSound(c.sounds.Jump)
	c.fx.Spawn(EffectJump, c.sensors.GroundCheckPosition(), cp.Vector{Y: 1})
}

func (s *jumpState) LogicUpdate() {
	s.c.sm.ChangeState(s.c.inAir)
}

func (s *jumpState) PhysicsUpdate() {
	s.c.airPhysics()
}

func (s *jumpState) Exit() {
	s.exitAnim()
}

type inAirState struct {
	baseState
}

func (s *inAirState) Enter() {
	s.enterAnim()
}

func (s *inAirState) LogicUpdate() {
	c := s.c
	c.checkFlip()
	c.applyVarJump()

	vy := c.body.Velocity().Y
	if c.grounded && vy <= 0.01 {
		c.isJumping = false
		c.playSound(c.sounds.Land)
		c.fx.Spawn(EffectLand, c.sensors.GroundCheckPosition(), cp.Vector{Y: 1})
		if c.CheckJumpInput() {
			c.sm.ChangeState(c.jump)
			return
		}
		c.landOrRun()
		return
	}

	if c.CheckJumpInput() {
		if c.InCoyoteTime() {
			c.sm.ChangeState(c.jump)
			return
		}
		if c.PerformWallJump() {
			return
		}
	}

	if c.tryDash() {
		return
	}

	if c.touchingWall && !c.isWallJumping {
		if c.grab && c.stamina > 0 {
			c.sm.ChangeState(c.wallGrab)
			return
		}
		if vy <= 0 && common.RoundAxis(c.move.X) == c.facing {
			c.sm.ChangeState(c.wallSlide)
		}
	}
}

func (s *inAirState) PhysicsUpdate() {
	s.c.airPhysics()
}

func (s *inAirState) Exit() {
	s.exitAnim()
}

type wallSlideState struct {
	baseState
}

func (s *wallSlideState) Enter() {
	s.enterAnim()
	s.c.audio.SetLoop(s.c.sounds.WallSlide, true)
}

func (s *wallSlideState) LogicUpdate() {
	c := s.c

	if c.CheckJumpInput() && c.PerformWallJump() {
		c.sm.ChangeState(c.inAir)
		return
	}
	if c.tryDash() {
		return
	}
	if c.grounded {
		c.landOrRun()
		return
	}
	if !c.touchingWall || common.RoundAxis(c.move.X) != c.facing {
		c.sm.ChangeState(c.inAir)
		return
	}
	if c.grab && c.stamina > 0 {
		c.sm.ChangeState(c.wallGrab)
	}
}

func (s *wallSlideState) PhysicsUpdate() {
	c := s.c
	v := c.body.Velocity()
	v.X = 0
	if v.Y < -c.cfg.WallSlideSpeed {
		v.Y = -c.cfg.WallSlideSpeed
	}
	c.body.SetVelocity(v)
}

func (s *wallSlideState) Exit() {
	s.c.audio.SetLoop(s.c.sounds.WallSlide, false)
	s.exitAnim()
}

type wallGrabState struct {
	baseState
}

func (s *wallGrabState) Enter() {
	c := s.c
	s.enterAnim()
	c.body.SetGravityScale(0)
	if !c.resuming {
		c.setVelocityZero()
	}
}

func (s *wallGrabState) LogicUpdate() {
	c := s.c
	c.DecreaseStamina(c.cfg.WallGrabDrain * c.dt)

	if c.CheckJumpInput() && c.PerformWallJump() {
		c.sm.ChangeState(c.inAir)
		return
	}
	if c.tryDash() {
		return
	}
	if !c.touchingWall {
		c.sm.ChangeState(c.inAir)
		return
	}
	if !c.grab || c.stamina <= 0 {
		if c.grounded {
			c.landOrRun()
			return
		}
		c.sm.ChangeState(c.wallSlide)
	}
}

func (s *wallGrabState) PhysicsUpdate() {
	c := s.c
	c.body.SetVelocity(cp.Vector{Y: c.move.Y * c.cfg.WallClimbSpeed})
}

func (s *wallGrabState) Exit() {
	s.c.body.SetGravityScale(s.c.cfg.GravityScale)
	s.exitAnim()
}

// cutsceneState takes no input and leaves the body alone.
type cutsceneState struct {
	baseState
}

func (s *cutsceneState) Enter()         { s.enterAnim() }
func (s *cutsceneState) LogicUpdate()   {}
func (s *cutsceneState) PhysicsUpdate() {}
func (s *cutsceneState) Exit()          { s.exitAnim() }

// spawnState holds the actor still for the configured spawn time.
type spawnState struct {
	baseState
}

func (s *spawnState) Enter() {
	c := s.c
	s.enterAnim()
	c.body.SetGravityScale(0)
	if c.resuming {
		return
	}
	c.setVelocityZero()
	c.fx.Spawn(EffectSpawn, c.body.Position(), cp.Vector{})
}

func (s *spawnState) LogicUpdate() {
	c := s.c
	if c.sm.Elapsed() < c.cfg.SpawnTime {
		return
	}
	if c.grounded {
		c.sm.ChangeState(c.idle)
		return
	}
	c.sm.ChangeState(c.inAir)
}

func (s *spawnState) PhysicsUpdate() {
	s.c.setVelocityZero()
}

func (s *spawnState) Exit() {
	s.c.body.SetGravityScale(s.c.cfg.GravityScale)
	s.exitAnim()
}
