package player

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/common"
)

var (
	ErrNilBody       = errors.New("player: nil rigid body")
	ErrNilWorld      = errors.New("player: nil world")
	ErrMissingAnchor = errors.New("player: missing sensor anchor")
)

// Input is one frame of player intent. JumpPressed and DashPressed are edges.
type Input struct {
	Move        cp.Vector
	JumpPressed bool
	JumpHeld    bool
	DashPressed bool
	GrabHeld    bool
}

// Options wires a controller. Body, World and both sensor anchors are required.
type Options struct {
	Config   Config
	Body     RigidBody
	World    World
	Anchors  Anchors
	Services Services
}

// Controller turns input into rigid-body velocity through a state machine.
// The host calls Update once per rendered frame and FixedUpdate once per
// physics step, logic first.
type Controller struct {
	cfg     Config
	body    RigidBody
	world   World
	sensors *Sensors
	sm      *StateMachine
	timers  Timers

	audio  Audio
	anim   Animator
	fx     Effects
	sounds Sounds

	now     float64
	dt      float64
	fixedDt float64

	move      cp.Vector
	grab      bool
	jumpHeld  bool
	jumpInput bool

	grounded      bool
	touchingWall  bool
	platformLatch bool
	facing        int
	stamina       float64
	tired         bool
	flashing      bool

	dead               bool
	isJumping          bool
	isWallJumping      bool
	startingTransition bool
	resuming           bool
	backstepping       bool
	lastWallDir        int
	varJumpSpeed       float64

	idle      *idleState
	run       *runState
	jump      *jumpState
	inAir     *inAirState
	dash      *dashState
	wallSlide *wallSlideState
	wallGrab  *wallGrabState
	cutscene  *cutsceneState
	spawn     *spawnState

	saved          *Snapshot
	deathListeners []func(DeathEvent)
}

func New(opts Options) (*Controller, error) {
	if opts.Body == nil {
		return nil, ErrNilBody
	}
	if opts.World == nil {
		return nil, ErrNilWorld
	}
	if opts.Anchors.GroundCheck == nil {
		return nil, fmt.Errorf("%w: ground check", ErrMissingAnchor)
	}
	if opts.Anchors.WallCheck == nil {
		return nil, fmt.Errorf("%w: wall check", ErrMissingAnchor)
	}
	if opts.Anchors.ColliderSize.X <= 0 || opts.Anchors.ColliderSize.Y <= 0 {
		return nil, fmt.Errorf("%w: collider size %v", ErrMissingAnchor, opts.Anchors.ColliderSize)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("player: new controller: %w", err)
	}

	svc := opts.Services.withDefaults()
	c := &Controller{
		cfg:     opts.Config,
		body:    opts.Body,
		world:   opts.World,
		timers:  NewTimers(),
		audio:   svc.Audio,
		anim:    svc.Animator,
		fx:      svc.Effects,
		sounds:  svc.Sounds,
		fixedDt: opts.Config.FixedStep,
		facing:  1,
	}
	c.sensors = &Sensors{world: opts.World, body: opts.Body, anchors: opts.Anchors, cfg: &c.cfg}
	c.sm = NewStateMachine(c.Now)

	c.idle = &idleState{baseState{c: c, kind: KindIdle, anim: "Idle"}}
	c.run = &runState{baseState: baseState{c: c, kind: KindRun, anim: "Run"}}
	c.jump = &jumpState{baseState{c: c, kind: KindJump, anim: "Jump"}}
	c.inAir = &inAirState{baseState{c: c, kind: KindInAir, anim: "InAir"}}
	c.dash = &dashState{baseState: baseState{c: c, kind: KindDash, anim: "Dash"}, canDash: true}
	c.wallSlide = &wallSlideState{baseState{c: c, kind: KindWallSlide, anim: "WallSlide"}}
	c.wallGrab = &wallGrabState{baseState{c: c, kind: KindWallGrab, anim: "WallGrab"}}
	c.cutscene = &cutsceneState{baseState{c: c, kind: KindCutscene, anim: "Run"}}
	c.spawn = &spawnState{baseState{c: c, kind: KindSpawn, anim: "Spawn"}}

	c.body.SetGravityScale(c.cfg.GravityScale)
	c.ResetStamina()
	c.sm.Initialize(c.idle)
	return c, nil
}

// Update runs the logic phase for a frame lasting dt seconds.
func (c *Controller) Update(dt float64, in Input) {
	c.now += dt
	c.dt = dt
	if c.dead {
		return
	}

	c.updateVisualFlags()
	c.CheckWallJumpLock()

	if c.sm.Is(KindCutscene) {
		c.move = cp.Vector{}
		return
	}

	c.handleInput(dt, in)
	c.updateWallStatus()

	c.grounded = c.checkGrounded()
	c.sm.Current().LogicUpdate()

	if c.grounded {
		c.timers.LastGrounded = c.now
		c.ResetStamina()
	}
	c.platformLatch = false
}

// FixedUpdate runs the physics phase for one step of dt seconds. The host
// integrates the body afterwards.
func (c *Controller) FixedUpdate(dt float64) {
	if c.dead {
		return
	}
	c.fixedDt = dt
	c.sm.Current().PhysicsUpdate()
	c.touchingWall = c.sensors.TouchingWall(c.facing)
}

func (c *Controller) handleInput(dt float64, in Input) {
	c.jumpHeld = in.JumpHeld

	if c.timers.TickInputLock(dt) {
		c.move = cp.Vector{}
		return
	}

	c.move = in.Move
	if c.move.LengthSq() > 1 {
		c.move = c.move.Normalize()
	}
	c.grab = in.GrabHeld

	if in.JumpPressed {
		c.jumpInput = true
		c.timers.LastJumpPressed = c.now
	}
	if in.DashPressed {
		c.timers.LastDashPressed = c.now
	}
}

func (c *Controller) updateWallStatus() {
	if c.touchingWall {
		c.timers.LastWallExit = c.now
		c.lastWallDir = c.facing
		c.backstepping = false
	}
}

func (c *Controller) updateVisualFlags() {
	c.tired = c.stamina < c.cfg.TiredThreshold
	c.flashing = c.tired && math.Mod(c.now, 0.2) < 0.1
	c.anim.SetBool("Tired", c.tired)
}

func (c *Controller) checkGrounded() bool {
	if c.platformLatch {
		return true
	}
	return c.sensors.Grounded()
}

// CheckJumpInput reports whether a jump press is still buffered.
func (c *Controller) CheckJumpInput() bool {
	return Within(c.now, c.timers.LastJumpPressed, c.cfg.JumpBufferTime)
}

func (c *Controller) UseJumpInput() {
	c.jumpInput = false
	c.timers.LastJumpPressed = Never
}

// CheckDashInput reports whether a dash press is still buffered.
func (c *Controller) CheckDashInput() bool {
	return Within(c.now, c.timers.LastDashPressed, c.cfg.DashInputBufferTime)
}

func (c *Controller) UseDashInput() {
	c.timers.LastDashPressed = Never
}

// InCoyoteTime reports whether a grounded jump is still allowed after leaving
// the ground.
func (c *Controller) InCoyoteTime() bool {
	return !c.isJumping && Within(c.now, c.timers.LastGrounded, c.cfg.CoyoteTime)
}

func (c *Controller) ConsumeCoyoteTime() {
	c.timers.LastGrounded = Never
}

func (c *Controller) checkFlip() {
	if c.backstepping {
		return
	}
	if c.move.X != 0 {
		c.facing = int(common.Sign(c.move.X))
	}
}

// tryDash starts a dash if one is buffered and allowed.
func (c *Controller) tryDash() bool {
	if !c.CheckDashInput() || !c.dash.CanDash() {
		return false
	}
	c.UseDashInput()
	return c.sm.ChangeState(c.dash)
}

func (c *Controller) ResetStamina() {
	c.stamina = c.cfg.MaxStamina
}

func (c *Controller) DecreaseStamina(amount float64) {
	c.stamina = math.Max(0, c.stamina-amount)
}

// SetInputLock zeroes movement input for the next d seconds.
func (c *Controller) SetInputLock(d float64) {
	c.timers.InputLockRemaining = d
}

// Bounce launches the actor as a spring would: forced airborne, refilled and
// briefly locked out of input.
func (c *Controller) Bounce(force cp.Vector, lockTime float64) {
	c.sm.ChangeState(c.inAir)
	if math.Abs(force.Y) < 0.5 {
		force.Y = 2
	}
	c.body.SetVelocity(force)
	c.Refill()
	c.timers.InputLockRemaining = lockTime
	c.timers.LastJumpPressed = Never
	c.timers.LastDashPressed = Never
	c.timers.LastGrounded = Never
	c.jumpInput = false
	c.move = cp.Vector{}
}

// OverrideVelocity replaces the velocity from outside the state machine and
// drops any pending jump or dash intent.
func (c *Controller) OverrideVelocity(v cp.Vector, lockInput float64) {
	if !c.sm.Is(KindInAir) {
		c.sm.ChangeState(c.inAir)
	}
	c.body.SetVelocity(v)
	if lockInput > 0 {
		c.timers.InputLockRemaining = lockInput
		c.move = cp.Vector{}
	}
	c.timers.VarJumpWindowEnd = Never
	c.isJumping = false
	c.isWallJumping = false
	c.timers.LastJumpPressed = Never
	c.timers.LastDashPressed = Never
	c.timers.LastGrounded = Never
}

// Spawn plays the spawn state from the current position.
func (c *Controller) Spawn() {
	c.sm.ChangeState(c.spawn)
}

func (c *Controller) Now() float64          { return c.now }
func (c *Controller) Config() Config        { return c.cfg }
func (c *Controller) Body() RigidBody       { return c.body }
func (c *Controller) Sensors() *Sensors     { return c.sensors }
func (c *Controller) State() Kind           { return c.sm.Current().Kind() }
func (c *Controller) StateElapsed() float64 { return c.sm.Elapsed() }
func (c *Controller) Timers() Timers        { return c.timers }
func (c *Controller) Facing() int           { return c.facing }
func (c *Controller) Stamina() float64      { return c.stamina }
func (c *Controller) Grounded() bool        { return c.grounded }
func (c *Controller) TouchingWall() bool    { return c.touchingWall }
func (c *Controller) Dead() bool            { return c.dead }
func (c *Controller) Jumping() bool         { return c.isJumping }
func (c *Controller) WallJumping() bool     { return c.isWallJumping }
func (c *Controller) Tired() bool           { return c.tired }
func (c *Controller) Flashing() bool        { return c.flashing }
func (c *Controller) Move() cp.Vector       { return c.move }
func (c *Controller) CanDash() bool         { return c.dash.CanDash() }
func (c *Controller) DashDirection() cp.Vector {
	return c.dash.direction
}
