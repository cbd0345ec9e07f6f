package player

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

// ErrInvalidConfig is wrapped by Config.Validate.
var ErrInvalidConfig = errors.New("player: invalid config")

// Config holds the movement tunables. It is loaded once when a controller
// is built and never mutated afterwards.
type Config struct {
	// Run.
	MoveSpeed    float64 `yaml:"move_speed"`
	GroundAccel  float64 `yaml:"ground_accel"`
	GroundDecel  float64 `yaml:"ground_decel"`
	AirAccel     float64 `yaml:"air_accel"`
	StepInterval float64 `yaml:"step_interval"`

	// Jump.
	JumpVelocity   float64 `yaml:"jump_velocity"`
	VarJumpTime    float64 `yaml:"var_jump_time"`
	CoyoteTime     float64 `yaml:"coyote_time"`
	JumpBufferTime float64 `yaml:"jump_buffer_time"`
	MaxFallSpeed   float64 `yaml:"max_fall_speed"`
	GravityScale   float64 `yaml:"gravity_scale"`

	// Dash.
	DashSpeed           float64 `yaml:"dash_speed"`
	DashTime            float64 `yaml:"dash_time"`
	DashCooldown        float64 `yaml:"dash_cooldown"`
	DashInputBufferTime float64 `yaml:"dash_input_buffer_time"`
	DashAttackTime      float64 `yaml:"dash_attack_time"`
	DragY               float64 `yaml:"drag_y"`
	DashTerminalSpeed   float64 `yaml:"dash_terminal_speed"`
	SuperDashSpeedMult  float64 `yaml:"super_dash_speed_mult"`

	// Wall bounce out of an upward dash.
	WallBounceSpeedX       float64 `yaml:"wall_bounce_speed_x"`
	WallBounceSpeedY       float64 `yaml:"wall_bounce_speed_y"`
	WallBounceVarJumpTime  float64 `yaml:"wall_bounce_var_jump_time"`
	WallBounceSafeDistance float64 `yaml:"wall_bounce_safe_distance"`
	WallBounceHazardDist   float64 `yaml:"wall_bounce_hazard_distance"`
	BarrierMargin          float64 `yaml:"barrier_margin"`

	// Walls.
	WallCheckDistance   float64 `yaml:"wall_check_distance"`
	WallMemoryTime      float64 `yaml:"wall_memory_time"`
	WallBounceWindow    float64 `yaml:"wall_bounce_window"`
	WallJumpTime        float64 `yaml:"wall_jump_time"`
	WallJumpOffX        float64 `yaml:"wall_jump_off_x"`
	WallJumpOffY        float64 `yaml:"wall_jump_off_y"`
	WallJumpClimbY      float64 `yaml:"wall_jump_climb_y"`
	WallJumpStaminaCost float64 `yaml:"wall_jump_stamina_cost"`
	WallSlideSpeed      float64 `yaml:"wall_slide_speed"`
	WallClimbSpeed      float64 `yaml:"wall_climb_speed"`
	WallGrabDrain       float64 `yaml:"wall_grab_drain"`

	// Stamina.
	MaxStamina     float64 `yaml:"max_stamina"`
	TiredThreshold float64 `yaml:"tired_threshold"`

	// Sensors.
	GroundCheckRadius        float64 `yaml:"ground_check_radius"`
	CornerCorrectionDistance float64 `yaml:"corner_correction_distance"`
	CornerCorrectionNudge    float64 `yaml:"corner_correction_nudge"`
	CornerEdgeOffset         float64 `yaml:"corner_edge_offset"`
	LandingProbeDistance     float64 `yaml:"landing_probe_distance"`

	// Misc.
	SpawnTime float64 `yaml:"spawn_time"`
	FixedStep float64 `yaml:"fixed_step"`
}

// DefaultConfig returns the tuning the demo level is built around. Distances
// are in world units (one tile is one unit).
func DefaultConfig() Config {
	return Config{
		MoveSpeed:    9,
		GroundAccel:  90,
		GroundDecel:  120,
		AirAccel:     60,
		StepInterval: 0.28,

		JumpVelocity:   16,
		VarJumpTime:    0.2,
		CoyoteTime:     0.1,
		JumpBufferTime: 0.12,
		MaxFallSpeed:   24,
		GravityScale:   4,

		DashSpeed:           24,
		DashTime:            0.15,
		DashCooldown:        0.2,
		DashInputBufferTime: 0.1,
		DashAttackTime:      18.0 / 60.0,
		DragY:               0.75,
		DashTerminalSpeed:   15,
		SuperDashSpeedMult:  1.2,

		WallBounceSpeedX:       170.0 / 8.0,
		WallBounceSpeedY:       160.0 / 8.0,
		WallBounceVarJumpTime:  15.0 / 60.0,
		WallBounceSafeDistance: 4.0 / 8.0,
		WallBounceHazardDist:   2.0 / 8.0,
		BarrierMargin:          0.1,

		WallCheckDistance:   0.5,
		WallMemoryTime:      0.1,
		WallBounceWindow:    0.25,
		WallJumpTime:        0.15,
		WallJumpOffX:        10,
		WallJumpOffY:        15,
		WallJumpClimbY:      14,
		WallJumpStaminaCost: 25,
		WallSlideSpeed:      4,
		WallClimbSpeed:      4,
		WallGrabDrain:       20,

		MaxStamina:     110,
		TiredThreshold: 20,

		GroundCheckRadius:        0.3,
		CornerCorrectionDistance: 0.2,
		CornerCorrectionNudge:    0.1,
		CornerEdgeOffset:         0.04,
		LandingProbeDistance:     0.1,

		SpawnTime: 0.4,
		FixedStep: 0.02,
	}
}

// Validate rejects tunables the controller cannot run with.
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"move_speed", c.MoveSpeed},
		{"jump_velocity", c.JumpVelocity},
		{"dash_speed", c.DashSpeed},
		{"dash_time", c.DashTime},
		{"max_stamina", c.MaxStamina},
		{"ground_check_radius", c.GroundCheckRadius},
		{"wall_check_distance", c.WallCheckDistance},
		{"fixed_step", c.FixedStep},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be > 0, got %g", ErrInvalidConfig, p.name, p.value)
		}
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"coyote_time", c.CoyoteTime},
		{"jump_buffer_time", c.JumpBufferTime},
		{"dash_cooldown", c.DashCooldown},
		{"dash_input_buffer_time", c.DashInputBufferTime},
		{"wall_memory_time", c.WallMemoryTime},
		{"wall_jump_time", c.WallJumpTime},
		{"wall_jump_stamina_cost", c.WallJumpStaminaCost},
		{"gravity_scale", c.GravityScale},
	}
	for _, p := range nonNegative {
		if p.value < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %g", ErrInvalidConfig, p.name, p.value)
		}
	}

	if c.WallBounceHazardDist > c.WallBounceSafeDistance {
		return fmt.Errorf("%w: wall_bounce_hazard_distance %g exceeds wall_bounce_safe_distance %g",
			ErrInvalidConfig, c.WallBounceHazardDist, c.WallBounceSafeDistance)
	}
	if c.TiredThreshold > c.MaxStamina {
		return fmt.Errorf("%w: tired_threshold %g exceeds max_stamina %g", ErrInvalidConfig, c.TiredThreshold, c.MaxStamina)
	}

	return nil
}

func (c Config) wallJumpOff() cp.Vector {
	return cp.Vector{X: c.WallJumpOffX, Y: c.WallJumpOffY}
}
