package player

import "github.com/jakecoffman/cp"

// Sound names an audio clip. The empty sound plays nothing.
type Sound string

// Audio plays fire-and-forget sounds.
type Audio interface {
	PlayOneShot(sound Sound, at cp.Vector)
	SetLoop(sound Sound, playing bool)
}

// Animator receives cosmetic animation flags. The controller never reads them back.
type Animator interface {
	SetBool(name string, value bool)
}

type Effect int

const (
	EffectJump Effect = iota
	EffectLand
	EffectDashStart
	EffectDashStop
	EffectWallJump
	EffectSpawn
)

func (e Effect) String() string {
	switch e {
	case EffectJump:
		return "jump"
	case EffectLand:
		return "land"
	case EffectDashStart:
		return "dash_start"
	case EffectDashStop:
		return "dash_stop"
	case EffectWallJump:
		return "wall_jump"
	case EffectSpawn:
		return "spawn"
	}
	return "unknown"
}

// Effects spawns cosmetic effects keyed by event.
type Effects interface {
	Spawn(effect Effect, at, dir cp.Vector)
}

// Sounds maps controller events to clips.
type Sounds struct {
	Jump      Sound `yaml:"jump"`
	Dash      Sound `yaml:"dash"`
	WallJump  Sound `yaml:"wall_jump"`
	Land      Sound `yaml:"land"`
	WallSlide Sound `yaml:"wall_slide"`
	RunStep   Sound `yaml:"run_step"`
}

// Services are the optional collaborators. Nil fields become no-ops.
type Services struct {
	Audio    Audio
	Animator Animator
	Effects  Effects
	Sounds   Sounds
}

type nopAudio struct{}

func (nopAudio) PlayOneShot(Sound, cp.Vector) {}
func (nopAudio) SetLoop(Sound, bool)          {}

type nopAnimator struct{}

func (nopAnimator) SetBool(string, bool) {}

type nopEffects struct{}

func (nopEffects) Spawn(Effect, cp.Vector, cp.Vector) {}

func (s Services) withDefaults() Services {
	if s.Audio == nil {
		s.Audio = nopAudio{}
	}
	if s.Animator == nil {
		s.Animator = nopAnimator{}
	}
	if s.Effects == nil {
		s.Effects = nopEffects{}
	}
	return s
}

func (c *Controller) playSound(s Sound) {
	if s == "" {
		return
	}
	c.audio.PlayOneShot(s, c.body.Position())
}
