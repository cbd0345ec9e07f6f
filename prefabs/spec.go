package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/player"
	"gopkg.in/yaml.v3"
)

// LoadSpec reads and decodes a prefab into a zero T.
func LoadSpec[T any](filename string) (T, error) {
	var spec T
	return spec, decodeInto(filename, &spec)
}

func decodeInto(filename string, out any) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

var ErrMissingDeath = errors.New("prefabs: player spec needs a default death strategy")

// PlayerSpec describes the player actor: its collider, where the sensors
// sit relative to the body centre, the movement tuning and the clip names.
type PlayerSpec struct {
	Name     string        `yaml:"name"`
	Color    YAMLColor     `yaml:"color"`
	Collider ColliderSpec  `yaml:"collider"`
	Anchors  AnchorSpec    `yaml:"anchors"`
	Movement player.Config `yaml:"movement"`
	Sounds   player.Sounds `yaml:"sounds"`

	Death map[string]player.DeathStrategy `yaml:"death"`
}

type ColliderSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

func (c ColliderSpec) Size() cp.Vector {
	return cp.Vector{X: c.Width, Y: c.Height}
}

func (c ColliderSpec) Offset() cp.Vector {
	return cp.Vector{X: c.OffsetX, Y: c.OffsetY}
}

// AnchorSpec places the sensor probes. Nil anchors are rejected when the
// controller is built.
type AnchorSpec struct {
	GroundCheck *cp.Vector `yaml:"ground_check"`
	WallCheck   *cp.Vector `yaml:"wall_check"`
}

// LoadPlayerSpec decodes a player prefab on top of player.DefaultConfig, so
// a spec only lists the tunables it changes.
func LoadPlayerSpec(filename string) (*PlayerSpec, error) {
	spec := PlayerSpec{Movement: player.DefaultConfig()}
	if err := decodeInto(filename, &spec); err != nil {
		return nil, err
	}
	if err := spec.Movement.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	if _, ok := spec.Death["default"]; !ok {
		return nil, fmt.Errorf("%w (%s)", ErrMissingDeath, filename)
	}
	for name, d := range spec.Death {
		d.Name = name
		spec.Death[name] = d
	}
	return &spec, nil
}

// DeathStrategy returns the named strategy, falling back to "default".
func (s *PlayerSpec) DeathStrategy(name string) *player.DeathStrategy {
	d, ok := s.Death[name]
	if !ok {
		d = s.Death["default"]
	}
	return &d
}

// DeathNames lists the strategies in a stable order.
func (s *PlayerSpec) DeathNames() []string {
	names := make([]string, 0, len(s.Death))
	for name := range s.Death {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	rgba, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("invalid color format: %s: %w", value.Value, err)
	}
	if len(s) == 6 {
		rgba = rgba<<8 | 0xff
	}

	c.Color = color.NRGBA{R: uint8(rgba >> 24), G: uint8(rgba >> 16), B: uint8(rgba >> 8), A: uint8(rgba)}
	return nil
}

// RGBA returns the colour, or white when none was set.
func (c YAMLColor) RGBA() (r, g, b, a uint32) {
	if c.Color == nil {
		return color.White.RGBA()
	}
	return c.Color.RGBA()
}

// SoundSpec is one synthesized clip. A File, when set, is decoded instead
// of synthesizing.
type SoundSpec struct {
	Name     string  `yaml:"name"`
	File     string  `yaml:"file"`
	Wave     string  `yaml:"wave"`
	Freq     float64 `yaml:"freq"`
	FreqEnd  float64 `yaml:"freq_end"`
	Duration float64 `yaml:"duration"`
	Attack   float64 `yaml:"attack"`
	Release  float64 `yaml:"release"`
	Volume   float64 `yaml:"volume"`

	// Layers are mixed on top of the base tone.
	Layers []SoundSpec `yaml:"layers"`
}

type SoundBankSpec struct {
	SampleRate int         `yaml:"sample_rate"`
	Volume     float64     `yaml:"volume"`
	Range      float64     `yaml:"range"`
	Sounds     []SoundSpec `yaml:"sounds"`
}

func LoadSoundBankSpec(filename string) (SoundBankSpec, error) {
	return LoadSpec[SoundBankSpec](filename)
}

// ReplaySpec is a scripted run of a level with expectations checked along
// the way.
type ReplaySpec struct {
	Name      string        `yaml:"name"`
	Level     string        `yaml:"level"`
	Script    string        `yaml:"script"`
	Frames    int           `yaml:"frames"`
	FrameTime float64       `yaml:"frame_time"`
	Checks    []ReplayCheck `yaml:"checks"`
}

// ReplayCheck is a boolean expression over the player's state. A zero Frame
// is checked after the last frame.
type ReplayCheck struct {
	Frame  int    `yaml:"frame"`
	Expect string `yaml:"expect"`
}

var ErrBadReplay = errors.New("prefabs: invalid replay")

// LoadReplaySpec reads replays/<name>.yaml.
func LoadReplaySpec(name string) (ReplaySpec, error) {
	spec, err := LoadSpec[ReplaySpec](path.Join("replays", strings.TrimPrefix(name, "replays/")))
	if err != nil {
		return spec, err
	}
	if spec.Name == "" {
		spec.Name = name
	}
	if spec.FrameTime == 0 {
		spec.FrameTime = 1.0 / 60.0
	}
	switch {
	case spec.Level == "":
		return spec, fmt.Errorf("%w: %s has no level", ErrBadReplay, name)
	case spec.Script == "":
		return spec, fmt.Errorf("%w: %s has no script", ErrBadReplay, name)
	case spec.Frames <= 0:
		return spec, fmt.Errorf("%w: %s runs %d frames", ErrBadReplay, name, spec.Frames)
	case spec.FrameTime < 0:
		return spec, fmt.Errorf("%w: %s frame time %v", ErrBadReplay, name, spec.FrameTime)
	}
	for _, c := range spec.Checks {
		if c.Frame < 0 || c.Frame > spec.Frames {
			return spec, fmt.Errorf("%w: %s checks frame %d of %d", ErrBadReplay, name, c.Frame, spec.Frames)
		}
	}
	return spec, nil
}

// ReplayNames lists the embedded replays.
func ReplayNames() []string {
	entries, err := fs.ReadDir(PrefabsFS, "replays")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}
