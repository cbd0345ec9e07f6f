package system

import (
	"context"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/player"
	"github.com/milk9111/climber/prefabs"
)

// scriptTimeout bounds one call of a script's input function.
const scriptTimeout = 50 * time.Millisecond

const scriptDispatch = `
__out = input(__frame, __actor)
`

// ScriptedInput produces controller input from a tengo script. The script
// defines input(frame, actor) returning a map with any of move_x, move_y,
// jump, dash and grab. Jump and dash are held values; presses are derived
// from their rising edges.
type ScriptedInput struct {
	Name     string
	compiled *tengo.Compiled

	frame    int
	jumpHeld bool
	dashHeld bool
}

// LoadScriptedInput compiles the named script from prefabs/scripts.
func LoadScriptedInput(name string) (*ScriptedInput, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}
	return NewScriptedInput(name, src)
}

func NewScriptedInput(name string, src []byte) (*ScriptedInput, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), []byte("\n"+scriptDispatch)...))
	_ = script.Add("__frame", 0)
	_ = script.Add("__actor", map[string]any{})
	_ = script.Add("__out", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("system: compile script %s: %w", name, err)
	}
	if !compiled.IsDefined("input") {
		return nil, fmt.Errorf("system: script %s does not define input", name)
	}
	return &ScriptedInput{Name: name, compiled: compiled}, nil
}

// Frame is the number of inputs produced so far.
func (s *ScriptedInput) Frame() int {
	return s.frame
}

// Next runs the script for the next frame against c. A script that panics
// or runs past scriptTimeout yields an error.
func (s *ScriptedInput) Next(ctx context.Context, c *player.Controller) (player.Input, error) {
	frame := s.frame
	s.frame++

	if err := s.compiled.Set("__frame", frame); err != nil {
		return player.Input{}, err
	}
	if err := s.compiled.Set("__actor", actorMap(c)); err != nil {
		return player.Input{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, scriptTimeout)
	defer cancel()
	if err := s.compiled.RunContext(ctx); err != nil {
		return player.Input{}, fmt.Errorf("system: script %s frame %d: %w", s.Name, frame, err)
	}

	out := s.compiled.Get("__out").Map()
	jump := asBool(out["jump"])
	dash := asBool(out["dash"])
	in := player.Input{
		Move:        cp.Vector{X: asFloat(out["move_x"]), Y: asFloat(out["move_y"])},
		JumpPressed: jump && !s.jumpHeld,
		JumpHeld:    jump,
		DashPressed: dash && !s.dashHeld,
		GrabHeld:    asBool(out["grab"]),
	}
	s.jumpHeld = jump
	s.dashHeld = dash
	return in, nil
}

func actorMap(c *player.Controller) map[string]any {
	if c == nil {
		return map[string]any{}
	}
	pos := c.Body().Position()
	vel := c.Body().Velocity()
	return map[string]any{
		"state":    c.State().String(),
		"x":        pos.X,
		"y":        pos.Y,
		"vx":       vel.X,
		"vy":       vel.Y,
		"facing":   c.Facing(),
		"grounded": c.Grounded(),
		"wall":     c.TouchingWall(),
		"stamina":  c.Stamina(),
		"tired":    c.Tired(),
		"can_dash": c.CanDash(),
		"dead":     c.Dead(),
	}
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

func asBool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}
