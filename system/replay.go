package system

import (
	"context"
	"fmt"
	"log"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/player"
	"github.com/milk9111/climber/prefabs"
)

// TraceEvent records one state change seen during a replay.
type TraceEvent struct {
	Frame int
	From  player.Kind
	To    player.Kind
	Pos   cp.Vector
}

func (e TraceEvent) String() string {
	return fmt.Sprintf("frame %d: %s -> %s at (%.2f, %.2f)", e.Frame, e.From, e.To, e.Pos.X, e.Pos.Y)
}

// CheckResult is the outcome of one expectation.
type CheckResult struct {
	Frame  int
	Expect string
	Passed bool
	Err    error
}

type ReplayResult struct {
	ID     string
	Name   string
	Frames int
	Deaths int
	Final  map[string]any
	Checks []CheckResult
	Trace  []TraceEvent
}

// Passed reports whether every check held.
func (r ReplayResult) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

type compiledCheck struct {
	prefabs.ReplayCheck
	program *vm.Program
}

// Replay drives a world from a script for a fixed number of frames without
// rendering or audio.
type Replay struct {
	ID   string
	Spec prefabs.ReplaySpec

	// OnTrace, when set, sees each state change as it happens.
	OnTrace func(TraceEvent)

	checks []compiledCheck
}

// NewReplay compiles the replay's expectations. Each run gets a fresh ID.
func NewReplay(spec prefabs.ReplaySpec) (*Replay, error) {
	r := &Replay{ID: uuid.NewString(), Spec: spec}
	for _, c := range spec.Checks {
		program, err := expr.Compile(c.Expect, expr.Env(replayEnv(nil, nil)), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("system: replay %s: compile %q: %w", spec.Name, c.Expect, err)
		}
		r.checks = append(r.checks, compiledCheck{ReplayCheck: c, program: program})
	}
	return r, nil
}

// Run plays the replay to completion, stopping early only on a script
// error or when ctx is done.
func (r *Replay) Run(ctx context.Context) (ReplayResult, error) {
	res := ReplayResult{ID: r.ID, Name: r.Spec.Name}

	w, err := NewWorld(r.Spec.Level, Options{})
	if err != nil {
		return res, err
	}
	defer w.Remove()
	script, err := LoadScriptedInput(r.Spec.Script)
	if err != nil {
		return res, err
	}

	c := w.Controller()
	last := c.State()
	for frame := 1; frame <= r.Spec.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		in, err := script.Next(ctx, c)
		if err != nil {
			return res, err
		}
		w.Update(r.Spec.FrameTime, in)
		res.Frames = frame

		if now := c.State(); now != last {
			ev := TraceEvent{Frame: frame, From: last, To: now, Pos: w.Player.Feet()}
			res.Trace = append(res.Trace, ev)
			if r.OnTrace != nil {
				r.OnTrace(ev)
			}
			last = now
		}

		for _, chk := range r.checks {
			if chk.Frame == frame {
				res.Checks = append(res.Checks, r.evaluate(chk, w))
			}
		}
	}

	for _, chk := range r.checks {
		if chk.Frame == 0 {
			res.Checks = append(res.Checks, r.evaluate(chk, w))
		}
	}
	res.Deaths = w.Deaths()
	res.Final = replayEnv(w, c)
	log.Printf("replay %s [%s]: %d frames, %d deaths, passed=%t", r.Spec.Name, r.ID, res.Frames, res.Deaths, res.Passed())
	return res, nil
}

func (r *Replay) evaluate(chk compiledCheck, w *World) CheckResult {
	res := CheckResult{Frame: w.Frame(), Expect: chk.Expect}
	out, err := expr.Run(chk.program, replayEnv(w, w.Controller()))
	if err != nil {
		res.Err = err
		return res
	}
	res.Passed, _ = out.(bool)
	return res
}

// replayEnv is what an expectation can see. A nil world yields zero values
// of the right types for compiling.
func replayEnv(w *World, c *player.Controller) map[string]any {
	env := map[string]any{
		"frame":       0,
		"state":       "",
		"x":           0.0,
		"y":           0.0,
		"vx":          0.0,
		"vy":          0.0,
		"facing":      0,
		"grounded":    false,
		"wall":        false,
		"stamina":     0.0,
		"max_stamina": 0.0,
		"tired":       false,
		"can_dash":    false,
		"since_dash":  0.0,
		"dead":        false,
		"deaths":      0,
		"room":        "",
	}
	if w == nil || c == nil {
		return env
	}
	feet := w.Player.Feet()
	vel := c.Body().Velocity()
	env["frame"] = w.Frame()
	env["state"] = c.State().String()
	env["x"] = feet.X
	env["y"] = feet.Y
	env["vx"] = vel.X
	env["vy"] = vel.Y
	env["facing"] = c.Facing()
	env["grounded"] = c.Grounded()
	env["wall"] = c.TouchingWall()
	env["stamina"] = c.Stamina()
	env["max_stamina"] = c.Config().MaxStamina
	env["tired"] = c.Tired()
	env["can_dash"] = c.CanDash()
	env["since_dash"] = c.Now() - c.Timers().LastDashEnd
	env["dead"] = c.Dead()
	env["deaths"] = w.Deaths()
	env["room"] = w.Level.Rooms[w.Room()].Name
	return env
}
