package player

import (
	"fmt"
	"log"

	"gopkg.in/yaml.v3"
)

type Kind int

const (
	KindIdle Kind = iota
	KindRun
	KindJump
	KindInAir
	KindDash
	KindWallSlide
	KindWallGrab
	KindCutscene
	KindSpawn
)

var kindNames = [...]string{
	KindIdle:      "idle",
	KindRun:       "run",
	KindJump:      "jump",
	KindInAir:     "in_air",
	KindDash:      "dash",
	KindWallSlide: "wall_slide",
	KindWallGrab:  "wall_grab",
	KindCutscene:  "cutscene",
	KindSpawn:     "spawn",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseKind(node.Value)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind returns the kind named s, as printed by Kind.String.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return KindIdle, fmt.Errorf("player: unknown state %q", s)
}

// State is one behaviour of the controller. LogicUpdate runs once per frame,
// PhysicsUpdate once per fixed step. Enter must check the controller's
// resuming flag and skip one-shot effects when it is set.
type State interface {
	Kind() Kind
	Enter()
	LogicUpdate()
	PhysicsUpdate()
	Exit()
}

// StateMachine holds the single active state.
type StateMachine struct {
	current   State
	startTime float64
	clock     func() float64

	transitioning bool
}

func NewStateMachine(clock func() float64) *StateMachine {
	return &StateMachine{clock: clock}
}

// Initialize makes s the active state without exiting the previous one.
func (m *StateMachine) Initialize(s State) {
	m.current = s
	m.startTime = m.clock()
	m.transitioning = true
	s.Enter()
	m.transitioning = false
}

// ChangeState exits the active state, then enters next. Calls made while a
// transition is running are rejected.
func (m *StateMachine) ChangeState(next State) bool {
	if next == nil {
		return false
	}
	if m.transitioning {
		log.Printf("player: rejected re-entrant transition to %s", next.Kind())
		return false
	}

	m.transitioning = true
	if m.current != nil {
		m.current.Exit()
	}
	m.current = next
	m.startTime = m.clock()
	next.Enter()
	m.transitioning = false
	return true
}

func (m *StateMachine) Current() State {
	return m.current
}

// Is reports whether the active state has kind k.
func (m *StateMachine) Is(k Kind) bool {
	return m.current != nil && m.current.Kind() == k
}

func (m *StateMachine) StartTime() float64 {
	return m.startTime
}

// SetStartTime rebases the elapsed time of the active state.
func (m *StateMachine) SetStartTime(t float64) {
	m.startTime = t
}

func (m *StateMachine) Elapsed() float64 {
	return m.clock() - m.startTime
}
