package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type recordingState struct {
	kind   Kind
	log    *[]string
	onExit func()
}

func (s *recordingState) Kind() Kind { return s.kind }
func (s *recordingState) Enter()     { *s.log = append(*s.log, "enter "+s.kind.String()) }
func (s *recordingState) LogicUpdate() {
	*s.log = append(*s.log, "logic "+s.kind.String())
}
func (s *recordingState) PhysicsUpdate() {}
func (s *recordingState) Exit() {
	*s.log = append(*s.log, "exit "+s.kind.String())
	if s.onExit != nil {
		s.onExit()
	}
}

func TestStateMachineExitBeforeEnter(t *testing.T) {
	now := 0.0
	var log []string
	m := NewStateMachine(func() float64 { return now })

	idle := &recordingState{kind: KindIdle, log: &log}
	run := &recordingState{kind: KindRun, log: &log}

	m.Initialize(idle)
	now = 1.5
	require.True(t, m.ChangeState(run))

	assert.Equal(t, []string{"enter idle", "exit idle", "enter run"}, log)
	assert.Equal(t, KindRun, m.Current().Kind())
	assert.True(t, m.Is(KindRun))
	assert.Equal(t, 1.5, m.StartTime())

	now = 2
	assert.InDelta(t, 0.5, m.Elapsed(), 1e-12)
}

func TestStateMachineRejectsReentrantTransition(t *testing.T) {
	var log []string
	m := NewStateMachine(func() float64 { return 0 })

	idle := &recordingState{kind: KindIdle, log: &log}
	run := &recordingState{kind: KindRun, log: &log}
	dash := &recordingState{kind: KindDash, log: &log}
	idle.onExit = func() {
		assert.False(t, m.ChangeState(idle))
		assert.False(t, m.ChangeState(dash))
	}

	m.Initialize(idle)
	require.True(t, m.ChangeState(run))

	assert.Equal(t, KindRun, m.Current().Kind())
	assert.Equal(t, []string{"enter idle", "exit idle", "enter run"}, log)
}

func TestStateMachineSetStartTime(t *testing.T) {
	now := 10.0
	var log []string
	m := NewStateMachine(func() float64 { return now })
	m.Initialize(&recordingState{kind: KindDash, log: &log})

	m.SetStartTime(now - 0.25)
	assert.InDelta(t, 0.25, m.Elapsed(), 1e-12)
	assert.False(t, m.ChangeState(nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "wall_grab", KindWallGrab.String())
	assert.Equal(t, "unknown", Kind(99).String())

	v, err := KindInAir.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "in_air", v)
}

func TestParseKind(t *testing.T) {
	for k := KindIdle; k <= KindSpawn; k++ {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKind("swimming")
	assert.Error(t, err)

	var snap Snapshot
	require.NoError(t, yaml.Unmarshal([]byte("state: wall_slide\nstate_elapsed: 0.5\n"), &snap))
	assert.Equal(t, KindWallSlide, snap.State)
	assert.Equal(t, 0.5, snap.StateElapsed)
}
