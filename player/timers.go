package player

import "math"

// Never marks a stamp that has not happened yet. It is far enough in the past
// that no grace window can reach it.
const Never = -1e9

// Timers holds the controller's time stamps, all on the controller clock
// (seconds since the controller was built). Window ends are absolute times.
type Timers struct {
	LastJumpPressed     float64
	LastDashPressed     float64
	LastGrounded        float64
	LastWallExit        float64
	LastDashEnd         float64
	WallBounceWindowEnd float64
	DashCooldownEnd     float64
	DashAttackWindowEnd float64
	VarJumpWindowEnd    float64
	WallJumpStart       float64

	InputLockRemaining float64
}

// NewTimers returns timers with every stamp set to Never.
func NewTimers() Timers {
	return Timers{
		LastJumpPressed:     Never,
		LastDashPressed:     Never,
		LastGrounded:        Never,
		LastWallExit:        Never,
		LastDashEnd:         Never,
		WallBounceWindowEnd: Never,
		DashCooldownEnd:     Never,
		DashAttackWindowEnd: Never,
		VarJumpWindowEnd:    Never,
		WallJumpStart:       Never,
	}
}

// Within reports whether stamp happened no more than window seconds before now.
func Within(now, stamp, window float64) bool {
	if stamp <= Never {
		return false
	}
	return now-stamp <= window
}

// Open reports whether a window ending at end is still open at now.
func Open(now, end float64) bool {
	if end <= Never {
		return false
	}
	return now < end
}

// Remaining returns how much of the window ending at end is left, never below zero.
func Remaining(now, end float64) float64 {
	if !Open(now, end) {
		return 0
	}
	return end - now
}

// TickInputLock counts the input lock down by dt and reports whether input is
// still locked for this frame.
func (t *Timers) TickInputLock(dt float64) bool {
	if t.InputLockRemaining <= 0 {
		return false
	}
	t.InputLockRemaining = math.Max(0, t.InputLockRemaining-dt)
	return true
}
