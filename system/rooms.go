package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/player"
)

// transition holds the player in the cutscene state while the camera pans
// from one room to the next.
type transition struct {
	from, to int
	dirX     float64
	timer    float64
	duration float64
}

// Progress is how far the pan has run, in [0,1].
func (t *transition) Progress() float64 {
	if t.duration <= 0 {
		return 1
	}
	return min(t.timer/t.duration, 1)
}

// TransitionProgress reports the running transition's rooms and progress.
func (w *World) TransitionProgress() (from, to int, progress float64, ok bool) {
	if w.transition == nil {
		return w.room, w.room, 1, false
	}
	t := w.transition
	return t.from, t.to, t.Progress(), true
}

// checkRoom starts a transition once the player's centre crosses into
// another room.
func (w *World) checkRoom() {
	c := w.Controller()
	if c.Dead() || w.transition != nil || w.respawn != nil {
		return
	}
	pos := w.Player.Body.Position()
	next, ok := w.Level.RoomAt(pos)
	if !ok || next == w.room {
		return
	}

	from := w.Level.Rooms[w.room].Bounds()
	to := w.Level.Rooms[next].Bounds()
	dirX := to.Center().X - from.Center().X

	w.transition = &transition{
		from:     w.room,
		to:       next,
		dirX:     dirX,
		duration: w.Level.TransitionTime,
	}
	w.room = next
	c.StartRoomTransition(dirX)
	log.Printf("system: room %s -> %s", w.Level.Rooms[w.transition.from].Name, w.Level.Rooms[next].Name)
}

func (w *World) updateTransition(dt float64, in player.Input) {
	t := w.transition
	if t == nil {
		return
	}
	t.timer += dt
	if t.timer < t.duration {
		return
	}
	w.transition = nil
	w.Controller().EndRoomTransition(in)
}

// RoomBounds is the bounds of room i.
func (w *World) RoomBounds(i int) cp.BB {
	if i < 0 || i >= len(w.Level.Rooms) {
		return w.Level.Bounds()
	}
	return w.Level.Rooms[i].Bounds()
}
