package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/player"
)

// stickDeadZone is the analog stick magnitude below which an axis reads 0.
const stickDeadZone = 0.3

// Input polls the keyboard and the first gamepad.
type Input struct {
	// Move is the digital direction, each axis -1, 0 or +1.
	Move cp.Vector
	// JumpPressed is true on the frame the jump key is pressed.
	JumpPressed bool
	// JumpHeld is true while the jump key is held down.
	JumpHeld bool
	// DashPressed is true on the frame the dash key/button was pressed.
	DashPressed bool
	// GrabHeld is true while the grab key/trigger is held.
	GrabHeld bool

	PausePressed bool
}

func NewInput() *Input {
	return &Input{}
}

// Update reads this frame's device state.
func (i *Input) Update() {
	var move cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		move.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		move.X += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		move.Y -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		move.Y += 1
	}

	jumpPressed := inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyC)
	jumpHeld := ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyC)
	dashPressed := inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || inpututil.IsKeyJustPressed(ebiten.KeyX)
	grabHeld := ebiten.IsKeyPressed(ebiten.KeyZ) || ebiten.IsKeyPressed(ebiten.KeyControlLeft)
	pausePressed := inpututil.IsKeyJustPressed(ebiten.KeyEscape)

	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]

		// Stick Y is positive downward on the standard layout.
		lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if lx < -stickDeadZone || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft) {
			move.X = -1
		} else if lx > stickDeadZone || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight) {
			move.X = 1
		}
		if ly < -stickDeadZone || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftTop) {
			move.Y = 1
		} else if ly > stickDeadZone || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftBottom) {
			move.Y = -1
		}

		// A jumps, X dashes, either trigger grabs.
		jumpPressed = jumpPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		jumpHeld = jumpHeld || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		dashPressed = dashPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightLeft)
		grabHeld = grabHeld ||
			ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomLeft) ||
			ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight)
		pausePressed = pausePressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
	}

	i.Move = move
	i.JumpPressed = jumpPressed
	i.JumpHeld = jumpHeld
	i.DashPressed = dashPressed
	i.GrabHeld = grabHeld
	i.PausePressed = pausePressed
}

// Frame converts the polled state into controller input.
func (i *Input) Frame() player.Input {
	return player.Input{
		Move:        i.Move,
		JumpPressed: i.JumpPressed,
		JumpHeld:    i.JumpHeld,
		DashPressed: i.DashPressed,
		GrabHeld:    i.GrabHeld,
	}
}
