package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"mazerunner/internal/player"
)

const gamepad int32 = 0

// deviceState is the raw device snapshot for one frame.
type deviceState struct {
	Up, Down, Left, Right bool // arrows
	W, S, A, D            bool

	PadUp, PadDown, PadLeft, PadRight bool

	HasPad       bool
	LeftX, LeftY float32
	RightX       float32
	MouseDX      float32
	MouseLook    bool
}

func pollDevices(mouseLook bool) deviceState {
	s := deviceState{
		Up:        rl.IsKeyDown(rl.KeyUp),
		Down:      rl.IsKeyDown(rl.KeyDown),
		Left:      rl.IsKeyDown(rl.KeyLeft),
		Right:     rl.IsKeyDown(rl.KeyRight),
		W:         rl.IsKeyDown(rl.KeyW),
		S:         rl.IsKeyDown(rl.KeyS),
		A:         rl.IsKeyDown(rl.KeyA),
		D:         rl.IsKeyDown(rl.KeyD),
		MouseLook: mouseLook,
	}
	if mouseLook {
		s.MouseDX = rl.GetMouseDelta().X
	}
	if rl.IsGamepadAvailable(gamepad) {
		s.HasPad = true
		s.PadUp = rl.IsGamepadButtonDown(gamepad, rl.GamepadButtonLeftFaceUp)
		s.PadDown = rl.IsGamepadButtonDown(gamepad, rl.GamepadButtonLeftFaceDown)
		s.PadLeft = rl.IsGamepadButtonDown(gamepad, rl.GamepadButtonLeftFaceLeft)
		s.PadRight = rl.IsGamepadButtonDown(gamepad, rl.GamepadButtonLeftFaceRight)
		s.LeftX = rl.GetGamepadAxisMovement(gamepad, rl.GamepadAxisLeftX)
		s.LeftY = rl.GetGamepadAxisMovement(gamepad, rl.GamepadAxisLeftY)
		s.RightX = rl.GetGamepadAxisMovement(gamepad, rl.GamepadAxisRightX)
	}
	return s
}

// decodeInput folds keyboard, D-pad, sticks and mouse into one Input.
// Stick Y points down on gamepads, so it is negated to make up walk forward.
func decodeInput(s deviceState) player.Input {
	in := player.Input{
		Forward:     s.Up || s.W || s.PadUp,
		Backward:    s.Down || s.S || s.PadDown,
		TurnLeft:    s.Left || s.PadLeft,
		TurnRight:   s.Right || s.PadRight,
		StrafeLeft:  s.A,
		StrafeRight: s.D,
	}
	if s.HasPad {
		in.MoveX = float64(s.LeftX)
		in.MoveY = -float64(s.LeftY)
		in.Turn = float64(s.RightX)
	}
	if s.MouseLook {
		in.MouseDX = float64(s.MouseDX)
	}
	return in
}
