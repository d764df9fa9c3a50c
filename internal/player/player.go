package player

import (
	"math"

	"mazerunner/internal/vmath"
	"mazerunner/internal/world"
)

// Pose is where the player stands and looks. Angles are radians; angle 0
// faces +X and angles grow towards +Y (clockwise on screen).
type Pose struct {
	Pos   vmath.Vec2
	Angle float64
	FOV   float64
}

// Direction is the unit vector the player faces.
func (p Pose) Direction() vmath.Vec2 {
	return vmath.FromAngle(p.Angle)
}

// Right is the unit vector to the player's right.
func (p Pose) Right() vmath.Vec2 {
	return vmath.FromAngle(p.Angle + math.Pi/2)
}

// Input is one frame of player intent, already decoded from whatever device
// produced it.
type Input struct {
	Forward, Backward       bool
	TurnLeft, TurnRight     bool
	StrafeLeft, StrafeRight bool

	// Stick axes in [-1, 1]. MoveY > 0 walks forward, MoveX > 0 strafes right,
	// Turn > 0 turns right.
	MoveX, MoveY, Turn float64

	// MouseDX is the horizontal mouse movement in pixels since the last frame.
	MouseDX float64
}

// Settings are the movement speeds and input thresholds.
type Settings struct {
	MoveSpeed        float64
	RotationSpeed    float64
	StickDeadzone    float64
	MouseSensitivity float64
	MouseThreshold   float64
}

// DefaultSettings returns the classic speeds: 5 units per step and π/35 per turn.
func DefaultSettings() Settings {
	return Settings{
		MoveSpeed:        5,
		RotationSpeed:    math.Pi / 35,
		StickDeadzone:    0.1,
		MouseSensitivity: 0.004,
		MouseThreshold:   1,
	}
}

// Collider answers whether a position is blocked.
type Collider interface {
	Collides(g *world.Grid, pos vmath.Vec2) bool
}
