package player

import (
	"math"

	"mazerunner/internal/vmath"
	"mazerunner/internal/world"
)

// Controller owns the player pose and moves it in response to Input.
// Every positional change goes through the collider first; turning never does.
type Controller struct {
	Pose     Pose
	Settings Settings

	collider Collider
}

// NewController starts at pose. collider decides which moves are allowed.
func NewController(pose Pose, settings Settings, collider Collider) *Controller {
	return &Controller{
		Pose:     pose,
		Settings: settings,
		collider: collider,
	}
}

// Rotate turns the player by delta radians.
func (c *Controller) Rotate(delta float64) {
	c.Pose.Angle = vmath.NormalizeAngle(c.Pose.Angle + delta)
}

// TryMove moves the player by delta unless the destination is inside a wall.
func (c *Controller) TryMove(g *world.Grid, delta vmath.Vec2) bool {
	next := c.Pose.Pos.Add(delta)
	if c.collider.Collides(g, next) {
		return false
	}
	c.Pose.Pos = next
	return true
}

// Update applies one frame of input.
func (c *Controller) Update(g *world.Grid, in Input) {
	s := c.Settings

	// Keyboard / D-pad
	if in.TurnLeft {
		c.Rotate(-s.RotationSpeed)
	}
	if in.TurnRight {
		c.Rotate(s.RotationSpeed)
	}
	if in.Forward {
		c.TryMove(g, c.Pose.Direction().Scale(s.MoveSpeed))
	}
	if in.Backward {
		c.TryMove(g, c.Pose.Direction().Scale(-s.MoveSpeed))
	}
	if in.StrafeLeft {
		c.TryMove(g, c.Pose.Right().Scale(-s.MoveSpeed))
	}
	if in.StrafeRight {
		c.TryMove(g, c.Pose.Right().Scale(s.MoveSpeed))
	}

	// Sticks. MoveX strafes along Pose.Right, so a positive value goes
	// right of the heading, matching the keyboard strafe.
	if math.Abs(in.Turn) > s.StickDeadzone {
		c.Rotate(in.Turn * s.RotationSpeed)
	}
	if math.Abs(in.MoveX) > s.StickDeadzone || math.Abs(in.MoveY) > s.StickDeadzone {
		delta := c.Pose.Direction().Scale(in.MoveY * s.MoveSpeed).
			Add(c.Pose.Right().Scale(in.MoveX * s.MoveSpeed))
		c.TryMove(g, delta)
	}

	// Mouse look. Angles grow clockwise on screen, so adding dx turns the
	// view towards the mouse. Vertical motion is ignored: there is no pitch.
	if math.Abs(in.MouseDX) > s.MouseThreshold {
		c.Rotate(in.MouseDX * s.MouseSensitivity)
	}
}

// SetFOV changes the field of view, keeping it inside (0, π).
func (c *Controller) SetFOV(fov float64) {
	c.Pose.FOV = vmath.Clamp(fov, 0.01, 3.1)
}
