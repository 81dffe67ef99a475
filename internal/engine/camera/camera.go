// Package camera provides the follow camera used to view tubes.
package camera

import (
	gomath "math"

	"github.com/Faultbox/tubular/pkg/math"
)

// FollowCamera trails a target from behind and above, easing toward the
// desired position so turns and jumps do not jerk the view.
type FollowCamera struct {
	// Distance from target
	Distance    float32
	MinDistance float32
	MaxDistance float32

	Pitch      float32 // radians above the horizon
	LookHeight float32 // aim point above the target
	Stiffness  float32 // per-second convergence rate; 0 snaps

	// Projection
	FOV  float32 // vertical, radians
	Near float32
	Far  float32

	ZoomSensitivity float32

	position math.Vec3
	target   math.Vec3
	placed   bool
}

// NewFollowCamera creates a follow camera with default settings.
func NewFollowCamera() *FollowCamera {
	return &FollowCamera{
		Distance:        12,
		MinDistance:     3,
		MaxDistance:     60,
		Pitch:           0.45,
		LookHeight:      1,
		Stiffness:       4,
		FOV:             0.785398, // 45 degrees
		Near:            0.1,
		Far:             500,
		ZoomSensitivity: 0.1,
	}
}

// Desired returns where the camera wants to be for a target facing forward.
func (c *FollowCamera) Desired(target, forward math.Vec3) math.Vec3 {
	flat := math.Vec3{X: forward.X, Z: forward.Z}.Normalize()
	if flat.SqrLength() == 0 {
		flat = math.Forward
	}
	horiz := c.Distance * float32(gomath.Cos(float64(c.Pitch)))
	height := c.Distance * float32(gomath.Sin(float64(c.Pitch)))
	return target.Sub(flat.Scale(horiz)).Add(math.Vec3{Y: height})
}

// Update moves the camera toward its desired position for dt seconds.
func (c *FollowCamera) Update(dt float32, target, forward math.Vec3) {
	desired := c.Desired(target, forward)
	c.target = target.Add(math.Vec3{Y: c.LookHeight})

	if !c.placed || c.Stiffness <= 0 {
		c.position = desired
		c.placed = true
		return
	}
	// Frame-rate independent exponential approach
	t := 1 - float32(gomath.Exp(float64(-c.Stiffness*dt)))
	c.position = c.position.Lerp(desired, t)
}

// Position returns the camera position in world space.
func (c *FollowCamera) Position() math.Vec3 {
	return c.position
}

// ViewMatrix returns the view matrix for this camera.
func (c *FollowCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.position, c.target, math.Up)
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *FollowCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// HandleZoom updates distance from target.
func (c *FollowCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}
