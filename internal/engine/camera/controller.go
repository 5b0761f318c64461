package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cyclorama/pkg/math"
)

// ControlState is the accumulated navigation input for one viewer.
type ControlState struct {
	Sagittal float32 // forwards-backwards, -1..1
	Frontal  float32 // crab-walk left-right, -1..1
	Yaw      float32 // turning left-right, radians
	Pitch    float32 // looking up-down, radians from +Y
	Zoom     float32

	// Overrides take precedence over drag input while set.
	YawOverride      *float32
	YawVelOverride   *float32
	PitchOverride    *float32
	PitchVelOverride *float32
}

// Controller turns drag deltas and walking input into camera pose.
type Controller struct {
	State ControlState

	// Eye position on the horizontal plane (X, Z) and eye height above y=0.
	Position math.Vec2
	EyeY     float32

	// Constraints
	MinPitch   float32
	MaxPitch   float32
	MinZoom    float32
	MaxZoom    float32
	WalkRadius float32 // 0 disables the limit

	// WalkSpeed is in meters per second at full sagittal/frontal input.
	WalkSpeed float32
}

// NewController creates a controller looking at the horizon along -Z.
func NewController() *Controller {
	return &Controller{
		State: ControlState{
			Yaw:   -math.Pi / 2,
			Pitch: math.Pi / 2,
			Zoom:  1,
		},
		MinPitch:  0.1,
		MaxPitch:  math.Pi - 0.1,
		MinZoom:   1,
		MaxZoom:   4,
		WalkSpeed: 1.2,
	}
}

// Rotate applies an angular drag delta. The scene follows the pointer, so
// the camera turns against the drag.
func (c *Controller) Rotate(deltaYaw, deltaPitch float32) {
	c.State.Yaw = math.WrapAngle(c.State.Yaw - deltaYaw)
	c.State.Pitch = math.Clamp(c.State.Pitch-deltaPitch, c.MinPitch, c.MaxPitch)
}

// SetZoom sets the zoom factor within limits.
func (c *Controller) SetZoom(zoom float32) {
	c.State.Zoom = math.Clamp(zoom, c.MinZoom, c.MaxZoom)
}

// Step advances walking and override velocities by dt seconds.
func (c *Controller) Step(dt float32) {
	s := &c.State

	switch {
	case s.YawOverride != nil:
		s.Yaw = math.WrapAngle(*s.YawOverride)
	case s.YawVelOverride != nil:
		s.Yaw = math.WrapAngle(s.Yaw + *s.YawVelOverride*dt)
	}
	switch {
	case s.PitchOverride != nil:
		s.Pitch = math.Clamp(*s.PitchOverride, c.MinPitch, c.MaxPitch)
	case s.PitchVelOverride != nil:
		s.Pitch = math.Clamp(s.Pitch+*s.PitchVelOverride*dt, c.MinPitch, c.MaxPitch)
	}

	if s.Sagittal == 0 && s.Frontal == 0 {
		return
	}

	// Vec2 holds (X, Z). Right is forward turned a quarter turn clockwise
	// seen from above.
	sin, cos := math32.Sincos(s.Yaw)
	forward := math.Vec2{X: cos, Y: sin}
	right := math.Vec2{X: -sin, Y: cos}

	move := forward.Scale(s.Sagittal).Add(right.Scale(s.Frontal)).ClampLength(1)
	c.Position = c.Position.Add(move.Scale(c.WalkSpeed * dt))
	if c.WalkRadius > 0 {
		c.Position = c.Position.ClampLength(c.WalkRadius)
	}
}

// Apply writes the controller pose into cam.
func (c *Controller) Apply(cam *Perspective) {
	cam.Yaw = c.State.Yaw
	cam.Pitch = c.State.Pitch
	cam.Zoom = c.State.Zoom
	cam.Position = math.Vec3{X: c.Position.X, Y: c.EyeY, Z: c.Position.Y}
}
