package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/cyclorama/pkg/math"
)

func TestRotateTurnsAgainstDrag(t *testing.T) {
	c := NewController()
	c.Rotate(0.2, 0.1)

	assert.InDelta(t, -math.Pi/2-0.2, c.State.Yaw, tol)
	assert.InDelta(t, math.Pi/2-0.1, c.State.Pitch, tol)
}

func TestRotateClampsPitchAndWrapsYaw(t *testing.T) {
	c := NewController()
	c.Rotate(0, -10)
	assert.InDelta(t, c.MaxPitch, c.State.Pitch, tol)

	c.Rotate(0, 10)
	assert.InDelta(t, c.MinPitch, c.State.Pitch, tol)

	c.State.Yaw = math.Pi - 0.1
	c.Rotate(-0.2, 0)
	assert.InDelta(t, -math.Pi+0.1, c.State.Yaw, tol)
}

func TestSetZoomClamps(t *testing.T) {
	c := NewController()
	c.SetZoom(10)
	assert.Equal(t, c.MaxZoom, c.State.Zoom)
	c.SetZoom(0.1)
	assert.Equal(t, c.MinZoom, c.State.Zoom)
}

func TestStepWalksAlongView(t *testing.T) {
	c := NewController()
	c.WalkSpeed = 2
	c.State.Sagittal = 1
	c.Step(0.5)

	// Facing -Z by default.
	assert.InDelta(t, 0, c.Position.X, tol)
	assert.InDelta(t, -1, c.Position.Y, tol)

	c.State.Sagittal = 0
	c.State.Frontal = 1
	c.Step(0.5)
	assert.InDelta(t, 1, c.Position.X, tol)
	assert.InDelta(t, -1, c.Position.Y, tol)
}

func TestStepStaysOnStage(t *testing.T) {
	c := NewController()
	c.WalkRadius = 1.5
	c.State.Sagittal = 1
	for i := 0; i < 100; i++ {
		c.Step(0.1)
	}
	assert.InDelta(t, 1.5, c.Position.Length(), tol)
}

func TestStepOverrides(t *testing.T) {
	c := NewController()

	yaw := float32(0.4)
	c.State.YawOverride = &yaw
	c.Step(0.016)
	assert.InDelta(t, 0.4, c.State.Yaw, tol)

	c.State.YawOverride = nil
	vel := float32(1)
	c.State.YawVelOverride = &vel
	c.Step(0.5)
	assert.InDelta(t, 0.9, c.State.Yaw, tol)

	pitch := float32(5)
	c.State.PitchOverride = &pitch
	c.Step(0.1)
	assert.InDelta(t, c.MaxPitch, c.State.Pitch, tol)
}

func TestApply(t *testing.T) {
	c := NewController()
	c.EyeY = 4.6
	c.Position = math.Vec2{X: 0.5, Y: -0.25}
	c.SetZoom(2)

	cam := NewPerspective(1, 1, 0.1, 100)
	c.Apply(cam)

	assert.Equal(t, math.Vec3{X: 0.5, Y: 4.6, Z: -0.25}, cam.Position)
	assert.Equal(t, c.State.Yaw, cam.Yaw)
	assert.Equal(t, c.State.Pitch, cam.Pitch)
	assert.Equal(t, float32(2), cam.Zoom)
}
