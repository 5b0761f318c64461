// Package camera provides the perspective camera and viewport used to look
// around inside the rotunda.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cyclorama/pkg/math"
)

// Viewport is the pixel size of the interactive render surface.
type Viewport struct {
	Width  float32 `json:"width" yaml:"width"`
	Height float32 `json:"height" yaml:"height"`
}

// Valid reports whether the viewport has a positive area.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// Aspect returns width/height.
func (v Viewport) Aspect() float32 {
	return v.Width / v.Height
}

// NDC converts a pixel position to normalized device coordinates.
// Screen Y grows downwards, NDC Y grows upwards.
func (v Viewport) NDC(px, py float32) (x, y float32) {
	x = (px/v.Width)*2 - 1
	y = -(py/v.Height)*2 + 1
	return x, y
}

// Perspective is a first-person camera standing inside the panorama.
//
// Yaw is the azimuth of the view direction, atan2(z, x). Pitch is the polar
// angle from +Y, so π/2 looks at the horizon. These are the same conventions
// the drag mapper measures ray directions with.
//
// Pitch must stay strictly inside (0, π): the view matrix takes +Y as up and
// degenerates looking straight up or down. Controller.Apply keeps it within
// [MinPitch, MaxPitch].
type Perspective struct {
	Position math.Vec3

	Yaw   float32 // radians
	Pitch float32 // radians from straight up

	FovY   float32 // vertical field of view, radians
	Aspect float32
	Near   float32
	Far    float32
	Zoom   float32 // 1 = no zoom
}

// NewPerspective creates a camera looking at the horizon along -Z.
func NewPerspective(fovY, aspect, near, far float32) *Perspective {
	return &Perspective{
		Yaw:    -math.Pi / 2,
		Pitch:  math.Pi / 2,
		FovY:   fovY,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Zoom:   1,
	}
}

// SetViewport updates the aspect ratio from fresh viewport bounds.
func (c *Perspective) SetViewport(vp Viewport) {
	if vp.Valid() {
		c.Aspect = vp.Aspect()
	}
}

// Forward returns the unit view direction.
func (c *Perspective) Forward() math.Vec3 {
	return math.FromSpherical(c.Yaw, c.Pitch)
}

// EffectiveFovY returns the vertical field of view after zoom.
func (c *Perspective) EffectiveFovY() float32 {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return 2 * math32.Atan(math32.Tan(c.FovY/2)/zoom)
}

// ProjectionMatrix returns the projection for the current zoom and aspect.
func (c *Perspective) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.EffectiveFovY(), c.Aspect, c.Near, c.Far)
}

// ViewMatrix returns the world-to-camera transform.
func (c *Perspective) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position, c.Position.Add(c.Forward()), up)
}

// Unproject returns the unit world-space direction of the ray through the
// given NDC point. It is recomputed from the current orientation every call.
func (c *Perspective) Unproject(ndcX, ndcY float32) math.Vec3 {
	inv, ok := c.ProjectionMatrix().Mul(c.ViewMatrix()).Inverse()
	if !ok {
		return c.Forward()
	}
	p := inv.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: 0.5})
	return p.Sub(c.Position).Normalize()
}
