// Package picking casts rays from the viewer into the rotunda.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cyclorama/internal/engine/camera"
	"github.com/Faultbox/cyclorama/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// ScreenToRay converts pixel coordinates to a world-space ray from the camera.
func ScreenToRay(cam *camera.Perspective, vp camera.Viewport, screenX, screenY float32) Ray {
	ndcX, ndcY := vp.NDC(screenX, screenY)
	return Ray{
		Origin:    cam.Position,
		Direction: cam.Unproject(ndcX, ndcY),
	}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
// Returns the intersection point (X, Z) and whether the intersection is valid.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if math32.Abs(r.Direction.Y) < 0.001 {
		return 0, 0, false // parallel
	}

	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, 0, false // behind
	}

	p := r.At(t)
	return p.X, p.Z, true
}

// IntersectCylinder intersects the ray with the inside of a vertical,
// infinitely tall cylinder of the given radius centered on the Y axis.
// The origin must be inside the cylinder; the exit point is returned.
func (r Ray) IntersectCylinder(radius float32) (hit math.Vec3, ok bool) {
	// |O.xz + t·D.xz|² = radius²
	a := r.Direction.X*r.Direction.X + r.Direction.Z*r.Direction.Z
	if a < 1e-8 {
		return math.Vec3{}, false // vertical ray
	}
	b := 2 * (r.Origin.X*r.Direction.X + r.Origin.Z*r.Direction.Z)
	c := r.Origin.X*r.Origin.X + r.Origin.Z*r.Origin.Z - radius*radius
	if c > 0 {
		return math.Vec3{}, false // outside
	}

	disc := b*b - 4*a*c
	t := (-b + math32.Sqrt(disc)) / (2 * a)
	return r.At(t), true
}
