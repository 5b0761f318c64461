// Package gesture maps pointer drags to camera yaw/pitch deltas.
//
// A fixed pixels-per-radian factor feels wrong under perspective projection:
// the same pixel distance covers a different angle near the screen edge than
// at the center, and changes with zoom. Instead both pointer positions are
// un-projected through the live camera and the angle between the two rays is
// measured, so the scene stays under the finger at any zoom or aspect.
package gesture

import (
	"errors"

	"github.com/Faultbox/cyclorama/internal/engine/camera"
	"github.com/Faultbox/cyclorama/pkg/math"
)

// ErrEmptyViewport is returned when the viewport has no area.
var ErrEmptyViewport = errors.New("gesture: viewport width and height must be positive")

// ScreenPoint is a pixel position inside the viewport.
type ScreenPoint struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// AngularDelta is an incremental rotation in radians.
type AngularDelta struct {
	Yaw   float32 `json:"yaw"`
	Pitch float32 `json:"pitch"`
}

// Unprojector maps a normalized device coordinate to a unit ray direction
// under the camera's current projection.
type Unprojector interface {
	Unproject(ndcX, ndcY float32) math.Vec3
}

// UnprojectFunc adapts a plain function to Unprojector.
type UnprojectFunc func(ndcX, ndcY float32) math.Vec3

// Unproject calls f(ndcX, ndcY).
func (f UnprojectFunc) Unproject(ndcX, ndcY float32) math.Vec3 {
	return f(ndcX, ndcY)
}

var _ Unprojector = (*camera.Perspective)(nil)

// AngularDifference returns the yaw/pitch swept by dragging from start to end.
//
// The magnitude is the shortest angle between the two rays' azimuths (and
// polar angles), so a drag across the ±π seam of atan2 stays small. The sign
// comes from the pixel displacement: right and down are positive.
func AngularDifference(cam Unprojector, vp camera.Viewport, start, end ScreenPoint) (AngularDelta, error) {
	if !vp.Valid() {
		return AngularDelta{}, ErrEmptyViewport
	}

	dStart := cam.Unproject(vp.NDC(start.X, start.Y))
	dEnd := cam.Unproject(vp.NDC(end.X, end.Y))

	yaw := math.AngularDistance(dStart.Azimuth(), dEnd.Azimuth())
	pitch := math.AngularDistance(dStart.Polar(), dEnd.Polar())

	return AngularDelta{
		Yaw:   math.Sign(end.X-start.X) * yaw,
		Pitch: math.Sign(end.Y-start.Y) * pitch,
	}, nil
}
