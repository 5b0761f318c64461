package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/cyclorama/internal/engine/camera"
	"github.com/Faultbox/cyclorama/pkg/math"
)

func TestScreenToRayCenter(t *testing.T) {
	cam := camera.NewPerspective(math.DegToRad(70), 4.0/3.0, 0.1, 100)
	cam.Position = math.Vec3{X: 0, Y: 4.5, Z: 0}

	r := ScreenToRay(cam, camera.Viewport{Width: 800, Height: 600}, 400, 300)
	assert.Equal(t, cam.Position, r.Origin)
	assert.InDelta(t, 0, r.Direction.X, 1e-4)
	assert.InDelta(t, 0, r.Direction.Y, 1e-4)
	assert.InDelta(t, -1, r.Direction.Z, 1e-4)
}

func TestIntersectPlaneY(t *testing.T) {
	r := Ray{
		Origin:    math.Vec3{X: 0, Y: 5, Z: 0},
		Direction: math.Vec3{X: 0, Y: -1, Z: -1}.Normalize(),
	}

	x, z, ok := r.IntersectPlaneY(3)
	require.True(t, ok)
	assert.InDelta(t, 0, x, 1e-5)
	assert.InDelta(t, -2, z, 1e-5)

	_, _, ok = r.IntersectPlaneY(6)
	assert.False(t, ok, "plane behind the ray")

	flat := Ray{Direction: math.Vec3{X: 1}}
	_, _, ok = flat.IntersectPlaneY(0)
	assert.False(t, ok, "parallel ray")
}

func TestIntersectCylinder(t *testing.T) {
	r := Ray{
		Origin:    math.Vec3{X: 0, Y: 4, Z: 0},
		Direction: math.Vec3{X: 1, Y: 0, Z: 0},
	}

	hit, ok := r.IntersectCylinder(10)
	require.True(t, ok)
	assert.InDelta(t, 10, hit.X, 1e-4)
	assert.InDelta(t, 4, hit.Y, 1e-4)

	// Off-center origin still exits on the far wall.
	r.Origin = math.Vec3{X: 3, Y: 0, Z: 2}
	r.Direction = math.Vec3{X: -1, Y: 0.5, Z: 0}.Normalize()
	hit, ok = r.IntersectCylinder(10)
	require.True(t, ok)
	assert.InDelta(t, 10, hit.XZ().Length(), 1e-3)
	assert.Less(t, hit.X, float32(0))

	_, ok = Ray{Direction: math.Vec3{Y: 1}}.IntersectCylinder(10)
	assert.False(t, ok, "vertical ray")

	_, ok = Ray{Origin: math.Vec3{X: 20}, Direction: math.Vec3{X: 1}}.IntersectCylinder(10)
	assert.False(t, ok, "origin outside")
}
