package main

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/cyclorama/internal/cyclorama"
	"github.com/Faultbox/cyclorama/internal/engine/camera"
	"github.com/Faultbox/cyclorama/internal/engine/gesture"
)

func TestDragCameraKeepsOffPoles(t *testing.T) {
	vp := camera.Viewport{Width: 1280, Height: 720}

	for _, pitch := range []float32{0, 180, -30, 400} {
		cam := dragCamera(vp, 75, -90, pitch, 1)
		assert.Greater(t, cam.Pitch, float32(0))
		assert.Less(t, cam.Pitch, float32(gomath.Pi))

		// A horizontal drag still turns the view the way it moved.
		d, err := gesture.AngularDifference(cam, vp,
			gesture.ScreenPoint{X: 640, Y: 360}, gesture.ScreenPoint{X: 740, Y: 360})
		require.NoError(t, err)
		assert.Greater(t, d.Yaw, float32(0), "pitch %v", pitch)
		assert.False(t, gomath.IsNaN(float64(d.Yaw)))
	}
}

func TestDragCameraHorizon(t *testing.T) {
	vp := camera.Viewport{Width: 1280, Height: 720}
	cam := dragCamera(vp, 60, 90, 90, 8)

	assert.InDelta(t, gomath.Pi/2, cam.Yaw, 1e-6)
	assert.InDelta(t, gomath.Pi/2, cam.Pitch, 1e-6)
	assert.Equal(t, float32(4), cam.Zoom)
	assert.InDelta(t, 1280.0/720.0, cam.Aspect, 1e-5)
}

func TestPresetTable(t *testing.T) {
	table, err := presetTable()
	require.NoError(t, err)
	require.Len(t, table, len(cyclorama.Presets()))

	for _, row := range table {
		arch, err := cyclorama.ArchitectureFor(row.Name)
		require.NoError(t, err)
		assert.Equal(t, arch, row.Architecture)
		assert.Greater(t, row.Architecture.PanoramaRadius, float32(0))
	}
}
