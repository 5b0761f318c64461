package viewer

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/cyclorama/internal/config"
	"github.com/Faultbox/cyclorama/internal/cyclorama"
	"github.com/Faultbox/cyclorama/internal/engine/gesture"
	"github.com/Faultbox/cyclorama/internal/engine/input"
)

func testScene(t *testing.T, initialYaw float32) cyclorama.Descriptor {
	t.Helper()
	d, err := cyclorama.Build(cyclorama.Params{
		Architecture: &cyclorama.Architecture{
			PanoramaRadius:       10,
			StageRadius:          3,
			StageHeight:          2,
			UmbrellaRadius:       5,
			CeilingHeight:        3,
			RailingHeight:        1,
			RailingCount:         8,
			RailingRadius:        0.03,
			RailingOnStageRadius: 2.9,
		},
		PanoramaURLs: []string{"left.jpg", "right.jpg"},
		ImageWidths:  []int{500, 500},
		ImageHeights: []int{200},
		HorizonRatio: 0.5,
		InitialYaw:   initialYaw,
	})
	require.NoError(t, err)
	return d
}

func squareViewer() config.ViewerConfig {
	v := config.Default().Viewer
	v.Width, v.Height = 800, 800
	v.FOV = 90
	return v
}

func TestNewSession(t *testing.T) {
	s := New(testScene(t, 0.5), config.Default().Viewer, nil)

	cam := s.Camera()
	assert.InDelta(t, 0.5, cam.Yaw, 1e-6)
	assert.InDelta(t, gomath.Pi/2, cam.Pitch, 1e-6)
	assert.InDelta(t, 3.6, cam.Position.Y, 1e-6)
	assert.InDelta(t, 1280.0/720.0, cam.Aspect, 1e-5)
	assert.InDelta(t, 2.6, s.Controller().WalkRadius, 1e-6)
}

func TestSessionDrag(t *testing.T) {
	s := New(testScene(t, -gomath.Pi/2), squareViewer(), nil)

	s.Push(input.Event{Type: input.EventPointerDown, PointerID: input.MouseID, X: 400, Y: 400})
	s.Push(input.Event{Type: input.EventPointerMove, PointerID: input.MouseID, X: 800, Y: 400})
	s.Push(input.Event{Type: input.EventPointerUp, PointerID: input.MouseID})
	require.NoError(t, s.Update(0))

	// Dragging right turns the view left.
	assert.InDelta(t, -3*gomath.Pi/4, s.Camera().Yaw, 1e-4)
	assert.InDelta(t, gomath.Pi/2, s.Camera().Pitch, 1e-4)

	// The queue is drained each frame.
	require.NoError(t, s.Update(0))
	assert.InDelta(t, -3*gomath.Pi/4, s.Camera().Yaw, 1e-4)
}

func TestSessionResizeAndWheel(t *testing.T) {
	s := New(testScene(t, 0), squareViewer(), nil)

	s.Push(input.Event{Type: input.EventResize, Width: 1000, Height: 500})
	s.Push(input.Event{Type: input.EventWheel, Delta: -10})
	require.NoError(t, s.Update(0))

	assert.Equal(t, float32(1000), s.Viewport().Width)
	assert.InDelta(t, 2, s.Camera().Aspect, 1e-6)
	assert.InDelta(t, 2, s.Camera().Zoom, 1e-6)

	s.Push(input.Event{Type: input.EventWheel, Delta: 100})
	require.NoError(t, s.Update(0))
	assert.Equal(t, float32(1), s.Camera().Zoom)
}

func TestSessionWalkStaysOnStage(t *testing.T) {
	s := New(testScene(t, 0), squareViewer(), nil)

	s.SetWalk(1, 0)
	require.NoError(t, s.Update(1))
	// Yaw 0 faces +X.
	assert.InDelta(t, 1.2, s.Camera().Position.X, 1e-5)
	assert.InDelta(t, 0, s.Camera().Position.Z, 1e-5)
	assert.InDelta(t, 3.6, s.Camera().Position.Y, 1e-6)

	require.NoError(t, s.Update(10))
	assert.InDelta(t, 2.6, s.Camera().Position.X, 1e-5)

	s.SetWalk(0, 0)
	require.NoError(t, s.Update(1))
	assert.InDelta(t, 2.6, s.Camera().Position.X, 1e-5)
}

func TestSessionEmptyViewport(t *testing.T) {
	v := squareViewer()
	v.Width, v.Height = 0, 0
	s := New(testScene(t, 0), v, nil)

	s.Push(input.Event{Type: input.EventPointerDown, PointerID: input.MouseID, X: 1, Y: 1})
	s.Push(input.Event{Type: input.EventPointerMove, PointerID: input.MouseID, X: 2, Y: 1})
	assert.ErrorIs(t, s.Update(0), gesture.ErrEmptyViewport)
}

func TestSessionLook(t *testing.T) {
	s := New(testScene(t, -gomath.Pi/2+0.3), squareViewer(), nil)
	tile, ok := s.Look()
	require.True(t, ok)
	assert.Equal(t, "left.jpg", tile.URL)

	s = New(testScene(t, gomath.Pi/2+0.3), squareViewer(), nil)
	tile, ok = s.Look()
	require.True(t, ok)
	assert.Equal(t, "right.jpg", tile.URL)

	// Straight up misses the canvas band.
	s.Controller().State.Pitch = 0.1
	s.Controller().Apply(s.Camera())
	_, ok = s.Look()
	assert.False(t, ok)
}
