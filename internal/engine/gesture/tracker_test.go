package gesture

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/cyclorama/internal/engine/camera"
	"github.com/Faultbox/cyclorama/internal/engine/input"
)

func TestTrackerMouseDrag(t *testing.T) {
	vp := camera.Viewport{Width: 800, Height: 800}
	calls := 0
	tr := NewTracker(squareCamera(), func() camera.Viewport {
		calls++
		return vp
	})

	_, ok, err := tr.Handle(input.Event{Type: input.EventPointerMove, PointerID: input.MouseID, X: 500, Y: 400})
	require.NoError(t, err)
	assert.False(t, ok, "move before down")

	_, ok, _ = tr.Handle(input.Event{Type: input.EventPointerDown, PointerID: input.MouseID, X: 400, Y: 400})
	assert.False(t, ok)
	assert.True(t, tr.Active())

	d, ok, err := tr.Handle(input.Event{Type: input.EventPointerMove, PointerID: input.MouseID, X: 800, Y: 400})
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, gomath.Pi/4, d.Yaw, tol)

	// The next step starts where the previous one ended.
	d, ok, err = tr.Handle(input.Event{Type: input.EventPointerMove, PointerID: input.MouseID, X: 400, Y: 400})
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, -gomath.Pi/4, d.Yaw, tol)
	assert.Equal(t, 2, calls, "bounds must be fetched for every move")

	_, _, _ = tr.Handle(input.Event{Type: input.EventPointerUp, PointerID: input.MouseID})
	assert.False(t, tr.Active())

	_, ok, _ = tr.Handle(input.Event{Type: input.EventPointerMove, PointerID: input.MouseID, X: 10, Y: 10})
	assert.False(t, ok, "move after up")
}

func TestTrackerFollowsFirstTouch(t *testing.T) {
	vp := camera.Viewport{Width: 800, Height: 800}
	tr := NewTracker(squareCamera(), func() camera.Viewport { return vp })

	first := input.Touch{ID: 11, X: 400, Y: 400}
	_, _, _ = tr.Handle(input.Event{Type: input.EventPointerDown, PointerID: 11, Touches: []input.Touch{first}})

	second := input.Touch{ID: 12, X: 100, Y: 100}
	_, ok, _ := tr.Handle(input.Event{Type: input.EventPointerDown, PointerID: 12, Touches: []input.Touch{first, second}})
	assert.False(t, ok)

	// Only the second finger moved: nothing to report for the tracked one
	// beyond a zero delta.
	second.X = 300
	d, ok, err := tr.Handle(input.Event{Type: input.EventPointerMove, PointerID: 12, Touches: []input.Touch{first, second}})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, AngularDelta{}, d)

	first.Y = 800
	d, ok, err = tr.Handle(input.Event{Type: input.EventPointerMove, PointerID: 11, Touches: []input.Touch{second, first}})
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 0, d.Yaw, tol)
	assert.InDelta(t, gomath.Pi/4, d.Pitch, tol)

	// Lifting the other finger does not end the drag.
	_, _, _ = tr.Handle(input.Event{Type: input.EventPointerUp, PointerID: 12, Touches: []input.Touch{first}})
	assert.True(t, tr.Active())

	// Tracked touch missing from the list is ignored.
	_, ok, _ = tr.Handle(input.Event{Type: input.EventPointerMove, PointerID: 12, Touches: []input.Touch{second}})
	assert.False(t, ok)

	_, _, _ = tr.Handle(input.Event{Type: input.EventPointerCancel, PointerID: 11})
	assert.False(t, tr.Active())
}

func TestTrackerEmptyViewport(t *testing.T) {
	tr := NewTracker(squareCamera(), func() camera.Viewport { return camera.Viewport{} })

	_, _, _ = tr.Handle(input.Event{Type: input.EventPointerDown, PointerID: input.MouseID, X: 1, Y: 1})
	_, ok, err := tr.Handle(input.Event{Type: input.EventPointerMove, PointerID: input.MouseID, X: 2, Y: 2})
	assert.ErrorIs(t, err, ErrEmptyViewport)
	assert.False(t, ok)
}

func TestTrackerMouseIgnoresTouchList(t *testing.T) {
	tr := NewTracker(squareCamera(), func() camera.Viewport { return camera.Viewport{Width: 800, Height: 800} })

	// Hosts that mix input sources may attach the live touches to a mouse
	// event; the mouse position still wins.
	stale := []input.Touch{{ID: 3, X: 10, Y: 10}}
	_, _, _ = tr.Handle(input.Event{Type: input.EventPointerDown, PointerID: input.MouseID, X: 400, Y: 400, Touches: stale})
	require.True(t, tr.Active())

	d, ok, err := tr.Handle(input.Event{Type: input.EventPointerMove, PointerID: input.MouseID, X: 800, Y: 400, Touches: stale})
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, gomath.Pi/4, d.Yaw, 1e-4)
}
