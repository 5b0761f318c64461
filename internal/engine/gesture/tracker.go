package gesture

import (
	"github.com/Faultbox/cyclorama/internal/engine/camera"
	"github.com/Faultbox/cyclorama/internal/engine/input"
)

// Tracker follows a single drag and turns each move into an AngularDelta.
// Only the pointer that started the drag is followed; other touches are
// ignored until it lifts.
type Tracker struct {
	camera Unprojector
	bounds func() camera.Viewport

	active bool
	id     int
	last   ScreenPoint
}

// NewTracker creates a tracker. bounds is queried on every move so window
// resizes are picked up immediately.
func NewTracker(cam Unprojector, bounds func() camera.Viewport) *Tracker {
	return &Tracker{camera: cam, bounds: bounds}
}

// Active reports whether a drag is in progress.
func (t *Tracker) Active() bool {
	return t.active
}

// Handle processes one event. ok is true when a delta was produced.
func (t *Tracker) Handle(e input.Event) (delta AngularDelta, ok bool, err error) {
	switch e.Type {
	case input.EventPointerDown:
		if t.active {
			return AngularDelta{}, false, nil
		}
		p, found := pointerPosition(e, e.PointerID)
		if !found {
			return AngularDelta{}, false, nil
		}
		t.active, t.id, t.last = true, e.PointerID, p

	case input.EventPointerMove:
		if !t.active {
			return AngularDelta{}, false, nil
		}
		p, found := pointerPosition(e, t.id)
		if !found {
			return AngularDelta{}, false, nil
		}
		delta, err = AngularDifference(t.camera, t.bounds(), t.last, p)
		if err != nil {
			return AngularDelta{}, false, err
		}
		t.last = p
		return delta, true, nil

	case input.EventPointerUp, input.EventPointerCancel:
		if t.active && e.PointerID == t.id {
			t.active = false
		}
	}
	return AngularDelta{}, false, nil
}

// pointerPosition finds the position of pointer id in e. Touch events carry
// every contact, so the tracked touch is looked up by identifier.
func pointerPosition(e input.Event, id int) (ScreenPoint, bool) {
	if e.IsTouch() && len(e.Touches) > 0 {
		touch, ok := input.FindTouch(e.Touches, id)
		if !ok {
			return ScreenPoint{}, false
		}
		return ScreenPoint{X: touch.X, Y: touch.Y}, true
	}
	if e.PointerID != id {
		return ScreenPoint{}, false
	}
	return ScreenPoint{X: e.X, Y: e.Y}, true
}
