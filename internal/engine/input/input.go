// Package input models pointer and touch events delivered by the host page.
package input

import "fmt"

// EventType identifies what happened to a pointer.
type EventType int

const (
	EventNone EventType = iota
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventPointerCancel
	EventResize
	EventWheel
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventPointerDown:
		return "down"
	case EventPointerMove:
		return "move"
	case EventPointerUp:
		return "up"
	case EventPointerCancel:
		return "cancel"
	case EventResize:
		return "resize"
	case EventWheel:
		return "wheel"
	default:
		return "none"
	}
}

// ParseEventType is the inverse of EventType.String.
func ParseEventType(name string) (EventType, error) {
	for t := EventNone; t <= EventWheel; t++ {
		if t.String() == name {
			return t, nil
		}
	}
	return EventNone, fmt.Errorf("input: unknown event type %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *EventType) UnmarshalText(text []byte) error {
	v, err := ParseEventType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// MouseID is the pointer identifier used for mouse events.
const MouseID = -1

// Touch is one active contact point.
type Touch struct {
	ID int     `yaml:"id" json:"id"`
	X  float32 `yaml:"x" json:"x"`
	Y  float32 `yaml:"y" json:"y"`
}

// Event represents a processed input event.
type Event struct {
	Type EventType `yaml:"type" json:"type"`

	// PointerID is MouseID for the mouse, otherwise a touch identifier.
	PointerID int     `yaml:"pointer" json:"pointer"`
	X         float32 `yaml:"x" json:"x"`
	Y         float32 `yaml:"y" json:"y"`

	// Touches holds every contact still on the surface for touch events.
	Touches []Touch `yaml:"touches,omitempty" json:"touches,omitempty"`

	// Width and Height are set for EventResize.
	Width  float32 `yaml:"width,omitempty" json:"width,omitempty"`
	Height float32 `yaml:"height,omitempty" json:"height,omitempty"`

	// Delta is the scroll amount for EventWheel, positive away from the user.
	Delta float32 `yaml:"delta,omitempty" json:"delta,omitempty"`
}

// IsTouch reports whether the event comes from a touch contact.
func (e Event) IsTouch() bool {
	return e.PointerID != MouseID
}

// FindTouch returns the touch with the given identifier.
func FindTouch(touches []Touch, id int) (Touch, bool) {
	for _, t := range touches {
		if t.ID == id {
			return t, true
		}
	}
	return Touch{}, false
}

// Queue buffers events between frames.
type Queue struct {
	events []Event
}

// New creates a new event queue.
func New() *Queue {
	return &Queue{
		events: make([]Event, 0, 16),
	}
}

// Push appends an event.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Events returns the buffered events.
func (q *Queue) Events() []Event {
	return q.events
}

// Reset clears the queue for the next frame.
func (q *Queue) Reset() {
	q.events = q.events[:0]
}
