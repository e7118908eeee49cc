package window

import "github.com/Carmen-Shannon/scion-go/common"

// EventKind discriminates window events.
type EventKind uint8

const (
	EventResized EventKind = iota
	EventCursorMoved
	EventCursorLeft
	EventKey
	EventMouseButton
	EventScroll
	EventCloseRequested
)

// Event is one platform event. Positions and sizes are framebuffer pixels; divide by
// ScaleFactor to get logical pixels.
type Event struct {
	Kind EventKind

	// Width, Height and ScaleFactor are set for EventResized.
	Width       int
	Height      int
	ScaleFactor float64

	// X and Y hold the cursor position for EventCursorMoved and EventMouseButton, and the
	// scroll offsets for EventScroll.
	X float64
	Y float64

	Key     common.KeyCode
	Button  common.MouseButton
	Pressed bool
}

// eventQueue is the ordered backlog of events not drained yet.
type eventQueue struct {
	events []Event
}

func (q *eventQueue) push(ev Event) {
	q.events = append(q.events, ev)
}

func (q *eventQueue) drain() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}
