package rendering

import (
	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
)

// EventKind discriminates renderer events.
type EventKind uint8

const (
	EventForceRedraw EventKind = iota
	EventCursorMoved
	EventResize
)

// Event is a windowing event forwarded to the rendering thread.
type Event struct {
	Kind EventKind
	// Cursor is the cursor pixel for EventCursorMoved, nil when the cursor left the window.
	Cursor *[2]uint32
	// Width, Height and ScaleFactor are set for EventResize.
	Width       uint32
	Height      uint32
	ScaleFactor float64
}

// ResizeEvent builds a resize event.
func ResizeEvent(width, height uint32, scaleFactor float64) Event {
	return Event{Kind: EventResize, Width: width, Height: height, ScaleFactor: scaleFactor}
}

// CursorEvent builds a cursor event. A nil position means the cursor is outside the window.
func CursorEvent(position *[2]uint32) Event {
	return Event{Kind: EventCursorMoved, Cursor: position}
}

// Message is one batch sent from the simulation to the rendering thread. Messages are processed
// strictly in arrival order.
type Message interface {
	isMessage()
}

// EventsMessage carries the windowing events of one pass.
type EventsMessage struct {
	Events []Event
}

// FrameMessage carries the update commands and the sorted draw list of one render pass.
type FrameMessage struct {
	Updates    []Update
	Draws      []DrawInfo
	Background *common.Color
}

// DespawnMessage lists entities whose GPU resources can be freed.
type DespawnMessage struct {
	Entities []ecs.Entity
}

// PickingStatusMessage toggles the color picking readback.
type PickingStatusMessage struct {
	Enabled bool
}

func (EventsMessage) isMessage()        {}
func (FrameMessage) isMessage()         {}
func (DespawnMessage) isMessage()       {}
func (PickingStatusMessage) isMessage() {}
