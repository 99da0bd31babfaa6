package coord

import "time"

// EventKind classifies coordinator events.
type EventKind string

const (
	EventRegistered   EventKind = "registered"
	EventUnregistered EventKind = "unregistered"
	EventAvailability EventKind = "availability"
	EventFocus        EventKind = "focus"
	EventClear        EventKind = "clear"
	EventHandleError  EventKind = "handle_error"
	EventStaleDrop    EventKind = "stale_drop"
)

// Event is a diagnostic record of something the coordinator did. Events are
// delivered synchronously to the optional sink; hosts use them for status
// lines or journaling.
type Event struct {
	ID     string
	Kind   EventKind
	Slot   string
	Detail string
	At     time.Time
}

// EventSink receives coordinator events. Like handles, sinks are
// best-effort: a panicking sink is logged and ignored.
type EventSink func(Event)
