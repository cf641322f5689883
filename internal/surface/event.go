package surface

import (
	"sync/atomic"

	"github.com/dshills/scrubbing/internal/input/mouse"
	"github.com/dshills/scrubbing/internal/renderer/backend"
)

// EventType identifies the kind of surface event.
type EventType int

const (
	EventNone EventType = iota
	// EventPointerDown fires when the primary button goes down.
	EventPointerDown
	// EventPointerMove fires when the pointer moves, with or without a
	// button held.
	EventPointerMove
	// EventPointerUp fires when the primary button is released.
	EventPointerUp
	// EventWheel fires once per vertical wheel step.
	EventWheel
	// EventBlur fires when the surface loses input focus.
	EventBlur
)

// String returns a string representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventPointerDown:
		return "pointerdown"
	case EventPointerMove:
		return "pointermove"
	case EventPointerUp:
		return "pointerup"
	case EventWheel:
		return "wheel"
	case EventBlur:
		return "blur"
	default:
		return "none"
	}
}

// Event is a pointer, wheel or focus event delivered to listeners.
type Event struct {
	Type EventType

	// Position is the pointer location in screen cells.
	Position mouse.Position

	// Buttons is the set of buttons held when the event fired.
	Buttons mouse.Button

	// WheelDelta is +1 per step away from the user, -1 per step towards.
	WheelDelta int

	// Modifiers are any keyboard modifiers held during the event.
	Modifiers backend.ModMask

	// Target is the element under the pointer, or nil.
	Target *Element

	defaultPrevented bool
	captured         bool
}

// PreventDefault claims the event so the surface skips its own default
// handling (text selection or scrolling in a richer host).
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// Capture marks a pointer-down as the start of a gesture on its target.
// The surface draws the target as active until the pointer is released
// or focus is lost. A press can be claimed with PreventDefault without
// being captured.
func (e *Event) Capture() {
	e.captured = true
}

// Captured reports whether a listener called Capture.
func (e *Event) Captured() bool {
	return e.captured
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// PrimaryHeld reports whether the primary button is down.
func (e *Event) PrimaryHeld() bool {
	return e.Buttons.Has(mouse.ButtonPrimary)
}

// Listener handles a dispatched event.
type Listener func(ev *Event)

// ListenerID identifies a registered listener for later removal.
// The zero ID is never issued.
type ListenerID uint64

var lastListenerID atomic.Uint64

func nextListenerID() ListenerID {
	return ListenerID(lastListenerID.Add(1))
}

type listenerEntry struct {
	id  ListenerID
	typ EventType
	fn  Listener
}

// listenerList keeps listeners in registration order.
type listenerList struct {
	entries []listenerEntry
}

func (l *listenerList) add(typ EventType, fn Listener) ListenerID {
	id := nextListenerID()
	l.entries = append(l.entries, listenerEntry{id: id, typ: typ, fn: fn})
	return id
}

func (l *listenerList) remove(id ListenerID) bool {
	for i, e := range l.entries {
		if e.id == id {
			// Copy rather than shift in place so a snapshot taken by an
			// in-flight dispatch is not disturbed.
			next := make([]listenerEntry, 0, len(l.entries)-1)
			next = append(next, l.entries[:i]...)
			l.entries = append(next, l.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (l *listenerList) count(typ EventType) int {
	n := 0
	for _, e := range l.entries {
		if e.typ == typ {
			n++
		}
	}
	return n
}

// snapshot returns the listeners for typ as registered right now.
func (l *listenerList) snapshot(typ EventType) []Listener {
	var fns []Listener
	for _, e := range l.entries {
		if e.typ == typ {
			fns = append(fns, e.fn)
		}
	}
	return fns
}
