package driver

import (
	"github.com/dshills/scrubbing/internal/logging"
	"github.com/dshills/scrubbing/internal/scrub"
	"github.com/dshills/scrubbing/internal/surface"
)

// Wheel turns each wheel step over a bound element into one start and
// one change. It never calls End and does not consult the Resolver: a
// step away from the user lowers the value by one.
type Wheel struct {
	logger    *logging.Logger
	listeners map[*scrub.Binding]surface.ListenerID
}

// NewWheel creates a wheel driver.
func NewWheel(logger *logging.Logger) *Wheel {
	return &Wheel{
		logger:    logging.OrNull(logger).WithComponent("wheel"),
		listeners: make(map[*scrub.Binding]surface.ListenerID),
	}
}

// Init listens for wheel events on b's target.
func (w *Wheel) Init(b *scrub.Binding) {
	if _, ok := w.listeners[b]; ok {
		return
	}
	w.listeners[b] = b.Target().On(surface.EventWheel, func(ev *surface.Event) {
		w.handle(b, ev)
	})
	w.logger.Debug("attached to %s", b.Target().ID())
}

// Remove detaches b's listener. It is a no-op for unknown Bindings.
func (w *Wheel) Remove(b *scrub.Binding) {
	id, ok := w.listeners[b]
	if !ok {
		return
	}
	b.Target().Off(id)
	delete(w.listeners, b)
}

// Attached reports whether b has a wheel listener.
func (w *Wheel) Attached(b *scrub.Binding) bool {
	_, ok := w.listeners[b]
	return ok
}

func (w *Wheel) handle(b *scrub.Binding, ev *surface.Event) {
	ev.PreventDefault()

	base, err := b.Start()
	if err != nil {
		b.Logger().Debug("wheel ignored: %v", err)
		return
	}
	delta := -ev.WheelDelta
	b.Change(base+delta, delta)
}
