package driver

import (
	"slices"

	"github.com/dshills/scrubbing/internal/input/mouse"
	"github.com/dshills/scrubbing/internal/logging"
	"github.com/dshills/scrubbing/internal/scrub"
	"github.com/dshills/scrubbing/internal/surface"
)

// EventSource is the shared event stream the pointer driver listens to.
// *surface.Surface implements it.
type EventSource interface {
	AddListener(typ surface.EventType, fn surface.Listener) surface.ListenerID
	RemoveListener(id surface.ListenerID) bool
}

// gesture is the state of the drag in progress.
type gesture struct {
	binding   *scrub.Binding
	base      int
	origin    int
	lastDelta int
	drag      mouse.Drag
	listeners []surface.ListenerID
}

// Pointer tracks drags across every Binding registered with it.
type Pointer struct {
	src      EventSource
	logger   *logging.Logger
	bindings []*scrub.Binding
	downID   surface.ListenerID
	active   *gesture
}

// PointerOption configures a Pointer.
type PointerOption func(*Pointer)

// WithPointerLogger sets the driver logger.
func WithPointerLogger(l *logging.Logger) PointerOption {
	return func(p *Pointer) {
		p.logger = l
	}
}

// NewPointer creates a pointer driver listening on src. Nothing is
// registered with src until the first Binding is attached.
func NewPointer(src EventSource, opts ...PointerOption) *Pointer {
	p := &Pointer{src: src}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.OrNull(p.logger).WithComponent("pointer")
	return p
}

// Init registers b. The pointer-down listener is installed on the first
// call only. Registering the same Binding twice has no effect.
func (p *Pointer) Init(b *scrub.Binding) {
	if slices.Contains(p.bindings, b) {
		p.logger.Debug("binding %s already registered", b.Target().ID())
		return
	}
	p.bindings = append(p.bindings, b)

	if p.downID == 0 {
		p.downID = p.src.AddListener(surface.EventPointerDown, p.handleDown)
	}
}

// Remove unregisters b. If b owns the current gesture it is released
// first, so b's adapters still see End.
func (p *Pointer) Remove(b *scrub.Binding) {
	if p.active != nil && p.active.binding == b {
		p.release()
	}
	p.bindings = slices.DeleteFunc(p.bindings, func(x *scrub.Binding) bool {
		return x == b
	})
}

// Close releases any gesture in progress, forgets every Binding and
// removes the pointer-down listener.
func (p *Pointer) Close() {
	p.release()
	p.bindings = nil
	if p.downID != 0 {
		p.src.RemoveListener(p.downID)
		p.downID = 0
	}
}

// Active returns the Binding being dragged, or nil.
func (p *Pointer) Active() *scrub.Binding {
	if p.active == nil {
		return nil
	}
	return p.active.binding
}

// Registered returns the registered Bindings in registration order.
func (p *Pointer) Registered() []*scrub.Binding {
	return slices.Clone(p.bindings)
}

func (p *Pointer) match(target *surface.Element) *scrub.Binding {
	if target == nil {
		return nil
	}
	for _, b := range p.bindings {
		if b.Target() == target {
			return b
		}
	}
	return nil
}

func (p *Pointer) handleDown(ev *surface.Event) {
	if p.active != nil {
		return
	}
	b := p.match(ev.Target)
	if b == nil {
		return
	}
	ev.PreventDefault()

	base, err := b.Start()
	if err != nil {
		b.Logger().Debug("gesture not started: %v", err)
		return
	}

	g := &gesture{
		binding: b,
		base:    base,
		origin:  b.Resolver().Coordinate(ev),
	}
	g.drag.Start(ev.Position)
	g.listeners = []surface.ListenerID{
		p.src.AddListener(surface.EventPointerMove, p.handleMove),
		p.src.AddListener(surface.EventPointerUp, p.handleRelease),
		p.src.AddListener(surface.EventBlur, p.handleRelease),
	}
	p.active = g
	ev.Capture()

	b.Logger().Debug("gesture started base=%d origin=%d", base, g.origin)
}

func (p *Pointer) handleMove(ev *surface.Event) {
	g := p.active
	if g == nil {
		return
	}
	// The release happened somewhere we could not see it
	if !ev.PrimaryHeld() {
		p.release()
		return
	}
	g.drag.Update(ev.Position)

	r := g.binding.Resolver()
	delta := r.Value(g.origin, r.Coordinate(ev))
	if delta == g.lastDelta {
		return
	}
	g.lastDelta = delta
	g.binding.Change(g.base+delta, delta)
}

func (p *Pointer) handleRelease(*surface.Event) {
	p.release()
}

// release ends the current gesture. State is cleared before adapters are
// notified so End may start a new gesture or remove the Binding.
func (p *Pointer) release() {
	g := p.active
	if g == nil {
		return
	}
	p.active = nil
	for _, id := range g.listeners {
		p.src.RemoveListener(id)
	}

	state := g.drag.End()
	g.binding.Logger().Debug("gesture ended delta=%d moves=%d", g.lastDelta, state.Moves)
	g.binding.End()
}
