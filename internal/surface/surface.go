package surface

import (
	"context"
	"errors"

	"github.com/dshills/scrubbing/internal/input/mouse"
	"github.com/dshills/scrubbing/internal/logging"
	"github.com/dshills/scrubbing/internal/renderer/backend"
	"github.com/dshills/scrubbing/internal/renderer/core"
)

// ErrNotRunning is returned by Invoke when the event loop has stopped.
var ErrNotRunning = errors.New("surface not running")

// KeyHandler receives key events. A non-nil error stops Run and is
// returned from it.
type KeyHandler func(ev backend.Event) error

// Surface is the window: it owns the elements, the surface-level
// listeners and the event loop that feeds them.
//
// Surface is not safe for concurrent use. Everything except Invoke must
// be called from the goroutine running Run, or before Run starts.
type Surface struct {
	backend backend.Backend
	logger  *logging.Logger
	theme   Theme
	onKey   KeyHandler

	elements  []*Element
	listeners listenerList

	// Last reported pointer state, used to derive down/up transitions.
	buttons mouse.Button
	lastPos mouse.Position

	// Element whose press started a gesture, drawn with the active style.
	captured *Element

	invoke chan func()
	done   chan struct{}
}

// Option configures a Surface.
type Option func(*Surface)

// WithLogger sets the surface logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Surface) {
		s.logger = l
	}
}

// WithTheme sets the colors used by Render.
func WithTheme(t Theme) Option {
	return func(s *Surface) {
		s.theme = t
	}
}

// WithKeyHandler installs the key event handler.
func WithKeyHandler(h KeyHandler) Option {
	return func(s *Surface) {
		s.onKey = h
	}
}

// New creates a surface drawing to b.
func New(b backend.Backend, opts ...Option) *Surface {
	s := &Surface{
		backend: b,
		logger:  logging.NullLogger,
		theme:   DefaultTheme(),
		invoke:  make(chan func()),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNull(s.logger).WithComponent("surface")
	return s
}

// Backend returns the backend the surface draws to.
func (s *Surface) Backend() backend.Backend {
	return s.backend
}

// SetTheme replaces the colors used by Render.
func (s *Surface) SetTheme(t Theme) {
	s.theme = t
}

// Theme returns the colors used by Render.
func (s *Surface) Theme() Theme {
	return s.theme
}

// Add places an element on the surface. Later elements win hit tests
// where bounds overlap.
func (s *Surface) Add(el *Element) {
	s.elements = append(s.elements, el)
}

// Remove takes an element off the surface. It reports whether el was present.
func (s *Surface) Remove(el *Element) bool {
	for i, e := range s.elements {
		if e == el {
			s.elements = append(s.elements[:i:i], s.elements[i+1:]...)
			if s.captured == el {
				s.captured = nil
			}
			return true
		}
	}
	return false
}

// Elements returns the elements in z-order (bottom first).
func (s *Surface) Elements() []*Element {
	out := make([]*Element, len(s.elements))
	copy(out, s.elements)
	return out
}

// ElementAt returns the topmost element containing pos, or nil.
func (s *Surface) ElementAt(pos mouse.Position) *Element {
	p := core.ScreenPos{Row: pos.Y, Col: pos.X}
	for i := len(s.elements) - 1; i >= 0; i-- {
		if s.elements[i].bounds.Contains(p) {
			return s.elements[i]
		}
	}
	return nil
}

// AddListener registers a surface-level listener that sees every event
// of typ, whatever its target.
func (s *Surface) AddListener(typ EventType, fn Listener) ListenerID {
	return s.listeners.add(typ, fn)
}

// RemoveListener removes a surface-level listener. It reports whether id
// was found.
func (s *Surface) RemoveListener(id ListenerID) bool {
	return s.listeners.remove(id)
}

// ListenerCount returns the number of surface-level listeners for typ.
func (s *Surface) ListenerCount(typ EventType) int {
	return s.listeners.count(typ)
}

// Captured returns the element whose press started the current gesture,
// or nil.
func (s *Surface) Captured() *Element {
	return s.captured
}

// Dispatch delivers ev to the target's listeners, then to surface
// listeners. Listeners added or removed during dispatch take effect
// from the next event.
func (s *Surface) Dispatch(ev *Event) {
	var fns []Listener
	if ev.Target != nil {
		fns = ev.Target.listeners.snapshot(ev.Type)
	}
	fns = append(fns, s.listeners.snapshot(ev.Type)...)

	for _, fn := range fns {
		fn(ev)
	}

	switch ev.Type {
	case EventPointerDown:
		if ev.Captured() {
			s.captured = ev.Target
		}
	case EventPointerUp, EventBlur:
		s.captured = nil
	}
}

// HandleBackendEvent converts a raw backend event into surface events and
// dispatches them.
func (s *Surface) HandleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventMouse:
		for _, sev := range s.translateMouse(ev) {
			s.Dispatch(sev)
		}
	case backend.EventFocus:
		if !ev.Focused {
			s.buttons = mouse.ButtonNone
			s.Dispatch(&Event{Type: EventBlur, Position: s.lastPos})
		}
	case backend.EventKey:
		if s.onKey != nil {
			return s.onKey(ev)
		}
	}
	return nil
}

// translateMouse derives pointer transitions by comparing the reported
// button mask with the previous one.
func (s *Surface) translateMouse(ev backend.Event) []*Event {
	pos := mouse.Position{X: ev.MouseX, Y: ev.MouseY}
	reported := fromBackendButtons(ev.MouseButtons)
	held := reported.Held()
	target := s.ElementAt(pos)

	var out []*Event

	if mouse.IsVerticalScroll(reported) {
		out = append(out, &Event{
			Type:       EventWheel,
			Position:   pos,
			Buttons:    held,
			WheelDelta: mouse.WheelDelta(reported),
			Modifiers:  ev.Mod,
			Target:     target,
		})
	}

	wasDown := s.buttons.Has(mouse.ButtonPrimary)
	isDown := held.Has(mouse.ButtonPrimary)

	var typ EventType
	switch {
	case !wasDown && isDown:
		typ = EventPointerDown
	case wasDown && !isDown:
		typ = EventPointerUp
	case !pos.Equal(s.lastPos):
		typ = EventPointerMove
	}

	if typ != EventNone {
		out = append(out, &Event{
			Type:      typ,
			Position:  pos,
			Buttons:   held,
			Modifiers: ev.Mod,
			Target:    target,
		})
	}

	s.buttons = held
	s.lastPos = pos
	return out
}

func fromBackendButtons(b backend.MouseButton) mouse.Button {
	pairs := []struct {
		from backend.MouseButton
		to   mouse.Button
	}{
		{backend.MousePrimary, mouse.ButtonPrimary},
		{backend.MouseMiddle, mouse.ButtonMiddle},
		{backend.MouseSecondary, mouse.ButtonSecondary},
		{backend.MouseWheelUp, mouse.ButtonScrollUp},
		{backend.MouseWheelDown, mouse.ButtonScrollDown},
		{backend.MouseWheelLeft, mouse.ButtonScrollLeft},
		{backend.MouseWheelRight, mouse.ButtonScrollRight},
	}
	result := mouse.ButtonNone
	for _, p := range pairs {
		if b.Has(p.from) {
			result |= p.to
		}
	}
	return result
}

// Invoke runs fn on the event loop goroutine and waits until it has been
// accepted. It returns ErrNotRunning once Run has returned, or ctx's
// error if ctx ends first.
func (s *Surface) Invoke(ctx context.Context, fn func()) error {
	select {
	case s.invoke <- fn:
		return nil
	case <-s.done:
		return ErrNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run initializes the backend and processes events until ctx is done,
// the backend closes, or the key handler returns an error.
func (s *Surface) Run(ctx context.Context) error {
	defer close(s.done)

	if err := s.backend.Init(); err != nil {
		return err
	}
	defer s.backend.Shutdown()

	s.backend.EnableMouse()
	s.backend.HideCursor()

	events := make(chan backend.Event)
	stop := make(chan struct{})
	defer close(stop)
	go s.pump(events, stop)

	s.Render()

	for {
		select {
		case <-ctx.Done():
			return nil

		case fn := <-s.invoke:
			fn()
			s.Render()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := s.HandleBackendEvent(ev); err != nil {
				return err
			}
			s.Render()
		}
	}
}

// pump forwards backend events until the backend closes or stop is closed.
func (s *Surface) pump(events chan<- backend.Event, stop <-chan struct{}) {
	defer close(events)
	for {
		ev := s.backend.PollEvent()
		if ev.Type == backend.EventClosed {
			return
		}
		select {
		case events <- ev:
		case <-stop:
			return
		}
	}
}
