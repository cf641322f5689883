package scrub

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/scrubbing/internal/logging"
	"github.com/dshills/scrubbing/internal/surface"
)

// Parts are the resolved pieces a Binding is assembled from.
type Parts struct {
	Resolver Resolver
	Adapters []Adapter
	Drivers  []Driver
}

// Binding ties one target element to its resolver, adapters and drivers.
// The first adapter is the primary: it alone supplies the base value.
type Binding struct {
	id       uuid.UUID
	target   *surface.Element
	resolver Resolver
	adapters []Adapter
	drivers  []Driver
	logger   *logging.Logger
	removed  bool
}

// Bind creates a Binding, tags the target with the resolver's axis and
// initializes every adapter and then every driver, in order.
func Bind(target *surface.Element, parts Parts, logger *logging.Logger) (*Binding, error) {
	if target == nil {
		return nil, ErrNoTarget
	}
	if parts.Resolver == nil {
		return nil, ErrNoResolver
	}
	adapters := compact(parts.Adapters)
	if len(adapters) == 0 {
		return nil, ErrNoAdapter
	}

	b := &Binding{
		id:       uuid.New(),
		target:   target,
		resolver: parts.Resolver,
		adapters: adapters,
		drivers:  compact(parts.Drivers),
	}
	b.logger = logging.OrNull(logger).WithFields(map[string]any{
		"binding": b.id.String()[:8],
		"element": target.ID(),
	})

	target.SetAttr(surface.OrientationAttr, parts.Resolver.Axis().String())

	for _, a := range b.adapters {
		a.Init(b)
	}
	for _, d := range b.drivers {
		d.Init(b)
	}

	b.logger.Debug("bound with %d adapter(s), %d driver(s)", len(b.adapters), len(b.drivers))
	return b, nil
}

// compact drops nil entries and copies the list so callers cannot alias it.
func compact[T comparable](in []T) []T {
	var zero T
	out := make([]T, 0, len(in))
	for _, v := range in {
		if v != zero {
			out = append(out, v)
		}
	}
	return out
}

// ID returns the binding's unique identifier.
func (b *Binding) ID() uuid.UUID { return b.id }

// Target returns the bound element.
func (b *Binding) Target() *surface.Element { return b.target }

// Resolver returns the binding's resolver.
func (b *Binding) Resolver() Resolver { return b.resolver }

// Adapters returns the adapters in call order.
func (b *Binding) Adapters() []Adapter {
	return append([]Adapter(nil), b.adapters...)
}

// Drivers returns the attached drivers.
func (b *Binding) Drivers() []Driver {
	return append([]Driver(nil), b.drivers...)
}

// Logger returns a logger carrying the binding's fields.
func (b *Binding) Logger() *logging.Logger { return b.logger }

// Removed reports whether Remove has been called.
func (b *Binding) Removed() bool { return b.removed }

// Start asks the primary adapter for the base value. When it fails no
// other adapter is called and the error is returned. Secondary adapters
// are then notified; their values are ignored and their errors logged.
func (b *Binding) Start() (int, error) {
	base, err := b.adapters[0].Start(b)
	if err != nil {
		return 0, fmt.Errorf("start %s: %w", b.target.ID(), err)
	}
	for _, a := range b.adapters[1:] {
		if _, err := a.Start(b); err != nil {
			b.logger.Warn("secondary adapter start: %v", err)
		}
	}
	return base, nil
}

// Change forwards a new value to every adapter in order.
func (b *Binding) Change(value, delta int) {
	for _, a := range b.adapters {
		a.Change(b, value, delta)
	}
}

// End notifies every adapter that the gesture finished.
func (b *Binding) End() {
	for _, a := range b.adapters {
		a.End(b)
	}
}

// Remove detaches every driver. Calling it more than once is a no-op.
func (b *Binding) Remove() {
	if b.removed {
		return
	}
	b.removed = true
	for _, d := range b.drivers {
		d.Remove(b)
	}
	b.logger.Debug("removed")
}
