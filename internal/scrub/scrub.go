package scrub

import (
	"github.com/dshills/scrubbing/internal/surface"
)

// Axis names the direction a Resolver tracks. It is descriptive only and
// ends up as the element's orientation hint.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// String returns the axis name used for the orientation hint.
func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		return "Unknown"
	}
}

// Resolver maps pointer geometry to value deltas.
// Implementations must be pure and safe to share between Bindings.
type Resolver interface {
	// Axis reports which direction this resolver tracks.
	Axis() Axis

	// Coordinate extracts the tracked coordinate from an event.
	Coordinate(ev *surface.Event) int

	// Value converts the distance between two coordinates into a value delta.
	Value(start, current int) int
}

// Adapter reads and writes the value a Binding scrubs.
//
// Adapters hold no per-gesture state; whatever a gesture needs is kept by
// the driver. Change must tolerate repeated identical calls.
type Adapter interface {
	// Init is called once when the Binding is created.
	Init(b *Binding)

	// Start returns the base value at the beginning of a gesture. An error
	// wrapping ErrInvalidValue aborts the gesture.
	Start(b *Binding) (int, error)

	// Change publishes a new value; delta is its distance from the base.
	Change(b *Binding, value, delta int)

	// End is called once when a continuous gesture finishes.
	End(b *Binding)
}

// Driver turns one input modality into adapter calls.
type Driver interface {
	// Init attaches the driver to a Binding.
	Init(b *Binding)

	// Remove detaches the driver from a Binding.
	Remove(b *Binding)
}
