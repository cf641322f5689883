// Package resolver provides the built-in linear, stepped resolvers.
package resolver

import (
	"math"

	"github.com/dshills/scrubbing/internal/scrub"
	"github.com/dshills/scrubbing/internal/surface"
)

// DefaultDivider is the sensitivity used when none is given: one value
// step per screen cell.
const DefaultDivider = 1.0

// Basic tracks one pointer axis and turns movement into value steps of
// factor * floor(distance / divider).
type Basic struct {
	axis    scrub.Axis
	factor  int
	divider float64
}

// New creates a resolver. A zero factor becomes 1 and a non-positive
// divider becomes DefaultDivider.
func New(axis scrub.Axis, factor int, divider float64) *Basic {
	if factor == 0 {
		factor = 1
	}
	if divider <= 0 || math.IsNaN(divider) || math.IsInf(divider, 0) {
		divider = DefaultDivider
	}
	return &Basic{axis: axis, factor: factor, divider: divider}
}

// Axis reports the tracked axis.
func (r *Basic) Axis() scrub.Axis { return r.axis }

// Factor returns the sign applied to every delta.
func (r *Basic) Factor() int { return r.factor }

// Divider returns the movement needed per value step.
func (r *Basic) Divider() float64 { return r.divider }

// Coordinate returns the event's column for horizontal resolvers and its
// row for vertical ones.
func (r *Basic) Coordinate(ev *surface.Event) int {
	if r.axis == scrub.Vertical {
		return ev.Position.Y
	}
	return ev.Position.X
}

// Value returns factor * floor((current - start) / divider). Flooring
// rather than truncating keeps steps the same size on both sides of the
// origin.
func (r *Basic) Value(start, current int) int {
	steps := math.Floor(float64(current-start) / r.divider)
	return r.factor * int(steps)
}

// Provider builds a resolver with the given divider.
type Provider func(divider float64) *Basic

// HorizontalProvider builds left-to-right resolvers: moving right increases the value.
func HorizontalProvider(divider float64) *Basic {
	return New(scrub.Horizontal, 1, divider)
}

// VerticalProvider builds bottom-to-top resolvers: moving up increases
// the value, since screen rows grow downwards.
func VerticalProvider(divider float64) *Basic {
	return New(scrub.Vertical, -1, divider)
}

// DefaultHorizontal returns a horizontal resolver with DefaultDivider.
func DefaultHorizontal() *Basic {
	return HorizontalProvider(DefaultDivider)
}

// DefaultVertical returns a vertical resolver with DefaultDivider.
func DefaultVertical() *Basic {
	return VerticalProvider(DefaultDivider)
}
