package adapter

import "github.com/dshills/scrubbing/internal/scrub"

// Clamp keeps the values written to Inner within [Min, Max].
type Clamp struct {
	Inner    scrub.Adapter
	Min, Max int
}

// NewClamp wraps inner. The bounds may be given in either order.
func NewClamp(inner scrub.Adapter, lo, hi int) *Clamp {
	if lo > hi {
		lo, hi = hi, lo
	}
	return &Clamp{Inner: inner, Min: lo, Max: hi}
}

func (c *Clamp) Init(b *scrub.Binding) { c.Inner.Init(b) }

func (c *Clamp) Start(b *scrub.Binding) (int, error) { return c.Inner.Start(b) }

// Change clamps value and adjusts delta so it still measures the
// distance from the base.
func (c *Clamp) Change(b *scrub.Binding, value, delta int) {
	v := min(max(value, c.Min), c.Max)
	c.Inner.Change(b, v, delta+v-value)
}

func (c *Clamp) End(b *scrub.Binding) { c.Inner.End(b) }
