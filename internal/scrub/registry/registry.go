// Package registry builds Bindings from options that name built-ins or
// supply concrete parts, falling back to defaults for anything missing.
package registry

import (
	"strings"

	"github.com/dshills/scrubbing/internal/logging"
	"github.com/dshills/scrubbing/internal/scrub"
	"github.com/dshills/scrubbing/internal/scrub/adapter"
	"github.com/dshills/scrubbing/internal/scrub/driver"
	"github.com/dshills/scrubbing/internal/scrub/resolver"
	"github.com/dshills/scrubbing/internal/surface"
)

// ResolverFactory builds a resolver for a divider. A divider of 0 asks
// for the factory's default.
type ResolverFactory func(divider float64) scrub.Resolver

// Options configures one Binding. The zero value selects every default:
// the wheel and pointer drivers, a horizontal resolver with the default
// divider and the text adapter.
type Options struct {
	Drivers  Option[[]scrub.Driver]
	Resolver Option[scrub.Resolver]
	Adapters Option[[]scrub.Adapter]

	// Divider is passed to resolver factories chosen by name.
	Divider float64
}

// Registry owns the shared drivers of one surface and the tables of
// well-known names. Names are matched case-insensitively.
type Registry struct {
	logger    *logging.Logger
	pointer   *driver.Pointer
	wheel     *driver.Wheel
	drivers   map[string]scrub.Driver
	resolvers map[string]ResolverFactory
	adapters  map[string]scrub.Adapter
}

// New creates a registry whose pointer driver listens on src.
func New(src driver.EventSource, logger *logging.Logger) *Registry {
	logger = logging.OrNull(logger)
	r := &Registry{
		logger:    logger.WithComponent("registry"),
		pointer:   driver.NewPointer(src, driver.WithPointerLogger(logger)),
		wheel:     driver.NewWheel(logger),
		drivers:   make(map[string]scrub.Driver),
		resolvers: make(map[string]ResolverFactory),
		adapters:  make(map[string]scrub.Adapter),
	}

	r.RegisterDriver("Mouse", r.pointer)
	r.RegisterDriver("pointer", r.pointer)
	r.RegisterDriver("MouseWheel", r.wheel)
	r.RegisterDriver("wheel", r.wheel)

	fixed := func(res scrub.Resolver) ResolverFactory {
		return func(float64) scrub.Resolver { return res }
	}
	horizontal := func(d float64) scrub.Resolver { return resolver.HorizontalProvider(d) }
	vertical := func(d float64) scrub.Resolver { return resolver.VerticalProvider(d) }

	r.RegisterResolver("DefaultHorizontal", fixed(resolver.DefaultHorizontal()))
	r.RegisterResolver("DefaultVertical", fixed(resolver.DefaultVertical()))
	r.RegisterResolver("HorizontalProvider", horizontal)
	r.RegisterResolver("VerticalProvider", vertical)
	r.RegisterResolver("horizontal", horizontal)
	r.RegisterResolver("vertical", vertical)

	r.RegisterAdapter("BasicNode", adapter.Text{})
	r.RegisterAdapter("text", adapter.Text{})
	r.RegisterAdapter("log", &adapter.Log{})

	return r
}

// RegisterDriver adds or replaces a named driver.
func (r *Registry) RegisterDriver(name string, d scrub.Driver) {
	r.drivers[strings.ToLower(name)] = d
}

// RegisterResolver adds or replaces a named resolver factory.
func (r *Registry) RegisterResolver(name string, f ResolverFactory) {
	r.resolvers[strings.ToLower(name)] = f
}

// RegisterAdapter adds or replaces a named adapter.
func (r *Registry) RegisterAdapter(name string, a scrub.Adapter) {
	r.adapters[strings.ToLower(name)] = a
}

// Driver looks up a driver by name.
func (r *Registry) Driver(name string) (scrub.Driver, bool) {
	d, ok := r.drivers[strings.ToLower(name)]
	return d, ok
}

// Resolver looks up a resolver factory by name and applies divider.
func (r *Registry) Resolver(name string, divider float64) (scrub.Resolver, bool) {
	f, ok := r.resolvers[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return f(divider), true
}

// Adapter looks up an adapter by name.
func (r *Registry) Adapter(name string) (scrub.Adapter, bool) {
	a, ok := r.adapters[strings.ToLower(name)]
	return a, ok
}

// Pointer returns the shared pointer driver.
func (r *Registry) Pointer() *driver.Pointer { return r.pointer }

// Wheel returns the shared wheel driver.
func (r *Registry) Wheel() *driver.Wheel { return r.wheel }

// DefaultDrivers returns the drivers used when none are chosen.
func (r *Registry) DefaultDrivers() []scrub.Driver {
	return []scrub.Driver{r.wheel, r.pointer}
}

// Parts resolves opts into concrete parts. Unknown names never fail;
// they fall back to the default for their option.
func (r *Registry) Parts(opts Options) scrub.Parts {
	return scrub.Parts{
		Drivers:  resolveList(r, "driver", opts.Drivers, r.Driver, r.DefaultDrivers()),
		Resolver: r.resolveResolver(opts),
		Adapters: resolveList(r, "adapter", opts.Adapters, r.Adapter, []scrub.Adapter{adapter.Text{}}),
	}
}

// Create binds target with the parts opts resolves to.
func (r *Registry) Create(target *surface.Element, opts Options) (*scrub.Binding, error) {
	return scrub.Bind(target, r.Parts(opts), r.logger)
}

// Close ends any drag in progress and detaches the pointer driver.
func (r *Registry) Close() {
	r.pointer.Close()
}

func (r *Registry) resolveResolver(opts Options) scrub.Resolver {
	o := opts.Resolver
	if v, ok := o.Get(); ok {
		return v
	}
	for _, name := range o.Names() {
		if res, ok := r.Resolver(name, opts.Divider); ok {
			return res
		}
		r.logger.Warn("unknown resolver %q, using default", name)
	}
	return resolver.DefaultHorizontal()
}

func resolveList[T any](r *Registry, kind string, o Option[[]T], lookup func(string) (T, bool), def []T) []T {
	if v, ok := o.Get(); ok {
		return v
	}
	var out []T
	for _, name := range o.Names() {
		v, ok := lookup(name)
		if !ok {
			r.logger.Warn("unknown %s %q", kind, name)
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return def
	}
	return out
}
