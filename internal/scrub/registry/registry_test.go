package registry

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dshills/scrubbing/internal/logging"
	"github.com/dshills/scrubbing/internal/renderer/backend"
	"github.com/dshills/scrubbing/internal/renderer/core"
	"github.com/dshills/scrubbing/internal/scrub"
	"github.com/dshills/scrubbing/internal/scrub/adapter"
	"github.com/dshills/scrubbing/internal/scrub/resolver"
	"github.com/dshills/scrubbing/internal/surface"
)

func newRegistry() (*Registry, *surface.Surface) {
	s := surface.New(backend.NewNullBackend(80, 10))
	return New(s, nil), s
}

func TestOption(t *testing.T) {
	var zero Option[int]
	if !zero.IsDefault() {
		t.Error("zero Option should be Default")
	}
	if !Named[int]().IsDefault() {
		t.Error("Named with no names should be Default")
	}
	if _, ok := Named[int]("a").Get(); ok {
		t.Error("Named option has no value")
	}
	if v, ok := Value(7).Get(); !ok || v != 7 {
		t.Errorf("Value(7).Get() = %d, %v", v, ok)
	}
	if got := Named[int]("a", "b").Names(); len(got) != 2 {
		t.Errorf("Names() = %v", got)
	}
}

func TestDefaults(t *testing.T) {
	r, _ := newRegistry()
	parts := r.Parts(Options{})

	if len(parts.Drivers) != 2 || parts.Drivers[0] != r.Wheel() || parts.Drivers[1] != r.Pointer() {
		t.Errorf("default drivers = %v, want [wheel pointer]", parts.Drivers)
	}
	res, ok := parts.Resolver.(*resolver.Basic)
	if !ok || res.Axis() != scrub.Horizontal || res.Divider() != resolver.DefaultDivider {
		t.Errorf("default resolver = %#v", parts.Resolver)
	}
	if len(parts.Adapters) != 1 || parts.Adapters[0] != (adapter.Text{}) {
		t.Errorf("default adapters = %v", parts.Adapters)
	}
}

func TestNamedResolvers(t *testing.T) {
	r, _ := newRegistry()

	tests := []struct {
		name    string
		divider float64
		axis    scrub.Axis
		wantDiv float64
	}{
		{"DefaultHorizontal", 5, scrub.Horizontal, 1},
		{"defaultvertical", 5, scrub.Vertical, 1},
		{"HorizontalProvider", 5, scrub.Horizontal, 5},
		{"VerticalProvider", 2, scrub.Vertical, 2},
		{"vertical", 0, scrub.Vertical, 1},
		{"HORIZONTAL", 8, scrub.Horizontal, 8},
		{"diagonal", 3, scrub.Horizontal, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := r.Parts(Options{Resolver: Named[scrub.Resolver](tt.name), Divider: tt.divider})
			res := parts.Resolver.(*resolver.Basic)
			if res.Axis() != tt.axis || res.Divider() != tt.wantDiv {
				t.Errorf("got axis %s divider %v, want %s %v", res.Axis(), res.Divider(), tt.axis, tt.wantDiv)
			}
		})
	}
}

func TestNamedLists(t *testing.T) {
	r, _ := newRegistry()

	parts := r.Parts(Options{Drivers: Named[[]scrub.Driver]("Mouse")})
	if len(parts.Drivers) != 1 || parts.Drivers[0] != r.Pointer() {
		t.Errorf("Mouse drivers = %v", parts.Drivers)
	}

	parts = r.Parts(Options{Drivers: Named[[]scrub.Driver]("bogus", "wheel")})
	if len(parts.Drivers) != 1 || parts.Drivers[0] != r.Wheel() {
		t.Errorf("unknown names should be skipped, got %v", parts.Drivers)
	}

	parts = r.Parts(Options{Drivers: Named[[]scrub.Driver]("bogus")})
	if len(parts.Drivers) != 2 {
		t.Errorf("all-unknown names should fall back, got %v", parts.Drivers)
	}

	parts = r.Parts(Options{Adapters: Named[[]scrub.Adapter]("basicnode", "log")})
	if len(parts.Adapters) != 2 {
		t.Fatalf("adapters = %v", parts.Adapters)
	}
	if _, ok := parts.Adapters[1].(*adapter.Log); !ok {
		t.Errorf("second adapter = %T, want *adapter.Log", parts.Adapters[1])
	}
}

func TestValueOptions(t *testing.T) {
	r, _ := newRegistry()
	custom := resolver.VerticalProvider(4)
	doc, _ := adapter.NewDocument(`{"v":1}`)
	js := adapter.NewJSON(doc, "v")

	parts := r.Parts(Options{
		Drivers:  Value([]scrub.Driver{}),
		Resolver: Value[scrub.Resolver](custom),
		Adapters: Value([]scrub.Adapter{js}),
	})
	if len(parts.Drivers) != 0 {
		t.Errorf("explicit empty drivers should be kept, got %v", parts.Drivers)
	}
	if parts.Resolver != custom {
		t.Error("resolver instance should be used verbatim")
	}
	if len(parts.Adapters) != 1 || parts.Adapters[0] != js {
		t.Errorf("adapters = %v", parts.Adapters)
	}
}

func TestCreate(t *testing.T) {
	r, s := newRegistry()
	el := surface.NewElement("speed", "speed", core.RectFromSize(0, 0, 1, 30))
	el.SetText("3")
	s.Add(el)

	b, err := r.Create(el, Options{Resolver: Named[scrub.Resolver]("DefaultVertical")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if v, _ := el.Attr(surface.OrientationAttr); v != "Vertical" {
		t.Errorf("orientation = %q, want Vertical", v)
	}
	if el.ListenerCount(surface.EventWheel) != 1 {
		t.Error("default drivers should attach the wheel listener")
	}
	if s.ListenerCount(surface.EventPointerDown) != 1 {
		t.Error("default drivers should install the pointer-down listener")
	}
	if got := r.Pointer().Registered(); len(got) != 1 || got[0] != b {
		t.Errorf("pointer registered = %v", got)
	}

	b.Remove()
	if el.ListenerCount(surface.EventWheel) != 0 || len(r.Pointer().Registered()) != 0 {
		t.Error("Remove should detach every driver")
	}

	r.Close()
	if s.ListenerCount(surface.EventPointerDown) != 0 {
		t.Error("Close should remove the pointer-down listener")
	}
}

func TestCreateWithoutAdapters(t *testing.T) {
	r, _ := newRegistry()
	el := surface.NewElement("x", "", core.RectFromSize(0, 0, 1, 5))
	if _, err := r.Create(el, Options{Adapters: Value([]scrub.Adapter{})}); err != scrub.ErrNoAdapter {
		t.Errorf("Create error = %v, want ErrNoAdapter", err)
	}
	if _, err := r.Create(nil, Options{}); err != scrub.ErrNoTarget {
		t.Errorf("Create(nil) error = %v, want ErrNoTarget", err)
	}
}

func TestUnknownNamesAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})
	r := New(surface.New(backend.NewNullBackend(10, 1)), logger)

	r.Parts(Options{Resolver: Named[scrub.Resolver]("sideways"), Adapters: Named[[]scrub.Adapter]("csv")})

	out := buf.String()
	if !strings.Contains(out, `unknown resolver "sideways"`) || !strings.Contains(out, `unknown adapter "csv"`) {
		t.Errorf("log output = %q", out)
	}
}

func TestCustomRegistration(t *testing.T) {
	r, _ := newRegistry()
	clamp := adapter.NewClamp(adapter.Text{}, 0, 100)
	r.RegisterAdapter("Percent", clamp)

	if a, ok := r.Adapter("percent"); !ok || a != clamp {
		t.Error("registered adapter should be found case-insensitively")
	}
	if _, ok := r.Driver("keyboard"); ok {
		t.Error("unknown driver should not be found")
	}
}
