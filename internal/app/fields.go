package app

import (
	"math"
	"strings"

	"github.com/dshills/scrubbing/internal/config"
	"github.com/dshills/scrubbing/internal/renderer/core"
	"github.com/dshills/scrubbing/internal/scrub"
	"github.com/dshills/scrubbing/internal/scrub/adapter"
	"github.com/dshills/scrubbing/internal/scrub/registry"
	"github.com/dshills/scrubbing/internal/surface"
)

// Layout of the field list.
const (
	marginLeft = 2
	firstRow   = 1
	rowStep    = 2
	valueWidth = 24
)

// field is one configured value and the binding that scrubs it.
type field struct {
	cfg     config.Field
	element *surface.Element
	binding *scrub.Binding
	scripts []*adapter.Script
}

func (f *field) close() {
	f.binding.Remove()
	for _, s := range f.scripts {
		s.Close()
	}
}

func fieldRow(i int) int {
	return firstRow + i*rowStep
}

func labelWidth(fields []config.Field) int {
	w := 0
	for _, f := range fields {
		w = max(w, core.StringWidth(fieldLabel(f)))
	}
	return w
}

func fieldLabel(f config.Field) string {
	if f.Label != "" {
		return f.Label
	}
	return f.ID
}

// build lays out and binds every configured field. A field that cannot
// be bound is logged and left off the surface.
func (app *Application) build(cfg *config.Config) {
	doc, err := adapter.NewDocument(cfg.Document)
	if err != nil {
		app.logger.Warn("document: %v", err)
		doc, _ = adapter.NewDocument("")
	}
	app.mu.Lock()
	app.doc = doc
	app.mu.Unlock()

	width := labelWidth(cfg.Fields)
	for _, fc := range cfg.Fields {
		f, err := app.bindField(fc, doc, len(app.fields), width)
		if err != nil {
			app.logger.Error("%v", NewOperationError("bind", fc.ID, err))
			continue
		}
		app.fields = append(app.fields, f)
	}

	app.status = surface.NewElement("status", "", core.RectFromSize(fieldRow(len(app.fields)), marginLeft, 1, width+1+valueWidth*2))
	app.status.SetText(app.metrics.Snapshot().String())
	app.surface.Add(app.status)

	app.watchIDs = []surface.ListenerID{
		app.surface.AddListener(surface.EventPointerDown, app.onPointerDown),
		app.surface.AddListener(surface.EventPointerMove, app.refreshStatus),
		app.surface.AddListener(surface.EventPointerUp, app.refreshStatus),
		app.surface.AddListener(surface.EventWheel, app.refreshStatus),
	}

	app.logger.Debug("built %d of %d field(s)", len(app.fields), len(cfg.Fields))
}

// unbuild removes every binding and element that build added.
func (app *Application) unbuild() {
	for _, id := range app.watchIDs {
		app.surface.RemoveListener(id)
	}
	app.watchIDs = nil

	for _, f := range app.fields {
		f.close()
		app.surface.Remove(f.element)
	}
	app.fields = nil

	if app.status != nil {
		app.surface.Remove(app.status)
		app.status = nil
	}
}

func (app *Application) bindField(fc config.Field, doc *adapter.Document, index, width int) (*field, error) {
	label := fieldLabel(fc)
	label += strings.Repeat(" ", width-core.StringWidth(label))

	el := surface.NewElement(fc.ID, label, core.RectFromSize(fieldRow(index), marginLeft, 1, width+1+valueWidth))
	el.SetText(fc.Value)

	adapters, scripts, err := app.fieldAdapters(fc, doc)
	if err != nil {
		return nil, err
	}
	f := &field{cfg: fc, element: el, scripts: scripts}

	f.binding, err = app.registry.Create(el, fieldOptions(fc, adapters))
	if err != nil {
		for _, s := range scripts {
			s.Close()
		}
		return nil, err
	}

	app.surface.Add(el)
	return f, nil
}

// fieldOptions maps a configured field onto registry options. A divider
// without a resolver name selects the horizontal provider.
func fieldOptions(fc config.Field, adapters []scrub.Adapter) registry.Options {
	opts := registry.Options{
		Adapters: registry.Value(adapters),
		Divider:  fc.Divider,
	}
	if len(fc.Drivers) > 0 {
		opts.Drivers = registry.Named[[]scrub.Driver](fc.Drivers...)
	}
	switch {
	case fc.Resolver != "":
		opts.Resolver = registry.Named[scrub.Resolver](fc.Resolver)
	case fc.Divider > 0:
		opts.Resolver = registry.Named[scrub.Resolver]("horizontal")
	}
	return opts
}

// fieldAdapters builds the adapter list for fc: the named adapters in
// order, the first clamped when bounds are set, then the metrics counter.
func (app *Application) fieldAdapters(fc config.Field, doc *adapter.Document) ([]scrub.Adapter, []*adapter.Script, error) {
	var (
		out     []scrub.Adapter
		scripts []*adapter.Script
	)

	for _, name := range fc.Adapters {
		switch strings.ToLower(name) {
		case "json":
			out = append(out, adapter.NewJSON(doc, fc.JSONPath))
		case "script":
			s, err := adapter.NewScript(fc.Script)
			if err != nil {
				for _, prev := range scripts {
					prev.Close()
				}
				return nil, nil, err
			}
			scripts = append(scripts, s)
			out = append(out, s)
		default:
			a, ok := app.registry.Adapter(name)
			if !ok {
				app.logger.Warn("field %s: unknown adapter %q", fc.ID, name)
				continue
			}
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		out = []scrub.Adapter{adapter.Text{}}
	}

	if fc.Min != nil || fc.Max != nil {
		lo, hi := math.MinInt, math.MaxInt
		if fc.Min != nil {
			lo = *fc.Min
		}
		if fc.Max != nil {
			hi = *fc.Max
		}
		out[0] = adapter.NewClamp(out[0], lo, hi)
	}

	return append(out, app.metrics), scripts, nil
}

// onPointerDown counts presses that were claimed by a binding but did not
// start a gesture.
func (app *Application) onPointerDown(ev *surface.Event) {
	if ev.DefaultPrevented() && !ev.Captured() {
		app.metrics.RecordAbort()
	}
	app.refreshStatus(ev)
}

func (app *Application) refreshStatus(*surface.Event) {
	if app.status != nil {
		app.status.SetText(app.metrics.Snapshot().String())
	}
}
