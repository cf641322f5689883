package adapter

import (
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/scrubbing/internal/scrub"
)

// Document is a JSON document shared by JSON adapters. It is safe for
// concurrent use so a reader outside the event loop can dump it.
type Document struct {
	mu  sync.RWMutex
	raw string
}

// NewDocument parses raw. An empty string starts an empty object.
func NewDocument(raw string) (*Document, error) {
	if raw == "" {
		raw = "{}"
	}
	if !gjson.Valid(raw) {
		return nil, ErrInvalidDocument
	}
	return &Document{raw: raw}, nil
}

// Int returns the integer stored at path. A missing, non-numeric or
// fractional value is reported as scrub.ErrInvalidValue.
func (d *Document) Int(path string) (int, error) {
	d.mu.RLock()
	r := gjson.Get(d.raw, path)
	d.mu.RUnlock()

	if !r.Exists() {
		return 0, fmt.Errorf("%w: %s not set", scrub.ErrInvalidValue, path)
	}
	if r.Type != gjson.Number {
		return 0, fmt.Errorf("%w: %s holds %s", scrub.ErrInvalidValue, path, r.Type)
	}
	if f := r.Float(); f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %s holds %s", scrub.ErrInvalidValue, path, r.Raw)
	}
	return int(r.Int()), nil
}

// SetInt stores v at path, creating intermediate objects as needed.
func (d *Document) SetInt(path string, v int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	raw, err := sjson.Set(d.raw, path, v)
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	d.raw = raw
	return nil
}

// String returns the document as compact JSON.
func (d *Document) String() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.raw
}

// Pretty returns the document indented for display.
func (d *Document) Pretty() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return gjson.Get(d.raw, "@pretty").String()
}

// JSON scrubs the integer at Path in Doc and mirrors it into the element
// text.
type JSON struct {
	Doc  *Document
	Path string
}

// NewJSON creates a JSON adapter for path in doc.
func NewJSON(doc *Document, path string) *JSON {
	return &JSON{Doc: doc, Path: path}
}

// Init shows the stored value, if there is one.
func (a *JSON) Init(b *scrub.Binding) {
	if v, err := a.Doc.Int(a.Path); err == nil {
		b.Target().SetText(strconv.Itoa(v))
	}
}

// Start reads the stored value.
func (a *JSON) Start(*scrub.Binding) (int, error) {
	return a.Doc.Int(a.Path)
}

// Change stores value and shows it.
func (a *JSON) Change(b *scrub.Binding, value, _ int) {
	if err := a.Doc.SetInt(a.Path, value); err != nil {
		b.Logger().Warn("json change: %v", err)
		return
	}
	b.Target().SetText(strconv.Itoa(value))
}

// End does nothing.
func (a *JSON) End(*scrub.Binding) {}
