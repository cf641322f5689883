package surface

import (
	"github.com/dshills/scrubbing/internal/renderer/core"
)

// Element is a labelled value cell laid out on a Surface.
type Element struct {
	id        string
	label     string
	bounds    core.ScreenRect
	text      string
	attrs     map[string]string
	listeners listenerList
}

// NewElement creates an element occupying bounds.
func NewElement(id, label string, bounds core.ScreenRect) *Element {
	return &Element{
		id:     id,
		label:  label,
		bounds: bounds,
		attrs:  make(map[string]string),
	}
}

// ID returns the element identifier.
func (e *Element) ID() string { return e.id }

// Label returns the caption drawn before the value.
func (e *Element) Label() string { return e.label }

// Bounds returns the screen region covered by the element.
func (e *Element) Bounds() core.ScreenRect { return e.bounds }

// SetBounds moves or resizes the element.
func (e *Element) SetBounds(r core.ScreenRect) { e.bounds = r }

// Text returns the displayed text content.
func (e *Element) Text() string { return e.text }

// SetText replaces the displayed text content.
func (e *Element) SetText(s string) { e.text = s }

// Attr returns the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// SetAttr sets the named attribute.
func (e *Element) SetAttr(name, value string) {
	e.attrs[name] = value
}

// RemoveAttr deletes the named attribute.
func (e *Element) RemoveAttr(name string) {
	delete(e.attrs, name)
}

// On registers an element-scoped listener. Element listeners run before
// surface listeners for events targeting this element.
func (e *Element) On(typ EventType, fn Listener) ListenerID {
	return e.listeners.add(typ, fn)
}

// Off removes an element-scoped listener. It reports whether id was found.
func (e *Element) Off(id ListenerID) bool {
	return e.listeners.remove(id)
}

// ListenerCount returns the number of element listeners for typ.
func (e *Element) ListenerCount(typ EventType) int {
	return e.listeners.count(typ)
}

// valueOrigin returns the column where the value text starts.
func (e *Element) valueOrigin() int {
	if e.label == "" {
		return e.bounds.Left
	}
	return e.bounds.Left + core.StringWidth(e.label) + 1
}
