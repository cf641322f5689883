// Package surface is the host UI the scrub drivers attach to: a terminal
// window holding labelled value elements.
//
// It plays the role a browser document plays for DOM code. Elements have
// text content, string attributes and element-scoped listeners; the
// Surface has window-level listeners that observe every event. Raw
// backend mouse reports are turned into pointer down, move, up and wheel
// events by comparing consecutive button masks, and focus loss becomes a
// blur event.
//
// # Event Loop
//
// Run owns a single goroutine. Backend polling happens on a pump
// goroutine that only forwards events; listeners, element state and
// rendering are touched from the loop alone. Work from other goroutines
// is marshalled onto the loop with Invoke:
//
//	err := surf.Invoke(ctx, func() {
//	    el.SetText("42")
//	})
package surface
