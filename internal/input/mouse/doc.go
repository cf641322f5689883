// Package mouse provides the pointer primitives used by the scrub surface
// and its drivers.
//
// Terminals report the complete button state with every mouse event
// rather than discrete press/release transitions. Button is therefore a
// bit mask; the surface compares consecutive masks to derive pointer
// down, move and up events.
//
// # Drag Tracking
//
// Drag records the start and latest position of one press-move-release
// sequence:
//
//	var d mouse.Drag
//	d.Start(mouse.Position{X: 10, Y: 2})
//	d.Update(mouse.Position{X: 14, Y: 2})
//	state := d.End() // state.Delta() == Position{X: 4}
//
// # Wheel
//
// WheelDelta maps vertical scroll bits to a signed step where scrolling
// up is positive.
package mouse
