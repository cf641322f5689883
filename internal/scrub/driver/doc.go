// Package driver provides the input drivers that feed Bindings.
//
// Pointer is the continuous drag driver. One Pointer serves every Binding
// on a surface: it listens for pointer-down once on the surface and
// tracks at most one gesture at a time. Wheel is the discrete driver; it
// listens on each bound element and turns every wheel step into a
// one-shot start and change.
//
// Drivers keep no locks. Like the surface that feeds them they must only
// be used from the event loop goroutine.
package driver
