// Package scrub turns drag and wheel gestures over a displayed number into
// value changes.
//
// A Binding associates one surface element with three kinds of plugin:
//
//   - Resolver: pure geometry. Extracts a coordinate from an event and
//     maps a coordinate distance to a stepped value delta.
//   - Adapter: value I/O. Reads the base value when a gesture starts and
//     writes every new value back.
//   - Driver: an input modality. Decides when gestures start, change and
//     end, and calls the adapters accordingly.
//
// Built-in implementations live in the resolver, adapter and driver
// subpackages; the registry package resolves named options against
// defaults and creates Bindings.
//
// # Data Flow
//
//	pointer down on element -> Pointer driver matches the Binding
//	    -> Binding.Start (primary adapter reads base value)
//	    -> Resolver.Coordinate records the origin
//	pointer move -> Resolver.Value(origin, current) -> Binding.Change(base+delta, delta)
//	pointer up   -> Binding.End
//
// All calls happen on the surface event loop goroutine; nothing in this
// package is safe for concurrent use.
package scrub
