// Package adapter provides the value stores a Binding can scrub.
//
// Text is the built-in adapter: it reads and writes the bound element's
// text as a base-10 integer. JSON keeps the value in a shared document,
// Script hands both directions to a small Lua program, and Clamp and Log
// wrap or observe other adapters.
//
// Adapters are called from the surface event loop only.
package adapter
