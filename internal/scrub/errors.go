package scrub

import "errors"

var (
	// ErrInvalidValue indicates an adapter could not derive a numeric base value.
	ErrInvalidValue = errors.New("invalid value")

	// ErrNoTarget indicates a Binding was requested without a target element.
	ErrNoTarget = errors.New("no target element")

	// ErrNoResolver indicates a Binding was requested without a resolver.
	ErrNoResolver = errors.New("no resolver")

	// ErrNoAdapter indicates a Binding was requested without any adapter.
	ErrNoAdapter = errors.New("no adapter")
)
