package adapter

import "errors"

var (
	// ErrInvalidDocument indicates JSON input that could not be parsed.
	ErrInvalidDocument = errors.New("invalid JSON document")

	// ErrMissingFunction indicates a script that does not define a required function.
	ErrMissingFunction = errors.New("script function not defined")

	// ErrScriptClosed indicates a call on a Script after Close.
	ErrScriptClosed = errors.New("script closed")
)
