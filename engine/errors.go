package engine

import "errors"

var (
	// ErrNotInitialized is returned when an App is used before Initialize.
	ErrNotInitialized = errors.New("engine: app not initialized")

	// ErrWindowClosed is returned by Display after Close.
	ErrWindowClosed = errors.New("engine: window closed")

	// ErrInvalidSize is wrapped when a window is requested with a
	// non-positive dimension.
	ErrInvalidSize = errors.New("engine: invalid size")
)
