package session

import "errors"

// Session state errors.
var (
	// ErrNotInitialized indicates a command addressed a family slot with
	// no live instance.
	ErrNotInitialized = errors.New("structure not initialized")

	// ErrQueueFull indicates the build queue cannot accept more commands.
	ErrQueueFull = errors.New("build queue full")
)
