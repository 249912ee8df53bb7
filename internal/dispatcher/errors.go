package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrNoHandler indicates no handler was found for a command key.
	ErrNoHandler = errors.New("dispatcher: no handler for command")

	// ErrNoSession indicates the dispatcher has no session to execute
	// against.
	ErrNoSession = errors.New("dispatcher: no session")
)
