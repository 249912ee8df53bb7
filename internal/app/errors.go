package app

import "errors"

// ErrLuaDisabled is returned when a Lua run is requested but scripting
// is disabled in the configuration.
var ErrLuaDisabled = errors.New("lua scripting is disabled")

// InitError represents a component initialization failure.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
