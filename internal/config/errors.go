package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrValidation indicates a configuration value no component can honor.
	ErrValidation = errors.New("config validation failed")

	// ErrUnknownFormat indicates a config file extension the loader does
	// not recognize.
	ErrUnknownFormat = errors.New("unknown config format")
)

// ParseError reports a configuration file that failed to decode.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string

	// Err is the decoder error.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
