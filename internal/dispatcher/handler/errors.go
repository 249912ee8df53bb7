package handler

import "errors"

// Handler errors.
var (
	// ErrTypeMismatch indicates the operation is not valid for the
	// structure type currently live in the slot.
	ErrTypeMismatch = errors.New("type mismatch")
)
