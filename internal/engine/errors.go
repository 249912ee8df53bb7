package engine

import "errors"

// Errors returned by engine operations. The dispatcher converts these to
// structured command results; they never escape as faults.
var (
	// ErrOutOfRange indicates an index, position, or path is outside the
	// valid bounds for the operation.
	ErrOutOfRange = errors.New("out of range")

	// ErrNotFound indicates a value or path does not resolve to a node.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates an argument is malformed for the
	// operation, such as an empty Huffman frequency table.
	ErrInvalidArgument = errors.New("invalid argument")
)
