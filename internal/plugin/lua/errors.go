package lua

import "errors"

// Errors returned by the executor.
var (
	// ErrExecutorClosed indicates the executor has been closed.
	ErrExecutorClosed = errors.New("lua executor is closed")

	// ErrQueueFull indicates the call queue is at capacity.
	ErrQueueFull = errors.New("lua executor queue full")
)
