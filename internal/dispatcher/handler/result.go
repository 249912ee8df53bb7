package handler

import (
	"fmt"

	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/snapshot"
)

// Status represents the outcome of command execution.
type Status uint8

const (
	// StatusOK indicates the command executed successfully.
	StatusOK Status = iota
	// StatusNoOp indicates the command was valid but had no effect.
	StatusNoOp
	// StatusError indicates the command failed.
	StatusError
	// StatusQueued indicates the command was deferred behind a build in
	// progress and will be replayed when the build completes.
	StatusQueued
	// StatusCancelled indicates the command was cancelled by a hook.
	StatusCancelled
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	case StatusQueued:
		return "queued"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Well-known Data keys.
const (
	// DataSnapshot holds the post-command snapshot.Linear or snapshot.Tree.
	DataSnapshot = "snapshot"

	// DataTrace holds the *snapshot.Trace of a multi-step operation.
	DataTrace = "trace"
)

// Result is the outcome of executing a command.
type Result struct {
	// Status indicates success, failure, or deferral.
	Status Status

	// Error holds the failure cause when Status is StatusError.
	Error error

	// Message is an optional human-readable description.
	Message string

	// Target is the family whose state the command addressed.
	// FamilyUnknown when the command never reached a family.
	Target command.Family

	// Data holds structured payloads keyed by name: snapshots, traces,
	// read values, code tables.
	Data map[string]any
}

// Success returns a successful result.
func Success() Result {
	return Result{Status: StatusOK}
}

// SuccessWithMessage returns a successful result with a message.
func SuccessWithMessage(msg string) Result {
	return Result{Status: StatusOK, Message: msg}
}

// Successf returns a successful result with a formatted message.
func Successf(format string, args ...any) Result {
	return Result{Status: StatusOK, Message: fmt.Sprintf(format, args...)}
}

// SuccessWithData returns a successful result with a single data entry.
func SuccessWithData(key string, value any) Result {
	return Success().WithData(key, value)
}

// NoOp returns a result indicating the command had no effect.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// NoOpWithMessage returns a no-effect result with a message.
func NoOpWithMessage(msg string) Result {
	return Result{Status: StatusNoOp, Message: msg}
}

// Queued returns a result for a command deferred behind a build.
func Queued() Result {
	return Result{Status: StatusQueued}
}

// QueuedWithMessage returns a deferred result with a message.
func QueuedWithMessage(msg string) Result {
	return Result{Status: StatusQueued, Message: msg}
}

// Error returns a failed result wrapping err.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf returns a failed result with a formatted error.
func Errorf(format string, args ...any) Result {
	return Result{Status: StatusError, Error: fmt.Errorf(format, args...)}
}

// Cancelled returns a cancelled result.
func Cancelled() Result {
	return Result{Status: StatusCancelled}
}

// CancelledWithMessage returns a cancelled result with a message.
func CancelledWithMessage(msg string) Result {
	return Result{Status: StatusCancelled, Message: msg}
}

// WithMessage returns a copy of the result with the message set.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithTarget returns a copy of the result with the affected family set.
func (r Result) WithTarget(f command.Family) Result {
	r.Target = f
	return r
}

// WithData returns a copy of the result with a data entry added.
func (r Result) WithData(key string, value any) Result {
	if r.Data == nil {
		r.Data = make(map[string]any)
	}
	r.Data[key] = value
	return r
}

// WithLinearSnapshot returns a copy carrying the post-command linear state.
func (r Result) WithLinearSnapshot(s snapshot.Linear) Result {
	return r.WithData(DataSnapshot, s)
}

// WithTreeSnapshot returns a copy carrying the post-command tree state.
func (r Result) WithTreeSnapshot(s snapshot.Tree) Result {
	return r.WithData(DataSnapshot, s)
}

// WithTrace returns a copy carrying the step trace.
func (r Result) WithTrace(t *snapshot.Trace) Result {
	return r.WithData(DataTrace, t)
}

// IsOK reports whether the command succeeded, counting no-ops as success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK || r.Status == StatusNoOp
}

// IsError reports whether the command failed.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// GetData returns a data entry by key.
func (r Result) GetData(key string) (any, bool) {
	v, ok := r.Data[key]
	return v, ok
}

// GetString returns a string-typed data entry by key.
func (r Result) GetString(key string) (string, bool) {
	if v, ok := r.Data[key]; ok {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

// GetInt returns an int-typed data entry by key.
func (r Result) GetInt(key string) (int, bool) {
	if v, ok := r.Data[key]; ok {
		if n, ok := v.(int); ok {
			return n, true
		}
	}
	return 0, false
}

// GetBool returns a bool-typed data entry by key.
func (r Result) GetBool(key string) (bool, bool) {
	if v, ok := r.Data[key]; ok {
		if b, ok := v.(bool); ok {
			return b, true
		}
	}
	return false, false
}

// LinearSnapshot returns the attached linear snapshot, if any.
func (r Result) LinearSnapshot() (snapshot.Linear, bool) {
	v, ok := r.Data[DataSnapshot]
	if !ok {
		return snapshot.Linear{}, false
	}
	s, ok := v.(snapshot.Linear)
	return s, ok
}

// TreeSnapshot returns the attached tree snapshot, if any.
func (r Result) TreeSnapshot() (snapshot.Tree, bool) {
	v, ok := r.Data[DataSnapshot]
	if !ok {
		return snapshot.Tree{}, false
	}
	s, ok := v.(snapshot.Tree)
	return s, ok
}

// Trace returns the attached step trace, if any.
func (r Result) Trace() (*snapshot.Trace, bool) {
	v, ok := r.Data[DataTrace]
	if !ok {
		return nil, false
	}
	t, ok := v.(*snapshot.Trace)
	return t, ok
}

// Outcome maps the status onto the two-valued reporting contract:
// "error" for StatusError, "success" for everything else.
func (r Result) Outcome() string {
	if r.Status == StatusError {
		return "error"
	}
	return "success"
}

// TargetString returns the affected family for event records: "linear",
// "tree", or "null" when no family was touched.
func (r Result) TargetString() string {
	switch r.Target {
	case command.FamilyLinear:
		return "linear"
	case command.FamilyTree:
		return "tree"
	default:
		return "null"
	}
}
