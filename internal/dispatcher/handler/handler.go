// Package handler provides the handler interface and result types for
// command dispatch.
package handler

import (
	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/dispatcher/session"
)

// Handler processes a specific command or set of commands. Commands are
// routed by key, the "family.op" form produced by command.Key().
type Handler interface {
	// Handle executes the command against the session and returns a result.
	Handle(cmd command.Command, sess *session.Session) Result

	// CanHandle returns true if this handler can process the key.
	CanHandle(key string) bool

	// Priority returns the handler priority (higher = checked first).
	Priority() int
}

// HandlerFunc is a function adapter for the Handler interface.
type HandlerFunc struct {
	fn   func(cmd command.Command, sess *session.Session) Result
	prio int
}

// NewHandlerFunc creates a HandlerFunc from a function.
func NewHandlerFunc(fn func(cmd command.Command, sess *session.Session) Result) *HandlerFunc {
	return &HandlerFunc{fn: fn, prio: 0}
}

// NewHandlerFuncWithPriority creates a HandlerFunc with a specified priority.
func NewHandlerFuncWithPriority(fn func(cmd command.Command, sess *session.Session) Result, priority int) *HandlerFunc {
	return &HandlerFunc{fn: fn, prio: priority}
}

// Handle implements Handler.Handle.
func (f *HandlerFunc) Handle(cmd command.Command, sess *session.Session) Result {
	if f.fn == nil {
		return Errorf("handler function is nil")
	}
	return f.fn(cmd, sess)
}

// CanHandle implements Handler.CanHandle.
// HandlerFunc always returns true; caller must ensure correct routing.
func (f *HandlerFunc) CanHandle(key string) bool {
	return true
}

// Priority implements Handler.Priority.
func (f *HandlerFunc) Priority() int {
	return f.prio
}

// SimpleHandler wraps a function with an explicit command key.
type SimpleHandler struct {
	// Key is the command key this handler processes.
	Key string

	// Fn is the handler function.
	Fn func(cmd command.Command, sess *session.Session) Result

	// Prio is the handler priority.
	Prio int
}

// Handle implements Handler.Handle.
func (h *SimpleHandler) Handle(cmd command.Command, sess *session.Session) Result {
	if h.Fn == nil {
		return Errorf("handler function is nil")
	}
	return h.Fn(cmd, sess)
}

// CanHandle implements Handler.CanHandle.
func (h *SimpleHandler) CanHandle(key string) bool {
	return key == h.Key
}

// Priority implements Handler.Priority.
func (h *SimpleHandler) Priority() int {
	return h.Prio
}

// NamespaceHandler handles every operation of one command family.
// The namespace is the prefix before the first dot (e.g. "linear" in
// "linear.insert").
type NamespaceHandler interface {
	// HandleCommand handles a command within this namespace.
	HandleCommand(cmd command.Command, sess *session.Session) Result

	// CanHandle returns true if this handler can process the key.
	CanHandle(key string) bool

	// Namespace returns the namespace prefix (e.g. "linear", "tree").
	Namespace() string
}

// namespaceAdapter adapts NamespaceHandler to the Handler interface.
type namespaceAdapter struct {
	h NamespaceHandler
}

// NewNamespaceAdapter creates a Handler from a NamespaceHandler.
func NewNamespaceAdapter(h NamespaceHandler) Handler {
	return &namespaceAdapter{h: h}
}

func (a *namespaceAdapter) Handle(cmd command.Command, sess *session.Session) Result {
	return a.h.HandleCommand(cmd, sess)
}

func (a *namespaceAdapter) CanHandle(key string) bool {
	return a.h.CanHandle(key)
}

func (a *namespaceAdapter) Priority() int {
	return 0
}
