// Package global implements the commands that span both structure
// families. The only one today is the bare clear, which destroys
// whatever lives in the linear and tree slots and cancels any build in
// progress.
package global

import (
	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/dispatcher/handler"
	"github.com/dshills/structlab/internal/dispatcher/session"
)

// KeyClear is the dispatch key for the bare clear command.
const KeyClear = "global.clear"

// Handler executes global commands against a session.
type Handler struct{}

// NewHandler creates a global command handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the command namespace this handler serves.
func (h *Handler) Namespace() string {
	return "global"
}

// CanHandle reports whether the key names a global operation.
func (h *Handler) CanHandle(key string) bool {
	return key == KeyClear
}

// HandleCommand executes a global command.
func (h *Handler) HandleCommand(cmd command.Command, sess *session.Session) handler.Result {
	switch cmd.Op {
	case command.OpClear:
		return h.clear(sess)
	default:
		return handler.Errorf("unknown global operation: %s", cmd.Op)
	}
}

// clear always succeeds, even when both slots are already empty.
func (h *Handler) clear(sess *session.Session) handler.Result {
	sess.ClearAll()
	return handler.SuccessWithMessage("cleared all structures").
		WithTarget(command.FamilyGlobal)
}
