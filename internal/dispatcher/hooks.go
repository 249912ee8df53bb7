package dispatcher

import (
	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/dispatcher/handler"
	"github.com/dshills/structlab/internal/dispatcher/session"
)

// PreDispatchHook is called before a command is dispatched. It may
// modify the command. Returning false cancels the dispatch.
type PreDispatchHook interface {
	PreDispatch(cmd *command.Command, sess *session.Session) bool
}

// PostDispatchHook is called after a command is dispatched. It may
// inspect or modify the result. Queued and cancelled commands pass
// through here too, so a hook sees every command that reached the
// dispatcher.
type PostDispatchHook interface {
	PostDispatch(cmd *command.Command, sess *session.Session, result *handler.Result)
}

// PreDispatchFunc is a function adapter for PreDispatchHook.
type PreDispatchFunc func(cmd *command.Command, sess *session.Session) bool

// PreDispatch implements PreDispatchHook.
func (f PreDispatchFunc) PreDispatch(cmd *command.Command, sess *session.Session) bool {
	return f(cmd, sess)
}

// PostDispatchFunc is a function adapter for PostDispatchHook.
type PostDispatchFunc func(cmd *command.Command, sess *session.Session, result *handler.Result)

// PostDispatch implements PostDispatchHook.
func (f PostDispatchFunc) PostDispatch(cmd *command.Command, sess *session.Session, result *handler.Result) {
	f(cmd, sess, result)
}

// LoggingHook logs every dispatch through the supplied printf-style
// function.
type LoggingHook struct {
	LogFunc func(format string, args ...any)
}

// NewLoggingHook creates a logging hook.
func NewLoggingHook(logFunc func(format string, args ...any)) *LoggingHook {
	return &LoggingHook{LogFunc: logFunc}
}

// PreDispatch logs the command being dispatched.
func (h *LoggingHook) PreDispatch(cmd *command.Command, sess *session.Session) bool {
	if h.LogFunc != nil {
		h.LogFunc("dispatching %s", cmd.Key())
	}
	return true
}

// PostDispatch logs the dispatch result.
func (h *LoggingHook) PostDispatch(cmd *command.Command, sess *session.Session, result *handler.Result) {
	if h.LogFunc != nil {
		h.LogFunc("dispatched %s -> %s", cmd.Key(), result.Status)
	}
}
