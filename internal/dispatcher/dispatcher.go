package dispatcher

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/dispatcher/handler"
	"github.com/dshills/structlab/internal/dispatcher/session"
)

// Dispatcher routes commands to handlers and executes them against a
// session.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry
	router   *Router
	session  *session.Session

	config  Config
	metrics *Metrics

	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// New creates a dispatcher with the given configuration and a fresh
// session.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		router:   NewRouter(),
		session:  session.New(),
		config:   config,
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// Session returns the session commands execute against.
func (d *Dispatcher) Session() *session.Session {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.session
}

// SetSession replaces the session.
func (d *Dispatcher) SetSession(sess *session.Session) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.session = sess
}

// Dispatch executes one command and returns its result. Tree commands
// arriving while a build is in progress are queued rather than executed;
// clear is the exception, it cancels the build.
func (d *Dispatcher) Dispatch(cmd command.Command) handler.Result {
	startTime := time.Now()

	d.mu.RLock()
	sess := d.session
	d.mu.RUnlock()

	if sess == nil {
		return handler.Error(ErrNoSession)
	}

	result := d.dispatchInternal(cmd, sess)

	if d.metrics != nil {
		d.metrics.RecordDispatch(cmd.Key(), time.Since(startTime), result.Status)
	}
	return result
}

// dispatchInternal is the core dispatch logic.
func (d *Dispatcher) dispatchInternal(cmd command.Command, sess *session.Session) handler.Result {
	if !d.runPreHooks(&cmd, sess) {
		result := handler.CancelledWithMessage("cancelled by hook")
		d.runPostHooks(&cmd, sess, &result)
		return result
	}

	if result, queued := d.gateForBuild(cmd, sess); queued {
		d.runPostHooks(&cmd, sess, &result)
		return result
	}

	h := d.router.Route(cmd.Key())
	if h == nil {
		h = d.registry.Get(cmd.Key())
	}

	var result handler.Result
	switch {
	case h == nil:
		result = handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, cmd.Key()))
	case d.config.RecoverFromPanic:
		result = d.executeWithRecovery(h, cmd, sess)
	default:
		result = h.Handle(cmd, sess)
	}

	d.runPostHooks(&cmd, sess, &result)
	return result
}

// gateForBuild queues tree commands that arrive while a build is in
// progress. Returns the queued (or queue-full) result and true when the
// command was intercepted.
func (d *Dispatcher) gateForBuild(cmd command.Command, sess *session.Session) (handler.Result, bool) {
	if !sess.Building() {
		return handler.Result{}, false
	}
	if cmd.Family != command.FamilyTree || cmd.Op == command.OpClear {
		return handler.Result{}, false
	}

	build := sess.Build()
	if !build.Enqueue(cmd, d.config.BuildQueueLimit) {
		err := fmt.Errorf("%w: limit %d reached", session.ErrQueueFull, d.config.BuildQueueLimit)
		return handler.Error(err), true
	}

	result := handler.QueuedWithMessage(fmt.Sprintf("queued %s until the build completes", cmd.Key())).
		WithTarget(command.FamilyTree).
		WithData("pending", len(build.Queue))
	return result, true
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, cmd command.Command, sess *session.Session) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			result = handler.Errorf("handler panic for %s: %v\n%s", cmd.Key(), r, string(stack[:n]))

			if d.metrics != nil {
				d.metrics.RecordPanic(cmd.Key())
			}
		}
	}()

	return h.Handle(cmd, sess)
}

// RegisterHandler registers a handler for an exact command key.
func (d *Dispatcher) RegisterHandler(key string, h handler.Handler) {
	d.registry.Register(key, h)
}

// RegisterHandlerFunc registers a handler function for a command key.
func (d *Dispatcher) RegisterHandlerFunc(key string, fn func(command.Command, *session.Session) handler.Result) {
	d.registry.Register(key, handler.NewHandlerFunc(fn))
}

// RegisterNamespace registers a namespace handler.
func (d *Dispatcher) RegisterNamespace(namespace string, h handler.NamespaceHandler) {
	d.router.RegisterNamespace(namespace, h)
}

// UnregisterHandler removes all handlers for a command key.
func (d *Dispatcher) UnregisterHandler(key string) {
	d.registry.Unregister(key)
}

// RegisterPreHook registers a pre-dispatch hook.
func (d *Dispatcher) RegisterPreHook(hook PreDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preHooks = append(d.preHooks, hook)
}

// RegisterPostHook registers a post-dispatch hook.
func (d *Dispatcher) RegisterPostHook(hook PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, hook)
}

// runPreHooks runs all pre-dispatch hooks. Returns false if any hook
// cancels the command.
func (d *Dispatcher) runPreHooks(cmd *command.Command, sess *session.Session) bool {
	d.mu.RLock()
	hooks := make([]PreDispatchHook, len(d.preHooks))
	copy(hooks, d.preHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(cmd, sess) {
			return false
		}
	}
	return true
}

// runPostHooks runs all post-dispatch hooks.
func (d *Dispatcher) runPostHooks(cmd *command.Command, sess *session.Session, result *handler.Result) {
	d.mu.RLock()
	hooks := make([]PostDispatchHook, len(d.postHooks))
	copy(hooks, d.postHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(cmd, sess, result)
	}
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Router returns the command router.
func (d *Dispatcher) Router() *Router {
	return d.router
}

// Metrics returns the metrics collector, nil when disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
