package lua

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/structlab/internal/dispatcher"
)

// DefaultQueueSize is the call buffer depth.
const DefaultQueueSize = 16

// call is one queued Lua operation and its reply channel.
type call struct {
	fn     func(L *lua.LState) error
	result chan error
}

// Executor serializes all Lua operations through a single goroutine.
//
// The LState is created on that goroutine, lives there for the life of
// the executor, and is closed when the executor closes. Do round-trips
// a request; the request function must not retain the state.
type Executor struct {
	d       *dispatcher.Dispatcher
	queue   chan *call
	done    chan struct{}
	closed  atomic.Bool
	once    sync.Once
	wg      sync.WaitGroup
	timeout time.Duration
}

// Option configures an Executor.
type Option func(*Executor)

// WithTimeout bounds each RunString and RunFile call. It applies only
// when the caller's context carries no deadline of its own. Lua code
// that never calls back into Go cannot be interrupted mid-run, so the
// bound is best-effort.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithQueueSize sets the call buffer depth.
func WithQueueSize(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.queue = make(chan *call, n)
		}
	}
}

// NewExecutor creates an executor whose lab module drives d. The caller
// must Close it.
func NewExecutor(d *dispatcher.Dispatcher, opts ...Option) *Executor {
	e := &Executor{
		d:     d,
		queue: make(chan *call, DefaultQueueSize),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.wg.Add(1)
	go e.loop()
	return e
}

// loop owns the Lua state: it creates it, installs the lab module, and
// executes queued calls until Close.
func (e *Executor) loop() {
	defer e.wg.Done()

	L := newState()
	defer L.Close()
	if e.d != nil {
		registerLab(L, e.d)
	}

	for {
		select {
		case <-e.done:
			e.drain()
			return
		case c := <-e.queue:
			c.result <- runCall(L, c.fn)
			close(c.result)
		}
	}
}

// runCall executes one operation with panic recovery.
func runCall(L *lua.LState, fn func(L *lua.LState) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case error:
				err = v
			case string:
				err = errors.New(v)
			default:
				err = errors.New("lua panic")
			}
		}
	}()
	return fn(L)
}

// drain fails every queued call after Close.
func (e *Executor) drain() {
	for {
		select {
		case c := <-e.queue:
			c.result <- ErrExecutorClosed
			close(c.result)
		default:
			return
		}
	}
}

// Do runs fn on the executor goroutine and returns its error. It blocks
// until the call completes, the context is cancelled, or the executor
// closes.
func (e *Executor) Do(ctx context.Context, fn func(L *lua.LState) error) error {
	if e.closed.Load() {
		return ErrExecutorClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	c := &call{fn: fn, result: make(chan error, 1)}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-e.done:
		return ErrExecutorClosed
	case e.queue <- c:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err, ok := <-c.result:
		if !ok {
			return ErrExecutorClosed
		}
		return err
	}
}

// RunString executes Lua source text.
func (e *Executor) RunString(ctx context.Context, code string) error {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	return e.Do(ctx, func(L *lua.LState) error {
		return L.DoString(code)
	})
}

// RunFile executes the Lua file at path.
func (e *Executor) RunFile(ctx context.Context, path string) error {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	return e.Do(ctx, func(L *lua.LState) error {
		return L.DoFile(path)
	})
}

// withTimeout applies the configured bound when the context has none.
func (e *Executor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return ctx, func() {}
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.timeout)
}

// Close stops the executor and releases the Lua state. Queued calls
// fail with ErrExecutorClosed.
func (e *Executor) Close() {
	e.once.Do(func() {
		e.closed.Store(true)
		close(e.done)
	})
	e.wg.Wait()
	// The loop has exited; fail anything that slipped in between its
	// drain and ours.
	e.drain()
}

// IsClosed reports whether Close has been called.
func (e *Executor) IsClosed() bool {
	return e.closed.Load()
}
