package dispatcher

import (
	"sort"
	"sync"

	"github.com/dshills/structlab/internal/dispatcher/handler"
)

// Registry manages handler registration by exact command key.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string][]handler.Handler // key -> handlers, sorted by priority
}

// NewRegistry creates a new handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string][]handler.Handler),
	}
}

// Register adds a handler for a command key. Multiple handlers can be
// registered for the same key; the highest priority wins at dispatch.
func (r *Registry) Register(key string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	handlers := append(r.handlers[key], h)
	sort.Slice(handlers, func(i, j int) bool {
		return handlers[i].Priority() > handlers[j].Priority()
	})
	r.handlers[key] = handlers
}

// Unregister removes all handlers for a command key.
func (r *Registry) Unregister(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, key)
}

// Get returns the highest priority handler for a key, or nil.
func (r *Registry) Get(key string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handlers := r.handlers[key]
	if len(handlers) == 0 {
		return nil
	}
	return handlers[0]
}

// GetAll returns all handlers for a key in priority order.
func (r *Registry) GetAll(key string) []handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handlers := make([]handler.Handler, len(r.handlers[key]))
	copy(handlers, r.handlers[key])
	return handlers
}

// Has reports whether any handler is registered for the key.
func (r *Registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers[key]) > 0
}

// List returns all registered command keys, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.handlers))
	for key := range r.handlers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Count returns the number of registered keys.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// Clear removes all registered handlers.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = make(map[string][]handler.Handler)
}
