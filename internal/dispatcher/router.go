package dispatcher

import (
	"strings"
	"sync"

	"github.com/dshills/structlab/internal/dispatcher/handler"
)

// Router routes commands to handlers by namespace prefix, the part of
// the key before the first dot ("linear" in "linear.push").
type Router struct {
	mu         sync.RWMutex
	namespaces map[string]handler.NamespaceHandler
	fallback   handler.Handler
}

// NewRouter creates a new command router.
func NewRouter() *Router {
	return &Router{
		namespaces: make(map[string]handler.NamespaceHandler),
	}
}

// RegisterNamespace registers a handler for all commands in a namespace.
func (r *Router) RegisterNamespace(namespace string, h handler.NamespaceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[namespace] = h
}

// UnregisterNamespace removes a namespace handler.
func (r *Router) UnregisterNamespace(namespace string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.namespaces, namespace)
}

// SetFallback sets the handler for keys no namespace claims.
func (r *Router) SetFallback(h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = h
}

// Route finds the handler for a command key, or nil.
func (r *Router) Route(key string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if namespace := extractNamespace(key); namespace != "" {
		if h, ok := r.namespaces[namespace]; ok && h.CanHandle(key) {
			return handler.NewNamespaceAdapter(h)
		}
	}
	return r.fallback
}

// GetNamespaceHandler returns the handler registered for a namespace,
// or nil.
func (r *Router) GetNamespaceHandler(namespace string) handler.NamespaceHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namespaces[namespace]
}

// HasNamespace reports whether a handler is registered for the namespace.
func (r *Router) HasNamespace(namespace string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.namespaces[namespace]
	return ok
}

// Namespaces returns all registered namespace names.
func (r *Router) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.namespaces))
	for name := range r.namespaces {
		names = append(names, name)
	}
	return names
}

// CanRoute reports whether the router can handle the key.
func (r *Router) CanRoute(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if namespace := extractNamespace(key); namespace != "" {
		if h, ok := r.namespaces[namespace]; ok {
			return h.CanHandle(key)
		}
	}
	return r.fallback != nil
}

// extractNamespace returns the prefix before the first dot, or "" when
// the key has none.
func extractNamespace(key string) string {
	idx := strings.Index(key, ".")
	if idx < 0 {
		return ""
	}
	return key[:idx]
}
