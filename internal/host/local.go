package host

import (
	"fmt"
	"net/http"
	"sync"
)

// Local is an in-memory Host that also serves HTTP: requests pass through the
// middleware chain before reaching routes added by plugins.
type Local struct {
	middleware *MiddlewareChain
	plugins    *Plugins
	events     *Bus
	mux        *http.ServeMux

	mu     sync.Mutex
	routes map[string]struct{}
}

// NewLocal returns an empty host.
func NewLocal() *Local {
	l := &Local{
		middleware: NewMiddlewareChain(),
		events:     NewBus(),
		mux:        http.NewServeMux(),
		routes:     make(map[string]struct{}),
	}
	l.plugins = NewPlugins(l)
	return l
}

// Middleware implements Host.
func (l *Local) Middleware() MiddlewareRegistry { return l.middleware }

// Plugins implements Host.
func (l *Local) Plugins() PluginRegistry { return l.plugins }

// Events implements Host.
func (l *Local) Events() EventBus { return l.events }

// Chain exposes the concrete middleware chain.
func (l *Local) Chain() *MiddlewareChain { return l.middleware }

// PluginSet exposes the concrete plugin registry.
func (l *Local) PluginSet() *Plugins { return l.plugins }

// Bus exposes the concrete event bus.
func (l *Local) Bus() *Bus { return l.events }

// Handle implements Router. A pattern can be added once.
func (l *Local) Handle(pattern string, handler http.Handler) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.routes[pattern]; ok {
		return fmt.Errorf("route %q: %w", pattern, ErrAlreadyRegistered)
	}
	l.mux.Handle(pattern, handler)
	l.routes[pattern] = struct{}{}
	return nil
}

// ServeHTTP runs the request through the middleware chain as it is at the
// time of the request, then through the route mux.
func (l *Local) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l.middleware.Wrap(l.mux).ServeHTTP(w, r)
}
