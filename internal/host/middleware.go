package host

import (
	"fmt"
	"net/http"
	"sync"
)

// MiddlewareFunc wraps an http.Handler.
type MiddlewareFunc func(next http.Handler) http.Handler

type middlewareEntry struct {
	name string
	fn   MiddlewareFunc
}

// MiddlewareChain is an ordered, named list of HTTP middleware. The first
// registered entry is the outermost wrapper.
type MiddlewareChain struct {
	mu      sync.RWMutex
	entries []middlewareEntry
}

// NewMiddlewareChain returns an empty chain.
func NewMiddlewareChain() *MiddlewareChain {
	return &MiddlewareChain{}
}

// Register appends handler under name. The handler must be a MiddlewareFunc
// or a func(http.Handler) http.Handler.
func (c *MiddlewareChain) Register(name string, handler any) error {
	if name == "" {
		return fmt.Errorf("middleware name must not be empty")
	}
	var fn MiddlewareFunc
	switch h := handler.(type) {
	case MiddlewareFunc:
		fn = h
	case func(http.Handler) http.Handler:
		fn = h
	default:
		return fmt.Errorf("middleware %q: unsupported handler type %T", name, handler)
	}
	if fn == nil {
		return fmt.Errorf("middleware %q: handler is nil", name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(name) >= 0 {
		return fmt.Errorf("middleware %q: %w", name, ErrAlreadyRegistered)
	}
	c.entries = append(c.entries, middlewareEntry{name: name, fn: fn})
	return nil
}

// Unregister removes the entry registered under name.
func (c *MiddlewareChain) Unregister(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(name)
	if i < 0 {
		return fmt.Errorf("middleware %q: %w", name, ErrNotRegistered)
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	return nil
}

// Names returns the registered names in chain order.
func (c *MiddlewareChain) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.name
	}
	return names
}

// Wrap applies the current chain around next.
func (c *MiddlewareChain) Wrap(next http.Handler) http.Handler {
	c.mu.RLock()
	entries := append([]middlewareEntry(nil), c.entries...)
	c.mu.RUnlock()

	h := next
	for i := len(entries) - 1; i >= 0; i-- {
		h = entries[i].fn(h)
	}
	return h
}

func (c *MiddlewareChain) indexOf(name string) int {
	for i, e := range c.entries {
		if e.name == name {
			return i
		}
	}
	return -1
}
