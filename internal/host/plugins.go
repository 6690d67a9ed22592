package host

import (
	"fmt"
	"sort"
	"sync"
)

// Plugins is a write-once plugin registry.
type Plugins struct {
	owner Host

	mu      sync.RWMutex
	entries map[string]any
}

// NewPlugins returns a registry whose ServerPlugins are handed owner.
func NewPlugins(owner Host) *Plugins {
	return &Plugins{owner: owner, entries: make(map[string]any)}
}

// Register stores plugin under name. If the plugin implements ServerPlugin
// its Server hook runs before Register returns; a failing hook leaves the
// plugin unregistered.
func (p *Plugins) Register(name string, plugin any) error {
	if name == "" {
		return fmt.Errorf("plugin name must not be empty")
	}
	if plugin == nil {
		return fmt.Errorf("plugin %q: plugin is nil", name)
	}

	p.mu.Lock()
	if _, exists := p.entries[name]; exists {
		p.mu.Unlock()
		return fmt.Errorf("plugin %q: %w", name, ErrAlreadyRegistered)
	}
	p.entries[name] = plugin
	p.mu.Unlock()

	if sp, ok := plugin.(ServerPlugin); ok && p.owner != nil {
		if err := sp.Server(p.owner); err != nil {
			p.mu.Lock()
			delete(p.entries, name)
			p.mu.Unlock()
			return fmt.Errorf("plugin %q: server hook failed: %w", name, err)
		}
	}
	return nil
}

// Lookup returns the plugin registered under name.
func (p *Plugins) Lookup(name string) (any, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	plugin, ok := p.entries[name]
	return plugin, ok
}

// Names returns the registered plugin names, sorted.
func (p *Plugins) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.entries))
	for name := range p.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
