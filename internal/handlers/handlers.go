// Package handlers holds the catalog of compiled Go handlers that framework
// declarations refer to by name.
//
// A declaration file can only carry strings, so a registry entry such as
// `middleware = { log = "RequestLogger" }` names a handler. Modules register
// their handlers into a Catalog at startup; Bind swaps the names in a
// registry record for the Go values they stand for.
package handlers

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/fittings/internal/fittings"
	"github.com/vk/fittings/internal/host"
	"github.com/vk/fittings/internal/property"
)

// Kind is the category a handler is registered under.
type Kind string

const (
	KindMiddleware  Kind = "middleware"
	KindPlugin      Kind = "plugin"
	KindListener    Kind = "listener"
	KindInitializer Kind = "initializer"
)

// Module is implemented by every package that contributes handlers.
type Module interface {
	Register(c *Catalog)
}

// UnknownHandlerError is returned when a declaration names a handler nobody
// registered.
type UnknownHandlerError struct {
	Kind Kind
	Name string
}

// Error implements the error interface.
func (e *UnknownHandlerError) Error() string {
	return fmt.Sprintf("no %s handler registered under %q", e.Kind, e.Name)
}

// Catalog maps handler names to Go values, per kind.
type Catalog struct {
	all map[Kind]map[string]any
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{all: map[Kind]map[string]any{
		KindMiddleware:  {},
		KindPlugin:      {},
		KindListener:    {},
		KindInitializer: {},
	}}
}

// RegisterMiddleware registers an HTTP middleware.
func (c *Catalog) RegisterMiddleware(name string, fn host.MiddlewareFunc) {
	c.register(KindMiddleware, name, fn)
}

// RegisterPlugin registers a plugin value.
func (c *Catalog) RegisterPlugin(name string, plugin any) {
	c.register(KindPlugin, name, plugin)
}

// RegisterListener registers an event listener.
func (c *Catalog) RegisterListener(name string, l host.Listener) {
	c.register(KindListener, name, l)
}

// RegisterInitializer registers a setup hook.
func (c *Catalog) RegisterInitializer(name string, fn fittings.Initializer) {
	c.register(KindInitializer, name, fn)
}

// register panics on duplicates: two modules claiming one name is a
// programming error that must surface at startup.
func (c *Catalog) register(kind Kind, name string, v any) {
	if _, exists := c.all[kind][name]; exists {
		panic(fmt.Sprintf("%s handler with name '%s' already registered", kind, name))
	}
	slog.Debug("Registering handler.", "kind", kind, "name", name)
	c.all[kind][name] = v
}

// Lookup returns the handler registered under name.
func (c *Catalog) Lookup(kind Kind, name string) (any, error) {
	v, ok := c.all[kind][name]
	if !ok {
		return nil, &UnknownHandlerError{Kind: kind, Name: name}
	}
	return v, nil
}

// Names lists the registered handler names of a kind, sorted.
func (c *Catalog) Names(kind Kind) []string {
	names := make([]string, 0, len(c.all[kind]))
	for name := range c.all[kind] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Initializer returns the initializer registered under name.
func (c *Catalog) Initializer(name string) (fittings.Initializer, error) {
	v, err := c.Lookup(KindInitializer, name)
	if err != nil {
		return nil, err
	}
	return v.(fittings.Initializer), nil
}

// Bind returns a copy of rec where every string value is replaced by the
// handler of the given kind registered under that name. Non-string values
// are already Go handlers and are kept.
func (c *Catalog) Bind(kind Kind, rec property.Record) (property.Record, error) {
	out := make(property.Record, len(rec))
	for key, v := range rec {
		name, ok := v.(string)
		if !ok {
			out[key] = v
			continue
		}
		handler, err := c.Lookup(kind, name)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", kind, key, err)
		}
		out[key] = handler
	}
	return out, nil
}
