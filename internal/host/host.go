package host

import (
	"errors"
	"net/http"
)

// ErrNotRegistered is returned when removing a name the registry does not hold.
var ErrNotRegistered = errors.New("not registered")

// ErrAlreadyRegistered is returned when a name is registered twice.
var ErrAlreadyRegistered = errors.New("already registered")

// Listener is an event handler.
type Listener func(args ...any)

// MiddlewareRegistry stores named middleware.
type MiddlewareRegistry interface {
	Register(name string, handler any) error
	Unregister(name string) error
}

// PluginRegistry stores named plugins. Plugins cannot be unregistered.
type PluginRegistry interface {
	Register(name string, plugin any) error
}

// EventBus dispatches named events. Listeners are registered on behalf of an
// owner so that everything one owner attached can be detached at once.
type EventBus interface {
	On(owner, event string, l Listener) error
	Emit(event string, args ...any)
	DetachAll(owner string)
}

// Host is the object that owns the registries.
type Host interface {
	Middleware() MiddlewareRegistry
	Plugins() PluginRegistry
	Events() EventBus
}

// ServerPlugin is implemented by plugins that want the host on registration.
type ServerPlugin interface {
	Server(h Host) error
}

// Router is implemented by hosts that accept extra HTTP routes.
type Router interface {
	Handle(pattern string, handler http.Handler) error
}
