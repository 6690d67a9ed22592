package fittings

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/fittings/internal/ctxlog"
	"github.com/vk/fittings/internal/host"
	"github.com/vk/fittings/internal/property"
)

// setup evaluates the registries once and registers every entry with the
// host, keys in sorted order. Middleware first, then plugins, then listeners,
// then the Initialize hook. If any step fails, what was registered so far is
// rolled back and the error is returned.
func (f *Fittings) setup(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	if f.host == nil {
		logger.Debug("No host given, framework is detached.")
	} else {
		if err := f.wire(ctx); err != nil {
			f.rollback(ctx)
			return err
		}
		f.state = StateWired
		logger.Debug("Framework wired into host.", "middleware", len(f.middleware))
	}

	if f.def.Initialize != nil {
		logger.Debug("Running initialize hook.")
		if err := f.def.Initialize(ctx, f, f.host); err != nil {
			f.rollback(ctx)
			return fmt.Errorf("framework %q: initialize: %w", f.def.Name, err)
		}
	}

	f.state = StateActive
	if f.host == nil {
		logger.Debug("Framework active.")
	} else {
		logger.Info("Framework active.", "middleware", f.middleware)
	}
	return nil
}

func (f *Fittings) wire(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	middleware, err := f.Registry(ctx, PropertyMiddleware)
	if err != nil {
		return fmt.Errorf("framework %q: %w", f.def.Name, err)
	}
	for _, name := range middleware.Keys() {
		if err := f.host.Middleware().Register(name, middleware[name]); err != nil {
			return fmt.Errorf("framework %q: register middleware: %w", f.def.Name, err)
		}
		f.middleware = append(f.middleware, name)
		logger.Debug("Registered middleware.", "name", name)
	}

	plugins, err := f.Registry(ctx, PropertyUse)
	if err != nil {
		return fmt.Errorf("framework %q: %w", f.def.Name, err)
	}
	for _, name := range plugins.Keys() {
		if err := f.host.Plugins().Register(name, plugins[name]); err != nil {
			return fmt.Errorf("framework %q: register plugin: %w", f.def.Name, err)
		}
		logger.Debug("Registered plugin.", "name", name)
	}

	listeners, err := f.Registry(ctx, PropertyOn)
	if err != nil {
		return fmt.Errorf("framework %q: %w", f.def.Name, err)
	}
	for _, event := range listeners.Keys() {
		l, ok := asListener(listeners[event])
		if !ok {
			return fmt.Errorf("framework %q: listener for event %q has unsupported type %T", f.def.Name, event, listeners[event])
		}
		if err := f.host.Events().On(f.id, event, l); err != nil {
			return fmt.Errorf("framework %q: attach listener: %w", f.def.Name, err)
		}
		logger.Debug("Attached listener.", "event", event)
	}
	return nil
}

// rollback undoes a partial setup. Plugins stay registered.
func (f *Fittings) rollback(ctx context.Context) {
	if f.host == nil {
		return
	}
	logger := ctxlog.FromContext(ctx)
	for i := len(f.middleware) - 1; i >= 0; i-- {
		if err := f.host.Middleware().Unregister(f.middleware[i]); err != nil {
			logger.Warn("Rollback could not remove middleware.", "name", f.middleware[i], "error", err)
		}
	}
	f.middleware = nil
	f.host.Events().DetachAll(f.id)
}

// Destroy unregisters the middleware this instance registered, detaches its
// listeners and releases the host. Plugins remain installed because a host
// cannot remove them. Calling Destroy again is a no-op.
func (f *Fittings) Destroy(ctx context.Context) error {
	if f.state == StateDestroyed {
		return nil
	}
	logger := ctxlog.FromContext(ctx).With("framework", f.def.Name, "instance", f.id)

	var errs []error
	if f.host != nil {
		for i := len(f.middleware) - 1; i >= 0; i-- {
			name := f.middleware[i]
			if err := f.host.Middleware().Unregister(name); err != nil {
				errs = append(errs, fmt.Errorf("unregister middleware %q: %w", name, err))
				continue
			}
			logger.Debug("Unregistered middleware.", "name", name)
		}
		f.host.Events().DetachAll(f.id)
	}

	f.middleware = nil
	f.host = nil
	f.state = StateDestroyed
	logger.Info("Framework destroyed.")
	return errors.Join(errs...)
}

func asListener(v any) (host.Listener, bool) {
	switch l := v.(type) {
	case host.Listener:
		return l, l != nil
	case func(...any):
		return l, l != nil
	default:
		return nil, false
	}
}

var _ property.Owner = (*Fittings)(nil)
