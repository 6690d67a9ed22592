package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"sync"

	"github.com/vk/fittings/internal/config"
	"github.com/vk/fittings/internal/ctxlog"
	"github.com/vk/fittings/internal/fittings"
	"github.com/vk/fittings/internal/handlers"
	"github.com/vk/fittings/internal/host"
	"github.com/vk/fittings/internal/property"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx       context.Context
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	model     *config.Model
	framework *config.Framework
	catalog   *handlers.Catalog
	modules   []handlers.Module

	mu         sync.Mutex
	host       *host.Local
	active     *fittings.Fittings
	httpServer *http.Server
}

// NewApp is the constructor for the main application. Results are written to
// outW and logs to logW. It loads the declarations, picks the configured
// framework and registers the Go modules; an empty module list means the
// core modules.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, modules ...handlers.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, cfg.Declarations...)
	if err != nil {
		return nil, fmt.Errorf("failed to load declarations: %w", err)
	}
	logger.Debug("Declarations loaded.", "frameworks", model.Names())

	fw, err := model.Framework(cfg.Framework)
	if err != nil {
		return nil, err
	}

	catalog := handlers.New()
	if len(modules) == 0 {
		modules = coreModules(outW, cfg, logger)
	}
	for _, mod := range modules {
		mod.Register(catalog)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	return &App{
		ctx:       ctx,
		outW:      outW,
		logger:    logger,
		config:    cfg,
		model:     model,
		framework: fw,
		catalog:   catalog,
		modules:   modules,
	}, nil
}

// Framework returns the selected declaration.
func (a *App) Framework() *config.Framework {
	return a.framework
}

// Catalog returns the application's handler catalog. This is primarily for testing.
func (a *App) Catalog() *handlers.Catalog {
	return a.catalog
}

// Definition binds the selected declaration to Go handlers: registry entries
// naming catalog handlers are replaced by the handlers, and the initializer
// name is looked up.
func (a *App) Definition() (fittings.Definition, error) {
	fw := a.framework
	def := fittings.Definition{
		Name:       fw.Name,
		Directory:  fw.Directory,
		TagPrefix:  fw.TagPrefix,
		Properties: maps.Clone(fw.Properties),
	}
	if def.Properties == nil {
		def.Properties = make(map[string]property.Value)
	}

	bindings := map[string]handlers.Kind{
		fittings.PropertyMiddleware: handlers.KindMiddleware,
		fittings.PropertyUse:        handlers.KindPlugin,
		fittings.PropertyOn:         handlers.KindListener,
	}
	for name, kind := range bindings {
		rec, ok := def.Properties[name].(property.Record)
		if !ok {
			continue
		}
		bound, err := a.catalog.Bind(kind, rec)
		if err != nil {
			return fittings.Definition{}, fmt.Errorf("framework %q: %w", fw.Name, err)
		}
		def.Properties[name] = bound
	}

	if fw.Initialize != "" {
		initFn, err := a.catalog.Initializer(fw.Initialize)
		if err != nil {
			return fittings.Definition{}, fmt.Errorf("framework %q: %w", fw.Name, err)
		}
		def.Initialize = initFn
	}
	return def, nil
}

// withDetached runs fn against an instance that is not wired into any host,
// destroying it afterwards.
func (a *App) withDetached(ctx context.Context, fn func(ctx context.Context, f *fittings.Fittings) error) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	def, err := a.Definition()
	if err != nil {
		return err
	}
	f, err := fittings.New(ctx, def, nil)
	if err != nil {
		return err
	}
	defer f.Destroy(ctx)
	return fn(ctx, f)
}

// Activate constructs the framework wired into the app's host. It can be
// called once; Close destroys the instance.
func (a *App) Activate(ctx context.Context) (*fittings.Fittings, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active != nil {
		return nil, fmt.Errorf("framework %q is already active", a.framework.Name)
	}

	ctx = ctxlog.WithLogger(ctx, a.logger)
	def, err := a.Definition()
	if err != nil {
		return nil, err
	}

	h := host.NewLocal()
	if err := h.Handle("/health", http.HandlerFunc(a.healthHandler)); err != nil {
		return nil, err
	}
	f, err := fittings.New(ctx, def, h)
	if err != nil {
		return nil, err
	}
	if err := h.Handle("/", a.rootHandler(f)); err != nil {
		_ = f.Destroy(ctx)
		return nil, err
	}

	a.host, a.active = h, f
	return f, nil
}

// Handler returns the active host as an http.Handler, or nil before Activate.
func (a *App) Handler() http.Handler {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.host == nil {
		return nil
	}
	return a.host
}

// Close destroys the active framework, if any, then releases module
// connections.
func (a *App) Close(ctx context.Context) error {
	a.mu.Lock()
	f := a.active
	a.active, a.host = nil, nil
	a.mu.Unlock()

	var err error
	if f != nil {
		err = f.Destroy(ctxlog.WithLogger(ctx, a.logger))
	}
	for _, mod := range a.modules {
		if c, ok := mod.(closer); ok {
			c.Close()
		}
	}
	return err
}
