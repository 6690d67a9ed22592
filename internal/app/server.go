package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/vk/fittings/internal/ctxlog"
	"github.com/vk/fittings/internal/fittings"
	"github.com/vk/fittings/internal/property"
)

// RequestEvent is emitted on the host's bus for every request reaching the
// framework's root route, with the method and path as arguments.
const RequestEvent = "request"

// healthHandler answers liveness probes.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctxlog.FromContext(r.Context()).Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// rootHandler renders the bootstrap property with the query string as data.
func (a *App) rootHandler(f *fittings.Fittings) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if h := f.Host(); h != nil {
			h.Events().Emit(RequestEvent, r.Method, r.URL.Path)
		}

		data := make(property.Data)
		for key, values := range r.URL.Query() {
			if len(values) > 0 {
				data[key] = values[0]
			}
		}

		body, err := f.Render(ctx, fittings.PropertyBootstrap, data)
		if err != nil {
			ctxlog.FromContext(ctx).Error("Render failed.", "error", err)
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, body)
	})
}

// Serve activates the framework and serves HTTP on the configured port until
// ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", a.config.Port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return a.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener. The framework is destroyed
// after the server has shut down.
func (a *App) ServeListener(ctx context.Context, ln net.Listener) error {
	logger := a.logger
	if _, err := a.Activate(ctx); err != nil {
		ln.Close()
		return err
	}

	srv := &http.Server{
		Handler:     a.Handler(),
		BaseContext: func(net.Listener) context.Context { return a.ctx },
	}
	a.mu.Lock()
	a.httpServer = srv
	a.mu.Unlock()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", fmt.Sprintf("http://%s/", ln.Addr()))
		serveErr <- srv.Serve(ln)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("server failed: %w", err)
		}
	}

	if err := a.shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	if err := a.Close(context.Background()); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func (a *App) shutdown() error {
	a.mu.Lock()
	srv := a.httpServer
	a.httpServer = nil
	a.mu.Unlock()

	if srv == nil {
		a.logger.Debug("Server was not running.")
		return nil
	}

	ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()

	a.logger.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		a.logger.Error("Server shutdown failed", "error", err)
		return err
	}
	a.logger.Debug("Server shut down gracefully.")
	return nil
}
