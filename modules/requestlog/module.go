// Package requestlog provides an HTTP middleware that logs every request with
// the logger carried by the request context.
package requestlog

import (
	"net/http"
	"time"

	"github.com/vk/fittings/internal/ctxlog"
	"github.com/vk/fittings/internal/handlers"
)

// Module implements the handlers.Module interface for this package.
type Module struct{}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs method, path, status and duration of each request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		ctxlog.FromContext(r.Context()).Info("Request served.",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// Register registers the handlers with the catalog.
func (m *Module) Register(c *handlers.Catalog) {
	c.RegisterMiddleware("RequestLogger", RequestLogger)
}
