// Package health provides a plugin that adds a status route to hosts that
// can serve HTTP.
package health

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vk/fittings/internal/handlers"
	"github.com/vk/fittings/internal/host"
)

// Pattern is the route the plugin serves.
const Pattern = "/status"

// Plugin reports the host's installed plugins on Pattern.
type Plugin struct{}

// Server implements host.ServerPlugin.
func (p *Plugin) Server(h host.Host) error {
	router, ok := h.(host.Router)
	if !ok {
		return fmt.Errorf("health plugin needs a host that serves routes, got %T", h)
	}
	return router.Handle(Pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var names []string
		if lister, ok := h.Plugins().(interface{ Names() []string }); ok {
			names = lister.Names()
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "ok",
			"plugins": names,
		})
	}))
}

// Module implements the handlers.Module interface for this package.
type Module struct{}

// Register registers the handlers with the catalog.
func (m *Module) Register(c *handlers.Catalog) {
	c.RegisterPlugin("HealthPlugin", &Plugin{})
}
