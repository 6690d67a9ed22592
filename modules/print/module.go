package print

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/vk/fittings/internal/ctxlog"
	"github.com/vk/fittings/internal/fittings"
	"github.com/vk/fittings/internal/handlers"
	"github.com/vk/fittings/internal/host"
)

// Module implements the handlers.Module interface for this package.
type Module struct {
	// Out receives printed events. Defaults to os.Stdout.
	Out io.Writer

	mu sync.Mutex
}

// PrintEvent returns a listener that writes each event's arguments on one line.
func (m *Module) PrintEvent() host.Listener {
	return func(args ...any) {
		m.mu.Lock()
		defer m.mu.Unlock()

		out := m.Out
		if out == nil {
			out = os.Stdout
		}
		if len(args) == 0 {
			fmt.Fprintln(out, "      (no arguments)")
			return
		}
		for i, arg := range args {
			fmt.Fprintf(out, "      [%d] = %v\n", i, arg)
		}
	}
}

// AnnounceFramework is an initializer that logs the framework once it is wired.
func AnnounceFramework(ctx context.Context, self *fittings.Fittings, _ host.Host) error {
	ctxlog.FromContext(ctx).Info("Framework ready.",
		"framework", self.Name(),
		"directory", self.Directory(),
		"properties", self.Properties(),
	)
	return nil
}

// Register registers the handlers with the catalog.
func (m *Module) Register(c *handlers.Catalog) {
	c.RegisterListener("PrintEvent", m.PrintEvent())
	c.RegisterInitializer("AnnounceFramework", AnnounceFramework)
}
