package app

import (
	"io"
	"log/slog"

	"github.com/vk/fittings/internal/handlers"
	"github.com/vk/fittings/modules/health"
	"github.com/vk/fittings/modules/print"
	"github.com/vk/fittings/modules/requestlog"
	"github.com/vk/fittings/modules/socketio"
)

// coreModules is the definitive list of all modules that are compiled into
// the fittings binary. Printed events go to outW.
func coreModules(outW io.Writer, cfg *Config, logger *slog.Logger) []handlers.Module {
	return []handlers.Module{
		&print.Module{Out: outW},
		&requestlog.Module{},
		&health.Module{},
		&socketio.Module{URL: cfg.RelayURL, Logger: logger},
	}
}

// closer is implemented by modules holding connections.
type closer interface {
	Close()
}
