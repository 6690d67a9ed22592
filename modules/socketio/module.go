// Package socketio relays host events to a remote Socket.IO server.
package socketio

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/vk/fittings/internal/handlers"
	"github.com/vk/fittings/internal/host"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// RelayEvent is the Socket.IO event relayed arguments are emitted as.
const RelayEvent = "fittings:event"

// Module implements the handlers.Module interface for this package.
type Module struct {
	// URL of the Socket.IO endpoint, e.g. http://localhost:3000/socket.io/.
	// Empty disables relaying.
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	Logger             *slog.Logger

	once       sync.Once
	mu         sync.Mutex
	emit       func(args ...any)
	disconnect func()
	err        error
}

func (m *Module) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}

// connect dials the server on first use. The client reconnects on its own.
func (m *Module) connect() error {
	m.once.Do(func() {
		parsedURL, err := url.Parse(m.URL)
		if err != nil {
			m.err = fmt.Errorf("failed to parse URL: %w", err)
			return
		}
		logger := m.logger().With("module", "socketio", "url", m.URL, "namespace", m.Namespace)

		baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
		opts := socket.DefaultOptions()
		opts.SetPath(parsedURL.Path)
		if m.InsecureSkipVerify {
			logger.Warn("Skipping TLS certificate verification")
			opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
		}
		opts.SetTransports(types.NewSet(transports.WebSocket))

		manager := socket.NewManager(baseURL, opts)
		io := manager.Socket(m.Namespace, opts)

		io.On(types.EventName("connect"), func(...any) {
			logger.Info("Relay connected", "sid", io.Id())
		})
		io.On(types.EventName("connect_error"), func(errs ...any) {
			logger.Warn("Relay connection failed", "error", errs)
		})
		io.Connect()

		m.mu.Lock()
		m.emit = func(args ...any) { io.Emit(RelayEvent, args...) }
		m.disconnect = func() {
			logger.Debug("Disconnecting relay client")
			io.Disconnect()
		}
		m.mu.Unlock()
	})
	return m.err
}

// Relay is a listener that forwards its arguments to the server.
func (m *Module) Relay(args ...any) {
	if m.URL == "" {
		m.logger().Debug("Socket.IO relay has no URL, dropping event.", "args", len(args))
		return
	}
	if err := m.connect(); err != nil {
		m.logger().Error("Socket.IO relay unavailable.", "error", err)
		return
	}
	m.mu.Lock()
	emit := m.emit
	m.mu.Unlock()
	if emit != nil {
		emit(args...)
	}
}

// Close disconnects the client if it was ever connected.
func (m *Module) Close() {
	m.mu.Lock()
	disconnect := m.disconnect
	m.emit, m.disconnect = nil, nil
	m.mu.Unlock()
	if disconnect != nil {
		disconnect()
	}
}

// Register registers the handlers with the catalog.
func (m *Module) Register(c *handlers.Catalog) {
	c.RegisterListener("SocketRelay", host.Listener(m.Relay))
}
