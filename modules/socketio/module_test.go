package socketio

import (
	"bytes"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/fittings/internal/handlers"
	"github.com/vk/fittings/internal/host"
	server "github.com/zishang520/socket.io/v2/socket"
)

func TestRelay_DisabledWithoutURL(t *testing.T) {
	var logs bytes.Buffer
	m := &Module{Logger: slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	m.Relay("GET", "/")
	m.Close()

	assert.Contains(t, logs.String(), "has no URL")
}

func TestRelay_BadURL(t *testing.T) {
	var logs bytes.Buffer
	m := &Module{URL: "http://[::1", Logger: slog.New(slog.NewTextHandler(&logs, nil))}

	m.Relay("x")
	m.Relay("y")

	assert.Contains(t, logs.String(), "failed to parse URL")
	require.Error(t, m.connect())
}

func TestRelay_ForwardsToServer(t *testing.T) {
	received := make(chan []any, 1)
	disconnected := make(chan struct{}, 1)

	io := server.NewServer(nil, nil)
	io.On("connection", func(clients ...any) {
		client := clients[0].(*server.Socket)
		client.On(RelayEvent, func(args ...any) {
			received <- args
		})
		client.On("disconnect", func(...any) {
			select {
			case disconnected <- struct{}{}:
			default:
			}
		})
	})
	ts := httptest.NewServer(io.ServeHandler(nil))
	t.Cleanup(func() {
		io.Close(nil)
		ts.Close()
	})

	m := &Module{URL: ts.URL + "/socket.io/", Namespace: "/"}
	m.Relay("GET", "/")

	select {
	case args := <-received:
		assert.Equal(t, []any{"GET", "/"}, args)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not receive the relayed event")
	}

	m.Close()
	select {
	case <-disconnected:
	case <-time.After(5 * time.Second):
		t.Fatal("client did not disconnect")
	}
}

func TestRegister(t *testing.T) {
	c := handlers.New()
	(&Module{}).Register(c)

	v, err := c.Lookup(handlers.KindListener, "SocketRelay")
	require.NoError(t, err)
	assert.IsType(t, host.Listener(nil), v)
}
