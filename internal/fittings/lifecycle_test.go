package fittings

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/fittings/internal/ctxlog"
	"github.com/vk/fittings/internal/host"
	"github.com/vk/fittings/internal/property"
)

func passthrough(next http.Handler) http.Handler { return next }

type helloPlugin struct{ server host.Host }

func (p *helloPlugin) Server(h host.Host) error {
	p.server = h
	return nil
}

func TestSetup_AddsMiddleware(t *testing.T) {
	h := host.NewLocal()
	assert.NotContains(t, h.Chain().Names(), "foo")

	f, err := New(context.Background(), fixture.With(PropertyMiddleware, property.Record{"foo": passthrough}), h)
	require.NoError(t, err)
	assert.Contains(t, h.Chain().Names(), "foo")
	assert.Equal(t, StateActive, f.State())
	assert.Same(t, h, f.Host())
}

func TestSetup_ActiveLogLevel(t *testing.T) {
	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelInfo})))

	_, err := New(ctx, fixture, nil)
	require.NoError(t, err)
	assert.NotContains(t, logs.String(), "Framework active.", "detached instances stay quiet at info")

	_, err = New(ctx, fixture, host.NewLocal())
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "Framework active.")
}

func TestSetup_AddsPlugins(t *testing.T) {
	h := host.NewLocal()
	plugin := &helloPlugin{}

	_, err := New(context.Background(), fixture.With(PropertyUse, property.Record{"hello": plugin}), h)
	require.NoError(t, err)
	assert.Same(t, h, plugin.server)
	assert.Equal(t, []string{"hello"}, h.PluginSet().Names())
}

func TestSetup_AddsListeners(t *testing.T) {
	h := host.NewLocal()
	var got []any

	_, err := New(context.Background(), fixture.With(PropertyOn, property.Record{
		"woop": func(args ...any) { got = args },
	}), h)
	require.NoError(t, err)

	h.Events().Emit("woop", "hi")
	assert.Equal(t, []any{"hi"}, got)
}

func TestSetup_RegistriesFromFunctions(t *testing.T) {
	h := host.NewLocal()
	_, err := New(context.Background(), fixture.With(PropertyMiddleware, property.Computed(
		func(_ context.Context, self property.Owner, _ property.Data) (property.Value, error) {
			return property.Record{self.Name(): passthrough}, nil
		},
	)), h)
	require.NoError(t, err)
	assert.Equal(t, []string{"fixture"}, h.Chain().Names())
}

func TestSetup_RegistersInSortedOrder(t *testing.T) {
	h := host.NewLocal()
	_, err := New(context.Background(), fixture.With(PropertyMiddleware, property.Record{
		"c": passthrough, "a": passthrough, "b": passthrough,
	}), h)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, h.Chain().Names())
}

func TestSetup_InitializeRunsLastWithHost(t *testing.T) {
	h := host.NewLocal()
	var seenMiddleware []string
	var seenHost host.Host

	def := fixture.Extend(Definition{
		Properties: map[string]property.Value{PropertyMiddleware: property.Record{"foo": passthrough}},
		Initialize: func(_ context.Context, f *Fittings, got host.Host) error {
			seenMiddleware = h.Chain().Names()
			seenHost = got
			assert.Equal(t, StateWired, f.State())
			return nil
		},
	})

	_, err := New(context.Background(), def, h)
	require.NoError(t, err)
	assert.Equal(t, []string{"foo"}, seenMiddleware)
	assert.Same(t, h, seenHost)
}

func TestSetup_FailureRollsBack(t *testing.T) {
	h := host.NewLocal()
	require.NoError(t, h.Middleware().Register("taken", passthrough))

	other := func(...any) {}
	require.NoError(t, h.Events().On("someone-else", "woop", other))

	_, err := New(context.Background(), fixture.Extend(Definition{
		Properties: map[string]property.Value{
			PropertyMiddleware: property.Record{"a": passthrough, "taken": passthrough},
			PropertyOn:         property.Record{"woop": other},
		},
	}), h)
	require.ErrorIs(t, err, host.ErrAlreadyRegistered)
	assert.Equal(t, []string{"taken"}, h.Chain().Names(), "middleware added before the failure must be removed")
	assert.Equal(t, 1, h.Bus().ListenerCount("woop"))
}

func TestSetup_InitializeFailureRollsBack(t *testing.T) {
	h := host.NewLocal()
	boom := errors.New("boom")

	_, err := New(context.Background(), fixture.Extend(Definition{
		Properties: map[string]property.Value{
			PropertyMiddleware: property.Record{"foo": passthrough},
			PropertyOn:         property.Record{"woop": func(...any) {}},
		},
		Initialize: func(context.Context, *Fittings, host.Host) error { return boom },
	}), h)
	require.ErrorIs(t, err, boom)
	assert.Empty(t, h.Chain().Names())
	assert.Zero(t, h.Bus().ListenerCount("woop"))
}

func TestSetup_RejectsBadRegistryShapes(t *testing.T) {
	t.Run("listener is not a function", func(t *testing.T) {
		_, err := New(context.Background(), fixture.With(PropertyOn, property.Record{"woop": "nope"}), host.NewLocal())
		require.ErrorContains(t, err, "unsupported type string")
	})

	t.Run("registry is not an object", func(t *testing.T) {
		_, err := New(context.Background(), fixture.With(PropertyUse, property.Literal("nope")), host.NewLocal())
		var typeErr *TypeError
		require.ErrorAs(t, err, &typeErr)
	})
}

func TestDestroy(t *testing.T) {
	h := host.NewLocal()
	plugin := &helloPlugin{}
	calls := 0

	f, err := New(context.Background(), fixture.Extend(Definition{
		Properties: map[string]property.Value{
			PropertyMiddleware: property.Record{"foo": passthrough, "bar": passthrough},
			PropertyUse:        property.Record{"hello": plugin},
			PropertyOn:         property.Record{"woop": func(...any) { calls++ }},
		},
	}), h)
	require.NoError(t, err)
	require.NoError(t, h.Middleware().Register("unrelated", passthrough))

	require.NoError(t, f.Destroy(context.Background()))

	assert.Equal(t, []string{"unrelated"}, h.Chain().Names())
	assert.Equal(t, []string{"hello"}, h.PluginSet().Names(), "plugins cannot be unregistered")
	h.Events().Emit("woop")
	assert.Zero(t, calls)

	assert.Nil(t, f.Host())
	assert.Equal(t, StateDestroyed, f.State())
}

func TestDestroy_IsIdempotent(t *testing.T) {
	f, err := New(context.Background(), fixture.With(PropertyMiddleware, property.Record{"foo": passthrough}), host.NewLocal())
	require.NoError(t, err)

	require.NoError(t, f.Destroy(context.Background()))
	require.NotPanics(t, func() {
		require.NoError(t, f.Destroy(context.Background()))
	})
}

func TestDestroy_Detached(t *testing.T) {
	f := newDetached(t, nil)
	require.NoError(t, f.Destroy(context.Background()))
	assert.Equal(t, StateDestroyed, f.State())
}

func TestDestroy_ReportsMiddlewareRemovedBehindItsBack(t *testing.T) {
	h := host.NewLocal()
	f, err := New(context.Background(), fixture.With(PropertyMiddleware, property.Record{"foo": passthrough}), h)
	require.NoError(t, err)
	require.NoError(t, h.Middleware().Unregister("foo"))

	err = f.Destroy(context.Background())
	require.ErrorIs(t, err, host.ErrNotRegistered)
	assert.Equal(t, StateDestroyed, f.State(), "the instance is released even when cleanup reports errors")
}

func TestDestroyed_InstanceRefusesWork(t *testing.T) {
	f := newDetached(t, map[string]property.Value{PropertyTemplate: property.Literal("x")})
	require.NoError(t, f.Destroy(context.Background()))

	_, err := f.Get(context.Background(), PropertyTemplate, nil)
	require.ErrorIs(t, err, ErrDestroyed)
	_, err = f.Get(context.Background(), PropertyLibrary, nil)
	require.ErrorIs(t, err, ErrDestroyed)
}

func TestTwoInstancesShareAHost(t *testing.T) {
	h := host.NewLocal()
	var a, b int

	fa, err := New(context.Background(), Definition{Name: "a", Properties: map[string]property.Value{
		PropertyOn: property.Record{"tick": func(...any) { a++ }},
	}}, h)
	require.NoError(t, err)
	_, err = New(context.Background(), Definition{Name: "b", Properties: map[string]property.Value{
		PropertyOn: property.Record{"tick": host.Listener(func(...any) { b++ })},
	}}, h)
	require.NoError(t, err)

	require.NoError(t, fa.Destroy(context.Background()))
	h.Events().Emit("tick")
	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
}
