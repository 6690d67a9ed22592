package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/fittings/internal/fittings"
	"github.com/vk/fittings/internal/host"
	"github.com/vk/fittings/internal/property"
)

func noopMiddleware(next http.Handler) http.Handler { return next }

func TestCatalog_RegisterAndLookup(t *testing.T) {
	c := New()
	c.RegisterMiddleware("RequestLogger", noopMiddleware)
	c.RegisterListener("PrintEvent", func(...any) {})
	c.RegisterPlugin("HealthPlugin", struct{}{})
	c.RegisterInitializer("Announce", func(context.Context, *fittings.Fittings, host.Host) error { return nil })

	v, err := c.Lookup(KindMiddleware, "RequestLogger")
	require.NoError(t, err)
	assert.IsType(t, host.MiddlewareFunc(nil), v)

	initFn, err := c.Initializer("Announce")
	require.NoError(t, err)
	assert.NotNil(t, initFn)

	assert.Equal(t, []string{"PrintEvent"}, c.Names(KindListener))

	_, err = c.Lookup(KindPlugin, "Missing")
	var unknown *UnknownHandlerError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, KindPlugin, unknown.Kind)
	assert.Equal(t, "Missing", unknown.Name)

	_, err = c.Initializer("Missing")
	require.ErrorAs(t, err, &unknown)
}

func TestCatalog_DuplicatePanics(t *testing.T) {
	c := New()
	c.RegisterPlugin("x", 1)
	assert.Panics(t, func() { c.RegisterPlugin("x", 2) })
	assert.NotPanics(t, func() { c.RegisterListener("x", func(...any) {}) }, "kinds have separate namespaces")
}

func TestCatalog_Bind(t *testing.T) {
	c := New()
	c.RegisterMiddleware("RequestLogger", noopMiddleware)

	direct := host.MiddlewareFunc(noopMiddleware)
	bound, err := c.Bind(KindMiddleware, property.Record{"log": "RequestLogger", "direct": direct})
	require.NoError(t, err)
	assert.IsType(t, host.MiddlewareFunc(nil), bound["log"])
	assert.IsType(t, host.MiddlewareFunc(nil), bound["direct"])

	_, err = c.Bind(KindMiddleware, property.Record{"log": "Nope"})
	require.ErrorContains(t, err, `middleware "log"`)

	empty, err := c.Bind(KindListener, property.Record{})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCatalog_BoundMiddlewareRegistersWithHost(t *testing.T) {
	c := New()
	c.RegisterMiddleware("RequestLogger", noopMiddleware)
	bound, err := c.Bind(KindMiddleware, property.Record{"log": "RequestLogger"})
	require.NoError(t, err)

	h := host.NewLocal()
	require.NoError(t, h.Middleware().Register("log", bound["log"]))
	assert.Equal(t, []string{"log"}, h.Chain().Names())
}
