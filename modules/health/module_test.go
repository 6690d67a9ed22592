package health

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/fittings/internal/host"
)

type bareHost struct{ host.Host }

func TestPlugin_AddsStatusRoute(t *testing.T) {
	h := host.NewLocal()
	require.NoError(t, h.Plugins().Register("health", &Plugin{}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, Pattern, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","plugins":["health"]}`, rec.Body.String())
}

func TestPlugin_SecondInstallOnSameHostFails(t *testing.T) {
	h := host.NewLocal()
	require.NoError(t, h.Plugins().Register("health", &Plugin{}))
	require.ErrorIs(t, h.Plugins().Register("health-again", &Plugin{}), host.ErrAlreadyRegistered)
}

func TestPlugin_NeedsRouter(t *testing.T) {
	err := (&Plugin{}).Server(bareHost{})
	require.ErrorContains(t, err, "needs a host that serves routes")
}
