package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisabledProviderIsInert(t *testing.T) {
	p, err := New(context.Background(), &Config{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, p)
	require.NotNil(t, p.Tracer())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestDisabledMiddlewarePassesThrough(t *testing.T) {
	p, err := New(context.Background(), &Config{Enabled: false})
	require.NoError(t, err)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})
	handler := p.Middleware(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/contexts/ctx-1", nil))
	require.True(t, called)
	require.Equal(t, http.StatusTeapot, rec.Code)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, "atlas", cfg.ServiceName)
	require.False(t, cfg.Enabled)
	require.Equal(t, 1.0, cfg.SampleRate)
}

func TestRouteLabel(t *testing.T) {
	require.Equal(t, "/contexts", routeLabel("/contexts/ctx-1/states"))
	require.Equal(t, "/health", routeLabel("/health"))
	require.Equal(t, "/", routeLabel("/"))
}
