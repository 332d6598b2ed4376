package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestAuthenticator() *Authenticator {
	return NewAuthenticator([]KeyConfig{
		{Key: "reader-secret", ID: "reader", Scopes: []string{ScopeRead}},
		{Key: "writer-secret", ID: "writer", Scopes: []string{ScopeRead, ScopeWrite}},
		{Key: "admin-secret", ID: "root", Scopes: []string{ScopeAdmin}},
	})
}

func TestAuthenticate(t *testing.T) {
	a := newTestAuthenticator()

	p, ok := a.Authenticate("writer-secret")
	require.True(t, ok)
	require.Equal(t, "writer", p.ID)
	require.True(t, p.CanWrite())

	p, ok = a.Authenticate("reader-secret")
	require.True(t, ok)
	require.False(t, p.CanWrite())

	_, ok = a.Authenticate("wrong")
	require.False(t, ok)

	_, ok = a.Authenticate("")
	require.False(t, ok)
}

func TestAdminImpliesAllScopes(t *testing.T) {
	a := newTestAuthenticator()
	p, ok := a.Authenticate("admin-secret")
	require.True(t, ok)
	require.True(t, p.HasScope(ScopeRead))
	require.True(t, p.HasScope(ScopeWrite))
	require.True(t, p.CanWrite())
}

func TestMiddlewareRejectsMissingAndInvalidKeys(t *testing.T) {
	a := newTestAuthenticator()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := a.Middleware(next)

	req := httptest.NewRequest(http.MethodGet, "/contexts", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/contexts", nil)
	req.Header.Set(HeaderName, "nope")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareInjectsPrincipal(t *testing.T) {
	a := newTestAuthenticator()
	var seen *Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetPrincipal(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := a.Middleware(next)

	req := httptest.NewRequest(http.MethodGet, "/contexts", nil)
	req.Header.Set(HeaderName, "reader-secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	require.Equal(t, "reader", seen.ID)
}

func TestMiddlewareCustomHeader(t *testing.T) {
	a := newTestAuthenticator()
	a.Header = "X-Atlas-Key"
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := a.Middleware(next)

	req := httptest.NewRequest(http.MethodGet, "/contexts", nil)
	req.Header.Set(HeaderName, "reader-secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/contexts", nil)
	req.Header.Set("X-Atlas-Key", "reader-secret")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewareRequiresKeyOnHealth(t *testing.T) {
	a := newTestAuthenticator()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := a.Middleware(next)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(HeaderName, "reader-secret")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewareDisabledWithoutKeys(t *testing.T) {
	a := NewAuthenticator(nil)
	require.False(t, a.Enabled())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := a.Middleware(next)

	req := httptest.NewRequest(http.MethodGet, "/contexts", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestID(r.Context())
	})
	handler := RequestIDMiddleware(next)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.NotEmpty(t, got)
	require.Equal(t, got, rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, "fixed-id", got)
	require.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	})
	handler := CORSMiddleware([]string{"https://recorder.example.com"})(next)

	req := httptest.NewRequest(http.MethodOptions, "/contexts", nil)
	req.Header.Set("Origin", "https://recorder.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://recorder.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSDisallowedOrigin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORSMiddleware([]string{"https://recorder.example.com"})(next)

	req := httptest.NewRequest(http.MethodGet, "/contexts", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
