package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"net/http"

	"github.com/Rejean-McCormick/Ariane/pkg/api"
)

// HeaderName is the request header carrying the API key.
const HeaderName = "X-API-Key"

// KeyConfig declares one accepted API key and the principal it maps to.
type KeyConfig struct {
	Key    string   `yaml:"key" json:"key"`
	ID     string   `yaml:"id" json:"id"`
	Scopes []string `yaml:"scopes" json:"scopes"`
}

type keyEntry struct {
	digest    [sha256.Size]byte
	principal Principal
}

// Authenticator validates API keys. Keys are stored as SHA-256 digests
// and compared in constant time.
type Authenticator struct {
	// Header overrides the request header the key is read from.
	// Empty means HeaderName.
	Header string

	keys []keyEntry
}

// NewAuthenticator builds an Authenticator from the configured keys.
// Entries with an empty key are skipped.
func NewAuthenticator(keys []KeyConfig) *Authenticator {
	a := &Authenticator{}
	for _, k := range keys {
		if k.Key == "" {
			continue
		}
		id := k.ID
		if id == "" {
			id = "unnamed"
		}
		a.keys = append(a.keys, keyEntry{
			digest:    sha256.Sum256([]byte(k.Key)),
			principal: Principal{ID: id, Scopes: append([]string(nil), k.Scopes...)},
		})
	}
	return a
}

// Enabled reports whether any keys are configured. With no keys the
// middleware lets every request through as anonymous.
func (a *Authenticator) Enabled() bool {
	return a != nil && len(a.keys) > 0
}

// Authenticate checks the presented key against the configured set.
func (a *Authenticator) Authenticate(presented string) (*Principal, bool) {
	if presented == "" {
		return nil, false
	}
	digest := sha256.Sum256([]byte(presented))
	var found *Principal
	// Scan every entry so timing does not reveal which key matched.
	for i := range a.keys {
		if hmac.Equal(digest[:], a.keys[i].digest[:]) && found == nil {
			p := a.keys[i].principal
			found = &p
		}
	}
	return found, found != nil
}

// Middleware enforces API-key authentication on every route when keys
// are configured. With no keys, requests pass through as anonymous.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		header := a.Header
		if header == "" {
			header = HeaderName
		}
		presented := r.Header.Get(header)
		if presented == "" {
			api.WriteUnauthorized(w, "missing "+header+" header")
			return
		}

		principal, ok := a.Authenticate(presented)
		if !ok {
			api.WriteUnauthorized(w, "invalid API key")
			return
		}

		ctx := WithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
