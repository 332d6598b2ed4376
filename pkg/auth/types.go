package auth

// Principal is the authenticated entity behind a request.
type Principal struct {
	// ID names the caller, taken from the key table.
	ID string `json:"id"`
	// Scopes the caller is granted.
	Scopes []string `json:"scopes"`
}

// Scope names used by the API.
const (
	ScopeRead  = "read"
	ScopeWrite = "write"
	ScopeAdmin = "admin"
)

// HasScope reports whether the principal holds the given scope.
// Admin implies everything.
func (p *Principal) HasScope(scope string) bool {
	for _, s := range p.Scopes {
		if s == scope || s == ScopeAdmin {
			return true
		}
	}
	return false
}

// CanWrite reports whether the principal may perform mutations.
func (p *Principal) CanWrite() bool {
	return p.HasScope(ScopeWrite)
}
