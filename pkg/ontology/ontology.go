// Package ontology defines the UI vocabulary Atlas reasons over: element
// roles (button, menuitem, dialog) and higher-level patterns (modal dialog,
// toast notification). A Registry holds the vocabulary in memory; Builtin
// returns one pre-loaded with the standard terms.
package ontology

import (
	"fmt"
	"sort"
	"strings"
)

// RoleCategory groups roles by how they participate in an interface.
type RoleCategory string

const (
	CategoryInteractive RoleCategory = "interactive"
	CategoryContainer   RoleCategory = "container"
	CategoryStructural  RoleCategory = "structural"
	CategoryFeedback    RoleCategory = "feedback"
	CategoryInput       RoleCategory = "input"
	CategoryNavigation  RoleCategory = "navigation"
	CategoryOther       RoleCategory = "other"
)

// Role is a vocabulary term assignable to an interactive element.
// ExternalRefs maps to outside vocabularies, e.g. {"aria-role": "button"}.
type Role struct {
	ID           string            `json:"id"`
	Label        string            `json:"label"`
	Description  string            `json:"description"`
	Aliases      []string          `json:"aliases"`
	ExternalRefs map[string]string `json:"external_refs"`
	Category     RoleCategory      `json:"category"`
}

// Pattern is a higher-level UI convention composed of roles and layout,
// e.g. a modal dialog or a hamburger menu.
type Pattern struct {
	ID           string            `json:"id"`
	Label        string            `json:"label"`
	Description  string            `json:"description"`
	Aliases      []string          `json:"aliases"`
	ExternalRefs map[string]string `json:"external_refs"`
	TypicalRoles []string          `json:"typical_roles"`
}

// Registry is an in-memory vocabulary of roles and patterns. Lookups are
// keyed by the trimmed, lowercased term id. The zero value is not usable;
// call New or Builtin.
type Registry struct {
	roles    map[string]Role
	patterns map[string]Pattern
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		roles:    make(map[string]Role),
		patterns: make(map[string]Pattern),
	}
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// RegisterRole adds a role to the registry. Re-registering an identical
// role is a no-op; a different role under the same id is an error.
func (r *Registry) RegisterRole(role Role) error {
	if role.ID == "" {
		return fmt.Errorf("ontology: role id must not be empty")
	}
	key := normalizeID(role.ID)
	if existing, ok := r.roles[key]; ok && !rolesEqual(existing, role) {
		return fmt.Errorf("ontology: role %q is already registered", role.ID)
	}
	r.roles[key] = role
	return nil
}

// RegisterPattern adds a pattern to the registry. Re-registering an
// identical pattern is a no-op; a different pattern under the same id is
// an error.
func (r *Registry) RegisterPattern(p Pattern) error {
	if p.ID == "" {
		return fmt.Errorf("ontology: pattern id must not be empty")
	}
	key := normalizeID(p.ID)
	if existing, ok := r.patterns[key]; ok && !patternsEqual(existing, p) {
		return fmt.Errorf("ontology: pattern %q is already registered", p.ID)
	}
	r.patterns[key] = p
	return nil
}

// Role returns the role with the given id.
func (r *Registry) Role(id string) (Role, bool) {
	role, ok := r.roles[normalizeID(id)]
	return role, ok
}

// Pattern returns the pattern with the given id.
func (r *Registry) Pattern(id string) (Pattern, bool) {
	p, ok := r.patterns[normalizeID(id)]
	return p, ok
}

// Roles returns all registered roles ordered by id.
func (r *Registry) Roles() []Role {
	out := make([]Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Patterns returns all registered patterns ordered by id.
func (r *Registry) Patterns() []Pattern {
	out := make([]Pattern, 0, len(r.patterns))
	for _, p := range r.patterns {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func rolesEqual(a, b Role) bool {
	return a.ID == b.ID && a.Label == b.Label && a.Description == b.Description &&
		a.Category == b.Category &&
		stringSlicesEqual(a.Aliases, b.Aliases) && stringMapsEqual(a.ExternalRefs, b.ExternalRefs)
}

func patternsEqual(a, b Pattern) bool {
	return a.ID == b.ID && a.Label == b.Label && a.Description == b.Description &&
		stringSlicesEqual(a.Aliases, b.Aliases) && stringMapsEqual(a.ExternalRefs, b.ExternalRefs) &&
		stringSlicesEqual(a.TypicalRoles, b.TypicalRoles)
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func stringMapsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
