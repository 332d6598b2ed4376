// Package intent defines the semantic intents transitions can be tagged
// with. An intent is an abstract action ("save", "export", "create new")
// that maps to many concrete UI interactions across applications.
package intent

import (
	"fmt"
	"sort"
	"strings"
)

// Category buckets intents for grouping and analytics.
type Category string

const (
	CategoryFile       Category = "file"
	CategoryEdit       Category = "edit"
	CategoryView       Category = "view"
	CategoryNavigation Category = "navigation"
	CategoryExport     Category = "export"
	CategoryImport     Category = "import"
	CategoryFormat     Category = "format"
	CategoryInsert     Category = "insert"
	CategoryHelp       Category = "help"
	CategorySettings   Category = "settings"
	CategoryAccount    Category = "account"
	CategoryData       Category = "data"
	CategoryOther      Category = "other"
)

// Intent is a semantic action attachable to transitions. ExternalRefs maps
// to outside knowledge bases, e.g. {"wd": "Q22676"}.
type Intent struct {
	ID           string            `json:"id"`
	Category     Category          `json:"category"`
	Label        string            `json:"label"`
	Description  string            `json:"description"`
	Synonyms     []string          `json:"synonyms"`
	ExternalRefs map[string]string `json:"external_refs"`
}

// MatchesPhrase reports whether the phrase equals the intent's id, label,
// or one of its synonyms after trimming and case folding.
func (in Intent) MatchesPhrase(phrase string) bool {
	key := normalize(phrase)
	if key == "" {
		return false
	}
	if key == normalize(in.ID) || key == normalize(in.Label) {
		return true
	}
	for _, s := range in.Synonyms {
		if key == normalize(s) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Registry resolves intents by id, by phrase (button labels, menu text),
// and by external reference. The zero value is not usable; call New or
// Builtin.
type Registry struct {
	byID       map[string]Intent
	bySynonym  map[string]Intent
	byExternal map[string]Intent
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		byID:       make(map[string]Intent),
		bySynonym:  make(map[string]Intent),
		byExternal: make(map[string]Intent),
	}
}

// Register adds an intent. Re-registering an identical intent is a
// no-op; a different intent under the same id is an error. Synonym and
// external-ref mappings never overwrite earlier ones, so the first
// registered intent wins a shared phrase.
func (r *Registry) Register(in Intent) error {
	if in.ID == "" {
		return fmt.Errorf("intent: id must not be empty")
	}
	key := normalize(in.ID)
	if existing, ok := r.byID[key]; ok {
		if intentsEqual(existing, in) {
			return nil
		}
		return fmt.Errorf("intent: %q is already registered", in.ID)
	}
	r.byID[key] = in

	for _, name := range append([]string{in.ID, in.Label}, in.Synonyms...) {
		nk := normalize(name)
		if nk == "" {
			continue
		}
		if _, ok := r.bySynonym[nk]; !ok {
			r.bySynonym[nk] = in
		}
	}
	for namespace, refID := range in.ExternalRefs {
		ek := namespace + ":" + refID
		if _, ok := r.byExternal[ek]; !ok {
			r.byExternal[ek] = in
		}
	}
	return nil
}

func intentsEqual(a, b Intent) bool {
	if a.ID != b.ID || a.Category != b.Category || a.Label != b.Label ||
		a.Description != b.Description {
		return false
	}
	if len(a.Synonyms) != len(b.Synonyms) {
		return false
	}
	for i := range a.Synonyms {
		if a.Synonyms[i] != b.Synonyms[i] {
			return false
		}
	}
	if len(a.ExternalRefs) != len(b.ExternalRefs) {
		return false
	}
	for k, v := range a.ExternalRefs {
		if b.ExternalRefs[k] != v {
			return false
		}
	}
	return true
}

// Get returns the intent with the given id.
func (r *Registry) Get(id string) (Intent, bool) {
	in, ok := r.byID[normalize(id)]
	return in, ok
}

// ForPhrase resolves a natural-language phrase, such as a button label,
// to an intent through the synonym index.
func (r *Registry) ForPhrase(phrase string) (Intent, bool) {
	in, ok := r.bySynonym[normalize(phrase)]
	return in, ok
}

// ByExternalRef resolves an intent through an external vocabulary id.
func (r *Registry) ByExternalRef(namespace, refID string) (Intent, bool) {
	in, ok := r.byExternal[namespace+":"+refID]
	return in, ok
}

// All returns every registered intent ordered by id.
func (r *Registry) All() []Intent {
	out := make([]Intent, 0, len(r.byID))
	for _, in := range r.byID {
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
