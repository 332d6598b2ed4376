package model

// Well-known record metadata keys. Read through the accessors below;
// stored in the open Metadata map so unknown keys round-trip untouched.
const (
	MetaSource       = "source"
	MetaReviewStatus = "review_status"
	MetaFirstSeenAt  = "first_seen_at"
	MetaLastSeenAt   = "last_seen_at"
	MetaTimesSeen    = "times_seen"
)

// StateRecord is the persistable wrapper around a UIState: the state plus
// its context linkage and observation metadata.
type StateRecord struct {
	ContextID    string         `json:"context_id"`
	DiscoveredAt string         `json:"discovered_at"`
	IsEntry      bool           `json:"is_entry"`
	IsTerminal   bool           `json:"is_terminal"`
	Tags         []string       `json:"tags"`
	Metadata     map[string]any `json:"metadata"`
	State        UIState        `json:"state"`
}

// ID is a shortcut to the underlying state's id.
func (r *StateRecord) ID() string { return r.State.ID }

// AppID is a shortcut to the underlying state's app id.
func (r *StateRecord) AppID() string { return r.State.AppID }

// Platform is a shortcut to the underlying state's platform.
func (r *StateRecord) Platform() Platform { return r.State.Platform }

// HasTag reports whether the record carries the tag, compared after
// trimming and case folding.
func (r *StateRecord) HasTag(tag string) bool {
	key := normalize(tag)
	for _, t := range r.Tags {
		if normalize(t) == key {
			return true
		}
	}
	return false
}

// MetaString returns the string value of a metadata key, or "" when the
// key is absent or not a string.
func MetaString(metadata map[string]any, key string) string {
	if v, ok := metadata[key].(string); ok {
		return v
	}
	return ""
}

// TransitionRecord is the persistable wrapper around a Transition: the
// edge plus its context linkage and observation count.
type TransitionRecord struct {
	ContextID     string         `json:"context_id"`
	DiscoveredAt  string         `json:"discovered_at"`
	TimesObserved int            `json:"times_observed"`
	Metadata      map[string]any `json:"metadata"`
	Transition    Transition     `json:"transition"`
}

// ID is a shortcut to the underlying transition's id.
func (r *TransitionRecord) ID() string { return r.Transition.ID }

// SourceStateID is a shortcut to the underlying transition's source.
func (r *TransitionRecord) SourceStateID() string { return r.Transition.SourceStateID }

// TargetStateID is a shortcut to the underlying transition's target.
func (r *TransitionRecord) TargetStateID() string { return r.Transition.TargetStateID }

// IntentID is a shortcut to the underlying transition's intent id.
func (r *TransitionRecord) IntentID() string { return r.Transition.IntentID }

// Bundle is the composite ingest payload assembled by exporters and
// accepted by /ingest/bundle. Any member may be nil; ingest order is
// fixed: context, states, transitions.
type Bundle struct {
	Context     *Context           `json:"context"`
	States      []StateRecord      `json:"states"`
	Transitions []TransitionRecord `json:"transitions"`
}
