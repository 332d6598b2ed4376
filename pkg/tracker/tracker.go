// Package tracker deduplicates UI states observed during exploration and
// tracks their observation statistics. It is independent of the storage
// service; the export package turns tracked states into graph records.
package tracker

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Rejean-McCormick/Ariane/pkg/model"
)

// Config controls deduplication behavior.
type Config struct {
	// PreferFingerprintKeys is the ordered list of fingerprint keys tried
	// for deduplication. Defaults to structural, visual, semantic.
	PreferFingerprintKeys []string

	// AllowIDFallback falls back to the state id as the deduplication key
	// when no configured fingerprint is present.
	AllowIDFallback bool

	// AutoGenerateIDs assigns a random id to states arriving without one.
	AutoGenerateIDs bool
}

// DefaultConfig returns the standard tracker configuration.
func DefaultConfig() Config {
	return Config{
		PreferFingerprintKeys: []string{
			model.FingerprintStructural,
			model.FingerprintVisual,
			model.FingerprintSemantic,
		},
		AllowIDFallback: true,
		AutoGenerateIDs: true,
	}
}

// TrackedState is one logical state with its observation statistics.
type TrackedState struct {
	State       model.UIState
	FirstSeenAt string
	LastSeenAt  string
	TimesSeen   int
}

// Tracker is the in-memory state registry. Safe for concurrent use.
type Tracker struct {
	cfg Config

	mu         sync.Mutex
	statesByID map[string]*TrackedState
	indexByKey map[string]string
}

// New returns a tracker with the given configuration. Zero-value
// preference keys are replaced by the defaults.
func New(cfg Config) *Tracker {
	if cfg.PreferFingerprintKeys == nil {
		cfg.PreferFingerprintKeys = DefaultConfig().PreferFingerprintKeys
	}
	return &Tracker{
		cfg:        cfg,
		statesByID: make(map[string]*TrackedState),
		indexByKey: make(map[string]string),
	}
}

// ObserveState registers an observation. The returned id is the canonical
// id for the logical state; isNew reports whether the observation created
// a new tracked state rather than merging with an existing one.
//
// Deduplication keys are built from the first configured fingerprint
// present on the state, else from the state id when the fallback is
// enabled. States without any usable key are always tracked as new.
func (t *Tracker) ObserveState(state *model.UIState) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if state.ID == "" && t.cfg.AutoGenerateIDs {
		state.ID = generateStateID()
	}

	key := t.dedupKey(state)
	if key != "" {
		if stateID, ok := t.indexByKey[key]; ok {
			tracked := t.statesByID[stateID]
			tracked.TimesSeen++
			tracked.LastSeenAt = model.Now()
			return stateID, false
		}
	}

	now := model.Now()
	t.statesByID[state.ID] = &TrackedState{
		State:       *state,
		FirstSeenAt: now,
		LastSeenAt:  now,
		TimesSeen:   1,
	}
	if key != "" {
		t.indexByKey[key] = state.ID
	}
	return state.ID, true
}

// Tracked returns the tracked entry for a state id.
func (t *Tracker) Tracked(stateID string) (TrackedState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tracked, ok := t.statesByID[stateID]
	if !ok {
		return TrackedState{}, false
	}
	return *tracked, true
}

// State returns only the UIState for a state id.
func (t *Tracker) State(stateID string) (model.UIState, bool) {
	tracked, ok := t.Tracked(stateID)
	return tracked.State, ok
}

// AllTracked returns every tracked entry, ordered by state id.
func (t *Tracker) AllTracked() []TrackedState {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]TrackedState, 0, len(t.statesByID))
	for _, tracked := range t.statesByID {
		out = append(out, *tracked)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].State.ID < out[j].State.ID })
	return out
}

// AllStates returns every tracked UIState, ordered by state id.
func (t *Tracker) AllStates() []model.UIState {
	tracked := t.AllTracked()
	out := make([]model.UIState, len(tracked))
	for i, ts := range tracked {
		out[i] = ts.State
	}
	return out
}

// Len returns the number of distinct logical states tracked.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.statesByID)
}

func (t *Tracker) dedupKey(state *model.UIState) string {
	for _, key := range t.cfg.PreferFingerprintKeys {
		if value := state.Fingerprints[key]; value != "" {
			return key + ":" + value
		}
	}
	if t.cfg.AllowIDFallback && state.ID != "" {
		return "id:" + state.ID
	}
	return ""
}

func generateStateID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
