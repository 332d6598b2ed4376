// Package export turns exploration results (tracked states plus observed
// transitions) into graph-ready objects: a context, state records, and
// transition records. It performs no I/O; callers ship the bundle to the
// ingest API or persist it themselves.
package export

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Rejean-McCormick/Ariane/pkg/model"
	"github.com/Rejean-McCormick/Ariane/pkg/tracker"
)

// Config controls how the export context and records are built. Empty
// fields are inferred from the earliest tracked state where possible.
type Config struct {
	ContextID string
	AppID     string
	Version   string
	Platform  model.Platform
	Locale    string

	Environment map[string]any
	Metadata    map[string]any

	// ExplicitEntryStateIDs overrides entry-state inference. When empty,
	// entry states are those without incoming transitions, falling back
	// to the earliest observed state.
	ExplicitEntryStateIDs []string

	// MarkTerminalStates flags states without outgoing transitions as
	// terminal.
	MarkTerminalStates bool
}

// DefaultConfig returns a config with terminal marking enabled.
func DefaultConfig() Config {
	return Config{MarkTerminalStates: true}
}

// Exporter builds graph records from a tracker and the transitions the
// exploration engine observed.
type Exporter struct {
	tracker     *tracker.Tracker
	transitions []model.Transition
	cfg         Config

	context *model.Context
}

// New returns an exporter over the given tracker and transitions. The
// transitions slice may be empty but must be the complete observation
// list; entry and terminal flags are derived from it.
func New(t *tracker.Tracker, transitions []model.Transition, cfg Config) *Exporter {
	return &Exporter{tracker: t, transitions: transitions, cfg: cfg}
}

// BuildContext builds and caches the export context. Explicit config
// wins; the rest is inferred from the earliest tracked state. An app id
// must come from one of the two.
func (e *Exporter) BuildContext() (model.Context, error) {
	if e.context != nil {
		return *e.context, nil
	}

	var inferred model.UIState
	if first, ok := e.firstTracked(); ok {
		inferred = first.State
	} else {
		inferred.Platform = model.PlatformOther
	}

	appID := e.cfg.AppID
	if appID == "" {
		appID = inferred.AppID
	}
	if appID == "" {
		return model.Context{}, fmt.Errorf("export: app id is not set and could not be inferred from tracked states")
	}

	contextID := e.cfg.ContextID
	if contextID == "" {
		contextID = generateContextID(appID)
	}
	version := e.cfg.Version
	if version == "" {
		version = inferred.Version
	}
	platform := e.cfg.Platform
	if platform == "" {
		platform = inferred.Platform
	}
	locale := e.cfg.Locale
	if locale == "" {
		locale = inferred.Locale
	}

	environment := e.cfg.Environment
	if environment == nil {
		environment = map[string]any{}
	}
	metadata := e.cfg.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	ctx := model.Context{
		ContextID:     contextID,
		AppID:         appID,
		Version:       version,
		Platform:      platform,
		Locale:        locale,
		SchemaVersion: model.SchemaVersion,
		CreatedAt:     model.Now(),
		Environment:   environment,
		Metadata:      metadata,
	}
	e.context = &ctx
	return ctx, nil
}

// BuildStateRecords builds a record for every tracked state. Entry and
// terminal flags are derived from the transition list; observation
// statistics land in the record metadata.
func (e *Exporter) BuildStateRecords() ([]model.StateRecord, error) {
	ctx, err := e.BuildContext()
	if err != nil {
		return nil, err
	}

	trackedStates := e.tracker.AllTracked()
	outgoing := e.outgoingCounts()
	entryIDs := e.entryStateIDs(trackedStates)

	records := make([]model.StateRecord, 0, len(trackedStates))
	for _, ts := range trackedStates {
		stateID := ts.State.ID
		_, isEntry := entryIDs[stateID]

		isTerminal := false
		if e.cfg.MarkTerminalStates {
			isTerminal = outgoing[stateID] == 0
		}

		records = append(records, model.StateRecord{
			ContextID:    ctx.ContextID,
			DiscoveredAt: ts.FirstSeenAt,
			IsEntry:      isEntry,
			IsTerminal:   isTerminal,
			Tags:         []string{},
			Metadata: map[string]any{
				model.MetaFirstSeenAt: ts.FirstSeenAt,
				model.MetaLastSeenAt:  ts.LastSeenAt,
				model.MetaTimesSeen:   ts.TimesSeen,
			},
			State: ts.State,
		})
	}
	return records, nil
}

// BuildTransitionRecords wraps every observed transition in a record with
// a single observation. The graph store merges duplicates and raises the
// count on ingest.
func (e *Exporter) BuildTransitionRecords() ([]model.TransitionRecord, error) {
	ctx, err := e.BuildContext()
	if err != nil {
		return nil, err
	}

	records := make([]model.TransitionRecord, 0, len(e.transitions))
	for _, tr := range e.transitions {
		records = append(records, model.TransitionRecord{
			ContextID:     ctx.ContextID,
			DiscoveredAt:  model.Now(),
			TimesObserved: 1,
			Metadata:      map[string]any{},
			Transition:    tr,
		})
	}
	return records, nil
}

// BuildBundle assembles the full ingest payload: context, states, and
// transitions.
func (e *Exporter) BuildBundle() (model.Bundle, error) {
	ctx, err := e.BuildContext()
	if err != nil {
		return model.Bundle{}, err
	}
	states, err := e.BuildStateRecords()
	if err != nil {
		return model.Bundle{}, err
	}
	transitions, err := e.BuildTransitionRecords()
	if err != nil {
		return model.Bundle{}, err
	}
	return model.Bundle{Context: &ctx, States: states, Transitions: transitions}, nil
}

// firstTracked returns the earliest tracked state by first observation.
// Fixed-width UTC timestamps compare lexicographically in chronological
// order, with the state id as tiebreak.
func (e *Exporter) firstTracked() (tracker.TrackedState, bool) {
	all := e.tracker.AllTracked()
	if len(all) == 0 {
		return tracker.TrackedState{}, false
	}
	first := all[0]
	for _, ts := range all[1:] {
		if ts.FirstSeenAt < first.FirstSeenAt {
			first = ts
		}
	}
	return first, true
}

func (e *Exporter) outgoingCounts() map[string]int {
	counts := make(map[string]int)
	for _, tr := range e.transitions {
		counts[tr.SourceStateID]++
	}
	return counts
}

func (e *Exporter) entryStateIDs(trackedStates []tracker.TrackedState) map[string]struct{} {
	if len(e.cfg.ExplicitEntryStateIDs) > 0 {
		out := make(map[string]struct{}, len(e.cfg.ExplicitEntryStateIDs))
		for _, id := range e.cfg.ExplicitEntryStateIDs {
			out[id] = struct{}{}
		}
		return out
	}

	targets := make(map[string]struct{})
	for _, tr := range e.transitions {
		targets[tr.TargetStateID] = struct{}{}
	}
	out := make(map[string]struct{})
	for _, ts := range trackedStates {
		if _, isTarget := targets[ts.State.ID]; !isTarget {
			out[ts.State.ID] = struct{}{}
		}
	}
	if len(out) > 0 {
		return out
	}

	if first, ok := e.firstTracked(); ok {
		return map[string]struct{}{first.State.ID: {}}
	}
	return map[string]struct{}{}
}

func generateContextID(appID string) string {
	prefix := strings.ToLower(strings.ReplaceAll(appID, " ", "_"))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return prefix + "-" + suffix
}
