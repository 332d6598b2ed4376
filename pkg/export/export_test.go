package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Rejean-McCormick/Ariane/pkg/model"
	"github.com/Rejean-McCormick/Ariane/pkg/tracker"
)

func seededTracker(t *testing.T, ids ...string) *tracker.Tracker {
	t.Helper()
	tr := tracker.New(tracker.DefaultConfig())
	for _, id := range ids {
		state := &model.UIState{
			ID:           id,
			AppID:        "My Calc",
			Version:      "2.1",
			Platform:     model.PlatformWindows,
			Locale:       "en-US",
			Fingerprints: map[string]string{"structural": "fp-" + id},
			Elements:     []model.InteractiveElement{},
			Metadata:     map[string]any{},
		}
		_, isNew := tr.ObserveState(state)
		require.True(t, isNew)
	}
	return tr
}

func chainTransitions(edges ...[2]string) []model.Transition {
	out := make([]model.Transition, 0, len(edges))
	for i, e := range edges {
		out = append(out, model.NewClickTransition(
			"tr-"+strings.Repeat("x", i+1), e[0], e[1], "el-1"))
	}
	return out
}

func TestBuildContextInference(t *testing.T) {
	tr := seededTracker(t, "st-1", "st-2")
	e := New(tr, nil, DefaultConfig())

	ctx, err := e.BuildContext()
	require.NoError(t, err)
	require.Equal(t, "My Calc", ctx.AppID)
	require.Equal(t, "2.1", ctx.Version)
	require.Equal(t, model.PlatformWindows, ctx.Platform)
	require.Equal(t, "en-US", ctx.Locale)
	require.Equal(t, model.SchemaVersion, ctx.SchemaVersion)

	// generated id: sanitized app id prefix plus an 8-char suffix
	require.True(t, strings.HasPrefix(ctx.ContextID, "my_calc-"))
	require.Len(t, ctx.ContextID, len("my_calc-")+8)
}

func TestBuildContextExplicitConfigWins(t *testing.T) {
	tr := seededTracker(t, "st-1")
	cfg := DefaultConfig()
	cfg.ContextID = "ctx-fixed"
	cfg.AppID = "other-app"
	cfg.Platform = model.PlatformWeb
	e := New(tr, nil, cfg)

	ctx, err := e.BuildContext()
	require.NoError(t, err)
	require.Equal(t, "ctx-fixed", ctx.ContextID)
	require.Equal(t, "other-app", ctx.AppID)
	require.Equal(t, model.PlatformWeb, ctx.Platform)
}

func TestBuildContextIsCached(t *testing.T) {
	tr := seededTracker(t, "st-1")
	e := New(tr, nil, DefaultConfig())

	first, err := e.BuildContext()
	require.NoError(t, err)
	second, err := e.BuildContext()
	require.NoError(t, err)
	require.Equal(t, first.ContextID, second.ContextID)
}

func TestBuildContextRequiresAppID(t *testing.T) {
	e := New(tracker.New(tracker.DefaultConfig()), nil, DefaultConfig())
	_, err := e.BuildContext()
	require.ErrorContains(t, err, "app id")
}

func TestBuildStateRecordsFlags(t *testing.T) {
	tr := seededTracker(t, "st-1", "st-2", "st-3")
	// st-1 -> st-2 -> st-3
	e := New(tr, chainTransitions([2]string{"st-1", "st-2"}, [2]string{"st-2", "st-3"}), DefaultConfig())

	records, err := e.BuildStateRecords()
	require.NoError(t, err)
	require.Len(t, records, 3)

	byID := map[string]model.StateRecord{}
	for _, r := range records {
		byID[r.ID()] = r
	}

	require.True(t, byID["st-1"].IsEntry)
	require.False(t, byID["st-2"].IsEntry)
	require.False(t, byID["st-3"].IsEntry)

	require.False(t, byID["st-1"].IsTerminal)
	require.False(t, byID["st-2"].IsTerminal)
	require.True(t, byID["st-3"].IsTerminal)

	// observation stats land in metadata
	meta := byID["st-1"].Metadata
	require.Equal(t, 1, meta[model.MetaTimesSeen])
	require.NotEmpty(t, meta[model.MetaFirstSeenAt])
	require.Equal(t, byID["st-1"].DiscoveredAt, meta[model.MetaFirstSeenAt])
}

func TestBuildStateRecordsExplicitEntries(t *testing.T) {
	tr := seededTracker(t, "st-1", "st-2")
	cfg := DefaultConfig()
	cfg.ExplicitEntryStateIDs = []string{"st-2"}
	e := New(tr, chainTransitions([2]string{"st-1", "st-2"}), cfg)

	records, err := e.BuildStateRecords()
	require.NoError(t, err)

	for _, r := range records {
		require.Equal(t, r.ID() == "st-2", r.IsEntry)
	}
}

func TestBuildStateRecordsCycleFallsBackToEarliest(t *testing.T) {
	tr := seededTracker(t, "st-1", "st-2")
	// a 2-cycle: every state has an incoming edge
	e := New(tr, chainTransitions([2]string{"st-1", "st-2"}, [2]string{"st-2", "st-1"}), DefaultConfig())

	records, err := e.BuildStateRecords()
	require.NoError(t, err)

	entries := 0
	for _, r := range records {
		if r.IsEntry {
			entries++
		}
		require.False(t, r.IsTerminal)
	}
	require.Equal(t, 1, entries)
}

func TestBuildTransitionRecords(t *testing.T) {
	tr := seededTracker(t, "st-1", "st-2")
	e := New(tr, chainTransitions([2]string{"st-1", "st-2"}), DefaultConfig())

	records, err := e.BuildTransitionRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, 1, records[0].TimesObserved)
	require.Equal(t, "st-1", records[0].SourceStateID())
	require.NotEmpty(t, records[0].DiscoveredAt)
}

func TestBuildBundle(t *testing.T) {
	tr := seededTracker(t, "st-1", "st-2")
	e := New(tr, chainTransitions([2]string{"st-1", "st-2"}), DefaultConfig())

	bundle, err := e.BuildBundle()
	require.NoError(t, err)
	require.NotNil(t, bundle.Context)
	require.Len(t, bundle.States, 2)
	require.Len(t, bundle.Transitions, 1)

	// every record carries the bundle's context id
	for _, s := range bundle.States {
		require.Equal(t, bundle.Context.ContextID, s.ContextID)
	}
	for _, tr := range bundle.Transitions {
		require.Equal(t, bundle.Context.ContextID, tr.ContextID)
	}
}
