package tracker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Rejean-McCormick/Ariane/pkg/model"
)

func webState(id string, fingerprints map[string]string) *model.UIState {
	if fingerprints == nil {
		fingerprints = map[string]string{}
	}
	return &model.UIState{
		ID:           id,
		AppID:        "calc",
		Platform:     model.PlatformWeb,
		Fingerprints: fingerprints,
		Elements:     []model.InteractiveElement{},
		Metadata:     map[string]any{},
	}
}

func TestObserveStateNew(t *testing.T) {
	tr := New(DefaultConfig())

	id, isNew := tr.ObserveState(webState("st-1", map[string]string{"structural": "abc"}))
	require.True(t, isNew)
	require.Equal(t, "st-1", id)
	require.Equal(t, 1, tr.Len())

	tracked, ok := tr.Tracked("st-1")
	require.True(t, ok)
	require.Equal(t, 1, tracked.TimesSeen)
	require.Equal(t, tracked.FirstSeenAt, tracked.LastSeenAt)
}

func TestObserveStateDedupByFingerprint(t *testing.T) {
	tr := New(DefaultConfig())

	first, isNew := tr.ObserveState(webState("st-1", map[string]string{"structural": "abc"}))
	require.True(t, isNew)

	// same structural fingerprint under a different id merges
	second, isNew := tr.ObserveState(webState("st-2", map[string]string{"structural": "abc"}))
	require.False(t, isNew)
	require.Equal(t, first, second)
	require.Equal(t, 1, tr.Len())

	tracked, _ := tr.Tracked("st-1")
	require.Equal(t, 2, tracked.TimesSeen)
}

func TestObserveStateFingerprintPriority(t *testing.T) {
	tr := New(DefaultConfig())

	// structural wins over visual when both are present
	_, isNew := tr.ObserveState(webState("st-1", map[string]string{
		"structural": "s1", "visual": "v1",
	}))
	require.True(t, isNew)

	// matching visual only is not enough when structural differs
	_, isNew = tr.ObserveState(webState("st-2", map[string]string{
		"structural": "s2", "visual": "v1",
	}))
	require.True(t, isNew)

	// visual-only state matches nothing structural, keys off visual
	_, isNew = tr.ObserveState(webState("st-3", map[string]string{"visual": "v9"}))
	require.True(t, isNew)
	id, isNew := tr.ObserveState(webState("st-4", map[string]string{"visual": "v9"}))
	require.False(t, isNew)
	require.Equal(t, "st-3", id)
}

func TestObserveStateIDFallback(t *testing.T) {
	tr := New(DefaultConfig())

	_, isNew := tr.ObserveState(webState("st-1", nil))
	require.True(t, isNew)
	_, isNew = tr.ObserveState(webState("st-1", nil))
	require.False(t, isNew)

	noFallback := New(Config{AllowIDFallback: false, AutoGenerateIDs: false})
	_, isNew = noFallback.ObserveState(webState("st-1", nil))
	require.True(t, isNew)
	// without a dedup key every observation is a new state
	_, isNew = noFallback.ObserveState(webState("st-1", nil))
	require.True(t, isNew)
}

func TestObserveStateAutoGeneratesID(t *testing.T) {
	tr := New(DefaultConfig())

	st := webState("", map[string]string{"structural": "abc"})
	id, isNew := tr.ObserveState(st)
	require.True(t, isNew)
	require.NotEmpty(t, id)
	require.Equal(t, st.ID, id)
	require.Len(t, id, 32)
	require.NotContains(t, id, "-")
}

func TestAccessors(t *testing.T) {
	tr := New(DefaultConfig())
	_, _ = tr.ObserveState(webState("st-b", map[string]string{"structural": "b"}))
	_, _ = tr.ObserveState(webState("st-a", map[string]string{"structural": "a"}))

	all := tr.AllTracked()
	require.Len(t, all, 2)
	require.Equal(t, "st-a", all[0].State.ID)
	require.Equal(t, "st-b", all[1].State.ID)

	states := tr.AllStates()
	require.Len(t, states, 2)

	st, ok := tr.State("st-a")
	require.True(t, ok)
	require.Equal(t, "st-a", st.ID)

	_, ok = tr.State("missing")
	require.False(t, ok)
}

func TestTrackedEntriesAreCopies(t *testing.T) {
	tr := New(DefaultConfig())
	_, _ = tr.ObserveState(webState("st-1", map[string]string{"structural": "abc"}))

	tracked, _ := tr.Tracked("st-1")
	tracked.TimesSeen = 99

	again, _ := tr.Tracked("st-1")
	require.Equal(t, 1, again.TimesSeen)
}
