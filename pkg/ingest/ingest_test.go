package ingest

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Rejean-McCormick/Ariane/pkg/store"
)

func newTestHandler(t *testing.T) (*Handler, *store.GraphStore) {
	t.Helper()
	gs := store.NewGraphStore(store.Config{})
	h, err := NewHandler(gs)
	require.NoError(t, err)
	return h, gs
}

func contextPayload(id string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"context_id":%q,"app_id":"calc","platform":"web"}`, id))
}

func statePayload(ctxID, stateID string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{
		"context_id": %q,
		"state": {"id": %q, "app_id": "calc", "platform": "web"}
	}`, ctxID, stateID))
}

func transitionPayload(ctxID, trID, src, tgt string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{
		"context_id": %q,
		"transition": {
			"id": %q,
			"source_state_id": %q,
			"target_state_id": %q,
			"action": {"type": "click", "element_id": "btn-1"}
		}
	}`, ctxID, trID, src, tgt))
}

func TestIngestContext(t *testing.T) {
	h, gs := newTestHandler(t)

	res, err := h.IngestContext(contextPayload("ctx-1"), false)
	require.NoError(t, err)
	require.Equal(t, ContextResult{Status: "ok", ContextID: "ctx-1"}, res)

	_, ok := gs.GetContext("ctx-1")
	require.True(t, ok)
}

func TestIngestContextOverwrite(t *testing.T) {
	h, _ := newTestHandler(t)
	_, err := h.IngestContext(contextPayload("ctx-1"), false)
	require.NoError(t, err)

	_, err = h.IngestContext(contextPayload("ctx-1"), false)
	var ingErr *Error
	require.ErrorAs(t, err, &ingErr)
	require.Contains(t, ingErr.Detail, "already exists")

	_, err = h.IngestContext(contextPayload("ctx-1"), true)
	require.NoError(t, err)
}

func TestIngestContextSchemaValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	var ingErr *Error
	_, err := h.IngestContext(json.RawMessage(`{"app_id":"calc"}`), false)
	require.ErrorAs(t, err, &ingErr)

	_, err = h.IngestContext(json.RawMessage(`{"context_id":"","app_id":"calc"}`), false)
	require.ErrorAs(t, err, &ingErr)

	_, err = h.IngestContext(json.RawMessage(`not json`), false)
	require.ErrorAs(t, err, &ingErr)
}

func TestIngestContextSchemaVersionGate(t *testing.T) {
	h, _ := newTestHandler(t)

	// same major, newer minor: accepted
	_, err := h.IngestContext(json.RawMessage(
		`{"context_id":"ctx-1","app_id":"calc","schema_version":"1.3.0"}`), false)
	require.NoError(t, err)

	var ingErr *Error
	_, err = h.IngestContext(json.RawMessage(
		`{"context_id":"ctx-2","app_id":"calc","schema_version":"2.0.0"}`), false)
	require.ErrorAs(t, err, &ingErr)
	require.Contains(t, ingErr.Detail, "not compatible")

	_, err = h.IngestContext(json.RawMessage(
		`{"context_id":"ctx-3","app_id":"calc","schema_version":"banana"}`), false)
	require.ErrorAs(t, err, &ingErr)
}

func TestIngestStateRequiresContext(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.IngestStateRecord(statePayload("ctx-1", "st-1"))
	var ingErr *Error
	require.ErrorAs(t, err, &ingErr)
	require.Contains(t, ingErr.Detail, "does not exist")
}

func TestIngestStateRecord(t *testing.T) {
	h, gs := newTestHandler(t)
	_, err := h.IngestContext(contextPayload("ctx-1"), false)
	require.NoError(t, err)

	res, err := h.IngestStateRecord(statePayload("ctx-1", "st-1"))
	require.NoError(t, err)
	require.Equal(t, StateResult{Status: "ok", ContextID: "ctx-1", StateID: "st-1"}, res)

	rec, ok := gs.GetState("ctx-1", "st-1")
	require.True(t, ok)
	require.NotEmpty(t, rec.DiscoveredAt)
}

func TestIngestStateRecordsBatch(t *testing.T) {
	h, _ := newTestHandler(t)
	_, err := h.IngestContext(contextPayload("ctx-1"), false)
	require.NoError(t, err)

	res, err := h.IngestStateRecords([]json.RawMessage{
		statePayload("ctx-1", "st-1"),
		statePayload("ctx-1", "st-2"),
	})
	require.NoError(t, err)
	require.Equal(t, 2, res.Count)
	require.Equal(t, []string{"st-1", "st-2"}, res.StateIDs)
	require.Equal(t, []string{"ctx-1"}, res.ContextIDs)
}

func TestIngestStateRecordsBatchStopsOnError(t *testing.T) {
	h, gs := newTestHandler(t)
	_, err := h.IngestContext(contextPayload("ctx-1"), false)
	require.NoError(t, err)

	_, err = h.IngestStateRecords([]json.RawMessage{
		statePayload("ctx-1", "st-1"),
		statePayload("ctx-missing", "st-2"),
		statePayload("ctx-1", "st-3"),
	})
	var ingErr *Error
	require.ErrorAs(t, err, &ingErr)

	// the batch is not transactional: the first record is kept, the rest skipped
	_, ok := gs.GetState("ctx-1", "st-1")
	require.True(t, ok)
	_, ok = gs.GetState("ctx-1", "st-3")
	require.False(t, ok)
}

func TestIngestTransitionRequiresEndpoints(t *testing.T) {
	h, _ := newTestHandler(t)
	_, err := h.IngestContext(contextPayload("ctx-1"), false)
	require.NoError(t, err)
	_, err = h.IngestStateRecord(statePayload("ctx-1", "st-1"))
	require.NoError(t, err)

	var ingErr *Error
	_, err = h.IngestTransitionRecord(transitionPayload("ctx-1", "tr-1", "st-1", "st-2"))
	require.ErrorAs(t, err, &ingErr)
	require.Contains(t, ingErr.Detail, "target state")

	_, err = h.IngestTransitionRecord(transitionPayload("ctx-1", "tr-1", "st-9", "st-1"))
	require.ErrorAs(t, err, &ingErr)
	require.Contains(t, ingErr.Detail, "source state")
}

func TestIngestTransitionIncrementsObserved(t *testing.T) {
	h, gs := newTestHandler(t)
	_, err := h.IngestContext(contextPayload("ctx-1"), false)
	require.NoError(t, err)
	_, err = h.IngestStateRecords([]json.RawMessage{
		statePayload("ctx-1", "st-1"),
		statePayload("ctx-1", "st-2"),
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = h.IngestTransitionRecord(transitionPayload("ctx-1", "tr-1", "st-1", "st-2"))
		require.NoError(t, err)
	}

	rec, ok := gs.GetTransition("ctx-1", "tr-1")
	require.True(t, ok)
	require.Equal(t, 3, rec.TimesObserved)
}

func TestIngestBundle(t *testing.T) {
	h, gs := newTestHandler(t)

	bundle := json.RawMessage(`{
		"context": {"context_id": "ctx-1", "app_id": "calc", "platform": "web"},
		"states": [
			{"context_id": "ctx-1", "state": {"id": "st-1", "app_id": "calc"}},
			{"context_id": "ctx-1", "state": {"id": "st-2", "app_id": "calc"}}
		],
		"transitions": [
			{"context_id": "ctx-1", "transition": {
				"id": "tr-1", "source_state_id": "st-1", "target_state_id": "st-2",
				"action": {"type": "click"}
			}}
		]
	}`)

	res, err := h.IngestBundle(bundle)
	require.NoError(t, err)
	require.Equal(t, "ok", res.Status)
	require.True(t, res.Context.Ingested)
	require.NotNil(t, res.Context.ContextID)
	require.Equal(t, "ctx-1", *res.Context.ContextID)
	require.Equal(t, 2, res.States.Count)
	require.Equal(t, 1, res.Transitions.Count)

	require.Equal(t, store.Stats{Contexts: 1, States: 2, Transitions: 1}, gs.Stats())
}

func TestIngestBundleWithoutContext(t *testing.T) {
	h, _ := newTestHandler(t)
	_, err := h.IngestContext(contextPayload("ctx-1"), false)
	require.NoError(t, err)

	res, err := h.IngestBundle(json.RawMessage(`{
		"states": [{"context_id": "ctx-1", "state": {"id": "st-1", "app_id": "calc"}}]
	}`))
	require.NoError(t, err)
	require.False(t, res.Context.Ingested)
	require.Nil(t, res.Context.ContextID)
	require.Equal(t, 1, res.States.Count)

	// context_id serializes to null when no context was carried
	body, err := json.Marshal(res)
	require.NoError(t, err)
	require.Contains(t, string(body), `"context_id":null`)
}

func TestIngestBundlePartialFailureKeepsEarlierMembers(t *testing.T) {
	h, gs := newTestHandler(t)

	_, err := h.IngestBundle(json.RawMessage(`{
		"context": {"context_id": "ctx-1", "app_id": "calc"},
		"states": [{"context_id": "ctx-1", "state": {"id": "st-1", "app_id": "calc"}}],
		"transitions": [{"context_id": "ctx-1", "transition": {
			"id": "tr-1", "source_state_id": "st-1", "target_state_id": "st-missing"
		}}]
	}`))
	var ingErr *Error
	require.ErrorAs(t, err, &ingErr)

	// context and states survive the failed transition
	_, ok := gs.GetContext("ctx-1")
	require.True(t, ok)
	_, ok = gs.GetState("ctx-1", "st-1")
	require.True(t, ok)
	_, ok = gs.GetTransition("ctx-1", "tr-1")
	require.False(t, ok)
}

func TestIngestTransitionSchemaBounds(t *testing.T) {
	h, _ := newTestHandler(t)
	_, err := h.IngestContext(contextPayload("ctx-1"), false)
	require.NoError(t, err)

	var ingErr *Error
	_, err = h.IngestTransitionRecord(json.RawMessage(`{
		"context_id": "ctx-1",
		"transition": {"id": "tr-1", "source_state_id": "a", "target_state_id": "b", "confidence": 1.5}
	}`))
	require.ErrorAs(t, err, &ingErr)

	_, err = h.IngestTransitionRecord(json.RawMessage(`{
		"context_id": "ctx-1",
		"times_observed": 0,
		"transition": {"id": "tr-1", "source_state_id": "a", "target_state_id": "b"}
	}`))
	require.ErrorAs(t, err, &ingErr)
}
