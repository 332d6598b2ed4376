// Package ingest accepts context, state, transition, and bundle payloads,
// validates them, and writes them into the graph store. It is transport
// agnostic; the HTTP layer wraps it.
package ingest

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Rejean-McCormick/Ariane/pkg/model"
	"github.com/Rejean-McCormick/Ariane/pkg/store"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Error reports an invalid or incomplete ingest payload. The HTTP layer
// maps it to 400.
type Error struct {
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func errorf(format string, args ...any) *Error {
	return &Error{Detail: fmt.Sprintf(format, args...)}
}

// Handler validates ingest payloads and writes them into the store.
//
// Payloads are first checked against the embedded JSON Schemas, then
// decoded and normalized by the model package. Contexts additionally pass
// a schema_version gate: the payload's major version must match the
// version this build speaks.
type Handler struct {
	store *store.GraphStore

	contextSchema    *jsonschema.Schema
	stateSchema      *jsonschema.Schema
	transitionSchema *jsonschema.Schema
	supported        *semver.Version
}

// NewHandler compiles the payload schemas and returns a handler over the
// given store.
func NewHandler(gs *store.GraphStore) (*Handler, error) {
	compiler := jsonschema.NewCompiler()
	for _, name := range []string{"context.json", "state_record.json", "transition_record.json"} {
		raw, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}
		if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
	}

	h := &Handler{store: gs}
	var err error
	if h.contextSchema, err = compiler.Compile("context.json"); err != nil {
		return nil, fmt.Errorf("compile context schema: %w", err)
	}
	if h.stateSchema, err = compiler.Compile("state_record.json"); err != nil {
		return nil, fmt.Errorf("compile state schema: %w", err)
	}
	if h.transitionSchema, err = compiler.Compile("transition_record.json"); err != nil {
		return nil, fmt.Errorf("compile transition schema: %w", err)
	}
	if h.supported, err = semver.NewVersion(model.SchemaVersion); err != nil {
		return nil, fmt.Errorf("parse schema version: %w", err)
	}
	return h, nil
}

func (h *Handler) validate(sch *jsonschema.Schema, raw []byte, what string) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return errorf("%s payload is not valid JSON: %v", what, err)
	}
	if err := sch.Validate(v); err != nil {
		return errorf("invalid %s payload: %v", what, err)
	}
	return nil
}

// ContextResult is the response for a single context ingest.
type ContextResult struct {
	Status    string `json:"status"`
	ContextID string `json:"context_id"`
}

// IngestContext validates and stores a single context. With overwrite
// unset, an existing context with the same id is an error.
func (h *Handler) IngestContext(raw json.RawMessage, overwrite bool) (ContextResult, error) {
	if err := h.validate(h.contextSchema, raw, "context"); err != nil {
		return ContextResult{}, err
	}
	ctx, err := model.DecodeContext(raw)
	if err != nil {
		return ContextResult{}, errorf("invalid context payload: %v", err)
	}

	v, err := semver.NewVersion(ctx.SchemaVersion)
	if err != nil {
		return ContextResult{}, errorf("context %q: unparseable schema_version %q", ctx.ContextID, ctx.SchemaVersion)
	}
	if v.Major() != h.supported.Major() {
		return ContextResult{}, errorf(
			"context %q: schema_version %s is not compatible with %s",
			ctx.ContextID, ctx.SchemaVersion, model.SchemaVersion)
	}

	if err := h.store.AddContext(ctx, overwrite); err != nil {
		if errors.Is(err, store.ErrContextExists) {
			return ContextResult{}, errorf("context %q already exists", ctx.ContextID)
		}
		return ContextResult{}, err
	}
	return ContextResult{Status: "ok", ContextID: ctx.ContextID}, nil
}

// StateResult is the response for a single state ingest.
type StateResult struct {
	Status    string `json:"status"`
	ContextID string `json:"context_id"`
	StateID   string `json:"state_id"`
}

// IngestStateRecord validates and stores a single state record. The
// record's context must already exist.
func (h *Handler) IngestStateRecord(raw json.RawMessage) (StateResult, error) {
	if err := h.validate(h.stateSchema, raw, "state record"); err != nil {
		return StateResult{}, err
	}
	rec, err := model.DecodeStateRecord(raw)
	if err != nil {
		return StateResult{}, errorf("invalid state record payload: %v", err)
	}
	if _, exists := h.store.GetContext(rec.ContextID); !exists {
		return StateResult{}, errorf("context %q does not exist", rec.ContextID)
	}
	if err := h.store.UpsertState(rec); err != nil {
		return StateResult{}, err
	}
	return StateResult{Status: "ok", ContextID: rec.ContextID, StateID: rec.ID()}, nil
}

// StatesResult is the response for a batch state ingest.
type StatesResult struct {
	Status     string   `json:"status"`
	Count      int      `json:"count"`
	StateIDs   []string `json:"state_ids"`
	ContextIDs []string `json:"context_ids"`
}

// IngestStateRecords ingests a batch of state records in order. The first
// failure aborts the batch; earlier records stay stored.
func (h *Handler) IngestStateRecords(raws []json.RawMessage) (StatesResult, error) {
	stateIDs := []string{}
	ctxIDs := newIDSet()
	for _, raw := range raws {
		res, err := h.IngestStateRecord(raw)
		if err != nil {
			return StatesResult{}, err
		}
		stateIDs = append(stateIDs, res.StateID)
		ctxIDs.add(res.ContextID)
	}
	return StatesResult{
		Status:     "ok",
		Count:      len(stateIDs),
		StateIDs:   stateIDs,
		ContextIDs: ctxIDs.sorted(),
	}, nil
}

// TransitionResult is the response for a single transition ingest.
type TransitionResult struct {
	Status       string `json:"status"`
	ContextID    string `json:"context_id"`
	TransitionID string `json:"transition_id"`
}

// IngestTransitionRecord validates and stores a single transition record.
// The context and both endpoint states must already exist. Re-ingesting an
// existing transition id bumps its observation count.
func (h *Handler) IngestTransitionRecord(raw json.RawMessage) (TransitionResult, error) {
	if err := h.validate(h.transitionSchema, raw, "transition record"); err != nil {
		return TransitionResult{}, err
	}
	rec, err := model.DecodeTransitionRecord(raw)
	if err != nil {
		return TransitionResult{}, errorf("invalid transition record payload: %v", err)
	}
	if _, exists := h.store.GetContext(rec.ContextID); !exists {
		return TransitionResult{}, errorf("context %q does not exist", rec.ContextID)
	}
	if _, exists := h.store.GetState(rec.ContextID, rec.SourceStateID()); !exists {
		return TransitionResult{}, errorf(
			"source state %q not found in context %q", rec.SourceStateID(), rec.ContextID)
	}
	if _, exists := h.store.GetState(rec.ContextID, rec.TargetStateID()); !exists {
		return TransitionResult{}, errorf(
			"target state %q not found in context %q", rec.TargetStateID(), rec.ContextID)
	}
	if err := h.store.UpsertTransition(rec, true); err != nil {
		return TransitionResult{}, err
	}
	return TransitionResult{Status: "ok", ContextID: rec.ContextID, TransitionID: rec.ID()}, nil
}

// TransitionsResult is the response for a batch transition ingest.
type TransitionsResult struct {
	Status        string   `json:"status"`
	Count         int      `json:"count"`
	TransitionIDs []string `json:"transition_ids"`
	ContextIDs    []string `json:"context_ids"`
}

// IngestTransitionRecords ingests a batch of transition records in order.
// The first failure aborts the batch; earlier records stay stored.
func (h *Handler) IngestTransitionRecords(raws []json.RawMessage) (TransitionsResult, error) {
	trIDs := []string{}
	ctxIDs := newIDSet()
	for _, raw := range raws {
		res, err := h.IngestTransitionRecord(raw)
		if err != nil {
			return TransitionsResult{}, err
		}
		trIDs = append(trIDs, res.TransitionID)
		ctxIDs.add(res.ContextID)
	}
	return TransitionsResult{
		Status:        "ok",
		Count:         len(trIDs),
		TransitionIDs: trIDs,
		ContextIDs:    ctxIDs.sorted(),
	}, nil
}

// BundleContextInfo reports whether a bundle carried a context.
type BundleContextInfo struct {
	Ingested  bool    `json:"ingested"`
	ContextID *string `json:"context_id"`
}

// BundleCount is a member count in a bundle response.
type BundleCount struct {
	Count int `json:"count"`
}

// BundleResult is the response for a bundle ingest.
type BundleResult struct {
	Status      string            `json:"status"`
	Context     BundleContextInfo `json:"context"`
	States      BundleCount       `json:"states"`
	Transitions BundleCount       `json:"transitions"`
}

// IngestBundle ingests a composite payload in fixed order: context first
// (overwriting), then states, then transitions. A failure part-way leaves
// the earlier members stored; nothing is rolled back.
func (h *Handler) IngestBundle(raw json.RawMessage) (BundleResult, error) {
	var bundle struct {
		Context     json.RawMessage   `json:"context"`
		States      []json.RawMessage `json:"states"`
		Transitions []json.RawMessage `json:"transitions"`
	}
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return BundleResult{}, errorf("bundle payload is not valid JSON: %v", err)
	}

	result := BundleResult{Status: "ok"}

	if len(bundle.Context) > 0 && !bytes.Equal(bundle.Context, []byte("null")) {
		ctxRes, err := h.IngestContext(bundle.Context, true)
		if err != nil {
			return BundleResult{}, err
		}
		result.Context.Ingested = true
		result.Context.ContextID = &ctxRes.ContextID
	}
	if bundle.States != nil {
		statesRes, err := h.IngestStateRecords(bundle.States)
		if err != nil {
			return BundleResult{}, err
		}
		result.States.Count = statesRes.Count
	}
	if bundle.Transitions != nil {
		trRes, err := h.IngestTransitionRecords(bundle.Transitions)
		if err != nil {
			return BundleResult{}, err
		}
		result.Transitions.Count = trRes.Count
	}
	return result, nil
}

type idSet map[string]struct{}

func newIDSet() idSet { return make(idSet) }

func (s idSet) add(id string) { s[id] = struct{}{} }

func (s idSet) sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
