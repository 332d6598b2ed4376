// Package query serves read-only lookups over the graph store: contexts,
// states, transitions, adjacency, shortest paths, and the health census.
// It is transport agnostic; the HTTP layer wraps it.
package query

import (
	"fmt"

	"github.com/Rejean-McCormick/Ariane/pkg/model"
	"github.com/Rejean-McCormick/Ariane/pkg/store"
)

// Error reports a query that cannot be satisfied, usually a missing
// context, state, or transition. The HTTP layer maps it to 404.
type Error struct {
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func errorf(format string, args ...any) *Error {
	return &Error{Detail: fmt.Sprintf(format, args...)}
}

// StateFilter narrows list_states results. Empty fields match everything.
// Tag matching is case-insensitive; source and review status are exact
// matches against the record metadata.
type StateFilter struct {
	Tag          string
	Source       string
	ReviewStatus string
}

// TransitionFilter narrows transition listings. Empty fields match
// everything.
type TransitionFilter struct {
	Source       string
	ReviewStatus string
	IntentID     string
}

// Handler is the read side of the store.
type Handler struct {
	store *store.GraphStore
}

// NewHandler returns a query handler over the given store.
func NewHandler(gs *store.GraphStore) *Handler {
	return &Handler{store: gs}
}

// ContextsResponse lists every known context.
type ContextsResponse struct {
	Contexts []model.Context `json:"contexts"`
}

// ListContexts returns all contexts.
func (h *Handler) ListContexts() ContextsResponse {
	return ContextsResponse{Contexts: h.store.ListContexts()}
}

// ContextResponse wraps a single context.
type ContextResponse struct {
	Context model.Context `json:"context"`
}

// GetContext returns a single context by id.
func (h *Handler) GetContext(contextID string) (ContextResponse, error) {
	ctx, ok := h.store.GetContext(contextID)
	if !ok {
		return ContextResponse{}, errorf("context %q not found", contextID)
	}
	return ContextResponse{Context: ctx}, nil
}

// StateResponse wraps a single state record.
type StateResponse struct {
	ContextID string            `json:"context_id"`
	State     model.StateRecord `json:"state"`
}

// GetState returns a single state record. Both the context and the state
// must exist.
func (h *Handler) GetState(contextID, stateID string) (StateResponse, error) {
	if err := h.requireContext(contextID); err != nil {
		return StateResponse{}, err
	}
	rec, ok := h.store.GetState(contextID, stateID)
	if !ok {
		return StateResponse{}, errorf("state %q not found in context %q", stateID, contextID)
	}
	return StateResponse{ContextID: contextID, State: rec}, nil
}

// StatesResponse lists state records within one context.
type StatesResponse struct {
	ContextID string              `json:"context_id"`
	States    []model.StateRecord `json:"states"`
}

// ListStates returns the states of a context, filtered. When the tag is
// the only filter the store's tag index answers directly; otherwise each
// filter is applied exactly once over the full listing.
func (h *Handler) ListStates(contextID string, filter StateFilter) (StatesResponse, error) {
	if err := h.requireContext(contextID); err != nil {
		return StatesResponse{}, err
	}

	var records []model.StateRecord
	if filter.Tag != "" && filter.Source == "" && filter.ReviewStatus == "" {
		records = h.store.FindStatesByTag(contextID, filter.Tag)
	} else {
		records = h.store.ListStates(contextID)
		filtered := records[:0:0]
		for _, r := range records {
			if filter.Tag != "" && !r.HasTag(filter.Tag) {
				continue
			}
			if filter.Source != "" && model.MetaString(r.Metadata, model.MetaSource) != filter.Source {
				continue
			}
			if filter.ReviewStatus != "" && model.MetaString(r.Metadata, model.MetaReviewStatus) != filter.ReviewStatus {
				continue
			}
			filtered = append(filtered, r)
		}
		records = filtered
	}
	if records == nil {
		records = []model.StateRecord{}
	}
	return StatesResponse{ContextID: contextID, States: records}, nil
}

// TransitionResponse wraps a single transition record.
type TransitionResponse struct {
	ContextID  string                 `json:"context_id"`
	Transition model.TransitionRecord `json:"transition"`
}

// GetTransition returns a single transition record. Both the context and
// the transition must exist.
func (h *Handler) GetTransition(contextID, transitionID string) (TransitionResponse, error) {
	if err := h.requireContext(contextID); err != nil {
		return TransitionResponse{}, err
	}
	rec, ok := h.store.GetTransition(contextID, transitionID)
	if !ok {
		return TransitionResponse{}, errorf("transition %q not found in context %q", transitionID, contextID)
	}
	return TransitionResponse{ContextID: contextID, Transition: rec}, nil
}

// TransitionsResponse lists transition records within one context.
type TransitionsResponse struct {
	ContextID   string                   `json:"context_id"`
	Transitions []model.TransitionRecord `json:"transitions"`
}

// ListTransitions returns the transitions of a context, filtered.
func (h *Handler) ListTransitions(contextID string, filter TransitionFilter) (TransitionsResponse, error) {
	if err := h.requireContext(contextID); err != nil {
		return TransitionsResponse{}, err
	}
	records := filterTransitions(h.store.ListTransitions(contextID), filter)
	return TransitionsResponse{ContextID: contextID, Transitions: records}, nil
}

// OutgoingResponse lists the transitions leaving one state.
type OutgoingResponse struct {
	ContextID string                   `json:"context_id"`
	StateID   string                   `json:"state_id"`
	Outgoing  []model.TransitionRecord `json:"outgoing"`
}

// ListOutgoing returns the transitions leaving a state, filtered. The
// context and the state must exist.
func (h *Handler) ListOutgoing(contextID, stateID string, filter TransitionFilter) (OutgoingResponse, error) {
	if err := h.requireState(contextID, stateID); err != nil {
		return OutgoingResponse{}, err
	}
	records := filterTransitions(h.store.ListOutgoing(contextID, stateID), filter)
	return OutgoingResponse{ContextID: contextID, StateID: stateID, Outgoing: records}, nil
}

// IncomingResponse lists the transitions entering one state.
type IncomingResponse struct {
	ContextID string                   `json:"context_id"`
	StateID   string                   `json:"state_id"`
	Incoming  []model.TransitionRecord `json:"incoming"`
}

// ListIncoming returns the transitions entering a state, filtered. The
// context and the state must exist.
func (h *Handler) ListIncoming(contextID, stateID string, filter TransitionFilter) (IncomingResponse, error) {
	if err := h.requireState(contextID, stateID); err != nil {
		return IncomingResponse{}, err
	}
	records := filterTransitions(h.store.ListIncoming(contextID, stateID), filter)
	return IncomingResponse{ContextID: contextID, StateID: stateID, Incoming: records}, nil
}

// PathResponse reports a shortest-path computation. Path is null when no
// path exists and an empty array when source and target coincide.
type PathResponse struct {
	ContextID     string                   `json:"context_id"`
	SourceStateID string                   `json:"source_state_id"`
	TargetStateID string                   `json:"target_state_id"`
	Path          []model.TransitionRecord `json:"path"`
}

// ShortestPath computes a shortest path between two states of a context.
// The context and both states must exist. maxDepth below zero means
// unlimited.
func (h *Handler) ShortestPath(contextID, sourceStateID, targetStateID string, maxDepth int) (PathResponse, error) {
	if err := h.requireState(contextID, sourceStateID); err != nil {
		return PathResponse{}, err
	}
	if err := h.requireState(contextID, targetStateID); err != nil {
		return PathResponse{}, err
	}

	resp := PathResponse{
		ContextID:     contextID,
		SourceStateID: sourceStateID,
		TargetStateID: targetStateID,
	}
	// a nil path marshals to null, an empty one to []
	if path, found := h.store.ShortestPath(contextID, sourceStateID, targetStateID, maxDepth); found {
		resp.Path = path
	}
	return resp, nil
}

// HealthResponse is the minimal liveness payload: the store is reachable
// and countable.
type HealthResponse struct {
	Status  string      `json:"status"`
	Details store.Stats `json:"details"`
}

// Health returns the store census without touching any record.
func (h *Handler) Health() HealthResponse {
	return HealthResponse{Status: "ok", Details: h.store.Stats()}
}

func (h *Handler) requireContext(contextID string) error {
	if _, ok := h.store.GetContext(contextID); !ok {
		return errorf("context %q not found", contextID)
	}
	return nil
}

func (h *Handler) requireState(contextID, stateID string) error {
	if err := h.requireContext(contextID); err != nil {
		return err
	}
	if _, ok := h.store.GetState(contextID, stateID); !ok {
		return errorf("state %q not found in context %q", stateID, contextID)
	}
	return nil
}

func filterTransitions(records []model.TransitionRecord, filter TransitionFilter) []model.TransitionRecord {
	out := []model.TransitionRecord{}
	for _, r := range records {
		if filter.Source != "" && model.MetaString(r.Metadata, model.MetaSource) != filter.Source {
			continue
		}
		if filter.ReviewStatus != "" && model.MetaString(r.Metadata, model.MetaReviewStatus) != filter.ReviewStatus {
			continue
		}
		if filter.IntentID != "" && r.IntentID() != filter.IntentID {
			continue
		}
		out = append(out, r)
	}
	return out
}
