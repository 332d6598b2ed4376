// Package workflow manages named workflow definitions: ordered transition
// id sequences referencing the graph store. It validates references on
// write and can expand them on read.
package workflow

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Rejean-McCormick/Ariane/pkg/model"
	"github.com/Rejean-McCormick/Ariane/pkg/store"
)

// Error reports an invalid workflow payload or a missing workflow,
// context, or transition. The HTTP layer maps it to 400 on writes and
// 404 on reads.
type Error struct {
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func errorf(format string, args ...any) *Error {
	return &Error{Detail: fmt.Sprintf(format, args...)}
}

// Handler manages workflows over the graph store and the workflow store.
// The graph store validates context ids and transition references; the
// workflow store holds the definitions.
type Handler struct {
	graph     *store.GraphStore
	workflows *store.WorkflowStore
}

// NewHandler returns a workflow handler over the given stores.
func NewHandler(graph *store.GraphStore, workflows *store.WorkflowStore) *Handler {
	return &Handler{graph: graph, workflows: workflows}
}

// UpsertResponse confirms a stored workflow.
type UpsertResponse struct {
	Status   string         `json:"status"`
	Workflow model.Workflow `json:"workflow"`
}

// Upsert validates and stores a workflow definition. The context must
// exist and every referenced transition must exist under it.
func (h *Handler) Upsert(raw json.RawMessage) (UpsertResponse, error) {
	wf, err := model.DecodeWorkflow(raw)
	if err != nil {
		return UpsertResponse{}, errorf("invalid workflow payload: %v", err)
	}

	if _, ok := h.graph.GetContext(wf.ContextID); !ok {
		return UpsertResponse{}, errorf("context %q not found", wf.ContextID)
	}
	var missing []string
	for _, trID := range wf.TransitionIDs {
		if _, ok := h.graph.GetTransition(wf.ContextID, trID); !ok {
			missing = append(missing, trID)
		}
	}
	if len(missing) > 0 {
		return UpsertResponse{}, errorf(
			"transitions not found in context %q: %s", wf.ContextID, strings.Join(missing, ", "))
	}

	h.workflows.Upsert(wf)
	return UpsertResponse{Status: "ok", Workflow: wf}, nil
}

// GetResponse wraps a single workflow. Transitions is only present when
// expansion was requested, and is then a list even when empty.
type GetResponse struct {
	Workflow    model.Workflow            `json:"workflow"`
	Transitions *[]model.TransitionRecord `json:"transitions,omitempty"`
}

// Get returns a workflow by id. With expand set, the referenced
// transitions are resolved through the graph store; references that no
// longer resolve are skipped.
func (h *Handler) Get(workflowID string, expand bool) (GetResponse, error) {
	wf, ok := h.workflows.Get(workflowID)
	if !ok {
		return GetResponse{}, errorf("workflow %q not found", workflowID)
	}

	resp := GetResponse{Workflow: wf}
	if expand {
		records := []model.TransitionRecord{}
		for _, trID := range wf.TransitionIDs {
			if rec, ok := h.graph.GetTransition(wf.ContextID, trID); ok {
				records = append(records, rec)
			}
		}
		resp.Transitions = &records
	}
	return resp, nil
}

// ListResponse lists workflows, echoing the context filter.
type ListResponse struct {
	ContextID *string          `json:"context_id"`
	Workflows []model.Workflow `json:"workflows"`
}

// List returns workflows filtered by context, intent id, and tag. Empty
// filter values match everything. A non-empty context filter must name an
// existing context.
func (h *Handler) List(contextID, intentID, tag string) (ListResponse, error) {
	var ctxEcho *string
	if contextID != "" {
		if _, ok := h.graph.GetContext(contextID); !ok {
			return ListResponse{}, errorf("context %q not found", contextID)
		}
		ctxEcho = &contextID
	}
	return ListResponse{
		ContextID: ctxEcho,
		Workflows: h.workflows.List(contextID, intentID, tag),
	}, nil
}

// DeleteResponse reports a deletion. Deleted is false when the workflow
// did not exist.
type DeleteResponse struct {
	Status  string `json:"status"`
	Deleted bool   `json:"deleted"`
}

// Delete removes a workflow by id. Deleting a missing workflow is not an
// error.
func (h *Handler) Delete(workflowID string) DeleteResponse {
	return DeleteResponse{Status: "ok", Deleted: h.workflows.Delete(workflowID)}
}
