package store

import (
	"sort"
	"sync"

	"github.com/Rejean-McCormick/Ariane/pkg/model"
)

// WorkflowStore holds workflow definitions in memory, separately from the
// graph. It stores only names, metadata, and transition id lists; the
// transitions themselves stay in the GraphStore. Safe for concurrent use.
type WorkflowStore struct {
	mu        sync.Mutex
	workflows map[string]model.Workflow
	// context id -> workflow id set
	byContext map[string]map[string]struct{}
}

// NewWorkflowStore returns an empty workflow store.
func NewWorkflowStore() *WorkflowStore {
	return &WorkflowStore{
		workflows: make(map[string]model.Workflow),
		byContext: make(map[string]map[string]struct{}),
	}
}

// Upsert inserts or replaces a workflow definition.
func (w *WorkflowStore) Upsert(wf model.Workflow) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if existing, ok := w.workflows[wf.WorkflowID]; ok && existing.ContextID != wf.ContextID {
		w.removeFromContextLocked(existing.ContextID, wf.WorkflowID)
	}
	w.workflows[wf.WorkflowID] = wf

	ids, ok := w.byContext[wf.ContextID]
	if !ok {
		ids = make(map[string]struct{})
		w.byContext[wf.ContextID] = ids
	}
	ids[wf.WorkflowID] = struct{}{}
}

// Get returns a workflow by id.
func (w *WorkflowStore) Get(workflowID string) (model.Workflow, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	wf, ok := w.workflows[workflowID]
	return wf, ok
}

// List returns workflows ordered by workflow id, optionally filtered by
// context, intent id, and tag. Empty filter values match everything.
func (w *WorkflowStore) List(contextID, intentID, tag string) []model.Workflow {
	w.mu.Lock()
	defer w.mu.Unlock()

	var candidates []model.Workflow
	if contextID != "" {
		for id := range w.byContext[contextID] {
			candidates = append(candidates, w.workflows[id])
		}
	} else {
		for _, wf := range w.workflows {
			candidates = append(candidates, wf)
		}
	}

	out := []model.Workflow{}
	for _, wf := range candidates {
		if intentID != "" && wf.IntentID != intentID {
			continue
		}
		if tag != "" && !wf.HasTag(tag) {
			continue
		}
		out = append(out, wf)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WorkflowID < out[j].WorkflowID })
	return out
}

// Delete removes a workflow by id and reports whether it existed.
func (w *WorkflowStore) Delete(workflowID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	wf, ok := w.workflows[workflowID]
	if !ok {
		return false
	}
	delete(w.workflows, workflowID)
	w.removeFromContextLocked(wf.ContextID, workflowID)
	return true
}

func (w *WorkflowStore) removeFromContextLocked(contextID, workflowID string) {
	if ids, ok := w.byContext[contextID]; ok {
		delete(ids, workflowID)
		if len(ids) == 0 {
			delete(w.byContext, contextID)
		}
	}
}
