// Package store holds the in-memory graph storage layer: contexts,
// state records (nodes), transition records (edges) partitioned by
// context id, plus the workflow store.
//
// The store is intentionally memory-only. It is the reference backend
// for tests, prototypes, and small deployments; a persistent backend can
// replace it behind the same method set.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Rejean-McCormick/Ariane/pkg/model"
)

// ErrContextExists reports a context-id conflict from AddContext when
// overwrite is not set.
var ErrContextExists = errors.New("context already exists")

// Config bounds the store. Zero means unlimited.
type Config struct {
	MaxContexts              int
	MaxStatesPerContext      int
	MaxTransitionsPerContext int
}

// CapacityError reports a configured limit being hit.
type CapacityError struct {
	Limit     string
	ContextID string
	Max       int
}

func (e *CapacityError) Error() string {
	if e.ContextID == "" {
		return fmt.Sprintf("graph store exceeded %s=%d", e.Limit, e.Max)
	}
	return fmt.Sprintf("context %q exceeded %s=%d", e.ContextID, e.Limit, e.Max)
}

// Stats is the lightweight store census used by health reporting.
type Stats struct {
	Contexts    int `json:"contexts"`
	States      int `json:"states"`
	Transitions int `json:"transitions"`
}

// GraphStore is the in-memory graph, partitioned by context id. Each
// context holds a state map, a transition map, and adjacency indexes for
// outgoing and incoming edges. All methods are safe for concurrent use.
//
// Records are stored and returned by value, so callers never alias the
// store's copies.
type GraphStore struct {
	cfg Config

	mu          sync.Mutex
	contexts    map[string]model.Context
	states      map[string]map[string]model.StateRecord
	transitions map[string]map[string]model.TransitionRecord
	// context id -> source state id -> transition id set
	outgoing map[string]map[string]map[string]struct{}
	// context id -> target state id -> transition id set
	incoming map[string]map[string]map[string]struct{}
}

// NewGraphStore returns an empty store with the given limits.
func NewGraphStore(cfg Config) *GraphStore {
	return &GraphStore{
		cfg:         cfg,
		contexts:    make(map[string]model.Context),
		states:      make(map[string]map[string]model.StateRecord),
		transitions: make(map[string]map[string]model.TransitionRecord),
		outgoing:    make(map[string]map[string]map[string]struct{}),
		incoming:    make(map[string]map[string]map[string]struct{}),
	}
}

// UpsertContext inserts or replaces a context.
func (g *GraphStore) UpsertContext(ctx model.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.contexts[ctx.ContextID]; !exists &&
		g.cfg.MaxContexts > 0 && len(g.contexts) >= g.cfg.MaxContexts {
		return &CapacityError{Limit: "max_contexts", Max: g.cfg.MaxContexts}
	}
	g.contexts[ctx.ContextID] = ctx
	return nil
}

// AddContext registers a context, failing when the id already exists
// unless overwrite is set.
func (g *GraphStore) AddContext(ctx model.Context, overwrite bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.contexts[ctx.ContextID]; exists {
		if !overwrite {
			return fmt.Errorf("context %q: %w", ctx.ContextID, ErrContextExists)
		}
	} else if g.cfg.MaxContexts > 0 && len(g.contexts) >= g.cfg.MaxContexts {
		return &CapacityError{Limit: "max_contexts", Max: g.cfg.MaxContexts}
	}
	g.contexts[ctx.ContextID] = ctx
	return nil
}

// GetContext returns a context by id.
func (g *GraphStore) GetContext(contextID string) (model.Context, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ctx, ok := g.contexts[contextID]
	return ctx, ok
}

// ListContexts returns all contexts ordered by context id.
func (g *GraphStore) ListContexts() []model.Context {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]model.Context, 0, len(g.contexts))
	for _, ctx := range g.contexts {
		out = append(out, ctx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContextID < out[j].ContextID })
	return out
}

// UpsertState inserts or replaces a state record keyed by
// (context id, state id).
func (g *GraphStore) UpsertState(rec model.StateRecord) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	ctxStates, ok := g.states[rec.ContextID]
	if !ok {
		ctxStates = make(map[string]model.StateRecord)
		g.states[rec.ContextID] = ctxStates
	}
	if _, exists := ctxStates[rec.ID()]; !exists &&
		g.cfg.MaxStatesPerContext > 0 && len(ctxStates) >= g.cfg.MaxStatesPerContext {
		return &CapacityError{
			Limit:     "max_states_per_context",
			ContextID: rec.ContextID,
			Max:       g.cfg.MaxStatesPerContext,
		}
	}
	ctxStates[rec.ID()] = rec
	return nil
}

// GetState returns a state record by context and state id.
func (g *GraphStore) GetState(contextID, stateID string) (model.StateRecord, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.states[contextID][stateID]
	return rec, ok
}

// ListStates returns all state records for a context ordered by state id.
func (g *GraphStore) ListStates(contextID string) []model.StateRecord {
	g.mu.Lock()
	defer g.mu.Unlock()

	ctxStates := g.states[contextID]
	out := make([]model.StateRecord, 0, len(ctxStates))
	for _, rec := range ctxStates {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// FindStatesByTag returns all states in a context carrying the tag,
// compared case-insensitively, ordered by state id.
func (g *GraphStore) FindStatesByTag(contextID, tag string) []model.StateRecord {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := []model.StateRecord{}
	for _, rec := range g.states[contextID] {
		if rec.HasTag(tag) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// UpsertTransition inserts or replaces a transition record keyed by
// (context id, transition id), maintaining the adjacency indexes.
//
// On replacement with incrementObserved set, the stored times_observed is
// the previous count plus one; the caller's value is ignored.
func (g *GraphStore) UpsertTransition(rec model.TransitionRecord, incrementObserved bool) error {
	ctxID := rec.ContextID
	trID := rec.ID()
	src := rec.SourceStateID()
	tgt := rec.TargetStateID()

	g.mu.Lock()
	defer g.mu.Unlock()

	ctxTransitions, ok := g.transitions[ctxID]
	if !ok {
		ctxTransitions = make(map[string]model.TransitionRecord)
		g.transitions[ctxID] = ctxTransitions
	}

	if existing, exists := ctxTransitions[trID]; exists {
		if old := existing.SourceStateID(); old != src {
			delete(g.outgoing[ctxID][old], trID)
		}
		if old := existing.TargetStateID(); old != tgt {
			delete(g.incoming[ctxID][old], trID)
		}
		if incrementObserved {
			rec.TimesObserved = existing.TimesObserved + 1
		}
	} else if g.cfg.MaxTransitionsPerContext > 0 &&
		len(ctxTransitions) >= g.cfg.MaxTransitionsPerContext {
		return &CapacityError{
			Limit:     "max_transitions_per_context",
			ContextID: ctxID,
			Max:       g.cfg.MaxTransitionsPerContext,
		}
	}

	ctxTransitions[trID] = rec
	g.addEdge(g.outgoing, ctxID, src, trID)
	g.addEdge(g.incoming, ctxID, tgt, trID)
	return nil
}

func (g *GraphStore) addEdge(index map[string]map[string]map[string]struct{}, ctxID, stateID, trID string) {
	byState, ok := index[ctxID]
	if !ok {
		byState = make(map[string]map[string]struct{})
		index[ctxID] = byState
	}
	ids, ok := byState[stateID]
	if !ok {
		ids = make(map[string]struct{})
		byState[stateID] = ids
	}
	ids[trID] = struct{}{}
}

// GetTransition returns a transition record by context and transition id.
func (g *GraphStore) GetTransition(contextID, transitionID string) (model.TransitionRecord, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.transitions[contextID][transitionID]
	return rec, ok
}

// ListTransitions returns all transition records for a context ordered by
// transition id.
func (g *GraphStore) ListTransitions(contextID string) []model.TransitionRecord {
	g.mu.Lock()
	defer g.mu.Unlock()

	ctxTransitions := g.transitions[contextID]
	out := make([]model.TransitionRecord, 0, len(ctxTransitions))
	for _, rec := range ctxTransitions {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// ListOutgoing returns all transitions leaving a state, ordered by
// transition id.
func (g *GraphStore) ListOutgoing(contextID, stateID string) []model.TransitionRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.edgesLocked(g.outgoing, contextID, stateID)
}

// ListIncoming returns all transitions entering a state, ordered by
// transition id.
func (g *GraphStore) ListIncoming(contextID, stateID string) []model.TransitionRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.edgesLocked(g.incoming, contextID, stateID)
}

func (g *GraphStore) edgesLocked(index map[string]map[string]map[string]struct{}, contextID, stateID string) []model.TransitionRecord {
	ctxTransitions := g.transitions[contextID]
	out := []model.TransitionRecord{}
	for trID := range index[contextID][stateID] {
		if rec, ok := ctxTransitions[trID]; ok {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// ShortestPath computes a shortest path, in number of transitions, from
// source to target using BFS over a single context. It returns the
// transitions along the path and true, or nil and false when no path
// exists. Equal source and target yield an empty path.
//
// maxDepth limits expansion: states at that depth are not expanded
// further. Negative means unlimited.
func (g *GraphStore) ShortestPath(contextID, sourceStateID, targetStateID string, maxDepth int) ([]model.TransitionRecord, bool) {
	if sourceStateID == targetStateID {
		return []model.TransitionRecord{}, true
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	ctxTransitions := g.transitions[contextID]
	if len(ctxTransitions) == 0 {
		return nil, false
	}
	outgoing := g.outgoing[contextID]

	type link struct {
		prevState    string
		transitionID string
	}
	queue := []string{sourceStateID}
	visited := map[string]struct{}{sourceStateID: {}}
	prev := map[string]link{}
	depth := map[string]int{sourceStateID: 0}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		currentDepth := depth[current]

		if maxDepth >= 0 && currentDepth >= maxDepth {
			continue
		}

		// Deterministic expansion order keeps tie-broken paths stable.
		neighbors := make([]string, 0, len(outgoing[current]))
		for trID := range outgoing[current] {
			neighbors = append(neighbors, trID)
		}
		sort.Strings(neighbors)

		for _, trID := range neighbors {
			tr, ok := ctxTransitions[trID]
			if !ok {
				continue
			}
			next := tr.TargetStateID()
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			prev[next] = link{prevState: current, transitionID: trID}
			depth[next] = currentDepth + 1

			if next == targetStateID {
				path := []model.TransitionRecord{}
				for at := targetStateID; ; {
					l, ok := prev[at]
					if !ok {
						break
					}
					path = append(path, ctxTransitions[l.transitionID])
					at = l.prevState
				}
				for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}
				return path, true
			}
			queue = append(queue, next)
		}
	}
	return nil, false
}

// Stats returns the store census: total contexts, states, and transitions.
func (g *GraphStore) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := Stats{Contexts: len(g.contexts)}
	for _, ctxStates := range g.states {
		s.States += len(ctxStates)
	}
	for _, ctxTransitions := range g.transitions {
		s.Transitions += len(ctxTransitions)
	}
	return s
}
