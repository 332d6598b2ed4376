package model

// Workflow is a named, ordered sequence of transition ids inside a single
// context. It references TransitionRecord entries in the graph store and
// never duplicates them; the sequence is not verified to be path-connected.
type Workflow struct {
	WorkflowID    string         `json:"workflow_id"`
	ContextID     string         `json:"context_id"`
	Label         string         `json:"label"`
	Description   string         `json:"description"`
	TransitionIDs []string       `json:"transition_ids"`
	IntentID      string         `json:"intent_id"`
	Tags          []string       `json:"tags"`
	Metadata      map[string]any `json:"metadata"`
}

// HasTag reports whether the workflow carries the tag, compared after
// trimming and case folding.
func (w *Workflow) HasTag(tag string) bool {
	key := normalize(tag)
	for _, t := range w.Tags {
		if normalize(t) == key {
			return true
		}
	}
	return false
}
