package model

import (
	"encoding/json"
	"fmt"
)

// Decode* functions turn raw JSON payloads into validated domain objects.
// They enforce required fields, enum validity, and value ranges, and
// normalize optional members (nil maps become empty, defaults applied) so
// a decoded object round-trips byte-stable.

// UnmarshalJSON applies the element defaults: enabled and visible are true
// unless the payload says otherwise.
func (e *InteractiveElement) UnmarshalJSON(data []byte) error {
	type alias InteractiveElement
	aux := struct {
		Enabled *bool `json:"enabled"`
		Visible *bool `json:"visible"`
		*alias
	}{alias: (*alias)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.Enabled = aux.Enabled == nil || *aux.Enabled
	e.Visible = aux.Visible == nil || *aux.Visible
	return nil
}

// UnmarshalJSON applies the transition default: confidence is 1.0 when the
// payload omits it.
func (t *Transition) UnmarshalJSON(data []byte) error {
	type alias Transition
	aux := struct {
		Confidence *float64 `json:"confidence"`
		*alias
	}{alias: (*alias)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Confidence == nil {
		t.Confidence = 1.0
	} else {
		t.Confidence = *aux.Confidence
	}
	return nil
}

// UnmarshalJSON applies the record default: times_observed is 1 when the
// payload omits it.
func (r *TransitionRecord) UnmarshalJSON(data []byte) error {
	type alias TransitionRecord
	aux := struct {
		TimesObserved *int `json:"times_observed"`
		*alias
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.TimesObserved == nil {
		r.TimesObserved = 1
	} else {
		r.TimesObserved = *aux.TimesObserved
	}
	return nil
}

// DecodeContext parses and validates a Context payload.
func DecodeContext(raw []byte) (Context, error) {
	var ctx Context
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return Context{}, fmt.Errorf("context payload: %w", err)
	}
	if ctx.ContextID == "" {
		return Context{}, fmt.Errorf("context payload: missing 'context_id'")
	}
	if ctx.AppID == "" {
		return Context{}, fmt.Errorf("context payload: missing 'app_id'")
	}
	if ctx.Platform == "" {
		ctx.Platform = PlatformOther
	}
	if !ctx.Platform.Valid() {
		return Context{}, fmt.Errorf("context payload: unknown platform %q", ctx.Platform)
	}
	if ctx.SchemaVersion == "" {
		ctx.SchemaVersion = SchemaVersion
	}
	if ctx.CreatedAt == "" {
		ctx.CreatedAt = Now()
	}
	if ctx.Environment == nil {
		ctx.Environment = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx, nil
}

// DecodeStateRecord parses and validates a StateRecord payload, including
// the nested UIState and its elements.
func DecodeStateRecord(raw []byte) (StateRecord, error) {
	var aux struct {
		ContextID    string         `json:"context_id"`
		DiscoveredAt string         `json:"discovered_at"`
		IsEntry      bool           `json:"is_entry"`
		IsTerminal   bool           `json:"is_terminal"`
		Tags         []string       `json:"tags"`
		Metadata     map[string]any `json:"metadata"`
		State        *UIState       `json:"state"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return StateRecord{}, fmt.Errorf("state record payload: %w", err)
	}
	if aux.ContextID == "" {
		return StateRecord{}, fmt.Errorf("state record payload: missing 'context_id'")
	}
	if aux.State == nil {
		return StateRecord{}, fmt.Errorf("state record payload: missing 'state' payload")
	}

	state, err := validateUIState(*aux.State)
	if err != nil {
		return StateRecord{}, fmt.Errorf("state record payload: %w", err)
	}

	rec := StateRecord{
		ContextID:    aux.ContextID,
		DiscoveredAt: aux.DiscoveredAt,
		IsEntry:      aux.IsEntry,
		IsTerminal:   aux.IsTerminal,
		Tags:         aux.Tags,
		Metadata:     aux.Metadata,
		State:        state,
	}
	if rec.DiscoveredAt == "" {
		rec.DiscoveredAt = Now()
	}
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	if rec.Metadata == nil {
		rec.Metadata = map[string]any{}
	}
	return rec, nil
}

func validateUIState(state UIState) (UIState, error) {
	if state.ID == "" {
		return UIState{}, fmt.Errorf("state: missing 'id'")
	}
	if state.AppID == "" {
		return UIState{}, fmt.Errorf("state: missing 'app_id'")
	}
	if state.Platform == "" {
		state.Platform = PlatformOther
	}
	if !state.Platform.Valid() {
		return UIState{}, fmt.Errorf("state: unknown platform %q", state.Platform)
	}
	if state.Fingerprints == nil {
		state.Fingerprints = map[string]string{}
	}
	if state.Elements == nil {
		state.Elements = []InteractiveElement{}
	}
	if state.Metadata == nil {
		state.Metadata = map[string]any{}
	}

	for i := range state.Elements {
		el := &state.Elements[i]
		if el.ID == "" {
			return UIState{}, fmt.Errorf("state element %d: missing 'id'", i)
		}
		if el.Role == "" {
			return UIState{}, fmt.Errorf("state element %q: missing 'role'", el.ID)
		}
		if bb := el.BoundingBox; bb != nil {
			if bb.X < 0 || bb.Y < 0 || bb.Width < 0 || bb.Height < 0 {
				return UIState{}, fmt.Errorf("state element %q: negative bounding box", el.ID)
			}
		}
		if el.Metadata == nil {
			el.Metadata = map[string]any{}
		}
	}
	return state, nil
}

// DecodeTransitionRecord parses and validates a TransitionRecord payload,
// including the nested Transition and its Action.
func DecodeTransitionRecord(raw []byte) (TransitionRecord, error) {
	var aux struct {
		ContextID     string         `json:"context_id"`
		DiscoveredAt  string         `json:"discovered_at"`
		TimesObserved *int           `json:"times_observed"`
		Metadata      map[string]any `json:"metadata"`
		Transition    *Transition    `json:"transition"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return TransitionRecord{}, fmt.Errorf("transition record payload: %w", err)
	}
	if aux.ContextID == "" {
		return TransitionRecord{}, fmt.Errorf("transition record payload: missing 'context_id'")
	}
	if aux.Transition == nil {
		return TransitionRecord{}, fmt.Errorf("transition record payload: missing 'transition' payload")
	}

	tr, err := validateTransition(*aux.Transition)
	if err != nil {
		return TransitionRecord{}, fmt.Errorf("transition record payload: %w", err)
	}

	rec := TransitionRecord{
		ContextID:    aux.ContextID,
		DiscoveredAt: aux.DiscoveredAt,
		Metadata:     aux.Metadata,
		Transition:   tr,
	}
	switch {
	case aux.TimesObserved == nil:
		rec.TimesObserved = 1
	case *aux.TimesObserved < 1:
		return TransitionRecord{}, fmt.Errorf("transition record payload: times_observed must be >= 1")
	default:
		rec.TimesObserved = *aux.TimesObserved
	}
	if rec.DiscoveredAt == "" {
		rec.DiscoveredAt = Now()
	}
	if rec.Metadata == nil {
		rec.Metadata = map[string]any{}
	}
	return rec, nil
}

func validateTransition(tr Transition) (Transition, error) {
	if tr.ID == "" {
		return Transition{}, fmt.Errorf("transition: missing 'id'")
	}
	if tr.SourceStateID == "" {
		return Transition{}, fmt.Errorf("transition: missing 'source_state_id'")
	}
	if tr.TargetStateID == "" {
		return Transition{}, fmt.Errorf("transition: missing 'target_state_id'")
	}
	if tr.Action.Type == "" {
		tr.Action.Type = ActionOther
	}
	if !tr.Action.Type.Valid() {
		return Transition{}, fmt.Errorf("transition: unknown action type %q", tr.Action.Type)
	}
	if tr.Confidence < 0 || tr.Confidence > 1 {
		return Transition{}, fmt.Errorf("transition: confidence %v outside [0,1]", tr.Confidence)
	}
	if tr.Action.Metadata == nil {
		tr.Action.Metadata = map[string]any{}
	}
	if tr.Metadata == nil {
		tr.Metadata = map[string]any{}
	}
	return tr, nil
}

// DecodeWorkflow parses and validates a Workflow payload.
func DecodeWorkflow(raw []byte) (Workflow, error) {
	var wf Workflow
	if err := json.Unmarshal(raw, &wf); err != nil {
		return Workflow{}, fmt.Errorf("workflow payload: %w", err)
	}
	if wf.WorkflowID == "" {
		return Workflow{}, fmt.Errorf("workflow payload: missing 'workflow_id'")
	}
	if wf.ContextID == "" {
		return Workflow{}, fmt.Errorf("workflow payload: missing 'context_id'")
	}
	if wf.Label == "" {
		return Workflow{}, fmt.Errorf("workflow payload: missing 'label'")
	}
	if wf.TransitionIDs == nil {
		wf.TransitionIDs = []string{}
	}
	if wf.Tags == nil {
		wf.Tags = []string{}
	}
	if wf.Metadata == nil {
		wf.Metadata = map[string]any{}
	}
	return wf, nil
}
