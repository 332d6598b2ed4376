package model

// ActionType is the low-level interaction that triggered a transition.
// Intentionally coarse; drivers extend via Action.Metadata.
type ActionType string

const (
	ActionClick          ActionType = "click"
	ActionDoubleClick    ActionType = "double_click"
	ActionRightClick     ActionType = "right_click"
	ActionKeyPress       ActionType = "key_press"
	ActionTextInput      ActionType = "text_input"
	ActionFocus          ActionType = "focus"
	ActionHover          ActionType = "hover"
	ActionScroll         ActionType = "scroll"
	ActionTouchTap       ActionType = "touch_tap"
	ActionTouchLongPress ActionType = "touch_long_press"
	ActionGesture        ActionType = "gesture"
	ActionOther          ActionType = "other"
)

// Valid reports whether t is a known action type.
func (t ActionType) Valid() bool {
	switch t {
	case ActionClick, ActionDoubleClick, ActionRightClick, ActionKeyPress,
		ActionTextInput, ActionFocus, ActionHover, ActionScroll,
		ActionTouchTap, ActionTouchLongPress, ActionGesture, ActionOther:
		return true
	}
	return false
}

// Action is the concrete interaction that caused a transition.
//
// RawInput carries key codes or text snippets and must be scrubbed of
// sensitive data by the driver before being set.
type Action struct {
	Type      ActionType     `json:"type"`
	ElementID string         `json:"element_id"`
	RawInput  string         `json:"raw_input"`
	Metadata  map[string]any `json:"metadata"`
}

// Transition is a directed edge in the UI graph: a user action that moved
// the UI from a source state to a target state.
type Transition struct {
	ID            string         `json:"id"`
	SourceStateID string         `json:"source_state_id"`
	TargetStateID string         `json:"target_state_id"`
	Action        Action         `json:"action"`
	IntentID      string         `json:"intent_id"`
	Confidence    float64        `json:"confidence"`
	Metadata      map[string]any `json:"metadata"`
}

// AttachIntent associates a semantic intent id with the transition.
// An existing intent id is kept unless overwrite is set.
func (t *Transition) AttachIntent(intentID string, overwrite bool) {
	if t.IntentID != "" && !overwrite {
		return
	}
	t.IntentID = intentID
}

// NewClickTransition is a convenience constructor for click edges.
func NewClickTransition(id, sourceStateID, targetStateID, elementID string) Transition {
	return Transition{
		ID:            id,
		SourceStateID: sourceStateID,
		TargetStateID: targetStateID,
		Action: Action{
			Type:      ActionClick,
			ElementID: elementID,
			Metadata:  map[string]any{},
		},
		Confidence: 1.0,
		Metadata:   map[string]any{},
	}
}
