// Package driver defines the interface exploration drivers implement and
// the shared helpers between them. A driver controls one running instance
// of a target application, captures its UI states, and performs actions
// on it; concrete implementations are platform-specific and live outside
// this module.
package driver

import (
	"context"
	"strings"

	"github.com/Rejean-McCormick/Ariane/pkg/model"
)

// CandidateAction is a driver-level description of a possible
// interaction. The engine treats it as an opaque handle the driver
// understands and uses element id, type, and label only when recording
// the resulting transition.
type CandidateAction struct {
	// ID is a driver-defined opaque identifier, used for logging only.
	ID string

	// ElementID names the interactive element this action targets, when
	// known.
	ElementID string

	ActionType model.ActionType

	// Label is a human-readable description, e.g. the button text.
	Label string

	// Metadata carries driver-specific details: key codes, coordinates.
	Metadata map[string]any
}

// Driver is the contract exploration drivers implement. The driver owns a
// single running session of the target application; after PerformAction
// returns, CaptureState must reflect the resulting UI.
type Driver interface {
	// Reset brings the environment to a well-defined starting point,
	// relaunching or navigating home as needed, and returns the
	// resulting state.
	Reset(ctx context.Context) (*model.UIState, error)

	// CaptureState inspects the current UI, including fingerprints and
	// elements as far as the driver can provide them.
	CaptureState(ctx context.Context) (*model.UIState, error)

	// ListActions enumerates the candidate actions available from the
	// given state.
	ListActions(ctx context.Context, state *model.UIState) ([]CandidateAction, error)

	// PerformAction executes a candidate action starting from the given
	// state.
	PerformAction(ctx context.Context, state *model.UIState, action CandidateAction) error
}

// GuidanceProbe is the read-only sibling of Driver used by guidance
// clients: it observes the user's UI without driving it.
type GuidanceProbe interface {
	// CaptureState snapshots the current UI with fingerprints compatible
	// with the tracker's deduplication keys.
	CaptureState(ctx context.Context) (*model.UIState, error)

	// Describe returns a human-readable description of the element, for
	// guidance prompts.
	Describe(ctx context.Context, elementID string) (string, error)

	// Highlight visually marks the element in the user's UI, if the
	// platform supports it.
	Highlight(ctx context.Context, elementID string) error
}

// MapActionType translates coarse driver-level action names into the
// model vocabulary. Names without a model equivalent, such as
// "navigation", and unknown names map to "other".
func MapActionType(name string) model.ActionType {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "click":
		return model.ActionClick
	case "double_click":
		return model.ActionDoubleClick
	case "right_click":
		return model.ActionRightClick
	case "key", "key_press":
		return model.ActionKeyPress
	case "text", "text_input":
		return model.ActionTextInput
	case "focus":
		return model.ActionFocus
	case "hover":
		return model.ActionHover
	case "scroll":
		return model.ActionScroll
	case "tap", "touch_tap":
		return model.ActionTouchTap
	case "touch_long_press":
		return model.ActionTouchLongPress
	case "gesture":
		return model.ActionGesture
	default:
		return model.ActionOther
	}
}
