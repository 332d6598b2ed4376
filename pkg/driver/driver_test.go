package driver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Rejean-McCormick/Ariane/pkg/model"
)

func TestMapActionType(t *testing.T) {
	cases := []struct {
		in   string
		want model.ActionType
	}{
		{"click", model.ActionClick},
		{"CLICK", model.ActionClick},
		{" key ", model.ActionKeyPress},
		{"key_press", model.ActionKeyPress},
		{"text", model.ActionTextInput},
		{"text_input", model.ActionTextInput},
		{"tap", model.ActionTouchTap},
		{"navigation", model.ActionOther},
		{"nav", model.ActionOther},
		{"teleport", model.ActionOther},
		{"", model.ActionOther},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, MapActionType(tc.in), "input %q", tc.in)
	}
}
