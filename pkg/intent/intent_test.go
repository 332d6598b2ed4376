package intent

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuiltinIntents(t *testing.T) {
	r := Builtin()
	require.Len(t, r.All(), 13)

	save, ok := r.Get("save")
	require.True(t, ok)
	require.Equal(t, CategoryFile, save.Category)
}

func TestGetNormalizesID(t *testing.T) {
	r := Builtin()
	in, ok := r.Get("  SAVE ")
	require.True(t, ok)
	require.Equal(t, "save", in.ID)
}

func TestForPhrase(t *testing.T) {
	r := Builtin()

	in, ok := r.ForPhrase("Save Changes")
	require.True(t, ok)
	require.Equal(t, "save", in.ID)

	in, ok = r.ForPhrase("  new   document ")
	require.True(t, ok)
	require.Equal(t, "create_new", in.ID)

	_, ok = r.ForPhrase("frobnicate")
	require.False(t, ok)
}

func TestForPhraseFirstRegistrationWins(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Intent{ID: "a", Label: "Launch", Synonyms: []string{"go"}}))
	require.NoError(t, r.Register(Intent{ID: "b", Label: "Start", Synonyms: []string{"go"}}))

	in, ok := r.ForPhrase("go")
	require.True(t, ok)
	require.Equal(t, "a", in.ID)
}

func TestRegisterConflictingID(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Intent{ID: "save", Label: "Save"}))
	err := r.Register(Intent{ID: "Save", Label: "Save Again"})
	require.ErrorContains(t, err, "already registered")
}

func TestRegisterIdenticalIsNoOp(t *testing.T) {
	r := New()
	in := Intent{
		ID:           "save",
		Category:     CategoryFile,
		Label:        "Save",
		Synonyms:     []string{"save changes"},
		ExternalRefs: map[string]string{"wd": "Q22676"},
	}
	require.NoError(t, r.Register(in))
	require.NoError(t, r.Register(in))
	require.Len(t, r.All(), 1)
}

func TestByExternalRef(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Intent{
		ID:           "export_pdf",
		Category:     CategoryExport,
		Label:        "Export PDF",
		ExternalRefs: map[string]string{"wd": "Q22676"},
	}))

	in, ok := r.ByExternalRef("wd", "Q22676")
	require.True(t, ok)
	require.Equal(t, "export_pdf", in.ID)

	_, ok = r.ByExternalRef("wd", "Q1")
	require.False(t, ok)
}

func TestMatchesPhrase(t *testing.T) {
	in := Intent{ID: "save_as", Label: "Save As", Synonyms: []string{"save copy"}}
	require.True(t, in.MatchesPhrase("save_as"))
	require.True(t, in.MatchesPhrase("Save  As"))
	require.True(t, in.MatchesPhrase("SAVE COPY"))
	require.False(t, in.MatchesPhrase("save"))
	require.False(t, in.MatchesPhrase(""))
}
