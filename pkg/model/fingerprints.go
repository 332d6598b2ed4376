package model

import "strings"

// Well-known fingerprint keys. Producers and the store agree on these;
// anything else lives in Fingerprints.Extra.
const (
	FingerprintStructural = "structural"
	FingerprintVisual     = "visual"
	FingerprintSemantic   = "semantic"
)

// Fingerprints bundles the hashes identifying a UI state.
type Fingerprints struct {
	Structural string
	Visual     string
	Semantic   string
	Extra      map[string]string
}

// Map flattens the bundle into the map stored on UIState.Fingerprints.
// Empty well-known hashes are omitted.
func (f Fingerprints) Map() map[string]string {
	out := make(map[string]string, 3+len(f.Extra))
	if f.Structural != "" {
		out[FingerprintStructural] = f.Structural
	}
	if f.Visual != "" {
		out[FingerprintVisual] = f.Visual
	}
	if f.Semantic != "" {
		out[FingerprintSemantic] = f.Semantic
	}
	for k, v := range f.Extra {
		out[k] = v
	}
	return out
}

// FingerprintsFromMap is the inverse of Map: well-known keys are lifted
// out and everything else is kept as an extra.
func FingerprintsFromMap(m map[string]string) Fingerprints {
	f := Fingerprints{Extra: make(map[string]string)}
	for k, v := range m {
		switch k {
		case FingerprintStructural:
			f.Structural = v
		case FingerprintVisual:
			f.Visual = v
		case FingerprintSemantic:
			f.Semantic = v
		default:
			f.Extra[k] = v
		}
	}
	return f
}

// Merge returns a copy of f with the non-empty fields of other applied on
// top and extras unioned (other wins on collision).
func (f Fingerprints) Merge(other Fingerprints) Fingerprints {
	out := Fingerprints{
		Structural: f.Structural,
		Visual:     f.Visual,
		Semantic:   f.Semantic,
		Extra:      make(map[string]string, len(f.Extra)+len(other.Extra)),
	}
	for k, v := range f.Extra {
		out.Extra[k] = v
	}
	if other.Structural != "" {
		out.Structural = other.Structural
	}
	if other.Visual != "" {
		out.Visual = other.Visual
	}
	if other.Semantic != "" {
		out.Semantic = other.Semantic
	}
	for k, v := range other.Extra {
		out.Extra[k] = v
	}
	return out
}

// normalize trims, lowercases, and collapses internal whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
