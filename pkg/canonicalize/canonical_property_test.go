//go:build property
// +build property

// Property-based tests for canonical JSON determinism.
package canonicalize

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestCanonicalDeterminism verifies canonicalization is deterministic.
// Property: Canonical(obj) == Canonical(obj) for any obj.
func TestCanonicalDeterminism(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("canonical bytes are deterministic", prop.ForAll(
		func(keys []string, values []string) bool {
			obj := make(map[string]any)
			for i := 0; i < len(keys) && i < len(values); i++ {
				if keys[i] != "" {
					obj[keys[i]] = values[i]
				}
			}

			b1, err1 := Canonical(obj)
			b2, err2 := Canonical(obj)
			if err1 != nil || err2 != nil {
				return err1 != nil && err2 != nil
			}
			return string(b1) == string(b2)
		},
		gen.SliceOf(gen.AlphaString()),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

// TestCanonicalHashAgreesWithBytes verifies the hash is a pure function of
// the canonical bytes.
func TestCanonicalHashAgreesWithBytes(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("CanonicalHash == HashBytes(Canonical)", prop.ForAll(
		func(key string, value string) bool {
			obj := map[string]any{key: value}

			b, err := Canonical(obj)
			if err != nil {
				return false
			}
			h, err := CanonicalHash(obj)
			if err != nil {
				return false
			}
			return h == HashBytes(b)
		},
		gen.AlphaString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
