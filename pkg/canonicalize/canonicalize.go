// Package canonicalize provides RFC 8785 (JSON Canonicalization Scheme)
// compliant serialization and the fingerprint digests shared between
// producers and the Atlas store.
package canonicalize

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gowebpki/jcs"
)

// Canonical returns the canonical JSON representation of v.
//
// Key features:
// 1. Object keys are sorted lexicographically by UTF-8 bytes.
// 2. Compact separators, no insignificant whitespace.
// 3. NaN and Infinity are rejected (they are not valid JSON).
func Canonical(v any) ([]byte, error) {
	intermediate, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonicalize: pre-marshal failed: %w", err)
	}
	out, err := jcs.Transform(intermediate)
	if err != nil {
		return nil, fmt.Errorf("canonicalize: transform failed: %w", err)
	}
	return out, nil
}

// CanonicalString returns the canonical form as a string.
func CanonicalString(v any) (string, error) {
	b, err := Canonical(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CanonicalHash returns the SHA-256 hex digest of the canonical JSON
// representation of v.
func CanonicalHash(v any) (string, error) {
	b, err := Canonical(v)
	if err != nil {
		return "", err
	}
	return HashBytes(b), nil
}

// HashBytes computes the SHA-256 hash of raw bytes as a hex string.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// StructuralFingerprint hashes a JSON-serializable UI tree. Structurally
// equivalent trees produce identical digests regardless of key order.
func StructuralFingerprint(tree any) (string, error) {
	return CanonicalHash(tree)
}

// VisualFingerprint hashes raw screenshot bytes. This is a plain content
// digest, not a perceptual hash; byte-identical captures match, nothing else.
func VisualFingerprint(image []byte) string {
	return HashBytes(image)
}

// SemanticFingerprint hashes UI text content. Case is folded and runs of
// whitespace collapse to a single space before hashing, so cosmetic
// formatting differences do not change the digest.
func SemanticFingerprint(text string) string {
	return HashBytes([]byte(NormalizeText(text)))
}

// NormalizeText lowercases, trims, and collapses internal whitespace.
// This is the byte-exact normalization producers must agree on.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
