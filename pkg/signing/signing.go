// Package signing provides a shared-secret HMAC signer over canonical JSON
// payloads. It exists to detect accidental corruption and to give trusted
// pipelines a basic integrity check; it is not a key-management framework.
package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"hash"

	"github.com/Rejean-McCormick/Ariane/pkg/canonicalize"
)

// DefaultSignatureField is the record field signatures are embedded under.
const DefaultSignatureField = "signature"

// Config configures a Signer.
type Config struct {
	// Secret is the shared HMAC secret. Must be kept private.
	Secret string
	// Algorithm names the hash used with HMAC: "sha256" (default) or "sha512".
	Algorithm string
}

// Signer computes and verifies HMAC signatures over canonical JSON.
type Signer struct {
	key     []byte
	newHash func() hash.Hash
}

// New creates a Signer from the given config. An unsupported algorithm
// name is an error.
func New(cfg Config) (*Signer, error) {
	algo := cfg.Algorithm
	if algo == "" {
		algo = "sha256"
	}

	var newHash func() hash.Hash
	switch algo {
	case "sha256":
		newHash = sha256.New
	case "sha512":
		newHash = sha512.New
	default:
		return nil, fmt.Errorf("signing: unsupported hash algorithm %q", algo)
	}

	return &Signer{
		key:     []byte(cfg.Secret),
		newHash: newHash,
	}, nil
}

// Sign computes the signature for a JSON-serializable payload.
//
// The payload is canonicalized first, so two payloads that differ only in
// key order or whitespace produce the same signature. The result is
// URL-safe base64 without trailing padding.
func (s *Signer) Sign(payload any) (string, error) {
	canon, err := canonicalize.Canonical(payload)
	if err != nil {
		return "", fmt.Errorf("signing: %w", err)
	}

	mac := hmac.New(s.newHash, s.key)
	mac.Write(canon)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}

// Verify reports whether signature matches the payload. Comparison is
// constant-time. An empty signature or an unserializable payload verifies
// as false.
func (s *Signer) Verify(payload any, signature string) bool {
	if signature == "" {
		return false
	}
	expected, err := s.Sign(payload)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignRecord returns a copy of record with its signature embedded under
// field. The signature covers the record without the signature field, so
// re-signing an already-signed record is stable.
func (s *Signer) SignRecord(record map[string]any, field string) (map[string]any, error) {
	if field == "" {
		field = DefaultSignatureField
	}

	payload := make(map[string]any, len(record))
	for k, v := range record {
		if k == field {
			continue
		}
		payload[k] = v
	}

	sig, err := s.Sign(payload)
	if err != nil {
		return nil, err
	}

	signed := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		signed[k] = v
	}
	signed[field] = sig
	return signed, nil
}

// VerifyRecord verifies a record produced by SignRecord. A record without
// the signature field, or with a non-string signature, verifies as false.
func (s *Signer) VerifyRecord(record map[string]any, field string) bool {
	if field == "" {
		field = DefaultSignatureField
	}

	raw, ok := record[field]
	if !ok {
		return false
	}
	sig, ok := raw.(string)
	if !ok {
		return false
	}

	payload := make(map[string]any, len(record))
	for k, v := range record {
		if k == field {
			continue
		}
		payload[k] = v
	}

	return s.Verify(payload, sig)
}
