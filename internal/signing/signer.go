// Package signing attaches a verifiable provenance signature to status
// responses. Payloads are canonically JSON-encoded, digested with
// SHA3-256, and signed with ed25519; verifiers only need the public key
// and the payload bytes.
package signing

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/sha3"
)

type Signer struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// NewSigner builds a signer from a hex-encoded 32-byte ed25519 seed.
func NewSigner(seedHex string) (*Signer, error) {
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, fmt.Errorf("signing: decode seed: %w", err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("signing: seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &Signer{
		priv: priv,
		pub:  priv.Public().(ed25519.PublicKey),
	}, nil
}

func (s *Signer) PublicKeyHex() string {
	return hex.EncodeToString(s.pub)
}

func (s *Signer) sign(payload []byte) string {
	digest := sha3.Sum256(payload)
	return hex.EncodeToString(ed25519.Sign(s.priv, digest[:]))
}

// Verify checks a signature produced by Sign against the canonical
// payload bytes.
func Verify(publicKeyHex string, payload []byte, signatureHex string) bool {
	pub, err := hex.DecodeString(publicKeyHex)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return false
	}
	sig, err := hex.DecodeString(signatureHex)
	if err != nil {
		return false
	}
	digest := sha3.Sum256(payload)
	return ed25519.Verify(ed25519.PublicKey(pub), digest[:], sig)
}

// Envelope wraps response payloads with a signature and public key. A
// nil signer is the intentional degraded mode: payloads pass through
// unsigned.
type Envelope struct {
	signer *Signer
}

func NewEnvelope(s *Signer) *Envelope {
	return &Envelope{signer: s}
}

// Sign returns the payload's fields plus "signature" and "public_key".
// The signature covers the payload's canonical JSON encoding, computed
// fresh on every call.
func (e *Envelope) Sign(payload any) (map[string]any, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("signing: encode payload: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("signing: payload is not an object: %w", err)
	}
	if e.signer == nil {
		return out, nil
	}
	out["signature"] = e.signer.sign(b)
	out["public_key"] = e.signer.PublicKeyHex()
	return out, nil
}
