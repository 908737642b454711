package settings

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const sealedPrefix = "sealed:v1:"

// ErrUnseal is returned when a sealed value cannot be opened with the
// configured secret.
var ErrUnseal = errors.New("settings: cannot unseal value")

// Sealer encrypts values at rest with a key derived from a shared secret.
type Sealer struct {
	key [32]byte
}

func NewSealer(secret string) (*Sealer, error) {
	var s Sealer
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("sourcing-assistant settings"))
	if _, err := io.ReadFull(r, s.key[:]); err != nil {
		return nil, fmt.Errorf("derive settings key: %w", err)
	}
	return &s, nil
}

// Seal returns an opaque, prefixed encoding of plain.
func (s *Sealer) Seal(plain string) (string, error) {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], []byte(plain), &nonce, &s.key)
	return sealedPrefix + base64.RawURLEncoding.EncodeToString(box), nil
}

// Open reverses Seal. Values without the sealed prefix are returned as-is,
// so keys written before a secret was configured keep working.
func (s *Sealer) Open(v string) (string, error) {
	if !Sealed(v) {
		return v, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(v, sealedPrefix))
	if err != nil || len(raw) < 24 {
		return "", ErrUnseal
	}
	var nonce [24]byte
	copy(nonce[:], raw[:24])
	plain, ok := secretbox.Open(nil, raw[24:], &nonce, &s.key)
	if !ok {
		return "", ErrUnseal
	}
	return string(plain), nil
}

// Sealed reports whether v was produced by Seal.
func Sealed(v string) bool {
	return strings.HasPrefix(v, sealedPrefix)
}
