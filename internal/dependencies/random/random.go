package random

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
)

// TokenBytes is the entropy of a session token (256 bits)
const TokenBytes = 32

// SaltBytes is the entropy of a password salt
const SaltBytes = 16

// Source provides random bytes and can be mocked for testing
type Source interface {
	// Bytes returns n random bytes
	Bytes(n int) []byte
}

// CryptoSource implements Source using crypto/rand
type CryptoSource struct{}

// New creates a new CryptoSource
func New() *CryptoSource {
	return &CryptoSource{}
}

// Bytes returns n cryptographically random bytes
func (s *CryptoSource) Bytes(n int) []byte {
	b := make([]byte, n)
	// crypto/rand.Read only fails if the OS entropy source is broken
	_, _ = rand.Read(b)
	return b
}

// Token generates an opaque session token: unpadded urlsafe base64 of
// TokenBytes random bytes, matching the format existing clients carry.
func Token(s Source) string {
	return base64.RawURLEncoding.EncodeToString(s.Bytes(TokenBytes))
}

// Salt generates a password salt as lowercase hex
func Salt(s Source) string {
	return hex.EncodeToString(s.Bytes(SaltBytes))
}
