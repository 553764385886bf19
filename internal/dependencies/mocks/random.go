package mocks

import (
	"github.com/Sixteen1-6/Pong/internal/dependencies/random"
)

// MockSource is a deterministic Source for testing. It counts up from Seed
// so successive tokens and salts are distinct but reproducible.
type MockSource struct {
	Seed    byte
	counter byte
}

// Ensure MockSource implements Source
var _ random.Source = (*MockSource)(nil)

// NewMockSource creates a MockSource starting at the given seed
func NewMockSource(seed byte) *MockSource {
	return &MockSource{Seed: seed}
}

// Bytes returns n bytes filled with the current counter value
func (s *MockSource) Bytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = s.Seed + s.counter
	}
	s.counter++
	return b
}

// Reset rewinds the counter
func (s *MockSource) Reset() {
	s.counter = 0
}
