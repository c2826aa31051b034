package embedding

import (
	"context"
	"hash/fnv"
	"sync/atomic"
)

const mockDim = 16

// MockProvider is a deterministic in-memory provider for local development
// and tests. Each token is hashed into a fixed bucket, so texts sharing
// words get similar vectors and a nonsense-free empty text gets a zero
// vector, mirroring the word-vector model's contract.
//
// Fixed maps a text verbatim to a canned vector, and Err forces a failure;
// tests use both. Calls counts Embed invocations for short-circuit
// assertions.
type MockProvider struct {
	Fixed map[string][]float32
	Err   error

	calls atomic.Int64
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Calls() int {
	return int(m.calls.Load())
}

func (m *MockProvider) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	if vec, ok := m.Fixed[text]; ok {
		return vec, nil
	}

	out := make([]float32, mockDim)
	for _, tok := range tokenize(text) {
		h := fnv.New32a()
		h.Write([]byte(tok))
		out[h.Sum32()%mockDim]++
	}
	return out, nil
}
