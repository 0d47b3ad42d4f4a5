package literal

import (
	"context"
	"errors"
	"sync"
)

// MockEmbedder maps every text to a vector of Dim copies of its length, so
// different texts are easy to tell apart in assertions.
type MockEmbedder struct {
	Dim   int
	Fail  map[string]bool
	mu    sync.Mutex
	Calls map[string]int
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	if m.Calls == nil {
		m.Calls = make(map[string]int)
	}
	m.Calls[text]++
	m.mu.Unlock()

	if m.Fail[text] {
		return nil, errors.New("mock embedding failure")
	}
	vec := make([]float32, m.Dim)
	for i := range vec {
		vec[i] = float32(len(text))
	}
	return vec, nil
}
