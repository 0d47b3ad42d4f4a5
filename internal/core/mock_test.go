package core

import (
	"context"
)

type MockEmbedder struct {
	Dim int
	Err error
}

// Embed returns a vector whose first value is the text length, so distinct
// texts produce distinct rows.
func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	vec := make([]float32, m.Dim)
	vec[0] = float32(len(text))
	return vec, nil
}
