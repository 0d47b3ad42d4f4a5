package llm

import (
	"context"
)

// EmbedderClient turns a text literal into a fixed-length vector.
type EmbedderClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
