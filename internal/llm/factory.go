package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/literalkg/internal/config"
	"github.com/agenthands/literalkg/internal/logger"
)

// NewEmbedder returns the embedding function for the configured provider.
// dim is the pipeline-wide vector length; remote providers are asked for
// exactly that many dimensions where their API allows it.
func NewEmbedder(ctx context.Context, cfg config.LLMConfig, dim int) (EmbedderClient, error) {
	if cfg.Dimensions > 0 {
		dim = cfg.Dimensions
	}

	provider := strings.ToLower(cfg.Provider)
	switch provider {
	case "", "hashing":
		return NewHashingEmbedder(dim), nil

	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.EmbeddingModel, cfg.BaseURL, dim), nil

	case "gemini":
		return NewGeminiClient(ctx, cfg.APIKey, cfg.EmbeddingModel)

	case "ollama":
		// Ollama serves an OpenAI-compatible API under /v1.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}
		logger.Info("using ollama through its OpenAI-compatible API", "base_url", baseURL)

		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama" // ignored by ollama, required by the client
		}
		model := cfg.EmbeddingModel
		if model == "" {
			model = "nomic-embed-text"
		}
		// ollama rejects the dimensions field
		return NewOpenAIClient(apiKey, model, baseURL, 0), nil

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}
}
