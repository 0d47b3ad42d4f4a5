package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/literalkg/internal/core/model"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[input]
dir = "data/fb15k-237"

[pipeline]
embedding_dim = 64
on_parse_error = "skip"

[cluster]
clusters = 20
seed = 7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data/fb15k-237", cfg.Input.Dir)
	assert.Equal(t, 64, cfg.Pipeline.EmbeddingDim)
	assert.Equal(t, 20, cfg.Cluster.Clusters)
	assert.Equal(t, uint64(7), cfg.Cluster.Seed)
	// untouched sections keep their defaults
	assert.Equal(t, 10, cfg.Cluster.Restarts)
	assert.Equal(t, "hashing", cfg.LLM.Provider)

	parse, embed := cfg.Policies()
	assert.Equal(t, model.PolicySkip, parse)
	assert.Equal(t, model.PolicyAbort, embed)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("EMBEDDING_DIM", "128")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, 128, cfg.Pipeline.EmbeddingDim)
	assert.Equal(t, 128, cfg.LLM.Dimensions)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg.Pipeline.OnEmbeddingError = "retry"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Input.Source = "parquet"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Pipeline.EmbeddingDim = 0
	assert.Error(t, cfg.Validate())
}
