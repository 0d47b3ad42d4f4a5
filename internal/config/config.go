package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/agenthands/literalkg/internal/core/model"
)

type InputConfig struct {
	// Dir holds train.txt, valid.txt, test.txt, numerical_literals.txt and
	// text_literals.txt.
	Dir string `toml:"dir"`
	// Source is "tsv" (default) or "memgraph". With memgraph the triples are
	// read from the graph database and literals still come from Dir.
	Source string `toml:"source"`
}

type OutputConfig struct {
	// Path is a local file or an s3://bucket/key URI.
	Path string `toml:"path"`
}

type PipelineConfig struct {
	EmbeddingDim     int    `toml:"embedding_dim"`
	OnParseError     string `toml:"on_parse_error"`
	OnEmbeddingError string `toml:"on_embedding_error"`
	ProgressEvery    int    `toml:"progress_every"`
}

type LLMConfig struct {
	Provider       string `toml:"provider"`
	EmbeddingModel string `toml:"embedding_model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Dimensions     int    `toml:"dimensions"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type ClusterConfig struct {
	Clusters      int    `toml:"clusters"`
	Seed          uint64 `toml:"seed"`
	Restarts      int    `toml:"restarts"`
	MaxIterations int    `toml:"max_iterations"`
}

type FilterConfig struct {
	Threshold int `toml:"threshold"`
}

type ConcurrencyConfig struct {
	Embed int `toml:"embed"`
}

type S3Config struct {
	Region    string `toml:"region"`
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type Config struct {
	Input       InputConfig       `toml:"input"`
	Output      OutputConfig      `toml:"output"`
	Pipeline    PipelineConfig    `toml:"pipeline"`
	LLM         LLMConfig         `toml:"llm"`
	Memgraph    MemgraphConfig    `toml:"memgraph"`
	Cluster     ClusterConfig     `toml:"cluster"`
	Filter      FilterConfig      `toml:"filter"`
	Concurrency ConcurrencyConfig `toml:"concurrency"`
	S3          S3Config          `toml:"s3"`
	Server      ServerConfig      `toml:"server"`
}

// Default returns the configuration used when no file is given: 300-dimensional
// text vectors, 100 clusters with seed 0 and 10 restarts, and a frequency
// threshold of 100.
func Default() *Config {
	return &Config{
		Input:  InputConfig{Dir: "data", Source: "tsv"},
		Output: OutputConfig{Path: "processed.bundle"},
		Pipeline: PipelineConfig{
			EmbeddingDim:     300,
			OnParseError:     string(model.PolicyAbort),
			OnEmbeddingError: string(model.PolicyAbort),
			ProgressEvery:    10000,
		},
		LLM: LLMConfig{
			Provider:   "hashing",
			Dimensions: 300,
		},
		Memgraph: MemgraphConfig{URI: "bolt://localhost:7687"},
		Cluster: ClusterConfig{
			Clusters:      100,
			Seed:          0,
			Restarts:      10,
			MaxIterations: 300,
		},
		Filter:      FilterConfig{Threshold: 100},
		Concurrency: ConcurrencyConfig{Embed: 4},
		Server:      ServerConfig{Port: "8080"},
	}
}

// Load reads a TOML file on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides file values with environment variables when present.
func (c *Config) ApplyEnv() {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString("LLM_PROVIDER", &c.LLM.Provider)
	setString("LLM_EMBEDDING_MODEL", &c.LLM.EmbeddingModel)
	setString("LLM_API_KEY", &c.LLM.APIKey)
	setString("LLM_BASE_URL", &c.LLM.BaseURL)
	setString("MEMGRAPH_URI", &c.Memgraph.URI)
	setString("MEMGRAPH_USER", &c.Memgraph.User)
	setString("MEMGRAPH_PASSWORD", &c.Memgraph.Password)
	setString("AWS_REGION", &c.S3.Region)
	setString("AWS_ENDPOINT", &c.S3.Endpoint)
	setString("AWS_ACCESS_KEY", &c.S3.AccessKey)
	setString("AWS_SECRET_KEY", &c.S3.SecretKey)
	setString("PORT", &c.Server.Port)

	if v := os.Getenv("EMBEDDING_DIM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Pipeline.EmbeddingDim = n
			c.LLM.Dimensions = n
		}
	}
}

// Validate checks the values that cannot be corrected silently.
func (c *Config) Validate() error {
	if _, err := model.ParsePolicy(c.Pipeline.OnParseError); err != nil {
		return fmt.Errorf("pipeline.on_parse_error: %w", err)
	}
	if _, err := model.ParsePolicy(c.Pipeline.OnEmbeddingError); err != nil {
		return fmt.Errorf("pipeline.on_embedding_error: %w", err)
	}
	if c.Pipeline.EmbeddingDim <= 0 {
		return fmt.Errorf("pipeline.embedding_dim must be positive, got %d", c.Pipeline.EmbeddingDim)
	}
	switch c.Input.Source {
	case "", "tsv", "memgraph":
	default:
		return fmt.Errorf("input.source: unknown source %q", c.Input.Source)
	}
	return nil
}

// Policies returns the parse and embedding failure policies. Call Validate first.
func (c *Config) Policies() (parse, embed model.FailurePolicy) {
	parse, _ = model.ParsePolicy(c.Pipeline.OnParseError)
	embed, _ = model.ParsePolicy(c.Pipeline.OnEmbeddingError)
	return parse, embed
}
