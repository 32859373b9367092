package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"pantry-ai/internal/domain"
)

// Config is the top-level application configuration.
type Config struct {
	Agent     AgentConfig     `yaml:"agent"`
	LLM       LLMConfig       `yaml:"llm"`
	Retriever RetrieverConfig `yaml:"retriever"`
	Logger    LoggerConfig    `yaml:"logger"`
	Tracer    TracerConfig    `yaml:"tracer"`
}

// AgentConfig holds orchestrator settings.
type AgentConfig struct {
	SystemPrompt string  `yaml:"system_prompt,omitempty"` // override; empty = built-in prompt
	Temperature  float64 `yaml:"temperature"`
	MaxTokens    int     `yaml:"max_tokens"`
}

// LLMConfig holds language-model gateway settings.
type LLMConfig struct {
	BaseURL string        `yaml:"base_url"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// RetrieverConfig holds document store and knowledge base settings.
type RetrieverConfig struct {
	DataDir      string          `yaml:"data_dir"`
	KnowledgeDir string          `yaml:"knowledge_dir"`
	TopK         int             `yaml:"top_k"`
	Embedding    EmbeddingConfig `yaml:"embedding"`
}

// EmbeddingConfig holds text embedding provider settings.
type EmbeddingConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// TracerConfig holds tracing settings.
type TracerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"`
}

// Defaults returns a Config with sensible defaults: a local Ollama server
// for both generation and embeddings, and on-disk data next to the binary.
func Defaults() *Config {
	return &Config{
		Agent: AgentConfig{
			Temperature: 0.2,
			MaxTokens:   1024,
		},
		LLM: LLMConfig{
			BaseURL: "http://localhost:11434",
			Model:   "qwen2.5:3b",
			Timeout: 60 * time.Second,
		},
		Retriever: RetrieverConfig{
			DataDir:      "./data",
			KnowledgeDir: "./knowledge_base",
			TopK:         2,
			Embedding: EmbeddingConfig{
				BaseURL: "http://localhost:11434",
				Model:   "mxbai-embed-large",
			},
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Tracer: TracerConfig{
			Enabled:  false,
			Exporter: "noop",
		},
	}
}

// Load reads a YAML config file and applies env var overrides. A missing
// file is not an error: defaults plus environment are used instead.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			ApplyEnvOverrides(cfg)
			if err := Validate(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrConfigLoad, path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrConfigLoad, filepath.Base(path), err)
	}

	ApplyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides maps PANTRYAI_* env vars to config fields.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PANTRYAI_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("PANTRYAI_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("PANTRYAI_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.LLM.Timeout = d
		}
	}
	if v := os.Getenv("PANTRYAI_RETRIEVER_DATA_DIR"); v != "" {
		cfg.Retriever.DataDir = v
	}
	if v := os.Getenv("PANTRYAI_RETRIEVER_KNOWLEDGE_DIR"); v != "" {
		cfg.Retriever.KnowledgeDir = v
	}
	if v := os.Getenv("PANTRYAI_RETRIEVER_TOP_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Retriever.TopK = n
		}
	}
	if v := os.Getenv("PANTRYAI_EMBEDDING_BASE_URL"); v != "" {
		cfg.Retriever.Embedding.BaseURL = v
	}
	if v := os.Getenv("PANTRYAI_EMBEDDING_MODEL"); v != "" {
		cfg.Retriever.Embedding.Model = v
	}
	if v := os.Getenv("PANTRYAI_LOGGER_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv("PANTRYAI_TRACER_ENABLED"); v == "true" {
		cfg.Tracer.Enabled = true
	}
	if v := os.Getenv("PANTRYAI_TRACER_EXPORTER"); v != "" {
		cfg.Tracer.Exporter = v
	}
}

// Validate checks the configuration for inconsistencies.
func Validate(cfg *Config) error {
	if cfg.LLM.BaseURL == "" {
		return fmt.Errorf("%w: llm.base_url must not be empty", domain.ErrConfigLoad)
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("%w: llm.model must not be empty", domain.ErrConfigLoad)
	}
	if cfg.LLM.Timeout <= 0 {
		return fmt.Errorf("%w: llm.timeout must be positive", domain.ErrConfigLoad)
	}
	if cfg.Retriever.TopK <= 0 {
		return fmt.Errorf("%w: retriever.top_k must be positive", domain.ErrConfigLoad)
	}
	if cfg.Retriever.Embedding.Model == "" {
		return fmt.Errorf("%w: retriever.embedding.model must not be empty", domain.ErrConfigLoad)
	}
	return nil
}
