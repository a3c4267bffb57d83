// Package config resolves application configuration: an optional YAML
// file layered over per-provider defaults, resolved once before the
// pipeline is constructed.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Supported generative/embedding service providers.
const (
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lm_studio"
	ProviderOpenAI   = "openai"
)

// DefaultProvider is used when none is configured.
const DefaultProvider = ProviderOllama

// ProviderDefaults is the explicit configuration record for one
// provider: endpoint and default models, enumerated up front rather
// than probed at runtime.
type ProviderDefaults struct {
	BaseURL      string
	OutlineModel string
	EmbedModel   string
	APIKeyEnv    string
}

var providerDefaults = map[string]ProviderDefaults{
	ProviderOllama: {
		BaseURL:      "http://localhost:11434/v1",
		OutlineModel: "gpt-oss:20b",
		EmbedModel:   "nomic-embed-text",
	},
	ProviderLMStudio: {
		BaseURL:      "http://localhost:1234/v1",
		OutlineModel: "local-model",
		EmbedModel:   "nomic-embed-text",
	},
	ProviderOpenAI: {
		BaseURL:      "",
		OutlineModel: "gpt-4o",
		EmbedModel:   "text-embedding-3-small",
		APIKeyEnv:    "OPENAI_API_KEY",
	},
}

// Defaults returns the configuration record for a provider.
func Defaults(provider string) (ProviderDefaults, error) {
	d, ok := providerDefaults[provider]
	if !ok {
		return ProviderDefaults{}, fmt.Errorf("unsupported provider: %q", provider)
	}
	return d, nil
}

// Providers lists the supported provider names.
func Providers() []string {
	return []string{ProviderOllama, ProviderLMStudio, ProviderOpenAI}
}

// AppConfig is the root application configuration.
type AppConfig struct {
	Provider        string  `yaml:"provider"`
	BaseURL         string  `yaml:"base_url"`
	OutlineModel    string  `yaml:"outline_model"`
	EmbedModel      string  `yaml:"embed_model"`
	DedupeThreshold float64 `yaml:"dedupe_threshold"`
	TopK            int     `yaml:"top_k"`
	TimeoutSecs     int     `yaml:"timeout_secs"`
}

// Load reads a config from the given path; a missing file yields the
// defaults. Provider defaults fill any field left empty.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := &AppConfig{}
			if err := applyDefaults(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Resolve fills empty fields of cfg from the provider defaults and
// validates the provider name.
func Resolve(cfg *AppConfig) error {
	return applyDefaults(cfg)
}

// APIKey returns the provider API key from the environment, if the
// provider requires one.
func (c *AppConfig) APIKey() string {
	d, err := Defaults(c.Provider)
	if err != nil || d.APIKeyEnv == "" {
		return os.Getenv("OPENAI_API_KEY")
	}
	return os.Getenv(d.APIKeyEnv)
}

func applyDefaults(cfg *AppConfig) error {
	if cfg.Provider == "" {
		cfg.Provider = DefaultProvider
	}
	d, err := Defaults(cfg.Provider)
	if err != nil {
		return err
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = d.BaseURL
	}
	if cfg.OutlineModel == "" {
		cfg.OutlineModel = d.OutlineModel
	}
	if cfg.EmbedModel == "" {
		cfg.EmbedModel = d.EmbedModel
	}
	if cfg.DedupeThreshold == 0 {
		cfg.DedupeThreshold = 0.85
	}
	if cfg.TopK == 0 {
		cfg.TopK = 5
	}
	if cfg.TimeoutSecs == 0 {
		cfg.TimeoutSecs = 60
	}
	return nil
}
