package outline

import (
	"context"
	"errors"
)

var (
	ErrLLMFailed     = errors.New("LLM request failed")
	ErrInvalidConfig = errors.New("invalid LLM configuration")
)

// LLM defines the interface for interacting with generative language
// models. Implementations must be stateless and thread-safe.
type LLM interface {
	// Generate produces assistant text from a system instruction and
	// user content using the configured model.
	Generate(ctx context.Context, system, user string) (string, error)
}

// LLMConfig holds common configuration options for LLM providers.
type LLMConfig struct {
	// Model specifies the model identifier (e.g. "gpt-4o", "gpt-oss:20b")
	Model string

	// BaseURL overrides the provider endpoint; empty means the OpenAI
	// default. Ollama and LM Studio expose OpenAI-compatible endpoints.
	BaseURL string

	// Temperature controls randomness (0.0 = provider default)
	Temperature float32

	// MaxTokens limits the response length (0 = provider default)
	MaxTokens int

	// APIKey is the authentication key for the provider
	APIKey string
}

// DefaultLLMConfig returns sensible defaults for outline generation.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Model:     "gpt-4o",
		MaxTokens: 2000,
	}
}
