// Package embed provides text embeddings for similarity comparison: a
// provider-agnostic embedder interface with an OpenAI-compatible
// implementation, a per-run memoizing cache, and cosine similarity.
package embed

import (
	"context"
	"errors"
)

var (
	ErrMissingAPIKey   = errors.New("embedding API key not set")
	ErrEmbeddingFailed = errors.New("embedding generation failed")
)

// Embedder defines the interface for generating text embeddings.
// Implementations must be stateless and thread-safe.
type Embedder interface {
	// Embed generates an embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Model returns the embedding model identifier.
	Model() string
}
