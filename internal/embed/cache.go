package embed

import (
	"context"
	"crypto/sha256"
	"fmt"
)

// Cache memoizes embeddings per (model, text) pair for the lifetime of
// one pipeline run. A failed external call is cached as an empty slice,
// the "embedding unavailable" sentinel: callers must treat it as no
// similarity signal, never as a zero vector.
//
// The cache is unbounded and not internally synchronized; use one
// instance per pipeline run rather than sharing across goroutines.
type Cache struct {
	embedder Embedder
	entries  map[string][]float32
	calls    int
}

// NewCache creates an empty cache wrapping the given embedder.
func NewCache(embedder Embedder) *Cache {
	return &Cache{
		embedder: embedder,
		entries:  make(map[string][]float32),
	}
}

// Get returns the embedding for the text, invoking the external service
// at most once per (model, text) pair. It never returns an error: any
// failure yields the cached empty sentinel.
func (c *Cache) Get(ctx context.Context, text string) []float32 {
	key := cacheKey(c.embedder.Model(), text)
	if embedding, ok := c.entries[key]; ok {
		return embedding
	}

	c.calls++
	embedding, err := c.embedder.Embed(ctx, text)
	if err != nil {
		embedding = nil
	}
	c.entries[key] = embedding
	return embedding
}

// Calls reports how many external embedding calls the cache has issued.
func (c *Cache) Calls() int {
	return c.calls
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

func cacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "|" + text))
	return fmt.Sprintf("%x", sum)
}
