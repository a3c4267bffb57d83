// Package retrieve ranks chunks by semantic relevance to a query topic.
package retrieve

import (
	"context"
	"fmt"
	"sort"

	"github.com/deckforge/deckforge/internal/chunk"
	"github.com/deckforge/deckforge/internal/embed"
)

// DefaultTopK is the number of chunks returned when the caller does not
// specify a count.
const DefaultTopK = 5

// ScoredChunk pairs a chunk with its cosine similarity to the query.
// Scores are in [-1, 1]. Scored chunks are ephemeral and not persisted.
type ScoredChunk struct {
	Chunk chunk.Chunk
	Score float64
}

// Retriever ranks stored chunks against a free-text query using the
// shared embedding cache, so repeated chunk embeddings are free.
type Retriever struct {
	cache *embed.Cache
}

// NewRetriever creates a retriever over the given embedding cache.
func NewRetriever(cache *embed.Cache) (*Retriever, error) {
	if cache == nil {
		return nil, fmt.Errorf("embedding cache cannot be nil")
	}
	return &Retriever{cache: cache}, nil
}

// Retrieve returns the topK chunks most similar to the query, or fewer
// if fewer chunks exist. When the query embedding is unavailable the
// first topK chunks are returned in original order: a degraded-mode
// fallback, not an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, chunks []chunk.Chunk, topK int) []chunk.Chunk {
	scored := r.RetrieveScored(ctx, query, chunks, topK)
	out := make([]chunk.Chunk, len(scored))
	for i, sc := range scored {
		out[i] = sc.Chunk
	}
	return out
}

// RetrieveScored is Retrieve with the similarity scores attached. In
// degraded mode every score is zero.
func (r *Retriever) RetrieveScored(ctx context.Context, query string, chunks []chunk.Chunk, topK int) []ScoredChunk {
	if topK <= 0 {
		topK = DefaultTopK
	}

	queryEmbedding := r.cache.Get(ctx, query)
	if len(queryEmbedding) == 0 {
		return firstK(chunks, topK)
	}

	scored := make([]ScoredChunk, len(chunks))
	for i, c := range chunks {
		embedding := r.cache.Get(ctx, c.Content)
		scored[i] = ScoredChunk{
			Chunk: c,
			Score: embed.Cosine(queryEmbedding, embedding),
		}
	}

	// Stable sort so chunks with equal scores keep their original
	// relative order.
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	if topK > len(scored) {
		topK = len(scored)
	}
	return scored[:topK]
}

func firstK(chunks []chunk.Chunk, topK int) []ScoredChunk {
	if topK > len(chunks) {
		topK = len(chunks)
	}
	out := make([]ScoredChunk, topK)
	for i := 0; i < topK; i++ {
		out[i] = ScoredChunk{Chunk: chunks[i]}
	}
	return out
}
