// Package dedupe removes near-duplicate chunks from an ordered sequence
// using embedding cosine similarity.
package dedupe

import (
	"context"

	"github.com/deckforge/deckforge/internal/chunk"
	"github.com/deckforge/deckforge/internal/embed"
)

// DefaultThreshold is the similarity at or above which a chunk is
// considered a duplicate of the last kept chunk.
const DefaultThreshold = 0.85

// Dedupe walks the chunks in order and drops any chunk whose embedding
// scores >= threshold against the embedding of the most recently kept
// chunk. Dropped chunks never become the comparison vector, and a kept
// chunk with an unavailable embedding leaves the comparison vector
// unchanged.
//
// This is a single-pass, adjacent-to-last-kept comparison, O(n) in
// chunk count, not an all-pairs scan: a duplicate separated from its
// twin by an intervening distinct chunk is not detected. Threshold 1.0
// drops only exact-embedding matches; 0.0 drops everything after the
// first kept chunk with a usable embedding.
func Dedupe(ctx context.Context, chunks []chunk.Chunk, threshold float64, cache *embed.Cache) []chunk.Chunk {
	kept := make([]chunk.Chunk, 0, len(chunks))
	var lastKept []float32

	for _, c := range chunks {
		embedding := cache.Get(ctx, c.Content)

		if lastKept != nil && len(embedding) > 0 {
			if embed.Cosine(lastKept, embedding) >= threshold {
				continue
			}
		}

		kept = append(kept, c)
		if len(embedding) > 0 {
			lastKept = embedding
		}
	}

	return kept
}
