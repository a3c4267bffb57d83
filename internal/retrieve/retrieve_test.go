package retrieve

import (
	"context"
	"testing"

	"github.com/deckforge/deckforge/internal/chunk"
	"github.com/deckforge/deckforge/internal/embed"
)

func testChunks(contents ...string) []chunk.Chunk {
	out := make([]chunk.Chunk, len(contents))
	for i, c := range contents {
		out[i] = chunk.Chunk{ID: c, Content: c, OrderIndex: i}
	}
	return out
}

func newRetriever(t *testing.T, vectors map[string][]float32) *Retriever {
	t.Helper()
	r, err := NewRetriever(embed.NewCache(&embed.MockEmbedder{Vectors: vectors}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}

func TestNewRetriever_NilCache(t *testing.T) {
	if _, err := NewRetriever(nil); err == nil {
		t.Fatal("expected error for nil cache")
	}
}

func TestRetrieve_RanksBySimilarity(t *testing.T) {
	r := newRetriever(t, map[string][]float32{
		"topic": {1, 0},
		"far":   {0, 1},
		"near":  {0.99, 0.14107},
		"mid":   {0.7, 0.71414},
	})

	got := r.Retrieve(context.Background(), "topic", testChunks("far", "near", "mid"), 2)

	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(got))
	}
	if got[0].Content != "near" || got[1].Content != "mid" {
		t.Errorf("expected [near mid], got [%s %s]", got[0].Content, got[1].Content)
	}
}

func TestRetrieve_TieKeepsOriginalOrder(t *testing.T) {
	// First two chunks score identically; with topK=2 they must come
	// back in their original relative order.
	r := newRetriever(t, map[string][]float32{
		"topic": {1, 0},
		"a":     {0.9, 0.43589},
		"b":     {0.9, 0.43589},
		"c":     {0.1, 0.99499},
	})

	got := r.Retrieve(context.Background(), "topic", testChunks("a", "b", "c"), 2)

	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(got))
	}
	if got[0].Content != "a" || got[1].Content != "b" {
		t.Errorf("expected [a b], got [%s %s]", got[0].Content, got[1].Content)
	}
}

func TestRetrieve_TopKExceedsChunkCount(t *testing.T) {
	r := newRetriever(t, map[string][]float32{
		"topic": {1, 0},
		"a":     {1, 0},
		"b":     {0, 1},
	})

	got := r.Retrieve(context.Background(), "topic", testChunks("a", "b"), 10)

	if len(got) != 2 {
		t.Errorf("expected all 2 chunks, got %d", len(got))
	}
}

func TestRetrieve_ZeroTopKUsesDefault(t *testing.T) {
	vectors := map[string][]float32{"topic": {1, 0}}
	contents := []string{"a", "b", "c", "d", "e", "f", "g"}
	for _, c := range contents {
		vectors[c] = []float32{1, 0}
	}
	r := newRetriever(t, vectors)

	got := r.Retrieve(context.Background(), "topic", testChunks(contents...), 0)

	if len(got) != DefaultTopK {
		t.Errorf("expected %d chunks, got %d", DefaultTopK, len(got))
	}
}

func TestRetrieveScored_DegradedModeWithoutQueryEmbedding(t *testing.T) {
	// Query embedding unavailable: first topK chunks in original
	// order, all scores zero.
	r := newRetriever(t, map[string][]float32{
		"a": {1, 0},
		"b": {0, 1},
		"c": {1, 1},
	})

	got := r.RetrieveScored(context.Background(), "topic", testChunks("a", "b", "c"), 2)

	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(got))
	}
	if got[0].Chunk.Content != "a" || got[1].Chunk.Content != "b" {
		t.Errorf("expected first chunks in order, got [%s %s]", got[0].Chunk.Content, got[1].Chunk.Content)
	}
	for i, sc := range got {
		if sc.Score != 0 {
			t.Errorf("degraded score %d = %v, want 0", i, sc.Score)
		}
	}
}

func TestRetrieveScored_ChunkWithoutEmbeddingScoresZero(t *testing.T) {
	r := newRetriever(t, map[string][]float32{
		"topic": {1, 0},
		"a":     nil,
		"b":     {1, 0},
	})

	got := r.RetrieveScored(context.Background(), "topic", testChunks("a", "b"), 2)

	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(got))
	}
	if got[0].Chunk.Content != "b" {
		t.Errorf("embedded chunk should rank first, got %s", got[0].Chunk.Content)
	}
	if got[1].Score != 0 {
		t.Errorf("chunk without embedding scored %v, want 0", got[1].Score)
	}
}

func TestRetrieve_EmptyChunks(t *testing.T) {
	r := newRetriever(t, map[string][]float32{"topic": {1, 0}})

	if got := r.Retrieve(context.Background(), "topic", nil, 5); len(got) != 0 {
		t.Errorf("expected empty result, got %d chunks", len(got))
	}
}
