// Package orchestrator sequences the deck pipeline: extract source
// material, build chunks, deduplicate, optionally retrieve against a
// query topic, and synthesize an outline with automatic fallback to the
// heuristic outliner. The orchestrator always returns a well-formed
// outline; only resource-level failures propagate to the caller.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/deckforge/deckforge/internal/chunk"
	"github.com/deckforge/deckforge/internal/config"
	"github.com/deckforge/deckforge/internal/dedupe"
	"github.com/deckforge/deckforge/internal/embed"
	"github.com/deckforge/deckforge/internal/extract"
	"github.com/deckforge/deckforge/internal/outline"
	"github.com/deckforge/deckforge/internal/retrieve"
)

// Config holds the pipeline knobs resolved before construction.
type Config struct {
	// DedupeThreshold is the similarity at or above which a chunk is
	// dropped as a near-duplicate.
	DedupeThreshold float64

	// TopK is the number of chunks retrieved for a query topic.
	TopK int

	// LLMConfig configures the generative service for synthesis.
	LLMConfig outline.LLMConfig
}

// DefaultConfig returns sensible defaults for the pipeline.
func DefaultConfig() Config {
	return Config{
		DedupeThreshold: dedupe.DefaultThreshold,
		TopK:            retrieve.DefaultTopK,
		LLMConfig:       outline.DefaultLLMConfig(),
	}
}

// FromAppConfig maps a resolved application config onto pipeline knobs.
func FromAppConfig(app *config.AppConfig) Config {
	return Config{
		DedupeThreshold: app.DedupeThreshold,
		TopK:            app.TopK,
		LLMConfig: outline.LLMConfig{
			Model:   app.OutlineModel,
			BaseURL: app.BaseURL,
			APIKey:  app.APIKey(),
		},
	}
}

// Pipeline executes one sequential run. It owns its embedding cache;
// concurrent runs each get their own pipeline instance.
type Pipeline struct {
	config      Config
	cache       *embed.Cache
	retriever   *retrieve.Retriever
	synthesizer *outline.Synthesizer
	runID       string
}

// NewPipeline creates a pipeline from injected collaborators. The
// embedder is wrapped in a fresh per-run cache.
func NewPipeline(cfg Config, embedder embed.Embedder, llm outline.LLM) (*Pipeline, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder cannot be nil")
	}
	if llm == nil {
		return nil, fmt.Errorf("LLM cannot be nil")
	}
	if cfg.DedupeThreshold == 0 {
		cfg.DedupeThreshold = dedupe.DefaultThreshold
	}
	if cfg.TopK == 0 {
		cfg.TopK = retrieve.DefaultTopK
	}

	cache := embed.NewCache(embedder)
	retriever, err := retrieve.NewRetriever(cache)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		config:      cfg,
		cache:       cache,
		retriever:   retriever,
		synthesizer: outline.NewSynthesizer(llm, cfg.LLMConfig),
		runID:       uuid.NewString()[:8],
	}, nil
}

// NewServicePipeline wires a pipeline against the OpenAI-compatible
// service described by the application config.
func NewServicePipeline(app *config.AppConfig) (*Pipeline, error) {
	embedder, err := embed.NewOpenAIEmbedder(app.EmbedModel, app.BaseURL, app.APIKey())
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	cfg := FromAppConfig(app)
	llm, err := outline.NewOpenAILLM(cfg.LLMConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM: %w", err)
	}

	return NewPipeline(cfg, embedder, llm)
}

// ImproveDeck rebuilds the outline of an existing deck (or any single
// readable source) from its own content. An unreadable source is the
// only error surfaced; synthesis failure falls back to the heuristic
// outliner internally.
func (p *Pipeline) ImproveDeck(ctx context.Context, source string) (outline.Outline, error) {
	log.Printf("[pipeline %s] Improving deck from %s", p.runID, source)

	segments, err := extract.Extract(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to read source %s: %w", source, err)
	}

	chunks := chunk.Build(segments)
	log.Printf("[pipeline %s] Built %d chunks from %d segments", p.runID, len(chunks), len(segments))

	deduped := dedupe.Dedupe(ctx, chunks, p.config.DedupeThreshold, p.cache)
	log.Printf("[pipeline %s] Deduplication kept %d/%d chunks", p.runID, len(deduped), len(chunks))

	return p.synthesizeWithFallback(ctx, deduped), nil
}

// CreateDeck builds a new deck outline for a topic, augmented with
// reference material ranked by relevance to the topic. Individual
// unreadable references are logged and skipped; an error is returned
// only when references were given and none could be read, or the topic
// is empty.
func (p *Pipeline) CreateDeck(ctx context.Context, topic string, refs []string) (outline.Outline, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	log.Printf("[pipeline %s] Creating deck for topic %q with %d references", p.runID, topic, len(refs))

	var segments []extract.Segment
	failures := 0
	for _, ref := range refs {
		segs, err := extract.Extract(ctx, ref)
		if err != nil {
			log.Printf("[pipeline %s] Warning: skipping reference %s: %v", p.runID, ref, err)
			failures++
			continue
		}
		segments = append(segments, segs...)
	}
	if len(refs) > 0 && failures == len(refs) {
		return nil, fmt.Errorf("no readable reference material among %d sources", len(refs))
	}

	chunks := chunk.Build(segments)
	if len(chunks) == 0 {
		// No reference material: synthesize from the topic alone.
		chunks = chunk.Build([]extract.Segment{{
			Text:   topic,
			Source: "topic",
			Meta:   map[string]any{"title": topic},
		}})
	}

	deduped := dedupe.Dedupe(ctx, chunks, p.config.DedupeThreshold, p.cache)
	relevant := p.retriever.Retrieve(ctx, topic, deduped, p.config.TopK)
	log.Printf("[pipeline %s] Retrieved %d/%d chunks for topic", p.runID, len(relevant), len(deduped))

	return p.synthesizeWithFallback(ctx, relevant), nil
}

// synthesizeWithFallback absorbs synthesis failure: any error from the
// generative path yields the deterministic heuristic outline instead.
func (p *Pipeline) synthesizeWithFallback(ctx context.Context, chunks []chunk.Chunk) outline.Outline {
	out, err := p.synthesizer.Synthesize(ctx, chunks)
	if err != nil {
		log.Printf("[pipeline %s] Synthesis fell back to heuristic outline: %v", p.runID, err)
		return outline.Heuristic(chunks)
	}
	return out
}

// Cache exposes the run's embedding cache, mainly for inspection in
// tests and verbose output.
func (p *Pipeline) Cache() *embed.Cache {
	return p.cache
}
