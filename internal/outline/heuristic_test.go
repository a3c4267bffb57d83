package outline

import (
	"strings"
	"testing"

	"github.com/deckforge/deckforge/internal/chunk"
)

func chunkWithTitle(content, source, title string) chunk.Chunk {
	c := chunk.Chunk{ID: content, Content: content, Source: source}
	if title != "" {
		c.Metadata = map[string]any{"title": title}
	}
	return c
}

func TestHeuristic_OutlineInvariant(t *testing.T) {
	chunks := []chunk.Chunk{
		chunkWithTitle("Cloud adoption keeps growing across every industry", "s1", "Cloud Strategy Overview"),
		chunkWithTitle("Migration costs fall with automation", "s1", ""),
		chunkWithTitle("Security remains the top adoption concern", "s2", ""),
	}

	out := Heuristic(chunks)

	if err := out.Validate(); err != nil {
		t.Fatalf("heuristic outline failed validation: %v", err)
	}
	if out[0].Title != "Cloud Strategy Overview" {
		t.Errorf("expected source title as main title, got %q", out[0].Title)
	}
	last := out[len(out)-1]
	if last.Title != "Next Steps" {
		t.Errorf("expected fixed conclusion title, got %q", last.Title)
	}
	if len(last.Points) != 3 {
		t.Errorf("expected 3 conclusion points, got %d", len(last.Points))
	}
}

func TestHeuristic_Deterministic(t *testing.T) {
	chunks := []chunk.Chunk{
		chunkWithTitle("alpha beta gamma delta", "s1", "First Deck"),
		chunkWithTitle("beta gamma delta epsilon", "s1", ""),
		chunkWithTitle("gamma delta epsilon zeta", "s2", ""),
	}

	first := Heuristic(chunks)
	second := Heuristic(chunks)

	if len(first) != len(second) {
		t.Fatalf("runs disagree on block count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Title != second[i].Title {
			t.Errorf("block %d: titles differ: %q vs %q", i, first[i].Title, second[i].Title)
		}
		if strings.Join(first[i].Points, "|") != strings.Join(second[i].Points, "|") {
			t.Errorf("block %d: points differ across runs", i)
		}
	}
}

func TestHeuristic_EmptyInput(t *testing.T) {
	out := Heuristic(nil)

	if err := out.Validate(); err != nil {
		t.Fatalf("empty-input outline failed validation: %v", err)
	}
	if out[0].Title != "Improved Presentation" {
		t.Errorf("expected default title, got %q", out[0].Title)
	}
	if len(out.Sections()) != 0 {
		t.Errorf("expected no sections, got %d", len(out.Sections()))
	}
}

func TestHeuristic_SectionPointCap(t *testing.T) {
	var chunks []chunk.Chunk
	for _, c := range []string{
		"point one here", "point two here", "point three here", "point four here",
		"point five here", "point six here", "point seven here", "point eight here",
	} {
		chunks = append(chunks, chunkWithTitle(c, "s1", ""))
	}

	out := Heuristic(chunks)

	for _, sec := range out.Sections() {
		if len(sec.Points) > 6 {
			t.Errorf("section %q has %d points, want at most 6", sec.Title, len(sec.Points))
		}
	}
}

func TestHeuristic_DuplicateBulletsDropped(t *testing.T) {
	chunks := []chunk.Chunk{
		chunkWithTitle("Same bullet text", "s1", ""),
		chunkWithTitle("same BULLET text", "s1", ""),
		chunkWithTitle("A different bullet", "s1", ""),
	}

	out := Heuristic(chunks)

	sections := out.Sections()
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if len(sections[0].Points) != 2 {
		t.Errorf("case-insensitive duplicate should be dropped, got %d points", len(sections[0].Points))
	}
	if sections[0].Points[0] != "Same bullet text" {
		t.Errorf("first occurrence should win, got %q", sections[0].Points[0])
	}
}

func TestHeuristic_SegmentationByWordCount(t *testing.T) {
	// Each chunk carries 50 words, so the cumulative count crosses the
	// 140-word ceiling after the third chunk; six chunks give two groups.
	fifty := strings.TrimSpace(strings.Repeat("word ", 50))
	var chunks []chunk.Chunk
	for i := 0; i < 6; i++ {
		c := chunkWithTitle(fifty+" "+string(rune('a'+i)), "s1", "")
		chunks = append(chunks, c)
	}

	out := Heuristic(chunks)

	if len(out.Sections()) != 2 {
		t.Errorf("expected 2 sections from word-count segmentation, got %d", len(out.Sections()))
	}
}

func TestShrink(t *testing.T) {
	long := "one two three four five six seven eight nine ten eleven twelve thirteen"
	got := shrink(long)
	if got != "one two three four five six seven eight nine ten eleven twelve..." {
		t.Errorf("unexpected shrink result: %q", got)
	}

	short := "one two three"
	if shrink(short) != short {
		t.Errorf("short text should be untouched, got %q", shrink(short))
	}
}

func TestKeyTerms(t *testing.T) {
	chunks := []chunk.Chunk{
		{Content: "kafka kafka kafka streaming streaming consumers"},
		{Content: "brokers consumers kafka"},
	}

	terms := keyTerms(chunks)

	if len(terms) == 0 {
		t.Fatal("expected key terms")
	}
	if terms[0] != "kafka" {
		t.Errorf("most frequent term should rank first, got %q", terms[0])
	}
	// streaming (2) and consumers (2) tie; streaming occurred first.
	if terms[1] != "streaming" || terms[2] != "consumers" {
		t.Errorf("tie should break by first occurrence, got %v", terms[:3])
	}
}

func TestKeyTerms_IgnoresShortTokens(t *testing.T) {
	terms := keyTerms([]chunk.Chunk{{Content: "go is ok up to it"}})
	if len(terms) != 0 {
		t.Errorf("tokens shorter than 3 chars should be ignored, got %v", terms)
	}
}

func TestGuessMainTitle(t *testing.T) {
	chunks := []chunk.Chunk{
		chunkWithTitle("body", "s1", "Short One"),
		chunkWithTitle("body", "s2", "Quarterly Revenue Growth Analysis"),
		chunkWithTitle("body", "s3", "Another Good Candidate Here"),
	}

	// Both long titles score 4; the first occurrence wins.
	got := guessMainTitle(chunks)
	if got != "Quarterly Revenue Growth Analysis" {
		t.Errorf("expected first highest-scoring title, got %q", got)
	}
}

func TestTitleCase(t *testing.T) {
	if titleCase("kafka") != "Kafka" {
		t.Errorf("got %q", titleCase("kafka"))
	}
	if titleCase("") != "" {
		t.Errorf("empty string should stay empty")
	}
}
