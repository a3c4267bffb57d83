// Package chunk normalizes extracted text segments into discrete chunks
// with deterministic identities. A chunk is the unit the embedding,
// deduplication and retrieval stages operate on.
package chunk

import (
	"crypto/sha256"
	"fmt"
	"regexp"
	"strings"

	"github.com/deckforge/deckforge/internal/extract"
)

// maxFragmentWords is the longest fragment kept whole; anything longer
// is re-split on sentence boundaries.
const maxFragmentWords = 25

var (
	bulletPattern     = regexp.MustCompile(`[\n•]|(^|\s)[-–]\s`)
	sentencePattern   = regexp.MustCompile(`([.!?])\s+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Chunk is a normalized unit of extracted text with a stable identity
// and source attribution. Chunks are immutable after creation and live
// for a single pipeline run.
type Chunk struct {
	ID         string         `json:"id"`
	Content    string         `json:"content"`
	Source     string         `json:"source"`
	OrderIndex int            `json:"order_index"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Words returns the whitespace-separated word count of the content.
func (c Chunk) Words() int {
	return len(strings.Fields(c.Content))
}

// Title returns the source title carried in the metadata, if any.
func (c Chunk) Title() string {
	if c.Metadata == nil {
		return ""
	}
	if t, ok := c.Metadata["title"].(string); ok {
		return t
	}
	return ""
}

// ID computation is a digest of (source, order index, content), so two
// extractions of the same input produce chunks with equal ids.
func chunkID(source string, orderIndex int, content string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s", source, orderIndex, content)))
	return fmt.Sprintf("%x", sum)[:16]
}

// Build splits raw segments into chunks. Text is split on paragraph and
// bullet delimiters; fragments longer than 25 words are further split
// on sentence boundaries. Empty fragments are dropped. OrderIndex is
// the position within the overall emitted sequence, not within a single
// source, so ids stay stable under source interleaving for a fixed
// input order. Build never fails; an empty input yields an empty slice.
func Build(segments []extract.Segment) []Chunk {
	var chunks []Chunk
	index := 0

	for _, seg := range segments {
		for _, fragment := range splitFragments(seg.Text) {
			chunks = append(chunks, Chunk{
				ID:         chunkID(seg.Source, index, fragment),
				Content:    fragment,
				Source:     seg.Source,
				OrderIndex: index,
				Metadata:   copyMeta(seg.Meta),
			})
			index++
		}
	}

	return chunks
}

// splitFragments breaks text on bullet and paragraph delimiters, then
// re-splits anything longer than maxFragmentWords on sentence endings.
func splitFragments(text string) []string {
	var out []string
	for _, raw := range bulletPattern.Split(text, -1) {
		fragment := strings.TrimSpace(whitespacePattern.ReplaceAllString(raw, " "))
		if fragment == "" {
			continue
		}
		if len(strings.Fields(fragment)) > maxFragmentWords {
			out = append(out, splitSentences(fragment)...)
			continue
		}
		out = append(out, fragment)
	}
	return out
}

func splitSentences(text string) []string {
	// Keep the terminator with its sentence.
	marked := sentencePattern.ReplaceAllString(text, "$1\x00")
	var out []string
	for _, part := range strings.Split(marked, "\x00") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}
