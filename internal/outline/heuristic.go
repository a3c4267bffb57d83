package outline

import (
	"crypto/sha256"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/deckforge/deckforge/internal/chunk"
)

const (
	// segmentWordCeiling closes the current section group once its
	// cumulative word count exceeds it.
	segmentWordCeiling = 140

	// maxKeyTerms is the size of the section-title candidate pool.
	maxKeyTerms = 12

	// shrinkWordLimit truncates bullets longer than this many words.
	shrinkWordLimit = 12
)

var tokenPattern = regexp.MustCompile(`\b[a-z0-9]{3,}\b`)

// Heuristic builds an outline from term frequency, fixed-size
// word-count segmentation, and hash-based bullet deduplication. It is
// fully deterministic, performs no external calls, and cannot fail.
func Heuristic(chunks []chunk.Chunk) Outline {
	out := Outline{{Type: BlockTitle, Title: guessMainTitle(chunks)}}

	terms := keyTerms(chunks)
	for i, group := range segment(chunks) {
		title := "Section"
		if len(terms) > 0 {
			title = titleCase(terms[i%len(terms)])
		}
		points := compressPoints(group)
		if len(points) == 0 {
			continue
		}
		out = append(out, Block{Type: BlockSection, Title: title, Points: points})
	}

	out = append(out, Block{
		Type:   BlockConclusion,
		Title:  "Next Steps",
		Points: []string{"Summary", "Recommendations", "Call to Action"},
	})
	return out
}

// segment accumulates chunks into groups until the cumulative word
// count exceeds the ceiling; the remainder forms the final group.
func segment(chunks []chunk.Chunk) [][]chunk.Chunk {
	var groups [][]chunk.Chunk
	var current []chunk.Chunk
	words := 0

	for _, c := range chunks {
		current = append(current, c)
		words += c.Words()
		if words > segmentWordCeiling {
			groups = append(groups, current)
			current = nil
			words = 0
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// keyTerms returns the most frequent case-folded alphanumeric tokens of
// length >= 3 across all chunk content, ranked by descending frequency
// with ties broken by first occurrence.
func keyTerms(chunks []chunk.Chunk) []string {
	var all []string
	for _, c := range chunks {
		all = append(all, c.Content)
	}
	tokens := tokenPattern.FindAllString(strings.ToLower(strings.Join(all, " ")), -1)

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, tok := range tokens {
		counts[tok]++
		if _, ok := firstSeen[tok]; !ok {
			firstSeen[tok] = i
		}
	}

	terms := make([]string, 0, len(counts))
	for tok := range counts {
		terms = append(terms, tok)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return firstSeen[terms[i]] < firstSeen[terms[j]]
	})

	if len(terms) > maxKeyTerms {
		terms = terms[:maxKeyTerms]
	}
	return terms
}

// compressPoints deduplicates group bullets by case-insensitive content
// hash (first seen wins), shrinks long bullets, and caps the result.
func compressPoints(group []chunk.Chunk) []string {
	seen := make(map[string]struct{})
	var out []string

	for _, c := range group {
		key := bulletKey(c.Content)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, shrink(c.Content))
		if len(out) == maxPointsPerSection {
			break
		}
	}
	return out
}

func bulletKey(text string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(text)))
	return fmt.Sprintf("%x", sum)[:16]
}

// shrink truncates text to its first 12 words plus an ellipsis marker.
func shrink(text string) string {
	words := strings.Fields(text)
	if len(words) <= shrinkWordLimit {
		return text
	}
	return strings.Join(words[:shrinkWordLimit], " ") + "..."
}

// guessMainTitle picks the longest observed source title, measured by
// the count of words longer than 3 characters, first occurrence winning
// ties.
func guessMainTitle(chunks []chunk.Chunk) string {
	best := ""
	bestScore := -1

	for _, c := range chunks {
		title := c.Title()
		if title == "" {
			continue
		}
		score := 0
		for _, w := range strings.Fields(title) {
			if len(w) > 3 {
				score++
			}
		}
		if score > bestScore {
			best = title
			bestScore = score
		}
	}

	if best == "" {
		return defaultTitle
	}
	return best
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(word)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
