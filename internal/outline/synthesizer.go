package outline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/deckforge/deckforge/internal/chunk"
)

// ErrSynthesisFailed marks any failure of the generative path: network
// or timeout errors, a response with no JSON object, or unparsable
// JSON. Callers fall back to the heuristic outliner; the error never
// propagates past the orchestrator.
var ErrSynthesisFailed = errors.New("outline synthesis failed")

const (
	// maxSummaryLines bounds the prompt size.
	maxSummaryLines = 1200

	// maxBulletsPerUnit caps the bullets emitted per source unit.
	maxBulletsPerUnit = 12

	// defaultTitle is used when the model returns no usable title.
	defaultTitle = "Improved Presentation"
)

const synthesisSystemPrompt = `You are an expert presentation editor. You receive extracted raw bullets from source material. Your task:
1. Remove redundancy
2. Improve clarity & concision
3. Organize into a logical narrative
4. Limit each section to 3-6 sharp bullet points (max ~12 words each)
Return ONLY valid JSON with this structure:
{
  "title": "Improved Main Title",
  "sections": [
     {"title": "Section Title", "points": ["Bullet 1", "Bullet 2"] }
  ],
  "conclusion": {"title": "Conclusion Title", "points": ["Key takeaways", "Call to action"] }
}
Rules:
- No extra commentary
- Bullets: sentence fragments, no trailing punctuation
- Min 2 sections (excluding conclusion) if source has enough content
- Avoid repeating words across consecutive bullets`

// outlinePayload mirrors the JSON contract expected from the service.
type outlinePayload struct {
	Title      string           `json:"title"`
	Sections   []sectionPayload `json:"sections"`
	Conclusion sectionPayload   `json:"conclusion"`
}

type sectionPayload struct {
	Title  string   `json:"title"`
	Points []string `json:"points"`
}

// Synthesizer produces outlines by delegating to an external generative
// service under a strict JSON response contract.
type Synthesizer struct {
	llm    LLM
	config LLMConfig
}

// NewSynthesizer creates a synthesizer with the given LLM implementation.
func NewSynthesizer(llm LLM, config LLMConfig) *Synthesizer {
	return &Synthesizer{llm: llm, config: config}
}

// Synthesize builds a bounded summary of the chunks, requests an
// improved outline from the generative service, and parses the response
// into an Outline. Any failure is reported as ErrSynthesisFailed so the
// caller can fall back to the heuristic outliner.
func (s *Synthesizer) Synthesize(ctx context.Context, chunks []chunk.Chunk) (Outline, error) {
	if s.llm == nil {
		return nil, fmt.Errorf("%w: no LLM configured", ErrSynthesisFailed)
	}

	summary := buildSourceSummary(chunks)
	user := fmt.Sprintf("Source extracted bullets:\n%s\n\nGenerate improved outline JSON now.", summary)

	response, err := s.llm.Generate(ctx, synthesisSystemPrompt, user)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesisFailed, err)
	}

	region, ok := extractJSONObject(response)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object found in model response", ErrSynthesisFailed)
	}

	var payload outlinePayload
	if err := json.Unmarshal([]byte(region), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesisFailed, err)
	}

	return buildOutline(payload), nil
}

// buildSourceSummary emits a per-source-unit view of the chunks: a
// header line with the unit title, then up to 12 bullet lines. The
// total emitted line count is capped to keep the prompt bounded.
func buildSourceSummary(chunks []chunk.Chunk) string {
	var lines []string
	unit := 0
	bullets := 0
	lastSource := ""

	for _, c := range chunks {
		if c.Source != lastSource || unit == 0 {
			lastSource = c.Source
			unit++
			bullets = 0
			title := c.Title()
			if title == "" {
				title = "Untitled"
			}
			lines = append(lines, fmt.Sprintf("Slide %d: %s", unit, title))
		}
		if bullets >= maxBulletsPerUnit {
			continue
		}
		lines = append(lines, "- "+c.Content)
		bullets++
	}

	if len(lines) > maxSummaryLines {
		lines = lines[:maxSummaryLines]
	}
	return strings.Join(lines, "\n")
}

// extractJSONObject returns the first balanced top-level {...} region
// of the text. The response may contain prose around the JSON, so this
// is a brace-matching scan (string and escape aware), not a
// full-document parse.
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}

// buildOutline converts a parsed payload into a valid Outline. Sections
// keep at most 6 trimmed non-empty points; sections left with none are
// dropped so the outline invariant holds. The conclusion defaults to
// "Conclusion" / ["Thank you"] when the payload has no usable points.
func buildOutline(payload outlinePayload) Outline {
	title := strings.TrimSpace(payload.Title)
	if title == "" {
		title = defaultTitle
	}

	out := Outline{{Type: BlockTitle, Title: title}}

	for _, sec := range payload.Sections {
		points := cleanPoints(sec.Points)
		if len(points) == 0 {
			continue
		}
		secTitle := strings.TrimSpace(sec.Title)
		if secTitle == "" {
			secTitle = "Section"
		}
		out = append(out, Block{Type: BlockSection, Title: secTitle, Points: points})
	}

	conclusionTitle := strings.TrimSpace(payload.Conclusion.Title)
	if conclusionTitle == "" {
		conclusionTitle = "Conclusion"
	}
	conclusionPoints := cleanPoints(payload.Conclusion.Points)
	if len(conclusionPoints) == 0 {
		conclusionPoints = []string{"Thank you"}
	}
	out = append(out, Block{Type: BlockConclusion, Title: conclusionTitle, Points: conclusionPoints})

	return out
}

// cleanPoints trims points, drops empties, and caps the result at the
// per-section maximum.
func cleanPoints(points []string) []string {
	var out []string
	for _, p := range points {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
		if len(out) == maxPointsPerSection {
			break
		}
	}
	return out
}
