// Package render consumes outlines: each block maps to one visual unit,
// in order. Markdown is the default deck format; JSON export serves
// programmatic consumers.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/deckforge/deckforge/internal/outline"
)

// Markdown renders the outline as a Markdown deck: the title block as a
// top-level heading, every other block as one slide section with its
// bullet points.
func Markdown(o outline.Outline) string {
	var b strings.Builder

	for _, block := range o {
		if block.Type == outline.BlockTitle {
			b.WriteString(fmt.Sprintf("# %s\n", block.Title))
			continue
		}

		b.WriteString(fmt.Sprintf("\n## %s\n\n", block.Title))
		for _, p := range block.Points {
			b.WriteString(fmt.Sprintf("- %s\n", p))
		}
	}

	return b.String()
}

// WriteMarkdown writes the Markdown deck to the given path.
func WriteMarkdown(o outline.Outline, path string) error {
	return os.WriteFile(path, []byte(Markdown(o)), 0o644)
}

// WriteJSON writes the outline blocks as indented JSON.
func WriteJSON(o outline.Outline, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(o)
}
