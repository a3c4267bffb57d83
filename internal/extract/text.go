package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TextExtractor reads plain-text and Markdown files as a single segment.
type TextExtractor struct{}

// Extract returns the file content as one segment labeled with the file name.
func (e *TextExtractor) Extract(ctx context.Context, source string) ([]Segment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return nil, nil
	}

	return []Segment{{
		Text:   content,
		Source: filepath.Base(source),
		Meta:   map[string]any{"type": "text", "file": source},
	}}, nil
}
