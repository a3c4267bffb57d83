// Package extract turns source material (PPTX decks, PDFs, plain text,
// web pages) into raw text segments with source labels. Each extractor
// emits one segment per logical unit: a slide, a page, or a section.
package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportedSource = errors.New("unsupported source type")
	ErrUnreadableSource  = errors.New("source could not be read")
)

// Segment is one logical unit of extracted text.
type Segment struct {
	// Text is the raw extracted content of the unit.
	Text string

	// Source labels where the text came from (e.g. "deck.pptx - Slide 3").
	Source string

	// Meta carries extractor-specific fields such as the slide title.
	Meta map[string]any
}

// Extractor produces segments from a file path or URL.
type Extractor interface {
	Extract(ctx context.Context, source string) ([]Segment, error)
}

// ForSource returns the extractor matching the source's scheme or file
// extension, or ErrUnsupportedSource.
func ForSource(source string) (Extractor, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return NewURLExtractor(0), nil
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".pptx":
		return &PPTXExtractor{}, nil
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".txt", ".md":
		return &TextExtractor{}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, source)
}

// Extract dispatches to the extractor for the given source.
func Extract(ctx context.Context, source string) ([]Segment, error) {
	ex, err := ForSource(source)
	if err != nil {
		return nil, err
	}
	return ex.Extract(ctx, source)
}
