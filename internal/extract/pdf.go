package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor extracts text from PDF files, one segment per page.
type PDFExtractor struct{}

// Extract reads the PDF and returns a segment for every page that
// yields non-empty text. Pages that fail text extraction are skipped.
func (e *PDFExtractor) Extract(ctx context.Context, source string) ([]Segment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, r, err := pdf.Open(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}
	defer f.Close()

	name := filepath.Base(source)
	var segments []Segment

	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		segments = append(segments, Segment{
			Text:   text,
			Source: fmt.Sprintf("%s - Page %d", name, i),
			Meta:   map[string]any{"type": "pdf", "page_number": i, "file": source},
		})
	}

	return segments, nil
}
