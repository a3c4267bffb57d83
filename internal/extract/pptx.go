package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// slideFilePattern matches slide part names inside a pptx archive.
var slideFilePattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// maxTitleWords is the longest text frame still treated as a slide title.
const maxTitleWords = 12

// PPTXExtractor extracts text from PowerPoint files, one segment per
// slide. A pptx file is a zip archive of DrawingML XML parts; no
// external library is needed to read the text runs.
type PPTXExtractor struct{}

// Extract returns a segment per slide that contains text. The first
// text frame of at most 12 words is taken as the slide title and
// carried in Meta["title"]; all other frames form the segment text.
func (e *PPTXExtractor) Extract(ctx context.Context, source string) ([]Segment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	archive, err := zip.OpenReader(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}
	defer archive.Close()

	type slidePart struct {
		number int
		file   *zip.File
	}
	var parts []slidePart
	for _, f := range archive.File {
		m := slideFilePattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		parts = append(parts, slidePart{number: n, file: f})
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].number < parts[j].number })

	name := filepath.Base(source)
	var segments []Segment

	for _, part := range parts {
		shapes, err := readSlideShapes(part.file)
		if err != nil {
			continue
		}

		var title string
		var body []string
		for _, text := range shapes {
			words := len(strings.Fields(text))
			if title == "" && words > 0 && words <= maxTitleWords {
				title = text
				continue
			}
			body = append(body, text)
		}

		if title == "" && len(body) == 0 {
			continue
		}

		text := strings.Join(body, "\n")
		if text == "" {
			text = title
		}

		segments = append(segments, Segment{
			Text:   text,
			Source: fmt.Sprintf("%s - Slide %d", name, part.number),
			Meta: map[string]any{
				"type":         "pptx",
				"slide_number": part.number,
				"file":         source,
				"title":        title,
			},
		})
	}

	return segments, nil
}

// readSlideShapes returns the text of each shape on a slide, with
// paragraphs inside a shape joined by newlines. It walks the XML token
// stream rather than decoding the full DrawingML schema.
func readSlideShapes(f *zip.File) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)

	var shapes []string
	var current strings.Builder
	inShape := 0

	flush := func() {
		text := strings.TrimSpace(current.String())
		current.Reset()
		if text != "" {
			shapes = append(shapes, text)
		}
	}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "sp":
				inShape++
			case "t":
				if inShape > 0 {
					var run string
					if err := decoder.DecodeElement(&run, &t); err == nil {
						current.WriteString(run)
					}
				}
			case "p":
				if inShape > 0 && current.Len() > 0 {
					current.WriteString("\n")
				}
			}
		case xml.EndElement:
			if t.Name.Local == "sp" {
				inShape--
				if inShape == 0 {
					flush()
				}
			}
		}
	}

	return shapes, nil
}
