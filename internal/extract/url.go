package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const defaultFetchTimeout = 10 * time.Second

// maxFetchBytes caps how much of a response body is read.
const maxFetchBytes = 4 << 20

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// URLExtractor fetches a web page and extracts its visible text as a
// single segment. HTML tags are stripped with a simple pattern; no DOM
// parsing is attempted.
type URLExtractor struct {
	client *http.Client
}

// NewURLExtractor creates a URL extractor with the given request
// timeout; zero means the 10s default.
func NewURLExtractor(timeout time.Duration) *URLExtractor {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &URLExtractor{client: &http.Client{Timeout: timeout}}
}

// Extract fetches the URL and returns one segment labeled with the host.
func (e *URLExtractor) Extract(ctx context.Context, source string) ([]Segment, error) {
	parsed, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrUnreadableSource, source, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}

	text := tagPattern.ReplaceAllString(string(body), " ")
	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
	if text == "" {
		return nil, nil
	}

	return []Segment{{
		Text:   text,
		Source: fmt.Sprintf("%s - %s", parsed.Host, source),
		Meta:   map[string]any{"type": "url", "url": source},
	}}, nil
}
