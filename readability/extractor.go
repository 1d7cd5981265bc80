package readability

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/papermill"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements papermill.TextExtractor at compile time.
var _ papermill.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the main text of HTML pages.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract implements papermill.TextExtractor.
func (e *Extractor) Extract(_ context.Context, p *papermill.Payload) (*papermill.ExtractedText, error) {
	if len(p.Bytes) == 0 {
		return nil, papermill.Errorf(papermill.ENOCONTENT, "empty page %s", p.URL)
	}

	// A nil page URL is accepted; it only affects relative link fixing.
	pageURL, _ := url.Parse(p.URL)

	article, err := readability.FromReader(bytes.NewReader(p.Bytes), pageURL)
	if err != nil {
		return nil, papermill.Errorf(papermill.ENOCONTENT, "extracting %s: %v", p.URL, err)
	}

	var lines []string
	for _, line := range strings.Split(article.TextContent, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, papermill.Errorf(papermill.ENOCONTENT, "no body content found in %s", p.URL)
	}

	return &papermill.ExtractedText{
		Title:  article.Title,
		Pages:  []string{strings.Join(lines, "\n")},
		Kind:   papermill.PayloadKindHTML,
		Method: papermill.MethodHTML,
		Origin: p.Origin,
	}, nil
}
