package trafilatura

import (
	"bytes"
	"context"
	"strings"

	"github.com/fwojciec/papermill"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements papermill.TextExtractor at compile time.
var _ papermill.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the main text of HTML pages.
type Extractor struct {
	// Fallback enables the readability and dom-distiller fallbacks.
	Fallback bool
}

// NewExtractor creates a new Extractor with fallbacks enabled.
func NewExtractor() *Extractor {
	return &Extractor{Fallback: true}
}

// Extract implements papermill.TextExtractor.
func (e *Extractor) Extract(_ context.Context, p *papermill.Payload) (*papermill.ExtractedText, error) {
	if len(p.Bytes) == 0 {
		return nil, papermill.Errorf(papermill.ENOCONTENT, "empty page %s", p.URL)
	}

	result, err := trafilatura.Extract(bytes.NewReader(p.Bytes), trafilatura.Options{
		EnableFallback: e.Fallback,
	})
	if err != nil {
		return nil, papermill.Errorf(papermill.ENOCONTENT, "extracting %s: %v", p.URL, err)
	}

	lines := nonBlankLines(result.ContentText)
	if len(lines) == 0 {
		return nil, papermill.Errorf(papermill.ENOCONTENT, "no body content found in %s", p.URL)
	}

	return &papermill.ExtractedText{
		Title:  result.Metadata.Title,
		Pages:  []string{strings.Join(lines, "\n")},
		Kind:   papermill.PayloadKindHTML,
		Method: papermill.MethodHTML,
		Origin: p.Origin,
	}, nil
}

func nonBlankLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return out
}
