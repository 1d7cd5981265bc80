package papermill

import (
	"context"
	"fmt"
	"strings"
)

// Extraction methods recorded on ExtractedText.
const (
	MethodHTML   = "html"
	MethodNative = "native"
	MethodOCR    = "ocr"
)

// PageSeparator delimits native PDF pages in joined text.
const PageSeparator = "\f"

// ExtractedText is the plain text of one payload, split into pages or blocks.
type ExtractedText struct {
	// Title is the document title found during extraction, if any.
	Title string

	Pages  []string
	Kind   PayloadKind
	Method string
	Origin *CandidateDocument
}

// Text joins the pages using the separator of the extraction method.
func (t *ExtractedText) Text() string {
	switch t.Method {
	case MethodOCR:
		var b strings.Builder
		for i, p := range t.Pages {
			fmt.Fprintf(&b, "--- Page %d ---\n%s\n", i+1, p)
		}
		return b.String()
	case MethodNative:
		return strings.Join(t.Pages, PageSeparator)
	default:
		return strings.Join(t.Pages, "\n")
	}
}

// CharCount returns the number of non-whitespace characters across all pages.
func (t *ExtractedText) CharCount() int {
	n := 0
	for _, p := range t.Pages {
		for _, r := range p {
			if r != ' ' && r != '\n' && r != '\t' && r != '\r' && r != '\f' {
				n++
			}
		}
	}
	return n
}

// TextExtractor converts a validated payload into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, p *Payload) (*ExtractedText, error)
}

// TextStore persists extracted text, one file per document.
type TextStore interface {
	Save(ctx context.Context, name string, text *ExtractedText) (string, error)
}

// Rasterizer renders PDF pages to PNG images, calling fn once per page in order.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdf []byte, dpi float64, fn func(page int, png []byte) error) error
}

// Recognizer performs optical character recognition on a single image.
type Recognizer interface {
	Recognize(ctx context.Context, png []byte) (string, error)
}
