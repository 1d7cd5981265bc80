// Package pdf extracts the embedded text layer of PDF documents using
// github.com/ledongthuc/pdf.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/papermill"
	"github.com/ledongthuc/pdf"
)

// Ensure Extractor implements papermill.TextExtractor at compile time.
var _ papermill.TextExtractor = (*Extractor)(nil)

// Extractor reads the native text of a PDF page by page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract implements papermill.TextExtractor. A page that cannot be read
// contributes an empty segment so page numbering is preserved.
func (e *Extractor) Extract(ctx context.Context, p *papermill.Payload) (*papermill.ExtractedText, error) {
	if err := papermill.Validate(p.Bytes, papermill.PayloadKindPDF); err != nil {
		return nil, err
	}

	r, err := open(p.Bytes)
	if err != nil {
		return nil, papermill.Errorf(papermill.EDECODE, "reading pdf %s: %v", p.URL, err)
	}

	n := r.NumPage()
	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pages = append(pages, pageText(r, i))
	}

	text := &papermill.ExtractedText{
		Pages:  pages,
		Kind:   papermill.PayloadKindPDF,
		Method: papermill.MethodNative,
		Origin: p.Origin,
	}
	if text.CharCount() == 0 {
		return nil, papermill.Errorf(papermill.ENOCONTENT, "no text layer in %s", p.URL)
	}
	return text, nil
}

// open parses the document structure. The library panics on some malformed
// inputs, so panics are converted to errors.
func open(b []byte) (r *pdf.Reader, err error) {
	defer func() {
		if v := recover(); v != nil {
			r, err = nil, fmt.Errorf("malformed document: %v", v)
		}
	}()
	return pdf.NewReader(bytes.NewReader(b), int64(len(b)))
}

func pageText(r *pdf.Reader, i int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	page := r.Page(i)
	if page.V.IsNull() {
		return ""
	}
	s, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}
