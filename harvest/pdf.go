package harvest

import (
	"context"
	"errors"
	"strings"

	"github.com/fwojciec/papermill"
)

// Ensure the PDF extractors implement papermill.TextExtractor at compile time.
var (
	_ papermill.TextExtractor = (*PDFExtractor)(nil)
	_ papermill.TextExtractor = (*OCRExtractor)(nil)
)

// PDFExtractor reads the native text layer first and falls back to OCR when
// the layer is missing or too thin to trust.
type PDFExtractor struct {
	// Native reads the embedded text layer. Nil skips it.
	Native papermill.TextExtractor

	// OCR recognizes rendered pages. Nil disables the fallback.
	OCR papermill.TextExtractor

	// MinNativeChars is the fewest non-space characters accepted from the
	// native layer before OCR is attempted.
	MinNativeChars int
}

// Extract implements papermill.TextExtractor.
func (e *PDFExtractor) Extract(ctx context.Context, p *papermill.Payload) (*papermill.ExtractedText, error) {
	if e.Native == nil && e.OCR == nil {
		return nil, papermill.Errorf(papermill.EINVALID, "no pdf extraction method enabled")
	}

	var native *papermill.ExtractedText
	var nativeErr error
	if e.Native != nil {
		native, nativeErr = e.Native.Extract(ctx, p)
		if nativeErr == nil && native.CharCount() >= e.MinNativeChars {
			return native, nil
		}
		if e.OCR == nil || isContextErr(nativeErr) || papermill.ErrorCode(nativeErr) == papermill.EBADSIGNATURE {
			if nativeErr != nil {
				return nil, nativeErr
			}
			return native, nil
		}
	}

	text, err := e.OCR.Extract(ctx, p)
	if err != nil {
		// A thin text layer still beats nothing.
		if native != nil && !isContextErr(err) {
			return native, nil
		}
		return nil, err
	}
	return text, nil
}

// OCRExtractor renders each page and runs character recognition on it.
type OCRExtractor struct {
	Rasterizer papermill.Rasterizer
	Recognizer papermill.Recognizer

	// DPI is the rendering resolution.
	DPI float64
}

// DefaultOCRDPI is the rendering resolution used when DPI is unset.
const DefaultOCRDPI = 300

// Extract implements papermill.TextExtractor. A page that fails recognition
// contributes an empty segment.
func (e *OCRExtractor) Extract(ctx context.Context, p *papermill.Payload) (*papermill.ExtractedText, error) {
	if err := papermill.Validate(p.Bytes, papermill.PayloadKindPDF); err != nil {
		return nil, err
	}
	dpi := e.DPI
	if dpi <= 0 {
		dpi = DefaultOCRDPI
	}

	var pages []string
	err := e.Rasterizer.Rasterize(ctx, p.Bytes, dpi, func(page int, png []byte) error {
		text, err := e.Recognizer.Recognize(ctx, png)
		if isContextErr(err) {
			return err
		}
		pages = append(pages, strings.TrimSpace(text))
		return nil
	})
	if err != nil {
		return nil, err
	}

	text := &papermill.ExtractedText{
		Pages:  pages,
		Kind:   papermill.PayloadKindPDF,
		Method: papermill.MethodOCR,
		Origin: p.Origin,
	}
	if text.CharCount() == 0 {
		return nil, papermill.Errorf(papermill.ENOCONTENT, "ocr found no text in %s", p.URL)
	}
	return text, nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
