// Package gosseract performs OCR with Tesseract via
// github.com/otiai10/gosseract/v2.
package gosseract

import (
	"context"
	"strings"

	"github.com/fwojciec/papermill"
	"github.com/otiai10/gosseract/v2"
)

// Ensure Recognizer implements papermill.Recognizer at compile time.
var _ papermill.Recognizer = (*Recognizer)(nil)

// DefaultLanguage is the Tesseract language used when none is configured.
const DefaultLanguage = "eng"

// Recognizer runs Tesseract on page images.
type Recognizer struct {
	language string
}

// NewRecognizer creates a Recognizer for the given Tesseract language.
func NewRecognizer(language string) *Recognizer {
	if language == "" {
		language = DefaultLanguage
	}
	return &Recognizer{language: language}
}

// Recognize implements papermill.Recognizer. Each call uses its own
// Tesseract client, which is not safe for concurrent use.
func (r *Recognizer) Recognize(ctx context.Context, png []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(r.language); err != nil {
		return "", papermill.Errorf(papermill.EINVALID, "ocr language %q: %v", r.language, err)
	}
	if err := client.SetImageFromBytes(png); err != nil {
		return "", papermill.Errorf(papermill.EDECODE, "ocr image: %v", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", papermill.Errorf(papermill.EDECODE, "ocr: %v", err)
	}
	return strings.TrimSpace(text), nil
}
