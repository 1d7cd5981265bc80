package mock

import (
	"context"

	"github.com/fwojciec/papermill"
)

var _ papermill.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of papermill.TextExtractor.
type TextExtractor struct {
	ExtractFn func(ctx context.Context, p *papermill.Payload) (*papermill.ExtractedText, error)
}

func (e *TextExtractor) Extract(ctx context.Context, p *papermill.Payload) (*papermill.ExtractedText, error) {
	return e.ExtractFn(ctx, p)
}

var _ papermill.Rasterizer = (*Rasterizer)(nil)

// Rasterizer is a mock implementation of papermill.Rasterizer.
type Rasterizer struct {
	RasterizeFn func(ctx context.Context, pdf []byte, dpi float64, fn func(page int, png []byte) error) error
}

func (r *Rasterizer) Rasterize(ctx context.Context, pdf []byte, dpi float64, fn func(page int, png []byte) error) error {
	return r.RasterizeFn(ctx, pdf, dpi, fn)
}

var _ papermill.Recognizer = (*Recognizer)(nil)

// Recognizer is a mock implementation of papermill.Recognizer.
type Recognizer struct {
	RecognizeFn func(ctx context.Context, png []byte) (string, error)
}

func (r *Recognizer) Recognize(ctx context.Context, png []byte) (string, error) {
	return r.RecognizeFn(ctx, png)
}
