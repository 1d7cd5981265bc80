// Package fitz renders PDF pages to images using MuPDF via
// github.com/gen2brain/go-fitz.
package fitz

import (
	"bytes"
	"context"
	"image/png"

	"github.com/fwojciec/papermill"
	"github.com/gen2brain/go-fitz"
)

// Ensure Rasterizer implements papermill.Rasterizer at compile time.
var _ papermill.Rasterizer = (*Rasterizer)(nil)

// Rasterizer renders PDF pages to PNG images.
type Rasterizer struct{}

// NewRasterizer creates a new Rasterizer.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{}
}

// Rasterize implements papermill.Rasterizer. Page numbers passed to fn are
// 1-indexed.
func (r *Rasterizer) Rasterize(ctx context.Context, pdf []byte, dpi float64, fn func(page int, png []byte) error) error {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return papermill.Errorf(papermill.EDECODE, "opening pdf: %v", err)
	}
	defer doc.Close()

	var buf bytes.Buffer
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := doc.ImageDPI(i, dpi)
		if err != nil {
			return papermill.Errorf(papermill.EDECODE, "rendering page %d: %v", i+1, err)
		}
		buf.Reset()
		if err := png.Encode(&buf, img); err != nil {
			return papermill.Errorf(papermill.EINTERNAL, "encoding page %d: %v", i+1, err)
		}
		if err := fn(i+1, bytes.Clone(buf.Bytes())); err != nil {
			return err
		}
	}
	return nil
}
