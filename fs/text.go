package fs

import (
	"context"
	"path/filepath"

	"github.com/fwojciec/papermill"
)

// Ensure TextStore implements papermill.TextStore at compile time.
var _ papermill.TextStore = (*TextStore)(nil)

// TextStore writes extracted text, one .txt file per document.
type TextStore struct {
	dir string
}

// NewTextStore creates a TextStore rooted at dir.
func NewTextStore(dir string) *TextStore {
	return &TextStore{dir: dir}
}

// Save implements papermill.TextStore.
func (s *TextStore) Save(ctx context.Context, name string, text *papermill.ExtractedText) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, papermill.SanitizeFilename(name)+".txt")
	if err := writeAtomic(path, []byte(text.Text())); err != nil {
		return "", err
	}
	return path, nil
}
