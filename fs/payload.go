package fs

import (
	"context"
	"path/filepath"

	"github.com/fwojciec/papermill"
)

// Ensure PayloadStore implements papermill.PayloadStore at compile time.
var _ papermill.PayloadStore = (*PayloadStore)(nil)

// PayloadStore writes validated payloads to a download directory.
type PayloadStore struct {
	dir string
}

// NewPayloadStore creates a PayloadStore rooted at dir.
func NewPayloadStore(dir string) *PayloadStore {
	return &PayloadStore{dir: dir}
}

// Path returns the file a payload named name of the given kind is written to.
func (s *PayloadStore) Path(name string, kind papermill.PayloadKind) string {
	return filepath.Join(s.dir, papermill.SanitizeFilename(name)+kind.Extension())
}

// Save implements papermill.PayloadStore. Invalid payloads are rejected
// before anything touches the disk.
func (s *PayloadStore) Save(ctx context.Context, name string, kind papermill.PayloadKind, p *papermill.Payload) (string, error) {
	if err := papermill.Validate(p.Bytes, kind); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := s.Path(name, kind)
	if err := writeAtomic(path, p.Bytes); err != nil {
		return "", err
	}
	return path, nil
}
