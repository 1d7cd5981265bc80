package fs

import (
	"bufio"
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/papermill"
)

// Ensure CorpusStore implements papermill.CorpusStore at compile time.
var _ papermill.CorpusStore = (*CorpusStore)(nil)

// CorpusSuffix ends every corpus file name.
const CorpusSuffix = "_corpus.txt"

// CorpusStore keeps one append-only text file per site, one sentence per
// line with tokens separated by single spaces.
type CorpusStore struct {
	dir string
}

// NewCorpusStore creates a CorpusStore rooted at dir.
func NewCorpusStore(dir string) *CorpusStore {
	return &CorpusStore{dir: dir}
}

// Path returns the corpus file of siteKey.
func (s *CorpusStore) Path(siteKey string) string {
	return filepath.Join(s.dir, papermill.SanitizeFilename(siteKey)+CorpusSuffix)
}

// Append implements papermill.CorpusStore.
func (s *CorpusStore) Append(ctx context.Context, siteKey string, sentences []papermill.Sentence) error {
	var b strings.Builder
	for _, sentence := range sentences {
		if len(sentence) == 0 {
			continue
		}
		b.WriteString(sentence.String())
		b.WriteByte('\n')
	}
	if b.Len() == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return papermill.IOError("creating corpus directory", err)
	}
	f, err := os.OpenFile(s.Path(siteKey), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return papermill.IOError("opening corpus", err)
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return papermill.IOError("appending to corpus", err)
	}
	return papermill.IOError("closing corpus", f.Close())
}

// Sentences implements papermill.CorpusStore.
func (s *CorpusStore) Sentences(ctx context.Context, siteKey string) ([]papermill.Sentence, error) {
	path := s.Path(siteKey)
	f, err := os.Open(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, papermill.Errorf(papermill.ENOTFOUND, "no corpus for %s at %s", siteKey, path)
	} else if err != nil {
		return nil, papermill.IOError("opening corpus", err)
	}
	defer f.Close()

	var out []papermill.Sentence
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if tokens := strings.Fields(sc.Text()); len(tokens) > 0 {
			out = append(out, papermill.Sentence(tokens))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, papermill.IOError("reading corpus", err)
	}
	return out, nil
}
