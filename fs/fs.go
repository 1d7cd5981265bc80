// Package fs provides file-based storage for payloads, extracted text and
// corpora.
package fs

import (
	"os"
	"path/filepath"

	"github.com/fwojciec/papermill"
)

// InitLayout creates the download, text and corpus directories and the
// parent directory of the model file.
func InitLayout(cfg papermill.Config) error {
	for _, dir := range []string{
		cfg.DownloadDir,
		cfg.TextDir,
		cfg.CorpusDir,
		filepath.Dir(cfg.ModelPath),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return papermill.IOError("creating "+dir, err)
		}
	}
	return nil
}

// writeAtomic writes data to path through a temporary file in the same
// directory. The temporary file is removed on every failure path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return papermill.IOError("creating "+dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return papermill.IOError("creating temporary file", err)
	}
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return papermill.IOError("writing "+path, err)
	}
	if err := tmp.Close(); err != nil {
		return papermill.IOError("writing "+path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return papermill.IOError("writing "+path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return papermill.IOError("renaming to "+path, err)
	}
	committed = true
	return nil
}
