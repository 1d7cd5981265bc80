// Package toml reads and writes papermill configuration files using
// github.com/pelletier/go-toml/v2.
package toml

import (
	"bytes"
	"errors"
	"io/fs"
	"os"

	"github.com/fwojciec/papermill"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = "papermill.toml"

// LoadConfig reads the file at path over papermill.DefaultConfig. Keys the
// file omits keep their defaults; unknown keys are rejected. A missing file
// returns ENOTFOUND.
func LoadConfig(path string) (papermill.Config, error) {
	cfg := papermill.DefaultConfig()

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, papermill.Errorf(papermill.ENOTFOUND, "config file %s not found", path)
	} else if err != nil {
		return cfg, papermill.IOError("reading config", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(b)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return cfg, papermill.Errorf(papermill.EINVALID, "%s:%d:%d: %s", path, row, col, derr.Error())
		}
		return cfg, papermill.Errorf(papermill.EINVALID, "%s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WriteConfig writes cfg to path unless a file already exists there. It
// reports whether a file was written.
func WriteConfig(path string, cfg papermill.Config) (bool, error) {
	b, err := toml.Marshal(cfg)
	if err != nil {
		return false, papermill.Errorf(papermill.EINTERNAL, "encoding config: %v", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	} else if err != nil {
		return false, papermill.IOError("creating config", err)
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		return false, papermill.IOError("writing config", err)
	}
	return true, papermill.IOError("writing config", f.Close())
}
