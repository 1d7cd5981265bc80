package toml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/papermill"
	"github.com/fwojciec/papermill/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "papermill.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("overrides defaults with file values", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, `
download_dir = "pdfs"
page_size = 25
ocr_enabled = false
retry_delays = [0.5, 1]
lemmatizer = "snowball"

[embedding]
dimension = 50
epochs = 10
`)

		cfg, err := toml.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "pdfs", cfg.DownloadDir)
		assert.Equal(t, 25, cfg.PageSize)
		assert.False(t, cfg.OCREnabled)
		assert.Equal(t, []papermill.Seconds{0.5, 1}, cfg.RetryDelays)
		assert.Equal(t, papermill.LemmatizerSnowball, cfg.Lemmatizer)
		assert.Equal(t, 50, cfg.Embedding.Dimension)
		assert.Equal(t, 10, cfg.Embedding.Epochs)
		assert.Equal(t, "corpus", cfg.CorpusDir)
		assert.Equal(t, 5, cfg.Embedding.Window)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "page_sise = 3\n")

		_, err := toml.LoadConfig(path)

		assert.Equal(t, papermill.EINVALID, papermill.ErrorCode(err))
	})

	t.Run("rejects a worker count for the single-threaded trainer", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "[embedding]\nworkers = 4\n")

		_, err := toml.LoadConfig(path)

		assert.Equal(t, papermill.EINVALID, papermill.ErrorCode(err))
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "page_size = 0\n")

		_, err := toml.LoadConfig(path)

		assert.Equal(t, papermill.EINVALID, papermill.ErrorCode(err))
	})

	t.Run("reports missing files", func(t *testing.T) {
		t.Parallel()

		cfg, err := toml.LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))

		assert.Equal(t, papermill.ENOTFOUND, papermill.ErrorCode(err))
		assert.Equal(t, papermill.DefaultConfig(), cfg)
	})
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	t.Run("writes a config that loads back", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "papermill.toml")
		cfg := papermill.DefaultConfig()
		cfg.GoogleAPIKey = "secret"

		written, err := toml.WriteConfig(path, cfg)
		require.NoError(t, err)
		assert.True(t, written)

		got, err := toml.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, papermill.DefaultConfig(), got)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(content), "secret")
	})

	t.Run("keeps an existing file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "page_size = 3\n")

		written, err := toml.WriteConfig(path, papermill.DefaultConfig())

		require.NoError(t, err)
		assert.False(t, written)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "page_size = 3\n", string(content))
	})
}
