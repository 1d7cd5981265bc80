package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/papermill"
	main "github.com/fwojciec/papermill/cmd/papermill"
	"github.com/fwojciec/papermill/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHarvestCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints page progress and summary", func(t *testing.T) {
		t.Parallel()

		var keywords string
		h := newHarvester()
		search := h.Source.(*mock.SourceConnector).SearchFn
		h.Source.(*mock.SourceConnector).SearchFn = func(ctx context.Context, kw string, page int) ([]*papermill.CandidateDocument, error) {
			keywords = kw
			return search(ctx, kw, page)
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Harvester: h,
		}

		cmd := &main.HarvestCmd{Source: "arxiv", Pages: 2, Keywords: []string{"neural", "networks"}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "neural networks", keywords)
		out := stdout.String()
		assert.Contains(t, out, `Harvesting "neural networks" from arxiv`)
		assert.Contains(t, out, "Page 1: 1 candidates")
		assert.Contains(t, out, "Downloaded 1 documents (13 B), extracted 1, 1 sentences")
		assert.Contains(t, out, "Model created: 4 tokens (+4 new)")
	})

	t.Run("prints skipped documents and keeps going", func(t *testing.T) {
		t.Parallel()

		h := newHarvester()
		h.Fetcher = &mock.Fetcher{
			FetchFn: func(context.Context, papermill.FetchRequest) (*papermill.Payload, error) {
				return nil, papermill.StatusErrorf(404, "GET https://example.org/a.pdf: 404 Not Found")
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Harvester: h,
		}

		cmd := &main.HarvestCmd{Pages: 1, Keywords: []string{"neural"}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "skip https://example.org/a.pdf: fetch:")
		assert.Contains(t, out, "Downloaded 0 documents (0 B), extracted 0, 0 sentences, 1 skipped")
		assert.Contains(t, out, "Model unchanged")
	})

	t.Run("reports the failing stage of a fatal error", func(t *testing.T) {
		t.Parallel()

		h := newHarvester()
		h.Corpus = &mock.CorpusStore{
			AppendFn: func(context.Context, string, []papermill.Sentence) error {
				return papermill.Errorf(papermill.EPERMISSION, "appending corpus: permission denied")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Harvester: h,
		}

		cmd := &main.HarvestCmd{Pages: 1, Keywords: []string{"neural"}}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, papermill.EPERMISSION, papermill.ErrorCode(err))
		assert.Equal(t, "error: corpus: appending corpus: permission denied\n", stderr.String())
	})

	t.Run("rejects a non-positive page count", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Harvester: newHarvester(),
		}

		cmd := &main.HarvestCmd{Pages: 0, Keywords: []string{"neural"}}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, papermill.EINVALID, papermill.ErrorCode(err))
		assert.Contains(t, stderr.String(), "page count must be positive")
	})

	t.Run("draws a progress bar when enabled", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Harvester: newHarvester(),
			Progress:  true,
		}

		cmd := &main.HarvestCmd{Pages: 1, Keywords: []string{"neural"}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.NotContains(t, stdout.String(), "Page 1:")
		assert.Contains(t, stderr.String(), "page 1")
	})
}
