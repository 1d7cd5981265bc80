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

func TestSimilarCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints neighbors with similarity", func(t *testing.T) {
		t.Parallel()

		trainer := &mock.Trainer{
			MostSimilarFn: func(_ context.Context, token string, n int) ([]papermill.Neighbor, error) {
				if token == "network" && n == 2 {
					return []papermill.Neighbor{
						{Token: "neural", Similarity: 0.91},
						{Token: "layer", Similarity: 0.5},
					}, nil
				}
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Trainer: trainer,
		}

		cmd := &main.SimilarCmd{Word: "Network", N: 2}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "neural")
		assert.Contains(t, stdout.String(), "0.9100")
		assert.Contains(t, stdout.String(), "0.5000")
	})

	t.Run("reports an unknown word", func(t *testing.T) {
		t.Parallel()

		trainer := &mock.Trainer{
			MostSimilarFn: func(_ context.Context, token string, _ int) ([]papermill.Neighbor, error) {
				return nil, papermill.Errorf(papermill.ENOTFOUND, "token %q not in vocabulary", token)
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Trainer: trainer,
		}

		cmd := &main.SimilarCmd{Word: "zebra", N: 5}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, "error: token \"zebra\" not in vocabulary\n", stderr.String())
	})
}
