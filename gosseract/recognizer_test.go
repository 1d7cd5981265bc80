package gosseract_test

import (
	"context"
	"testing"

	"github.com/fwojciec/papermill/gosseract"
	"github.com/stretchr/testify/assert"
)

func TestRecognizer_Recognize(t *testing.T) {
	t.Parallel()

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := gosseract.NewRecognizer("").Recognize(ctx, nil)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
