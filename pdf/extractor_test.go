package pdf_test

import (
	"context"
	"testing"

	"github.com/fwojciec/papermill"
	"github.com/fwojciec/papermill/mock"
	"github.com/fwojciec/papermill/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts text of every page in order", func(t *testing.T) {
		t.Parallel()

		p := &papermill.Payload{URL: "https://example.com/a.pdf", Bytes: mock.PDF("first page text", "second page text")}

		text, err := pdf.NewExtractor().Extract(context.Background(), p)

		require.NoError(t, err)
		require.Len(t, text.Pages, 2)
		assert.Contains(t, text.Pages[0], "first page text")
		assert.Contains(t, text.Pages[1], "second page text")
		assert.Equal(t, papermill.MethodNative, text.Method)
		assert.Equal(t, papermill.PayloadKindPDF, text.Kind)
		assert.Contains(t, text.Text(), papermill.PageSeparator)
	})

	t.Run("keeps an empty segment for a page without text", func(t *testing.T) {
		t.Parallel()

		p := &papermill.Payload{URL: "https://example.com/a.pdf", Bytes: mock.PDF("first page", "", "third page")}

		text, err := pdf.NewExtractor().Extract(context.Background(), p)

		require.NoError(t, err)
		assert.Equal(t, []string{"first page", "", "third page"}, text.Pages)
	})

	t.Run("rejects payloads without pdf signature", func(t *testing.T) {
		t.Parallel()

		p := &papermill.Payload{URL: "https://example.com/a.pdf", Bytes: []byte("<html></html>")}

		_, err := pdf.NewExtractor().Extract(context.Background(), p)

		assert.Equal(t, papermill.EBADSIGNATURE, papermill.ErrorCode(err))
	})

	t.Run("returns decode error for truncated document", func(t *testing.T) {
		t.Parallel()

		p := &papermill.Payload{URL: "https://example.com/a.pdf", Bytes: []byte("%PDF-1.4\ngarbage")}

		_, err := pdf.NewExtractor().Extract(context.Background(), p)

		assert.Equal(t, papermill.EDECODE, papermill.ErrorCode(err))
	})

	t.Run("returns no content when every page is blank", func(t *testing.T) {
		t.Parallel()

		p := &papermill.Payload{URL: "https://example.com/a.pdf", Bytes: mock.PDF("", "")}

		_, err := pdf.NewExtractor().Extract(context.Background(), p)

		assert.Equal(t, papermill.ENOCONTENT, papermill.ErrorCode(err))
	})
}
