package papermill_test

import (
	"testing"

	"github.com/fwojciec/papermill"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("accepts pdf signature", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, papermill.Validate([]byte("%PDF-1.7\n..."), papermill.PayloadKindPDF))
	})

	t.Run("rejects html error page", func(t *testing.T) {
		t.Parallel()

		err := papermill.Validate([]byte("<html><body>Access denied</body></html>"), papermill.PayloadKindPDF)

		assert.Equal(t, papermill.EBADSIGNATURE, papermill.ErrorCode(err))
	})

	t.Run("rejects truncated payload", func(t *testing.T) {
		t.Parallel()

		err := papermill.Validate([]byte("%PD"), papermill.PayloadKindPDF)

		assert.Equal(t, papermill.EBADSIGNATURE, papermill.ErrorCode(err))
	})

	t.Run("rejects empty html", func(t *testing.T) {
		t.Parallel()

		err := papermill.Validate([]byte(" \n"), papermill.PayloadKindHTML)

		assert.Equal(t, papermill.ENOCONTENT, papermill.ErrorCode(err))
	})

	t.Run("rejects unknown kinds", func(t *testing.T) {
		t.Parallel()

		err := papermill.Validate([]byte("%PDF"), papermill.PayloadKind("docx"))

		assert.Equal(t, papermill.EINVALID, papermill.ErrorCode(err))
	})
}

func TestExtractedText_Text(t *testing.T) {
	t.Parallel()

	t.Run("marks ocr pages", func(t *testing.T) {
		t.Parallel()

		text := &papermill.ExtractedText{Pages: []string{"first", "second"}, Method: papermill.MethodOCR}

		assert.Equal(t, "--- Page 1 ---\nfirst\n--- Page 2 ---\nsecond\n", text.Text())
	})

	t.Run("separates native pages with form feed", func(t *testing.T) {
		t.Parallel()

		text := &papermill.ExtractedText{Pages: []string{"a", "", "c"}, Method: papermill.MethodNative}

		assert.Equal(t, "a\f\fc", text.Text())
	})

	t.Run("counts non-space characters", func(t *testing.T) {
		t.Parallel()

		text := &papermill.ExtractedText{Pages: []string{"ab c\n", "\fd"}}

		assert.Equal(t, 4, text.CharCount())
	})
}
