package snowball_test

import (
	"testing"

	"github.com/fwojciec/papermill/snowball"
	"github.com/stretchr/testify/assert"
)

func TestStemmer_Lemma(t *testing.T) {
	t.Parallel()

	s := snowball.NewStemmer()

	t.Run("stems inflected forms to a shared root", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, s.Lemma("connection"), s.Lemma("connections"))
		assert.Equal(t, "run", s.Lemma("running"))
	})

	t.Run("keeps short tokens", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "sky", s.Lemma("sky"))
	})
}
