// Package snowball provides a papermill.Lemmatizer backed by the Snowball
// stemmers in github.com/kljensen/snowball.
package snowball

import (
	"github.com/fwojciec/papermill"
	"github.com/kljensen/snowball"
)

// Ensure Stemmer implements papermill.Lemmatizer at compile time.
var _ papermill.Lemmatizer = (*Stemmer)(nil)

// Stemmer reduces tokens to their Snowball stem.
type Stemmer struct {
	language string
}

// NewStemmer returns an English Stemmer.
func NewStemmer() *Stemmer {
	return &Stemmer{language: "english"}
}

// Lemma implements papermill.Lemmatizer. Tokens the stemmer rejects are
// returned unchanged.
func (s *Stemmer) Lemma(token string) string {
	stem, err := snowball.Stem(token, s.language, true)
	if err != nil || stem == "" {
		return token
	}
	return stem
}
