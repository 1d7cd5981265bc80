// Package golem provides a dictionary-based papermill.Lemmatizer backed by
// github.com/aaaton/golem and its English dictionary.
package golem

import (
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/fwojciec/papermill"
)

// Ensure Lemmatizer implements papermill.Lemmatizer at compile time.
var _ papermill.Lemmatizer = (*Lemmatizer)(nil)

// Lemmatizer maps inflected English words to their dictionary base form.
// Words missing from the dictionary are returned unchanged.
type Lemmatizer struct {
	dict *golem.Lemmatizer
}

// NewLemmatizer loads the English dictionary.
func NewLemmatizer() (*Lemmatizer, error) {
	dict, err := golem.New(en.New())
	if err != nil {
		return nil, papermill.Errorf(papermill.EINTERNAL, "loading english dictionary: %v", err)
	}
	return &Lemmatizer{dict: dict}, nil
}

// Lemma implements papermill.Lemmatizer. Dictionary entries that are not a
// single alphabetic word, such as multi-word lemmas, leave token unchanged.
func (l *Lemmatizer) Lemma(token string) string {
	lemma := l.dict.Lemma(token)
	if lemma == "" {
		return token
	}
	for _, r := range lemma {
		if !unicode.IsLetter(r) {
			return token
		}
	}
	return lemma
}
