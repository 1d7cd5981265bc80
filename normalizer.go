package papermill

import "strings"

// Sentence is an ordered, non-empty sequence of normalized tokens.
type Sentence []string

// String returns the tokens joined by single spaces.
func (s Sentence) String() string {
	return strings.Join(s, " ")
}

// Normalizer turns raw text into sentences of lemma tokens.
type Normalizer interface {
	// Normalize processes text one line at a time. Lines without surviving
	// tokens produce no sentence.
	Normalize(text string) []Sentence
}

// Lemmatizer reduces a lowercase token to its base form.
type Lemmatizer interface {
	Lemma(token string) string
}
