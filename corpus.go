package papermill

import "context"

// CorpusStore persists sentences in append-only corpus files keyed by site.
type CorpusStore interface {
	// Append adds sentences to the corpus of siteKey. Existing content is
	// never truncated.
	Append(ctx context.Context, siteKey string, sentences []Sentence) error

	// Sentences reads back every sentence stored for siteKey.
	Sentences(ctx context.Context, siteKey string) ([]Sentence, error)
}
