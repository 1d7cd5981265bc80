package mock

import (
	"context"

	"github.com/fwojciec/papermill"
)

var _ papermill.Trainer = (*Trainer)(nil)

// Trainer is a mock implementation of papermill.Trainer.
type Trainer struct {
	UpdateFn      func(ctx context.Context, sentences []papermill.Sentence) (*papermill.ModelStats, error)
	MostSimilarFn func(ctx context.Context, token string, n int) ([]papermill.Neighbor, error)
}

func (t *Trainer) Update(ctx context.Context, sentences []papermill.Sentence) (*papermill.ModelStats, error) {
	return t.UpdateFn(ctx, sentences)
}

func (t *Trainer) MostSimilar(ctx context.Context, token string, n int) ([]papermill.Neighbor, error) {
	return t.MostSimilarFn(ctx, token, n)
}

var _ papermill.Lemmatizer = (*Lemmatizer)(nil)

// Lemmatizer is a mock implementation of papermill.Lemmatizer.
type Lemmatizer struct {
	LemmaFn func(token string) string
}

func (l *Lemmatizer) Lemma(token string) string {
	return l.LemmaFn(token)
}
