package mock

import (
	"context"

	"github.com/fwojciec/papermill"
)

var _ papermill.PayloadStore = (*PayloadStore)(nil)

// PayloadStore is a mock implementation of papermill.PayloadStore.
type PayloadStore struct {
	SaveFn func(ctx context.Context, name string, kind papermill.PayloadKind, p *papermill.Payload) (string, error)
}

func (s *PayloadStore) Save(ctx context.Context, name string, kind papermill.PayloadKind, p *papermill.Payload) (string, error) {
	return s.SaveFn(ctx, name, kind, p)
}

var _ papermill.TextStore = (*TextStore)(nil)

// TextStore is a mock implementation of papermill.TextStore.
type TextStore struct {
	SaveFn func(ctx context.Context, name string, text *papermill.ExtractedText) (string, error)
}

func (s *TextStore) Save(ctx context.Context, name string, text *papermill.ExtractedText) (string, error) {
	return s.SaveFn(ctx, name, text)
}

var _ papermill.CorpusStore = (*CorpusStore)(nil)

// CorpusStore is a mock implementation of papermill.CorpusStore.
type CorpusStore struct {
	AppendFn    func(ctx context.Context, siteKey string, sentences []papermill.Sentence) error
	SentencesFn func(ctx context.Context, siteKey string) ([]papermill.Sentence, error)
}

func (s *CorpusStore) Append(ctx context.Context, siteKey string, sentences []papermill.Sentence) error {
	return s.AppendFn(ctx, siteKey, sentences)
}

func (s *CorpusStore) Sentences(ctx context.Context, siteKey string) ([]papermill.Sentence, error) {
	return s.SentencesFn(ctx, siteKey)
}
