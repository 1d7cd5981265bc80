package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/papermill"
)

// Ensure LoggingCorpusStore implements papermill.CorpusStore.
var _ papermill.CorpusStore = (*LoggingCorpusStore)(nil)

// LoggingCorpusStore wraps a CorpusStore with logging.
type LoggingCorpusStore struct {
	next   papermill.CorpusStore
	logger *slog.Logger
}

// NewLoggingCorpusStore creates a new LoggingCorpusStore.
func NewLoggingCorpusStore(next papermill.CorpusStore, logger *slog.Logger) *LoggingCorpusStore {
	return &LoggingCorpusStore{next: next, logger: logger}
}

// Append delegates to the wrapped store and logs the batch size.
func (s *LoggingCorpusStore) Append(ctx context.Context, siteKey string, sentences []papermill.Sentence) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("corpus append",
			"site", siteKey,
			"count", len(sentences),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Append(ctx, siteKey, sentences)
}

// Sentences delegates to the wrapped store and logs the number read.
func (s *LoggingCorpusStore) Sentences(ctx context.Context, siteKey string) (sentences []papermill.Sentence, err error) {
	defer func(begin time.Time) {
		s.logger.Info("corpus read",
			"site", siteKey,
			"count", len(sentences),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Sentences(ctx, siteKey)
}
