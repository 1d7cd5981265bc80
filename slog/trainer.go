package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/papermill"
)

// Ensure LoggingTrainer implements papermill.Trainer.
var _ papermill.Trainer = (*LoggingTrainer)(nil)

// LoggingTrainer wraps a Trainer with logging.
type LoggingTrainer struct {
	next   papermill.Trainer
	logger *slog.Logger
}

// NewLoggingTrainer creates a new LoggingTrainer.
func NewLoggingTrainer(next papermill.Trainer, logger *slog.Logger) *LoggingTrainer {
	return &LoggingTrainer{next: next, logger: logger}
}

// Update delegates to the wrapped trainer and logs vocabulary growth.
func (t *LoggingTrainer) Update(ctx context.Context, sentences []papermill.Sentence) (stats *papermill.ModelStats, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"sentences", len(sentences),
			"duration", time.Since(begin),
			"err", err,
		}
		if stats != nil {
			attrs = append(attrs,
				"vocabulary", stats.VocabularySize,
				"new_tokens", stats.NewTokens,
				"created", stats.Created,
			)
		}
		t.logger.Info("train", attrs...)
	}(time.Now())
	return t.next.Update(ctx, sentences)
}

// MostSimilar delegates to the wrapped trainer.
func (t *LoggingTrainer) MostSimilar(ctx context.Context, token string, n int) ([]papermill.Neighbor, error) {
	return t.next.MostSimilar(ctx, token, n)
}
