package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/papermill"
)

// Ensure LoggingExtractor implements papermill.TextExtractor.
var _ papermill.TextExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a TextExtractor with logging.
type LoggingExtractor struct {
	next   papermill.TextExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next papermill.TextExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the method used.
func (e *LoggingExtractor) Extract(ctx context.Context, p *papermill.Payload) (text *papermill.ExtractedText, err error) {
	defer func(begin time.Time) {
		var method string
		var pages, chars int
		if text != nil {
			method, pages, chars = text.Method, len(text.Pages), text.CharCount()
		}
		e.logger.Info("extract",
			"url", p.URL,
			"method", method,
			"pages", pages,
			"chars", chars,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, p)
}
