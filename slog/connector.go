package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/papermill"
)

// Ensure LoggingConnector implements papermill.SourceConnector.
var _ papermill.SourceConnector = (*LoggingConnector)(nil)

// LoggingConnector wraps a SourceConnector with logging.
type LoggingConnector struct {
	next   papermill.SourceConnector
	logger *slog.Logger
}

// NewLoggingConnector creates a new LoggingConnector.
func NewLoggingConnector(next papermill.SourceConnector, logger *slog.Logger) *LoggingConnector {
	return &LoggingConnector{next: next, logger: logger}
}

func (c *LoggingConnector) Name() string { return c.next.Name() }

func (c *LoggingConnector) Site() string { return c.next.Site() }

// Search delegates to the wrapped connector and logs the result page.
func (c *LoggingConnector) Search(ctx context.Context, keywords string, page int) (docs []*papermill.CandidateDocument, err error) {
	defer func(begin time.Time) {
		withPayload := 0
		for _, d := range docs {
			if d.HasPayload() {
				withPayload++
			}
		}
		c.logger.Info("search",
			"source", c.next.Name(),
			"keywords", keywords,
			"page", page,
			"count", len(docs),
			"payloads", withPayload,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Search(ctx, keywords, page)
}
