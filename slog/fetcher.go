// Package slog decorates pipeline components with structured logging.
package slog

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/papermill"
)

// Ensure LoggingFetcher implements papermill.Fetcher.
var _ papermill.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   papermill.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next papermill.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
// Successful fetches also log a content hash so repeated payloads behind
// different URLs can be spotted.
func (f *LoggingFetcher) Fetch(ctx context.Context, req papermill.FetchRequest) (p *papermill.Payload, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", req.URL,
			"accept", req.Accept,
			"duration", time.Since(begin),
		}
		if p != nil {
			attrs = append(attrs,
				"bytes", len(p.Bytes),
				"hash", strconv.FormatUint(xxhash.Sum64(p.Bytes), 16),
			)
		}
		if err != nil {
			attrs = append(attrs, "err", err)
			if status := papermill.HTTPStatus(err); status != 0 {
				attrs = append(attrs, "status", status)
			}
		}
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, req)
}
