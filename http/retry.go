package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fwojciec/papermill"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// retryable reports whether a failed attempt may succeed when repeated:
// transport failures, rate limiting and server errors.
func retryable(err error) bool {
	switch papermill.ErrorCode(err) {
	case papermill.ETRANSPORT:
		return true
	case papermill.EHTTPSTATUS:
		status := papermill.HTTPStatus(err)
		return status == http.StatusTooManyRequests || status >= 500
	}
	return false
}

// withRetry calls attempt once plus once per delay until it succeeds or
// fails with an error that is not retryable.
func withRetry(ctx context.Context, delays []time.Duration, attempt func() error) error {
	var lastErr error
	for i := 0; i <= len(delays); i++ {
		lastErr = attempt()
		if lastErr == nil || !retryable(lastErr) {
			return lastErr
		}

		// Don't wait after the last attempt
		if i == len(delays) {
			break
		}

		select {
		case <-ctx.Done():
			return lastErr
		case <-time.After(delays[i]):
		}
	}
	return lastErr
}
