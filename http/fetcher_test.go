package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/papermill"
	pmhttp "github.com/fwojciec/papermill/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body and content type from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := pmhttp.NewFetcher()

		p, err := fetcher.Fetch(context.Background(), papermill.FetchRequest{URL: server.URL})
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", string(p.Bytes))
		assert.Equal(t, "text/html; charset=utf-8", p.ContentType)
		assert.Equal(t, server.URL, p.URL)
	})

	t.Run("sends identity and extra headers", func(t *testing.T) {
		t.Parallel()

		var userAgent, auth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userAgent = r.Header.Get("User-Agent")
			auth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte("{}"))
		}))
		defer server.Close()

		fetcher := pmhttp.NewFetcher(pmhttp.WithUserAgent("papermill-test/1.0"))

		_, err := fetcher.Fetch(context.Background(), papermill.FetchRequest{
			URL:     server.URL,
			Headers: map[string]string{"Authorization": "Bearer secret"},
		})
		require.NoError(t, err)
		assert.Equal(t, "papermill-test/1.0", userAgent)
		assert.Equal(t, "Bearer secret", auth)
	})

	t.Run("uses a browser user agent by default", func(t *testing.T) {
		t.Parallel()

		var userAgent string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userAgent = r.Header.Get("User-Agent")
		}))
		defer server.Close()

		_, err := pmhttp.NewFetcher().Fetch(context.Background(), papermill.FetchRequest{URL: server.URL})
		require.NoError(t, err)
		assert.Equal(t, papermill.DefaultUserAgent, userAgent)
	})

	t.Run("maps non-2xx status to http status error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		_, err := pmhttp.NewFetcher().Fetch(context.Background(), papermill.FetchRequest{URL: server.URL})
		require.Error(t, err)
		assert.Equal(t, papermill.EHTTPSTATUS, papermill.ErrorCode(err))
		assert.Equal(t, http.StatusForbidden, papermill.HTTPStatus(err))
	})

	t.Run("rejects unexpected content type", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>Please log in</html>"))
		}))
		defer server.Close()

		_, err := pmhttp.NewFetcher().Fetch(context.Background(), papermill.FetchRequest{
			URL:    server.URL + "/paper.pdf",
			Accept: papermill.ContentTypePDF,
		})
		require.Error(t, err)
		assert.Equal(t, papermill.ECONTENTTYPE, papermill.ErrorCode(err))
	})

	t.Run("accepts matching content type with parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "Application/PDF; qs=0.001")
			_, _ = w.Write([]byte("%PDF-1.4"))
		}))
		defer server.Close()

		p, err := pmhttp.NewFetcher().Fetch(context.Background(), papermill.FetchRequest{
			URL:    server.URL,
			Accept: papermill.ContentTypePDF,
		})
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4", string(p.Bytes))
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		// Use a very short timeout that will expire before server responds
		fetcher := pmhttp.NewFetcher(pmhttp.WithTimeout(10 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), papermill.FetchRequest{URL: server.URL})
		require.Error(t, err)
		assert.Equal(t, papermill.ETRANSPORT, papermill.ErrorCode(err))
	})

	t.Run("returns transport error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := pmhttp.NewFetcher(pmhttp.WithTimeout(100 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), papermill.FetchRequest{URL: "http://non-existent-host.invalid/page"})
		require.Error(t, err)
		assert.Equal(t, papermill.ETRANSPORT, papermill.ErrorCode(err))
	})

	t.Run("rejects invalid url", func(t *testing.T) {
		t.Parallel()

		_, err := pmhttp.NewFetcher().Fetch(context.Background(), papermill.FetchRequest{URL: "not a url"})
		assert.Equal(t, papermill.EINVALID, papermill.ErrorCode(err))
	})

	t.Run("rejects oversized bodies", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(make([]byte, 64))
		}))
		defer server.Close()

		_, err := pmhttp.NewFetcher(pmhttp.WithMaxBytes(32)).Fetch(context.Background(), papermill.FetchRequest{URL: server.URL})
		assert.Equal(t, papermill.ETRANSPORT, papermill.ErrorCode(err))
	})
}

func TestFetcher_Retry(t *testing.T) {
	t.Parallel()

	t.Run("retries server errors until success", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := pmhttp.NewFetcher(pmhttp.WithRetryDelays([]time.Duration{0, 0, 0}))

		p, err := fetcher.Fetch(context.Background(), papermill.FetchRequest{URL: server.URL})
		require.NoError(t, err)
		assert.Equal(t, "ok", string(p.Bytes))
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		fetcher := pmhttp.NewFetcher(pmhttp.WithRetryDelays([]time.Duration{0, 0}))

		_, err := fetcher.Fetch(context.Background(), papermill.FetchRequest{URL: server.URL})
		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("gives up after the last delay", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		fetcher := pmhttp.NewFetcher(pmhttp.WithRetryDelays([]time.Duration{0, 0}))

		_, err := fetcher.Fetch(context.Background(), papermill.FetchRequest{URL: server.URL})
		assert.Equal(t, http.StatusBadGateway, papermill.HTTPStatus(err))
		assert.Equal(t, int32(3), calls.Load())
	})
}

func TestHostLimiter(t *testing.T) {
	t.Parallel()

	t.Run("allows immediate request when under limit", func(t *testing.T) {
		t.Parallel()

		limiter := pmhttp.NewHostLimiter(10)

		start := time.Now()
		err := limiter.Wait(context.Background(), "example.com")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond, "first request should be immediate")
	})

	t.Run("rate limits requests to same host", func(t *testing.T) {
		t.Parallel()

		limiter := pmhttp.NewHostLimiter(10) // 100ms between requests

		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "example.com")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond, "should wait for rate limit")
	})

	t.Run("different hosts have independent limits", func(t *testing.T) {
		t.Parallel()

		limiter := pmhttp.NewHostLimiter(10)

		require.NoError(t, limiter.Wait(context.Background(), "a.example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "b.example.com"))
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("zero rate disables limiting", func(t *testing.T) {
		t.Parallel()

		limiter := pmhttp.NewHostLimiter(0)

		start := time.Now()
		for range 5 {
			require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		}
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("returns error when context is canceled", func(t *testing.T) {
		t.Parallel()

		limiter := pmhttp.NewHostLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.Error(t, limiter.Wait(ctx, "example.com"))
	})
}
