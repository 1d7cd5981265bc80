// Package http provides net/http implementations of papermill.Fetcher and
// the source connectors that speak JSON or Atom over HTTP.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/papermill"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBytes caps the size of a single response body.
const DefaultMaxBytes = 100 << 20

// Ensure Fetcher implements papermill.Fetcher at compile time.
var _ papermill.Fetcher = (*Fetcher)(nil)

// Fetcher performs single GET requests with a fixed client identity.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	limiter     *HostLimiter
	retryDelays []time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithRateLimit limits requests to rps per second per host.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		f.limiter = NewHostLimiter(rps)
	}
}

// WithRetryDelays retries transport failures and 5xx responses once per delay.
// No retries are made if not specified.
func WithRetryDelays(delays []time.Duration) Option {
	return func(f *Fetcher) {
		f.retryDelays = delays
	}
}

// WithMaxBytes caps response bodies at n bytes.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: papermill.DefaultUserAgent,
		maxBytes:  DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the resource described by req.
func (f *Fetcher) Fetch(ctx context.Context, req papermill.FetchRequest) (*papermill.Payload, error) {
	var p *papermill.Payload
	err := withRetry(ctx, f.retryDelays, func() error {
		var err error
		p, err = f.fetch(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (f *Fetcher) fetch(ctx context.Context, req papermill.FetchRequest) (*papermill.Payload, error) {
	u, err := url.Parse(req.URL)
	if err != nil || u.Host == "" {
		return nil, papermill.Errorf(papermill.EINVALID, "invalid url %q", req.URL)
	}

	if err := f.limiter.Wait(ctx, u.Host); err != nil {
		return nil, papermill.Errorf(papermill.ETRANSPORT, "GET %s: %v", req.URL, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, papermill.Errorf(papermill.EINVALID, "invalid request for %s: %v", req.URL, err)
	}
	httpReq.Header.Set("User-Agent", f.userAgent)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, papermill.Errorf(papermill.ETRANSPORT, "GET %s: %v", req.URL, unwrapURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, papermill.StatusErrorf(resp.StatusCode, "HTTP %d for %s", resp.StatusCode, req.URL)
	}

	contentType := resp.Header.Get("Content-Type")
	if req.Accept != "" && !strings.Contains(strings.ToLower(contentType), strings.ToLower(req.Accept)) {
		return nil, papermill.Errorf(papermill.ECONTENTTYPE, "expected %s from %s, got %q", req.Accept, req.URL, contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, papermill.Errorf(papermill.ETRANSPORT, "reading %s: %v", req.URL, err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, papermill.Errorf(papermill.ETRANSPORT, "response from %s exceeds %d bytes", req.URL, f.maxBytes)
	}

	return &papermill.Payload{
		URL:         resp.Request.URL.String(),
		Bytes:       body,
		ContentType: contentType,
	}, nil
}

// unwrapURLError strips the method and URL that net/http repeats in its errors.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
