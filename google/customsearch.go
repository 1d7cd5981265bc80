// Package google searches the web through the Google Programmable Search
// (Custom Search JSON) API.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fwojciec/papermill"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Site groups corpus output from Custom Search results.
const Site = "google.com"

// MaxPageSize is the largest page the API serves.
const MaxPageSize = 10

// maxResults is the deepest result index the API serves.
const maxResults = 100

// Ensure CustomSearchConnector implements papermill.SourceConnector at compile time.
var _ papermill.SourceConnector = (*CustomSearchConnector)(nil)

// CustomSearchConnector queries a Programmable Search Engine and scans each
// result's landing page for PDF links.
type CustomSearchConnector struct {
	svc      *customsearch.Service
	cx       string
	resolver papermill.LinkResolver
	pageSize int
}

// Config holds the credentials and paging of a CustomSearchConnector.
type Config struct {
	APIKey   string
	EngineID string
	PageSize int

	// Endpoint overrides the API base URL.
	Endpoint string
}

// NewCustomSearchConnector creates a CustomSearchConnector.
func NewCustomSearchConnector(ctx context.Context, cfg Config, resolver papermill.LinkResolver) (*CustomSearchConnector, error) {
	if cfg.APIKey == "" || cfg.EngineID == "" {
		return nil, papermill.Errorf(papermill.EINVALID, "google search requires an api key and engine id")
	}
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(strings.TrimRight(cfg.Endpoint, "/")+"/"))
	}
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating custom search service: %w", err)
	}

	size := cfg.PageSize
	if size < 1 {
		size = papermill.DefaultPageSize
	}
	return &CustomSearchConnector{
		svc:      svc,
		cx:       cfg.EngineID,
		resolver: resolver,
		pageSize: min(size, MaxPageSize),
	}, nil
}

// Name implements papermill.SourceConnector.
func (c *CustomSearchConnector) Name() string { return "google" }

// Site implements papermill.SourceConnector.
func (c *CustomSearchConnector) Site() string { return Site }

// Search implements papermill.SourceConnector.
func (c *CustomSearchConnector) Search(ctx context.Context, keywords string, page int) ([]*papermill.CandidateDocument, error) {
	if page < 1 {
		return nil, papermill.Errorf(papermill.EINVALID, "page must be positive, got %d", page)
	}
	// The API numbers results from 1.
	start := papermill.PageOffset(page, c.pageSize) + 1
	if start > maxResults {
		return nil, nil
	}

	res, err := c.svc.Cse.List().
		Q(keywords).
		Cx(c.cx).
		Start(int64(start)).
		Num(int64(c.pageSize)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, searchError(page, err)
	}

	var candidates []*papermill.CandidateDocument
	for _, item := range res.Items {
		if item.Link == "" {
			continue
		}
		cand := &papermill.CandidateDocument{
			Title:      strings.TrimSpace(item.Title),
			Abstract:   strings.Join(strings.Fields(item.Snippet), " "),
			SourceURL:  item.Link,
			ID:         item.CacheId,
			SourceKind: papermill.SourceKindSearchResult,
		}
		candidates = append(candidates, papermill.ResolveLanding(ctx, c.resolver, cand)...)
	}
	return candidates, nil
}

// searchError maps API failures onto fetch error codes.
func searchError(page int, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == http.StatusBadRequest && strings.Contains(strings.ToLower(gerr.Message), "start") {
			return nil
		}
		return papermill.StatusErrorf(gerr.Code, "google page %d: %s", page, gerr.Message)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return papermill.Errorf(papermill.ETRANSPORT, "google page %d: %v", page, err)
}
