package mock

import (
	"context"

	"github.com/fwojciec/papermill"
)

var _ papermill.SourceConnector = (*SourceConnector)(nil)

// SourceConnector is a mock implementation of papermill.SourceConnector.
type SourceConnector struct {
	NameFn   func() string
	SiteFn   func() string
	SearchFn func(ctx context.Context, keywords string, page int) ([]*papermill.CandidateDocument, error)
}

func (c *SourceConnector) Name() string {
	return c.NameFn()
}

func (c *SourceConnector) Site() string {
	return c.SiteFn()
}

func (c *SourceConnector) Search(ctx context.Context, keywords string, page int) ([]*papermill.CandidateDocument, error) {
	return c.SearchFn(ctx, keywords, page)
}

var _ papermill.LinkResolver = (*LinkResolver)(nil)

// LinkResolver is a mock implementation of papermill.LinkResolver.
type LinkResolver struct {
	ResolveLinksFn func(ctx context.Context, landingURL string) ([]string, error)
}

func (r *LinkResolver) ResolveLinks(ctx context.Context, landingURL string) ([]string, error) {
	return r.ResolveLinksFn(ctx, landingURL)
}
