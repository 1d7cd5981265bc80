package goquery

import (
	"context"
	"fmt"

	"github.com/fwojciec/papermill"
)

// Ensure LinkResolver implements papermill.LinkResolver at compile time.
var _ papermill.LinkResolver = (*LinkResolver)(nil)

// LinkResolver fetches landing pages and matches payload anchors on them.
type LinkResolver struct {
	fetcher  papermill.Fetcher
	patterns []LinkPattern
	first    bool
}

// NewLinkResolver returns a resolver yielding only the first link of the
// first matching pattern.
func NewLinkResolver(fetcher papermill.Fetcher, patterns ...LinkPattern) *LinkResolver {
	return &LinkResolver{fetcher: fetcher, patterns: patterns, first: true}
}

// NewPDFScanner returns a resolver yielding every anchor on the page whose
// href ends in .pdf.
func NewPDFScanner(fetcher papermill.Fetcher) *LinkResolver {
	return &LinkResolver{
		fetcher:  fetcher,
		patterns: []LinkPattern{{Selector: "a[href]", PDFOnly: true}},
	}
}

// DOAJPatterns are tried in order on DOAJ full-text landing pages: a
// dedicated pdf-link anchor, then any anchor labelled "PDF".
func DOAJPatterns() []LinkPattern {
	return []LinkPattern{
		{Selector: "a.pdf-link[href]"},
		{Selector: "a[href]", Text: "PDF"},
	}
}

// ResolveLinks implements papermill.LinkResolver.
func (r *LinkResolver) ResolveLinks(ctx context.Context, landingURL string) ([]string, error) {
	p, err := r.fetcher.Fetch(ctx, papermill.FetchRequest{URL: landingURL})
	if err != nil {
		return nil, fmt.Errorf("landing page: %w", err)
	}

	base := p.URL
	if base == "" {
		base = landingURL
	}
	links, err := ExtractLinks(p.Bytes, base, r.patterns)
	if err != nil {
		return nil, err
	}
	if r.first && len(links) > 1 {
		links = links[:1]
	}
	return links, nil
}
