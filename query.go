package papermill

import (
	"context"
	"fmt"
	"strings"
)

// DefaultPageSize is the number of results requested per search page.
const DefaultPageSize = 10

// Query is a single harvesting request against one source.
type Query struct {
	// Keywords is the free-text search phrase.
	Keywords string

	// PageCount is the number of result pages to walk, starting at page 1.
	PageCount int
}

// Validate returns an error if the query is not runnable.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Keywords) == "" {
		return Errorf(EINVALID, "query keywords required")
	}
	if q.PageCount < 1 {
		return Errorf(EINVALID, "page count must be positive, got %d", q.PageCount)
	}
	return nil
}

// SourceKind tells how a candidate was discovered.
type SourceKind string

const (
	// SourceKindAPIEntry is an entry returned by a structured API (feed or JSON).
	SourceKindAPIEntry SourceKind = "api_entry"

	// SourceKindSearchResult is a result scraped from a search page or engine.
	SourceKindSearchResult SourceKind = "search_result"
)

// NotFound is the placeholder for landing-page metadata that could not be extracted.
const NotFound = "not found"

// CandidateDocument references a document that may be downloadable.
// PayloadURL is empty when no direct download link could be resolved.
type CandidateDocument struct {
	Title      string
	SourceURL  string
	PayloadURL string
	SourceKind SourceKind

	// ID is a source-assigned identifier (arXiv id, DOI, repository file id).
	ID string

	// Landing-page metadata, populated by sources that expose it.
	Abstract string
	Keywords []string
}

// HasPayload reports whether a direct download link was resolved.
func (c *CandidateDocument) HasPayload() bool {
	return c.PayloadURL != ""
}

// SourceConnector turns a query into candidate documents, one page at a time.
type SourceConnector interface {
	// Name returns the short source name used on the command line.
	Name() string

	// Site returns the site key that corpus output from this source is grouped under.
	Site() string

	// Search returns the candidates on the given 1-indexed page.
	// A page beyond the available results returns an empty slice.
	Search(ctx context.Context, keywords string, page int) ([]*CandidateDocument, error)
}

// PageOffset returns the zero-based result offset of a 1-indexed page.
func PageOffset(page, pageSize int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * pageSize
}

// LinkResolver finds direct payload links on a landing page.
type LinkResolver interface {
	// ResolveLinks fetches the landing page and returns absolute payload
	// URLs in document order. An empty result is not an error.
	ResolveLinks(ctx context.Context, landingURL string) ([]string, error)
}

// IsPDFLink reports whether href points at a file with a .pdf extension,
// ignoring case, query string and fragment.
func IsPDFLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	return strings.HasSuffix(href, ".pdf")
}

// ExpandLinks returns one candidate per payload link, copied from c. From
// the second link on, titles get a "_<n>" suffix so every payload has a
// distinct name. Without links, c is returned unchanged.
func ExpandLinks(c *CandidateDocument, links []string) []*CandidateDocument {
	if len(links) == 0 {
		return []*CandidateDocument{c}
	}
	out := make([]*CandidateDocument, 0, len(links))
	for i, link := range links {
		cand := *c
		cand.PayloadURL = link
		if i > 0 {
			cand.Title = fmt.Sprintf("%s_%d", c.Title, i)
		}
		out = append(out, &cand)
	}
	return out
}

// ResolveLanding expands a search result into one candidate per payload
// link found on its landing page. A landing URL that is itself a PDF is used
// directly. A failed lookup leaves the candidate without a payload.
func ResolveLanding(ctx context.Context, resolver LinkResolver, c *CandidateDocument) []*CandidateDocument {
	if IsPDFLink(c.SourceURL) {
		c.PayloadURL = c.SourceURL
		return []*CandidateDocument{c}
	}
	links, err := resolver.ResolveLinks(ctx, c.SourceURL)
	if err != nil {
		return []*CandidateDocument{c}
	}
	return ExpandLinks(c, links)
}
