package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fwojciec/papermill"
)

// DefaultSerpAPIEndpoint is the SerpAPI search endpoint.
const DefaultSerpAPIEndpoint = "https://serpapi.com/search"

// ScholarSite groups corpus output from Google Scholar results.
const ScholarSite = "scholar.google.com"

// Ensure SerpAPIConnector implements papermill.SourceConnector at compile time.
var _ papermill.SourceConnector = (*SerpAPIConnector)(nil)

// SerpAPIConnector searches Google Scholar through SerpAPI and scans each
// result's landing page for PDF links.
type SerpAPIConnector struct {
	fetcher  papermill.Fetcher
	resolver papermill.LinkResolver
	opts     connectorOptions
}

// NewSerpAPIConnector creates a SerpAPIConnector. WithAPIKey is required
// by the hosted service.
func NewSerpAPIConnector(fetcher papermill.Fetcher, resolver papermill.LinkResolver, opts ...ConnectorOption) *SerpAPIConnector {
	return &SerpAPIConnector{
		fetcher:  fetcher,
		resolver: resolver,
		opts:     newConnectorOptions(DefaultSerpAPIEndpoint, opts),
	}
}

// Name implements papermill.SourceConnector.
func (c *SerpAPIConnector) Name() string { return "scholar" }

// Site implements papermill.SourceConnector.
func (c *SerpAPIConnector) Site() string { return ScholarSite }

type serpResponse struct {
	Error          string `json:"error"`
	OrganicResults []struct {
		Position int    `json:"position"`
		Title    string `json:"title"`
		Link     string `json:"link"`
		ResultID string `json:"result_id"`
		Snippet  string `json:"snippet"`
	} `json:"organic_results"`
}

// Search requests one page of Scholar results.
func (c *SerpAPIConnector) Search(ctx context.Context, keywords string, page int) ([]*papermill.CandidateDocument, error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}

	params := url.Values{
		"engine":  {"google_scholar"},
		"q":       {keywords},
		"start":   {strconv.Itoa(papermill.PageOffset(page, c.opts.pageSize))},
		"num":     {strconv.Itoa(c.opts.pageSize)},
		"api_key": {c.opts.apiKey},
	}
	p, err := c.fetcher.Fetch(ctx, papermill.FetchRequest{
		URL:    c.opts.endpoint + "?" + params.Encode(),
		Accept: papermill.ContentTypeJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("scholar page %d: %w", page, err)
	}

	var resp serpResponse
	if err := json.Unmarshal(p.Bytes, &resp); err != nil {
		return nil, papermill.Errorf(papermill.EDECODE, "parsing serpapi response: %v", err)
	}
	if resp.Error != "" && len(resp.OrganicResults) == 0 {
		// Past the last page SerpAPI reports an error instead of an empty list.
		if strings.Contains(resp.Error, "hasn't returned any results") {
			return nil, nil
		}
		return nil, papermill.Errorf(papermill.EINVALID, "serpapi: %s", resp.Error)
	}

	var candidates []*papermill.CandidateDocument
	for _, r := range resp.OrganicResults {
		if r.Link == "" {
			continue
		}
		cand := &papermill.CandidateDocument{
			Title:      papermill.CollapseSpace(r.Title),
			Abstract:   papermill.CollapseSpace(r.Snippet),
			SourceURL:  r.Link,
			ID:         r.ResultID,
			SourceKind: papermill.SourceKindSearchResult,
		}
		candidates = append(candidates, papermill.ResolveLanding(ctx, c.resolver, cand)...)
	}
	return candidates, nil
}
