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

// DefaultDOAJEndpoint is the DOAJ article search API.
const DefaultDOAJEndpoint = "https://doaj.org/api/search/articles"

// Ensure DOAJConnector implements papermill.SourceConnector at compile time.
var _ papermill.SourceConnector = (*DOAJConnector)(nil)

// DOAJConnector searches the Directory of Open Access Journals JSON API.
// Each result's full-text landing page is scanned for a PDF link.
type DOAJConnector struct {
	fetcher  papermill.Fetcher
	resolver papermill.LinkResolver
	opts     connectorOptions
}

// NewDOAJConnector creates a DOAJConnector. WithAPIKey enables bearer
// authentication.
func NewDOAJConnector(fetcher papermill.Fetcher, resolver papermill.LinkResolver, opts ...ConnectorOption) *DOAJConnector {
	return &DOAJConnector{
		fetcher:  fetcher,
		resolver: resolver,
		opts:     newConnectorOptions(DefaultDOAJEndpoint, opts),
	}
}

// Name implements papermill.SourceConnector.
func (c *DOAJConnector) Name() string { return "doaj" }

// Site implements papermill.SourceConnector.
func (c *DOAJConnector) Site() string { return papermill.SiteKey(c.opts.endpoint) }

type doajResponse struct {
	Total   int          `json:"total"`
	Results []doajResult `json:"results"`
}

type doajResult struct {
	ID      string `json:"id"`
	Bibjson struct {
		Title      string   `json:"title"`
		Abstract   string   `json:"abstract"`
		Keywords   []string `json:"keywords"`
		Identifier []struct {
			Type string `json:"type"`
			ID   string `json:"id"`
		} `json:"identifier"`
		Link []struct {
			Type        string `json:"type"`
			URL         string `json:"url"`
			ContentType string `json:"content_type"`
		} `json:"link"`
	} `json:"bibjson"`
}

// Search requests one page of article results.
func (c *DOAJConnector) Search(ctx context.Context, keywords string, page int) ([]*papermill.CandidateDocument, error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}

	params := url.Values{
		"page":     {strconv.Itoa(page)},
		"pageSize": {strconv.Itoa(c.opts.pageSize)},
	}
	req := papermill.FetchRequest{
		URL:     c.opts.endpoint + "/" + url.PathEscape(keywords) + "?" + params.Encode(),
		Accept:  papermill.ContentTypeJSON,
		Headers: map[string]string{"Accept": papermill.ContentTypeJSON},
	}
	if c.opts.apiKey != "" {
		req.Headers["Authorization"] = "Bearer " + c.opts.apiKey
	}

	p, err := c.fetcher.Fetch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("doaj page %d: %w", page, err)
	}

	var resp doajResponse
	if err := json.Unmarshal(p.Bytes, &resp); err != nil {
		return nil, papermill.Errorf(papermill.EDECODE, "parsing doaj response: %v", err)
	}

	candidates := make([]*papermill.CandidateDocument, 0, len(resp.Results))
	for _, r := range resp.Results {
		candidates = append(candidates, c.candidate(ctx, r))
	}
	return candidates, nil
}

func (c *DOAJConnector) candidate(ctx context.Context, r doajResult) *papermill.CandidateDocument {
	cand := &papermill.CandidateDocument{
		Title:      papermill.CollapseSpace(r.Bibjson.Title),
		Abstract:   papermill.CollapseSpace(r.Bibjson.Abstract),
		Keywords:   r.Bibjson.Keywords,
		ID:         r.ID,
		SourceKind: papermill.SourceKindAPIEntry,
	}
	for _, ident := range r.Bibjson.Identifier {
		if strings.EqualFold(ident.Type, "doi") && ident.ID != "" {
			cand.ID = ident.ID
			break
		}
	}

	for _, link := range r.Bibjson.Link {
		if strings.EqualFold(link.Type, "fulltext") && link.URL != "" {
			cand.SourceURL = link.URL
			break
		}
	}
	if cand.SourceURL == "" {
		return cand
	}

	if papermill.IsPDFLink(cand.SourceURL) {
		cand.PayloadURL = cand.SourceURL
		return cand
	}

	// Best effort: a landing page that cannot be scanned leaves the
	// candidate without a payload.
	links, err := c.resolver.ResolveLinks(ctx, cand.SourceURL)
	if err == nil && len(links) > 0 {
		cand.PayloadURL = links[0]
	}
	return cand
}
