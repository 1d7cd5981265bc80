package http

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/papermill"
)

// DefaultArxivEndpoint is the arXiv query API.
const DefaultArxivEndpoint = "http://export.arxiv.org/api/query"

// Ensure ArxivConnector implements papermill.SourceConnector at compile time.
var _ papermill.SourceConnector = (*ArxivConnector)(nil)

// ArxivConnector searches the arXiv Atom feed API.
type ArxivConnector struct {
	fetcher papermill.Fetcher
	opts    connectorOptions
}

// NewArxivConnector creates an ArxivConnector.
func NewArxivConnector(fetcher papermill.Fetcher, opts ...ConnectorOption) *ArxivConnector {
	return &ArxivConnector{
		fetcher: fetcher,
		opts:    newConnectorOptions(DefaultArxivEndpoint, opts),
	}
}

// Name implements papermill.SourceConnector.
func (c *ArxivConnector) Name() string { return "arxiv" }

// Site implements papermill.SourceConnector.
func (c *ArxivConnector) Site() string { return papermill.SiteKey(c.opts.endpoint) }

// Search requests one page of the feed. Entries without a PDF link are
// returned with an empty PayloadURL.
func (c *ArxivConnector) Search(ctx context.Context, keywords string, page int) ([]*papermill.CandidateDocument, error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}

	params := url.Values{
		"search_query": {"all:" + keywords},
		"start":        {strconv.Itoa(papermill.PageOffset(page, c.opts.pageSize))},
		"max_results":  {strconv.Itoa(c.opts.pageSize)},
	}
	p, err := c.fetcher.Fetch(ctx, papermill.FetchRequest{URL: c.opts.endpoint + "?" + params.Encode()})
	if err != nil {
		return nil, fmt.Errorf("arxiv page %d: %w", page, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(p.Bytes); err != nil {
		return nil, papermill.Errorf(papermill.EDECODE, "parsing arxiv feed: %v", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "feed" {
		return nil, papermill.Errorf(papermill.EDECODE, "arxiv response is not an atom feed")
	}

	var candidates []*papermill.CandidateDocument
	for _, entry := range root.SelectElements("entry") {
		candidates = append(candidates, parseEntry(entry))
	}
	return candidates, nil
}

// parseEntry converts an Atom <entry> into a candidate.
func parseEntry(entry *etree.Element) *papermill.CandidateDocument {
	c := &papermill.CandidateDocument{
		Title:      papermill.CollapseSpace(childText(entry, "title")),
		Abstract:   papermill.CollapseSpace(childText(entry, "summary")),
		SourceURL:  strings.TrimSpace(childText(entry, "id")),
		SourceKind: papermill.SourceKindAPIEntry,
	}
	c.ID = arxivID(c.SourceURL)

	for _, link := range entry.SelectElements("link") {
		href := link.SelectAttrValue("href", "")
		switch {
		case link.SelectAttrValue("rel", "") == "alternate" && href != "":
			c.SourceURL = href
		case link.SelectAttrValue("type", "") == papermill.ContentTypePDF && c.PayloadURL == "":
			c.PayloadURL = href
		}
	}

	for _, cat := range entry.SelectElements("category") {
		if term := cat.SelectAttrValue("term", ""); term != "" {
			c.Keywords = append(c.Keywords, term)
		}
	}
	return c
}

func childText(e *etree.Element, tag string) string {
	child := e.SelectElement(tag)
	if child == nil {
		return ""
	}
	return child.Text()
}

// arxivID extracts "2101.00001v1" from "http://arxiv.org/abs/2101.00001v1".
func arxivID(idURL string) string {
	if i := strings.Index(idURL, "/abs/"); i >= 0 {
		return idURL[i+len("/abs/"):]
	}
	return idURL
}
