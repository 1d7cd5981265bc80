package goquery

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/papermill"
)

// DefaultHrcakBaseURL is the Croatian scientific journals portal.
const DefaultHrcakBaseURL = "https://hrcak.srce.hr"

// Default selectors for Hrčak pages.
const (
	DefaultResultSelector = `a[href*="/clanak/"]`
	DefaultFileSelector   = `a[href*="/file/"]`
)

// DefaultPayloadSelectors locate the download anchor on an article page,
// most specific first.
var DefaultPayloadSelectors = []string{
	"a.pdf-download[href]",
	"a.download-pdf[href]",
	".article-files " + DefaultFileSelector,
	DefaultFileSelector,
}

// Ensure HrcakConnector implements papermill.SourceConnector at compile time.
var _ papermill.SourceConnector = (*HrcakConnector)(nil)

// HrcakConnector scrapes the HTML search of an institutional repository and
// visits each result's article page for metadata and the download link.
type HrcakConnector struct {
	fetcher  papermill.Fetcher
	baseURL  string
	pageSize int

	// ResultSelector matches article links in the search results.
	ResultSelector string

	// PayloadSelectors are tried in order on article pages.
	PayloadSelectors []string
}

// NewHrcakConnector creates an HrcakConnector against baseURL, or the
// public portal if baseURL is empty.
func NewHrcakConnector(fetcher papermill.Fetcher, baseURL string, pageSize int) *HrcakConnector {
	if baseURL == "" {
		baseURL = DefaultHrcakBaseURL
	}
	if pageSize < 1 {
		pageSize = papermill.DefaultPageSize
	}
	return &HrcakConnector{
		fetcher:          fetcher,
		baseURL:          strings.TrimRight(baseURL, "/"),
		pageSize:         pageSize,
		ResultSelector:   DefaultResultSelector,
		PayloadSelectors: DefaultPayloadSelectors,
	}
}

// Name implements papermill.SourceConnector.
func (c *HrcakConnector) Name() string { return "hrcak" }

// Site implements papermill.SourceConnector.
func (c *HrcakConnector) Site() string { return papermill.SiteKey(c.baseURL) }

// Search scrapes one page of search results.
func (c *HrcakConnector) Search(ctx context.Context, keywords string, page int) ([]*papermill.CandidateDocument, error) {
	if page < 1 {
		return nil, papermill.Errorf(papermill.EINVALID, "page must be positive, got %d", page)
	}

	params := url.Values{
		"q":     {keywords},
		"start": {strconv.Itoa(papermill.PageOffset(page, c.pageSize))},
	}
	searchURL := c.baseURL + "/pretraga?" + params.Encode()
	p, err := c.fetcher.Fetch(ctx, papermill.FetchRequest{URL: searchURL})
	if err != nil {
		return nil, fmt.Errorf("hrcak page %d: %w", page, err)
	}

	base, err := url.Parse(p.URL)
	if err != nil || p.URL == "" {
		base, _ = url.Parse(searchURL)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(p.Bytes))
	if err != nil {
		return nil, papermill.Errorf(papermill.EDECODE, "parsing hrcak results: %v", err)
	}

	articles := matchPattern(doc.Selection, base, LinkPattern{Selector: c.ResultSelector})
	files := matchPattern(doc.Selection, base, LinkPattern{Selector: DefaultFileSelector})

	var candidates []*papermill.CandidateDocument
	seen := make(map[string]bool)
	for _, articleURL := range articles {
		if err := ctx.Err(); err != nil {
			return candidates, err
		}
		cand := c.visit(ctx, articleURL)
		if cand.PayloadURL != "" {
			seen[cand.PayloadURL] = true
		}
		candidates = append(candidates, cand)
	}

	// Download links listed directly in the results.
	for _, fileURL := range files {
		if seen[fileURL] {
			continue
		}
		seen[fileURL] = true
		candidates = append(candidates, &papermill.CandidateDocument{
			Title:      papermill.NotFound,
			SourceURL:  searchURL,
			PayloadURL: fileURL,
			ID:         lastSegment(fileURL),
			SourceKind: papermill.SourceKindSearchResult,
		})
	}
	return candidates, nil
}

// visit reads metadata and the download link from an article page. Any
// failure degrades the affected fields to papermill.NotFound.
func (c *HrcakConnector) visit(ctx context.Context, articleURL string) *papermill.CandidateDocument {
	cand := &papermill.CandidateDocument{
		Title:      papermill.NotFound,
		Abstract:   papermill.NotFound,
		Keywords:   []string{papermill.NotFound},
		SourceURL:  articleURL,
		ID:         lastSegment(articleURL),
		SourceKind: papermill.SourceKindSearchResult,
	}

	p, err := c.fetcher.Fetch(ctx, papermill.FetchRequest{URL: articleURL})
	if err != nil {
		return cand
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(p.Bytes))
	if err != nil {
		return cand
	}

	if title := metaContent(doc, "citation_title", "og:title", "DC.title"); title != "" {
		cand.Title = title
	} else if title := papermill.CollapseSpace(doc.Find("title").First().Text()); title != "" {
		cand.Title = title
	}
	if abstract := metaContent(doc, "citation_abstract", "description", "og:description", "DC.description"); abstract != "" {
		cand.Abstract = abstract
	}
	if kw := splitKeywords(metaContents(doc, "citation_keywords", "keywords")); len(kw) > 0 {
		cand.Keywords = kw
	}

	base, err := url.Parse(articleURL)
	if err != nil {
		return cand
	}
	if pdfURL := metaContent(doc, "citation_pdf_url"); pdfURL != "" {
		cand.PayloadURL = resolveURL(base, pdfURL)
	}
	for _, sel := range c.PayloadSelectors {
		if cand.PayloadURL != "" {
			break
		}
		if links := matchPattern(doc.Selection, base, LinkPattern{Selector: sel}); len(links) > 0 {
			cand.PayloadURL = links[0]
		}
	}
	if cand.PayloadURL != "" {
		cand.ID = lastSegment(cand.PayloadURL)
	}
	return cand
}

// metaContent returns the first non-empty content of a <meta> tag whose
// name or property is one of names.
func metaContent(doc *goquery.Document, names ...string) string {
	for _, name := range names {
		for _, attr := range []string{"name", "property"} {
			content := doc.Find(fmt.Sprintf(`meta[%s=%q]`, attr, name)).First().AttrOr("content", "")
			if content = papermill.CollapseSpace(content); content != "" {
				return content
			}
		}
	}
	return ""
}

// metaContents returns the contents of every <meta> tag of the first name
// that has any, for tags that may repeat.
func metaContents(doc *goquery.Document, names ...string) []string {
	for _, name := range names {
		var out []string
		doc.Find(fmt.Sprintf(`meta[name=%q]`, name)).Each(func(_ int, s *goquery.Selection) {
			if v := papermill.CollapseSpace(s.AttrOr("content", "")); v != "" {
				out = append(out, v)
			}
		})
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func splitKeywords(values []string) []string {
	var out []string
	for _, v := range values {
		for _, kw := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ';' }) {
			if kw = strings.TrimSpace(kw); kw != "" {
				out = append(out, kw)
			}
		}
	}
	return out
}

func lastSegment(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	seg := path.Base(strings.TrimRight(u.Path, "/"))
	if seg == "." || seg == "/" {
		return ""
	}
	return seg
}
