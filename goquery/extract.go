// Package goquery implements HTML scraping on top of PuerkitoBio/goquery:
// landing-page link resolution, the Hrčak search connector, and body text
// extraction.
package goquery

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/papermill"
)

// LinkPattern selects payload anchors on a page.
type LinkPattern struct {
	// Selector is a CSS selector for candidate anchors.
	Selector string

	// Text, if set, must equal the anchor's trimmed text, ignoring case.
	Text string

	// PDFOnly keeps only hrefs with a .pdf extension.
	PDFOnly bool
}

// ExtractLinks returns absolute hrefs matched by the first pattern that
// matches anything, in document order, without duplicates. Patterns are
// tried in order and later patterns are ignored once one matches.
func ExtractLinks(html []byte, baseURL string, patterns []LinkPattern) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, papermill.Errorf(papermill.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, papermill.Errorf(papermill.EDECODE, "failed to parse HTML: %v", err)
	}

	for _, p := range patterns {
		if links := matchPattern(doc.Selection, base, p); len(links) > 0 {
			return links, nil
		}
	}
	return nil, nil
}

func matchPattern(sel *goquery.Selection, base *url.URL, p LinkPattern) []string {
	seen := make(map[string]bool)
	var links []string
	sel.Find(p.Selector).Each(func(_ int, a *goquery.Selection) {
		href, exists := a.Attr("href")
		if !exists || href == "" || isNonHTTPLink(href) {
			return
		}
		if p.Text != "" && !strings.EqualFold(strings.TrimSpace(a.Text()), p.Text) {
			return
		}
		if p.PDFOnly && !papermill.IsPDFLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})
	return links
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or if the resolved URL
// is self-referential. Fragments are stripped.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") ||
		strings.HasPrefix(href, "#")
}
