package goquery

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/papermill"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

// Ensure HTMLExtractor implements papermill.TextExtractor at compile time.
var _ papermill.TextExtractor = (*HTMLExtractor)(nil)

// boilerplate matches page chrome removed before text extraction.
const boilerplate = "header, footer, nav, script, style, noscript, template, " +
	"[role=banner], [role=contentinfo], [role=navigation]"

// blockElements start a new line of text.
var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Br: true, atom.Caption: true, atom.Dd: true, atom.Div: true, atom.Dl: true,
	atom.Dt: true, atom.Figcaption: true, atom.Figure: true, atom.Form: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Hr: true, atom.Li: true, atom.Main: true, atom.Ol: true, atom.P: true,
	atom.Pre: true, atom.Section: true, atom.Table: true, atom.Td: true, atom.Th: true,
	atom.Tr: true, atom.Ul: true,
}

// HTMLExtractor extracts visible body text from HTML pages, one block per line.
type HTMLExtractor struct{}

// NewHTMLExtractor creates a new HTMLExtractor.
func NewHTMLExtractor() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract implements papermill.TextExtractor.
func (e *HTMLExtractor) Extract(_ context.Context, p *papermill.Payload) (*papermill.ExtractedText, error) {
	r, err := charset.NewReader(bytes.NewReader(p.Bytes), p.ContentType)
	if err != nil {
		return nil, papermill.Errorf(papermill.EDECODE, "decoding %s: %v", p.URL, err)
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, papermill.Errorf(papermill.EDECODE, "parsing %s: %v", p.URL, err)
	}

	title := papermill.CollapseSpace(doc.Find("title").First().Text())
	doc.Find(boilerplate).Remove()

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return nil, papermill.Errorf(papermill.ENOCONTENT, "no body content found in %s", p.URL)
	}
	lines := blockLines(body.Nodes[0])
	if len(lines) == 0 {
		return nil, papermill.Errorf(papermill.ENOCONTENT, "no body content found in %s", p.URL)
	}

	return &papermill.ExtractedText{
		Title:  title,
		Pages:  []string{strings.Join(lines, "\n")},
		Kind:   papermill.PayloadKindHTML,
		Method: papermill.MethodHTML,
		Origin: p.Origin,
	}, nil
}

// blockLines walks n and returns its text, breaking lines at block elements.
func blockLines(n *html.Node) []string {
	var lines []string
	var cur strings.Builder
	flush := func() {
		if line := papermill.CollapseSpace(cur.String()); line != "" {
			lines = append(lines, line)
		}
		cur.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			cur.WriteString(n.Data)
		case html.ElementNode:
			block := blockElements[n.DataAtom]
			if block {
				flush()
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			if block {
				flush()
			}
		default:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
	}
	walk(n)
	flush()
	return lines
}
