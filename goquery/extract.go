// Package goquery extracts titles and main content from HTML documents.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/repodoc"
)

// Ensure Extractor implements repodoc.Extractor at compile time.
var _ repodoc.Extractor = (*Extractor)(nil)

// contentSelectors are tried in order; the first match is the main content.
// Generator-specific containers come before generic landmarks.
var contentSelectors = []string{
	".theme-doc-markdown",    // Docusaurus
	".md-content__inner",     // MkDocs Material
	".vp-doc",                // VitePress
	".theme-default-content", // VuePress
	"[role='main']",          // Sphinx, ReadTheDocs
	"main",
	"article",
	"body",
}

// boilerplate is removed before content is selected.
const boilerplate = "script, style, noscript, template, nav, header, footer, aside, .headerlink"

// Extractor selects the title and main content of an HTML document.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses html and returns its title and main content. The title is
// the <title> element, falling back to the first <h1>.
func (e *Extractor) Extract(html string) (*repodoc.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, repodoc.Errorf(repodoc.EINVALID, "failed to parse HTML: %v", err)
	}

	title := collapse(doc.Find("head title").First().Text())
	if title == "" {
		title = collapse(doc.Find("h1").First().Text())
	}

	doc.Find(boilerplate).Remove()

	var content string
	for _, sel := range contentSelectors {
		s := doc.Find(sel).First()
		if s.Length() == 0 {
			continue
		}
		content, err = s.Html()
		if err != nil {
			return nil, repodoc.Errorf(repodoc.EINVALID, "failed to render HTML: %v", err)
		}
		if strings.TrimSpace(content) != "" {
			break
		}
	}

	return &repodoc.ExtractResult{
		Title:       title,
		ContentHTML: strings.TrimSpace(content),
	}, nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
