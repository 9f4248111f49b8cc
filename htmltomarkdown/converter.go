// Package htmltomarkdown converts the main content of HTML documents to
// Markdown so that titles and summaries can be derived from it.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/repodoc"
)

// Ensure Converter implements repodoc.Converter at compile time.
var _ repodoc.Converter = (*Converter)(nil)

var (
	imageRe = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	linkRe  = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv       *converter.Converter
	plainLinks bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithPlainLinks replaces links with their text and drops images, so that
// prose derived from the output does not carry URLs.
func WithPlainLinks() Option {
	return func(c *Converter) {
		c.plainLinks = true
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", repodoc.Errorf(repodoc.EINVALID, "empty HTML input")
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", repodoc.Errorf(repodoc.EINVALID, "convert HTML: %v", err)
	}

	if c.plainLinks {
		md = imageRe.ReplaceAllString(md, "")
		md = linkRe.ReplaceAllString(md, "$1")
	}
	return md, nil
}
