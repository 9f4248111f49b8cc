package scan

import (
	"path"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/repodoc"
)

// Builder turns fetched file bytes into documents. HTML files are routed
// through Extractor and Converter when both are set; everything else is
// treated as Markdown-like text.
type Builder struct {
	Extractor repodoc.Extractor
	Converter repodoc.Converter
}

// Build returns the document for the file at p. Content is kept verbatim.
// Returns EINVALID if the bytes are not valid UTF-8 text.
func (b *Builder) Build(p string, content []byte) (*repodoc.Document, error) {
	if !utf8.Valid(content) {
		return nil, repodoc.Errorf(repodoc.EINVALID, "%s is not valid UTF-8 text", p)
	}
	text := string(content)

	if b != nil && isHTML(p) && b.Extractor != nil && b.Converter != nil {
		if doc, ok := b.buildHTML(p, text); ok {
			return doc, nil
		}
	}
	return repodoc.NewDocument(p, text), nil
}

func (b *Builder) buildHTML(p, text string) (*repodoc.Document, bool) {
	res, err := b.Extractor.Extract(text)
	if err != nil {
		return nil, false
	}

	var meta repodoc.Metadata
	if strings.TrimSpace(res.ContentHTML) != "" {
		md, err := b.Converter.Convert(res.ContentHTML)
		if err != nil {
			return nil, false
		}
		meta = repodoc.ParseMarkdown(md)
	}

	title := strings.TrimSpace(res.Title)
	if title == "" {
		title = meta.Title
	}
	if title == "" {
		title = repodoc.BaseTitle(p)
	}
	return &repodoc.Document{
		Path:    p,
		Title:   title,
		Summary: meta.Summary,
		Content: text,
		Hash:    repodoc.HashContent(text),
	}, true
}

func isHTML(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".html", ".htm":
		return true
	}
	return false
}
