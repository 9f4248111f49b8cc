package repodoc

// Converter renders the main content of an HTML document as Markdown so
// that titles and summaries can be derived the same way as for Markdown
// files.
type Converter interface {
	// Convert returns Markdown for html. Returns EINVALID if html cannot
	// be parsed.
	Convert(html string) (string, error)
}
