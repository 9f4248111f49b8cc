package repodoc

// ExtractResult holds the extracted content from an HTML document.
type ExtractResult struct {
	// Title is the document title from <title> or the first <h1>.
	Title string

	// ContentHTML is the main content element as HTML.
	ContentHTML string
}

// Extractor extracts the title and main content from HTML documents.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
