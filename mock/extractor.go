package mock

import "github.com/fwojciec/repodoc"

var _ repodoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of repodoc.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*repodoc.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*repodoc.ExtractResult, error) {
	return e.ExtractFn(html)
}
