package rank

import (
	"context"

	"github.com/fwojciec/repodoc"
)

// Ensure Fallback implements repodoc.Searcher at compile time.
var _ repodoc.Searcher = (*Fallback)(nil)

// Fallback consults Secondary only when Primary finds nothing.
type Fallback struct {
	Primary   repodoc.Searcher
	Secondary repodoc.Searcher
}

// Search implements repodoc.Searcher.
func (f *Fallback) Search(ctx context.Context, q repodoc.Query) (*repodoc.SearchResult, error) {
	res, err := f.Primary.Search(ctx, q)
	if err != nil || res.Total > 0 || f.Secondary == nil {
		return res, err
	}
	return f.Secondary.Search(ctx, q)
}

// WithFallback returns a SearcherFactory that pairs the lexical index with
// a secondary searcher built by next.
func WithFallback(next repodoc.SearcherFactory) repodoc.SearcherFactory {
	return func(docs []*repodoc.Document) (repodoc.Searcher, error) {
		secondary, err := next(docs)
		if err != nil {
			return nil, err
		}
		return &Fallback{Primary: NewIndex(docs), Secondary: secondary}, nil
	}
}
