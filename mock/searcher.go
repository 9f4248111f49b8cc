package mock

import (
	"context"

	"github.com/fwojciec/repodoc"
)

var _ repodoc.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of repodoc.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, q repodoc.Query) (*repodoc.SearchResult, error)
}

func (s *Searcher) Search(ctx context.Context, q repodoc.Query) (*repodoc.SearchResult, error) {
	return s.SearchFn(ctx, q)
}
