package mock

import (
	"context"

	"github.com/fwojciec/repodoc"
)

var _ repodoc.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of repodoc.DocumentService.
type DocumentService struct {
	EnsureReadyFn        func(ctx context.Context) error
	ListDocumentsFn      func(ctx context.Context, limit *int) ([]*repodoc.Document, error)
	FindDocumentByPathFn func(ctx context.Context, path string) (*repodoc.Document, error)
	SearchDocumentsFn    func(ctx context.Context, q repodoc.Query) (*repodoc.SearchResult, error)
}

func (s *DocumentService) EnsureReady(ctx context.Context) error {
	return s.EnsureReadyFn(ctx)
}

func (s *DocumentService) ListDocuments(ctx context.Context, limit *int) ([]*repodoc.Document, error) {
	return s.ListDocumentsFn(ctx, limit)
}

func (s *DocumentService) FindDocumentByPath(ctx context.Context, path string) (*repodoc.Document, error) {
	return s.FindDocumentByPathFn(ctx, path)
}

func (s *DocumentService) SearchDocuments(ctx context.Context, q repodoc.Query) (*repodoc.SearchResult, error) {
	return s.SearchDocumentsFn(ctx, q)
}
