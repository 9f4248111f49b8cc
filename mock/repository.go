package mock

import (
	"context"

	"github.com/fwojciec/repodoc"
)

var _ repodoc.Repository = (*Repository)(nil)

// Repository is a mock implementation of repodoc.Repository.
type Repository struct {
	ListTreeFn   func(ctx context.Context, subfolder string) ([]repodoc.TreeEntry, error)
	GetContentFn func(ctx context.Context, path string) ([]byte, error)
}

func (r *Repository) ListTree(ctx context.Context, subfolder string) ([]repodoc.TreeEntry, error) {
	return r.ListTreeFn(ctx, subfolder)
}

func (r *Repository) GetContent(ctx context.Context, path string) ([]byte, error) {
	return r.GetContentFn(ctx, path)
}
