package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/repodoc"
)

// Ensure LoggingDocumentService implements repodoc.DocumentService.
var _ repodoc.DocumentService = (*LoggingDocumentService)(nil)

// LoggingDocumentService wraps a DocumentService and logs each operation.
type LoggingDocumentService struct {
	next   repodoc.DocumentService
	logger *slog.Logger
}

// NewLoggingDocumentService creates a new LoggingDocumentService.
func NewLoggingDocumentService(next repodoc.DocumentService, logger *slog.Logger) *LoggingDocumentService {
	return &LoggingDocumentService{next: next, logger: logger}
}

// EnsureReady implements repodoc.DocumentService.
func (s *LoggingDocumentService) EnsureReady(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("ensure ready", "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.EnsureReady(ctx)
}

// ListDocuments implements repodoc.DocumentService.
func (s *LoggingDocumentService) ListDocuments(ctx context.Context, limit *int) (docs []*repodoc.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Info("list documents",
			"limit", limitAttr(limit),
			"returned", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListDocuments(ctx, limit)
}

// FindDocumentByPath implements repodoc.DocumentService.
func (s *LoggingDocumentService) FindDocumentByPath(ctx context.Context, path string) (doc *repodoc.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find document",
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDocumentByPath(ctx, path)
}

// SearchDocuments implements repodoc.DocumentService.
func (s *LoggingDocumentService) SearchDocuments(ctx context.Context, q repodoc.Query) (res *repodoc.SearchResult, err error) {
	defer func(begin time.Time) {
		var total, returned int
		if res != nil {
			total, returned = res.Total, res.Returned()
		}
		s.logger.Info("search documents",
			"query", q.Text,
			"limit", limitAttr(q.Limit),
			"total", total,
			"returned", returned,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchDocuments(ctx, q)
}

func limitAttr(limit *int) any {
	if limit == nil {
		return "none"
	}
	return *limit
}
