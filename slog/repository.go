// Package slog provides logging decorators for repodoc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/repodoc"
)

// Ensure LoggingRepository implements repodoc.Repository.
var _ repodoc.Repository = (*LoggingRepository)(nil)

// LoggingRepository wraps a Repository with debug logging of every call.
type LoggingRepository struct {
	next   repodoc.Repository
	logger *slog.Logger
}

// NewLoggingRepository creates a new LoggingRepository.
func NewLoggingRepository(next repodoc.Repository, logger *slog.Logger) *LoggingRepository {
	return &LoggingRepository{next: next, logger: logger}
}

// ListTree delegates to the wrapped repository and logs the entry count.
func (r *LoggingRepository) ListTree(ctx context.Context, subfolder string) (entries []repodoc.TreeEntry, err error) {
	defer func(begin time.Time) {
		r.logger.Info("list tree",
			"subfolder", subfolder,
			"entries", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ListTree(ctx, subfolder)
}

// GetContent delegates to the wrapped repository and logs the size read.
func (r *LoggingRepository) GetContent(ctx context.Context, path string) (content []byte, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		r.logger.Log(ctx, level, "get content",
			"path", path,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.GetContent(ctx, path)
}
