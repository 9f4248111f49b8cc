// Package corpus holds the scanned documentation corpus in memory. The
// corpus is built at most once at a time: concurrent callers share a single
// in-flight build, a failed build is retried by the next caller, and a
// ready corpus is never rebuilt.
package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/repodoc"
	"github.com/fwojciec/repodoc/rank"
	"github.com/fwojciec/repodoc/scan"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// State is the lifecycle state of a Store.
type State int

const (
	StateEmpty State = iota
	StateBuilding
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateBuilding:
		return "building"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Scanner produces the documents of a corpus.
type Scanner interface {
	Scan(ctx context.Context, progress scan.ProgressFunc) (*scan.Result, error)
}

// Report describes the most recent build attempt.
type Report struct {
	ID          string
	State       State
	Candidates  int
	Documents   int
	Failures    []scan.Failure
	Fingerprint string
	Duration    time.Duration
	Err         error
}

// Ensure Store implements repodoc.DocumentService at compile time.
var _ repodoc.DocumentService = (*Store)(nil)

// Store implements repodoc.DocumentService over a lazily built corpus.
type Store struct {
	scanner     Scanner
	newSearcher repodoc.SearcherFactory
	logger      *slog.Logger

	group singleflight.Group

	mu       sync.RWMutex
	state    State
	docs     []*repodoc.Document
	byPath   map[string]*repodoc.Document
	searcher repodoc.Searcher
	report   Report
}

// Option configures a Store.
type Option func(*Store)

// WithSearcher sets the factory used to index a built corpus.
// The default is the lexical rank.Index.
func WithSearcher(f repodoc.SearcherFactory) Option {
	return func(s *Store) {
		s.newSearcher = f
	}
}

// WithLogger sets the logger used to report build attempts.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore returns an empty Store that builds its corpus with scanner.
func NewStore(scanner Scanner, opts ...Option) *Store {
	s := &Store{
		scanner:     scanner,
		newSearcher: rank.NewSearcher,
		logger:      slog.New(slog.DiscardHandler),
		state:       StateEmpty,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Report returns the outcome of the most recent build attempt.
func (s *Store) Report() Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// EnsureReady builds the corpus unless it is already ready. Callers that
// arrive during a build wait for it and observe its outcome. The build
// itself runs to completion even if every waiting caller gives up.
func (s *Store) EnsureReady(ctx context.Context) error {
	if s.State() == StateReady {
		return nil
	}

	buildCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan("corpus", func() (any, error) {
		return nil, s.build(buildCtx)
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) build(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateReady {
		s.mu.Unlock()
		return nil
	}
	s.state = StateBuilding
	s.mu.Unlock()

	begin := time.Now()
	id := uuid.NewString()
	s.logger.Info("corpus build started", "scan_id", id)

	docs, res, err := s.scan(ctx, id)

	report := Report{ID: id, Duration: time.Since(begin), Err: err}
	if res != nil {
		report.Candidates = res.Candidates
		report.Failures = res.Failures
	}
	for _, f := range report.Failures {
		s.logger.Warn("document skipped", "scan_id", id, "path", f.Path, "err", f.Err)
	}

	byPath, sorted := index(docs)

	var searcher repodoc.Searcher
	if err == nil {
		searcher, err = s.newSearcher(sorted)
		if err != nil {
			err = repodoc.Wrapf(repodoc.ESCAN, err, "index corpus: %v", err)
			report.Err = err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		report.State = StateFailed
		s.state = StateFailed
		s.report = report
		s.logger.Error("corpus build failed", "scan_id", id, "duration", report.Duration, "err", err)
		return err
	}

	report.State = StateReady
	report.Documents = len(sorted)
	report.Fingerprint = repodoc.Fingerprint(sorted)

	s.docs = sorted
	s.byPath = byPath
	s.searcher = searcher
	s.state = StateReady
	s.report = report

	s.logger.Info("corpus ready",
		"scan_id", id,
		"candidates", report.Candidates,
		"documents", report.Documents,
		"failures", len(report.Failures),
		"fingerprint", report.Fingerprint,
		"duration", report.Duration,
	)
	return nil
}

// index keys docs by path and returns them sorted. A later document
// replaces an earlier one with the same path.
func index(docs []*repodoc.Document) (map[string]*repodoc.Document, []*repodoc.Document) {
	byPath := make(map[string]*repodoc.Document, len(docs))
	for _, doc := range docs {
		byPath[doc.Path] = doc
	}
	sorted := make([]*repodoc.Document, 0, len(byPath))
	for _, doc := range byPath {
		sorted = append(sorted, doc)
	}
	repodoc.SortDocuments(sorted)
	return byPath, sorted
}

func (s *Store) scan(ctx context.Context, id string) ([]*repodoc.Document, *scan.Result, error) {
	res, err := s.scanner.Scan(ctx, s.progress(id))
	if err != nil {
		if repodoc.ErrorCode(err) != repodoc.ESCAN {
			err = repodoc.Wrapf(repodoc.ESCAN, err, "scan repository: %s", repodoc.ErrorMessage(err))
		}
		return nil, nil, err
	}
	return res.Documents, res, nil
}

// ListDocuments returns documents sorted by path, truncated to limit.
func (s *Store) ListDocuments(ctx context.Context, limit *int) ([]*repodoc.Document, error) {
	if err := repodoc.ValidateLimit(limit); err != nil {
		return nil, err
	}
	if err := s.EnsureReady(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := repodoc.ApplyLimit(len(s.docs), limit)
	docs := make([]*repodoc.Document, n)
	copy(docs, s.docs[:n])
	return docs, nil
}

// FindDocumentByPath returns the document stored at exactly path.
func (s *Store) FindDocumentByPath(ctx context.Context, path string) (*repodoc.Document, error) {
	if err := s.EnsureReady(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.byPath[path]
	if !ok {
		return nil, repodoc.Errorf(repodoc.ENOTFOUND, "document %q not found", path)
	}
	return doc, nil
}

// SearchDocuments ranks the corpus against q.
func (s *Store) SearchDocuments(ctx context.Context, q repodoc.Query) (*repodoc.SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := s.EnsureReady(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	searcher := s.searcher
	s.mu.RUnlock()

	return searcher.Search(ctx, q)
}

// progress logs fetch progress of the build identified by id at debug level.
func (s *Store) progress(id string) scan.ProgressFunc {
	return func(e scan.ProgressEvent) {
		switch e.Type {
		case scan.ProgressStarted:
			s.logger.Debug("fetching documents", "scan_id", id, "candidates", e.Total)
		case scan.ProgressCompleted:
			s.logger.Debug("document fetched", "scan_id", id, "path", e.Path, "completed", e.Completed, "total", e.Total)
		case scan.ProgressFailed:
			s.logger.Debug("document fetch failed", "scan_id", id, "path", e.Path, "completed", e.Completed, "total", e.Total, "err", e.Error)
		case scan.ProgressFinished:
			s.logger.Debug("fetching finished", "scan_id", id, "total", e.Total)
		}
	}
}
