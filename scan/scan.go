// Package scan discovers documentation files in a repository and fetches
// them into documents. A failed file is recorded and skipped; only a failed
// tree listing fails the scan.
package scan

import (
	"context"
	"sync/atomic"

	"github.com/fwojciec/repodoc"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of in-flight content fetches.
const DefaultConcurrency = 5

// Scanner lists a repository and builds a document for every candidate.
type Scanner struct {
	Repository  repodoc.Repository
	Builder     *Builder
	Subfolder   string
	Extensions  ExtensionSet
	Concurrency int
}

// Failure records a candidate that could not be turned into a document.
type Failure struct {
	Path string
	Err  error
}

// Result holds the outcome of a scan.
type Result struct {
	// Candidates is the number of files selected for fetching.
	Candidates int

	// Documents are sorted by path.
	Documents []*repodoc.Document

	Failures []Failure
}

// ProgressEvent reports progress during a scan.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Path      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scan progress.
type ProgressFunc func(event ProgressEvent)

type fetchResult struct {
	position int
	path     string
	doc      *repodoc.Document
	err      error
}

// Scan lists the repository, selects candidates and fetches them
// concurrently. Returns ESCAN if the tree cannot be listed. The progress
// callback, if provided, receives events as fetching proceeds.
func (s *Scanner) Scan(ctx context.Context, progress ProgressFunc) (*Result, error) {
	subfolder := repodoc.CleanSubfolder(s.Subfolder)

	entries, err := s.Repository.ListTree(ctx, subfolder)
	if err != nil {
		return nil, repodoc.Wrapf(repodoc.ESCAN, err, "list repository tree: %s", repodoc.ErrorMessage(err))
	}

	exts := s.Extensions
	if exts == nil {
		exts = NewExtensionSet(nil)
	}
	paths := Candidates(entries, subfolder, exts)

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(paths)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan fetchResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, p := range paths {
			i, p := i, p
			g.Go(func() error {
				resultCh <- s.fetch(gctx, i, p)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]fetchResult, total)
	var completed atomic.Int64
	for r := range resultCh {
		results[r.position] = r
		n := int(completed.Add(1))
		if progress == nil {
			continue
		}
		if r.err != nil {
			progress(ProgressEvent{Type: ProgressFailed, Completed: n, Total: total, Path: r.path, Error: r.err})
		} else {
			progress(ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, Path: r.path})
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, repodoc.Wrapf(repodoc.ESCAN, err, "scan interrupted")
	}

	res := &Result{Candidates: total, Documents: []*repodoc.Document{}}
	for _, r := range results {
		if r.err != nil {
			res.Failures = append(res.Failures, Failure{Path: r.path, Err: r.err})
			continue
		}
		res.Documents = append(res.Documents, r.doc)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return res, nil
}

func (s *Scanner) fetch(ctx context.Context, position int, p string) fetchResult {
	content, err := s.Repository.GetContent(ctx, p)
	if err != nil {
		return fetchResult{position: position, path: p, err: err}
	}
	doc, err := s.Builder.Build(p, content)
	return fetchResult{position: position, path: p, doc: doc, err: err}
}
