// Package rank implements lexical relevance ranking over an in-memory corpus.
package rank

import (
	"context"
	"sort"

	"github.com/fwojciec/repodoc"
	"github.com/fwojciec/repodoc/bloom"
)

// Field weights. A token found in the title counts more than one found in
// the summary, which counts more than one found only in the content.
const (
	TitleWeight   = 3.0
	SummaryWeight = 2.0
	ContentWeight = 1.0
)

// Ensure Index implements repodoc.Searcher at compile time.
var _ repodoc.Searcher = (*Index)(nil)

// Index scores documents by weighted token occurrences in their title,
// summary and content.
//
// For each distinct query token, a field with n occurrences contributes
// weight * n/(n+1). Saturating the count keeps any single field below its
// weight, so a token in the title always outweighs the same token found only
// in the content, no matter how often it repeats there.
type Index struct {
	entries []entry
	vocab   *bloom.Filter
}

type entry struct {
	doc     *repodoc.Document
	title   map[string]int
	summary map[string]int
	content map[string]int
}

// NewIndex tokenizes docs once and returns an index over them.
func NewIndex(docs []*repodoc.Document) *Index {
	entries := make([]entry, len(docs))
	for i, doc := range docs {
		entries[i] = entry{
			doc:     doc,
			title:   repodoc.TermCounts(doc.Title),
			summary: repodoc.TermCounts(doc.Summary),
			content: repodoc.TermCounts(doc.Content),
		}
	}
	return &Index{
		entries: entries,
		vocab:   bloom.NewVocabulary(docs),
	}
}

// NewSearcher is a repodoc.SearcherFactory that builds an Index.
func NewSearcher(docs []*repodoc.Document) (repodoc.Searcher, error) {
	return NewIndex(docs), nil
}

// Search returns every document with a positive score, ordered by
// descending score and then ascending path, truncated to q.Limit.
func (ix *Index) Search(ctx context.Context, q repodoc.Query) (*repodoc.SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	tokens := ix.vocab.Retain(repodoc.UniqueTokens(q.Text))
	if len(tokens) == 0 {
		return &repodoc.SearchResult{Results: []repodoc.ScoredDocument{}}, nil
	}

	var scored []repodoc.ScoredDocument
	for _, e := range ix.entries {
		if s := e.score(tokens); s > 0 {
			scored = append(scored, repodoc.ScoredDocument{Document: e.doc, Score: s})
		}
	}

	return Truncate(scored, q.Limit), nil
}

// Score returns the relevance of doc to query without building an index.
func Score(doc *repodoc.Document, query string) float64 {
	e := entry{
		doc:     doc,
		title:   repodoc.TermCounts(doc.Title),
		summary: repodoc.TermCounts(doc.Summary),
		content: repodoc.TermCounts(doc.Content),
	}
	return e.score(repodoc.UniqueTokens(query))
}

func (e *entry) score(tokens []string) float64 {
	var s float64
	for _, tok := range tokens {
		s += TitleWeight*saturate(e.title[tok]) +
			SummaryWeight*saturate(e.summary[tok]) +
			ContentWeight*saturate(e.content[tok])
	}
	return s
}

func saturate(n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n) / float64(n+1)
}

// Truncate sorts scored results by descending score then ascending path and
// applies limit after sorting. Total always counts every result.
func Truncate(scored []repodoc.ScoredDocument, limit *int) *repodoc.SearchResult {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Document.Path < scored[j].Document.Path
	})

	n := repodoc.ApplyLimit(len(scored), limit)
	results := make([]repodoc.ScoredDocument, n)
	copy(results, scored[:n])
	return &repodoc.SearchResult{
		Total:   len(scored),
		Results: results,
	}
}
