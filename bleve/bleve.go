// Package bleve provides a fuzzy full-text searcher backed by an in-memory
// bleve index. It tolerates misspelled query terms and is meant as a
// fallback for the lexical ranker.
package bleve

import (
	"context"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/fwojciec/repodoc"
	"github.com/fwojciec/repodoc/rank"
)

// DefaultFuzziness is the maximum edit distance allowed per query term.
const DefaultFuzziness = 1

// Ensure Index implements repodoc.Searcher at compile time.
var _ repodoc.Searcher = (*Index)(nil)

// Index is an in-memory fuzzy index over a fixed set of documents.
type Index struct {
	idx       bleve.Index
	docs      map[string]*repodoc.Document
	fuzziness int
}

// NewIndex indexes the title, summary and content of docs.
func NewIndex(docs []*repodoc.Document) (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, repodoc.Errorf(repodoc.EINTERNAL, "create fuzzy index: %v", err)
	}

	byPath := make(map[string]*repodoc.Document, len(docs))
	batch := idx.NewBatch()
	for _, doc := range docs {
		byPath[doc.Path] = doc
		if err := batch.Index(doc.Path, map[string]any{
			"title":   doc.Title,
			"summary": doc.Summary,
			"content": doc.Content,
		}); err != nil {
			return nil, repodoc.Errorf(repodoc.EINTERNAL, "index %s: %v", doc.Path, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		return nil, repodoc.Errorf(repodoc.EINTERNAL, "index documents: %v", err)
	}

	return &Index{idx: idx, docs: byPath, fuzziness: DefaultFuzziness}, nil
}

// NewSearcher is a repodoc.SearcherFactory that builds an Index.
func NewSearcher(docs []*repodoc.Document) (repodoc.Searcher, error) {
	return NewIndex(docs)
}

// Search returns every matching document ordered by descending score and
// then ascending path, truncated to q.Limit.
func (ix *Index) Search(ctx context.Context, q repodoc.Query) (*repodoc.SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if len(repodoc.Tokenize(q.Text)) == 0 || len(ix.docs) == 0 {
		return &repodoc.SearchResult{Results: []repodoc.ScoredDocument{}}, nil
	}

	req := bleve.NewSearchRequestOptions(ix.query(q.Text), len(ix.docs), 0, false)
	res, err := ix.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, repodoc.Errorf(repodoc.EINTERNAL, "fuzzy search: %v", err)
	}

	scored := make([]repodoc.ScoredDocument, 0, len(res.Hits))
	for _, hit := range res.Hits {
		doc, ok := ix.docs[hit.ID]
		if !ok || hit.Score <= 0 {
			continue
		}
		scored = append(scored, repodoc.ScoredDocument{Document: doc, Score: hit.Score})
	}
	return rank.Truncate(scored, q.Limit), nil
}

// Close releases the index.
func (ix *Index) Close() error {
	return ix.idx.Close()
}

func (ix *Index) query(text string) query.Query {
	fields := []struct {
		name  string
		boost float64
	}{
		{"title", rank.TitleWeight},
		{"summary", rank.SummaryWeight},
		{"content", rank.ContentWeight},
	}

	queries := make([]query.Query, 0, len(fields))
	for _, f := range fields {
		mq := bleve.NewMatchQuery(text)
		mq.SetField(f.name)
		mq.SetFuzziness(ix.fuzziness)
		mq.SetBoost(f.boost)
		queries = append(queries, mq)
	}
	return bleve.NewDisjunctionQuery(queries...)
}
