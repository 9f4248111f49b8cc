package repodoc

import "context"

// Query is a free-text relevance query.
type Query struct {
	Text string

	// Limit caps the number of returned results. Nil means no cap.
	Limit *int
}

// Validate returns an error if the query contains invalid fields.
func (q Query) Validate() error {
	return ValidateLimit(q.Limit)
}

// ScoredDocument pairs a document with its relevance score.
type ScoredDocument struct {
	Document *Document
	Score    float64
}

// SearchResult is the outcome of a relevance query. Total counts every
// document with a positive score; Results holds at most Limit of them,
// ordered by descending score and then ascending path.
type SearchResult struct {
	Total   int
	Results []ScoredDocument
}

// Returned reports the number of results actually returned.
func (r *SearchResult) Returned() int {
	return len(r.Results)
}

// Documents returns the documents of the results in rank order.
func (r *SearchResult) Documents() []*Document {
	docs := make([]*Document, len(r.Results))
	for i, res := range r.Results {
		docs[i] = res.Document
	}
	return docs
}

// Searcher ranks a fixed set of documents against queries.
type Searcher interface {
	Search(ctx context.Context, q Query) (*SearchResult, error)
}

// SearcherFactory builds a Searcher over a completed corpus. It is called
// once per successful build.
type SearcherFactory func(docs []*Document) (Searcher, error)
