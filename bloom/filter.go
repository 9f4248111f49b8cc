// Package bloom provides a probabilistic token vocabulary backed by a Bloom
// filter. It answers "might any document contain this token" without
// keeping the full vocabulary in memory.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/repodoc"
)

// DefaultFalsePositiveRate is used by NewVocabulary.
const DefaultFalsePositiveRate = 0.001

// Filter wraps a Bloom filter of tokens.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected tokens
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewVocabulary returns a filter holding every token of the title, summary
// and content of docs.
func NewVocabulary(docs []*repodoc.Document) *Filter {
	tokens := make(map[string]struct{})
	for _, doc := range docs {
		for _, text := range []string{doc.Title, doc.Summary, doc.Content} {
			for _, tok := range repodoc.Tokenize(text) {
				tokens[tok] = struct{}{}
			}
		}
	}

	f := NewFilter(uint(len(tokens)), DefaultFalsePositiveRate)
	for tok := range tokens {
		f.Add(tok)
	}
	return f
}

// Add adds a token to the filter.
func (f *Filter) Add(token string) {
	f.f.AddString(token)
}

// Test returns true if the token might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(token string) bool {
	return f.f.TestString(token)
}

// Retain returns the tokens that might be in the filter, in input order.
func (f *Filter) Retain(tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		if f.Test(tok) {
			out = append(out, tok)
		}
	}
	return out
}
