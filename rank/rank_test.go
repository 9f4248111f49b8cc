package rank_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/repodoc"
	"github.com/fwojciec/repodoc/mock"
	"github.com/fwojciec/repodoc/rank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func sampleDocs() []*repodoc.Document {
	return []*repodoc.Document{
		repodoc.NewDocument("docs/installation.md", "# Installation Guide\n\nThis guide explains how to install the software."),
		repodoc.NewDocument("docs/usage.md", "# Usage\n\nRun the tool after setup."),
		repodoc.NewDocument("docs/faq.md", "# FAQ\n\nCommon questions about configuration."),
	}
}

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	t.Run("finds the installation guide", func(t *testing.T) {
		t.Parallel()

		res, err := rank.NewIndex(sampleDocs()).Search(context.Background(), repodoc.Query{Text: "install"})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Equal(t, 1, res.Returned())
		assert.Equal(t, "docs/installation.md", res.Results[0].Document.Path)
	})

	t.Run("returns empty non-nil results when nothing matches", func(t *testing.T) {
		t.Parallel()

		res, err := rank.NewIndex(sampleDocs()).Search(context.Background(), repodoc.Query{Text: "xyzzy"})

		require.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		assert.Equal(t, 0, res.Returned())
		assert.NotNil(t, res.Results)
	})

	t.Run("empty query matches nothing", func(t *testing.T) {
		t.Parallel()

		res, err := rank.NewIndex(sampleDocs()).Search(context.Background(), repodoc.Query{Text: "  "})

		require.NoError(t, err)
		assert.Equal(t, 0, res.Total)
	})

	t.Run("rejects negative limit", func(t *testing.T) {
		t.Parallel()

		_, err := rank.NewIndex(sampleDocs()).Search(context.Background(), repodoc.Query{Text: "a", Limit: intPtr(-1)})

		assert.Equal(t, repodoc.EINVALID, repodoc.ErrorCode(err))
	})

	t.Run("applies limit after sorting and keeps total", func(t *testing.T) {
		t.Parallel()

		docs := []*repodoc.Document{
			repodoc.NewDocument("c.md", "setup"),
			repodoc.NewDocument("a.md", "# Setup\n\nsetup steps"),
			repodoc.NewDocument("b.md", "setup"),
		}

		res, err := rank.NewIndex(docs).Search(context.Background(), repodoc.Query{Text: "setup", Limit: intPtr(2)})

		require.NoError(t, err)
		assert.Equal(t, 3, res.Total)
		require.Equal(t, 2, res.Returned())
		assert.Equal(t, "a.md", res.Results[0].Document.Path)
		assert.Equal(t, "b.md", res.Results[1].Document.Path)
	})

	t.Run("zero limit returns no documents", func(t *testing.T) {
		t.Parallel()

		res, err := rank.NewIndex(sampleDocs()).Search(context.Background(), repodoc.Query{Text: "install", Limit: intPtr(0)})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Equal(t, 0, res.Returned())
	})

	t.Run("breaks ties by ascending path", func(t *testing.T) {
		t.Parallel()

		docs := []*repodoc.Document{
			repodoc.NewDocument("z.md", "token"),
			repodoc.NewDocument("m.md", "token"),
			repodoc.NewDocument("a.md", "token"),
		}

		res, err := rank.NewIndex(docs).Search(context.Background(), repodoc.Query{Text: "token"})

		require.NoError(t, err)
		paths := make([]string, 0, res.Returned())
		for _, d := range res.Documents() {
			paths = append(paths, d.Path)
		}
		assert.Equal(t, []string{"a.md", "m.md", "z.md"}, paths)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		ix := rank.NewIndex(sampleDocs())
		first, err := ix.Search(context.Background(), repodoc.Query{Text: "the guide setup questions"})
		require.NoError(t, err)

		for i := 0; i < 10; i++ {
			again, err := ix.Search(context.Background(), repodoc.Query{Text: "the guide setup questions"})
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})

	t.Run("counts repeated query tokens once", func(t *testing.T) {
		t.Parallel()

		doc := repodoc.NewDocument("a.md", "alpha")

		assert.Equal(t, rank.Score(doc, "alpha"), rank.Score(doc, "alpha alpha ALPHA"))
	})
}

func TestScore_TitleOutranksContent(t *testing.T) {
	t.Parallel()

	titled := &repodoc.Document{Path: "t.md", Title: "Deploy", Content: "# Deploy"}
	for _, n := range []int{1, 2, 10, 1000} {
		body := &repodoc.Document{
			Path:    "c.md",
			Title:   "Other",
			Content: strings.Repeat("deploy ", n),
		}
		assert.Greater(t, rank.Score(titled, "deploy"), rank.Score(body, "deploy"), fmt.Sprintf("n=%d", n))
	}
}

func TestScore_SummaryOutranksContent(t *testing.T) {
	t.Parallel()

	summarized := &repodoc.Document{Path: "s.md", Title: "S", Summary: "deploy", Content: "deploy"}
	body := &repodoc.Document{Path: "c.md", Title: "C", Content: strings.Repeat("deploy ", 50)}

	assert.Greater(t, rank.Score(summarized, "deploy"), rank.Score(body, "deploy"))
}

func TestFallback_Search(t *testing.T) {
	t.Parallel()

	t.Run("uses primary results when present", func(t *testing.T) {
		t.Parallel()

		secondaryCalled := false
		f := &rank.Fallback{
			Primary: rank.NewIndex(sampleDocs()),
			Secondary: &mock.Searcher{
				SearchFn: func(ctx context.Context, q repodoc.Query) (*repodoc.SearchResult, error) {
					secondaryCalled = true
					return nil, nil
				},
			},
		}

		res, err := f.Search(context.Background(), repodoc.Query{Text: "install"})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.False(t, secondaryCalled)
	})

	t.Run("consults secondary when primary finds nothing", func(t *testing.T) {
		t.Parallel()

		want := &repodoc.SearchResult{Total: 1, Results: []repodoc.ScoredDocument{{Document: sampleDocs()[0], Score: 0.5}}}
		f := &rank.Fallback{
			Primary: rank.NewIndex(sampleDocs()),
			Secondary: &mock.Searcher{
				SearchFn: func(ctx context.Context, q repodoc.Query) (*repodoc.SearchResult, error) {
					return want, nil
				},
			},
		}

		res, err := f.Search(context.Background(), repodoc.Query{Text: "instal"})

		require.NoError(t, err)
		assert.Same(t, want, res)
	})

	t.Run("returns primary error", func(t *testing.T) {
		t.Parallel()

		f := &rank.Fallback{
			Primary: &mock.Searcher{
				SearchFn: func(ctx context.Context, q repodoc.Query) (*repodoc.SearchResult, error) {
					return nil, errors.New("boom")
				},
			},
		}

		_, err := f.Search(context.Background(), repodoc.Query{Text: "x"})

		assert.EqualError(t, err, "boom")
	})
}

func TestWithFallback(t *testing.T) {
	t.Parallel()

	t.Run("propagates factory errors", func(t *testing.T) {
		t.Parallel()

		factory := rank.WithFallback(func(docs []*repodoc.Document) (repodoc.Searcher, error) {
			return nil, errors.New("index failed")
		})

		_, err := factory(sampleDocs())

		assert.EqualError(t, err, "index failed")
	})
}
