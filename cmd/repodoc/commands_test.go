package main_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/repodoc"
	main "github.com/fwojciec/repodoc/cmd/repodoc"
	"github.com/fwojciec/repodoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeps(docs repodoc.DocumentService) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:       context.Background(),
		Stdout:    stdout,
		Stderr:    stderr,
		Logger:    slog.New(slog.DiscardHandler),
		Documents: docs,
	}, stdout, stderr
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("passes limit and prints documents", func(t *testing.T) {
		t.Parallel()

		var gotLimit *int
		deps, stdout, _ := newDeps(&mock.DocumentService{
			ListDocumentsFn: func(_ context.Context, limit *int) ([]*repodoc.Document, error) {
				gotLimit = limit
				return []*repodoc.Document{{Path: "a.md", Title: "A", Summary: "First."}}, nil
			},
		})
		limit := 1

		err := (&main.ListCmd{Limit: &limit}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, gotLimit)
		assert.Equal(t, 1, *gotLimit)
		assert.Equal(t, "a.md\tA\tFirst.\n", stdout.String())
	})

	t.Run("reports empty corpus", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(&mock.DocumentService{
			ListDocumentsFn: func(_ context.Context, _ *int) ([]*repodoc.Document, error) {
				return []*repodoc.Document{}, nil
			},
		})

		err := (&main.ListCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No documents found")
	})

	t.Run("prints scan failure", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(&mock.DocumentService{
			ListDocumentsFn: func(_ context.Context, _ *int) ([]*repodoc.Document, error) {
				return nil, repodoc.Errorf(repodoc.ESCAN, "scan repository: bad credentials")
			},
		})

		err := (&main.ListCmd{}).Run(deps)

		assert.Equal(t, repodoc.ESCAN, repodoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "bad credentials")
	})
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps(&mock.DocumentService{
		FindDocumentByPathFn: func(_ context.Context, path string) (*repodoc.Document, error) {
			return &repodoc.Document{Path: path, Title: "Guide", Content: "# Guide\n\nBody."}, nil
		},
	})

	err := (&main.ShowCmd{Path: "docs/guide.md"}).Run(deps)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "## Document: Guide (docs/guide.md)")
	assert.Contains(t, stdout.String(), "Body.")
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints results in rank order", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(&mock.DocumentService{
			SearchDocumentsFn: func(_ context.Context, q repodoc.Query) (*repodoc.SearchResult, error) {
				assert.Equal(t, "setup", q.Text)
				return &repodoc.SearchResult{
					Total: 3,
					Results: []repodoc.ScoredDocument{
						{Document: &repodoc.Document{Path: "b.md", Title: "Setup"}, Score: 1.5},
						{Document: &repodoc.Document{Path: "a.md", Title: "Intro"}, Score: 0.5},
					},
				}, nil
			},
		})

		err := (&main.SearchCmd{Query: "setup"}).Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "Found 3 documents (showing 2)")
		assert.Less(t, bytes.Index([]byte(out), []byte("b.md")), bytes.Index([]byte(out), []byte("a.md")))
	})

	t.Run("reports no matches", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(&mock.DocumentService{
			SearchDocumentsFn: func(_ context.Context, _ repodoc.Query) (*repodoc.SearchResult, error) {
				return &repodoc.SearchResult{Results: []repodoc.ScoredDocument{}}, nil
			},
		})

		err := (&main.SearchCmd{Query: "xyzzy"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `No documents match "xyzzy"`)
	})
}
