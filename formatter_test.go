package repodoc_test

import (
	"testing"

	"github.com/fwojciec/repodoc"
	"github.com/stretchr/testify/assert"
)

func TestFormatDocuments(t *testing.T) {
	t.Parallel()

	t.Run("formats single document with title", func(t *testing.T) {
		t.Parallel()

		docs := []*repodoc.Document{
			{Path: "docs/start.md", Title: "Getting Started", Content: "Welcome to the docs."},
		}

		expected := "## Document: Getting Started (docs/start.md)\nWelcome to the docs."
		assert.Equal(t, expected, repodoc.FormatDocuments(docs))
	})

	t.Run("uses path when title is empty", func(t *testing.T) {
		t.Parallel()

		docs := []*repodoc.Document{{Path: "a.txt", Content: "Some content."}}

		assert.Equal(t, "## Document: a.txt (a.txt)\nSome content.", repodoc.FormatDocuments(docs))
	})

	t.Run("separates documents with blank line", func(t *testing.T) {
		t.Parallel()

		docs := []*repodoc.Document{
			{Path: "1.md", Title: "Doc One", Content: "First."},
			{Path: "2.md", Title: "Doc Two", Content: "Second."},
		}

		expected := "## Document: Doc One (1.md)\nFirst.\n\n## Document: Doc Two (2.md)\nSecond."
		assert.Equal(t, expected, repodoc.FormatDocuments(docs))
	})

	t.Run("returns empty string for no documents", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, repodoc.FormatDocuments(nil))
	})
}

func TestFormatDocumentList(t *testing.T) {
	t.Parallel()

	docs := []*repodoc.Document{
		{Path: "a.md", Title: "A", Summary: "About A."},
		{Path: "b.md", Title: "B"},
	}

	assert.Equal(t, "a.md\tA\tAbout A.\nb.md\tB\n", repodoc.FormatDocumentList(docs))
}
