package goquery_test

import (
	"testing"

	"github.com/fwojciec/repodoc/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("uses title element and main content", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title> Install
			Guide </title></head><body><nav><a href="/">Home</a></nav>
			<main><h1>Installing</h1><p>Run the installer.</p></main>
			<footer>Copyright</footer></body></html>`

		res, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Install Guide", res.Title)
		assert.Contains(t, res.ContentHTML, "<p>Run the installer.</p>")
		assert.NotContains(t, res.ContentHTML, "Home")
		assert.NotContains(t, res.ContentHTML, "Copyright")
	})

	t.Run("falls back to first h1", func(t *testing.T) {
		t.Parallel()

		res, err := goquery.NewExtractor().Extract(`<body><h1>First</h1><h1>Second</h1></body>`)

		require.NoError(t, err)
		assert.Equal(t, "First", res.Title)
	})

	t.Run("prefers generator content containers", func(t *testing.T) {
		t.Parallel()

		html := `<body><main><div class="sidebar">Menu</div>
			<div class="theme-doc-markdown"><p>Doc body.</p></div></main></body>`

		res, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "<p>Doc body.</p>", res.ContentHTML)
	})

	t.Run("drops scripts and styles", func(t *testing.T) {
		t.Parallel()

		html := `<body><script>var x = 1;</script><style>p{}</style><p>Text.</p></body>`

		res, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "<p>Text.</p>", res.ContentHTML)
	})

	t.Run("returns empty title when none exists", func(t *testing.T) {
		t.Parallel()

		res, err := goquery.NewExtractor().Extract(`<p>Only text.</p>`)

		require.NoError(t, err)
		assert.Empty(t, res.Title)
		assert.Equal(t, "<p>Only text.</p>", res.ContentHTML)
	})
}
