package github_test

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/repodoc"
	"github.com/fwojciec/repodoc/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestClient(t *testing.T, mux *http.ServeMux, source repodoc.Source, opts ...github.Option) *github.Client {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	opts = append([]github.Option{
		github.WithBaseURL(server.URL),
		github.WithRateLimiter(github.NewRateLimiter(rate.Inf, 1)),
		github.WithRetryDelays([]time.Duration{time.Millisecond, time.Millisecond}),
	}, opts...)

	client, err := github.NewClient(context.Background(), source, opts...)
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("rejects incomplete source", func(t *testing.T) {
		t.Parallel()

		_, err := github.NewClient(context.Background(), repodoc.Source{Owner: "o"})

		assert.Equal(t, repodoc.ECONFIG, repodoc.ErrorCode(err))
	})

	t.Run("rejects invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := github.NewClient(context.Background(), repodoc.Source{Owner: "o", Repo: "r"}, github.WithBaseURL("://bad"))

		assert.Equal(t, repodoc.ECONFIG, repodoc.ErrorCode(err))
	})
}

func TestClient_ListTree(t *testing.T) {
	t.Parallel()

	t.Run("resolves default branch and lists recursively", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/repos/o/r", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"name":"r","default_branch":"main"}`)
		})
		mux.HandleFunc("/repos/o/r/git/trees/main", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("recursive"))
			writeJSON(w, http.StatusOK, `{"sha":"abc","truncated":false,"tree":[
				{"path":"README.md","type":"blob","size":5},
				{"path":"docs","type":"tree","sha":"d1"},
				{"path":"docs/a.md","type":"blob","size":10},
				{"path":"docsite/b.md","type":"blob","size":3}
			]}`)
		})

		client := newTestClient(t, mux, repodoc.Source{Owner: "o", Repo: "r"})
		entries, err := client.ListTree(context.Background(), "docs")

		require.NoError(t, err)
		assert.Equal(t, []repodoc.TreeEntry{{Path: "docs/a.md", Kind: repodoc.EntryFile, Size: 10}}, entries)
	})

	t.Run("lists whole repository without subfolder", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/repos/o/r/git/trees/v1", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"sha":"abc","tree":[
				{"path":"README.md","type":"blob","size":5},
				{"path":"docs","type":"tree","sha":"d1"}
			]}`)
		})

		client := newTestClient(t, mux, repodoc.Source{Owner: "o", Repo: "r", Ref: "v1"})
		entries, err := client.ListTree(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, []repodoc.TreeEntry{
			{Path: "README.md", Kind: repodoc.EntryFile, Size: 5},
			{Path: "docs", Kind: repodoc.EntryDir},
		}, entries)
	})

	t.Run("walks directories when listing is truncated", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/repos/o/r/git/trees/main", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"sha":"root","truncated":true,"tree":[]}`)
		})
		mux.HandleFunc("/repos/o/r/git/trees/root", func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.URL.Query().Get("recursive"))
			writeJSON(w, http.StatusOK, `{"sha":"root","tree":[
				{"path":"docs","type":"tree","sha":"d1"},
				{"path":"src","type":"tree","sha":"s1"}
			]}`)
		})
		mux.HandleFunc("/repos/o/r/git/trees/d1", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"sha":"d1","tree":[{"path":"a.md","type":"blob","size":2}]}`)
		})
		mux.HandleFunc("/repos/o/r/git/trees/s1", func(w http.ResponseWriter, r *http.Request) {
			t.Error("walked outside subfolder")
			writeJSON(w, http.StatusOK, `{"sha":"s1","tree":[]}`)
		})

		client := newTestClient(t, mux, repodoc.Source{Owner: "o", Repo: "r", Ref: "main"})
		entries, err := client.ListTree(context.Background(), "docs")

		require.NoError(t, err)
		assert.Equal(t, []repodoc.TreeEntry{{Path: "docs/a.md", Kind: repodoc.EntryFile, Size: 2}}, entries)
	})

	t.Run("maps unauthorized to auth error", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/repos/o/r", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, `{"message":"Bad credentials"}`)
		})

		client := newTestClient(t, mux, repodoc.Source{Owner: "o", Repo: "r"}, github.WithToken("secret"))
		_, err := client.ListTree(context.Background(), "")

		assert.Equal(t, repodoc.EAUTH, repodoc.ErrorCode(err))
	})

	t.Run("maps missing repository to not found", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/repos/o/r/git/trees/main", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, `{"message":"Not Found"}`)
		})

		client := newTestClient(t, mux, repodoc.Source{Owner: "o", Repo: "r", Ref: "main"})
		_, err := client.ListTree(context.Background(), "")

		assert.Equal(t, repodoc.ENOTFOUND, repodoc.ErrorCode(err))
	})

	t.Run("maps connection failures to network error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NewServeMux())
		url := server.URL
		server.Close()

		client, err := github.NewClient(context.Background(), repodoc.Source{Owner: "o", Repo: "r", Ref: "main"},
			github.WithBaseURL(url),
			github.WithRateLimiter(github.NewRateLimiter(rate.Inf, 1)),
		)
		require.NoError(t, err)

		_, err = client.ListTree(context.Background(), "")

		assert.Equal(t, repodoc.ENETWORK, repodoc.ErrorCode(err))
	})
}

func TestClient_GetContent(t *testing.T) {
	t.Parallel()

	t.Run("decodes base64 content at ref", func(t *testing.T) {
		t.Parallel()

		encoded := base64.StdEncoding.EncodeToString([]byte("# A\n\nBody."))
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/o/r/contents/docs/a.md", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "main", r.URL.Query().Get("ref"))
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, fmt.Sprintf(`{"type":"file","path":"docs/a.md","encoding":"base64","content":%q}`, encoded))
		})

		client := newTestClient(t, mux, repodoc.Source{Owner: "o", Repo: "r", Ref: "main"}, github.WithToken("secret"))
		content, err := client.GetContent(context.Background(), "docs/a.md")

		require.NoError(t, err)
		assert.Equal(t, "# A\n\nBody.", string(content))
	})

	t.Run("returns not found for missing file", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/repos/o/r/contents/gone.md", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, `{"message":"Not Found"}`)
		})

		client := newTestClient(t, mux, repodoc.Source{Owner: "o", Repo: "r", Ref: "main"})
		_, err := client.GetContent(context.Background(), "gone.md")

		assert.Equal(t, repodoc.ENOTFOUND, repodoc.ErrorCode(err))
	})

	t.Run("retries when rate limited", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int64
		encoded := base64.StdEncoding.EncodeToString([]byte("ok"))
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/o/r/contents/a.md", func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				writeJSON(w, http.StatusTooManyRequests, `{"message":"slow down"}`)
				return
			}
			writeJSON(w, http.StatusOK, fmt.Sprintf(`{"type":"file","encoding":"base64","content":%q}`, encoded))
		})

		client := newTestClient(t, mux, repodoc.Source{Owner: "o", Repo: "r", Ref: "main"})
		content, err := client.GetContent(context.Background(), "a.md")

		require.NoError(t, err)
		assert.Equal(t, "ok", string(content))
		assert.Equal(t, int64(2), calls.Load())
	})

	t.Run("gives up after retries", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int64
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/o/r/contents/a.md", func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			writeJSON(w, http.StatusTooManyRequests, `{"message":"slow down"}`)
		})

		client := newTestClient(t, mux, repodoc.Source{Owner: "o", Repo: "r", Ref: "main"})
		_, err := client.GetContent(context.Background(), "a.md")

		assert.Equal(t, repodoc.ERATELIMIT, repodoc.ErrorCode(err))
		assert.Equal(t, int64(3), calls.Load())
	})

	t.Run("does not retry other failures", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int64
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/o/r/contents/a.md", func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			writeJSON(w, http.StatusInternalServerError, `{"message":"oops"}`)
		})

		client := newTestClient(t, mux, repodoc.Source{Owner: "o", Repo: "r", Ref: "main"})
		_, err := client.GetContent(context.Background(), "a.md")

		assert.Equal(t, repodoc.ENETWORK, repodoc.ErrorCode(err))
		assert.Equal(t, int64(1), calls.Load())
	})
}
