// Package github reads repository trees and file contents from the GitHub
// REST API.
package github

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/repodoc"
	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxDepth bounds directory recursion when the API truncates a
	// recursive tree listing.
	DefaultMaxDepth = 16
)

// Ensure Client implements repodoc.Repository at compile time.
var _ repodoc.Repository = (*Client)(nil)

// Client implements repodoc.Repository for one GitHub repository.
type Client struct {
	gh          *gh.Client
	source      repodoc.Source
	limiter     *RateLimiter
	retryDelays []time.Duration
	maxDepth    int

	mu  sync.Mutex
	ref string
}

type config struct {
	token       string
	baseURL     string
	httpClient  *http.Client
	limiter     *RateLimiter
	retryDelays []time.Duration
	maxDepth    int
}

// Option configures a Client.
type Option func(*config)

// WithToken authenticates requests with a personal access token.
func WithToken(token string) Option {
	return func(c *config) {
		c.token = token
	}
}

// WithBaseURL points the client at a GitHub Enterprise or test server.
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the underlying HTTP client. A token set with
// WithToken is layered on top of its transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) {
		c.httpClient = hc
	}
}

// WithRateLimiter replaces the default request throttle.
func WithRateLimiter(l *RateLimiter) Option {
	return func(c *config) {
		c.limiter = l
	}
}

// WithRetryDelays sets the backoff used for rate-limited requests.
func WithRetryDelays(delays []time.Duration) Option {
	return func(c *config) {
		c.retryDelays = delays
	}
}

// WithMaxDepth bounds directory recursion for truncated tree listings.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// NewClient returns a client for the repository identified by source.
// Returns ECONFIG if the source or options are invalid.
func NewClient(ctx context.Context, source repodoc.Source, opts ...Option) (*Client, error) {
	if err := source.Validate(); err != nil {
		return nil, err
	}

	cfg := config{
		limiter:     NewRateLimiter(rate.Limit(DefaultRate), DefaultBurst),
		retryDelays: DefaultRetryDelays(),
		maxDepth:    DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	if cfg.token != "" {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, hc)
		tc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.token}))
		tc.Timeout = hc.Timeout
		hc = tc
	}

	client := gh.NewClient(hc)
	if cfg.baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(cfg.baseURL, "/") + "/")
		if err != nil {
			return nil, repodoc.Errorf(repodoc.ECONFIG, "invalid GitHub API URL %q: %v", cfg.baseURL, err)
		}
		client.BaseURL = u
	}

	return &Client{
		gh:          client,
		source:      source,
		limiter:     cfg.limiter,
		retryDelays: cfg.retryDelays,
		maxDepth:    cfg.maxDepth,
		ref:         source.Ref,
	}, nil
}

// ListTree returns every file and directory below subfolder at the
// configured ref, resolving the default branch when no ref is set.
func (c *Client) ListTree(ctx context.Context, subfolder string) ([]repodoc.TreeEntry, error) {
	ref, err := c.resolveRef(ctx)
	if err != nil {
		return nil, err
	}
	subfolder = repodoc.CleanSubfolder(subfolder)

	var tree *gh.Tree
	err = c.do(ctx, func() error {
		t, resp, err := c.gh.Git.GetTree(ctx, c.source.Owner, c.source.Repo, ref, true)
		c.limiter.Update(resp)
		tree = t
		return wrapError(err, "list tree "+c.source.String()+"@"+ref)
	})
	if err != nil {
		return nil, err
	}

	if tree.GetTruncated() {
		return c.walk(ctx, tree.GetSHA(), "", subfolder, 0)
	}
	return filterEntries(tree.Entries, "", subfolder), nil
}

// walk lists a tree one level at a time, descending only into directories
// on the way to or below subfolder.
func (c *Client) walk(ctx context.Context, sha, prefix, subfolder string, depth int) ([]repodoc.TreeEntry, error) {
	var tree *gh.Tree
	err := c.do(ctx, func() error {
		t, resp, err := c.gh.Git.GetTree(ctx, c.source.Owner, c.source.Repo, sha, false)
		c.limiter.Update(resp)
		tree = t
		return wrapError(err, "list tree "+c.source.String()+"/"+prefix)
	})
	if err != nil {
		return nil, err
	}

	entries := filterEntries(tree.Entries, prefix, subfolder)
	if depth >= c.maxDepth {
		return entries, nil
	}
	for _, e := range tree.Entries {
		if e.GetType() != "tree" {
			continue
		}
		p := path.Join(prefix, e.GetPath())
		if !onPath(p, subfolder) {
			continue
		}
		children, err := c.walk(ctx, e.GetSHA(), p, subfolder, depth+1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, children...)
	}
	return entries, nil
}

// GetContent returns the raw bytes of the file at p.
func (c *Client) GetContent(ctx context.Context, p string) ([]byte, error) {
	ref, err := c.resolveRef(ctx)
	if err != nil {
		return nil, err
	}
	opts := &gh.RepositoryContentGetOptions{Ref: ref}

	var file *gh.RepositoryContent
	err = c.do(ctx, func() error {
		f, _, resp, err := c.gh.Repositories.GetContents(ctx, c.source.Owner, c.source.Repo, p, opts)
		c.limiter.Update(resp)
		file = f
		return wrapError(err, "get contents "+p)
	})
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, repodoc.Errorf(repodoc.EINVALID, "%s is a directory, not a file", p)
	}

	// Files over 1 MB come back without inline content.
	if file.GetEncoding() == "none" {
		return c.download(ctx, p, opts)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, repodoc.Errorf(repodoc.EINVALID, "decode %s: %v", p, err)
	}
	return []byte(content), nil
}

func (c *Client) download(ctx context.Context, p string, opts *gh.RepositoryContentGetOptions) ([]byte, error) {
	var data []byte
	err := c.do(ctx, func() error {
		rc, resp, err := c.gh.Repositories.DownloadContents(ctx, c.source.Owner, c.source.Repo, p, opts)
		c.limiter.Update(resp)
		if err != nil {
			return wrapError(err, "download "+p)
		}
		defer rc.Close()
		data, err = io.ReadAll(rc)
		return wrapError(err, "download "+p)
	})
	return data, err
}

// resolveRef returns the configured ref, looking up the default branch the
// first time when none is configured.
func (c *Client) resolveRef(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ref != "" {
		return c.ref, nil
	}

	var repo *gh.Repository
	err := c.do(ctx, func() error {
		r, resp, err := c.gh.Repositories.Get(ctx, c.source.Owner, c.source.Repo)
		c.limiter.Update(resp)
		repo = r
		return wrapError(err, "get repository "+c.source.String())
	})
	if err != nil {
		return "", err
	}

	c.ref = repo.GetDefaultBranch()
	if c.ref == "" {
		c.ref = "HEAD"
	}
	return c.ref, nil
}

// do throttles and retries a single API call.
func (c *Client) do(ctx context.Context, call func() error) error {
	return withRetry(ctx, c.retryDelays, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			if repodoc.ErrorCode(err) == repodoc.ERATELIMIT {
				return err
			}
			return repodoc.Wrapf(repodoc.ENETWORK, err, "wait for rate limiter: %v", err)
		}
		return call()
	})
}

func filterEntries(entries []*gh.TreeEntry, prefix, subfolder string) []repodoc.TreeEntry {
	var out []repodoc.TreeEntry
	for _, e := range entries {
		p := path.Join(prefix, e.GetPath())
		if !repodoc.InSubfolder(p, subfolder) {
			continue
		}
		switch e.GetType() {
		case "blob":
			out = append(out, repodoc.TreeEntry{Path: p, Kind: repodoc.EntryFile, Size: int64(e.GetSize())})
		case "tree":
			out = append(out, repodoc.TreeEntry{Path: p, Kind: repodoc.EntryDir})
		}
	}
	return out
}

// onPath reports whether directory p is subfolder, below it, or one of its
// ancestors.
func onPath(p, subfolder string) bool {
	if subfolder == "" || p == subfolder {
		return true
	}
	return strings.HasPrefix(p, subfolder+"/") || strings.HasPrefix(subfolder, p+"/")
}
