package repodoc

import (
	"context"
	"path"
	"strings"
)

// EntryKind distinguishes files from directories in a repository tree.
type EntryKind string

// EntryKind constants.
const (
	EntryFile EntryKind = "file"
	EntryDir  EntryKind = "dir"
)

// TreeEntry is one node of a repository tree listing.
type TreeEntry struct {
	Path string
	Kind EntryKind
	Size int64
}

// Repository reads files from a source repository.
type Repository interface {
	// ListTree returns every entry below subfolder, recursively. An empty
	// subfolder lists the whole repository. Paths are slash separated and
	// relative to the repository root.
	ListTree(ctx context.Context, subfolder string) ([]TreeEntry, error)

	// GetContent returns the raw bytes of the file at path.
	// Returns ENOTFOUND if the file does not exist.
	GetContent(ctx context.Context, path string) ([]byte, error)
}

// Source identifies a remote repository and the part of it to serve.
type Source struct {
	Owner     string
	Repo      string
	Ref       string
	Subfolder string
}

// Validate returns ECONFIG if the source coordinates are incomplete.
func (s Source) Validate() error {
	if strings.TrimSpace(s.Owner) == "" {
		return Errorf(ECONFIG, "repository owner required")
	}
	if strings.TrimSpace(s.Repo) == "" {
		return Errorf(ECONFIG, "repository name required")
	}
	if strings.Contains(s.Owner, "/") || strings.Contains(s.Repo, "/") {
		return Errorf(ECONFIG, "invalid repository %q", s.Owner+"/"+s.Repo)
	}
	return nil
}

// String returns the source in owner/repo form.
func (s Source) String() string {
	return s.Owner + "/" + s.Repo
}

// CleanSubfolder normalizes a subfolder to a slash separated path with no
// leading or trailing slash. The repository root is "".
func CleanSubfolder(subfolder string) string {
	subfolder = strings.Trim(strings.ReplaceAll(subfolder, "\\", "/"), "/")
	if subfolder == "" {
		return ""
	}
	cleaned := path.Clean(subfolder)
	if cleaned == "." {
		return ""
	}
	return cleaned
}

// InSubfolder reports whether p lies below subfolder. Every path lies below
// the root. Matching is done on whole path segments, so "docs" does not
// contain "docsite/a.md".
func InSubfolder(p, subfolder string) bool {
	subfolder = CleanSubfolder(subfolder)
	if subfolder == "" {
		return true
	}
	return strings.HasPrefix(p, subfolder+"/")
}
