package scan

import (
	"path"
	"sort"
	"strings"

	"github.com/fwojciec/repodoc"
)

// DefaultExtensions are the documentation file extensions scanned when none
// are configured.
var DefaultExtensions = []string{"md", "mdx", "markdown", "txt", "rst", "adoc"}

// ExtensionSet is a case-insensitive set of file extensions without dots.
type ExtensionSet map[string]struct{}

// NewExtensionSet normalizes exts, dropping leading dots and empty entries.
// An empty input yields DefaultExtensions.
func NewExtensionSet(exts []string) ExtensionSet {
	set := make(ExtensionSet)
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			set[ext] = struct{}{}
		}
	}
	if len(set) == 0 {
		for _, ext := range DefaultExtensions {
			set[ext] = struct{}{}
		}
	}
	return set
}

// Match reports whether the extension of p is in the set.
func (s ExtensionSet) Match(p string) bool {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	if ext == "" {
		return false
	}
	_, ok := s[ext]
	return ok
}

// Candidates selects the file entries below subfolder whose extension is in
// exts. The result is deduplicated and sorted by path.
func Candidates(entries []repodoc.TreeEntry, subfolder string, exts ExtensionSet) []string {
	seen := make(map[string]struct{})
	var paths []string
	for _, e := range entries {
		if e.Kind != repodoc.EntryFile {
			continue
		}
		if !repodoc.InSubfolder(e.Path, subfolder) || !exts.Match(e.Path) {
			continue
		}
		if _, ok := seen[e.Path]; ok {
			continue
		}
		seen[e.Path] = struct{}{}
		paths = append(paths, e.Path)
	}
	sort.Strings(paths)
	return paths
}
