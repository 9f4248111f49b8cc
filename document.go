package repodoc

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"path"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Document represents one documentation file of the scanned repository.
type Document struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`

	// Hash is the xxhash of Content, hex encoded.
	Hash string `json:"-"`
}

// NewDocument builds a Document from a repository path and its raw text,
// deriving the title and summary from the content.
func NewDocument(p, content string) *Document {
	meta := ParseMarkdown(content)
	title := meta.Title
	if title == "" {
		title = BaseTitle(p)
	}
	return &Document{
		Path:    p,
		Title:   title,
		Summary: meta.Summary,
		Content: content,
		Hash:    HashContent(content),
	}
}

// BaseTitle returns the file name of p without its extension, or the full
// file name when nothing would be left.
func BaseTitle(p string) string {
	base := path.Base(p)
	if stem := strings.TrimSuffix(base, path.Ext(base)); stem != "" {
		return stem
	}
	return base
}

// HashContent returns the hex encoded xxhash of content.
func HashContent(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}

// Fingerprint returns a hash identifying a set of documents by path and
// content. The order of docs does not matter.
func Fingerprint(docs []*Document) string {
	sorted := make([]*Document, len(docs))
	copy(sorted, docs)
	SortDocuments(sorted)

	d := xxhash.New()
	for _, doc := range sorted {
		_, _ = d.WriteString(doc.Path)
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(doc.Hash)
		_, _ = d.Write([]byte{0})
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], d.Sum64())
	return hex.EncodeToString(b[:])
}

// SortDocuments sorts docs by path in byte order.
func SortDocuments(docs []*Document) {
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
}

// DocumentService provides read access to the documentation corpus. The
// corpus is built on first use; every method waits for it to be ready.
type DocumentService interface {
	// EnsureReady builds the corpus if it has not been built yet.
	// Returns ESCAN if the repository could not be scanned.
	EnsureReady(ctx context.Context) error

	// ListDocuments returns documents sorted by path, truncated to limit
	// when limit is non-nil.
	ListDocuments(ctx context.Context, limit *int) ([]*Document, error)

	// FindDocumentByPath returns the document stored at an exact path.
	// Returns ENOTFOUND if no such document exists.
	FindDocumentByPath(ctx context.Context, path string) (*Document, error)

	// SearchDocuments ranks documents against a free-text query.
	SearchDocuments(ctx context.Context, q Query) (*SearchResult, error)
}

// ValidateLimit returns EINVALID for a negative limit.
func ValidateLimit(limit *int) error {
	if limit != nil && *limit < 0 {
		return Errorf(EINVALID, "limit must be non-negative, got %d", *limit)
	}
	return nil
}

// ApplyLimit truncates n items to limit when limit is non-nil.
func ApplyLimit(n int, limit *int) int {
	if limit == nil || *limit > n {
		return n
	}
	return *limit
}
