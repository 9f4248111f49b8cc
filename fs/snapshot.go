package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/repodoc"
)

// SnapshotMarker is the file that identifies a directory written by a
// SnapshotStore. Repository skips it as a hidden entry.
const SnapshotMarker = ".repodoc-snapshot"

// SnapshotStore writes documents to a directory with atomic update
// semantics. Files are saved to a temporary directory, then moved into
// place on Commit. Contents are written verbatim, so serving the directory
// with Repository reproduces the same corpus. Only an absent or empty
// directory, or one holding a previous snapshot, is ever replaced.
type SnapshotStore struct {
	baseDir string
	name    string
}

// NewSnapshotStore creates a new SnapshotStore.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewSnapshotStore(baseDir, name string) *SnapshotStore {
	return &SnapshotStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *SnapshotStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

// Dir returns the final directory of the snapshot.
func (s *SnapshotStore) Dir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes doc at its repository path below the temporary directory.
func (s *SnapshotStore) Save(doc *repodoc.Document) error {
	if !iofs.ValidPath(doc.Path) || doc.Path == "." || doc.Path == SnapshotMarker {
		return repodoc.Errorf(repodoc.EINVALID, "invalid document path %q", doc.Path)
	}

	fullPath := filepath.Join(s.tempDir(), filepath.FromSlash(doc.Path))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(doc.Content), 0644)
}

// CheckDestination returns EINVALID if the final directory exists and
// cannot be replaced: it is not a directory, or it has content but no
// snapshot marker.
func (s *SnapshotStore) CheckDestination() error {
	info, err := os.Stat(s.Dir())
	if errors.Is(err, iofs.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	if !info.IsDir() {
		return repodoc.Errorf(repodoc.EINVALID, "%s exists and is not a directory", s.Dir())
	}

	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	if _, err := os.Stat(filepath.Join(s.Dir(), SnapshotMarker)); err == nil {
		return nil
	}
	return repodoc.Errorf(repodoc.EINVALID, "%s is not empty and does not hold a previous export", s.Dir())
}

// Commit replaces the final directory with the temporary one. It fails
// with EINVALID when CheckDestination does.
func (s *SnapshotStore) Commit() error {
	if err := s.CheckDestination(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.tempDir(), SnapshotMarker), nil, 0644); err != nil {
		return err
	}
	if err := os.RemoveAll(s.Dir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.Dir())
}

// Abort discards the temporary directory.
func (s *SnapshotStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
