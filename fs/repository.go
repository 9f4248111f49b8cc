// Package fs reads and writes documentation files on the local filesystem.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path"

	"github.com/fwojciec/repodoc"
)

// Ensure Repository implements repodoc.Repository at compile time.
var _ repodoc.Repository = (*Repository)(nil)

// Repository serves a directory tree as a repository.
type Repository struct {
	fsys iofs.FS
}

// NewRepository returns a Repository rooted at dir.
// Returns ECONFIG if dir is not a directory.
func NewRepository(dir string) (*Repository, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, repodoc.Errorf(repodoc.ECONFIG, "open directory %q: %v", dir, err)
	}
	if !info.IsDir() {
		return nil, repodoc.Errorf(repodoc.ECONFIG, "%q is not a directory", dir)
	}
	return &Repository{fsys: os.DirFS(dir)}, nil
}

// NewRepositoryFS returns a Repository backed by fsys.
func NewRepositoryFS(fsys iofs.FS) *Repository {
	return &Repository{fsys: fsys}
}

// ListTree walks the tree below subfolder. Hidden entries (names starting
// with a dot) are skipped.
func (r *Repository) ListTree(ctx context.Context, subfolder string) ([]repodoc.TreeEntry, error) {
	root := repodoc.CleanSubfolder(subfolder)
	if root == "" {
		root = "."
	}
	if !iofs.ValidPath(root) {
		return nil, repodoc.Errorf(repodoc.EINVALID, "invalid subfolder %q", subfolder)
	}

	var entries []repodoc.TreeEntry
	err := iofs.WalkDir(r.fsys, root, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p == root {
			return nil
		}
		if name := path.Base(p); len(name) > 0 && name[0] == '.' {
			if d.IsDir() {
				return iofs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			entries = append(entries, repodoc.TreeEntry{Path: p, Kind: repodoc.EntryDir})
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		entries = append(entries, repodoc.TreeEntry{Path: p, Kind: repodoc.EntryFile, Size: info.Size()})
		return nil
	})
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, repodoc.Wrapf(repodoc.ENOTFOUND, err, "subfolder %q not found", subfolder)
	} else if err != nil {
		return nil, repodoc.Wrapf(repodoc.ENETWORK, err, "walk %q: %v", root, err)
	}
	return entries, nil
}

// GetContent reads the file at p.
func (r *Repository) GetContent(ctx context.Context, p string) ([]byte, error) {
	if !iofs.ValidPath(p) {
		return nil, repodoc.Errorf(repodoc.EINVALID, "invalid path %q", p)
	}
	data, err := iofs.ReadFile(r.fsys, p)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, repodoc.Errorf(repodoc.ENOTFOUND, "file %q not found", p)
	} else if err != nil {
		return nil, repodoc.Wrapf(repodoc.ENETWORK, err, "read %q: %v", p, err)
	}
	return data, nil
}
