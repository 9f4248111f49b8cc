package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/repodoc"
	"github.com/fwojciec/repodoc/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.ListDocuments(deps.Ctx, nil)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repodoc.ErrorMessage(err))
		return err
	}

	dir, err := filepath.Abs(c.Dir)
	if err != nil {
		return err
	}
	store := fs.NewSnapshotStore(filepath.Dir(dir), filepath.Base(dir))
	if err := store.CheckDestination(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repodoc.ErrorMessage(err))
		return err
	}
	if err := store.Abort(); err != nil {
		return fmt.Errorf("failed to clear previous export: %w", err)
	}

	for _, doc := range docs {
		if err := store.Save(doc); err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error: failed to write %s: %v\n", doc.Path, err)
			return err
		}
	}
	if err := store.Commit(); err != nil {
		_ = store.Abort()
		return fmt.Errorf("failed to commit export: %w", err)
	}

	if deps.Corpus != nil {
		report := deps.Corpus.Report()
		fmt.Fprintf(deps.Stdout, "Exported %d documents to %s (fingerprint %s, %d skipped)\n",
			len(docs), store.Dir(), report.Fingerprint, len(report.Failures))
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Exported %d documents to %s\n", len(docs), store.Dir())
	return nil
}
