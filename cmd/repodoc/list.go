package main

import (
	"fmt"

	"github.com/fwojciec/repodoc"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.ListDocuments(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repodoc.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found.")
		return nil
	}

	fmt.Fprint(deps.Stdout, repodoc.FormatDocumentList(docs))
	return nil
}
