package main

import (
	"fmt"

	"github.com/fwojciec/repodoc"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	doc, err := deps.Documents.FindDocumentByPath(deps.Ctx, c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repodoc.ErrorMessage(err))
		if repodoc.ErrorCode(err) == repodoc.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "Hint: run 'repodoc list' to see available paths")
		}
		return err
	}

	fmt.Fprintln(deps.Stdout, repodoc.FormatDocuments([]*repodoc.Document{doc}))
	return nil
}
