package main

import (
	"fmt"

	"github.com/fwojciec/repodoc"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	res, err := deps.Documents.SearchDocuments(deps.Ctx, repodoc.Query{Text: c.Query, Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repodoc.ErrorMessage(err))
		return err
	}

	if res.Total == 0 {
		fmt.Fprintf(deps.Stdout, "No documents match %q.\n", c.Query)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Found %d documents (showing %d):\n\n", res.Total, res.Returned())
	for i, r := range res.Results {
		fmt.Fprintf(deps.Stdout, "  %d. %s  [%.2f]\n     %s\n", i+1, r.Document.Title, r.Score, r.Document.Path)
	}
	return nil
}
