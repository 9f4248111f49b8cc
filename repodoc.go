// Package repodoc serves the documentation files of a source repository to
// an assistant over a line-oriented tool protocol. It scans the repository
// lazily on first use, keeps the resulting corpus in memory and answers
// listing, lookup and relevance queries against it.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., github/, bleve/, mcp/).
package repodoc
