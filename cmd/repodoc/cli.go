package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/repodoc"
	"github.com/fwojciec/repodoc/corpus"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Transport sdk.Transport
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Documents repodoc.DocumentService
	Corpus    *corpus.Store
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   kong.ConfigFlag `help:"Load flag values from a YAML file (env REPODOC_CONFIG)"`
	LogLevel string          `default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	LogFile  string          `help:"Write logs to this file instead of stderr"`

	Source SourceFlags `embed:""`

	Serve  ServeCmd  `cmd:"" help:"Serve documentation tools over stdio"`
	List   ListCmd   `cmd:"" help:"List all documents"`
	Show   ShowCmd   `cmd:"" help:"Print a single document"`
	Search SearchCmd `cmd:"" help:"Rank documents against a query"`
	Export ExportCmd `cmd:"" help:"Write the scanned documents to a directory"`
}

// SourceFlags select the repository to scan.
type SourceFlags struct {
	Owner       string   `default:"modelcontextprotocol" env:"REPODOC_OWNER" help:"GitHub repository owner"`
	Repo        string   `default:"rust-sdk" env:"REPODOC_REPO" help:"GitHub repository name"`
	Ref         string   `help:"Branch, tag or commit (default branch when empty)"`
	Subfolder   string   `help:"Only scan files below this folder"`
	Token       string   `env:"GITHUB_TOKEN" help:"GitHub access token"`
	APIURL      string   `name:"api-url" env:"GITHUB_API_URL" help:"GitHub API base URL"`
	Dir         string   `help:"Scan a local directory instead of GitHub"`
	Ext         []string `name:"ext" sep:"," help:"Documentation file extensions (default md,mdx,markdown,txt,rst,adoc)"`
	Concurrency int      `short:"c" default:"5" help:"Concurrent content fetch limit"`
	Fuzzy       bool     `help:"Fall back to fuzzy matching when a query matches nothing"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Warm bool `help:"Start scanning at startup instead of on the first request"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Limit *int `short:"n" help:"Maximum number of documents to print"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Path string `arg:"" help:"Repository path of the document"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Free-text query"`
	Limit *int   `short:"n" help:"Maximum number of results to print"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir string `arg:"" help:"Destination directory (replaced on success)"`
}
