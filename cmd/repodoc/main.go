package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/repodoc"
	"github.com/fwojciec/repodoc/bleve"
	"github.com/fwojciec/repodoc/corpus"
	rdfs "github.com/fwojciec/repodoc/fs"
	"github.com/fwojciec/repodoc/github"
	"github.com/fwojciec/repodoc/goquery"
	"github.com/fwojciec/repodoc/htmltomarkdown"
	"github.com/fwojciec/repodoc/rank"
	"github.com/fwojciec/repodoc/scan"
	rdslog "github.com/fwojciec/repodoc/slog"
	"github.com/joho/godotenv"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := loadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	m := NewMain()
	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	_ = m.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadDotEnv sets environment variables from path if the file exists.
// Variables already present in the environment are kept.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Main represents the program.
type Main struct {
	// Transport carries the serve command's session. Defaults to stdio.
	Transport sdk.Transport

	// Repository replaces the GitHub or directory source when set.
	Repository repodoc.Repository

	// Documents replaces the scanned corpus when set. Used by tests.
	Documents repodoc.DocumentService

	// Corpus is the store built during Run, nil when Documents is set.
	Corpus *corpus.Store

	logFile io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Transport: &sdk.StdioTransport{}}
}

// Close releases resources opened by Run.
func (m *Main) Close() error {
	if m.logFile != nil {
		err := m.logFile.Close()
		m.logFile = nil
		return err
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:       ctx,
		Transport: m.Transport,
		Stdout:    stdout,
		Stderr:    stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("repodoc"),
		kong.Description("Serve the documentation of a GitHub repository to language-model agents."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(YAMLConfig, configPaths()...),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'repodoc --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, err := m.openLogger(cli.LogLevel, cli.LogFile, stderr)
	if err != nil {
		return err
	}
	deps.Logger = logger

	if err := m.wire(ctx, cli, deps); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", repodoc.ErrorMessage(err))
		if repodoc.ErrorCode(err) == repodoc.ECONFIG {
			fmt.Fprintln(stderr, "Hint: pass --owner and --repo, or --dir to serve a local directory")
		}
		return err
	}

	return kongCtx.Run(deps)
}

// wire builds the document service for the parsed flags.
func (m *Main) wire(ctx context.Context, cli *CLI, deps *Dependencies) error {
	if m.Documents != nil {
		deps.Documents = m.Documents
		return nil
	}

	repo := m.Repository
	if repo == nil {
		var err error
		if repo, err = cli.Source.Open(ctx); err != nil {
			return err
		}
	}

	scanner := &scan.Scanner{
		Repository: rdslog.NewLoggingRepository(repo, deps.Logger),
		Builder: &scan.Builder{
			Extractor: goquery.NewExtractor(),
			Converter: htmltomarkdown.NewConverter(htmltomarkdown.WithPlainLinks()),
		},
		Subfolder:   cli.Source.Subfolder,
		Extensions:  scan.NewExtensionSet(cli.Source.Ext),
		Concurrency: cli.Source.Concurrency,
	}

	searcher := rank.NewSearcher
	if cli.Source.Fuzzy {
		searcher = rank.WithFallback(bleve.NewSearcher)
	}

	m.Corpus = corpus.NewStore(scanner,
		corpus.WithSearcher(searcher),
		corpus.WithLogger(deps.Logger),
	)
	deps.Corpus = m.Corpus
	deps.Documents = rdslog.NewLoggingDocumentService(m.Corpus, deps.Logger)
	return nil
}

// openLogger returns a text logger writing to file, or to stderr when file
// is empty. Protocol frames own stdout, so logs never go there.
func (m *Main) openLogger(level, file string, stderr io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, repodoc.Errorf(repodoc.ECONFIG, "invalid log level %q", level)
	}

	w := stderr
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, repodoc.Errorf(repodoc.ECONFIG, "open log file: %v", err)
		}
		m.logFile = f
		w = f
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// Open returns the repository selected by the flags: a local directory when
// Dir is set, otherwise the GitHub repository Owner/Repo.
func (f *SourceFlags) Open(ctx context.Context) (repodoc.Repository, error) {
	if f.Dir != "" {
		return rdfs.NewRepository(f.Dir)
	}

	opts := []github.Option{github.WithToken(f.Token)}
	if f.APIURL != "" {
		opts = append(opts, github.WithBaseURL(f.APIURL))
	}
	return github.NewClient(ctx, f.Remote(), opts...)
}

// Remote returns the GitHub coordinates selected by the flags.
func (f *SourceFlags) Remote() repodoc.Source {
	return repodoc.Source{
		Owner:     f.Owner,
		Repo:      f.Repo,
		Ref:       f.Ref,
		Subfolder: f.Subfolder,
	}
}
