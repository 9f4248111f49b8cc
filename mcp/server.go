package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/fwojciec/repodoc"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// DefaultInstructions is returned to clients during initialization.
const DefaultInstructions = "This server provides tools to access documentation from a GitHub repository. " +
	"Use 'get_all_docs' to retrieve all available documents, 'get_document' to fetch a specific document by path, " +
	"or 'find_relevant_docs' to search for documents relevant to a query."

// Name is the implementation name reported to clients.
const Name = "repodoc"

// DocumentsResult is the result of get_all_docs.
type DocumentsResult struct {
	Documents []*repodoc.Document `json:"documents"`
}

// DocumentResult is the result of get_document.
type DocumentResult struct {
	Document *repodoc.Document `json:"document"`
}

// SearchResult is the result of find_relevant_docs.
type SearchResult struct {
	Total     int                 `json:"total"`
	Returned  int                 `json:"returned"`
	Documents []*repodoc.Document `json:"documents"`
}

// Server exposes a DocumentService as the three documentation tools.
type Server struct {
	Documents repodoc.DocumentService

	version      string
	instructions string
	logger       *slog.Logger
	server       *sdk.Server
}

// Option configures a Server.
type Option func(*Server)

// WithVersion sets the implementation version reported to clients.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithInstructions replaces DefaultInstructions.
func WithInstructions(text string) Option {
	return func(s *Server) {
		s.instructions = text
	}
}

// WithLogger sets the logger used for session and tool failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer returns a Server backed by docs with the tools registered.
func NewServer(docs repodoc.DocumentService, opts ...Option) *Server {
	s := &Server{
		Documents:    docs,
		version:      "dev",
		instructions: DefaultInstructions,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.server = sdk.NewServer(&sdk.Implementation{Name: Name, Version: s.version}, &sdk.ServerOptions{
		Instructions:       s.instructions,
		InitializedHandler: s.initialized,
	})

	addTool[GetAllDocs, DocumentsResult](s, "Get all documents in the storage")
	addTool[GetDocument, DocumentResult](s, "Get a specific document by path")
	addTool[FindRelevantDocs, SearchResult](s, "Find documents relevant to a query")
	return s
}

// Run serves one session over t until the client disconnects or ctx is
// cancelled. A client closing its end of the transport is a clean exit.
func (s *Server) Run(ctx context.Context, t sdk.Transport) error {
	err := s.server.Run(ctx, t)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
		return nil
	}
	return err
}

// Connect starts a session over t without waiting for it to end.
func (s *Server) Connect(ctx context.Context, t sdk.Transport) (*sdk.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}

func (s *Server) initialized(ctx context.Context, req *sdk.InitializedRequest) {
	params := req.Session.InitializeParams()
	if params == nil || params.ClientInfo == nil {
		s.logger.Info("client initialized")
		return
	}
	s.logger.Info("client initialized",
		"client", params.ClientInfo.Name,
		"version", params.ClientInfo.Version,
		"protocol", params.ProtocolVersion,
	)
}

// addTool registers the tool whose input is In. The SDK validates the
// arguments against the schema inferred from In before the handler runs.
func addTool[In ToolCall, Out any](s *Server, description string) {
	var zero In
	name := zero.ToolName()

	sdk.AddTool(s.server, &sdk.Tool{Name: name, Description: description},
		func(ctx context.Context, _ *sdk.CallToolRequest, in In) (_ *sdk.CallToolResult, out Out, err error) {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("tool panicked", "tool", name, "panic", r)
					err = errorFrom(repodoc.Errorf(repodoc.EINTERNAL, "Internal error."))
				}
			}()

			v, err := s.CallTool(ctx, in)
			if err != nil {
				if repodoc.ErrorCode(err) == repodoc.EINTERNAL {
					s.logger.Error("tool failed", "tool", name, "err", err)
				}
				return nil, out, errorFrom(err)
			}
			out, ok := v.(Out)
			if !ok {
				return nil, out, errorFrom(repodoc.Errorf(repodoc.EINTERNAL, "%s produced %T", name, v))
			}
			return nil, out, nil
		})
}

// CallTool executes a decoded tool call against the document service. The
// result is one of DocumentsResult, DocumentResult or SearchResult.
func (s *Server) CallTool(ctx context.Context, call ToolCall) (any, error) {
	switch call := call.(type) {
	case GetAllDocs:
		docs, err := s.Documents.ListDocuments(ctx, call.Limit)
		if err != nil {
			return nil, err
		}
		return DocumentsResult{Documents: nonNil(docs)}, nil

	case GetDocument:
		doc, err := s.Documents.FindDocumentByPath(ctx, call.Path)
		if err != nil {
			return nil, err
		}
		return DocumentResult{Document: doc}, nil

	case FindRelevantDocs:
		res, err := s.Documents.SearchDocuments(ctx, repodoc.Query{Text: call.Query, Limit: call.Limit})
		if err != nil {
			return nil, err
		}
		return SearchResult{
			Total:     res.Total,
			Returned:  res.Returned(),
			Documents: nonNil(res.Documents()),
		}, nil
	}
	return nil, repodoc.Errorf(repodoc.EINTERNAL, "unhandled tool call %T", call)
}

func nonNil(docs []*repodoc.Document) []*repodoc.Document {
	if docs == nil {
		return []*repodoc.Document{}
	}
	return docs
}
