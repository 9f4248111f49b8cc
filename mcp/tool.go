package mcp

// Tool names.
const (
	ToolGetAllDocs       = "get_all_docs"
	ToolGetDocument      = "get_document"
	ToolFindRelevantDocs = "find_relevant_docs"
)

// ToolCall is one decoded tool invocation. The set of implementations is
// closed: GetAllDocs, GetDocument and FindRelevantDocs. Each variant is
// also the input type of its tool, so the SDK derives the advertised
// schema from the struct tags and rejects arguments that do not match.
type ToolCall interface {
	ToolName() string
	toolCall()
}

// GetAllDocs lists documents sorted by path.
type GetAllDocs struct {
	Limit *int `json:"limit,omitempty" jsonschema:"the maximum number of documents to return"`
}

// GetDocument fetches a single document by its exact path.
type GetDocument struct {
	Path string `json:"path" jsonschema:"the path of the document to retrieve"`
}

// FindRelevantDocs ranks documents against a free-text query.
type FindRelevantDocs struct {
	Query string `json:"query" jsonschema:"the query to search for relevant documents"`
	Limit *int   `json:"limit,omitempty" jsonschema:"the maximum number of documents to return"`
}

func (GetAllDocs) ToolName() string       { return ToolGetAllDocs }
func (GetDocument) ToolName() string      { return ToolGetDocument }
func (FindRelevantDocs) ToolName() string { return ToolFindRelevantDocs }

func (GetAllDocs) toolCall()       {}
func (GetDocument) toolCall()      {}
func (FindRelevantDocs) toolCall() {}
