package repodoc

import "strings"

// FormatDocuments formats documents for display.
// Uses title if available, falls back to path.
// Documents are separated by blank lines.
func FormatDocuments(docs []*Document) string {
	if len(docs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		header := doc.Title
		if header == "" {
			header = doc.Path
		}
		parts = append(parts, "## Document: "+header+" ("+doc.Path+")\n"+doc.Content)
	}

	return strings.Join(parts, "\n\n")
}

// FormatDocumentList formats one line per document: path, title and summary.
func FormatDocumentList(docs []*Document) string {
	var sb strings.Builder
	for _, doc := range docs {
		sb.WriteString(doc.Path)
		sb.WriteString("\t")
		sb.WriteString(doc.Title)
		if doc.Summary != "" {
			sb.WriteString("\t")
			sb.WriteString(doc.Summary)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
