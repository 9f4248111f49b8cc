// Package mcp serves the document corpus to language-model agents as a
// Model Context Protocol server built on the official Go SDK.
package mcp

import (
	"encoding/json"

	"github.com/fwojciec/repodoc"
	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
)

// JSON-RPC error codes returned by tool calls.
const (
	CodeInvalidParams = -32602
	CodeInternal      = -32603
	CodeNotFound      = -32002
	CodeScanFailed    = -32010
)

// ErrorData is carried in the data member of every tool error so that
// clients can tell a missing document from a failed scan without parsing
// messages.
type ErrorData struct {
	Kind string `json:"kind"`
}

// errorFrom converts an application error into a JSON-RPC error. The SDK
// passes a *jsonrpc.Error returned by a tool handler to the client as is.
func errorFrom(err error) *jsonrpc.Error {
	code := repodoc.ErrorCode(err)
	data, _ := json.Marshal(ErrorData{Kind: repodoc.ErrorKind(code)})

	e := &jsonrpc.Error{Message: repodoc.ErrorMessage(err), Data: data}
	switch code {
	case repodoc.EINVALID:
		e.Code = CodeInvalidParams
	case repodoc.ENOTFOUND:
		e.Code = CodeNotFound
	case repodoc.ESCAN:
		e.Code = CodeScanFailed
	default:
		e.Code = CodeInternal
	}
	return e
}
