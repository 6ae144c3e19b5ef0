// Package lsp exposes the compiler pipeline over the Language Server
// Protocol, grounded on the teacher's internal/lsp package: hover shows
// an occurrence's resolved facts (observed, never_stored, store_active)
// instead of Kanso type information, and diagnostics carries parse
// errors from internal/grammar.
package lsp

import (
	"fmt"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"chrc/internal/ast"
	"chrc/internal/config"
	"chrc/internal/grammar"
	"chrc/internal/pipeline"
)

// Handler tracks open documents and their last successful compile
// result, guarded by mu since glsp dispatches handlers concurrently.
type Handler struct {
	mu      sync.RWMutex
	content map[string]string
	results map[string][]pipeline.Result
}

func NewHandler() *Handler {
	return &Handler{
		content: make(map[string]string),
		results: make(map[string][]pipeline.Result),
	}
}

func (h *Handler) Initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := protocol.ServerCapabilities{
		TextDocumentSync: protocol.TextDocumentSyncKindFull,
		HoverProvider:    true,
	}
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo:   &protocol.InitializeResultServerInfo{Name: "chrc-lsp"},
	}, nil
}

func (h *Handler) Initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (h *Handler) Shutdown(context *glsp.Context) error { return nil }

func (h *Handler) SetTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

func (h *Handler) TextDocumentDidOpen(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	h.compileAndPublish(context, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (h *Handler) TextDocumentDidChange(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	if full, ok := params.ContentChanges[len(params.ContentChanges)-1].(protocol.TextDocumentContentChangeEventWhole); ok {
		h.compileAndPublish(context, params.TextDocument.URI, full.Text)
	}
	return nil
}

func (h *Handler) TextDocumentDidClose(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	h.mu.Lock()
	delete(h.content, params.TextDocument.URI)
	delete(h.results, params.TextDocument.URI)
	h.mu.Unlock()
	return nil
}

func (h *Handler) compileAndPublish(context *glsp.Context, uri, text string) {
	h.mu.Lock()
	h.content[uri] = text
	programs, parseErrs := grammar.ParseSource(uri, text)
	var results []pipeline.Result
	for _, p := range programs {
		results = append(results, pipeline.Compile(p, config.Default()))
	}
	h.results[uri] = results
	h.mu.Unlock()

	diagnostics := ConvertParseErrors(parseErrs)
	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// TextDocumentHover reports, for a position inside the name of an
// occurrence's active head atom (kept or deleted), the
// observed/never_stored/store_active facts of the constraint it belongs
// to.
func (h *Handler) TextDocumentHover(context *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, result := range h.results[params.TextDocument.URI] {
		for _, occ := range result.Program.OccRules {
			if !withinAtom(occ.ActiveConstraint, params.Position) {
				continue
			}
			decl := result.Program.Decl(occ.ActiveConstraint.Name)
			text := fmt.Sprintf(
				"**%s**\n\nobserved: %t\n\nnever_stored: %t\n\nstore_active: %t",
				occ.ActiveConstraint.Name,
				result.Graph.Observed(occ.ActiveConstraint.Name),
				decl != nil && decl.NeverStored,
				occ.StoreActiveConstraint(),
			)
			kind := protocol.MarkupKindMarkdown
			return &protocol.Hover{Contents: protocol.MarkupContent{Kind: kind, Value: text}}, nil
		}
	}
	return nil, nil
}

func withinAtom(atom *ast.HeadAtom, pos protocol.Position) bool {
	line := uint32(atom.Pos().Line - 1)
	col := uint32(atom.Pos().Column - 1)
	return line == pos.Line && pos.Character >= col && pos.Character <= col+uint32(len(atom.Name))
}
