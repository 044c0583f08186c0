package textDocument

import (
	"bennypowers.dev/shadycss/internal/log"
	"bennypowers.dev/shadycss/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidOpen handles the textDocument/didOpen notification
func DidOpen(req *types.RequestContext, params *protocol.DidOpenTextDocumentParams) error {
	doc := params.TextDocument
	log.Info("Document opened: %s (language: %s, version: %d)", doc.URI, doc.LanguageID, doc.Version)

	if err := req.Server.DocumentManager().DidOpen(doc.URI, doc.LanguageID, int(doc.Version), doc.Text); err != nil {
		return err
	}
	publish(req, doc.URI)
	return nil
}

// DidChange handles the textDocument/didChange notification. Both ranged and
// whole-document change events are accepted.
func DidChange(req *types.RequestContext, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	version := int(params.TextDocument.Version)
	log.Debug("Document changed: %s (version: %d, changes: %d)", uri, version, len(params.ContentChanges))

	if err := req.Server.DocumentManager().DidChange(uri, version, ContentChanges(params.ContentChanges)); err != nil {
		return err
	}
	publish(req, uri)
	return nil
}

// DidClose handles the textDocument/didClose notification
func DidClose(req *types.RequestContext, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Info("Document closed: %s", uri)

	if err := req.Server.DocumentManager().DidClose(uri); err != nil {
		return err
	}
	// clears the client's diagnostics for the closed document
	publish(req, uri)
	return nil
}

// ContentChanges converts the change events glsp decodes as []any. Entries of
// any other type are dropped.
func ContentChanges(raw []any) []protocol.TextDocumentContentChangeEvent {
	changes := make([]protocol.TextDocumentContentChangeEvent, 0, len(raw))
	for _, change := range raw {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			changes = append(changes, c)
		case protocol.TextDocumentContentChangeEventWhole:
			changes = append(changes, protocol.TextDocumentContentChangeEvent{Text: c.Text})
		default:
			log.Warn("Ignoring content change of type %T", change)
		}
	}
	return changes
}

func publish(req *types.RequestContext, uri string) {
	ctx := req.Server.GLSPContext()
	if ctx == nil {
		return
	}
	if err := req.Server.PublishDiagnostics(ctx, uri); err != nil {
		req.Warnf("failed to publish diagnostics for %s: %w", uri, err)
	}
}
