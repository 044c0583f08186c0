package diagnostic

import (
	"strings"

	"bennypowers.dev/shadycss/ast"
	"bennypowers.dev/shadycss/internal/documents"
	"bennypowers.dev/shadycss/internal/uriutil"
	"bennypowers.dev/shadycss/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Source labels every diagnostic this server publishes
const Source = "shady-css"

// Message is the text of the warning raised for each discarded span
const Message = "unparsed text"

// GetDiagnostics returns the diagnostics to publish for uri. Closed
// documents, non-CSS documents and files the configuration does not select
// get an empty list, which clears any diagnostics the client still shows.
// Include and exclude globs match paths relative to the workspace root.
func GetDiagnostics(server types.ServerContext, uri string) []protocol.Diagnostic {
	doc := server.Document(uri)
	if doc == nil || doc.LanguageID() != "css" {
		return []protocol.Diagnostic{}
	}
	if path := uriutil.URIToPath(uri); !server.GetConfig().SelectsIn(server.RootPath(), path) {
		return []protocol.Diagnostic{}
	}
	return Discarded(doc)
}

// Discarded returns one warning for each span of doc the parser could not
// place.
func Discarded(doc *documents.Document) []protocol.Diagnostic {
	mapper := doc.Mapper()
	severity := protocol.DiagnosticSeverityWarning
	source := Source

	diagnostics := []protocol.Diagnostic{}
	for n := range ast.Filter[*ast.Discarded](doc.Stylesheet()) {
		if strings.TrimSpace(n.Text) == "" {
			continue
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    mapper.Range(n.Range.Start, n.Range.End),
			Severity: &severity,
			Source:   &source,
			Message:  Message,
		})
	}
	return diagnostics
}
