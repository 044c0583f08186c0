package selectionrange

import (
	"bennypowers.dev/shadycss/ast"
	"bennypowers.dev/shadycss/internal/documents"
	"bennypowers.dev/shadycss/internal/log"
	"bennypowers.dev/shadycss/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SelectionRange handles the textDocument/selectionRange request. Each
// position expands through the nodes that enclose it, innermost first, up to
// the whole stylesheet.
func SelectionRange(req *types.RequestContext, params *protocol.SelectionRangeParams) ([]protocol.SelectionRange, error) {
	uri := params.TextDocument.URI
	log.Debug("SelectionRange requested: %s (%d positions)", uri, len(params.Positions))

	doc := req.Document(uri)
	if doc == nil {
		return nil, nil
	}

	result := make([]protocol.SelectionRange, 0, len(params.Positions))
	for _, pos := range params.Positions {
		result = append(result, *At(doc, doc.Mapper().Offset(pos)))
	}
	return result, nil
}

// At returns the selection range chain for offset in doc.
func At(doc *documents.Document, offset int) *protocol.SelectionRange {
	sheet := doc.Stylesheet()
	mapper := doc.Mapper()

	spans := []ast.Range{sheet.Range}
	for _, n := range ast.NodesAtLocation(sheet, offset) {
		spans = append(spans, n.Span())
		if name, ok := nameRange(n); ok && name.Contains(offset) {
			spans = append(spans, name)
		}
	}

	var current *protocol.SelectionRange
	var last ast.Range
	for i, span := range spans {
		if i > 0 && span == last {
			continue
		}
		last = span
		current = &protocol.SelectionRange{
			Range:  mapper.Range(span.Start, span.End),
			Parent: current,
		}
	}
	return current
}

// nameRange returns the range of the name or selector that heads n.
func nameRange(n ast.Node) (ast.Range, bool) {
	switch n := n.(type) {
	case *ast.Ruleset:
		return n.SelectorRange, true
	case *ast.Declaration:
		return n.NameRange, true
	case *ast.AtRule:
		return n.NameRange, true
	}
	return ast.Range{}, false
}
