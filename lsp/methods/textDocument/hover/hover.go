package hover

import (
	"fmt"
	"strings"

	"bennypowers.dev/shadycss/ast"
	"bennypowers.dev/shadycss/internal/log"
	"bennypowers.dev/shadycss/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// maxSourceLen bounds the source excerpt shown for the hovered node
const maxSourceLen = 200

// Hover handles the textDocument/hover request. The content describes the
// chain of nodes enclosing the cursor and quotes the innermost one.
func Hover(req *types.RequestContext, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := params.TextDocument.URI
	log.Debug("Hover requested: %s at %d:%d", uri, params.Position.Line, params.Position.Character)

	doc := req.Document(uri)
	if doc == nil {
		return nil, nil
	}

	mapper := doc.Mapper()
	chain := ast.NodesAtLocation(doc.Stylesheet(), mapper.Offset(params.Position))
	if len(chain) == 0 {
		return nil, nil
	}

	innermost := chain[len(chain)-1]
	span := innermost.Span()
	rng := mapper.Range(span.Start, span.End)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: Markdown(chain, span.Text(doc.Content())),
		},
		Range: &rng,
	}, nil
}

// Markdown renders chain, outermost first, followed by source in a css
// code block.
func Markdown(chain []ast.Node, source string) string {
	labels := make([]string, len(chain))
	for i, n := range chain {
		labels[i] = Label(n)
	}

	var b strings.Builder
	b.WriteString(strings.Join(labels, " › "))
	if len(source) > maxSourceLen {
		source = source[:maxSourceLen] + "…"
	}
	fmt.Fprintf(&b, "\n\n```css\n%s\n```", source)
	return b.String()
}

// Label names a node for display, such as **ruleset** `.card`.
func Label(n ast.Node) string {
	var name string
	switch n := n.(type) {
	case *ast.AtRule:
		name = "@" + n.Name
	case *ast.Ruleset:
		name = n.Selector
	case *ast.Declaration:
		name = n.Name
		if n.IsMixin() {
			return fmt.Sprintf("**mixin** `%s`", name)
		}
	}
	if name == "" {
		return fmt.Sprintf("**%s**", n.Kind())
	}
	return fmt.Sprintf("**%s** `%s`", n.Kind(), name)
}
