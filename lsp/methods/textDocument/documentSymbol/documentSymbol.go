package documentsymbol

import (
	"strings"

	"bennypowers.dev/shadycss/ast"
	"bennypowers.dev/shadycss/internal/log"
	"bennypowers.dev/shadycss/internal/position"
	"bennypowers.dev/shadycss/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DocumentSymbol handles the textDocument/documentSymbol request. Rulesets,
// at-rules and declarations become a symbol tree mirroring the nesting of
// the stylesheet.
func DocumentSymbol(req *types.RequestContext, params *protocol.DocumentSymbolParams) (any, error) {
	uri := params.TextDocument.URI
	log.Debug("DocumentSymbol requested: %s", uri)

	doc := req.Document(uri)
	if doc == nil {
		return nil, nil
	}
	return Symbols(doc.Stylesheet(), doc.Mapper()), nil
}

// Symbols returns the symbol tree for sheet.
func Symbols(sheet *ast.Stylesheet, mapper *position.Mapper) []protocol.DocumentSymbol {
	symbols := ast.Walk[[]protocol.DocumentSymbol](&collector{mapper: mapper}, sheet)
	if symbols == nil {
		return []protocol.DocumentSymbol{}
	}
	return symbols
}

type collector struct {
	mapper *position.Mapper
}

func (c *collector) symbol(name, detail string, kind protocol.SymbolKind, node, selection ast.Range) protocol.DocumentSymbol {
	sym := protocol.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          c.mapper.Range(node.Start, node.End),
		SelectionRange: c.mapper.Range(selection.Start, selection.End),
	}
	if detail != "" {
		sym.Detail = &detail
	}
	return sym
}

func (c *collector) rules(w *ast.Walker[[]protocol.DocumentSymbol], rules []ast.Rule) []protocol.DocumentSymbol {
	var out []protocol.DocumentSymbol
	for _, r := range rules {
		out = append(out, w.Visit(r)...)
	}
	return out
}

func (c *collector) VisitStylesheet(w *ast.Walker[[]protocol.DocumentSymbol], n *ast.Stylesheet) []protocol.DocumentSymbol {
	return c.rules(w, n.Rules)
}

func (c *collector) VisitAtRule(w *ast.Walker[[]protocol.DocumentSymbol], n *ast.AtRule) []protocol.DocumentSymbol {
	kind := protocol.SymbolKindModule
	if n.Rulelist != nil {
		kind = protocol.SymbolKindNamespace
	}
	sym := c.symbol("@"+n.Name, n.Parameters, kind, n.Range, n.NameRange)
	sym.Children = w.Visit(n.Rulelist)
	return []protocol.DocumentSymbol{sym}
}

func (c *collector) VisitComment(*ast.Walker[[]protocol.DocumentSymbol], *ast.Comment) []protocol.DocumentSymbol {
	return nil
}

func (c *collector) VisitRulelist(w *ast.Walker[[]protocol.DocumentSymbol], n *ast.Rulelist) []protocol.DocumentSymbol {
	return c.rules(w, n.Rules)
}

func (c *collector) VisitRuleset(w *ast.Walker[[]protocol.DocumentSymbol], n *ast.Ruleset) []protocol.DocumentSymbol {
	name := n.Selector
	if name == "" {
		name = "{}"
	}
	sym := c.symbol(name, "", protocol.SymbolKindClass, n.Range, n.SelectorRange)
	sym.Children = w.Visit(n.Rulelist)
	return []protocol.DocumentSymbol{sym}
}

func (c *collector) VisitDeclaration(w *ast.Walker[[]protocol.DocumentSymbol], n *ast.Declaration) []protocol.DocumentSymbol {
	kind := protocol.SymbolKindProperty
	if strings.HasPrefix(n.Name, "--") {
		kind = protocol.SymbolKindVariable
	}

	var detail string
	if expr, ok := n.Value.(*ast.Expression); ok {
		detail = expr.Text
	}
	sym := c.symbol(n.Name, detail, kind, n.Range, n.NameRange)
	if n.IsMixin() {
		sym.Children = w.Visit(n.Value)
	}
	return []protocol.DocumentSymbol{sym}
}

func (c *collector) VisitExpression(*ast.Walker[[]protocol.DocumentSymbol], *ast.Expression) []protocol.DocumentSymbol {
	return nil
}

func (c *collector) VisitDiscarded(*ast.Walker[[]protocol.DocumentSymbol], *ast.Discarded) []protocol.DocumentSymbol {
	return nil
}
