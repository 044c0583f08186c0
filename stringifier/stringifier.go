// Package stringifier serializes a syntax tree back into CSS text.
//
// Output is compact: whitespace between rules is dropped, every declaration
// ends with a semicolon and discarded text is omitted. Selectors, at-rule
// parameters and expressions are emitted exactly as they were parsed.
package stringifier

import (
	"strings"

	"bennypowers.dev/shadycss/ast"
)

// Stringifier is an ast.Visitor that produces CSS text. It has no state, so
// types that embed it to override individual node kinds may keep their own.
type Stringifier struct{}

var _ ast.Visitor[string] = Stringifier{}

// String stringifies n with the default Stringifier.
func String(n ast.Node) string {
	return Stringifier{}.Stringify(n)
}

// Stringify returns the CSS text of n.
func (s Stringifier) Stringify(n ast.Node) string {
	return ast.Walk[string](s, n)
}

func (Stringifier) VisitStylesheet(w *ast.Walker[string], n *ast.Stylesheet) string {
	var b strings.Builder
	for _, rule := range n.Rules {
		b.WriteString(w.Visit(rule))
	}
	return b.String()
}

func (Stringifier) VisitAtRule(w *ast.Walker[string], n *ast.AtRule) string {
	var b strings.Builder
	b.WriteString("@")
	b.WriteString(n.Name)
	if n.Parameters != "" {
		b.WriteString(" ")
		b.WriteString(n.Parameters)
	}
	if n.Rulelist != nil {
		b.WriteString(w.Visit(n.Rulelist))
	} else {
		b.WriteString(";")
	}
	return b.String()
}

func (Stringifier) VisitComment(w *ast.Walker[string], n *ast.Comment) string {
	return n.Value
}

func (Stringifier) VisitRulelist(w *ast.Walker[string], n *ast.Rulelist) string {
	var b strings.Builder
	b.WriteString("{")
	for _, rule := range n.Rules {
		b.WriteString(w.Visit(rule))
	}
	b.WriteString("}")
	return b.String()
}

func (Stringifier) VisitRuleset(w *ast.Walker[string], n *ast.Ruleset) string {
	return n.Selector + w.Visit(n.Rulelist)
}

func (Stringifier) VisitDeclaration(w *ast.Walker[string], n *ast.Declaration) string {
	if n.Value == nil {
		return n.Name + ";"
	}
	return n.Name + ":" + w.Visit(n.Value) + ";"
}

func (Stringifier) VisitExpression(w *ast.Walker[string], n *ast.Expression) string {
	return n.Text
}

// VisitDiscarded drops discarded text.
func (Stringifier) VisitDiscarded(w *ast.Walker[string], n *ast.Discarded) string {
	return ""
}
