// Package mixin desugars custom property mixins and @apply rules into plain
// custom properties.
//
// A mixin is a declaration whose value is a block:
//
//	:root { --card: { color: red; padding: 4px; }; }
//
// Each declaration inside it becomes its own custom property named
// <mixin>_-_<property>, and every "@apply --card;" in a ruleset becomes one
// var() reference per property, falling back to the ruleset's own value for
// that property when it has one:
//
//	.card { color: blue; @apply --card; }
//	.card{ color: var(--card_-_color,blue);padding: var(--card_-_padding); }
package mixin

import (
	"strings"

	"bennypowers.dev/shadycss/ast"
	"bennypowers.dev/shadycss/internal/log"
	"bennypowers.dev/shadycss/parser"
	"bennypowers.dev/shadycss/stringifier"
)

const separator = "_-_"

// Transform parses src and returns it with mixins desugared.
func Transform(src string) string {
	r := NewRegistrar()
	sheet := parser.New(parser.WithFactory(r)).Parse(src)
	return NewStringifier(r).Stringify(sheet)
}

// Registrar is an ast.Factory that rewrites mixin declarations as they are
// parsed and records what the Stringifier needs to expand @apply rules.
type Registrar struct {
	ast.DefaultFactory

	// mixin name to the property names it declares, in order
	mixins map[string][]string
	// ruleset to its plain declarations by name
	defaults map[*ast.Ruleset]map[string]*ast.Declaration
	// ruleset to the @apply rules it contains
	applies map[*ast.Ruleset][]*ast.AtRule
}

var _ ast.Factory = (*Registrar)(nil)

func NewRegistrar() *Registrar {
	return &Registrar{
		mixins:   make(map[string][]string),
		defaults: make(map[*ast.Ruleset]map[string]*ast.Declaration),
		applies:  make(map[*ast.Ruleset][]*ast.AtRule),
	}
}

// Mixin returns the property names declared by the named mixin.
func (r *Registrar) Mixin(name string) ([]string, bool) {
	names, ok := r.mixins[name]
	return names, ok
}

// Ruleset builds a ruleset whose block is a copy of rulelist with the mixins
// replaced by custom properties. The rulelist passed in is left as it is.
func (r *Registrar) Ruleset(selector string, selectorRange ast.Range, rulelist *ast.Rulelist, rng ast.Range) *ast.Ruleset {
	if rulelist != nil {
		rulelist = r.DefaultFactory.Rulelist(r.desugar(rulelist.Rules), rulelist.Range)
	}
	ruleset := r.DefaultFactory.Ruleset(selector, selectorRange, rulelist, rng)
	if rulelist == nil {
		return ruleset
	}

	defaults := make(map[string]*ast.Declaration)
	var applies []*ast.AtRule
	for _, rule := range rulelist.Rules {
		switch rule := rule.(type) {
		case *ast.Declaration:
			defaults[rule.Name] = rule
		case *ast.AtRule:
			if rule.Name == "apply" {
				applies = append(applies, rule)
			}
		}
	}
	r.defaults[ruleset] = defaults
	r.applies[ruleset] = applies
	return ruleset
}

func (r *Registrar) desugar(rules []ast.Rule) []ast.Rule {
	out := make([]ast.Rule, 0, len(rules))
	for _, rule := range rules {
		decl, ok := rule.(*ast.Declaration)
		if !ok || !decl.IsMixin() {
			out = append(out, rule)
			continue
		}
		out = append(out, r.register(decl)...)
	}
	return out
}

// register records the properties of a mixin and returns the custom
// properties that replace it.
func (r *Registrar) register(mixin *ast.Declaration) []ast.Rule {
	body := mixin.Value.(*ast.Rulelist)
	var (
		names []string
		out   []ast.Rule
	)
	for _, rule := range body.Rules {
		decl, ok := rule.(*ast.Declaration)
		if !ok {
			continue
		}
		names = append(names, decl.Name)
		out = append(out, r.Declaration(mixin.Name+separator+decl.Name, decl.NameRange, decl.Value, decl.Range))
	}
	log.Debug("registered mixin %s with %d properties", mixin.Name, len(names))
	r.mixins[mixin.Name] = names
	return out
}

// Stringifier stringifies a tree built by a Registrar, expanding @apply
// rules. A Stringifier is single use: it remembers which declarations it
// has already folded into an @apply.
type Stringifier struct {
	stringifier.Stringifier
	registrar *Registrar
	consumed  map[*ast.Declaration]bool
}

var _ ast.Visitor[string] = (*Stringifier)(nil)

func NewStringifier(r *Registrar) *Stringifier {
	return &Stringifier{registrar: r, consumed: make(map[*ast.Declaration]bool)}
}

// Stringify returns the CSS text of n.
func (s *Stringifier) Stringify(n ast.Node) string {
	return ast.Walk[string](s, n)
}

// VisitAtRule expands @apply rules of known mixins. Any other at-rule is
// stringified as usual.
func (s *Stringifier) VisitAtRule(w *ast.Walker[string], n *ast.AtRule) string {
	if n.Name != "apply" {
		return s.Stringifier.VisitAtRule(w, n)
	}

	name := strings.TrimSpace(n.Parameters)
	props, ok := s.registrar.Mixin(name)
	if !ok {
		log.Debug("@apply of unknown mixin %s", name)
		return s.Stringifier.VisitAtRule(w, n)
	}

	// path ends ruleset, rulelist, @apply
	ruleset, _ := w.Ancestor(2).(*ast.Ruleset)
	defaults := s.registrar.defaults[ruleset]

	decls := make([]string, 0, len(props))
	for _, prop := range props {
		fallback := ""
		if def, ok := defaults[prop]; ok && def.Value != nil {
			fallback = "," + w.Visit(def.Value)
			s.consumed[def] = true
		}
		decls = append(decls, prop+": var("+name+separator+prop+fallback+")")
	}
	return strings.Join(decls, ";") + ";"
}

// VisitRulelist expands a ruleset's @apply rules before its other rules so
// that declarations consumed as fallbacks are not emitted twice.
func (s *Stringifier) VisitRulelist(w *ast.Walker[string], n *ast.Rulelist) string {
	ruleset, ok := w.Ancestor(1).(*ast.Ruleset)
	if !ok {
		return s.Stringifier.VisitRulelist(w, n)
	}

	expanded := make(map[*ast.AtRule]string)
	for _, apply := range s.registrar.applies[ruleset] {
		expanded[apply] = w.Visit(apply)
	}

	var b strings.Builder
	for _, rule := range n.Rules {
		if decl, ok := rule.(*ast.Declaration); ok && s.consumed[decl] {
			continue
		}
		if at, ok := rule.(*ast.AtRule); ok {
			if text, ok := expanded[at]; ok {
				b.WriteString(text)
				continue
			}
		}
		b.WriteString(w.Visit(rule))
	}
	return "{ " + b.String() + " }"
}
