// Package astdump renders a syntax tree as YAML or JSON for inspection.
package astdump

import (
	"bytes"
	"encoding/json"
	"fmt"

	"bennypowers.dev/shadycss/ast"
	"gopkg.in/yaml.v3"
)

// Node is the serializable form of an ast.Node. Only the fields that apply
// to Kind are set.
type Node struct {
	Kind       string    `json:"kind" yaml:"kind"`
	Range      ast.Range `json:"range" yaml:"range,flow"`
	Name       string    `json:"name,omitempty" yaml:"name,omitempty"`
	Parameters string    `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Selector   string    `json:"selector,omitempty" yaml:"selector,omitempty"`
	Text       string    `json:"text,omitempty" yaml:"text,omitempty"`
	Mixin      bool      `json:"mixin,omitempty" yaml:"mixin,omitempty"`
	Children   []*Node   `json:"children,omitempty" yaml:"children,omitempty"`
}

// Build converts the tree rooted at n. A nil node yields nil.
func Build(n ast.Node) *Node {
	return ast.Walk[*Node](builder{}, n)
}

// YAML renders the tree rooted at n with two-space indentation.
func YAML(n ast.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Build(n)); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// JSON renders the tree rooted at n as indented JSON.
func JSON(n ast.Node) ([]byte, error) {
	data, err := json.MarshalIndent(Build(n), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode json: %w", err)
	}
	return append(data, '\n'), nil
}

type builder struct{}

func newNode(n ast.Node) *Node {
	return &Node{Kind: n.Kind().String(), Range: n.Span()}
}

func (builder) children(w *ast.Walker[*Node], nodes ...ast.Node) []*Node {
	var out []*Node
	for _, child := range nodes {
		if built := w.Visit(child); built != nil {
			out = append(out, built)
		}
	}
	return out
}

func (b builder) rules(w *ast.Walker[*Node], rules []ast.Rule) []*Node {
	nodes := make([]ast.Node, len(rules))
	for i, r := range rules {
		nodes[i] = r
	}
	return b.children(w, nodes...)
}

func (b builder) VisitStylesheet(w *ast.Walker[*Node], n *ast.Stylesheet) *Node {
	out := newNode(n)
	out.Children = b.rules(w, n.Rules)
	return out
}

func (b builder) VisitAtRule(w *ast.Walker[*Node], n *ast.AtRule) *Node {
	out := newNode(n)
	out.Name = n.Name
	out.Parameters = n.Parameters
	if n.Rulelist != nil {
		out.Children = b.children(w, n.Rulelist)
	}
	return out
}

func (builder) VisitComment(_ *ast.Walker[*Node], n *ast.Comment) *Node {
	out := newNode(n)
	out.Text = n.Value
	return out
}

func (b builder) VisitRulelist(w *ast.Walker[*Node], n *ast.Rulelist) *Node {
	out := newNode(n)
	out.Children = b.rules(w, n.Rules)
	return out
}

func (b builder) VisitRuleset(w *ast.Walker[*Node], n *ast.Ruleset) *Node {
	out := newNode(n)
	out.Selector = n.Selector
	if n.Rulelist != nil {
		out.Children = b.children(w, n.Rulelist)
	}
	return out
}

func (b builder) VisitDeclaration(w *ast.Walker[*Node], n *ast.Declaration) *Node {
	out := newNode(n)
	out.Name = n.Name
	out.Mixin = n.IsMixin()
	if n.Value != nil {
		out.Children = b.children(w, n.Value)
	}
	return out
}

func (builder) VisitExpression(_ *ast.Walker[*Node], n *ast.Expression) *Node {
	out := newNode(n)
	out.Text = n.Text
	return out
}

func (builder) VisitDiscarded(_ *ast.Walker[*Node], n *ast.Discarded) *Node {
	out := newNode(n)
	out.Text = n.Text
	return out
}
