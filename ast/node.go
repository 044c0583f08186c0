// Package ast defines the syntax tree produced by the parser, the Factory the
// parser builds it through, and the helpers used to walk and query it.
package ast

import "fmt"

// Kind identifies the type of a Node.
type Kind int

const (
	KindStylesheet Kind = iota
	KindAtRule
	KindComment
	KindRulelist
	KindRuleset
	KindDeclaration
	KindExpression
	KindDiscarded
)

var kindNames = [...]string{
	KindStylesheet:  "stylesheet",
	KindAtRule:      "atRule",
	KindComment:     "comment",
	KindRulelist:    "rulelist",
	KindRuleset:     "ruleset",
	KindDeclaration: "declaration",
	KindExpression:  "expression",
	KindDiscarded:   "discarded",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Range is a half-open span of byte offsets into the parsed source.
type Range struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Contains reports whether offset falls inside r.
func (r Range) Contains(offset int) bool {
	return r.Start <= offset && offset < r.End
}

// Encloses reports whether other lies entirely within r.
func (r Range) Encloses(other Range) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// Len returns the number of bytes covered by r
func (r Range) Len() int {
	return r.End - r.Start
}

// Text returns the part of src covered by r.
func (r Range) Text(src string) string {
	return src[r.Start:r.End]
}

func (r Range) String() string {
	return fmt.Sprintf("[%d:%d]", r.Start, r.End)
}

// Node is implemented by every syntax tree node.
type Node interface {
	Kind() Kind
	Span() Range
	node()
}

// Rule is a node that may appear in a Stylesheet or Rulelist.
type Rule interface {
	Node
	rule()
}

// Value is the value of a Declaration.
type Value interface {
	Node
	value()
}

// Stylesheet is the root of every parse.
type Stylesheet struct {
	Rules []Rule
	Range Range
}

// AtRule is an at-keyword with optional parameters and an optional block,
// such as @import url(a.css); or @media print { ... }.
type AtRule struct {
	Name      string
	NameRange Range
	// Parameters is the raw text between the name and the block or
	// terminator, trimmed of surrounding whitespace.
	Parameters      string
	ParametersRange *Range
	Rulelist        *Rulelist
	Range           Range
}

// Comment holds the literal comment text, delimiters included.
type Comment struct {
	Value string
	Range Range
}

// Rulelist is a braced block of rules.
type Rulelist struct {
	Rules []Rule
	Range Range
}

// Ruleset is a selector followed by a block.
type Ruleset struct {
	Selector      string
	SelectorRange Range
	Rulelist      *Rulelist
	Range         Range
}

// Declaration is a name with an optional value. The value is an Expression
// for ordinary properties and a Rulelist for mixin declarations such as
// --foo: { ... }.
type Declaration struct {
	Name      string
	NameRange Range
	Value     Value
	Range     Range
}

// Expression is the opaque text of a declaration value.
type Expression struct {
	Text  string
	Range Range
}

// Discarded is source text the parser could not place anywhere else.
type Discarded struct {
	Text  string
	Range Range
}

func (*Stylesheet) Kind() Kind  { return KindStylesheet }
func (*AtRule) Kind() Kind      { return KindAtRule }
func (*Comment) Kind() Kind     { return KindComment }
func (*Rulelist) Kind() Kind    { return KindRulelist }
func (*Ruleset) Kind() Kind     { return KindRuleset }
func (*Declaration) Kind() Kind { return KindDeclaration }
func (*Expression) Kind() Kind  { return KindExpression }
func (*Discarded) Kind() Kind   { return KindDiscarded }

func (n *Stylesheet) Span() Range  { return n.Range }
func (n *AtRule) Span() Range      { return n.Range }
func (n *Comment) Span() Range     { return n.Range }
func (n *Rulelist) Span() Range    { return n.Range }
func (n *Ruleset) Span() Range     { return n.Range }
func (n *Declaration) Span() Range { return n.Range }
func (n *Expression) Span() Range  { return n.Range }
func (n *Discarded) Span() Range   { return n.Range }

func (*Stylesheet) node()  {}
func (*AtRule) node()      {}
func (*Comment) node()     {}
func (*Rulelist) node()    {}
func (*Ruleset) node()     {}
func (*Declaration) node() {}
func (*Expression) node()  {}
func (*Discarded) node()   {}

func (*AtRule) rule()      {}
func (*Comment) rule()     {}
func (*Ruleset) rule()     {}
func (*Declaration) rule() {}
func (*Discarded) rule()   {}

func (*Expression) value() {}
func (*Rulelist) value()   {}

// IsMixin reports whether d declares a block of declarations rather than an
// ordinary value.
func (d *Declaration) IsMixin() bool {
	_, ok := d.Value.(*Rulelist)
	return ok
}
