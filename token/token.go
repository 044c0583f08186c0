// Package token defines the lexical tokens produced by the tokenizer.
//
// Token kinds are bitmasks rather than plain enumerations: a single kind can
// satisfy several categories at once. A close brace is a Boundary and a
// PropertyBoundary at the same time, and a colon is both a Boundary and a
// Word. Use Token.Is to test for a category.
package token

import (
	"fmt"
	"strings"
)

// Kind is a bitmask describing the lexical category of a token
type Kind uint32

const (
	None       Kind = 0
	Whitespace Kind = 1 << 0
	String     Kind = 1 << 1
	Comment    Kind = 1 << 2
	Word       Kind = 1 << 3
	Boundary   Kind = 1 << 4
	// PropertyBoundary marks the characters that end a declaration: ; and }
	PropertyBoundary Kind = 1 << 5

	OpenParenthesis  Kind = 1<<6 | Boundary
	CloseParenthesis Kind = 1<<7 | Boundary
	At               Kind = 1<<8 | Boundary
	OpenBrace        Kind = 1<<9 | Boundary
	CloseBrace       Kind = 1<<10 | PropertyBoundary | Boundary
	Semicolon        Kind = 1<<11 | PropertyBoundary | Boundary

	// Colon is a boundary that also reads as part of a word, so that
	// "a:hover {" and "margin: 0;" both accumulate as a single run.
	Colon Kind = 1<<12 | Boundary | Word
)

var kindNames = []struct {
	kind Kind
	name string
}{
	{OpenParenthesis, "openParenthesis"},
	{CloseParenthesis, "closeParenthesis"},
	{At, "at"},
	{OpenBrace, "openBrace"},
	{CloseBrace, "closeBrace"},
	{Semicolon, "semicolon"},
	{Colon, "colon"},
	{Whitespace, "whitespace"},
	{String, "string"},
	{Comment, "comment"},
	{Word, "word"},
	{PropertyBoundary, "propertyBoundary"},
	{Boundary, "boundary"},
}

// String returns the name of the most specific kind k matches exactly,
// falling back to a list of the categories it contains.
func (k Kind) String() string {
	if k == None {
		return "none"
	}
	for _, kn := range kindNames {
		if k == kn.kind {
			return kn.name
		}
	}
	var parts []string
	for _, kn := range kindNames {
		if k&kn.kind == kn.kind {
			parts = append(parts, kn.name)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("Kind(%d)", uint32(k))
	}
	return strings.Join(parts, "|")
}

// Token is a span of the source text with a lexical kind.
// Start and End are byte offsets into the source; End is exclusive.
type Token struct {
	Kind  Kind
	Start int
	End   int
}

// Is reports whether every bit of mask is set on the token's kind.
func (t Token) Is(mask Kind) bool {
	return t.Kind&mask == mask
}

// Len returns the number of source bytes the token spans
func (t Token) Len() int {
	return t.End - t.Start
}

func (t Token) String() string {
	return fmt.Sprintf("%s[%d:%d]", t.Kind, t.Start, t.End)
}

// Lookup returns the kind of a single boundary character.
// ok is false when c is not a boundary.
func Lookup(c byte) (k Kind, ok bool) {
	switch c {
	case '(':
		return OpenParenthesis, true
	case ')':
		return CloseParenthesis, true
	case ':':
		return Colon, true
	case '@':
		return At, true
	case '{':
		return OpenBrace, true
	case '}':
		return CloseBrace, true
	case ';':
		return Semicolon, true
	}
	return None, false
}
