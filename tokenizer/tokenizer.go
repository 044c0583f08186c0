// Package tokenizer breaks CSS source text into the coarse tokens the parser
// works with: whitespace, strings, comments, words and single-character
// boundaries.
//
// The tokenizer never fails. Unterminated strings and comments simply run to
// the end of the input, and any character that is not otherwise classified
// becomes part of a word.
package tokenizer

import (
	"strings"

	"bennypowers.dev/shadycss/token"
)

// Tokenizer scans a CSS string lazily, one token at a time.
// A Tokenizer is not safe for concurrent use.
type Tokenizer struct {
	text   string
	offset int

	current token.Token
	peeked  bool
	ok      bool
}

// New returns a Tokenizer over text.
func New(text string) *Tokenizer {
	return &Tokenizer{text: text}
}

// Text returns the source text being tokenized
func (t *Tokenizer) Text() string {
	return t.text
}

// Offset returns the end of the last token scanned, including a peeked one.
func (t *Tokenizer) Offset() int {
	return t.offset
}

// Peek returns the token that the next call to Advance will return without
// consuming it. ok is false once the whole text has been tokenized.
func (t *Tokenizer) Peek() (tok token.Token, ok bool) {
	if !t.peeked {
		t.current, t.ok = t.scan()
		t.peeked = true
	}
	return t.current, t.ok
}

// Advance consumes and returns the current token.
// ok is false once the whole text has been tokenized.
func (t *Tokenizer) Advance() (tok token.Token, ok bool) {
	tok, ok = t.Peek()
	t.peeked = false
	return tok, ok
}

// Flush consumes all remaining tokens.
func (t *Tokenizer) Flush() []token.Token {
	var tokens []token.Token
	for {
		tok, ok := t.Advance()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Slice returns the source text from the start of first to the end of last.
// When last is omitted the text of first alone is returned.
func (t *Tokenizer) Slice(first token.Token, last ...token.Token) string {
	start, end := Span(first, last...)
	return t.text[start:end]
}

// Span returns the offsets from the start of first to the end of last, or of
// first alone when last is omitted.
func Span(first token.Token, last ...token.Token) (start, end int) {
	end = first.End
	if len(last) > 0 {
		end = last[0].End
	}
	return first.Start, end
}

// TrimSpan shrinks [start, end) so that it neither begins nor ends with
// whitespace.
func (t *Tokenizer) TrimSpan(start, end int) (int, int) {
	for start < end && isWhitespace(t.text[start]) {
		start++
	}
	for end > start && isWhitespace(t.text[end-1]) {
		end--
	}
	return start, end
}

// Closed reports whether tok ends with its closing delimiter. Only strings
// and comments can be unterminated, in which case they run to the end of
// the text.
func (t *Tokenizer) Closed(tok token.Token) bool {
	if tok.End < len(t.text) {
		return true
	}
	switch {
	case tok.Is(token.String):
		_, closed := t.stringEnd(tok.Start)
		return closed
	case tok.Is(token.Comment):
		text := t.text[tok.Start:tok.End]
		return len(text) >= 4 && strings.HasSuffix(text, "*/")
	}
	return true
}

// scan classifies the text at the current offset.
func (t *Tokenizer) scan() (token.Token, bool) {
	if t.offset >= len(t.text) {
		return token.Token{}, false
	}

	var tok token.Token
	ch := t.text[t.offset]
	switch {
	case isWhitespace(ch):
		tok = t.scanWhitespace(t.offset)
	case isQuote(ch):
		tok = t.scanString(t.offset)
	case ch == '/' && t.offset+1 < len(t.text) && t.text[t.offset+1] == '*':
		tok = t.scanComment(t.offset)
	default:
		if kind, ok := token.Lookup(ch); ok {
			tok = token.Token{Kind: kind, Start: t.offset, End: t.offset + 1}
		} else {
			tok = t.scanWord(t.offset)
		}
	}

	t.offset = tok.End
	return tok, true
}

// scanWhitespace consumes a run of whitespace characters.
func (t *Tokenizer) scanWhitespace(start int) token.Token {
	end := start
	for end < len(t.text) && isWhitespace(t.text[end]) {
		end++
	}
	return token.Token{Kind: token.Whitespace, Start: start, End: end}
}

// scanString consumes a quoted string, honoring backslash escapes.
// An unterminated string ends at EOF.
func (t *Tokenizer) scanString(start int) token.Token {
	end, _ := t.stringEnd(start)
	return token.Token{Kind: token.String, Start: start, End: end}
}

// stringEnd returns the end of the string opening at start and whether its
// closing quote was found.
func (t *Tokenizer) stringEnd(start int) (int, bool) {
	quote := t.text[start]
	escaped := false
	for end := start + 1; end < len(t.text); end++ {
		ch := t.text[end]
		switch {
		case escaped:
			escaped = false
		case ch == quote:
			return end + 1, true
		case ch == '\\':
			escaped = true
		}
	}
	return len(t.text), false
}

// scanComment consumes a comment through the first "*/".
// An unterminated comment ends at EOF.
func (t *Tokenizer) scanComment(start int) token.Token {
	end := len(t.text)
	if i := strings.Index(t.text[start+2:], "*/"); i >= 0 {
		end = start + 2 + i + 2
	}
	return token.Token{Kind: token.Comment, Start: start, End: end}
}

// scanWord consumes characters up to the next boundary, quote or whitespace.
func (t *Tokenizer) scanWord(start int) token.Token {
	end := start
	for end < len(t.text) {
		ch := t.text[end]
		if isWhitespace(ch) || isQuote(ch) {
			break
		}
		if _, ok := token.Lookup(ch); ok {
			break
		}
		end++
	}
	return token.Token{Kind: token.Word, Start: start, End: end}
}

func isWhitespace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isQuote(ch byte) bool {
	return ch == '"' || ch == '\''
}
