package tokenizer

import "bennypowers.dev/shadycss/token"

// Cursor buffers one token of lookahead over a Tokenizer and counts the
// tokens taken from it.
type Cursor struct {
	tokenizer *Tokenizer
	index     int

	next    token.Token
	hasNext bool
	cached  bool
}

// NewCursor returns a Cursor reading from t.
func NewCursor(t *Tokenizer) *Cursor {
	return &Cursor{tokenizer: t}
}

// Tokenizer returns the underlying tokenizer
func (c *Cursor) Tokenizer() *Tokenizer {
	return c.tokenizer
}

// Index returns the number of tokens taken so far. Peeking never changes it.
func (c *Cursor) Index() int {
	return c.index
}

// Next peeks at the token TakeOne will return.
// ok is false when the input is exhausted.
func (c *Cursor) Next() (tok token.Token, ok bool) {
	if !c.cached {
		c.next, c.hasNext = c.tokenizer.Advance()
		c.cached = true
	}
	return c.next, c.hasNext
}

// NextIs reports whether there is a next token and it matches kind.
func (c *Cursor) NextIs(kind token.Kind) bool {
	tok, ok := c.Next()
	return ok && tok.Is(kind)
}

// Done reports whether the input is exhausted
func (c *Cursor) Done() bool {
	_, ok := c.Next()
	return !ok
}

// TakeOne consumes the next token.
func (c *Cursor) TakeOne() (tok token.Token, ok bool) {
	tok, ok = c.Next()
	c.cached = false
	if ok {
		c.index++
	}
	return tok, ok
}

// Slice returns the source text spanned by first through last.
func (c *Cursor) Slice(first token.Token, last ...token.Token) string {
	return c.tokenizer.Slice(first, last...)
}
