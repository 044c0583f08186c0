package tokenizer_test

import (
	"testing"

	"bennypowers.dev/shadycss/token"
	"bennypowers.dev/shadycss/tokenizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_IndexCountsTakesOnly(t *testing.T) {
	c := tokenizer.NewCursor(tokenizer.New("a{b}"))
	assert.Equal(t, 0, c.Index())

	for i := 0; i < 3; i++ {
		tok, ok := c.Next()
		require.True(t, ok)
		assert.Equal(t, token.Word, tok.Kind)
	}
	assert.Equal(t, 0, c.Index(), "peeking must not advance the index")

	tok, ok := c.TakeOne()
	require.True(t, ok)
	assert.Equal(t, "a", c.Slice(tok))
	assert.Equal(t, 1, c.Index())

	assert.True(t, c.NextIs(token.OpenBrace))
	assert.True(t, c.NextIs(token.Boundary))
	assert.False(t, c.NextIs(token.PropertyBoundary))
}

func TestCursor_Exhaustion(t *testing.T) {
	c := tokenizer.NewCursor(tokenizer.New(";"))
	assert.False(t, c.Done())

	_, ok := c.TakeOne()
	require.True(t, ok)
	assert.True(t, c.Done())

	_, ok = c.TakeOne()
	assert.False(t, ok)
	assert.Equal(t, 1, c.Index(), "failed takes do not count")
	assert.False(t, c.NextIs(token.None))
}
