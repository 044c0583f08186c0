package documents_test

import (
	"testing"

	"bennypowers.dev/shadycss/ast"
	"bennypowers.dev/shadycss/internal/documents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	doc := documents.NewDocument("file:///a.css", "css", 3, "a{}")
	assert.Equal(t, "file:///a.css", doc.URI())
	assert.Equal(t, "css", doc.LanguageID())
	assert.Equal(t, 3, doc.Version())
	assert.Equal(t, "a{}", doc.Content())
}

func TestDocument_SetContent(t *testing.T) {
	t.Run("accepts newer and equal versions", func(t *testing.T) {
		doc := documents.NewDocument("file:///a.css", "css", 1, "old")
		require.NoError(t, doc.SetContent("new", 2))
		require.NoError(t, doc.SetContent("newer", 2))
		assert.Equal(t, "newer", doc.Content())
		assert.Equal(t, 2, doc.Version())
	})

	t.Run("rejects stale update", func(t *testing.T) {
		doc := documents.NewDocument("file:///a.css", "css", 5, "current")
		err := doc.SetContent("stale", 4)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "version is 5")
		assert.Contains(t, err.Error(), "update version is 4")
		assert.Equal(t, "current", doc.Content())
	})
}

func TestDocument_Stylesheet(t *testing.T) {
	doc := documents.NewDocument("file:///a.css", "css", 1, "a { color: red }")

	sheet := doc.Stylesheet()
	require.Len(t, sheet.Rules, 1)
	assert.Same(t, sheet, doc.Stylesheet(), "parsed once per content")

	require.NoError(t, doc.SetContent("b {}", 2))
	updated := doc.Stylesheet()
	assert.NotSame(t, sheet, updated)
	assert.Equal(t, "b", updated.Rules[0].(*ast.Ruleset).Selector)
}

func TestDocument_Mapper(t *testing.T) {
	doc := documents.NewDocument("file:///a.css", "css", 1, "a\nb")
	assert.Equal(t, 2, doc.Mapper().LineCount())
	assert.Same(t, doc.Mapper(), doc.Mapper())

	require.NoError(t, doc.SetContent("a\nb\nc", 2))
	assert.Equal(t, 3, doc.Mapper().LineCount())
}
