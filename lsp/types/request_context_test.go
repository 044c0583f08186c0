package types_test

import (
	"errors"
	"testing"

	"bennypowers.dev/shadycss/lsp/testutil"
	"bennypowers.dev/shadycss/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
)

func TestRequestContext_Warnings(t *testing.T) {
	req := types.NewRequestContext(testutil.NewMockServerContext(), &glsp.Context{Method: "test"})
	assert.False(t, req.HasWarnings())
	assert.Nil(t, req.Warnings())

	first := errors.New("first")
	req.AddWarning(first)
	req.AddWarning(nil)
	req.Warnf("bad color %q", "#zz")

	require.Len(t, req.Warnings(), 2)
	assert.True(t, req.HasWarnings())
	assert.Equal(t, first, req.Warnings()[0])
	assert.EqualError(t, req.Warnings()[1], `bad color "#zz"`)
}

func TestRequestContext_Document(t *testing.T) {
	server := testutil.NewMockServerContext()
	require.NoError(t, server.DocumentManager().DidOpen("file:///a.css", "css", 1, "a{}"))

	req := types.NewRequestContext(server, &glsp.Context{Method: "textDocument/hover"})
	assert.Equal(t, "textDocument/hover", req.GLSP.Method)
	require.NotNil(t, req.Document("file:///a.css"))
	assert.Nil(t, req.Document("file:///missing.css"))

	assert.Nil(t, types.NewRequestContext(nil, nil).Document("file:///a.css"))
}
