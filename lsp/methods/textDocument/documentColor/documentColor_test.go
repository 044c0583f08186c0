package documentcolor

import (
	"testing"

	"bennypowers.dev/shadycss/ast"
	"bennypowers.dev/shadycss/lsp/testutil"
	"bennypowers.dev/shadycss/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func span(line, start, end uint32) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: start},
		End:   protocol.Position{Line: line, Character: end},
	}
}

func TestDocumentColor(t *testing.T) {
	server := testutil.NewMockServerContext()
	server.Open(t, "file:///a.css",
		"a{color:#ff0000;fill:rgb(0,0,255);border:1px solid blue,red;stroke:rgb(var(--c));}")
	req := types.NewRequestContext(server, nil)

	colors, err := DocumentColor(req, &protocol.DocumentColorParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.css"},
	})
	require.NoError(t, err)
	require.Len(t, colors, 4)

	assert.Equal(t, span(0, 8, 15), colors[0].Range)
	assert.Equal(t, protocol.Color{Red: 1, Green: 0, Blue: 0, Alpha: 1}, colors[0].Color)

	assert.Equal(t, span(0, 21, 33), colors[1].Range)
	assert.Equal(t, protocol.Color{Red: 0, Green: 0, Blue: 1, Alpha: 1}, colors[1].Color)

	assert.Equal(t, span(0, 51, 55), colors[2].Range)
	assert.Equal(t, span(0, 56, 59), colors[3].Range)

	require.Len(t, req.Warnings(), 1)
	assert.Contains(t, req.Warnings()[0].Error(), "rgb(var(--c))")
}

func TestDocumentColor_ClosedDocument(t *testing.T) {
	colors, err := DocumentColor(types.NewRequestContext(testutil.NewMockServerContext(), nil), &protocol.DocumentColorParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///missing.css"},
	})
	require.NoError(t, err)
	assert.Nil(t, colors)
}

func TestFind(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{"red", []string{"red"}},
		{"#abc", []string{"#abc"}},
		{"add", nil},
		{"1px solid", nil},
		{"linear-gradient(#000, #fff)", []string{"#000", "#fff"}},
		{"hsl(120, 100%, 50%)", []string{"hsl(120, 100%, 50%)"}},
		{"url(#ff0000)", []string{"#ff0000"}},
		{"#", nil},
		{"rgb(1,2,3", nil},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			expr := &ast.Expression{Text: tt.value, Range: ast.Range{Start: 10, End: 10 + len(tt.value)}}
			literals, _ := Find(expr)

			var got []string
			for _, lit := range literals {
				got = append(got, lit.Text)
				assert.Equal(t, lit.Text, tt.value[lit.Range.Start-10:lit.Range.End-10])
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorPresentation(t *testing.T) {
	req := types.NewRequestContext(testutil.NewMockServerContext(), nil)
	target := span(2, 4, 11)

	presentations, err := ColorPresentation(req, &protocol.ColorPresentationParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.css"},
		Color:        protocol.Color{Red: 1, Green: 0, Blue: 0, Alpha: 1},
		Range:        target,
	})
	require.NoError(t, err)
	require.Len(t, presentations, 3)
	assert.Equal(t, "#ff0000", presentations[0].Label)
	assert.Equal(t, "rgb(255, 0, 0)", presentations[1].Label)
	require.NotNil(t, presentations[1].TextEdit)
	assert.Equal(t, target, presentations[1].TextEdit.Range)
	assert.Equal(t, "rgb(255, 0, 0)", presentations[1].TextEdit.NewText)
	assert.Equal(t, "hsl(0, 100%, 50%)", presentations[2].Label)

	translucent, err := ColorPresentation(req, &protocol.ColorPresentationParams{
		Color: protocol.Color{Red: 1, Green: 0, Blue: 0, Alpha: 0.5},
	})
	require.NoError(t, err)
	assert.Contains(t, translucent[0].Label, "#ff0000")
	assert.Equal(t, "rgba(255, 0, 0, 0.5)", translucent[1].Label)
	assert.Equal(t, "hsla(0, 100%, 50%, 0.5)", translucent[2].Label)
}

func TestHSL(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float64
		h, s, l float64
	}{
		{"black", 0, 0, 0, 0, 0, 0},
		{"white", 1, 1, 1, 0, 0, 1},
		{"green", 0, 1, 0, 120, 1, 0.5},
		{"blue", 0, 0, 1, 240, 1, 0.5},
		{"magenta", 1, 0, 1, 300, 1, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, l := hsl(tt.r, tt.g, tt.b)
			assert.InDelta(t, tt.h, h, 1e-9)
			assert.InDelta(t, tt.s, s, 1e-9)
			assert.InDelta(t, tt.l, l, 1e-9)
		})
	}
}
