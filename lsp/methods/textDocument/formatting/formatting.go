package formatting

import (
	"bennypowers.dev/shadycss/internal/log"
	"bennypowers.dev/shadycss/lsp/types"
	"bennypowers.dev/shadycss/mixin"
	"bennypowers.dev/shadycss/stringifier"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Formatting handles the textDocument/formatting request by replacing the
// whole document with its minified form. With applyMixins configured the
// @apply rules are desugared as well. Formatting options are ignored.
func Formatting(req *types.RequestContext, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	uri := params.TextDocument.URI
	log.Debug("Formatting requested: %s", uri)

	doc := req.Document(uri)
	if doc == nil {
		return nil, nil
	}

	content := doc.Content()
	var formatted string
	if req.Server.GetConfig().ApplyMixins {
		formatted = mixin.Transform(content)
	} else {
		formatted = stringifier.String(doc.Stylesheet())
	}

	if formatted == content {
		return []protocol.TextEdit{}, nil
	}
	return []protocol.TextEdit{{
		Range:   doc.Mapper().Range(0, len(content)),
		NewText: formatted,
	}}, nil
}
