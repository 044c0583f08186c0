package lifecycle

import (
	"bennypowers.dev/shadycss/internal/log"
	"bennypowers.dev/shadycss/internal/uriutil"
	"bennypowers.dev/shadycss/internal/version"
	"bennypowers.dev/shadycss/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ServerName is reported to clients in serverInfo.
const ServerName = "shady-css-language-server"

// InitializeResult is the initialize response. Capabilities is a map so that
// the set of advertised providers reads as one literal.
type InitializeResult struct {
	Capabilities map[string]any                       `json:"capabilities"`
	ServerInfo   *protocol.InitializeResultServerInfo `json:"serverInfo,omitempty"`
}

// Initialize handles the LSP initialize request
func Initialize(req *types.RequestContext, params *protocol.InitializeParams) (any, error) {
	clientName := "unknown"
	if params.ClientInfo != nil {
		clientName = params.ClientInfo.Name
	}
	log.Info("Initializing for client: %s", clientName)

	switch {
	case params.RootURI != nil:
		req.Server.SetRootURI(*params.RootURI)
		req.Server.SetRootPath(uriutil.URIToPath(*params.RootURI))
	case params.RootPath != nil:
		req.Server.SetRootPath(*params.RootPath)
		req.Server.SetRootURI(uriutil.PathToURI(*params.RootPath))
	}
	if root := req.Server.RootPath(); root != "" {
		log.Info("Workspace root: %s", root)
	}

	req.Server.SetClientSettings(params.InitializationOptions)
	if err := req.Server.ReloadConfig(); err != nil {
		// the server still works with the defaults
		req.AddWarning(err)
	}

	syncKind := protocol.TextDocumentSyncKindIncremental
	openClose := true
	serverVersion := version.GetVersion()

	return InitializeResult{
		Capabilities: map[string]any{
			"textDocumentSync": protocol.TextDocumentSyncOptions{
				OpenClose: &openClose,
				Change:    &syncKind,
			},
			"hoverProvider":              true,
			"documentSymbolProvider":     true,
			"selectionRangeProvider":     true,
			"documentFormattingProvider": true,
			"colorProvider":              true,
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    ServerName,
			Version: &serverVersion,
		},
	}, nil
}
