package lifecycle

import (
	"bennypowers.dev/shadycss/internal/log"
	"bennypowers.dev/shadycss/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialized stores the client connection for later notifications and asks
// the client to watch the config files.
func Initialized(req *types.RequestContext, _ *protocol.InitializedParams) error {
	log.Info("Server initialized")

	req.Server.SetGLSPContext(req.GLSP)

	if err := req.Server.RegisterFileWatchers(req.GLSP); err != nil {
		req.Warnf("failed to register file watchers: %w", err)
	}
	return nil
}
