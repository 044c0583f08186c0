package lifecycle

import (
	"bennypowers.dev/shadycss/internal/log"
	"bennypowers.dev/shadycss/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SetTrace handles $/setTrace. A verbose trace turns on debug logging;
// anything else restores the configured level.
func SetTrace(req *types.RequestContext, params *protocol.SetTraceParams) error {
	log.Info("Trace level set to: %s", params.Value)
	if string(params.Value) == "verbose" {
		log.SetLevel(log.LevelDebug)
	} else {
		log.SetLevel(req.Server.GetConfig().Level())
	}
	return nil
}
