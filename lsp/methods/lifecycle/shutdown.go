package lifecycle

import (
	"bennypowers.dev/shadycss/internal/log"
	"bennypowers.dev/shadycss/lsp/types"
)

// Shutdown handles the LSP shutdown request. Open documents are released;
// the process exits on the following exit notification.
func Shutdown(req *types.RequestContext) error {
	log.Info("Server shutting down")

	docs := req.Server.DocumentManager()
	for _, doc := range req.Server.AllDocuments() {
		if err := docs.DidClose(doc.URI()); err != nil {
			req.AddWarning(err)
		}
	}
	return nil
}
