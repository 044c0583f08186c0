package workspace

import (
	"path/filepath"
	"slices"

	"bennypowers.dev/shadycss/internal/config"
	"bennypowers.dev/shadycss/internal/log"
	"bennypowers.dev/shadycss/internal/uriutil"
	"bennypowers.dev/shadycss/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeWatchedFiles reloads the configuration when a config file in the
// workspace root is created, changed or deleted.
func DidChangeWatchedFiles(req *types.RequestContext, params *protocol.DidChangeWatchedFilesParams) error {
	log.Debug("Watched files changed: %d files", len(params.Changes))

	root := req.Server.RootPath()
	reload := false
	for _, change := range params.Changes {
		path := uriutil.URIToPath(change.URI)
		if IsConfigFile(root, path) {
			log.Info("Config file changed: %s (type: %d)", path, change.Type)
			reload = true
		}
	}
	if !reload {
		return nil
	}

	if err := req.Server.ReloadConfig(); err != nil {
		LogWarning(req.GLSP, "Failed to reload configuration: %v", err)
		return nil
	}
	RepublishDiagnostics(req)
	return nil
}

// IsConfigFile reports whether path is one of config.FileNames directly in
// root.
func IsConfigFile(root, path string) bool {
	if root == "" || !slices.Contains(config.FileNames, filepath.Base(path)) {
		return false
	}
	return filepath.Clean(filepath.Dir(path)) == filepath.Clean(root)
}
