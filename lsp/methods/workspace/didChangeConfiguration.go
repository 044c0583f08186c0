package workspace

import (
	"bennypowers.dev/shadycss/internal/log"
	"bennypowers.dev/shadycss/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SettingsSection is the key clients nest shady-css settings under.
const SettingsSection = "shadyCss"

// DidChangeConfiguration handles the workspace/didChangeConfiguration
// notification. Invalid settings are reported and the previous configuration
// is kept.
func DidChangeConfiguration(req *types.RequestContext, params *protocol.DidChangeConfigurationParams) error {
	log.Info("Configuration changed")

	req.Server.SetClientSettings(Section(params.Settings))
	if err := req.Server.ReloadConfig(); err != nil {
		LogWarning(req.GLSP, "Ignoring invalid configuration: %v", err)
		return nil
	}

	RepublishDiagnostics(req)
	return nil
}

// Section extracts our settings from the object a client sends, which may be
// either nested under SettingsSection or the settings themselves.
func Section(settings any) any {
	m, ok := settings.(map[string]any)
	if !ok {
		return settings
	}
	for _, key := range []string{SettingsSection, "shady-css"} {
		if nested, ok := m[key]; ok {
			return nested
		}
	}
	return m
}

// RepublishDiagnostics publishes diagnostics for every open document.
func RepublishDiagnostics(req *types.RequestContext) {
	ctx := req.Server.GLSPContext()
	if ctx == nil {
		return
	}
	for _, doc := range req.Server.AllDocuments() {
		if err := req.Server.PublishDiagnostics(ctx, doc.URI()); err != nil {
			req.Warnf("failed to publish diagnostics for %s: %w", doc.URI(), err)
		}
	}
}
