package types

import (
	"bennypowers.dev/shadycss/internal/config"
	"bennypowers.dev/shadycss/internal/documents"
	"github.com/tliron/glsp"
)

// ServerContext is the server state LSP handlers depend on. Tests substitute
// testutil.MockServerContext.
type ServerContext interface {
	// Documents
	Document(uri string) *documents.Document
	DocumentManager() *documents.Manager
	AllDocuments() []*documents.Document

	// Workspace
	RootURI() string
	RootPath() string
	SetRootURI(uri string)
	SetRootPath(path string)

	// Configuration. ReloadConfig reads the config file in the workspace
	// root and applies the most recent client settings over it.
	GetConfig() config.Config
	SetConfig(cfg config.Config)
	SetClientSettings(settings any)
	ReloadConfig() error
	RegisterFileWatchers(ctx *glsp.Context) error

	// Client connection
	GLSPContext() *glsp.Context
	SetGLSPContext(ctx *glsp.Context)
	PublishDiagnostics(ctx *glsp.Context, uri string) error
}
