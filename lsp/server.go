// Package lsp serves shady-css syntax trees to editors over the Language
// Server Protocol.
package lsp

import (
	"fmt"
	"path/filepath"
	"sync"

	"bennypowers.dev/shadycss/internal/config"
	"bennypowers.dev/shadycss/internal/documents"
	"bennypowers.dev/shadycss/internal/log"
	"bennypowers.dev/shadycss/lsp/methods/lifecycle"
	"bennypowers.dev/shadycss/lsp/methods/textDocument"
	"bennypowers.dev/shadycss/lsp/methods/textDocument/diagnostic"
	documentcolor "bennypowers.dev/shadycss/lsp/methods/textDocument/documentColor"
	documentsymbol "bennypowers.dev/shadycss/lsp/methods/textDocument/documentSymbol"
	"bennypowers.dev/shadycss/lsp/methods/textDocument/formatting"
	"bennypowers.dev/shadycss/lsp/methods/textDocument/hover"
	selectionrange "bennypowers.dev/shadycss/lsp/methods/textDocument/selectionRange"
	"bennypowers.dev/shadycss/lsp/methods/workspace"
	"bennypowers.dev/shadycss/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

var _ types.ServerContext = (*Server)(nil)

const registerCapability = "client/registerCapability"

// Server is the shady-css language server
type Server struct {
	documents  *documents.Manager
	glspServer *server.Server

	mu       sync.RWMutex // guards the fields below
	context  *glsp.Context
	rootURI  string
	rootPath string
	config   config.Config
	settings any // last settings sent by the client

	base     config.Config
	logLevel string // fixed log level, overrides files and client settings
}

// Option configures a Server
type Option func(*Server)

// WithBaseConfig sets the configuration that workspace files and client
// settings are layered over. It defaults to config.Default.
func WithBaseConfig(cfg config.Config) Option {
	return func(s *Server) {
		s.base = cfg
		s.config = cfg
	}
}

// WithLogLevel fixes the log level regardless of workspace files and client
// settings.
func WithLogLevel(level string) Option {
	return func(s *Server) {
		s.logLevel = level
		s.config.LogLevel = level
	}
}

// NewServer creates a server with every handler wrapped in middleware.
func NewServer(opts ...Option) *Server {
	s := &Server{
		documents: documents.NewManager(),
		config:    config.Default(),
		base:      config.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	handler := protocol.Handler{
		Initialize:                      method(s, "initialize", lifecycle.Initialize),
		Initialized:                     notify(s, "initialized", lifecycle.Initialized),
		Shutdown:                        noParam(s, "shutdown", lifecycle.Shutdown),
		SetTrace:                        notify(s, "$/setTrace", lifecycle.SetTrace),
		WorkspaceDidChangeConfiguration: notify(s, "workspace/didChangeConfiguration", workspace.DidChangeConfiguration),
		WorkspaceDidChangeWatchedFiles:  notify(s, "workspace/didChangeWatchedFiles", workspace.DidChangeWatchedFiles),
		TextDocumentDidOpen:             notify(s, "textDocument/didOpen", textDocument.DidOpen),
		TextDocumentDidChange:           notify(s, "textDocument/didChange", textDocument.DidChange),
		TextDocumentDidClose:            notify(s, "textDocument/didClose", textDocument.DidClose),
		TextDocumentHover:               method(s, "textDocument/hover", hover.Hover),
		TextDocumentDocumentSymbol:      method(s, "textDocument/documentSymbol", documentsymbol.DocumentSymbol),
		TextDocumentSelectionRange:      method(s, "textDocument/selectionRange", selectionrange.SelectionRange),
		TextDocumentFormatting:          method(s, "textDocument/formatting", formatting.Formatting),
		TextDocumentColor:               method(s, "textDocument/documentColor", documentcolor.DocumentColor),
		TextDocumentColorPresentation:   method(s, "textDocument/colorPresentation", documentcolor.ColorPresentation),
	}

	s.glspServer = server.NewServer(&handler, lifecycle.ServerName, false)
	return s
}

// RunStdio serves LSP over stdin and stdout until the client disconnects.
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

func (s *Server) Document(uri string) *documents.Document {
	return s.documents.Get(uri)
}

func (s *Server) DocumentManager() *documents.Manager {
	return s.documents
}

func (s *Server) AllDocuments() []*documents.Document {
	return s.documents.GetAll()
}

func (s *Server) RootURI() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rootURI
}

func (s *Server) RootPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rootPath
}

func (s *Server) SetRootURI(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rootURI = uri
}

func (s *Server) SetRootPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rootPath = path
}

// GetConfig returns a snapshot of the current configuration
func (s *Server) GetConfig() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *Server) SetConfig(cfg config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

func (s *Server) SetClientSettings(settings any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// ReloadConfig rebuilds the configuration from the base configuration, the
// config file in the workspace root, if any, and the client settings, in
// that order. A fixed log level is applied last. On error the current
// configuration is kept.
func (s *Server) ReloadConfig() error {
	s.mu.RLock()
	root, settings, cfg, level := s.rootPath, s.settings, s.base, s.logLevel
	s.mu.RUnlock()

	if root != "" {
		loaded, path, err := cfg.OverlayDir(root)
		if err != nil {
			return err
		}
		if path != "" {
			log.Info("Loaded config from %s", path)
		}
		cfg = loaded
	}

	cfg, err := cfg.Apply(settings)
	if err != nil {
		return fmt.Errorf("invalid client settings: %w", err)
	}
	if level != "" {
		cfg.LogLevel = level
	}

	s.SetConfig(cfg)
	log.SetLevel(cfg.Level())
	return nil
}

func (s *Server) GLSPContext() *glsp.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.context
}

func (s *Server) SetGLSPContext(ctx *glsp.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.context = ctx
}

// PublishDiagnostics sends the diagnostics for uri to the client. A nil ctx
// falls back to the context stored on initialized.
func (s *Server) PublishDiagnostics(ctx *glsp.Context, uri string) error {
	if ctx == nil {
		ctx = s.GLSPContext()
	}
	if ctx == nil || ctx.Notify == nil {
		return fmt.Errorf("cannot publish diagnostics: no client connection")
	}

	params := protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostic.GetDiagnostics(s, uri),
	}
	if doc := s.Document(uri); doc != nil {
		version := protocol.UInteger(doc.Version())
		params.Version = &version
	}

	log.Debug("Publishing %d diagnostics for %s", len(params.Diagnostics), uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, params)
	return nil
}

// RegisterFileWatchers asks the client to report changes to config files in
// the workspace root.
func (s *Server) RegisterFileWatchers(ctx *glsp.Context) error {
	// contexts built in tests have no Call func
	if ctx == nil || ctx.Call == nil {
		log.Debug("Skipping file watcher registration (no client context)")
		return nil
	}

	params := protocol.RegistrationParams{
		Registrations: []protocol.Registration{{
			ID:     "shady-css-config-watcher",
			Method: "workspace/didChangeWatchedFiles",
			RegisterOptions: protocol.DidChangeWatchedFilesRegistrationOptions{
				Watchers: ConfigWatchers(s.RootPath()),
			},
		}},
	}

	// client/registerCapability is a request; calling it inline would block
	// the handler loop that must read the response.
	go func() {
		var result any
		ctx.Call(registerCapability, params, &result)
		log.Debug("File watcher registration completed")
	}()
	return nil
}

// ConfigWatchers returns a watcher per config file name. Without a root the
// patterns match anywhere in the workspace.
func ConfigWatchers(root string) []protocol.FileSystemWatcher {
	watchers := make([]protocol.FileSystemWatcher, 0, len(config.FileNames))
	for _, name := range config.FileNames {
		pattern := "**/" + name
		if root != "" {
			pattern = filepath.ToSlash(filepath.Join(root, name))
		}
		watchers = append(watchers, protocol.FileSystemWatcher{GlobPattern: pattern})
	}
	return watchers
}
