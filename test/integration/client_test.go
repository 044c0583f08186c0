package integration_test

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"bennypowers.dev/shadycss/internal/log"
	"bennypowers.dev/shadycss/internal/uriutil"
	"bennypowers.dev/shadycss/lsp"
	"bennypowers.dev/shadycss/lsp/methods/lifecycle"
	"bennypowers.dev/shadycss/lsp/methods/textDocument"
	"bennypowers.dev/shadycss/lsp/types"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// client drives an in-process server the way an editor would and records
// the diagnostics it is sent.
type client struct {
	t      *testing.T
	server *lsp.Server
	ctx    *glsp.Context
	root   string

	mu          sync.Mutex
	diagnostics map[string][]protocol.Diagnostic
	messages    []string
}

func newClient(t *testing.T, files map[string]string) *client {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	previous := log.GetLevel()
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(previous)
	})

	c := &client{
		t:           t,
		server:      lsp.NewServer(),
		root:        t.TempDir(),
		diagnostics: map[string][]protocol.Diagnostic{},
	}
	c.ctx = &glsp.Context{Notify: c.notify}
	for name, content := range files {
		c.write(name, content)
	}
	return c
}

func (c *client) notify(method string, params any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch p := params.(type) {
	case protocol.PublishDiagnosticsParams:
		c.diagnostics[p.URI] = p.Diagnostics
	case *protocol.LogMessageParams:
		c.messages = append(c.messages, p.Message)
	}
}

func (c *client) request() *types.RequestContext {
	return types.NewRequestContext(c.server, c.ctx)
}

func (c *client) write(name, content string) string {
	c.t.Helper()
	path := filepath.Join(c.root, name)
	require.NoError(c.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(c.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (c *client) uri(name string) string {
	return uriutil.PathToURI(filepath.Join(c.root, name))
}

func (c *client) initialize(options any) lifecycle.InitializeResult {
	c.t.Helper()
	rootURI := uriutil.PathToURI(c.root)
	result, err := lifecycle.Initialize(c.request(), &protocol.InitializeParams{
		RootURI:               &rootURI,
		InitializationOptions: options,
	})
	require.NoError(c.t, err)
	require.NoError(c.t, lifecycle.Initialized(c.request(), &protocol.InitializedParams{}))
	return result.(lifecycle.InitializeResult)
}

func (c *client) open(name, text string) string {
	c.t.Helper()
	uri := c.uri(name)
	require.NoError(c.t, textDocument.DidOpen(c.request(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "css", Version: 1, Text: text},
	}))
	return uri
}

func (c *client) published(uri string) ([]protocol.Diagnostic, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.diagnostics[uri]
	return d, ok
}
