package testutil

import (
	"testing"

	"bennypowers.dev/shadycss/internal/config"
	"bennypowers.dev/shadycss/internal/documents"
	"bennypowers.dev/shadycss/lsp/types"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
)

var _ types.ServerContext = (*MockServerContext)(nil)

// MockServerContext is an in-memory types.ServerContext. Callbacks override
// the default behavior where a test needs to observe or fail a call.
type MockServerContext struct {
	docs        *documents.Manager
	rootURI     string
	rootPath    string
	config      config.Config
	settings    any
	glspContext *glsp.Context

	ReloadConfigFunc       func() error
	RegisterWatchersFunc   func(*glsp.Context) error
	PublishDiagnosticsFunc func(*glsp.Context, string) error

	ReloadConfigCalled     int
	RegisterWatchersCalled bool
	Published              []string
}

// NewMockServerContext creates a mock with default configuration and no
// open documents.
func NewMockServerContext() *MockServerContext {
	return &MockServerContext{
		docs:   documents.NewManager(),
		config: config.Default(),
	}
}

// Open opens a css document in the mock, failing the test on error.
func (m *MockServerContext) Open(t *testing.T, uri, content string) *documents.Document {
	t.Helper()
	require.NoError(t, m.docs.DidOpen(uri, "css", 1, content))
	return m.docs.Get(uri)
}

func (m *MockServerContext) Document(uri string) *documents.Document {
	return m.docs.Get(uri)
}

func (m *MockServerContext) DocumentManager() *documents.Manager {
	return m.docs
}

func (m *MockServerContext) AllDocuments() []*documents.Document {
	return m.docs.GetAll()
}

func (m *MockServerContext) RootURI() string         { return m.rootURI }
func (m *MockServerContext) RootPath() string        { return m.rootPath }
func (m *MockServerContext) SetRootURI(uri string)   { m.rootURI = uri }
func (m *MockServerContext) SetRootPath(path string) { m.rootPath = path }

func (m *MockServerContext) GetConfig() config.Config {
	return m.config
}

func (m *MockServerContext) SetConfig(cfg config.Config) {
	m.config = cfg
}

// ClientSettings returns the last settings passed to SetClientSettings
func (m *MockServerContext) ClientSettings() any {
	return m.settings
}

func (m *MockServerContext) SetClientSettings(settings any) {
	m.settings = settings
}

// ReloadConfig applies the client settings over the defaults unless
// ReloadConfigFunc is set. It does not touch the file system.
func (m *MockServerContext) ReloadConfig() error {
	m.ReloadConfigCalled++
	if m.ReloadConfigFunc != nil {
		return m.ReloadConfigFunc()
	}
	cfg, err := config.FromSettings(m.settings)
	if err != nil {
		return err
	}
	m.config = cfg
	return nil
}

func (m *MockServerContext) RegisterFileWatchers(ctx *glsp.Context) error {
	m.RegisterWatchersCalled = true
	if m.RegisterWatchersFunc != nil {
		return m.RegisterWatchersFunc(ctx)
	}
	return nil
}

func (m *MockServerContext) GLSPContext() *glsp.Context {
	return m.glspContext
}

func (m *MockServerContext) SetGLSPContext(ctx *glsp.Context) {
	m.glspContext = ctx
}

// PublishDiagnostics records uri in Published.
func (m *MockServerContext) PublishDiagnostics(ctx *glsp.Context, uri string) error {
	m.Published = append(m.Published, uri)
	if m.PublishDiagnosticsFunc != nil {
		return m.PublishDiagnosticsFunc(ctx, uri)
	}
	return nil
}
