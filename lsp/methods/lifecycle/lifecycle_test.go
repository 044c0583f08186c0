package lifecycle

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"bennypowers.dev/shadycss/internal/log"
	"bennypowers.dev/shadycss/lsp/testutil"
	"bennypowers.dev/shadycss/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func quietLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	level := log.GetLevel()
	log.SetOutput(&buf)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(level)
	})
	return &buf
}

func initialize(t *testing.T, server *testutil.MockServerContext, params *protocol.InitializeParams) (InitializeResult, *types.RequestContext) {
	t.Helper()
	req := types.NewRequestContext(server, &glsp.Context{})
	result, err := Initialize(req, params)
	require.NoError(t, err)
	require.IsType(t, InitializeResult{}, result)
	return result.(InitializeResult), req
}

func TestInitialize(t *testing.T) {
	quietLog(t)

	t.Run("root from rootUri", func(t *testing.T) {
		server := testutil.NewMockServerContext()
		root := "file:///workspace"
		initialize(t, server, &protocol.InitializeParams{RootURI: &root})
		assert.Equal(t, "file:///workspace", server.RootURI())
		assert.Equal(t, "/workspace", server.RootPath())
	})

	t.Run("root from rootPath", func(t *testing.T) {
		server := testutil.NewMockServerContext()
		root := "/workspace"
		initialize(t, server, &protocol.InitializeParams{RootPath: &root})
		assert.Equal(t, "/workspace", server.RootPath())
		assert.Equal(t, "file:///workspace", server.RootURI())
	})

	t.Run("no root", func(t *testing.T) {
		server := testutil.NewMockServerContext()
		initialize(t, server, &protocol.InitializeParams{})
		assert.Empty(t, server.RootURI())
		assert.Empty(t, server.RootPath())
	})

	t.Run("capabilities", func(t *testing.T) {
		result, _ := initialize(t, testutil.NewMockServerContext(), &protocol.InitializeParams{})
		for _, key := range []string{
			"textDocumentSync",
			"hoverProvider",
			"documentSymbolProvider",
			"selectionRangeProvider",
			"documentFormattingProvider",
			"colorProvider",
		} {
			assert.Contains(t, result.Capabilities, key)
		}

		sync, ok := result.Capabilities["textDocumentSync"].(protocol.TextDocumentSyncOptions)
		require.True(t, ok)
		assert.Equal(t, protocol.TextDocumentSyncKindIncremental, *sync.Change)
		assert.True(t, *sync.OpenClose)

		require.NotNil(t, result.ServerInfo)
		assert.Equal(t, ServerName, result.ServerInfo.Name)
		assert.NotEmpty(t, *result.ServerInfo.Version)
	})

	t.Run("initialization options configure the server", func(t *testing.T) {
		server := testutil.NewMockServerContext()
		initialize(t, server, &protocol.InitializeParams{
			InitializationOptions: map[string]any{"applyMixins": true},
		})
		assert.Equal(t, 1, server.ReloadConfigCalled)
		assert.True(t, server.GetConfig().ApplyMixins)
	})

	t.Run("config errors are warnings", func(t *testing.T) {
		server := testutil.NewMockServerContext()
		server.ReloadConfigFunc = func() error { return errors.New("bad yaml") }
		_, req := initialize(t, server, &protocol.InitializeParams{})
		require.Len(t, req.Warnings(), 1)
		assert.EqualError(t, req.Warnings()[0], "bad yaml")
	})
}

func TestInitialized(t *testing.T) {
	quietLog(t)

	t.Run("stores the client context and registers watchers", func(t *testing.T) {
		server := testutil.NewMockServerContext()
		ctx := &glsp.Context{}
		req := types.NewRequestContext(server, ctx)

		require.NoError(t, Initialized(req, &protocol.InitializedParams{}))
		assert.Same(t, ctx, server.GLSPContext())
		assert.True(t, server.RegisterWatchersCalled)
	})

	t.Run("watcher errors are warnings", func(t *testing.T) {
		server := testutil.NewMockServerContext()
		server.RegisterWatchersFunc = func(*glsp.Context) error { return errors.New("rejected") }
		req := types.NewRequestContext(server, &glsp.Context{})

		require.NoError(t, Initialized(req, &protocol.InitializedParams{}))
		require.True(t, req.HasWarnings())
		assert.Contains(t, req.Warnings()[0].Error(), "rejected")
	})
}

func TestShutdown(t *testing.T) {
	quietLog(t)
	server := testutil.NewMockServerContext()
	server.Open(t, "file:///a.css", "a{}")
	server.Open(t, "file:///b.css", "b{}")
	req := types.NewRequestContext(server, &glsp.Context{})

	require.NoError(t, Shutdown(req))
	assert.Empty(t, server.AllDocuments())
	assert.NoError(t, Shutdown(req), "repeated shutdown")
}

func TestSetTrace(t *testing.T) {
	quietLog(t)
	server := testutil.NewMockServerContext()
	cfg := server.GetConfig()
	cfg.LogLevel = "warn"
	server.SetConfig(cfg)
	req := types.NewRequestContext(server, nil)

	require.NoError(t, SetTrace(req, &protocol.SetTraceParams{Value: "verbose"}))
	assert.Equal(t, log.LevelDebug, log.GetLevel())

	require.NoError(t, SetTrace(req, &protocol.SetTraceParams{Value: "off"}))
	assert.Equal(t, log.LevelWarn, log.GetLevel())
}
