package lsp

import (
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/shadycss/internal/config"
	"bennypowers.dev/shadycss/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type published struct {
	method string
	params protocol.PublishDiagnosticsParams
}

func publishingContext() (*glsp.Context, *[]published) {
	var sent []published
	return &glsp.Context{
		Notify: func(method string, params any) {
			sent = append(sent, published{method, params.(protocol.PublishDiagnosticsParams)})
		},
	}, &sent
}

func TestNewServer(t *testing.T) {
	s := NewServer()
	require.NotNil(t, s.glspServer)
	assert.Equal(t, config.Default(), s.GetConfig())
	assert.Empty(t, s.AllDocuments())
}

func TestNewServerOptions(t *testing.T) {
	base := config.Default()
	base.ApplyMixins = true
	base.Format = config.FormatJSON

	s := NewServer(WithBaseConfig(base), WithLogLevel("debug"))
	cfg := s.GetConfig()
	assert.True(t, cfg.ApplyMixins)
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestServerState(t *testing.T) {
	s := NewServer()

	s.SetRootURI("file:///work")
	s.SetRootPath("/work")
	assert.Equal(t, "file:///work", s.RootURI())
	assert.Equal(t, "/work", s.RootPath())

	ctx := &glsp.Context{}
	s.SetGLSPContext(ctx)
	assert.Same(t, ctx, s.GLSPContext())

	require.NoError(t, s.DocumentManager().DidOpen("file:///a.css", "css", 1, "a{}"))
	assert.NotNil(t, s.Document("file:///a.css"))
	assert.Len(t, s.AllDocuments(), 1)
}

func TestReloadConfig(t *testing.T) {
	captureLog(t, log.LevelInfo)

	t.Run("defaults without a root", func(t *testing.T) {
		s := NewServer()
		require.NoError(t, s.ReloadConfig())
		assert.Equal(t, config.Default(), s.GetConfig())
	})

	t.Run("file then client settings", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".shady-css.yaml"), []byte("logLevel: warn\napplyMixins: true\n"), 0o644))

		s := NewServer()
		s.SetRootPath(dir)
		s.SetClientSettings(map[string]any{"logLevel": "error"})
		require.NoError(t, s.ReloadConfig())

		cfg := s.GetConfig()
		assert.True(t, cfg.ApplyMixins)
		assert.Equal(t, "error", cfg.LogLevel)
		assert.Equal(t, log.LevelError, log.GetLevel())
	})

	t.Run("keeps the previous config on error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "shady-css.json"), []byte(`{"format": "xml"}`), 0o644))

		s := NewServer()
		previous := s.GetConfig()
		previous.ApplyMixins = true
		s.SetConfig(previous)
		s.SetRootPath(dir)

		require.Error(t, s.ReloadConfig())
		assert.Equal(t, previous, s.GetConfig())
	})

	t.Run("layers over the base config", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".shady-css.yaml"), []byte("exclude:\n  - 'legacy/**'\n"), 0o644))

		base := config.Default()
		base.ApplyMixins = true
		base.Include = []string{"src/**"}

		s := NewServer(WithBaseConfig(base))
		s.SetRootPath(dir)
		require.NoError(t, s.ReloadConfig())

		cfg := s.GetConfig()
		assert.True(t, cfg.ApplyMixins, "base survives a workspace file")
		assert.Equal(t, []string{"src/**"}, cfg.Include)
		assert.Equal(t, []string{"legacy/**"}, cfg.Exclude, "workspace file wins over base")

		s.SetRootPath("")
		require.NoError(t, s.ReloadConfig())
		assert.Equal(t, base, s.GetConfig(), "no root keeps the base")
	})

	t.Run("fixed log level wins", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".shady-css.yaml"), []byte("logLevel: error\n"), 0o644))

		s := NewServer(WithLogLevel("warn"))
		s.SetRootPath(dir)
		s.SetClientSettings(map[string]any{"logLevel": "debug"})
		require.NoError(t, s.ReloadConfig())

		assert.Equal(t, "warn", s.GetConfig().LogLevel)
		assert.Equal(t, log.LevelWarn, log.GetLevel())
	})

	t.Run("invalid client settings", func(t *testing.T) {
		s := NewServer()
		s.SetClientSettings(map[string]any{"logLevel": "loud"})
		err := s.ReloadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid client settings")
	})
}

func TestPublishDiagnostics(t *testing.T) {
	captureLog(t, log.LevelInfo)

	t.Run("no connection", func(t *testing.T) {
		s := NewServer()
		assert.Error(t, s.PublishDiagnostics(nil, "file:///a.css"))
		assert.Error(t, s.PublishDiagnostics(&glsp.Context{}, "file:///a.css"))
	})

	t.Run("open document", func(t *testing.T) {
		s := NewServer()
		require.NoError(t, s.DocumentManager().DidOpen("file:///a.css", "css", 3, "a{b:c}\n}x{}"))
		ctx, sent := publishingContext()

		require.NoError(t, s.PublishDiagnostics(ctx, "file:///a.css"))
		require.Len(t, *sent, 1)
		got := (*sent)[0]
		assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, got.method)
		assert.Equal(t, "file:///a.css", got.params.URI)
		require.NotNil(t, got.params.Version)
		assert.Equal(t, protocol.UInteger(3), *got.params.Version)
		assert.Len(t, got.params.Diagnostics, 1)
	})

	t.Run("falls back to the stored context", func(t *testing.T) {
		s := NewServer()
		ctx, sent := publishingContext()
		s.SetGLSPContext(ctx)

		require.NoError(t, s.PublishDiagnostics(nil, "file:///closed.css"))
		require.Len(t, *sent, 1)
		assert.Nil(t, (*sent)[0].params.Version)
		assert.NotNil(t, (*sent)[0].params.Diagnostics)
		assert.Empty(t, (*sent)[0].params.Diagnostics)
	})
}

func TestRegisterFileWatchers(t *testing.T) {
	captureLog(t, log.LevelInfo)
	s := NewServer()
	assert.NoError(t, s.RegisterFileWatchers(nil))
	assert.NoError(t, s.RegisterFileWatchers(&glsp.Context{}))

	calls := make(chan string, 1)
	ctx := &glsp.Context{Call: func(method string, _ any, _ any) { calls <- method }}
	require.NoError(t, s.RegisterFileWatchers(ctx))
	assert.Equal(t, "client/registerCapability", <-calls)
}

func TestConfigWatchers(t *testing.T) {
	t.Run("no root", func(t *testing.T) {
		watchers := ConfigWatchers("")
		require.Len(t, watchers, len(config.FileNames))
		assert.Equal(t, "**/.shady-css.yaml", watchers[0].GlobPattern)
	})

	t.Run("root", func(t *testing.T) {
		watchers := ConfigWatchers("/work")
		assert.Equal(t, "/work/shady-css.json", watchers[2].GlobPattern)
	})
}
