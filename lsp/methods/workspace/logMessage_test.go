package workspace

import (
	"bytes"
	"os"
	"testing"
	"time"

	"bennypowers.dev/shadycss/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type notification struct {
	method string
	params any
}

func recordingContext() (*glsp.Context, chan notification) {
	ch := make(chan notification, 4)
	return &glsp.Context{
		Notify: func(method string, params any) {
			ch <- notification{method, params}
		},
	}, ch
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func receive(t *testing.T, ch chan notification) notification {
	t.Helper()
	select {
	case n := <-ch:
		return n
	case <-time.After(time.Second):
		require.FailNow(t, "no notification sent")
		return notification{}
	}
}

func TestLogError(t *testing.T) {
	buf := captureLog(t)
	ctx, ch := recordingContext()

	LogError(ctx, "failed: %s", "boom")

	assert.Contains(t, buf.String(), "ERROR: failed: boom")
	n := receive(t, ch)
	assert.Equal(t, protocol.ServerWindowLogMessage, n.method)
	params := n.params.(*protocol.LogMessageParams)
	assert.Equal(t, protocol.MessageTypeError, params.Type)
	assert.Equal(t, "failed: boom", params.Message)
}

func TestLogWarning(t *testing.T) {
	buf := captureLog(t)
	ctx, ch := recordingContext()

	LogWarning(ctx, "odd %d", 1)

	assert.Contains(t, buf.String(), "WARN: odd 1")
	params := receive(t, ch).params.(*protocol.LogMessageParams)
	assert.Equal(t, protocol.MessageTypeWarning, params.Type)
}

func TestShowMessage(t *testing.T) {
	ctx, ch := recordingContext()
	ShowMessage(ctx, protocol.MessageTypeInfo, "hello")

	n := receive(t, ch)
	assert.Equal(t, protocol.ServerWindowShowMessage, n.method)
	assert.Equal(t, "hello", n.params.(*protocol.ShowMessageParams).Message)
}

func TestNoClient(t *testing.T) {
	captureLog(t)
	assert.NotPanics(t, func() {
		LogError(nil, "x")
		LogWarning(&glsp.Context{}, "y")
		ShowMessage(nil, protocol.MessageTypeInfo, "z")
	})
}
