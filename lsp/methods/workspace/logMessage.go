package workspace

import (
	"fmt"

	"bennypowers.dev/shadycss/internal/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// LogError logs to stderr and sends window/logMessage to the client.
func LogError(ctx *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Error("%s", message)
	notifyClient(ctx, protocol.ServerWindowLogMessage, &protocol.LogMessageParams{
		Type:    protocol.MessageTypeError,
		Message: message,
	})
}

// LogWarning logs to stderr and sends window/logMessage to the client.
func LogWarning(ctx *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Warn("%s", message)
	notifyClient(ctx, protocol.ServerWindowLogMessage, &protocol.LogMessageParams{
		Type:    protocol.MessageTypeWarning,
		Message: message,
	})
}

// ShowMessage asks the client to display message to the user
func ShowMessage(ctx *glsp.Context, messageType protocol.MessageType, message string) {
	notifyClient(ctx, protocol.ServerWindowShowMessage, &protocol.ShowMessageParams{
		Type:    messageType,
		Message: message,
	})
}

// notifyClient sends asynchronously so that handlers never block on the
// connection. Contexts without a Notify func, as in tests, are skipped.
func notifyClient(ctx *glsp.Context, method string, params any) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	go ctx.Notify(method, params)
}
