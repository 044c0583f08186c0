package types

import (
	"fmt"

	"bennypowers.dev/shadycss/internal/documents"
	"github.com/tliron/glsp"
)

// RequestContext carries one LSP call: the server state, the glsp connection
// and any non-fatal problems met while handling it.
type RequestContext struct {
	Server   ServerContext
	GLSP     *glsp.Context
	warnings []error
}

// NewRequestContext creates a new request context
func NewRequestContext(server ServerContext, ctx *glsp.Context) *RequestContext {
	return &RequestContext{Server: server, GLSP: ctx}
}

// Document returns the open document for uri, or nil.
func (r *RequestContext) Document(uri string) *documents.Document {
	if r.Server == nil {
		return nil
	}
	return r.Server.Document(uri)
}

// AddWarning records a non-fatal error. The middleware logs warnings once the
// handler returns successfully.
func (r *RequestContext) AddWarning(err error) {
	if err != nil {
		r.warnings = append(r.warnings, err)
	}
}

// Warnf is AddWarning with a formatted message.
func (r *RequestContext) Warnf(format string, args ...any) {
	r.AddWarning(fmt.Errorf(format, args...))
}

// Warnings returns the recorded warnings, or nil.
func (r *RequestContext) Warnings() []error {
	return r.warnings
}

func (r *RequestContext) HasWarnings() bool {
	return len(r.warnings) > 0
}
