package lsp

import (
	"fmt"
	"runtime/debug"

	"bennypowers.dev/shadycss/internal/log"
	"bennypowers.dev/shadycss/lsp/methods/workspace"
	"bennypowers.dev/shadycss/lsp/types"
	"github.com/tliron/glsp"
)

// method wraps a request handler with panic recovery, logging and error
// wrapping. The returned func matches the protocol.Handler field types.
func method[P, R any](
	s types.ServerContext,
	name string,
	handler func(*types.RequestContext, P) (R, error),
) func(*glsp.Context, P) (R, error) {
	return func(ctx *glsp.Context, params P) (result R, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(ctx, name, r)
				var zero R
				result = zero
			}
		}()

		log.Debug("%s started", name)
		req := types.NewRequestContext(s, ctx)
		result, err = handler(req, params)
		return result, finish(req, name, err)
	}
}

// notify wraps a notification handler
func notify[P any](
	s types.ServerContext,
	name string,
	handler func(*types.RequestContext, P) error,
) func(*glsp.Context, P) error {
	return func(ctx *glsp.Context, params P) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(ctx, name, r)
			}
		}()

		log.Debug("%s started", name)
		req := types.NewRequestContext(s, ctx)
		return finish(req, name, handler(req, params))
	}
}

// noParam wraps a handler that takes no params, such as shutdown
func noParam(
	s types.ServerContext,
	name string,
	handler func(*types.RequestContext) error,
) func(*glsp.Context) error {
	return func(ctx *glsp.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(ctx, name, r)
			}
		}()

		log.Debug("%s started", name)
		req := types.NewRequestContext(s, ctx)
		return finish(req, name, handler(req))
	}
}

func recovered(ctx *glsp.Context, name string, r any) error {
	log.Error("PANIC in %s: %v\n%s", name, r, debug.Stack())
	workspace.LogError(ctx, "Internal error in %s: %v", name, r)
	return fmt.Errorf("internal error in %s", name)
}

// finish logs the outcome of a handler. Warnings are only reported when the
// handler succeeded.
func finish(req *types.RequestContext, name string, err error) error {
	if err != nil {
		workspace.LogError(req.GLSP, "%s: %v", name, err)
		return fmt.Errorf("%s: %w", name, err)
	}
	for _, warning := range req.Warnings() {
		log.Warn("%s: %v", name, warning)
	}
	log.Debug("%s completed", name)
	return nil
}
