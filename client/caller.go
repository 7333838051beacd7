package client

import (
	"context"
	"net/http"

	"tango/middleware"
	"tango/server"
)

// Caller is Tango's typed client call surface: Query/Command/Get methods
// that build a request, run it through client middleware, and dispatch it
// over HTTP. Generated-style typed wrappers are thin structs over a
// *Caller (see example_typed_test.go).
type Caller struct {
	resolver    Resolver
	middlewares *Middlewares
	transport   *transport
}

// CallerOption configures a Caller at construction time.
type CallerOption func(*Caller)

// WithHTTPClient overrides the *http.Client used for every call.
func WithHTTPClient(hc *http.Client) CallerOption {
	return func(c *Caller) { c.transport = newTransport(hc) }
}

// WithMiddlewares attaches a pre-built middleware registry instead of an
// empty one.
func WithMiddlewares(mw *Middlewares) CallerOption {
	return func(c *Caller) { c.middlewares = mw }
}

// New builds a Caller against a fixed base URL.
func New(baseURL string, opts ...CallerOption) *Caller {
	return NewWithResolver(staticResolver(baseURL), opts...)
}

// NewWithResolver builds a Caller that resolves a fresh origin from
// resolver before every call (the multi-backend expansion, see
// SPEC_FULL.md).
func NewWithResolver(resolver Resolver, opts ...CallerOption) *Caller {
	c := &Caller{
		resolver:    resolver,
		middlewares: NewMiddlewares(),
		transport:   newTransport(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Middlewares exposes the registry so callers can attach global/prefix
// middleware before issuing calls (append semantics).
func (c *Caller) Middlewares() *Middlewares { return c.middlewares }

// Query performs a `query` call and returns the decoded result.
func (c *Caller) Query(ctx context.Context, path []string, args map[string]any, opts ...CallOption) (any, error) {
	callCtx, err := c.call(ctx, server.Query, path, args, opts)
	if err != nil {
		return nil, err
	}
	return callCtx.Result, nil
}

// QueryCtx is Query's `_ctx` variant: returns the populated Context instead
// of just the result.
func (c *Caller) QueryCtx(ctx context.Context, path []string, args map[string]any, opts ...CallOption) (*Context, error) {
	return c.call(ctx, server.Query, path, args, opts)
}

// Command performs a `command` call.
func (c *Caller) Command(ctx context.Context, path []string, args map[string]any, opts ...CallOption) (any, error) {
	callCtx, err := c.call(ctx, server.Command, path, args, opts)
	if err != nil {
		return nil, err
	}
	return callCtx.Result, nil
}

// CommandCtx is Command's `_ctx` variant.
func (c *Caller) CommandCtx(ctx context.Context, path []string, args map[string]any, opts ...CallOption) (*Context, error) {
	return c.call(ctx, server.Command, path, args, opts)
}

// Get performs a `get` call.
func (c *Caller) Get(ctx context.Context, path []string, args map[string]any, opts ...CallOption) (any, error) {
	callCtx, err := c.call(ctx, server.Get, path, args, opts)
	if err != nil {
		return nil, err
	}
	return callCtx.Result, nil
}

// GetCtx is Get's `_ctx` variant.
func (c *Caller) GetCtx(ctx context.Context, path []string, args map[string]any, opts ...CallOption) (*Context, error) {
	return c.call(ctx, server.Get, path, args, opts)
}

// call builds the context, assembles the middleware chain (global ⧺
// depth₁ ⧺ … ⧺ depthₙ), appends the transport terminal stage, and runs
// the pipeline.
func (c *Caller) call(ctx context.Context, rpcType server.RPCType, path []string, args map[string]any, opts []CallOption) (*Context, error) {
	o := buildCallOptions(opts)
	callCtx := newContext(path, args, rpcType, o.headers, o.onProgress)

	baseURL, err := c.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	terminal := func(cc *Context, _ middleware.Next) (any, error) {
		if err := c.transport.dispatch(ctx, baseURL, cc); err != nil {
			return nil, err
		}
		return cc.Result, nil
	}

	stages := append(c.middlewares.chainFor(path), terminal)
	if _, err := middleware.Run(callCtx, stages...); err != nil {
		return nil, err
	}
	return callCtx, nil
}
