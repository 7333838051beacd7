// Package client implements the Tango client call surface: a typed
// Caller, a middleware registry keyed by route prefix, and the HTTP
// transport that builds requests, handles uploads and progress, and
// decodes responses.
package client

import (
	"net/http"
	"time"

	"tango/server"
)

// Progress reports upload/download byte counts for a call with OnProgress
// set.
type Progress struct {
	Loaded  int64
	Total   int64   // -1 when the total is unknown
	Percent float64 // -1 when Total is unknown
	Phase   Phase
}

// Phase identifies which half of the exchange a Progress event describes.
type Phase string

const (
	PhaseUpload   Phase = "upload"
	PhaseDownload Phase = "download"
)

// Context is the per-call mutable bag threaded through the client
// pipeline. It is created fresh for every call.
type Context struct {
	Path    []string
	Args    map[string]any
	RPCType server.RPCType

	Headers http.Header

	OnProgress func(Progress)

	Result   any
	Response *http.Response

	start time.Time
}

func newContext(path []string, args map[string]any, rpcType server.RPCType, headers http.Header, onProgress func(Progress)) *Context {
	if args == nil {
		args = map[string]any{}
	}
	return &Context{
		Path:       path,
		Args:       args,
		RPCType:    rpcType,
		Headers:    headers,
		OnProgress: onProgress,
		start:      time.Now(),
	}
}

// ElapsedTime mirrors the server context's symmetric accessor.
func (c *Context) ElapsedTime() time.Duration {
	return time.Since(c.start)
}

// callOptions accumulates per-call configuration from CallOption values
// before a Context is built.
type callOptions struct {
	headers    http.Header
	onProgress func(Progress)
	debug      bool
}

// CallOption configures a single call: headers, progress reporting,
// debug logging. Cancellation is not a CallOption — it goes through the
// ctx context.Context parameter every Caller method already takes.
type CallOption func(*callOptions)

// WithHeader merges a single header into the call's request headers,
// overriding the default `Accept: application/msgpack` if the same key is
// given.
func WithHeader(key, value string) CallOption {
	return func(o *callOptions) {
		if o.headers == nil {
			o.headers = make(http.Header)
		}
		o.headers.Set(key, value)
	}
}

// WithOnProgress switches the call onto the progress-reporting transport
// path.
func WithOnProgress(fn func(Progress)) CallOption {
	return func(o *callOptions) { o.onProgress = fn }
}

// WithDebug sets the call's debug flag. Caller has no logger, and nothing
// in this package reads the flag, so it does not change how the call runs.
func WithDebug() CallOption {
	return func(o *callOptions) { o.debug = true }
}

func buildCallOptions(opts []CallOption) *callOptions {
	o := &callOptions{headers: http.Header{"Accept": []string{"application/msgpack"}}}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
