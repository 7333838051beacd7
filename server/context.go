package server

import (
	"net/http"
	"time"
)

// Adapter is the opaque host-specific value made available to middleware
// and implementations. Tango's host framework is net/http plus go-chi/chi
// for route param extraction — the core dispatcher never imports chi
// directly; only adapter_chi.go does, and it fills this struct in.
type Adapter struct {
	Request    *http.Request
	RouteParam string // the raw, pre-flattening route path chi extracted
}

// Context is the per-request mutable bag threaded through the server
// pipeline. It is created fresh for every request and discarded after
// the response is written.
type Context struct {
	args           map[string]any
	requestHeader  http.Header
	responseHeader http.Header
	status         Status
	cache          Cache
	Env            map[string]any
	Adapter        Adapter
	start          time.Time
}

// NewContext builds a per-request context from already-parsed args and the
// host adapter value.
func NewContext(args map[string]any, adapter Adapter) *Context {
	return &Context{
		args:           args,
		requestHeader:  adapter.Request.Header,
		responseHeader: make(http.Header),
		status:         Status{code: http.StatusOK},
		Env:            make(map[string]any),
		Adapter:        adapter,
		start:          time.Now(),
	}
}

// Args materializes the parsed argument map. Returns a fresh map each call
// so middleware cannot mutate the context's internal copy by reference.
func (c *Context) Args() map[string]any {
	out := make(map[string]any, len(c.args))
	for k, v := range c.args {
		out[k] = v
	}
	return out
}

// RequestHeader is a read-only view of the incoming request's headers.
func (c *Context) RequestHeader() http.Header { return c.requestHeader }

// ResponseHeader is the mutable header set written back to the client.
func (c *Context) ResponseHeader() http.Header { return c.responseHeader }

// Status returns the status shortcut set for this context.
func (c *Context) Status() *Status { return &c.status }

// Cache returns the cache directive controller for this context.
func (c *Context) Cache() *Cache { return &c.cache }

// ElapsedTime is computed from the context's creation time at read time.
func (c *Context) ElapsedTime() time.Duration {
	return time.Since(c.start)
}
