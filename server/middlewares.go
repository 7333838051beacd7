package server

import "tango/middleware"

// Middlewares is the server-side middleware registry: lists keyed
// on API node pointer identity, never a field on Tree/Descriptor, so
// sharing the tree's shape never leaks middleware.
type Middlewares struct {
	reg *middleware.Registry[Node, *Context]
}

// NewMiddlewares creates an empty server middleware registry.
func NewMiddlewares() *Middlewares {
	return &Middlewares{reg: middleware.NewRegistry[Node, *Context]()}
}

// Attach appends stages to every node given, so a caller wanting to attach
// the same middleware to several nodes at once can pass them all in one
// call.
func (m *Middlewares) Attach(stages []middleware.Stage[*Context], nodes ...Node) {
	for _, n := range nodes {
		m.reg.Attach(n, stages...)
	}
}

// Get returns the stages attached to node, or nil.
func (m *Middlewares) Get(node Node) []middleware.Stage[*Context] {
	return m.reg.Get(node)
}
