// Package server implements the Tango server half: the API tree, the
// startup flattener that compiles it into a routing table, and the
// per-request dispatcher that walks that table.
package server

// RPCType is one of the three call shapes Tango supports. It determines
// the accepted HTTP method and the argument encoding.
type RPCType string

const (
	Query   RPCType = "query"
	Command RPCType = "command"
	Get     RPCType = "get"
)

// Implementation is the user-supplied handler body: parsed, validated args
// in, a result (or an error) out.
type Implementation func(args map[string]any, ctx *Context) (any, error)

// Node is implemented by both *Tree and *Descriptor. A tree's shape is
// shared with client-side typed wrapper generation, so neither
// implementation carries middleware as a regular field — see Middlewares.
type Node interface {
	isNode()
}

// Descriptor is a leaf of the API tree: an rpcType bound to an
// implementation and an optional validation schema. Descriptors are
// immutable once built except for the middleware list attached out-of-band
// via Middlewares.
type Descriptor struct {
	RPCType RPCType
	Impl    Implementation
	Schema  Schema // nil if the endpoint takes unvalidated args
}

func (*Descriptor) isNode() {}

// NewDescriptor builds an endpoint descriptor. schema may be nil.
func NewDescriptor(rpcType RPCType, impl Implementation, schema Schema) *Descriptor {
	return &Descriptor{RPCType: rpcType, Impl: impl, Schema: schema}
}

// Tree maps a segment name to either another Tree or a Descriptor, forming
// a nested API definition. Tree is always used as *Tree so that its
// pointer has a stable identity — Go maps aren't hashable and can't serve
// as their own registry key, so middleware attachment goes through an
// out-of-band map[Node]... keyed on this pointer instead.
type Tree struct {
	Children map[string]Node
}

func (*Tree) isNode() {}

// NewTree builds an empty API tree node.
func NewTree() *Tree {
	return &Tree{Children: make(map[string]Node)}
}

// Set attaches a child node under name, returning the tree for chaining.
func (t *Tree) Set(name string, node Node) *Tree {
	t.Children[name] = node
	return t
}
