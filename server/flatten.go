package server

import (
	"fmt"
	"strings"

	"tango/kebab"
	"tango/middleware"
)

// Route is one entry of a flattened RouteTable: the rpcType an endpoint
// was declared with, and a zero-argument handler closure that already
// embeds the composed middleware chain, schema validation, and user
// implementation.
type Route struct {
	RPCType RPCType
	Handler func(ctx *Context) (any, error)
}

// RouteTable maps a dot-joined, kebab-cased route key to its compiled
// Route. Built once by Flatten and never mutated afterwards.
type RouteTable map[string]Route

// Flatten walks tree depth-first, accumulating the middleware prefix at
// each branch, and emits one RouteTable entry per descriptor. It returns
// an error if two descriptors flatten to the same route key.
func Flatten(tree *Tree, mw *Middlewares) (RouteTable, error) {
	table := make(RouteTable)
	if err := flattenNode(tree, mw, nil, nil, table); err != nil {
		return nil, err
	}
	return table, nil
}

func flattenNode(node Node, mw *Middlewares, segments []string, prefix []middleware.Stage[*Context], table RouteTable) error {
	prefix = append(prefix, mw.Get(node)...)

	switch n := node.(type) {
	case *Descriptor:
		key := kebab.Join(segments)
		if _, exists := table[key]; exists {
			return fmt.Errorf("tango: duplicate route key %q", key)
		}
		table[key] = Route{
			RPCType: n.RPCType,
			Handler: buildHandler(n, prefix),
		}
		return nil
	case *Tree:
		for name, child := range n.Children {
			childSegments := append(append([]string{}, segments...), name)
			if err := flattenNode(child, mw, childSegments, prefix, table); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("tango: unknown node type %T", node)
	}
}

// buildHandler composes the captured middleware prefix with a terminal
// stage that parses/validates args and invokes the implementation.
func buildHandler(d *Descriptor, prefix []middleware.Stage[*Context]) func(ctx *Context) (any, error) {
	terminal := func(ctx *Context, _ middleware.Next) (any, error) {
		args := ctx.Args()
		if d.Schema != nil {
			parsed, err := d.Schema.Parse(args)
			if err != nil {
				return nil, err
			}
			if m, ok := parsed.(map[string]any); ok {
				args = m
			}
		}
		return d.Impl(args, ctx)
	}
	stages := append(append([]middleware.Stage[*Context]{}, prefix...), terminal)
	return func(ctx *Context) (any, error) {
		return middleware.Run(ctx, stages...)
	}
}

// routeKeyFromPath converts a pre-normalized request path (segments joined
// by "/" or already "." — tolerant of either, since the host router may
// supply either form) into the route key format Flatten produces.
func routeKeyFromPath(path string) string {
	path = strings.Trim(path, "/")
	path = strings.ReplaceAll(path, "/", ".")
	return path
}
