package client

import (
	"tango/kebab"
	"tango/middleware"
)

// Middlewares is the client-side middleware registry. Unlike the server
// side, client nodes are not pointers into a shared tree — the path
// segments themselves are the identity — so this registry is keyed by
// the kebab-joined route prefix string rather than by Node.
type Middlewares struct {
	reg *middleware.Registry[string, *Context]
}

// NewMiddlewares creates an empty client middleware registry.
func NewMiddlewares() *Middlewares {
	return &Middlewares{reg: middleware.NewRegistry[string, *Context]()}
}

// UseGlobal attaches stages under the global key (the `""` prefix), run
// before any prefix-specific stage on every call.
func (m *Middlewares) UseGlobal(stages ...middleware.Stage[*Context]) {
	m.reg.Attach("", stages...)
}

// Use attaches stages to the prefix identified by path (pre-normalization
// segments; kebab-joined here the same way route keys are built). Append
// semantics: repeated calls for the same prefix accumulate, never replace.
func (m *Middlewares) Use(path []string, stages ...middleware.Stage[*Context]) {
	m.reg.Attach(kebab.Join(path), stages...)
}

// chainFor assembles global ⧺ depth₁ ⧺ … ⧺ depthₙ for path.
func (m *Middlewares) chainFor(path []string) []middleware.Stage[*Context] {
	var chain []middleware.Stage[*Context]
	chain = append(chain, m.reg.Get("")...)
	for i := 1; i <= len(path); i++ {
		chain = append(chain, m.reg.Get(kebab.Join(path[:i]))...)
	}
	return chain
}
