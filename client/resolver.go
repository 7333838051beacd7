package client

import "context"

// Resolver picks a concrete HTTP origin for a call, resolved immediately
// before the transport builds the request (expansion, see SPEC_FULL.md
// "Supplemented feature: multi-backend client resolution"). A fixed
// baseURL is wrapped in staticResolver so Caller always goes through this
// seam.
type Resolver interface {
	Resolve(ctx context.Context) (baseURL string, err error)
}

type staticResolver string

func (s staticResolver) Resolve(context.Context) (string, error) {
	return string(s), nil
}
