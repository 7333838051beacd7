package discovery

import (
	"context"
	"fmt"

	"tango/balance"
)

// EtcdResolver implements client.Resolver (structurally — this package does
// not import client to avoid a dependency cycle back into the transport
// layer) by discovering serviceName's backends on every call and handing
// the list to a balance.Balancer. Each call therefore resolves a fresh
// origin, tolerating backend churn without the caller ever holding a stale
// address.
type EtcdResolver struct {
	registry    Registry
	balancer    balance.Balancer
	serviceName string
}

// NewEtcdResolver builds a resolver for serviceName over registry using
// balancer to pick among the discovered backends.
func NewEtcdResolver(registry Registry, balancer balance.Balancer, serviceName string) *EtcdResolver {
	return &EtcdResolver{registry: registry, balancer: balancer, serviceName: serviceName}
}

// Resolve satisfies client.Resolver's Resolve(ctx) (string, error) shape.
func (r *EtcdResolver) Resolve(_ context.Context) (string, error) {
	backends, err := r.registry.Discover(r.serviceName)
	if err != nil {
		return "", fmt.Errorf("tango: failed to discover %q: %w", r.serviceName, err)
	}
	if len(backends) == 0 {
		return "", fmt.Errorf("tango: no backends registered for %q", r.serviceName)
	}
	backend, err := r.balancer.Pick(backends)
	if err != nil {
		return "", err
	}
	return backend.Origin, nil
}
