// Package discovery answers "find an HTTP origin for a service": an
// etcd-backed registry of service name to routable backend, with watch
// support for live membership changes.
package discovery

import "tango/balance"

// Registry is the service discovery interface: register an origin, look up
// all currently-registered origins for a service, and watch for changes.
type Registry interface {
	Register(serviceName string, backend balance.Backend, ttlSeconds int64) error
	Deregister(serviceName, origin string) error
	Discover(serviceName string) ([]balance.Backend, error)
	Watch(serviceName string) <-chan []balance.Backend
}
