// Package discovery's etcd backend: a distributed phonebook of service
// name -> HTTP origin. TTL leases mean a crashed backend's entry expires
// on its own rather than lingering as a ghost route.
package discovery

import (
	"context"
	"encoding/json"

	clientv3 "go.etcd.io/etcd/client/v3"

	"tango/balance"
)

// EtcdRegistry implements Registry using etcd v3, storing keys under
// /tango/{serviceName}/{origin}.
type EtcdRegistry struct {
	client *clientv3.Client
}

// NewEtcdRegistry connects to the given etcd endpoints.
func NewEtcdRegistry(endpoints []string) (*EtcdRegistry, error) {
	c, err := clientv3.New(clientv3.Config{Endpoints: endpoints})
	if err != nil {
		return nil, err
	}
	return &EtcdRegistry{client: c}, nil
}

// Register stores backend under a TTL lease and starts a background
// KeepAlive so the entry survives only as long as this process renews it.
func (r *EtcdRegistry) Register(serviceName string, backend balance.Backend, ttlSeconds int64) error {
	ctx := context.TODO()

	lease, err := r.client.Grant(ctx, ttlSeconds)
	if err != nil {
		return err
	}

	val, err := json.Marshal(backend)
	if err != nil {
		return err
	}

	_, err = r.client.Put(ctx, "/tango/"+serviceName+"/"+backend.Origin, string(val), clientv3.WithLease(lease.ID))
	if err != nil {
		return err
	}

	ch, err := r.client.KeepAlive(ctx, lease.ID)
	if err != nil {
		return err
	}
	go func() {
		for range ch {
		}
	}()
	return nil
}

// Deregister removes the entry for origin under serviceName.
func (r *EtcdRegistry) Deregister(serviceName, origin string) error {
	_, err := r.client.Delete(context.TODO(), "/tango/"+serviceName+"/"+origin)
	return err
}

// Discover returns every currently-registered backend for serviceName.
func (r *EtcdRegistry) Discover(serviceName string) ([]balance.Backend, error) {
	prefix := "/tango/" + serviceName + "/"
	resp, err := r.client.Get(context.TODO(), prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, err
	}

	backends := make([]balance.Backend, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var backend balance.Backend
		if err := json.Unmarshal(kv.Value, &backend); err != nil {
			continue
		}
		backends = append(backends, backend)
	}
	return backends, nil
}

// Watch emits a refreshed backend list for serviceName whenever etcd
// reports any change under its prefix.
func (r *EtcdRegistry) Watch(serviceName string) <-chan []balance.Backend {
	out := make(chan []balance.Backend, 1)
	prefix := "/tango/" + serviceName + "/"

	go func() {
		watchChan := r.client.Watch(context.TODO(), prefix, clientv3.WithPrefix())
		for range watchChan {
			backends, err := r.Discover(serviceName)
			if err == nil {
				out <- backends
			}
		}
	}()

	return out
}
