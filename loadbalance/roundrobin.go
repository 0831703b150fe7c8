package loadbalance

import (
	"sync/atomic"

	"framed-rpc/registry"
)

// RoundRobinBalancer cycles through endpoints in order.
type RoundRobinBalancer struct {
	next atomic.Uint64
}

func (b *RoundRobinBalancer) Pick(endpoints []registry.Endpoint) (registry.Endpoint, error) {
	if len(endpoints) == 0 {
		return registry.Endpoint{}, ErrNoEndpoints
	}
	n := b.next.Add(1) - 1
	return endpoints[n%uint64(len(endpoints))], nil
}
