// Package loadbalance picks one server endpoint from a discovered set.
//
// A framed-rpc client holds a single exclusive connection, so balancing
// happens once per client, at dial time: discover the service, pick an
// endpoint, dial it.
package loadbalance

import (
	"errors"

	"framed-rpc/registry"
)

var ErrNoEndpoints = errors.New("loadbalance: no endpoints available")

// Balancer selects one endpoint from a non-empty list.
type Balancer interface {
	Pick(endpoints []registry.Endpoint) (registry.Endpoint, error)
}
