// Package registry provides optional server endpoint discovery.
//
// The client itself targets a fixed (host, port); discovery only decides
// which (host, port) to hand it. Servers may register themselves under a
// service name, and clients resolve that name to one or more endpoints
// before dialing.
package registry

// Endpoint describes one reachable server instance.
type Endpoint struct {
	Addr   string // "host:port"
	Weight int    // relative weight for load balancing, 0 means 1
}

// Registry is the discovery surface. Implementations must be safe for
// concurrent use.
type Registry interface {
	Register(service string, endpoint Endpoint, ttl int64) error
	Deregister(service string, addr string) error
	Discover(service string) ([]Endpoint, error)
	Watch(service string) <-chan []Endpoint
}
