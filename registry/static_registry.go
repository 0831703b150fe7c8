package registry

import "sync"

// StaticRegistry is an in-memory Registry for fixed topologies: tests,
// local development, or a client configured with explicit addresses.
// Watch is not supported (the set never changes behind the caller's back).
type StaticRegistry struct {
	mu        sync.RWMutex
	endpoints map[string][]Endpoint
}

func NewStaticRegistry() *StaticRegistry {
	return &StaticRegistry{endpoints: make(map[string][]Endpoint)}
}

// Static builds a registry holding the given addresses for one service.
func Static(service string, addrs ...string) *StaticRegistry {
	r := NewStaticRegistry()
	for _, addr := range addrs {
		r.Register(service, Endpoint{Addr: addr}, 0)
	}
	return r
}

func (r *StaticRegistry) Register(service string, endpoint Endpoint, ttl int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endpoints[service] = append(r.endpoints[service], endpoint)
	return nil
}

func (r *StaticRegistry) Deregister(service string, addr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	eps := r.endpoints[service]
	for i, ep := range eps {
		if ep.Addr == addr {
			r.endpoints[service] = append(eps[:i], eps[i+1:]...)
			break
		}
	}
	return nil
}

func (r *StaticRegistry) Discover(service string) ([]Endpoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	eps := make([]Endpoint, len(r.endpoints[service]))
	copy(eps, r.endpoints[service])
	return eps, nil
}

func (r *StaticRegistry) Watch(service string) <-chan []Endpoint {
	return nil
}
