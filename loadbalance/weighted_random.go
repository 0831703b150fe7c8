package loadbalance

import (
	"math/rand"

	"framed-rpc/registry"
)

// WeightedRandomBalancer picks endpoints randomly, proportionally to their
// weight. Endpoints with weight 0 count as weight 1.
type WeightedRandomBalancer struct{}

func (b *WeightedRandomBalancer) Pick(endpoints []registry.Endpoint) (registry.Endpoint, error) {
	if len(endpoints) == 0 {
		return registry.Endpoint{}, ErrNoEndpoints
	}

	total := 0
	for _, ep := range endpoints {
		total += weightOf(ep)
	}

	n := rand.Intn(total)
	for _, ep := range endpoints {
		n -= weightOf(ep)
		if n < 0 {
			return ep, nil
		}
	}
	return endpoints[len(endpoints)-1], nil
}

func weightOf(ep registry.Endpoint) int {
	if ep.Weight <= 0 {
		return 1
	}
	return ep.Weight
}
