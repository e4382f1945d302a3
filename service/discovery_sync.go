package service

import (
	"context"
	"sync"
	"time"

	"deliverygateway/domain"
	"deliverygateway/helpers"
	"deliverygateway/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const DefaultDiscoveryInterval = 5 * time.Second

// DiscoverySync keeps the addresses of one discovered service in step with its discoverer: a refresh loop
// calls Discoverer.GetInstances, adds instances that appeared and removes the ones that disappeared. Only
// addresses the sync added itself are ever removed by it, so addresses registered through the admin API
// survive refreshes. When the prober evicts an address after the retention window, Evicted asks the
// discoverer to unregister the instance too.
type DiscoverySync struct {
	service    domain.ServiceName
	discoverer interfaces.Discoverer
	membership *Membership
	interval   time.Duration
	logger     log.Logger

	mu    sync.Mutex
	known map[string]string // address -> instance id
}

// NewDiscoverySync creates the sync for one dynamic service. Panics on empty service or nil
// discoverer/membership/logger.
//
// Parameters: service — service name the instances are registered under; discoverer — source of instances
// (e.g. adapters.DiscovererHTTP); membership — registry and prober updates; interval — refresh interval
// (zero means DefaultDiscoveryInterval); logger — GetInstances errors are logged.
//
// Returns: *DiscoverySync. Nothing runs until Run is called.
//
// Called from cmd/gateway for each service with a discoverer_url.
func NewDiscoverySync(
	service domain.ServiceName,
	discoverer interfaces.Discoverer,
	membership *Membership,
	interval time.Duration,
	logger log.Logger,
) *DiscoverySync {
	if interval <= 0 {
		interval = DefaultDiscoveryInterval
	}
	helpers.StrPanic(service, "service.discovery_sync.go: service is required")
	return &DiscoverySync{
		service:    service,
		discoverer: helpers.NilPanic(discoverer, "service.discovery_sync.go: discoverer is required"),
		membership: helpers.NilPanic(membership, "service.discovery_sync.go: membership is required"),
		interval:   interval,
		logger:     log.With(helpers.NilPanic(logger, "service.discovery_sync.go: logger is required"), "component", "discovery_sync", "service", service),
		known:      make(map[string]string),
	}
}

// Run refreshes once immediately and then every interval until ctx is done.
//
// Called from cmd/gateway in its own goroutine; returns on shutdown.
func (s *DiscoverySync) Run(ctx context.Context) {
	s.Refresh(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// Refresh fetches the instance list and applies the difference. A GetInstances error is logged and leaves
// membership unchanged.
func (s *DiscoverySync) Refresh(ctx context.Context) {
	instances, err := s.discoverer.GetInstances(ctx)
	if err != nil {
		level.Warn(s.logger).Log("msg", "discoverer GetInstances failed", "err", err)
		return
	}

	current := make(map[string]string, len(instances))
	for _, inst := range instances {
		current[inst.Address()] = inst.InstanceID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for address := range s.known {
		if _, ok := current[address]; !ok {
			s.membership.Remove(s.service, address)
			delete(s.known, address)
		}
	}
	for address, id := range current {
		if _, ok := s.known[address]; ok {
			s.known[address] = id
			continue
		}
		// already registered statically or through the admin API: not ours to remove later
		if s.membership.Add(s.service, address) {
			s.known[address] = id
		}
	}
}

// Evicted handles a retention eviction reported by the prober: the instance is forgotten and unregistered
// from the discoverer. Keys of other services and addresses the sync never added are ignored.
func (s *DiscoverySync) Evicted(ctx context.Context, key domain.UpstreamKey) {
	if key.Service != s.service {
		return
	}
	s.mu.Lock()
	id, ok := s.known[key.Address]
	delete(s.known, key.Address)
	s.mu.Unlock()
	if !ok {
		return
	}
	if err := s.discoverer.UnregisterInstance(ctx, id); err != nil {
		level.Warn(s.logger).Log("msg", "discoverer UnregisterInstance failed", "instance_id", id, "err", err)
		return
	}
	level.Info(s.logger).Log("msg", "instance unregistered", "instance_id", id, "address", key.Address)
}
