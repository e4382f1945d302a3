package service

import (
	"deliverygateway/domain"
	"deliverygateway/helpers"
	"deliverygateway/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Membership is the single entry point for adding and removing upstream addresses: it keeps the registry
// and the prober in step so that every registered address of a probed service has exactly one probing task.
type Membership struct {
	registry interfaces.Registry
	prober   interfaces.Prober
	logger   log.Logger
}

// NewMembership panics on nil registry, prober or logger.
//
// Called from cmd/gateway; shared by the static config seed, the admin API and DiscoverySync.
func NewMembership(registry interfaces.Registry, prober interfaces.Prober, logger log.Logger) *Membership {
	return &Membership{
		registry: helpers.NilPanic(registry, "service.membership.go: registry is required"),
		prober:   helpers.NilPanic(prober, "service.membership.go: prober is required"),
		logger:   log.With(helpers.NilPanic(logger, "service.membership.go: logger is required"), "component", "membership"),
	}
}

// Add registers address under service and starts probing it.
// Returns: false when the address was already registered.
func (m *Membership) Add(service domain.ServiceName, address string) bool {
	added := m.registry.Register(service, address)
	m.prober.Watch(domain.UpstreamKey{Service: service, Address: address})
	return added
}

// Remove stops probing address and deregisters it.
// Returns: false when the address was not registered.
func (m *Membership) Remove(service domain.ServiceName, address string) bool {
	m.prober.Unwatch(domain.UpstreamKey{Service: service, Address: address})
	return m.registry.Deregister(service, address)
}

// Seed adds the static addresses of every configured service.
func (m *Membership) Seed(services map[domain.ServiceName]domain.ServiceConfig) {
	for name, cfg := range services {
		for _, address := range cfg.Addresses {
			m.Add(name, address)
		}
		level.Info(m.logger).Log("msg", "service seeded", "service", name, "static_addresses", len(cfg.Addresses), "dynamic", cfg.Dynamic())
	}
}

// Snapshot is the admin view of every address.
func (m *Membership) Snapshot() []domain.UpstreamAddress {
	return m.registry.Snapshot()
}
