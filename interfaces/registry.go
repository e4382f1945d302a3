package interfaces

import "deliverygateway/domain"

// Registry tracks the addresses backing each logical service and their probe-derived health.
// Breaker state is not stored here: ListHealthy consults Breakers on every call so that an Open breaker
// removes its address from rotation immediately.
//
// Implemented by service.upstreamRegistry. Written by service.Membership (Register/Deregister) and
// service.prober (MarkProbe, Deregister on retention); read by service.Router, service.DiscoverySync and
// the admin handlers.
//
//go:generate moq -stub -out mock/registry.go -pkg mock . Registry
type Registry interface {
	// Register adds address to service with health Healthy. Idempotent.
	// Returns: true when the address was added; false when it was already registered.
	Register(service domain.ServiceName, address string) bool

	// Deregister removes address from service and drops its breaker. The service name stays known, so
	// ListHealthy keeps returning an empty slice rather than unknown_service.
	// Returns: true when the address was registered; false otherwise.
	Deregister(service domain.ServiceName, address string) bool

	// ListHealthy returns the addresses of service that are not Down and whose breaker is not Open, rotated
	// round-robin across calls. The slice is freshly allocated; calling again restarts the sequence.
	// Returns: (addresses, nil), possibly empty; (nil, unknown_service) when nothing was ever registered under service.
	// Called from service.Router.Route for every request.
	ListHealthy(service domain.ServiceName) ([]domain.UpstreamAddress, error)

	// MarkProbe stores the result of a probe for key.
	// Returns: false when key is no longer registered (the prober stops probing it).
	// Called from service.prober after every probe.
	MarkProbe(key domain.UpstreamKey, status domain.HealthStatus) bool

	// Addresses returns every registered address of service regardless of health, sorted.
	// Called from service.DiscoverySync to diff against the discoverer.
	Addresses(service domain.ServiceName) []string

	// Snapshot returns every registered address with health and breaker snapshot, sorted by service then address.
	// Called from the admin API.
	Snapshot() []domain.UpstreamAddress
}
