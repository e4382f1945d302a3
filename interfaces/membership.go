package interfaces

import "deliverygateway/domain"

// UpstreamMembership adds and removes upstream addresses at runtime.
//
// Implemented by service.Membership. Called from the admin handlers.
//
//go:generate moq -stub -out mock/membership.go -pkg mock . UpstreamMembership
type UpstreamMembership interface {
	// Add registers and starts probing address. Returns false when it was already registered.
	Add(service domain.ServiceName, address string) bool

	// Remove stops probing and deregisters address. Returns false when it was not registered.
	Remove(service domain.ServiceName, address string) bool

	// Snapshot returns every registered address with its health and breaker state.
	Snapshot() []domain.UpstreamAddress
}
