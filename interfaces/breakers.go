package interfaces

import "deliverygateway/domain"

// Breakers is the set of per-address circuit breakers. Each key gets its own breaker on first use; unrelated
// keys never contend on a shared lock.
//
// Implemented by service.breakerSet on top of sony/gobreaker. Called from service.Router around every
// forwarding attempt and from service.upstreamRegistry to filter ListHealthy.
//
//go:generate moq -stub -out mock/breakers.go -pkg mock . Breakers
type Breakers interface {
	// Allow asks the breaker of key for permission to send one request.
	// Returns: (done, nil) when the call may proceed; the caller must invoke done exactly once with the outcome.
	// (nil, circuit_open) when the breaker is Open or a HalfOpen trial is already in flight.
	Allow(key domain.UpstreamKey) (done func(success bool), err error)

	// State returns the current state of the breaker for key; Closed when no breaker exists yet.
	State(key domain.UpstreamKey) domain.BreakerState

	// Snapshot returns state, consecutive failures and last transition time for key.
	Snapshot(key domain.UpstreamKey) domain.BreakerSnapshot

	// Remove drops the breaker for key. Called when the address is deregistered.
	Remove(key domain.UpstreamKey)
}
