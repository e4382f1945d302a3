package interfaces

import (
	"context"

	"deliverygateway/domain"
)

// Probe performs one lightweight liveness check against an address.
//
// Implemented by adapters.HTTPProbe (GET <path>) and adapters.GRPCProbe (grpc.health.v1).
// Called from the prober task of each watched address under a per-probe timeout.
//
//go:generate moq -stub -out mock/probe.go -pkg mock . Probe
type Probe interface {
	// Check returns nil when address is alive; any error counts as a probe failure.
	// Parameters: ctx — carries the probe timeout; address — host:port.
	Check(ctx context.Context, address string) error
}

// Prober owns one background probing task per watched address.
//
// Implemented by service.prober. Called from service.Membership.
//
//go:generate moq -stub -out mock/prober.go -pkg mock . Prober
type Prober interface {
	// Watch starts probing key. No-op when key is already watched, the service has no probe configured or
	// the prober is closed.
	// Returns: true when a new task was started.
	Watch(key domain.UpstreamKey) bool

	// Unwatch stops the task of key without waiting for it.
	Unwatch(key domain.UpstreamKey)

	// Close stops all tasks and waits for them to exit. Watch after Close is a no-op.
	Close()
}
