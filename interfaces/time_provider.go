package interfaces

import "time"

// TimeProvider supplies the current time for cache TTL checks, probe timestamps and breaker transitions.
// Injected so tests can move a fake clock instead of sleeping.
//
// Constructed in cmd as service.SystemClock().
//
//go:generate moq -stub -out mock/time_provider.go -pkg mock . TimeProvider
type TimeProvider interface {
	// Now returns current time (UTC in prod; in tests a fixed or manually advanced time).
	Now() time.Time
}
