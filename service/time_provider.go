package service

import (
	"time"

	"deliverygateway/helpers"
	"deliverygateway/interfaces"
)

// clockFunc adapts a plain func to interfaces.TimeProvider.
type clockFunc func() time.Time

func (f clockFunc) Now() time.Time { return f() }

// NewTimeProvider wraps now as the clock shared by the breaker set, the prober, the cache-aside store and the
// catalog service. Panics on nil now.
func NewTimeProvider(now func() time.Time) interfaces.TimeProvider {
	return clockFunc(helpers.NilPanic(now, "service.time_provider.go: now is required"))
}

// SystemClock is the production clock: wall time in UTC, so probe, breaker and created_at timestamps never
// carry a local zone.
func SystemClock() interfaces.TimeProvider {
	return NewTimeProvider(func() time.Time { return time.Now().UTC() })
}
