package domain

import "time"

// BreakerState is the state of a per-address circuit breaker.
type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half_open"
)

const (
	DefaultFailureThreshold = 5
	DefaultCoolDown         = 30 * time.Second
)

// BreakerSettings configures every breaker created by the breaker set.
// FailureThreshold is the number of consecutive failures that opens a closed breaker;
// CoolDown is how long an open breaker rejects calls before allowing one trial.
type BreakerSettings struct {
	FailureThreshold int
	CoolDown         time.Duration
}

// WithDefaults returns a copy with zero fields replaced by DefaultFailureThreshold and DefaultCoolDown.
func (s BreakerSettings) WithDefaults() BreakerSettings {
	if s.FailureThreshold <= 0 {
		s.FailureThreshold = DefaultFailureThreshold
	}
	if s.CoolDown <= 0 {
		s.CoolDown = DefaultCoolDown
	}
	return s
}

// BreakerSnapshot is a point-in-time view of one breaker. LastTransition is zero until the first state change.
type BreakerSnapshot struct {
	State               BreakerState
	ConsecutiveFailures int
	LastTransition      time.Time
	FailureThreshold    int
	CoolDown            time.Duration
}
