package service

import (
	"sync"
	"sync/atomic"
	"time"

	"deliverygateway/domain"
	"deliverygateway/helpers"
	"deliverygateway/interfaces"
	"deliverygateway/metrics"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/sony/gobreaker"
)

// breakerSet implements interfaces.Breakers with one gobreaker.TwoStepCircuitBreaker per upstream key.
// Breakers live in a sync.Map so that lookups for different keys never share a lock; each gobreaker
// instance serializes its own state transitions. A breaker trips after FailureThreshold consecutive failures,
// stays open for CoolDown and then admits exactly one trial request (MaxRequests = 1).
type breakerSet struct {
	settings domain.BreakerSettings
	clock    interfaces.TimeProvider
	logger   log.Logger
	metrics  *metrics.Metrics

	breakers sync.Map // domain.UpstreamKey -> *addressBreaker
}

type addressBreaker struct {
	cb             *gobreaker.TwoStepCircuitBreaker
	lastTransition atomic.Pointer[time.Time]
}

// NewBreakers creates the breaker set. Zero settings fields fall back to domain.DefaultFailureThreshold and
// domain.DefaultCoolDown. Panics on nil clock or logger; m may be nil.
//
// The cool-down runs on gobreaker's own wall clock; clock only stamps LastTransition. With a fake clock the
// Open to HalfOpen move still takes CoolDown of real time, and LastTransition records the fake time at which
// that move was observed.
//
// Parameters: settings — threshold and cool-down applied to every breaker; clock — source of transition
// timestamps; logger — transitions are logged at info (open at warn); m — optional metrics.
//
// Returns: *breakerSet implementing interfaces.Breakers.
//
// Called from cmd/gateway before the registry, which needs it to filter ListHealthy.
func NewBreakers(settings domain.BreakerSettings, clock interfaces.TimeProvider, logger log.Logger, m *metrics.Metrics) *breakerSet {
	return &breakerSet{
		settings: settings.WithDefaults(),
		clock:    helpers.NilPanic(clock, "service.breaker.go: clock is required"),
		logger:   log.With(helpers.NilPanic(logger, "service.breaker.go: logger is required"), "component", "breaker"),
		metrics:  m,
	}
}

func (s *breakerSet) get(key domain.UpstreamKey) *addressBreaker {
	if b, ok := s.breakers.Load(key); ok {
		return b.(*addressBreaker)
	}
	b, _ := s.breakers.LoadOrStore(key, s.newBreaker(key))
	return b.(*addressBreaker)
}

func (s *breakerSet) newBreaker(key domain.UpstreamKey) *addressBreaker {
	b := &addressBreaker{}
	threshold := uint32(s.settings.FailureThreshold)
	b.cb = gobreaker.NewTwoStepCircuitBreaker(gobreaker.Settings{
		Name:        key.String(),
		MaxRequests: 1,
		Timeout:     s.settings.CoolDown,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			now := s.clock.Now()
			b.lastTransition.Store(&now)
			toState := fromGobreakerState(to)
			lvl := level.Info
			if toState == domain.BreakerOpen {
				lvl = level.Warn
			}
			lvl(s.logger).Log("msg", "circuit breaker state changed", "upstream", name, "from", from.String(), "to", to.String())
			s.metrics.BreakerChanged(key, toState)
		},
	})
	return b
}

// Allow implements interfaces.Breakers. gobreaker returns ErrOpenState or ErrTooManyRequests (HalfOpen trial
// in flight); both become circuit_open.
func (s *breakerSet) Allow(key domain.UpstreamKey) (func(success bool), error) {
	done, err := s.get(key).cb.Allow()
	if err != nil {
		return nil, domain.NewCircuitOpenError(key, err)
	}
	return done, nil
}

// State implements interfaces.Breakers. Reading the state of an open breaker whose cool-down elapsed moves
// it to HalfOpen.
func (s *breakerSet) State(key domain.UpstreamKey) domain.BreakerState {
	b, ok := s.breakers.Load(key)
	if !ok {
		return domain.BreakerClosed
	}
	return fromGobreakerState(b.(*addressBreaker).cb.State())
}

func (s *breakerSet) Snapshot(key domain.UpstreamKey) domain.BreakerSnapshot {
	snap := domain.BreakerSnapshot{
		State:            domain.BreakerClosed,
		FailureThreshold: s.settings.FailureThreshold,
		CoolDown:         s.settings.CoolDown,
	}
	v, ok := s.breakers.Load(key)
	if !ok {
		return snap
	}
	b := v.(*addressBreaker)
	snap.State = fromGobreakerState(b.cb.State())
	snap.ConsecutiveFailures = int(b.cb.Counts().ConsecutiveFailures)
	if ts := b.lastTransition.Load(); ts != nil {
		snap.LastTransition = *ts
	}
	return snap
}

func (s *breakerSet) Remove(key domain.UpstreamKey) {
	s.breakers.Delete(key)
}

func fromGobreakerState(st gobreaker.State) domain.BreakerState {
	switch st {
	case gobreaker.StateOpen:
		return domain.BreakerOpen
	case gobreaker.StateHalfOpen:
		return domain.BreakerHalfOpen
	default:
		return domain.BreakerClosed
	}
}
