// Package metrics holds the prometheus collectors of the gateway and catalog binaries.
// Every recording method is safe on a nil *Metrics so that components can run without metrics in tests.
package metrics

import (
	"net/http"
	"time"

	"deliverygateway/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "deliverygateway"

// Attempt outcomes recorded by RouteAttempt.
const (
	OutcomeSuccess     = "success"
	OutcomeUpstream5xx = "upstream_5xx"
	OutcomeTimeout     = "timeout"
	OutcomeError       = "error"
	OutcomeCircuitOpen = "circuit_open"
	OutcomeCancelled   = "cancelled"
)

// Metrics groups every collector. Fields are exported for prometheus/testutil in tests.
type Metrics struct {
	RouteAttempts      *prometheus.CounterVec
	RouteDuration      *prometheus.HistogramVec
	BreakerState       *prometheus.GaugeVec
	BreakerTransitions *prometheus.CounterVec
	ProbeResults       *prometheus.CounterVec
	UpstreamHealth     *prometheus.GaugeVec
	CacheRequests      *prometheus.CounterVec
	CacheLoads         *prometheus.CounterVec
	CacheEvictions     *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates all collectors and registers them in registry (a fresh one when nil).
// Runtime collectors are added when withRuntime is set; the binaries set it, tests do not.
func New(registry *prometheus.Registry, withRuntime bool) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := &Metrics{
		RouteAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "attempts_total",
			Help:      "Forwarding attempts by service and outcome.",
		}, []string{"service", "outcome"}),
		RouteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "attempt_duration_seconds",
			Help:      "Duration of forwarding attempts that reached the transport.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service"}),
		BreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "breaker",
			Name:      "state",
			Help:      "Breaker state per upstream: 0 closed, 1 half-open, 2 open.",
		}, []string{"service", "address"}),
		BreakerTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "breaker",
			Name:      "transitions_total",
			Help:      "Breaker state transitions by target state.",
		}, []string{"service", "to"}),
		ProbeResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "prober",
			Name:      "probes_total",
			Help:      "Health probes by service and result.",
		}, []string{"service", "result"}),
		UpstreamHealth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "prober",
			Name:      "upstream_health",
			Help:      "Upstream health per address: 0 healthy, 1 suspect, 2 down.",
		}, []string{"service", "address"}),
		CacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "requests_total",
			Help:      "Cache-aside lookups by cache and result (hit, miss).",
		}, []string{"cache", "result"}),
		CacheLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "loads_total",
			Help:      "Loader executions by cache and result (ok, error).",
		}, []string{"cache", "result"}),
		CacheEvictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "evictions_total",
			Help:      "Entries evicted for capacity.",
		}, []string{"cache"}),
		registry: registry,
	}

	registry.MustRegister(
		m.RouteAttempts,
		m.RouteDuration,
		m.BreakerState,
		m.BreakerTransitions,
		m.ProbeResults,
		m.UpstreamHealth,
		m.CacheRequests,
		m.CacheLoads,
		m.CacheEvictions,
	)
	if withRuntime {
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		registry.MustRegister(collectors.NewGoCollector())
	}
	return m
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RouteAttempt(service domain.ServiceName, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RouteAttempts.WithLabelValues(string(service), outcome).Inc()
	if elapsed > 0 {
		m.RouteDuration.WithLabelValues(string(service)).Observe(elapsed.Seconds())
	}
}

func (m *Metrics) BreakerChanged(key domain.UpstreamKey, to domain.BreakerState) {
	if m == nil {
		return
	}
	m.BreakerState.WithLabelValues(string(key.Service), key.Address).Set(breakerStateValue(to))
	m.BreakerTransitions.WithLabelValues(string(key.Service), string(to)).Inc()
}

func (m *Metrics) ProbeResult(key domain.UpstreamKey, ok bool, health domain.Health) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failure"
	}
	m.ProbeResults.WithLabelValues(string(key.Service), result).Inc()
	m.UpstreamHealth.WithLabelValues(string(key.Service), key.Address).Set(healthValue(health))
}

// ForgetUpstream drops the per-address series of a deregistered upstream.
func (m *Metrics) ForgetUpstream(key domain.UpstreamKey) {
	if m == nil {
		return
	}
	m.BreakerState.DeleteLabelValues(string(key.Service), key.Address)
	m.UpstreamHealth.DeleteLabelValues(string(key.Service), key.Address)
}

func (m *Metrics) CacheLookup(cache string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheRequests.WithLabelValues(cache, result).Inc()
}

func (m *Metrics) CacheLoad(cache string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.CacheLoads.WithLabelValues(cache, result).Inc()
}

func (m *Metrics) CacheEviction(cache string) {
	if m == nil {
		return
	}
	m.CacheEvictions.WithLabelValues(cache).Inc()
}

func breakerStateValue(s domain.BreakerState) float64 {
	switch s {
	case domain.BreakerHalfOpen:
		return 1
	case domain.BreakerOpen:
		return 2
	default:
		return 0
	}
}

func healthValue(h domain.Health) float64 {
	switch h {
	case domain.HealthSuspect:
		return 1
	case domain.HealthDown:
		return 2
	default:
		return 0
	}
}
