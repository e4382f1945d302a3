package service

import (
	"context"
	"sync"
	"time"

	"deliverygateway/domain"
	"deliverygateway/helpers"
	"deliverygateway/interfaces"
	"deliverygateway/metrics"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	DefaultProbeInterval         = 5 * time.Second
	DefaultProbeTimeout          = 2 * time.Second
	DefaultProbeFailureThreshold = 3
	DefaultProbeMaxBackoff       = 60 * time.Second
	DefaultProbeRetention        = 10 * time.Minute
)

// ProberSettings configures every probing task. Zero fields fall back to the Default* constants;
// a negative Retention disables retention-based deregistration.
type ProberSettings struct {
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold int
	MaxBackoff       time.Duration
	Retention        time.Duration
}

// WithDefaults returns a copy with zero fields replaced by the defaults.
func (s ProberSettings) WithDefaults() ProberSettings {
	if s.Interval <= 0 {
		s.Interval = DefaultProbeInterval
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultProbeTimeout
	}
	if s.FailureThreshold <= 0 {
		s.FailureThreshold = DefaultProbeFailureThreshold
	}
	if s.MaxBackoff <= 0 {
		s.MaxBackoff = DefaultProbeMaxBackoff
	}
	if s.Retention == 0 {
		s.Retention = DefaultProbeRetention
	}
	return s
}

// prober implements interfaces.Prober. Each watched address gets its own goroutine that probes on a fixed
// interval while Healthy or Suspect and on an exponential backoff (doubling from 2x interval up to MaxBackoff)
// while Down. The task is the single writer of its address's health in the registry. Addresses Down for
// longer than Retention are deregistered by their own task, which then exits.
type prober struct {
	registry interfaces.Registry
	probes   map[domain.ServiceName]interfaces.Probe
	settings ProberSettings
	clock    interfaces.TimeProvider
	logger   log.Logger
	metrics  *metrics.Metrics
	onEvict  func(domain.UpstreamKey)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	tasks  map[domain.UpstreamKey]*probeTask
	closed bool
}

type probeTask struct {
	cancel context.CancelFunc
}

// NewProber creates a prober with no tasks. Panics on nil registry, probes, clock or logger; m may be nil.
//
// Parameters: registry — receives MarkProbe and retention Deregister; probes — probe per service, services
// without an entry are never probed (their addresses stay Healthy); settings — intervals and thresholds;
// clock — probe timestamps and retention; logger — health transitions; m — optional metrics.
//
// Returns: *prober implementing interfaces.Prober. Close must be called on shutdown.
//
// Called from cmd/gateway.
func NewProber(
	registry interfaces.Registry,
	probes map[domain.ServiceName]interfaces.Probe,
	settings ProberSettings,
	clock interfaces.TimeProvider,
	logger log.Logger,
	m *metrics.Metrics,
) *prober {
	ctx, cancel := context.WithCancel(context.Background())
	return &prober{
		registry: helpers.NilPanic(registry, "service.prober.go: registry is required"),
		probes:   helpers.NilPanic(probes, "service.prober.go: probes is required"),
		settings: settings.WithDefaults(),
		clock:    helpers.NilPanic(clock, "service.prober.go: clock is required"),
		logger:   log.With(helpers.NilPanic(logger, "service.prober.go: logger is required"), "component", "prober"),
		metrics:  m,
		ctx:      ctx,
		cancel:   cancel,
		tasks:    make(map[domain.UpstreamKey]*probeTask),
	}
}

// OnEvict registers a callback invoked after an address is deregistered for exceeding the retention window.
// Must be called before the first Watch.
func (p *prober) OnEvict(fn func(domain.UpstreamKey)) {
	p.onEvict = fn
}

func (p *prober) Watch(key domain.UpstreamKey) bool {
	probe, ok := p.probes[key.Service]
	if !ok || probe == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	if _, ok := p.tasks[key]; ok {
		return false
	}
	ctx, cancel := context.WithCancel(p.ctx)
	task := &probeTask{cancel: cancel}
	p.tasks[key] = task
	p.wg.Add(1)
	go p.run(ctx, task, key, probe)
	return true
}

func (p *prober) Unwatch(key domain.UpstreamKey) {
	p.mu.Lock()
	task, ok := p.tasks[key]
	delete(p.tasks, key)
	p.mu.Unlock()
	if ok {
		task.cancel()
	}
}

func (p *prober) Close() {
	p.mu.Lock()
	p.closed = true
	p.tasks = make(map[domain.UpstreamKey]*probeTask)
	p.mu.Unlock()
	p.cancel()
	p.wg.Wait()
}

// run is the probing loop of one address. It exits on cancellation, when the address disappears from the
// registry or after evicting it.
func (p *prober) run(ctx context.Context, task *probeTask, key domain.UpstreamKey, probe interfaces.Probe) {
	defer p.wg.Done()

	schedule := newProbeSchedule(p.settings)
	status := domain.HealthStatus{Health: domain.HealthHealthy}
	timer := time.NewTimer(p.settings.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		next, ok := p.probeOnce(ctx, key, probe, status)
		if ctx.Err() != nil {
			return
		}
		if next.Health != status.Health {
			p.logTransition(key, status, next)
		}
		status = next
		if !p.registry.MarkProbe(key, status) {
			p.forget(key, task)
			return
		}
		p.metrics.ProbeResult(key, ok, status.Health)

		if status.Health == domain.HealthDown && p.settings.Retention > 0 && status.LastProbe.Sub(status.DownSince) >= p.settings.Retention {
			p.evict(key, task, status)
			return
		}
		timer.Reset(schedule.next(status.Health))
	}
}

// probeSchedule is the wait before the next probe of one address: Interval while Healthy or Suspect; while
// Down it starts at twice Interval and doubles up to MaxBackoff. Leaving Down resets it.
type probeSchedule struct {
	interval time.Duration
	down     *backoff.ExponentialBackOff
}

func newProbeSchedule(settings ProberSettings) *probeSchedule {
	down := backoff.NewExponentialBackOff()
	down.InitialInterval = 2 * settings.Interval
	down.Multiplier = 2
	down.RandomizationFactor = 0
	down.MaxInterval = settings.MaxBackoff
	if down.MaxInterval < down.InitialInterval {
		down.MaxInterval = down.InitialInterval
	}
	down.Reset()
	return &probeSchedule{interval: settings.Interval, down: down}
}

func (s *probeSchedule) next(health domain.Health) time.Duration {
	if health != domain.HealthDown {
		s.down.Reset()
		return s.interval
	}
	return s.down.NextBackOff()
}

func (p *prober) probeOnce(ctx context.Context, key domain.UpstreamKey, probe interfaces.Probe, prev domain.HealthStatus) (domain.HealthStatus, bool) {
	probeCtx, cancel := context.WithTimeout(ctx, p.settings.Timeout)
	err := probe.Check(probeCtx, key.Address)
	cancel()
	if err != nil {
		level.Debug(p.logger).Log("msg", "probe failed", "upstream", key, "err", err)
	}
	return nextHealth(prev, err == nil, p.settings.FailureThreshold, p.clock.Now()), err == nil
}

// nextHealth applies one probe outcome: success always returns to Healthy; the first failure makes a Healthy
// address Suspect and threshold consecutive failures make it Down.
func nextHealth(prev domain.HealthStatus, ok bool, threshold int, now time.Time) domain.HealthStatus {
	if ok {
		return domain.HealthStatus{Health: domain.HealthHealthy, LastProbe: now}
	}
	next := domain.HealthStatus{
		Health:              domain.HealthSuspect,
		ConsecutiveFailures: prev.ConsecutiveFailures + 1,
		LastProbe:           now,
	}
	if next.ConsecutiveFailures >= threshold {
		next.Health = domain.HealthDown
		next.DownSince = prev.DownSince
		if next.DownSince.IsZero() {
			next.DownSince = now
		}
	}
	return next
}

func (p *prober) logTransition(key domain.UpstreamKey, from, to domain.HealthStatus) {
	lvl := level.Info
	if to.Health == domain.HealthDown {
		lvl = level.Warn
	}
	lvl(p.logger).Log(
		"msg", "upstream health changed",
		"upstream", key,
		"from", from.Health,
		"to", to.Health,
		"consecutive_failures", to.ConsecutiveFailures,
	)
}

func (p *prober) evict(key domain.UpstreamKey, task *probeTask, status domain.HealthStatus) {
	p.forget(key, task)
	p.registry.Deregister(key.Service, key.Address)
	level.Warn(p.logger).Log("msg", "upstream evicted after retention", "upstream", key, "down_since", status.DownSince)
	if p.onEvict != nil {
		p.onEvict(key)
	}
}

// forget removes the task entry of key when it exits on its own. A newer task for the same key is left alone.
func (p *prober) forget(key domain.UpstreamKey, task *probeTask) {
	p.mu.Lock()
	if p.tasks[key] == task {
		delete(p.tasks, key)
	}
	p.mu.Unlock()
	task.cancel()
}
