package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"deliverygateway/domain"
	"deliverygateway/helpers"
	"deliverygateway/interfaces"
	"deliverygateway/interfaces/mock"
	"deliverygateway/metrics"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errProbe = errors.New("connection refused")

func testProberSettings() ProberSettings {
	return ProberSettings{
		Interval:         10 * time.Millisecond,
		Timeout:          50 * time.Millisecond,
		FailureThreshold: 2,
		MaxBackoff:       40 * time.Millisecond,
		Retention:        -1,
	}
}

func healthOf(r *upstreamRegistry, key domain.UpstreamKey) domain.Health {
	for _, a := range r.Snapshot() {
		if a.Key() == key {
			return a.Health
		}
	}
	return ""
}

func newProberFixture(t *testing.T, probe interfaces.Probe, settings ProberSettings) (*prober, *upstreamRegistry, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	registry := NewRegistry(NewBreakers(domain.BreakerSettings{}, clock, log.NewNopLogger(), nil), log.NewNopLogger(), nil)
	p := NewProber(registry, map[domain.ServiceName]interfaces.Probe{"orders": probe}, settings, clock, log.NewNopLogger(), nil)
	t.Cleanup(p.Close)
	return p, registry, clock
}

func TestNewProber_Panics(t *testing.T) {
	registry := &mock.RegistryMock{}
	probes := map[domain.ServiceName]interfaces.Probe{}
	clock := newFakeClock()
	logger := log.NewNopLogger()

	tests := []struct {
		name string
		want string
		call func()
	}{
		{
			name: "registry_nil",
			want: "service.prober.go: registry is required",
			call: func() { NewProber(nil, probes, ProberSettings{}, clock, logger, nil) },
		},
		{
			name: "probes_nil",
			want: "service.prober.go: probes is required",
			call: func() { NewProber(registry, nil, ProberSettings{}, clock, logger, nil) },
		},
		{
			name: "clock_nil",
			want: "service.prober.go: clock is required",
			call: func() { NewProber(registry, probes, ProberSettings{}, nil, logger, nil) },
		},
		{
			name: "logger_nil",
			want: "service.prober.go: logger is required",
			call: func() { NewProber(registry, probes, ProberSettings{}, clock, nil, nil) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PanicsWithValue(t, tt.want, tt.call)
		})
	}
}

func TestProberSettings_WithDefaults(t *testing.T) {
	got := ProberSettings{}.WithDefaults()
	assert.Equal(t, ProberSettings{
		Interval:         DefaultProbeInterval,
		Timeout:          DefaultProbeTimeout,
		FailureThreshold: DefaultProbeFailureThreshold,
		MaxBackoff:       DefaultProbeMaxBackoff,
		Retention:        DefaultProbeRetention,
	}, got)

	assert.Equal(t, time.Duration(-1), ProberSettings{Retention: -1}.WithDefaults().Retention)
}

func TestNextHealth(t *testing.T) {
	now := helpers.TestNow()
	earlier := now.Add(-time.Minute)

	tests := []struct {
		name string
		prev domain.HealthStatus
		ok   bool
		want domain.HealthStatus
	}{
		{
			name: "healthy_success",
			prev: domain.HealthStatus{Health: domain.HealthHealthy},
			ok:   true,
			want: domain.HealthStatus{Health: domain.HealthHealthy, LastProbe: now},
		},
		{
			name: "healthy_first_failure_is_suspect",
			prev: domain.HealthStatus{Health: domain.HealthHealthy},
			ok:   false,
			want: domain.HealthStatus{Health: domain.HealthSuspect, ConsecutiveFailures: 1, LastProbe: now},
		},
		{
			name: "suspect_below_threshold",
			prev: domain.HealthStatus{Health: domain.HealthSuspect, ConsecutiveFailures: 1},
			ok:   false,
			want: domain.HealthStatus{Health: domain.HealthSuspect, ConsecutiveFailures: 2, LastProbe: now},
		},
		{
			name: "suspect_reaches_threshold",
			prev: domain.HealthStatus{Health: domain.HealthSuspect, ConsecutiveFailures: 2},
			ok:   false,
			want: domain.HealthStatus{Health: domain.HealthDown, ConsecutiveFailures: 3, LastProbe: now, DownSince: now},
		},
		{
			name: "down_keeps_down_since",
			prev: domain.HealthStatus{Health: domain.HealthDown, ConsecutiveFailures: 3, DownSince: earlier},
			ok:   false,
			want: domain.HealthStatus{Health: domain.HealthDown, ConsecutiveFailures: 4, LastProbe: now, DownSince: earlier},
		},
		{
			name: "down_success_recovers",
			prev: domain.HealthStatus{Health: domain.HealthDown, ConsecutiveFailures: 7, DownSince: earlier},
			ok:   true,
			want: domain.HealthStatus{Health: domain.HealthHealthy, LastProbe: now},
		},
		{
			name: "suspect_success_recovers",
			prev: domain.HealthStatus{Health: domain.HealthSuspect, ConsecutiveFailures: 1},
			ok:   true,
			want: domain.HealthStatus{Health: domain.HealthHealthy, LastProbe: now},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextHealth(tt.prev, tt.ok, 3, now))
		})
	}
}

func TestProbeSchedule_Next(t *testing.T) {
	schedule := newProbeSchedule(ProberSettings{Interval: time.Second, MaxBackoff: time.Minute})

	assert.Equal(t, time.Second, schedule.next(domain.HealthHealthy))
	assert.Equal(t, time.Second, schedule.next(domain.HealthSuspect))

	var down []time.Duration
	for i := 0; i < 7; i++ {
		down = append(down, schedule.next(domain.HealthDown))
	}
	assert.Equal(t, []time.Duration{
		2 * time.Second, 4 * time.Second, 8 * time.Second, 16 * time.Second, 32 * time.Second,
		time.Minute, time.Minute,
	}, down, "doubles from twice the interval and stops at MaxBackoff")

	assert.Equal(t, time.Second, schedule.next(domain.HealthHealthy), "success returns to the interval")
	assert.Equal(t, 2*time.Second, schedule.next(domain.HealthDown), "backoff restarts after recovery")
}

func TestProbeSchedule_MaxBackoffBelowFirstStep(t *testing.T) {
	schedule := newProbeSchedule(ProberSettings{Interval: time.Second, MaxBackoff: time.Second})

	assert.Equal(t, 2*time.Second, schedule.next(domain.HealthDown))
	assert.Equal(t, 2*time.Second, schedule.next(domain.HealthDown))
}

func TestProber_DownAddressBacksOff(t *testing.T) {
	var (
		mu    sync.Mutex
		times []time.Time
	)
	probe := &mock.ProbeMock{
		CheckFunc: func(ctx context.Context, address string) error {
			mu.Lock()
			times = append(times, time.Now())
			mu.Unlock()
			return errProbe
		},
	}
	settings := testProberSettings()
	settings.Interval = 20 * time.Millisecond
	settings.FailureThreshold = 1
	settings.MaxBackoff = 80 * time.Millisecond
	p, registry, _ := newProberFixture(t, probe, settings)
	key := domain.UpstreamKey{Service: "orders", Address: "a:1"}
	registry.Register(key.Service, key.Address)
	require.True(t, p.Watch(key))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(times) >= 4
	}, 2*time.Second, 5*time.Millisecond)
	p.Unwatch(key)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, domain.HealthDown, healthOf(registry, key))
	assert.GreaterOrEqual(t, times[1].Sub(times[0]), 40*time.Millisecond)
	assert.GreaterOrEqual(t, times[2].Sub(times[1]), 80*time.Millisecond)
	assert.GreaterOrEqual(t, times[3].Sub(times[2]), 80*time.Millisecond)
}

func TestProber_Watch(t *testing.T) {
	p, registry, _ := newProberFixture(t, &mock.ProbeMock{}, testProberSettings())
	registry.Register("orders", "a:1")
	registry.Register("payments", "a:1")

	assert.True(t, p.Watch(domain.UpstreamKey{Service: "orders", Address: "a:1"}))
	assert.False(t, p.Watch(domain.UpstreamKey{Service: "orders", Address: "a:1"}), "already watched")
	assert.False(t, p.Watch(domain.UpstreamKey{Service: "payments", Address: "a:1"}), "no probe configured")

	p.Close()
	assert.False(t, p.Watch(domain.UpstreamKey{Service: "orders", Address: "b:1"}), "closed")
}

func TestProber_FailuresMarkDownAndRecover(t *testing.T) {
	var healthy atomic.Bool
	probe := &mock.ProbeMock{
		CheckFunc: func(ctx context.Context, address string) error {
			if healthy.Load() {
				return nil
			}
			return errProbe
		},
	}
	p, registry, _ := newProberFixture(t, probe, testProberSettings())
	key := domain.UpstreamKey{Service: "orders", Address: "a:1"}
	registry.Register(key.Service, key.Address)
	require.True(t, p.Watch(key))

	require.Eventually(t, func() bool { return healthOf(registry, key) == domain.HealthDown }, time.Second, 5*time.Millisecond)

	list, err := registry.ListHealthy("orders")
	require.NoError(t, err)
	assert.Empty(t, list, "down address is not routable")

	healthy.Store(true)
	require.Eventually(t, func() bool { return healthOf(registry, key) == domain.HealthHealthy }, time.Second, 5*time.Millisecond)

	for _, call := range probe.CheckCalls() {
		assert.Equal(t, "a:1", call.Address)
	}
}

func TestProber_ProbesAreIndependent(t *testing.T) {
	release := make(chan struct{})
	probe := &mock.ProbeMock{
		CheckFunc: func(ctx context.Context, address string) error {
			if address == "stuck:1" {
				select {
				case <-release:
				case <-ctx.Done():
				}
				return ctx.Err()
			}
			return errProbe
		},
	}
	settings := testProberSettings()
	settings.Timeout = time.Second
	p, registry, _ := newProberFixture(t, probe, settings)
	t.Cleanup(func() { close(release) })

	stuck := domain.UpstreamKey{Service: "orders", Address: "stuck:1"}
	failing := domain.UpstreamKey{Service: "orders", Address: "b:1"}
	registry.Register(stuck.Service, stuck.Address)
	registry.Register(failing.Service, failing.Address)
	require.True(t, p.Watch(stuck))
	require.True(t, p.Watch(failing))

	require.Eventually(t, func() bool { return healthOf(registry, failing) == domain.HealthDown }, time.Second, 5*time.Millisecond)
	assert.Equal(t, domain.HealthHealthy, healthOf(registry, stuck))
}

func TestProber_Unwatch(t *testing.T) {
	var calls atomic.Int64
	probe := &mock.ProbeMock{
		CheckFunc: func(ctx context.Context, address string) error {
			calls.Add(1)
			return nil
		},
	}
	p, registry, _ := newProberFixture(t, probe, testProberSettings())
	key := domain.UpstreamKey{Service: "orders", Address: "a:1"}
	registry.Register(key.Service, key.Address)
	require.True(t, p.Watch(key))
	require.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	p.Unwatch(key)
	time.Sleep(30 * time.Millisecond)
	n := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, n, calls.Load())

	assert.True(t, p.Watch(key), "key can be watched again")
}

func TestProber_StopsWhenAddressDeregistered(t *testing.T) {
	p, registry, _ := newProberFixture(t, &mock.ProbeMock{}, testProberSettings())
	key := domain.UpstreamKey{Service: "orders", Address: "a:1"}
	registry.Register(key.Service, key.Address)
	require.True(t, p.Watch(key))

	registry.Deregister(key.Service, key.Address)

	require.Eventually(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		_, ok := p.tasks[key]
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestProber_RetentionEvicts(t *testing.T) {
	probe := &mock.ProbeMock{
		CheckFunc: func(ctx context.Context, address string) error { return errProbe },
	}
	settings := testProberSettings()
	settings.Retention = time.Minute
	p, registry, clock := newProberFixture(t, probe, settings)

	evicted := make(chan domain.UpstreamKey, 1)
	p.OnEvict(func(key domain.UpstreamKey) { evicted <- key })

	key := domain.UpstreamKey{Service: "orders", Address: "a:1"}
	registry.Register(key.Service, key.Address)
	require.True(t, p.Watch(key))

	require.Eventually(t, func() bool { return healthOf(registry, key) == domain.HealthDown }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"a:1"}, registry.Addresses("orders"), "down but within retention")

	clock.Advance(2 * time.Minute)

	select {
	case got := <-evicted:
		assert.Equal(t, key, got)
	case <-time.After(time.Second):
		t.Fatal("address was not evicted")
	}
	assert.Empty(t, registry.Addresses("orders"))
}

func TestProber_Metrics(t *testing.T) {
	m := metrics.New(nil, false)
	clock := newFakeClock()
	registry := NewRegistry(&mock.BreakersMock{}, log.NewNopLogger(), nil)
	probe := &mock.ProbeMock{}
	p := NewProber(registry, map[domain.ServiceName]interfaces.Probe{"orders": probe}, testProberSettings(), clock, log.NewNopLogger(), m)
	t.Cleanup(p.Close)

	key := domain.UpstreamKey{Service: "orders", Address: "a:1"}
	registry.Register(key.Service, key.Address)
	require.True(t, p.Watch(key))

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(m.ProbeResults.WithLabelValues("orders", "ok")) >= 1
	}, time.Second, 5*time.Millisecond)
}
