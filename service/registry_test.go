package service

import (
	"sync"
	"testing"

	"deliverygateway/domain"
	"deliverygateway/helpers"
	"deliverygateway/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addressesOf(list []domain.UpstreamAddress) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.Address)
	}
	return out
}

func TestNewRegistry_Panics(t *testing.T) {
	t.Run("breakers_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.registry.go: breakers is required", func() {
			NewRegistry(nil, log.NewNopLogger(), nil)
		})
	})
	t.Run("logger_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.registry.go: logger is required", func() {
			NewRegistry(&mock.BreakersMock{}, nil, nil)
		})
	})
}

func TestRegistry_ListHealthy_UnknownService(t *testing.T) {
	r := NewRegistry(&mock.BreakersMock{}, log.NewNopLogger(), nil)
	list, err := r.ListHealthy("orders")
	require.Error(t, err)
	assert.Nil(t, list)
	assert.True(t, domain.IsUnknownService(err))
}

func TestRegistry_Register_Idempotent(t *testing.T) {
	r := NewRegistry(&mock.BreakersMock{}, log.NewNopLogger(), nil)
	assert.True(t, r.Register("orders", "a:1"))
	assert.False(t, r.Register("orders", "a:1"))

	list, err := r.ListHealthy("orders")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.HealthHealthy, list[0].Health)
	assert.Equal(t, domain.ServiceName("orders"), list[0].Service)
}

func TestRegistry_ListHealthy_RoundRobin(t *testing.T) {
	r := NewRegistry(&mock.BreakersMock{}, log.NewNopLogger(), nil)
	r.Register("orders", "a:1")
	r.Register("orders", "b:1")
	r.Register("orders", "c:1")

	want := [][]string{
		{"a:1", "b:1", "c:1"},
		{"b:1", "c:1", "a:1"},
		{"c:1", "a:1", "b:1"},
		{"a:1", "b:1", "c:1"},
	}
	for i, w := range want {
		list, err := r.ListHealthy("orders")
		require.NoError(t, err)
		assert.Equal(t, w, addressesOf(list), "call %d", i)
	}
}

func TestRegistry_ListHealthy_Filters(t *testing.T) {
	open := domain.UpstreamKey{Service: "orders", Address: "b:1"}
	breakers := &mock.BreakersMock{
		StateFunc: func(key domain.UpstreamKey) domain.BreakerState {
			if key == open {
				return domain.BreakerOpen
			}
			return domain.BreakerClosed
		},
	}
	r := NewRegistry(breakers, log.NewNopLogger(), nil)
	r.Register("orders", "a:1")
	r.Register("orders", "b:1")
	r.Register("orders", "c:1")
	r.Register("orders", "d:1")

	require.True(t, r.MarkProbe(domain.UpstreamKey{Service: "orders", Address: "c:1"}, domain.HealthStatus{
		Health:              domain.HealthDown,
		ConsecutiveFailures: 3,
		LastProbe:           helpers.TestNow(),
		DownSince:           helpers.TestNow(),
	}))
	require.True(t, r.MarkProbe(domain.UpstreamKey{Service: "orders", Address: "d:1"}, domain.HealthStatus{
		Health:              domain.HealthSuspect,
		ConsecutiveFailures: 1,
	}))

	for i := 0; i < 4; i++ {
		list, err := r.ListHealthy("orders")
		require.NoError(t, err)
		got := addressesOf(list)
		assert.ElementsMatch(t, []string{"a:1", "d:1"}, got, "suspect addresses stay eligible")
		assert.NotContains(t, got, "b:1")
		assert.NotContains(t, got, "c:1")
	}
}

func TestRegistry_ListHealthy_AllExcluded(t *testing.T) {
	r := NewRegistry(&mock.BreakersMock{}, log.NewNopLogger(), nil)
	r.Register("orders", "a:1")
	r.MarkProbe(domain.UpstreamKey{Service: "orders", Address: "a:1"}, domain.HealthStatus{Health: domain.HealthDown})

	list, err := r.ListHealthy("orders")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRegistry_Deregister(t *testing.T) {
	breakers := &mock.BreakersMock{}
	r := NewRegistry(breakers, log.NewNopLogger(), nil)
	r.Register("orders", "a:1")
	r.Register("orders", "b:1")

	assert.True(t, r.Deregister("orders", "a:1"))
	assert.False(t, r.Deregister("orders", "a:1"))
	assert.False(t, r.Deregister("payments", "a:1"))

	require.Len(t, breakers.RemoveCalls(), 1)
	assert.Equal(t, domain.UpstreamKey{Service: "orders", Address: "a:1"}, breakers.RemoveCalls()[0].Key)

	list, err := r.ListHealthy("orders")
	require.NoError(t, err)
	assert.Equal(t, []string{"b:1"}, addressesOf(list))

	r.Deregister("orders", "b:1")
	list, err = r.ListHealthy("orders")
	require.NoError(t, err, "service stays known after its last address is gone")
	assert.Empty(t, list)
}

func TestRegistry_MarkProbe_Unknown(t *testing.T) {
	r := NewRegistry(&mock.BreakersMock{}, log.NewNopLogger(), nil)
	assert.False(t, r.MarkProbe(domain.UpstreamKey{Service: "orders", Address: "a:1"}, domain.HealthStatus{Health: domain.HealthDown}))
	r.Register("orders", "b:1")
	assert.False(t, r.MarkProbe(domain.UpstreamKey{Service: "orders", Address: "a:1"}, domain.HealthStatus{Health: domain.HealthDown}))
}

func TestRegistry_Addresses(t *testing.T) {
	r := NewRegistry(&mock.BreakersMock{}, log.NewNopLogger(), nil)
	assert.Nil(t, r.Addresses("orders"))
	r.Register("orders", "c:1")
	r.Register("orders", "a:1")
	r.MarkProbe(domain.UpstreamKey{Service: "orders", Address: "a:1"}, domain.HealthStatus{Health: domain.HealthDown})
	assert.Equal(t, []string{"a:1", "c:1"}, r.Addresses("orders"))
}

func TestRegistry_Snapshot(t *testing.T) {
	breakers := &mock.BreakersMock{
		SnapshotFunc: func(key domain.UpstreamKey) domain.BreakerSnapshot {
			if key.Address == "b:1" {
				return domain.BreakerSnapshot{State: domain.BreakerOpen, FailureThreshold: 5}
			}
			return domain.BreakerSnapshot{State: domain.BreakerClosed, FailureThreshold: 5}
		},
	}
	r := NewRegistry(breakers, log.NewNopLogger(), nil)
	r.Register("restaurants", "b:1")
	r.Register("orders", "b:1")
	r.Register("orders", "a:1")

	snap := r.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, domain.UpstreamKey{Service: "orders", Address: "a:1"}, snap[0].Key())
	assert.Equal(t, domain.UpstreamKey{Service: "orders", Address: "b:1"}, snap[1].Key())
	assert.Equal(t, domain.UpstreamKey{Service: "restaurants", Address: "b:1"}, snap[2].Key())
	assert.Equal(t, domain.BreakerClosed, snap[0].Breaker.State)
	assert.Equal(t, domain.BreakerOpen, snap[1].Breaker.State)
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry(&mock.BreakersMock{}, log.NewNopLogger(), nil)
	r.Register("orders", "seed:1")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			addr := string(rune('a'+i)) + ":1"
			for j := 0; j < 100; j++ {
				r.Register("orders", addr)
				_, err := r.ListHealthy("orders")
				assert.NoError(t, err)
				r.Deregister("orders", addr)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, []string{"seed:1"}, r.Addresses("orders"))
}
