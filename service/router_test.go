package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"deliverygateway/domain"
	"deliverygateway/interfaces"
	"deliverygateway/interfaces/mock"
	"deliverygateway/metrics"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errConnRefused = errors.New("dial tcp: connection refused")

// outcomeRecorder is a Breakers stub that admits every call and records reported outcomes.
type outcomeRecorder struct {
	mu       sync.Mutex
	outcomes map[string][]bool
}

func newOutcomeRecorder() *outcomeRecorder {
	return &outcomeRecorder{outcomes: map[string][]bool{}}
}

func (o *outcomeRecorder) mock() *mock.BreakersMock {
	return &mock.BreakersMock{
		AllowFunc: func(key domain.UpstreamKey) (func(bool), error) {
			return func(success bool) {
				o.mu.Lock()
				o.outcomes[key.Address] = append(o.outcomes[key.Address], success)
				o.mu.Unlock()
			}, nil
		},
	}
}

func (o *outcomeRecorder) get(address string) []bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.outcomes[address]
}

func ordersMatcher(t *testing.T, routes ...domain.ServiceRoute) interfaces.RouteMatcher {
	t.Helper()
	if len(routes) == 0 {
		routes = []domain.ServiceRoute{{Prefix: "/orders", Service: "orders"}}
	}
	m, err := NewRouteMatcher(domain.RouteConfig{Routes: routes})
	require.NoError(t, err)
	return m
}

func staticCandidates(addresses ...string) *mock.RegistryMock {
	return &mock.RegistryMock{
		ListHealthyFunc: func(service domain.ServiceName) ([]domain.UpstreamAddress, error) {
			out := make([]domain.UpstreamAddress, 0, len(addresses))
			for _, a := range addresses {
				out = append(out, domain.UpstreamAddress{Service: service, Address: a})
			}
			return out, nil
		},
	}
}

func passHeaders() *mock.HeaderProcessorMock {
	return &mock.HeaderProcessorMock{
		ProcessFunc: func(ctx context.Context, req domain.ProxyRequest, headers http.Header) (http.Header, error) {
			return headers, nil
		},
	}
}

func okResponse() domain.ProxyResponse {
	return domain.ProxyResponse{StatusCode: http.StatusOK, Body: []byte(`{"ok":true}`)}
}

func TestNewRouter_Panics(t *testing.T) {
	matcher := &mock.RouteMatcherMock{}
	registry := &mock.RegistryMock{}
	breakers := &mock.BreakersMock{}
	transport := &mock.TransportMock{}
	headers := &mock.HeaderProcessorMock{}
	logger := log.NewNopLogger()

	tests := []struct {
		name      string
		matcher   interfaces.RouteMatcher
		registry  interfaces.Registry
		breakers  interfaces.Breakers
		transport interfaces.Transport
		headers   interfaces.HeaderProcessor
		logger    log.Logger
		panicMsg  string
	}{
		{"matcher_nil", nil, registry, breakers, transport, headers, logger, "service.router.go: matcher is required"},
		{"registry_nil", matcher, nil, breakers, transport, headers, logger, "service.router.go: registry is required"},
		{"breakers_nil", matcher, registry, nil, transport, headers, logger, "service.router.go: breakers is required"},
		{"transport_nil", matcher, registry, breakers, nil, headers, logger, "service.router.go: transport is required"},
		{"headers_nil", matcher, registry, breakers, transport, nil, logger, "service.router.go: headers is required"},
		{"logger_nil", matcher, registry, breakers, transport, headers, nil, "service.router.go: logger is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PanicsWithValue(t, tt.panicMsg, func() {
				NewRouter(tt.matcher, tt.registry, tt.breakers, tt.transport, tt.headers, tt.logger, nil, RouterSettings{})
			})
		})
	}
}

func TestRouterSettings_WithDefaults(t *testing.T) {
	got := RouterSettings{Candidates: -1}.WithDefaults()
	assert.Equal(t, RouterSettings{MaxAttempts: DefaultMaxAttempts, Candidates: 0, DefaultTimeout: DefaultRouteTimeout}, got)
}

func TestRouter_Route_NoRoute(t *testing.T) {
	registry := staticCandidates("a:1")
	transport := &mock.TransportMock{}
	r := NewRouter(ordersMatcher(t, domain.ServiceRoute{Prefix: "/restaurants", Service: "restaurants"}),
		registry, newOutcomeRecorder().mock(), transport, passHeaders(), log.NewNopLogger(), nil, RouterSettings{})

	_, err := r.Route(context.Background(), domain.ProxyRequest{Method: http.MethodGet, Path: "/orders/123"})
	require.Error(t, err)
	assert.True(t, domain.IsNoRoute(err))
	assert.Empty(t, registry.ListHealthyCalls())
	assert.Empty(t, transport.RoundTripCalls())
}

func TestRouter_Route_UnknownService(t *testing.T) {
	registry := &mock.RegistryMock{
		ListHealthyFunc: func(service domain.ServiceName) ([]domain.UpstreamAddress, error) {
			return nil, domain.NewUnknownServiceError(service)
		},
	}
	r := NewRouter(ordersMatcher(t), registry, newOutcomeRecorder().mock(), &mock.TransportMock{}, passHeaders(), log.NewNopLogger(), nil, RouterSettings{})

	_, err := r.Route(context.Background(), domain.ProxyRequest{Path: "/orders/1"})
	assert.True(t, domain.IsUnknownService(err))
}

func TestRouter_Route_NoCandidates(t *testing.T) {
	transport := &mock.TransportMock{}
	r := NewRouter(ordersMatcher(t), staticCandidates(), newOutcomeRecorder().mock(), transport, passHeaders(), log.NewNopLogger(), nil, RouterSettings{})

	_, err := r.Route(context.Background(), domain.ProxyRequest{Path: "/orders/1"})
	assert.True(t, domain.IsUpstreamUnavailable(err))
	assert.Empty(t, transport.RoundTripCalls())
}

func TestRouter_Route_Success(t *testing.T) {
	outcomes := newOutcomeRecorder()
	transport := &mock.TransportMock{
		RoundTripFunc: func(ctx context.Context, address string, req domain.ProxyRequest) (domain.ProxyResponse, error) {
			return okResponse(), nil
		},
	}
	r := NewRouter(ordersMatcher(t), staticCandidates("a:1", "b:1"), outcomes.mock(), transport, passHeaders(), log.NewNopLogger(), nil, RouterSettings{})

	resp, err := r.Route(context.Background(), domain.ProxyRequest{Method: http.MethodGet, Path: "/orders/1", RawQuery: "x=1"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, transport.RoundTripCalls(), 1)
	call := transport.RoundTripCalls()[0]
	assert.Equal(t, "a:1", call.Address)
	assert.Equal(t, "/orders/1", call.Req.Path)
	assert.Equal(t, "x=1", call.Req.RawQuery)
	assert.Equal(t, []bool{true}, outcomes.get("a:1"))
}

func TestRouter_Route_ClientErrorIsBreakerSuccess(t *testing.T) {
	outcomes := newOutcomeRecorder()
	transport := &mock.TransportMock{
		RoundTripFunc: func(ctx context.Context, address string, req domain.ProxyRequest) (domain.ProxyResponse, error) {
			return domain.ProxyResponse{StatusCode: http.StatusNotFound}, nil
		},
	}
	r := NewRouter(ordersMatcher(t), staticCandidates("a:1", "b:1"), outcomes.mock(), transport, passHeaders(), log.NewNopLogger(), nil, RouterSettings{})

	resp, err := r.Route(context.Background(), domain.ProxyRequest{Path: "/orders/404"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Len(t, transport.RoundTripCalls(), 1)
	assert.Equal(t, []bool{true}, outcomes.get("a:1"))
}

func TestRouter_Route_RetriesNextCandidate(t *testing.T) {
	outcomes := newOutcomeRecorder()
	transport := &mock.TransportMock{
		RoundTripFunc: func(ctx context.Context, address string, req domain.ProxyRequest) (domain.ProxyResponse, error) {
			if address == "a:1" {
				return domain.ProxyResponse{}, errConnRefused
			}
			return okResponse(), nil
		},
	}
	r := NewRouter(ordersMatcher(t), staticCandidates("a:1", "b:1"), outcomes.mock(), transport, passHeaders(), log.NewNopLogger(), nil, RouterSettings{})

	resp, err := r.Route(context.Background(), domain.ProxyRequest{Method: http.MethodPost, Path: "/orders", Body: []byte(`{"id":1}`)})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	calls := transport.RoundTripCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, []byte(`{"id":1}`), calls[1].Req.Body, "body replayed")
	assert.Equal(t, []bool{false}, outcomes.get("a:1"))
	assert.Equal(t, []bool{true}, outcomes.get("b:1"))
}

func TestRouter_Route_MaxAttempts(t *testing.T) {
	outcomes := newOutcomeRecorder()
	transport := &mock.TransportMock{
		RoundTripFunc: func(ctx context.Context, address string, req domain.ProxyRequest) (domain.ProxyResponse, error) {
			return domain.ProxyResponse{}, errConnRefused
		},
	}
	r := NewRouter(ordersMatcher(t), staticCandidates("a:1", "b:1", "c:1"), outcomes.mock(), transport, passHeaders(), log.NewNopLogger(), nil, RouterSettings{MaxAttempts: 2})

	_, err := r.Route(context.Background(), domain.ProxyRequest{Path: "/orders/1"})
	require.Error(t, err)
	assert.True(t, domain.IsUpstreamUnavailable(err))
	assert.ErrorIs(t, err, errConnRefused)
	assert.Len(t, transport.RoundTripCalls(), 2)
	assert.Empty(t, outcomes.get("c:1"))
}

func TestRouter_Route_Candidates(t *testing.T) {
	transport := &mock.TransportMock{
		RoundTripFunc: func(ctx context.Context, address string, req domain.ProxyRequest) (domain.ProxyResponse, error) {
			return domain.ProxyResponse{}, errConnRefused
		},
	}
	r := NewRouter(ordersMatcher(t), staticCandidates("a:1", "b:1", "c:1"), newOutcomeRecorder().mock(), transport, passHeaders(), log.NewNopLogger(), nil,
		RouterSettings{MaxAttempts: 3, Candidates: 1})

	_, err := r.Route(context.Background(), domain.ProxyRequest{Path: "/orders/1"})
	assert.True(t, domain.IsUpstreamUnavailable(err))
	require.Len(t, transport.RoundTripCalls(), 1)
	assert.Equal(t, "a:1", transport.RoundTripCalls()[0].Address)
}

func TestRouter_Route_ServerErrors(t *testing.T) {
	t.Run("retried_then_success", func(t *testing.T) {
		outcomes := newOutcomeRecorder()
		transport := &mock.TransportMock{
			RoundTripFunc: func(ctx context.Context, address string, req domain.ProxyRequest) (domain.ProxyResponse, error) {
				if address == "a:1" {
					return domain.ProxyResponse{StatusCode: http.StatusBadGateway}, nil
				}
				return okResponse(), nil
			},
		}
		r := NewRouter(ordersMatcher(t), staticCandidates("a:1", "b:1"), outcomes.mock(), transport, passHeaders(), log.NewNopLogger(), nil, RouterSettings{})

		resp, err := r.Route(context.Background(), domain.ProxyRequest{Path: "/orders/1"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, []bool{false}, outcomes.get("a:1"))
	})

	t.Run("last_response_relayed", func(t *testing.T) {
		transport := &mock.TransportMock{
			RoundTripFunc: func(ctx context.Context, address string, req domain.ProxyRequest) (domain.ProxyResponse, error) {
				return domain.ProxyResponse{StatusCode: http.StatusServiceUnavailable, Body: []byte(address)}, nil
			},
		}
		r := NewRouter(ordersMatcher(t), staticCandidates("a:1", "b:1"), newOutcomeRecorder().mock(), transport, passHeaders(), log.NewNopLogger(), nil, RouterSettings{})

		resp, err := r.Route(context.Background(), domain.ProxyRequest{Path: "/orders/1"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, []byte("b:1"), resp.Body)
	})
}

func TestRouter_Route_CircuitOpen(t *testing.T) {
	key := domain.UpstreamKey{Service: "orders", Address: "a:1"}
	breakers := &mock.BreakersMock{
		AllowFunc: func(k domain.UpstreamKey) (func(bool), error) {
			return nil, domain.NewCircuitOpenError(k, errors.New("circuit breaker is open"))
		},
	}
	transport := &mock.TransportMock{}
	r := NewRouter(ordersMatcher(t), staticCandidates("a:1", "b:1"), breakers, transport, passHeaders(), log.NewNopLogger(), nil, RouterSettings{})

	_, err := r.Route(context.Background(), domain.ProxyRequest{Path: "/orders/1"})
	require.Error(t, err)
	assert.True(t, domain.IsCircuitOpen(err))
	assert.Empty(t, transport.RoundTripCalls(), "no network call")
	require.Len(t, breakers.AllowCalls(), 1, "request ends at the first open breaker")
	assert.Equal(t, key, breakers.AllowCalls()[0].Key)
}

func TestRouter_Route_Timeout(t *testing.T) {
	outcomes := newOutcomeRecorder()
	transport := &mock.TransportMock{
		RoundTripFunc: func(ctx context.Context, address string, req domain.ProxyRequest) (domain.ProxyResponse, error) {
			<-ctx.Done()
			return domain.ProxyResponse{}, ctx.Err()
		},
	}
	r := NewRouter(ordersMatcher(t, domain.ServiceRoute{Prefix: "/orders", Service: "orders", Timeout: 20 * time.Millisecond}),
		staticCandidates("a:1"), outcomes.mock(), transport, passHeaders(), log.NewNopLogger(), nil, RouterSettings{DefaultTimeout: time.Minute})

	start := time.Now()
	_, err := r.Route(context.Background(), domain.ProxyRequest{Path: "/orders/1"})
	require.Error(t, err)
	assert.True(t, domain.IsUpstreamTimeout(err))
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, []bool{false}, outcomes.get("a:1"))
}

func TestRouter_Route_ClientCancel(t *testing.T) {
	outcomes := newOutcomeRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	transport := &mock.TransportMock{
		RoundTripFunc: func(attemptCtx context.Context, address string, req domain.ProxyRequest) (domain.ProxyResponse, error) {
			cancel()
			<-attemptCtx.Done()
			return domain.ProxyResponse{}, attemptCtx.Err()
		},
	}
	r := NewRouter(ordersMatcher(t), staticCandidates("a:1", "b:1"), outcomes.mock(), transport, passHeaders(), log.NewNopLogger(), nil, RouterSettings{})

	_, err := r.Route(ctx, domain.ProxyRequest{Path: "/orders/1"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, transport.RoundTripCalls(), 1, "no retry after client cancel")
	assert.Equal(t, []bool{true}, outcomes.get("a:1"), "cancellation does not count against the upstream")
}

func TestRouter_Route_HeadersAndStripPrefix(t *testing.T) {
	headers := &mock.HeaderProcessorMock{
		ProcessFunc: func(ctx context.Context, req domain.ProxyRequest, h http.Header) (http.Header, error) {
			out := http.Header{}
			out.Set("X-Request-Id", "req-1")
			return out, nil
		},
	}
	transport := &mock.TransportMock{
		RoundTripFunc: func(ctx context.Context, address string, req domain.ProxyRequest) (domain.ProxyResponse, error) {
			return domain.ProxyResponse{}, errConnRefused
		},
	}
	r := NewRouter(ordersMatcher(t, domain.ServiceRoute{Prefix: "/api/orders", Service: "orders", StripPrefix: true}),
		staticCandidates("a:1", "b:1"), newOutcomeRecorder().mock(), transport, headers, log.NewNopLogger(), nil, RouterSettings{})

	in := domain.ProxyRequest{Path: "/api/orders/7", Header: http.Header{"Connection": {"close"}}}
	_, err := r.Route(context.Background(), in)
	require.Error(t, err)

	require.Len(t, headers.ProcessCalls(), 1, "headers processed once per request")
	for _, call := range transport.RoundTripCalls() {
		assert.Equal(t, "/7", call.Req.Path)
		assert.Equal(t, "req-1", call.Req.Header.Get("X-Request-Id"))
	}
	assert.Equal(t, "close", in.Header.Get("Connection"), "inbound headers untouched")
}

func TestRouter_Route_HeaderError(t *testing.T) {
	headerErr := domain.NewBadParameterError("bad header", nil)
	headers := &mock.HeaderProcessorMock{
		ProcessFunc: func(ctx context.Context, req domain.ProxyRequest, h http.Header) (http.Header, error) {
			return nil, headerErr
		},
	}
	transport := &mock.TransportMock{}
	r := NewRouter(ordersMatcher(t), staticCandidates("a:1"), newOutcomeRecorder().mock(), transport, headers, log.NewNopLogger(), nil, RouterSettings{})

	_, err := r.Route(context.Background(), domain.ProxyRequest{Path: "/orders/1"})
	assert.ErrorIs(t, err, headerErr)
	assert.Empty(t, transport.RoundTripCalls())
}

// TestRouter_Route_BreakerOpensOnFailingAddress drives orders with addresses A and B where A refuses every
// connection: after five failures A's breaker opens and every later request goes to B only.
func TestRouter_Route_BreakerOpensOnFailingAddress(t *testing.T) {
	clock := newFakeClock()
	breakers := NewBreakers(domain.BreakerSettings{FailureThreshold: 5, CoolDown: time.Hour}, clock, log.NewNopLogger(), nil)
	registry := NewRegistry(breakers, log.NewNopLogger(), nil)
	registry.Register("orders", "A:80")
	registry.Register("orders", "B:80")

	var mu sync.Mutex
	hits := map[string]int{}
	transport := &mock.TransportMock{
		RoundTripFunc: func(ctx context.Context, address string, req domain.ProxyRequest) (domain.ProxyResponse, error) {
			mu.Lock()
			hits[address]++
			mu.Unlock()
			if address == "A:80" {
				return domain.ProxyResponse{}, errConnRefused
			}
			return okResponse(), nil
		},
	}
	m := metrics.New(nil, false)
	r := NewRouter(ordersMatcher(t), registry, breakers, transport, passHeaders(), log.NewNopLogger(), m, RouterSettings{})

	a := domain.UpstreamKey{Service: "orders", Address: "A:80"}
	for i := 0; i < 20 && breakers.State(a) != domain.BreakerOpen; i++ {
		resp, err := r.Route(context.Background(), domain.ProxyRequest{Path: "/orders/1"})
		require.NoError(t, err, "B serves every request, request %d", i)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	require.Equal(t, domain.BreakerOpen, breakers.State(a))
	assert.Equal(t, 5, hits["A:80"])

	for i := 0; i < 10; i++ {
		resp, err := r.Route(context.Background(), domain.ProxyRequest{Path: "/orders/1"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, 5, hits["A:80"], "no traffic to A while its breaker is open")

	list, err := registry.ListHealthy("orders")
	require.NoError(t, err)
	assert.Equal(t, []string{"B:80"}, addressesOf(list))

	assert.Equal(t, 5.0, testutil.ToFloat64(m.RouteAttempts.WithLabelValues("orders", metrics.OutcomeError)))
}
