package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"deliverygateway/domain"
	"deliverygateway/helpers"
	"deliverygateway/interfaces"
	"deliverygateway/metrics"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	DefaultMaxAttempts  = 2
	DefaultRouteTimeout = 10 * time.Second
)

// RouterSettings bounds the work done for one request. Zero fields fall back to the defaults;
// Candidates 0 means every healthy address is a candidate.
type RouterSettings struct {
	MaxAttempts    int
	Candidates     int
	DefaultTimeout time.Duration
}

func (s RouterSettings) WithDefaults() RouterSettings {
	if s.MaxAttempts <= 0 {
		s.MaxAttempts = DefaultMaxAttempts
	}
	if s.Candidates < 0 {
		s.Candidates = 0
	}
	if s.DefaultTimeout <= 0 {
		s.DefaultTimeout = DefaultRouteTimeout
	}
	return s
}

// Router forwards one request to one upstream address of the service its path resolves to. Functionality:
// (1) match the longest route prefix via RouteMatcher, (2) take healthy candidates from the Registry,
// (3) process headers once via HeaderProcessor, (4) try candidates in order, each attempt guarded by the
// address's breaker and bounded by the route timeout. Transport failures, timeouts and 5xx responses are
// reported to the breaker as failures and move on to the next candidate; the number of attempts is bounded
// by MaxAttempts. Route has no dependency on a listener; the echo binding lives in handlers.
type Router struct {
	matcher   interfaces.RouteMatcher
	registry  interfaces.Registry
	breakers  interfaces.Breakers
	transport interfaces.Transport
	headers   interfaces.HeaderProcessor
	logger    log.Logger
	metrics   *metrics.Metrics
	settings  RouterSettings
}

// NewRouter creates the router. Panics on nil matcher/registry/breakers/transport/headers/logger (fail-fast at
// startup); m may be nil.
//
// Parameters: matcher — path-to-route matching; registry — candidate addresses; breakers — per-address
// admission and outcome feedback; transport — sends one attempt; headers — outbound header processing;
// logger — logger; m — optional metrics; settings — attempt and candidate bounds, default timeout.
//
// Returns: *Router.
//
// Called from cmd/gateway when building the gateway.
func NewRouter(
	matcher interfaces.RouteMatcher,
	registry interfaces.Registry,
	breakers interfaces.Breakers,
	transport interfaces.Transport,
	headers interfaces.HeaderProcessor,
	logger log.Logger,
	m *metrics.Metrics,
	settings RouterSettings,
) *Router {
	return &Router{
		matcher:   helpers.NilPanic(matcher, "service.router.go: matcher is required"),
		registry:  helpers.NilPanic(registry, "service.router.go: registry is required"),
		breakers:  helpers.NilPanic(breakers, "service.router.go: breakers is required"),
		transport: helpers.NilPanic(transport, "service.router.go: transport is required"),
		headers:   helpers.NilPanic(headers, "service.router.go: headers is required"),
		logger:    log.With(helpers.NilPanic(logger, "service.router.go: logger is required"), "component", "router"),
		metrics:   m,
		settings:  settings.WithDefaults(),
	}
}

// Route resolves req to a service and forwards it to one of its healthy addresses.
//
// Parameters: ctx — request context; cancelling it cancels the outbound call; req — inbound request with a
// fully buffered body.
//
// Returns: (response, nil) for any upstream status below 500, or the last 5xx response once attempts are
// exhausted; (zero, no_route) when no prefix matches; (zero, unknown_service) when the service never had an
// address; (zero, circuit_open) when the breaker of the selected address rejects the call; (zero,
// upstream_timeout) when the last attempt hit the deadline; (zero, upstream_unavailable) when there is no
// candidate or every attempt failed; (zero, ctx.Err()) when the client went away; (zero, err) from the header chain.
//
// Called from handlers.ProxyHandler for every request not served by the gateway itself.
func (r *Router) Route(ctx context.Context, req domain.ProxyRequest) (domain.ProxyResponse, error) {
	route, ok := r.matcher.Match(req.Path)
	if !ok {
		return domain.ProxyResponse{}, domain.NewNoRouteError(req.Path)
	}
	candidates, err := r.registry.ListHealthy(route.Service)
	if err != nil {
		return domain.ProxyResponse{}, err
	}
	if r.settings.Candidates > 0 && len(candidates) > r.settings.Candidates {
		candidates = candidates[:r.settings.Candidates]
	}
	if len(candidates) == 0 {
		return domain.ProxyResponse{}, domain.NewUpstreamUnavailableError(route.Service, nil)
	}

	headers, err := r.headers.Process(ctx, req, req.Header.Clone())
	if err != nil {
		return domain.ProxyResponse{}, err
	}
	out := req
	out.Header = headers
	if route.StripPrefix {
		out.Path = stripPrefix(req.Path, route.Prefix)
	}

	timeout := route.Timeout
	if timeout <= 0 {
		timeout = r.settings.DefaultTimeout
	}
	attempts := min(r.settings.MaxAttempts, len(candidates))

	var (
		lastErr  error
		lastResp *domain.ProxyResponse
	)
	for i := 0; i < attempts; i++ {
		key := candidates[i].Key()
		resp, err := r.attempt(ctx, key, timeout, out)
		switch {
		case err == nil && resp.StatusCode < http.StatusInternalServerError:
			return resp, nil
		case err == nil:
			lastResp, lastErr = &resp, nil
		case domain.IsCircuitOpen(err), ctx.Err() != nil:
			return domain.ProxyResponse{}, err
		default:
			lastResp, lastErr = nil, err
		}
		level.Debug(r.logger).Log("msg", "attempt failed", "upstream", key, "attempt", i+1, "err", lastErr)
	}

	if lastResp != nil {
		return *lastResp, nil
	}
	if domain.IsUpstreamTimeout(lastErr) {
		return domain.ProxyResponse{}, lastErr
	}
	level.Warn(r.logger).Log("msg", "all attempts failed", "service", route.Service, "attempts", attempts, "err", lastErr)
	return domain.ProxyResponse{}, domain.NewUpstreamUnavailableError(route.Service, lastErr)
}

// attempt sends req to key under the breaker and the timeout, and reports the outcome to the breaker.
// A client cancellation is reported as success: the upstream is not at fault.
func (r *Router) attempt(ctx context.Context, key domain.UpstreamKey, timeout time.Duration, req domain.ProxyRequest) (domain.ProxyResponse, error) {
	done, err := r.breakers.Allow(key)
	if err != nil {
		r.metrics.RouteAttempt(key.Service, metrics.OutcomeCircuitOpen, 0)
		return domain.ProxyResponse{}, err
	}

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	start := time.Now()
	resp, err := r.transport.RoundTrip(attemptCtx, key.Address, req)
	elapsed := time.Since(start)

	switch {
	case ctx.Err() != nil:
		done(true)
		r.metrics.RouteAttempt(key.Service, metrics.OutcomeCancelled, elapsed)
		return domain.ProxyResponse{}, ctx.Err()
	case err != nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded):
		done(false)
		r.metrics.RouteAttempt(key.Service, metrics.OutcomeTimeout, elapsed)
		return domain.ProxyResponse{}, domain.NewUpstreamTimeoutError(key, err)
	case err != nil:
		done(false)
		r.metrics.RouteAttempt(key.Service, metrics.OutcomeError, elapsed)
		return domain.ProxyResponse{}, err
	case resp.StatusCode >= http.StatusInternalServerError:
		done(false)
		r.metrics.RouteAttempt(key.Service, metrics.OutcomeUpstream5xx, elapsed)
		return resp, nil
	default:
		done(true)
		r.metrics.RouteAttempt(key.Service, metrics.OutcomeSuccess, elapsed)
		return resp, nil
	}
}
