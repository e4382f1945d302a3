// Package main is the entry point of the delivery gateway. It loads configuration (env + YAML), builds the
// breaker set, the upstream registry, the prober with one HTTP or gRPC probe per service, membership seeded
// from static addresses, one DiscoverySync per discovered service, the route matcher, the header chain and the
// router. Proxied traffic is served by echo on SERVICE_PORT_HTTP; the admin API, /healthz and /metrics on
// ADMIN_PORT_HTTP. On SIGINT/SIGTERM both servers shut down within 10s, then background tasks are joined.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"deliverygateway/adapters"
	"deliverygateway/domain"
	"deliverygateway/handlers"
	"deliverygateway/helpers"
	"deliverygateway/interfaces"
	"deliverygateway/metrics"
	"deliverygateway/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gofrs/uuid/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting delivery gateway")

	cfg, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", cfg.HTTPPort,
		"admin_port_http", cfg.AdminPort,
		"routes", len(cfg.Routes.Routes),
		"services", len(cfg.Services),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New(prometheus.NewRegistry(), true)
	clock := service.SystemClock()
	breakers := service.NewBreakers(cfg.Breaker, clock, logger, m)
	registry := service.NewRegistry(breakers, logger, m)

	probes, grpcProbes := buildProbes(cfg.Services, &http.Client{})
	prober := service.NewProber(registry, probes, cfg.Prober, clock, logger, m)
	membership := service.NewMembership(registry, prober, logger)

	syncs := make(map[domain.ServiceName]*service.DiscoverySync)
	for name, svc := range cfg.Services {
		if !svc.Dynamic() {
			continue
		}
		discoverer := adapters.DiscovererHTTP(svc.DiscovererURL, &http.Client{Timeout: 10 * time.Second})
		syncs[name] = service.NewDiscoverySync(name, discoverer, membership, svc.DiscovererInterval, logger)
	}
	prober.OnEvict(func(key domain.UpstreamKey) {
		if p, ok := grpcProbes[key.Service]; ok {
			p.Forget(key.Address)
		}
		if s, ok := syncs[key.Service]; ok {
			s.Evicted(ctx, key)
		}
	})
	membership.Seed(cfg.Services)

	var wg sync.WaitGroup
	for _, s := range syncs {
		wg.Add(1)
		go func(s *service.DiscoverySync) {
			defer wg.Done()
			s.Run(ctx)
		}(s)
	}

	matcher, err := service.NewRouteMatcher(cfg.Routes)
	if err != nil {
		level.Error(logger).Log("msg", "Invalid route config", "err", err)
		os.Exit(1)
	}
	headerChain := helpers.NewHeaderProcessorChain(
		helpers.HopByHopProcessor{},
		helpers.ForwardedProcessor{},
		helpers.NewRequestIDProcessor(uuid.NewV4),
	)
	transport := adapters.NewHTTPTransport(&http.Client{
		Transport: &http.Transport{
			Proxy:               nil,
			MaxIdleConnsPerHost: 32,
			IdleConnTimeout:     90 * time.Second,
		},
	}, "http")
	router := service.NewRouter(matcher, registry, breakers, transport, headerChain, logger, m, cfg.Router)

	var proxy *echo.Echo
	{
		proxy = echo.New()
		proxy.HideBanner = true
		proxy.HidePort = true
		service.RegisterErrorHandler(proxy, logger, cfg.Breaker.CoolDown)
		handlers.RegisterProxy(proxy, handlers.NewProxyHandler(router, cfg.MaxBodyBytes, logger))
	}

	var admin *echo.Echo
	{
		doc, err := handlers.LoadAdminSpec()
		if err != nil {
			level.Error(logger).Log("msg", "Failed to load admin API spec", "err", err)
			os.Exit(1)
		}
		validator, err := handlers.OpenAPIRequestValidator(doc)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to build admin API validator", "err", err)
			os.Exit(1)
		}
		admin = echo.New()
		admin.HideBanner = true
		admin.HidePort = true
		service.RegisterErrorHandler(admin, logger, cfg.Breaker.CoolDown)
		handlers.RegisterAdminHandlers(admin, handlers.NewAdminServer(membership, logger), m.Handler(), validator)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	for _, srv := range []struct {
		name string
		e    *echo.Echo
		port int
	}{{"proxy", proxy, cfg.HTTPPort}, {"admin", admin, cfg.AdminPort}} {
		go func(name string, e *echo.Echo, port int) {
			addr := fmt.Sprintf(":%d", port)
			level.Info(logger).Log("msg", "Starting HTTP server", "server", name, "addr", addr)
			if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
				level.Error(logger).Log("msg", "HTTP server error", "server", name, "err", err)
				requestShutdown(quit)
			}
		}(srv.name, srv.e, srv.port)
	}

	<-quit
	level.Info(logger).Log("msg", "Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	for _, e := range []*echo.Echo{proxy, admin} {
		if err := e.Shutdown(shutdownCtx); err != nil {
			level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
		}
	}

	cancel()
	wg.Wait()
	prober.Close()
	for _, p := range grpcProbes {
		p.Close()
	}
	level.Info(logger).Log("msg", "Server stopped")
}

// buildProbes creates the probe of every service whose probe type is http or grpc. gRPC probes are also
// returned by service so their connections can be released.
func buildProbes(services map[domain.ServiceName]domain.ServiceConfig, client *http.Client) (map[domain.ServiceName]interfaces.Probe, map[domain.ServiceName]*adapters.GRPCProbe) {
	probes := make(map[domain.ServiceName]interfaces.Probe)
	grpcProbes := make(map[domain.ServiceName]*adapters.GRPCProbe)
	for name, svc := range services {
		switch svc.Probe.Type {
		case domain.ProbeHTTP:
			probes[name] = adapters.NewHTTPProbe(client, "http", svc.Probe.Path)
		case domain.ProbeGRPC:
			p := adapters.NewGRPCProbe(svc.Probe.Path)
			probes[name] = p
			grpcProbes[name] = p
		}
	}
	return probes, grpcProbes
}

// requestShutdown asks main to shut down. It never blocks: a pending request is enough when several servers
// fail together.
func requestShutdown(quit chan<- os.Signal) {
	select {
	case quit <- syscall.SIGTERM:
	default:
	}
}
