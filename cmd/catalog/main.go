// Package main runs the catalog service: restaurants and orders over HTTP, read through an in-process cache and
// a shared Redis tier, stored in Postgres. An optional gRPC port serves grpc.health.v1 so the gateway can probe
// it with probe type grpc.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deliverygateway/adapters/myredis"
	"deliverygateway/catalog"
	"deliverygateway/domain"
	"deliverygateway/handlers"
	"deliverygateway/metrics"
	"deliverygateway/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gofrs/uuid/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting catalog service")

	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}

	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", config.HTTPPort,
		"service_port_grpc", config.GRPCPort,
		"redis_addr", config.RedisAddr,
		"list_ttl", config.ListTTL,
		"item_ttl", config.ItemTTL,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := service.SystemClock()
	m := metrics.New(prometheus.NewRegistry(), true)

	var tiers service.CatalogTiers
	{
		redisClient, err := myredis.NewRedisUniversalClient(config.RedisAddr)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create Redis client", "err", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			level.Warn(logger).Log("msg", "Redis is unreachable, reads fall back to Postgres", "err", err)
		}
		tiers = service.CatalogTiers{
			Restaurants: myredis.NewCache(redisClient, "catalog", jsonMarshal[[]domain.Restaurant], jsonUnmarshal[[]domain.Restaurant]),
			Restaurant:  myredis.NewCache(redisClient, "catalog", jsonMarshal[domain.Restaurant], jsonUnmarshal[domain.Restaurant]),
			Order:       myredis.NewCache(redisClient, "catalog", jsonMarshal[domain.Order], jsonUnmarshal[domain.Order]),
		}
	}

	var store *catalog.PostgresStore
	{
		pool, err := catalog.Connect(ctx, config.DatabaseURL, catalog.ConnectSettings{
			Attempts: config.ConnectAttempts,
			Interval: config.ConnectInterval,
		}, logger)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to connect to Postgres", "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := catalog.Migrate(ctx, pool); err != nil {
			level.Error(logger).Log("msg", "Failed to migrate database", "err", err)
			os.Exit(1)
		}
		store = catalog.NewPostgresStore(pool)
	}

	catalogService := service.NewCatalogService(store, tiers, clock, uuid.NewV4, logger, m, service.CatalogSettings{
		ListTTL:    config.ListTTL,
		ItemTTL:    config.ItemTTL,
		MaxEntries: config.CacheMaxEntries,
	})

	var e *echo.Echo
	{
		e = echo.New()
		e.HideBanner = true
		e.HidePort = true
		service.RegisterErrorHandler(e, logger, 0)
		handlers.RegisterCatalogHandlers(e, handlers.NewCatalogServer(catalogService, logger), m.Handler())
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	var grpcServer *grpc.Server
	if config.GRPCPort > 0 {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", config.GRPCPort))
		if err != nil {
			level.Error(logger).Log("msg", "Failed to listen", "err", err)
			os.Exit(1)
		}
		grpcServer = newHealthGRPCServer()
		go func() {
			level.Info(logger).Log("msg", "Starting gRPC health server", "addr", lis.Addr())
			if err := grpcServer.Serve(lis); err != nil {
				level.Error(logger).Log("msg", "gRPC server error", "err", err)
			}
		}()
	}

	go func() {
		addr := fmt.Sprintf(":%d", config.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
			requestShutdown(quit)
		}
	}()

	<-quit
	level.Info(logger).Log("msg", "Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	level.Info(logger).Log("msg", "Server stopped")
}

// newHealthGRPCServer returns a gRPC server whose health service reports SERVING for the whole server.
func newHealthGRPCServer() *grpc.Server {
	grpcServer := grpc.NewServer()

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	reflection.Register(grpcServer)
	return grpcServer
}

func jsonMarshal[T any](v T) ([]byte, error) { return json.Marshal(v) }

func jsonUnmarshal[T any](data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}

// requestShutdown asks main to shut down. It never blocks: a pending request is enough when several servers
// fail together.
func requestShutdown(quit chan<- os.Signal) {
	select {
	case quit <- syscall.SIGTERM:
	default:
	}
}
