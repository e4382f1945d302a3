package main

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"deliverygateway/domain"
	"deliverygateway/service"

	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envHTTPPort   = "SERVICE_PORT_HTTP"
	envAdminPort  = "ADMIN_PORT_HTTP"
	envConfigPath = "CONFIG_PATH"
)

// Config holds the full gateway configuration loaded by LoadConfig from environment variables and the YAML file.
// HTTPPort serves proxied traffic (SERVICE_PORT_HTTP); AdminPort serves the admin API, /healthz and /metrics
// (ADMIN_PORT_HTTP); everything else comes from the YAML file at CONFIG_PATH.
type Config struct {
	HTTPPort     int
	AdminPort    int
	Routes       domain.RouteConfig
	Services     map[domain.ServiceName]domain.ServiceConfig
	Breaker      domain.BreakerSettings
	Prober       service.ProberSettings
	Router       service.RouterSettings
	MaxBodyBytes int64
}

type yamlConfig struct {
	Routes   []yamlRoute            `yaml:"routes"`
	Services map[string]yamlService `yaml:"services"`
	Breaker  yamlBreaker            `yaml:"breaker"`
	Prober   yamlProber             `yaml:"prober"`
	Router   yamlRouter             `yaml:"router"`
}

type yamlRoute struct {
	Prefix      string `yaml:"prefix"`
	Service     string `yaml:"service"`
	TimeoutMs   int    `yaml:"timeout_ms"`
	StripPrefix bool   `yaml:"strip_prefix"`
}

// yamlService is one upstream service: static addresses and/or a discoverer, and how its addresses are probed.
type yamlService struct {
	Addresses          []string  `yaml:"addresses"`
	DiscovererURL      string    `yaml:"discoverer_url"`
	DiscovererInterval int       `yaml:"discoverer_interval_ms"`
	Probe              yamlProbe `yaml:"probe"`
}

type yamlProbe struct {
	Type string `yaml:"type"`
	Path string `yaml:"path"`
}

type yamlBreaker struct {
	FailureThreshold int `yaml:"failure_threshold"`
	CoolDownMs       int `yaml:"cool_down_ms"`
}

type yamlProber struct {
	IntervalMs       int `yaml:"interval_ms"`
	TimeoutMs        int `yaml:"timeout_ms"`
	FailureThreshold int `yaml:"failure_threshold"`
	MaxBackoffMs     int `yaml:"max_backoff_ms"`
	RetentionMs      int `yaml:"retention_ms"`
}

type yamlRouter struct {
	MaxAttempts      int   `yaml:"max_attempts"`
	Candidates       int   `yaml:"candidates"`
	DefaultTimeoutMs int   `yaml:"default_timeout_ms"`
	MaxBodyBytes     int64 `yaml:"max_body_bytes"`
}

// loadYAMLConfig reads the YAML file at path and unmarshals it into yamlConfig.
//
// Called only from LoadConfig.
func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig builds gateway config from environment variables and YAML at CONFIG_PATH. SERVICE_PORT_HTTP and
// ADMIN_PORT_HTTP are required (1-65535, distinct); CONFIG_PATH is required and made absolute. Routes are
// normalized (normalizePrefix) and checked with domain.ValidateRouteConfig; every route must reference a
// defined service; every service needs static addresses (host:port) or a discoverer_url; probe type is
// http|grpc|none (empty means none) and http needs a path. Zero durations and counts in breaker, prober and
// router fall back to the service defaults.
//
// Returns: (*Config, nil) on success; (nil, error) on the first problem found.
//
// Called only from main at startup.
func LoadConfig() (*Config, error) {
	httpPort, err := portFromEnv(envHTTPPort)
	if err != nil {
		return nil, err
	}
	adminPort, err := portFromEnv(envAdminPort)
	if err != nil {
		return nil, err
	}
	if httpPort == adminPort {
		return nil, fmt.Errorf("%s and %s must differ, both are %d", envHTTPPort, envAdminPort, httpPort)
	}
	configPath := strings.TrimSpace(os.Getenv(envConfigPath))
	if configPath == "" {
		return nil, fmt.Errorf("%s is required", envConfigPath)
	}
	if !filepath.IsAbs(configPath) {
		abs, absErr := filepath.Abs(configPath)
		if absErr != nil {
			return nil, absErr
		}
		configPath = abs
	}
	raw, err := loadYAMLConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}

	routes := make([]domain.ServiceRoute, 0, len(raw.Routes))
	for _, route := range raw.Routes {
		routes = append(routes, domain.ServiceRoute{
			Prefix:      normalizePrefix(route.Prefix),
			Service:     domain.ServiceName(strings.TrimSpace(route.Service)),
			Timeout:     time.Duration(route.TimeoutMs) * time.Millisecond,
			StripPrefix: route.StripPrefix,
		})
	}
	routeCfg := domain.RouteConfig{Routes: routes}
	if err := domain.ValidateRouteConfig(routeCfg); err != nil {
		return nil, err
	}

	services := make(map[domain.ServiceName]domain.ServiceConfig, len(raw.Services))
	for name, svc := range raw.Services {
		cfg, err := toServiceConfig(name, svc)
		if err != nil {
			return nil, err
		}
		services[domain.ServiceName(name)] = cfg
	}
	for _, route := range routeCfg.Routes {
		if _, ok := services[route.Service]; !ok {
			return nil, fmt.Errorf("route prefix %q references unknown service %q", route.Prefix, route.Service)
		}
	}

	if raw.Prober.RetentionMs < -1 {
		return nil, fmt.Errorf("prober.retention_ms must be -1 (disabled), 0 (default) or positive")
	}
	retention := time.Duration(raw.Prober.RetentionMs) * time.Millisecond
	if raw.Prober.RetentionMs == -1 {
		retention = -1
	}
	return &Config{
		HTTPPort:  httpPort,
		AdminPort: adminPort,
		Routes:    routeCfg,
		Services:  services,
		Breaker: domain.BreakerSettings{
			FailureThreshold: raw.Breaker.FailureThreshold,
			CoolDown:         time.Duration(raw.Breaker.CoolDownMs) * time.Millisecond,
		}.WithDefaults(),
		Prober: service.ProberSettings{
			Interval:         time.Duration(raw.Prober.IntervalMs) * time.Millisecond,
			Timeout:          time.Duration(raw.Prober.TimeoutMs) * time.Millisecond,
			FailureThreshold: raw.Prober.FailureThreshold,
			MaxBackoff:       time.Duration(raw.Prober.MaxBackoffMs) * time.Millisecond,
			Retention:        retention,
		}.WithDefaults(),
		Router: service.RouterSettings{
			MaxAttempts:    raw.Router.MaxAttempts,
			Candidates:     raw.Router.Candidates,
			DefaultTimeout: time.Duration(raw.Router.DefaultTimeoutMs) * time.Millisecond,
		}.WithDefaults(),
		MaxBodyBytes: raw.Router.MaxBodyBytes,
	}, nil
}

func toServiceConfig(name string, svc yamlService) (domain.ServiceConfig, error) {
	cfg := domain.ServiceConfig{
		DiscovererURL:      strings.TrimSpace(svc.DiscovererURL),
		DiscovererInterval: time.Duration(svc.DiscovererInterval) * time.Millisecond,
		Probe: domain.ProbeConfig{
			Type: domain.ProbeType(strings.TrimSpace(svc.Probe.Type)),
			Path: strings.TrimSpace(svc.Probe.Path),
		},
	}
	for _, addr := range svc.Addresses {
		addr = strings.TrimSpace(addr)
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return cfg, fmt.Errorf("service %s: address %q must be host:port", name, addr)
		}
		cfg.Addresses = append(cfg.Addresses, addr)
	}
	if len(cfg.Addresses) == 0 && cfg.DiscovererURL == "" {
		return cfg, fmt.Errorf("service %s: addresses or discoverer_url is required", name)
	}
	if cfg.DiscovererInterval < 0 {
		return cfg, fmt.Errorf("service %s: discoverer_interval_ms must not be negative", name)
	}
	switch cfg.Probe.Type {
	case "":
		cfg.Probe.Type = domain.ProbeNone
	case domain.ProbeNone, domain.ProbeGRPC:
	case domain.ProbeHTTP:
		if cfg.Probe.Path == "" {
			return cfg, fmt.Errorf("service %s: probe.path is required for http probe", name)
		}
	default:
		return cfg, fmt.Errorf("service %s: probe.type must be http|grpc|none", name)
	}
	return cfg, nil
}

func portFromEnv(name string) (int, error) {
	s := strings.TrimSpace(os.Getenv(name))
	port, err := strconv.Atoi(s)
	if err != nil || s == "" {
		return 0, fmt.Errorf("%s must be a valid port (1-65535)", name)
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("%s must be 1-65535, got %d", name, port)
	}
	return port, nil
}

// normalizePrefix trims spaces, removes a trailing "*" and adds a leading "/" when missing.
func normalizePrefix(prefix string) string {
	p := strings.TrimSpace(prefix)
	p = strings.TrimSuffix(p, "*")
	if p != "" && p[0] != '/' {
		p = "/" + p
	}
	return p
}
