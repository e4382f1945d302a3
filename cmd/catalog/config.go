package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPPort        int
	GRPCPort        int
	RedisAddr       string
	DatabaseURL     string
	ListTTL         time.Duration
	ItemTTL         time.Duration
	CacheMaxEntries int
	ConnectAttempts int
	ConnectInterval time.Duration
}

// LoadConfig reads the catalog configuration from the environment. DATABASE_URL is required; SERVICE_PORT_GRPC
// enables the gRPC health endpoint when set; TTLs and the connect interval are Go durations.
func LoadConfig() (*Config, error) {
	config := &Config{
		HTTPPort:  8080,
		RedisAddr: "redis://localhost:6379",
	}

	var err error
	if config.HTTPPort, err = intFromEnv("SERVICE_PORT_HTTP", config.HTTPPort); err != nil {
		return nil, err
	}
	if config.GRPCPort, err = intFromEnv("SERVICE_PORT_GRPC", 0); err != nil {
		return nil, err
	}
	if config.HTTPPort <= 0 || config.HTTPPort > 65535 {
		return nil, fmt.Errorf("SERVICE_PORT_HTTP must be 1-65535, got %d", config.HTTPPort)
	}
	if config.GRPCPort < 0 || config.GRPCPort > 65535 || (config.GRPCPort != 0 && config.GRPCPort == config.HTTPPort) {
		return nil, fmt.Errorf("SERVICE_PORT_GRPC must be 1-65535 and differ from SERVICE_PORT_HTTP, got %d", config.GRPCPort)
	}

	if v := strings.TrimSpace(os.Getenv("REDIS_ADDR")); v != "" {
		config.RedisAddr = v
	}
	config.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if config.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required and must not be empty")
	}

	if config.ListTTL, err = durationFromEnv("CATALOG_LIST_TTL"); err != nil {
		return nil, err
	}
	if config.ItemTTL, err = durationFromEnv("CATALOG_ITEM_TTL"); err != nil {
		return nil, err
	}
	if config.ConnectInterval, err = durationFromEnv("DB_CONNECT_INTERVAL"); err != nil {
		return nil, err
	}
	if config.CacheMaxEntries, err = intFromEnv("CATALOG_CACHE_MAX_ENTRIES", 0); err != nil {
		return nil, err
	}
	if config.ConnectAttempts, err = intFromEnv("DB_CONNECT_ATTEMPTS", 0); err != nil {
		return nil, err
	}

	return config, nil
}

func intFromEnv(name string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", name)
	}
	return n, nil
}

func durationFromEnv(name string) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", name)
	}
	return d, nil
}
