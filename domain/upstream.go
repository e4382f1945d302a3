package domain

import (
	"net"
	"strconv"
	"time"
)

// Health is the probe-derived health of one upstream address.
type Health string

const (
	HealthHealthy Health = "healthy"
	HealthSuspect Health = "suspect"
	HealthDown    Health = "down"
)

// UpstreamKey identifies one backend instance of a logical service. Breakers and prober tasks are keyed by it.
type UpstreamKey struct {
	Service ServiceName
	Address string
}

// String returns "service/address" for logs.
func (k UpstreamKey) String() string {
	return string(k.Service) + "/" + k.Address
}

// HealthStatus is the probe-owned part of an UpstreamAddress. DownSince is zero unless Health is HealthDown.
type HealthStatus struct {
	Health              Health
	ConsecutiveFailures int
	LastProbe           time.Time
	DownSince           time.Time
}

// UpstreamAddress is one registered backend instance as seen by the registry.
// Breaker is filled only in registry snapshots.
type UpstreamAddress struct {
	Service ServiceName
	Address string
	HealthStatus
	Breaker BreakerSnapshot
}

// Key returns the UpstreamKey of the address.
func (a UpstreamAddress) Key() UpstreamKey {
	return UpstreamKey{Service: a.Service, Address: a.Address}
}

// ProbeType selects the liveness check used for a service's addresses.
type ProbeType string

const (
	ProbeHTTP ProbeType = "http"
	ProbeGRPC ProbeType = "grpc"
	ProbeNone ProbeType = "none"
)

// ProbeConfig describes how a service is probed. Path is the HTTP health path or the gRPC health service name.
type ProbeConfig struct {
	Type ProbeType
	Path string
}

// ServiceConfig holds the static addresses of a service and, for discovered services, the discoverer
// base URL and poll interval.
type ServiceConfig struct {
	Addresses          []string
	DiscovererURL      string
	DiscovererInterval time.Duration
	Probe              ProbeConfig
}

// Dynamic reports whether the service membership comes from a discoverer.
func (c ServiceConfig) Dynamic() bool {
	return c.DiscovererURL != ""
}

// ServiceInstance is a single backend instance from the discoverer (e.g. GET /v1/instances).
type ServiceInstance struct {
	InstanceID string
	Ipv4       string
	Port       int
}

// Address returns host:port of the instance.
func (i ServiceInstance) Address() string {
	return net.JoinHostPort(i.Ipv4, strconv.Itoa(i.Port))
}
