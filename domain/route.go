package domain

import (
	"strconv"
	"time"
)

// ServiceName identifies a logical upstream service (e.g. "orders", "restaurants").
type ServiceName string

// ServiceRoute maps a path prefix to a logical service.
// Prefix must start with "/" and matches on path segment boundaries ("/orders" matches "/orders" and
// "/orders/123" but not "/ordersx"). Timeout bounds a single forwarding attempt; zero means the router default.
// StripPrefix removes Prefix from the path before forwarding.
type ServiceRoute struct {
	Prefix      string
	Service     ServiceName
	Timeout     time.Duration
	StripPrefix bool
}

// RouteConfig is the static routing table loaded at startup. Order is irrelevant: the matcher
// sorts by prefix length so that the longest prefix wins.
type RouteConfig struct {
	Routes []ServiceRoute
}

// ValidateRouteConfig validates the routing table: each route has a non-empty Prefix starting with "/",
// a non-empty Service and a non-negative Timeout; prefixes are unique.
//
// Parameter cfg — route config (usually from YAML via cmd/gateway LoadConfig). Validation does not check
// that services have upstreams (LoadConfig does that).
//
// Returns: nil when config is valid; *RouteConfigError with Index (0-based route index) and Reason on the first error found.
//
// Called from service.NewRouteMatcher and cmd/gateway LoadConfig before using the config.
func ValidateRouteConfig(cfg RouteConfig) error {
	seen := make(map[string]int, len(cfg.Routes))
	for i, r := range cfg.Routes {
		if r.Prefix == "" {
			return &RouteConfigError{Index: i, Reason: "prefix must be non-empty"}
		}
		if r.Prefix[0] != '/' {
			return &RouteConfigError{Index: i, Reason: "prefix must start with /"}
		}
		if r.Service == "" {
			return &RouteConfigError{Index: i, Reason: "service must be non-empty"}
		}
		if r.Timeout < 0 {
			return &RouteConfigError{Index: i, Reason: "timeout must not be negative"}
		}
		if prev, ok := seen[r.Prefix]; ok {
			return &RouteConfigError{Index: i, Reason: "prefix duplicates route[" + strconv.Itoa(prev) + "]"}
		}
		seen[r.Prefix] = i
	}
	return nil
}

// RouteConfigError is returned by ValidateRouteConfig when a route is invalid.
// Index is the route index (0-based); Reason is a human-readable message.
type RouteConfigError struct {
	Index  int
	Reason string
}

// Error implements error; returns a string like "route[0]: prefix must be non-empty".
func (e *RouteConfigError) Error() string {
	return "route[" + strconv.Itoa(e.Index) + "]: " + e.Reason
}
