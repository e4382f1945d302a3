package service

import (
	"sort"
	"strings"

	"deliverygateway/domain"
)

// routeMatcher implements interfaces.RouteMatcher. It maps a request path to a domain.ServiceRoute using
// longest-prefix match on path segment boundaries: routes are stored sorted by prefix length (descending)
// and the first matching prefix wins. Built from domain.RouteConfig in cmd/gateway.
type routeMatcher struct {
	routes []domain.ServiceRoute
}

// NewRouteMatcher validates config via ValidateRouteConfig, copies routes and sorts them by descending
// prefix length.
//
// Parameter cfg — route config (from YAML via LoadConfig). Empty Routes is valid; every path then yields no_route.
//
// Returns: (*routeMatcher, nil) on success; (nil, error) on ValidateRouteConfig error (*RouteConfigError).
//
// Called from cmd/gateway at startup.
func NewRouteMatcher(cfg domain.RouteConfig) (*routeMatcher, error) {
	if err := domain.ValidateRouteConfig(cfg); err != nil {
		return nil, err
	}
	routes := make([]domain.ServiceRoute, len(cfg.Routes))
	copy(routes, cfg.Routes)
	sort.SliceStable(routes, func(i, j int) bool {
		return len(routes[i].Prefix) > len(routes[j].Prefix)
	})
	return &routeMatcher{routes: routes}, nil
}

// Match returns the route with the longest prefix that matches path on a segment boundary.
//
// Parameter path — URL path without query, e.g. /orders/123.
//
// Returns: (route, true) on match; (domain.ServiceRoute{}, false) when no prefix matches.
//
// Called from service.Router.Route at the start of each request.
func (r *routeMatcher) Match(path string) (domain.ServiceRoute, bool) {
	for _, route := range r.routes {
		if matchPrefix(path, route.Prefix) {
			return route, true
		}
	}
	return domain.ServiceRoute{}, false
}

// matchPrefix reports whether prefix covers path: equal, followed by "/", or prefix itself ends with "/".
func matchPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	if len(path) == len(prefix) || strings.HasSuffix(prefix, "/") {
		return true
	}
	return path[len(prefix)] == '/'
}

// stripPrefix removes route.Prefix from path, keeping a leading "/".
func stripPrefix(path, prefix string) string {
	rest := strings.TrimPrefix(path, strings.TrimSuffix(prefix, "/"))
	if rest == "" || rest[0] != '/' {
		rest = "/" + rest
	}
	return rest
}
