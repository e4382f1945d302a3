package interfaces

import "deliverygateway/domain"

// RouteMatcher resolves a request path to a service route. Implemented by service.routeMatcher.
// Called from service.Router.Route.
//
//go:generate moq -stub -out mock/route_matcher.go -pkg mock . RouteMatcher
type RouteMatcher interface {
	// Match returns the route with the longest prefix matching path on a segment boundary.
	// Returns: (route, true) on match; (domain.ServiceRoute{}, false) when nothing matches.
	Match(path string) (domain.ServiceRoute, bool)
}
