package interfaces

import (
	"context"

	"deliverygateway/domain"
)

// Forwarder routes one buffered inbound request to an upstream of the matching service.
//
// Implemented by service.Router. Called from handlers.ProxyHandler.
//
//go:generate moq -stub -out mock/forwarder.go -pkg mock . Forwarder
type Forwarder interface {
	// Route returns the upstream response, or a GatewayError (no_route, unknown_service,
	// upstream_unavailable, circuit_open, upstream_timeout) or the caller's context error.
	Route(ctx context.Context, req domain.ProxyRequest) (domain.ProxyResponse, error)
}
