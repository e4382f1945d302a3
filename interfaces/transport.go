package interfaces

import (
	"context"

	"deliverygateway/domain"
)

// Transport sends one request to one upstream address.
//
// Implemented by adapters.HTTPTransport. Called from service.Router once per attempt under the attempt's
// deadline; a non-nil error is a transport failure (connection refused, reset, deadline).
//
//go:generate moq -stub -out mock/transport.go -pkg mock . Transport
type Transport interface {
	// RoundTrip forwards req to address and returns the full upstream response.
	// Parameters: ctx — cancelled on client disconnect or attempt timeout; address — host:port; req — outbound
	// request with headers already processed and path already rewritten.
	// Returns: (response, nil) for any HTTP status; (zero, error) when no response was received.
	RoundTrip(ctx context.Context, address string, req domain.ProxyRequest) (domain.ProxyResponse, error)
}
