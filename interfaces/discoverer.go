package interfaces

import (
	"context"

	"deliverygateway/domain"
)

// Discoverer provides the list of backend instances of a discovered service and supports
// unregistering an instance that stayed Down past the retention window.
//
// Implemented by adapters.DiscovererHTTP. Called from service.DiscoverySync.
//
//go:generate moq -stub -out mock/discoverer.go -pkg mock . Discoverer
type Discoverer interface {
	// GetInstances returns the current list of instances (HTTP GET /v1/instances).
	// Returns: ([]ServiceInstance, nil) on success, empty list is valid; (nil, error) on network or parse error.
	GetInstances(ctx context.Context) ([]domain.ServiceInstance, error)

	// UnregisterInstance asks the discoverer to drop the instance (POST /v1/unregister/{id}).
	// Returns: nil on 200; error otherwise.
	UnregisterInstance(ctx context.Context, instanceID string) error
}
