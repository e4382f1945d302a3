package interfaces

import (
	"context"

	"deliverygateway/domain"
)

// CatalogStore is the relational store of the catalog service.
//
// Implemented by catalog.PostgresStore. Called from service.CatalogService, whose reads sit behind the
// cache-aside store.
//
//go:generate moq -stub -out mock/catalog_store.go -pkg mock . CatalogStore
type CatalogStore interface {
	// ListRestaurants returns all restaurants ordered by name. Empty list is valid.
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)

	// GetRestaurant returns one restaurant; entity_not_found when absent.
	GetRestaurant(ctx context.Context, id string) (domain.Restaurant, error)

	// CreateRestaurant inserts r; r.ID and r.CreatedAt are set by the caller.
	CreateRestaurant(ctx context.Context, r domain.Restaurant) error

	// CreateOrder inserts o with its items; bad_parameter when the restaurant does not exist.
	CreateOrder(ctx context.Context, o domain.Order) error

	// GetOrder returns one order with its items; entity_not_found when absent.
	GetOrder(ctx context.Context, id string) (domain.Order, error)
}
