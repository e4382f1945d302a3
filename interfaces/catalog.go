package interfaces

import (
	"context"

	"deliverygateway/domain"
)

// Catalog is the restaurants and orders service behind the catalog HTTP API.
//
// Implemented by service.CatalogService. Called from handlers.CatalogServer.
//
//go:generate moq -stub -out mock/catalog.go -pkg mock . Catalog
type Catalog interface {
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (domain.Restaurant, error)
	CreateRestaurant(ctx context.Context, name, cuisine, address string) (domain.Restaurant, error)
	CreateOrder(ctx context.Context, restaurantID, customer string, items []domain.OrderItem) (domain.Order, error)
	GetOrder(ctx context.Context, id string) (domain.Order, error)
}
