package handlers

import (
	"net/http"

	"deliverygateway/domain"
	"deliverygateway/helpers"
	"deliverygateway/interfaces"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
)

// CatalogServer serves the restaurants and orders API of the catalog service.
type CatalogServer struct {
	catalog interfaces.Catalog
	logger  log.Logger
}

// NewCatalogServer creates a new CatalogServer. Panics on nil catalog or logger.
func NewCatalogServer(catalog interfaces.Catalog, logger log.Logger) *CatalogServer {
	return &CatalogServer{
		catalog: helpers.NilPanic(catalog, "handlers.catalog.go: catalog is required"),
		logger:  log.WithPrefix(helpers.NilPanic(logger, "handlers.catalog.go: logger is required"), "component", "CatalogServer"),
	}
}

// RegisterCatalogHandlers mounts the catalog API, /healthz and /metrics on e.
func RegisterCatalogHandlers(e *echo.Echo, s *CatalogServer, metricsHandler http.Handler) {
	e.GET("/restaurants", s.ListRestaurants)
	e.POST("/restaurants", s.CreateRestaurant)
	e.GET("/restaurants/:id", s.GetRestaurant)
	e.POST("/orders", s.CreateOrder)
	e.GET("/orders/:id", s.GetOrder)
	e.GET("/healthz", Healthz)
	if metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(metricsHandler))
	}
}

type CreateRestaurantRequest struct {
	Name    string `json:"name"`
	Cuisine string `json:"cuisine"`
	Address string `json:"address"`
}

type CreateOrderRequest struct {
	RestaurantID string             `json:"restaurant_id"`
	Customer     string             `json:"customer"`
	Items        []domain.OrderItem `json:"items"`
}

type RestaurantsResponse struct {
	Restaurants []domain.Restaurant `json:"restaurants"`
}

// ListRestaurants (GET /restaurants).
func (s *CatalogServer) ListRestaurants(ectx echo.Context) error {
	list, err := s.catalog.ListRestaurants(ectx.Request().Context())
	if err != nil {
		return err
	}
	if list == nil {
		list = []domain.Restaurant{}
	}
	return ectx.JSON(http.StatusOK, RestaurantsResponse{Restaurants: list})
}

// GetRestaurant (GET /restaurants/{id}).
func (s *CatalogServer) GetRestaurant(ectx echo.Context) error {
	r, err := s.catalog.GetRestaurant(ectx.Request().Context(), ectx.Param("id"))
	if err != nil {
		return err
	}
	return ectx.JSON(http.StatusOK, r)
}

// CreateRestaurant (POST /restaurants) returns 201 with the stored restaurant.
func (s *CatalogServer) CreateRestaurant(ectx echo.Context) error {
	var req CreateRestaurantRequest
	if err := ectx.Bind(&req); err != nil {
		return domain.NewBadParameterError("invalid request body", err)
	}
	r, err := s.catalog.CreateRestaurant(ectx.Request().Context(), req.Name, req.Cuisine, req.Address)
	if err != nil {
		return err
	}
	return ectx.JSON(http.StatusCreated, r)
}

// CreateOrder (POST /orders) returns 201 with the stored order.
func (s *CatalogServer) CreateOrder(ectx echo.Context) error {
	var req CreateOrderRequest
	if err := ectx.Bind(&req); err != nil {
		return domain.NewBadParameterError("invalid request body", err)
	}
	o, err := s.catalog.CreateOrder(ectx.Request().Context(), req.RestaurantID, req.Customer, req.Items)
	if err != nil {
		return err
	}
	return ectx.JSON(http.StatusCreated, o)
}

// GetOrder (GET /orders/{id}).
func (s *CatalogServer) GetOrder(ectx echo.Context) error {
	o, err := s.catalog.GetOrder(ectx.Request().Context(), ectx.Param("id"))
	if err != nil {
		return err
	}
	return ectx.JSON(http.StatusOK, o)
}
