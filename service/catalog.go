package service

import (
	"context"
	"strings"
	"time"

	"deliverygateway/domain"
	"deliverygateway/helpers"
	"deliverygateway/interfaces"
	"deliverygateway/metrics"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gofrs/uuid/v5"
)

const (
	DefaultListTTL = 30 * time.Second
	DefaultItemTTL = 5 * time.Minute

	restaurantsKey = "restaurants"
)

// CatalogSettings configures the read path of the catalog service. Zero TTLs fall back to the defaults.
type CatalogSettings struct {
	ListTTL    time.Duration
	ItemTTL    time.Duration
	MaxEntries int
}

func (s CatalogSettings) WithDefaults() CatalogSettings {
	if s.ListTTL <= 0 {
		s.ListTTL = DefaultListTTL
	}
	if s.ItemTTL <= 0 {
		s.ItemTTL = DefaultItemTTL
	}
	return s
}

// CatalogTiers are the shared Redis caches consulted by the loaders before the store.
type CatalogTiers struct {
	Restaurants interfaces.Cache[[]domain.Restaurant]
	Restaurant  interfaces.Cache[domain.Restaurant]
	Order       interfaces.Cache[domain.Order]
}

// NewOrderItem is one line of a CreateOrder request.
type NewOrderItem = domain.OrderItem

// CatalogService serves restaurants and orders. Reads go through an in-process CacheAside per entity type
// whose loaders consult the shared Redis tier and then the store, filling Redis on the way back. Writes go
// to the store and invalidate both tiers for the keys they change.
type CatalogService struct {
	store    interfaces.CatalogStore
	tiers    CatalogTiers
	clock    interfaces.TimeProvider
	newID    func() (uuid.UUID, error)
	logger   log.Logger
	settings CatalogSettings

	restaurants *CacheAside[[]domain.Restaurant]
	restaurant  *CacheAside[domain.Restaurant]
	orders      *CacheAside[domain.Order]
}

// NewCatalogService panics on nil store, tier, clock, newID or logger; m may be nil.
//
// Parameters: store — relational store; tiers — Redis caches; clock — created_at timestamps and cache
// expiry; newID — id generator (uuid.NewV4 in production); logger — tier errors; m — optional metrics;
// settings — TTLs and in-process capacity.
//
// Called from cmd/catalog.
func NewCatalogService(
	store interfaces.CatalogStore,
	tiers CatalogTiers,
	clock interfaces.TimeProvider,
	newID func() (uuid.UUID, error),
	logger log.Logger,
	m *metrics.Metrics,
	settings CatalogSettings,
) *CatalogService {
	helpers.NilPanic(tiers.Restaurants, "service.catalog.go: restaurants tier is required")
	helpers.NilPanic(tiers.Restaurant, "service.catalog.go: restaurant tier is required")
	helpers.NilPanic(tiers.Order, "service.catalog.go: order tier is required")
	logger = log.With(helpers.NilPanic(logger, "service.catalog.go: logger is required"), "component", "catalog")
	clock = helpers.NilPanic(clock, "service.catalog.go: clock is required")
	settings = settings.WithDefaults()
	cacheSettings := CacheAsideSettings{MaxEntries: settings.MaxEntries}
	return &CatalogService{
		store:       helpers.NilPanic(store, "service.catalog.go: store is required"),
		tiers:       tiers,
		clock:       clock,
		newID:       helpers.NilPanic(newID, "service.catalog.go: newID is required"),
		logger:      logger,
		settings:    settings,
		restaurants: NewCacheAside[[]domain.Restaurant]("restaurants", cacheSettings, clock, logger, m),
		restaurant:  NewCacheAside[domain.Restaurant]("restaurant", cacheSettings, clock, logger, m),
		orders:      NewCacheAside[domain.Order]("order", cacheSettings, clock, logger, m),
	}
}

func restaurantKey(id string) string { return "restaurant:" + id }
func orderKey(id string) string      { return "order:" + id }

// ListRestaurants returns every restaurant. Errors: loader_failure wrapping the store error.
func (s *CatalogService) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	return s.restaurants.GetOrLoad(ctx, restaurantsKey, func(ctx context.Context) ([]domain.Restaurant, error) {
		return readThrough(ctx, s, s.tiers.Restaurants, restaurantsKey, s.settings.ListTTL, s.store.ListRestaurants)
	}, s.settings.ListTTL)
}

// GetRestaurant returns one restaurant. Errors: loader_failure wrapping entity_not_found when absent.
func (s *CatalogService) GetRestaurant(ctx context.Context, id string) (domain.Restaurant, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Restaurant{}, domain.NewBadParameterError("restaurant id is required", nil)
	}
	key := restaurantKey(id)
	return s.restaurant.GetOrLoad(ctx, key, func(ctx context.Context) (domain.Restaurant, error) {
		return readThrough(ctx, s, s.tiers.Restaurant, key, s.settings.ItemTTL, func(ctx context.Context) (domain.Restaurant, error) {
			return s.store.GetRestaurant(ctx, id)
		})
	}, s.settings.ItemTTL)
}

// CreateRestaurant validates and stores a new restaurant and invalidates the restaurant list.
func (s *CatalogService) CreateRestaurant(ctx context.Context, name, cuisine, address string) (domain.Restaurant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Restaurant{}, domain.NewBadParameterError("name is required", nil)
	}
	id, err := s.newID()
	if err != nil {
		return domain.Restaurant{}, domain.NewInternalServerError("failed to generate id", err)
	}
	r := domain.Restaurant{
		ID:        id.String(),
		Name:      name,
		Cuisine:   strings.TrimSpace(cuisine),
		Address:   strings.TrimSpace(address),
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.store.CreateRestaurant(ctx, r); err != nil {
		return domain.Restaurant{}, err
	}
	s.restaurants.Invalidate(restaurantsKey)
	if err := s.tiers.Restaurants.DeleteValue(ctx, restaurantsKey); err != nil {
		level.Warn(s.logger).Log("msg", "redis invalidate failed", "key", restaurantsKey, "err", err)
	}
	return r, nil
}

// CreateOrder validates and stores a new pending order. Errors: bad_parameter on invalid input or unknown
// restaurant.
func (s *CatalogService) CreateOrder(ctx context.Context, restaurantID, customer string, items []NewOrderItem) (domain.Order, error) {
	if strings.TrimSpace(restaurantID) == "" {
		return domain.Order{}, domain.NewBadParameterError("restaurant_id is required", nil)
	}
	if strings.TrimSpace(customer) == "" {
		return domain.Order{}, domain.NewBadParameterError("customer is required", nil)
	}
	if len(items) == 0 {
		return domain.Order{}, domain.NewBadParameterError("at least one item is required", nil)
	}
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" || it.Quantity <= 0 || it.PriceCts < 0 {
			return domain.Order{}, domain.NewBadParameterError("item must have a name, a positive quantity and a non-negative price", nil)
		}
	}
	id, err := s.newID()
	if err != nil {
		return domain.Order{}, domain.NewInternalServerError("failed to generate id", err)
	}
	o := domain.Order{
		ID:           id.String(),
		RestaurantID: restaurantID,
		Customer:     strings.TrimSpace(customer),
		Items:        append([]domain.OrderItem(nil), items...),
		Status:       domain.OrderPending,
		CreatedAt:    s.clock.Now().UTC(),
	}
	o.TotalCts = o.Total()
	if err := s.store.CreateOrder(ctx, o); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// GetOrder returns one order. Errors: loader_failure wrapping entity_not_found when absent.
func (s *CatalogService) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Order{}, domain.NewBadParameterError("order id is required", nil)
	}
	key := orderKey(id)
	return s.orders.GetOrLoad(ctx, key, func(ctx context.Context) (domain.Order, error) {
		return readThrough(ctx, s, s.tiers.Order, key, s.settings.ItemTTL, func(ctx context.Context) (domain.Order, error) {
			return s.store.GetOrder(ctx, id)
		})
	}, s.settings.ItemTTL)
}

// readThrough consults tier, then load, and writes a loaded value back to tier. Tier failures are logged and
// never fail the read.
func readThrough[T any](
	ctx context.Context,
	s *CatalogService,
	tier interfaces.Cache[T],
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (T, error),
) (T, error) {
	v, err := tier.ReadValue(ctx, key)
	if err == nil {
		return v, nil
	}
	if !domain.IsEntityNotFoundError(err) {
		level.Warn(s.logger).Log("msg", "redis read failed", "key", key, "err", err)
	}
	v, err = load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := tier.WriteValue(ctx, key, v, ttl); err != nil {
		level.Warn(s.logger).Log("msg", "redis write failed", "key", key, "err", err)
	}
	return v, nil
}
