package catalog

import (
	"context"
	"errors"
	"fmt"

	"deliverygateway/domain"
	"deliverygateway/helpers"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgForeignKeyViolation = "23503"

// PostgresStore implements interfaces.CatalogStore on a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore panics on nil pool. Called from cmd/catalog after Connect and Migrate.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: helpers.NilPanic(pool, "catalog.store.go: pool is required")}
}

func (s *PostgresStore) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, cuisine, address, created_at FROM restaurants ORDER BY name, id`)
	if err != nil {
		return nil, domain.NewInternalServerError("list restaurants failed", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Restaurant, error) {
		var r domain.Restaurant
		err := row.Scan(&r.ID, &r.Name, &r.Cuisine, &r.Address, &r.CreatedAt)
		return r, err
	})
	if err != nil {
		return nil, domain.NewInternalServerError("list restaurants failed", err)
	}
	return out, nil
}

func (s *PostgresStore) GetRestaurant(ctx context.Context, id string) (domain.Restaurant, error) {
	var r domain.Restaurant
	err := s.pool.QueryRow(ctx, `SELECT id, name, cuisine, address, created_at FROM restaurants WHERE id=$1`, id).
		Scan(&r.ID, &r.Name, &r.Cuisine, &r.Address, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Restaurant{}, domain.NewEntityNotFoundError(fmt.Sprintf("restaurant %q not found", id), nil)
	}
	if err != nil {
		return domain.Restaurant{}, domain.NewInternalServerError("get restaurant failed", err)
	}
	return r, nil
}

func (s *PostgresStore) CreateRestaurant(ctx context.Context, r domain.Restaurant) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO restaurants (id, name, cuisine, address, created_at) VALUES ($1, $2, $3, $4, $5)`,
		r.ID, r.Name, r.Cuisine, r.Address, r.CreatedAt)
	if err != nil {
		return domain.NewInternalServerError("create restaurant failed", err)
	}
	return nil
}

// CreateOrder inserts the order and its items in one transaction. An unknown restaurant is bad_parameter.
func (s *PostgresStore) CreateOrder(ctx context.Context, o domain.Order) error {
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO orders (id, restaurant_id, customer, total_cents, status, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
			o.ID, o.RestaurantID, o.Customer, o.TotalCts, string(o.Status), o.CreatedAt); err != nil {
			return err
		}
		batch := &pgx.Batch{}
		for i, it := range o.Items {
			batch.Queue(`INSERT INTO order_items (order_id, position, name, quantity, price_cents) VALUES ($1, $2, $3, $4, $5)`,
				o.ID, i, it.Name, it.Quantity, it.PriceCts)
		}
		if batch.Len() == 0 {
			return nil
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return domain.NewBadParameterError(fmt.Sprintf("restaurant %q does not exist", o.RestaurantID), nil)
	}
	if err != nil {
		return domain.NewInternalServerError("create order failed", err)
	}
	return nil
}

func (s *PostgresStore) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	var o domain.Order
	var status string
	err := s.pool.QueryRow(ctx, `SELECT id, restaurant_id, customer, total_cents, status, created_at FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.RestaurantID, &o.Customer, &o.TotalCts, &status, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.NewEntityNotFoundError(fmt.Sprintf("order %q not found", id), nil)
	}
	if err != nil {
		return domain.Order{}, domain.NewInternalServerError("get order failed", err)
	}
	o.Status = domain.OrderStatus(status)

	rows, err := s.pool.Query(ctx, `SELECT name, quantity, price_cents FROM order_items WHERE order_id=$1 ORDER BY position`, id)
	if err != nil {
		return domain.Order{}, domain.NewInternalServerError("get order items failed", err)
	}
	o.Items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OrderItem, error) {
		var it domain.OrderItem
		err := row.Scan(&it.Name, &it.Quantity, &it.PriceCts)
		return it, err
	})
	if err != nil {
		return domain.Order{}, domain.NewInternalServerError("get order items failed", err)
	}
	return o, nil
}
