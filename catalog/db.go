package catalog

import (
	"context"
	"fmt"
	"time"

	"deliverygateway/helpers"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DefaultConnectAttempts = 10
	DefaultConnectInterval = 2 * time.Second
	defaultMaxConns        = 10
	pingTimeout            = 5 * time.Second
)

// ConnectSettings bounds the startup connect loop. Zero fields use the defaults.
type ConnectSettings struct {
	Attempts int
	Interval time.Duration
}

// Connect opens a pgx pool and pings it, retrying at a fixed interval while the database is starting.
// A malformed URL fails at once.
//
// Called from cmd/catalog before Migrate.
func Connect(ctx context.Context, url string, settings ConnectSettings, logger log.Logger) (*pgxpool.Pool, error) {
	logger = helpers.NilPanic(logger, "catalog.db.go: logger is required")
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}
	cfg.MaxConns = defaultMaxConns
	if settings.Attempts <= 0 {
		settings.Attempts = DefaultConnectAttempts
	}
	if settings.Interval <= 0 {
		settings.Interval = DefaultConnectInterval
	}

	attempt := 0
	return backoff.Retry(ctx, func() (*pgxpool.Pool, error) {
		attempt++
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("pgxpool: %w", err))
		}
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			pool.Close()
			level.Warn(logger).Log("msg", "database not ready", "attempt", attempt, "err", err)
			return nil, fmt.Errorf("db ping: %w", err)
		}
		return pool, nil
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(settings.Interval)),
		backoff.WithMaxTries(uint(settings.Attempts)),
	)
}
