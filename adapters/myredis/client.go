package myredis

import (
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
)

// NewRedisUniversalClient creates a client from a redis:// URL or a bare host:port.
//
// Returns: (client, nil); (nil, error) when the URL cannot be parsed. No connection is made here, callers Ping.
//
// Called from cmd/catalog.
func NewRedisUniversalClient(addr string) (redis.UniversalClient, error) {
	if !strings.Contains(addr, "://") {
		addr = "redis://" + addr
	}
	opt, err := redis.ParseURL(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid redis address %q: %w", addr, err)
	}
	return redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{opt.Addr},
		Username: opt.Username,
		Password: opt.Password,
		DB:       opt.DB,
	}), nil
}
