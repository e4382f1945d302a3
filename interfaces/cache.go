package interfaces

import (
	"context"
	"time"
)

// Cache is the shared remote cache tier (Redis) behind the in-process cache-aside store.
//
//go:generate moq -stub -out mock/cache.go -pkg mock . Cache
type Cache[T any] interface {
	// ReadValue reads the value stored under key.
	// Returns:
	// 1) (item, nil) on hit;
	// 2) (zero, entity_not_found) on miss;
	// 3) (zero, internal_server_error) when the storage read or unmarshalling fails.
	ReadValue(ctx context.Context, key string) (T, error)

	// WriteValue writes value in cache with the given TTL.
	// Returns:
	// 1) nil on success;
	// 2) internal_server_error when marshalling fails or when the storage write fails.
	WriteValue(ctx context.Context, key string, item T, ttl time.Duration) error

	// DeleteValue deletes the value for the given key from the cache.
	// Returns:
	// 1) nil on success, also when the key is absent;
	// 2) internal_server_error when the storage delete fails.
	DeleteValue(ctx context.Context, key string) error
}
