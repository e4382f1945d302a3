package service

import (
	"container/list"
	"context"
	"sync"
	"time"

	"deliverygateway/domain"
	"deliverygateway/helpers"
	"deliverygateway/interfaces"
	"deliverygateway/metrics"

	"github.com/cespare/xxhash/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/singleflight"
)

const DefaultCacheShards = 16

// CacheAsideSettings sizes the store. MaxEntries bounds the whole store, 0 means unbounded; Shards only
// spreads entry maps and in-flight loads.
type CacheAsideSettings struct {
	MaxEntries int
	Shards     int
}

// Loader fetches the value of a key from the backing store.
type Loader[V any] func(ctx context.Context) (V, error)

// CacheAside is an in-process read-through cache with single-flight de-duplication. Keys are spread over
// shards by xxhash; each shard owns its entries and its singleflight.Group, so unrelated keys on different
// shards never share a shard lock. Recency is kept in one store-wide list under its own lock, and the least
// recently used entry of the whole store is evicted once it holds more than MaxEntries.
//
// Lock order: a shard lock and lruMu are never held together.
type CacheAside[V any] struct {
	name       string
	shards     []*cacheShard[V]
	maxEntries int
	clock      interfaces.TimeProvider
	logger     log.Logger
	metrics    *metrics.Metrics

	lruMu sync.Mutex
	lru   *list.List // of *cacheEntry[V], front is most recently used
}

type cacheShard[V any] struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry[V]
	version uint64 // bumped by Invalidate; a load started under an older version is not stored
	group   singleflight.Group
}

type cacheEntry[V any] struct {
	key        string
	value      V
	insertedAt time.Time
	ttl        time.Duration

	// guarded by CacheAside.lruMu
	elem     *list.Element
	unlinked bool
}

func (e *cacheEntry[V]) live(now time.Time) bool {
	return now.Before(e.insertedAt.Add(e.ttl))
}

// loaded boxes a value so that a nil interface V survives the trip through singleflight.
type loaded[V any] struct {
	value V
}

// NewCacheAside creates an empty store. Panics on empty name, nil clock or nil logger; m may be nil.
//
// Parameters: name — label of the cache in logs and metrics; settings — capacity and shard count; clock —
// insertion times and expiry checks; logger — loader failures; m — optional metrics.
//
// Returns: *CacheAside[V].
//
// Called from service.NewCatalogService.
func NewCacheAside[V any](name string, settings CacheAsideSettings, clock interfaces.TimeProvider, logger log.Logger, m *metrics.Metrics) *CacheAside[V] {
	helpers.StrPanic(name, "service.cacheaside.go: name is required")
	shards := settings.Shards
	if shards <= 0 {
		shards = DefaultCacheShards
	}
	maxEntries := settings.MaxEntries
	if maxEntries < 0 {
		maxEntries = 0
	}
	c := &CacheAside[V]{
		name:       name,
		shards:     make([]*cacheShard[V], shards),
		maxEntries: maxEntries,
		clock:      helpers.NilPanic(clock, "service.cacheaside.go: clock is required"),
		logger:     log.With(helpers.NilPanic(logger, "service.cacheaside.go: logger is required"), "component", "cache", "cache", name),
		metrics:    m,
		lru:        list.New(),
	}
	for i := range c.shards {
		c.shards[i] = &cacheShard[V]{entries: make(map[string]*cacheEntry[V])}
	}
	return c
}

// GetOrLoad returns the live value of key, loading it at most once across concurrent callers on a miss.
//
// Parameters: ctx — caller context; cancelling it detaches this caller only, the shared load keeps running
// under context.WithoutCancel(ctx); key — cache key; loader — fetches the value on a miss; ttl — lifetime of
// the stored value, ttl <= 0 serves the loaded value to the current waiters without storing it.
//
// Returns: (value, nil) on hit or successful load; (zero, loader_failure) when the loader fails, every
// waiter of that load receives the same error and nothing is stored; (zero, ctx.Err()) when ctx ends first.
//
// Called from service.CatalogService reads.
func (c *CacheAside[V]) GetOrLoad(ctx context.Context, key string, loader Loader[V], ttl time.Duration) (V, error) {
	var zero V
	s := c.shard(key)
	if v, ok := c.lookup(s, key); ok {
		c.metrics.CacheLookup(c.name, true)
		return v, nil
	}
	c.metrics.CacheLookup(c.name, false)

	ch := s.group.DoChan(key, func() (any, error) {
		if v, ok := c.lookup(s, key); ok {
			return loaded[V]{value: v}, nil
		}
		version := s.currentVersion()
		v, err := loader(context.WithoutCancel(ctx))
		c.metrics.CacheLoad(c.name, err)
		if err != nil {
			level.Warn(c.logger).Log("msg", "loader failed", "key", key, "err", err)
			return nil, domain.NewLoaderFailureError(key, err)
		}
		if ttl > 0 {
			evicted := c.store(s, key, v, ttl, version)
			for i := 0; i < evicted; i++ {
				c.metrics.CacheEviction(c.name)
			}
		}
		return loaded[V]{value: v}, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(loaded[V]).value, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Invalidate drops key. A load of key already in flight still answers its waiters but is not stored;
// the next GetOrLoad starts a fresh load.
func (c *CacheAside[V]) Invalidate(key string) {
	s := c.shard(key)
	s.mu.Lock()
	s.version++
	e := s.entries[key]
	delete(s.entries, key)
	s.mu.Unlock()
	c.unlink(e)
	s.group.Forget(key)
}

// Len returns the number of stored entries, including expired ones not yet read.
func (c *CacheAside[V]) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

func (c *CacheAside[V]) shard(key string) *cacheShard[V] {
	return c.shards[xxhash.Sum64String(key)%uint64(len(c.shards))]
}

// lookup returns the live value of key and marks it most recently used. An expired entry is dropped.
func (c *CacheAside[V]) lookup(s *cacheShard[V], key string) (V, bool) {
	var zero V
	e, expired := s.get(key, c.clock.Now())
	if expired != nil {
		c.unlink(expired)
	}
	if e == nil {
		return zero, false
	}
	c.lruMu.Lock()
	if e.elem != nil {
		c.lru.MoveToFront(e.elem)
	}
	c.lruMu.Unlock()
	return e.value, true
}

// store puts value into s unless the shard was invalidated since version was read, links it as most
// recently used and evicts the least recently used entries of the store beyond maxEntries. Returns the
// number of evicted entries.
func (c *CacheAside[V]) store(s *cacheShard[V], key string, value V, ttl time.Duration, version uint64) int {
	e := &cacheEntry[V]{key: key, value: value, insertedAt: c.clock.Now(), ttl: ttl}
	replaced, ok := s.put(e, version)
	if !ok {
		return 0
	}
	c.unlink(replaced)

	var victims []*cacheEntry[V]
	c.lruMu.Lock()
	if !e.unlinked {
		e.elem = c.lru.PushFront(e)
	}
	for c.maxEntries > 0 && c.lru.Len() > c.maxEntries {
		oldest := c.lru.Remove(c.lru.Back()).(*cacheEntry[V])
		oldest.elem = nil
		oldest.unlinked = true
		victims = append(victims, oldest)
	}
	c.lruMu.Unlock()

	for _, v := range victims {
		c.shard(v.key).remove(v)
	}
	return len(victims)
}

// unlink takes e out of the recency list; an entry unlinked before it was linked is never linked.
func (c *CacheAside[V]) unlink(e *cacheEntry[V]) {
	if e == nil {
		return
	}
	c.lruMu.Lock()
	e.unlinked = true
	if e.elem != nil {
		c.lru.Remove(e.elem)
		e.elem = nil
	}
	c.lruMu.Unlock()
}

// get returns the live entry of key. An expired entry is removed from the shard and returned as expired.
func (s *cacheShard[V]) get(key string, now time.Time) (e, expired *cacheEntry[V]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if !e.live(now) {
		delete(s.entries, key)
		return nil, e
	}
	return e, nil
}

func (s *cacheShard[V]) currentVersion() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// put stores e unless the shard was invalidated since version was read. Returns the entry it replaced.
func (s *cacheShard[V]) put(e *cacheEntry[V], version uint64) (replaced *cacheEntry[V], stored bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version != version {
		return nil, false
	}
	replaced = s.entries[e.key]
	s.entries[e.key] = e
	return replaced, true
}

// remove deletes e when it is still the stored entry of its key.
func (s *cacheShard[V]) remove(e *cacheEntry[V]) {
	s.mu.Lock()
	if s.entries[e.key] == e {
		delete(s.entries, e.key)
	}
	s.mu.Unlock()
}
