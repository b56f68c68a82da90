// Package memory provides in-process result stores: a bounded LRU store and a
// read-through LRU front for a durable store.
package memory

import (
	"context"
	"slices"
	"time"

	"github.com/couchcryptid/athletics-rankings-etl/internal/domain"
)

// Store is a bounded in-memory domain.ResultStore. Entries do not survive a
// restart.
type Store struct {
	cache *lruCache
}

// NewStore creates a store holding at most maxEntries result sets.
func NewStore(maxEntries int) *Store {
	return &Store{cache: newLRUCache(maxEntries)}
}

func (s *Store) Get(_ context.Context, key string) (domain.CacheEntry, bool, error) {
	e, ok := s.cache.get(key)
	return e, ok, nil
}

func (s *Store) Put(_ context.Context, key string, value []byte, storedAt time.Time) error {
	s.cache.put(key, domain.CacheEntry{Value: slices.Clone(value), StoredAt: storedAt})
	return nil
}

// Len returns the number of entries held.
func (s *Store) Len() int {
	return s.cache.len()
}

// CachedStore wraps a ResultStore with an in-memory LRU. Reads are served from
// memory when possible; writes go to the inner store first and reach memory
// only once they succeeded.
type CachedStore struct {
	inner domain.ResultStore
	cache *lruCache
}

// NewCachedStore creates a cache decorator around a result store.
func NewCachedStore(inner domain.ResultStore, maxEntries int) *CachedStore {
	return &CachedStore{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

func (c *CachedStore) Get(ctx context.Context, key string) (domain.CacheEntry, bool, error) {
	if e, ok := c.cache.get(key); ok {
		return e, true, nil
	}
	e, ok, err := c.inner.Get(ctx, key)
	if err != nil || !ok {
		return e, ok, err
	}
	c.cache.put(key, e)
	return e, true, nil
}

func (c *CachedStore) Put(ctx context.Context, key string, value []byte, storedAt time.Time) error {
	if err := c.inner.Put(ctx, key, value, storedAt); err != nil {
		return err
	}
	c.cache.put(key, domain.CacheEntry{Value: slices.Clone(value), StoredAt: storedAt})
	return nil
}

// Ping forwards to the inner store when it supports health checks.
func (c *CachedStore) Ping(ctx context.Context) error {
	if p, ok := c.inner.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}
