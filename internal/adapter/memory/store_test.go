package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/couchcryptid/athletics-rankings-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storedAt = time.Date(2024, time.October, 1, 6, 0, 0, 0, time.UTC)

// --- mock for decorator tests ---

type countingStore struct {
	entries map[string]domain.CacheEntry
	gets    int
	puts    int
	putErr  error
	pingErr error
}

func newCountingStore() *countingStore {
	return &countingStore{entries: map[string]domain.CacheEntry{}}
}

func (s *countingStore) Get(_ context.Context, key string) (domain.CacheEntry, bool, error) {
	s.gets++
	e, ok := s.entries[key]
	return e, ok, nil
}

func (s *countingStore) Put(_ context.Context, key string, value []byte, at time.Time) error {
	s.puts++
	if s.putErr != nil {
		return s.putErr
	}
	s.entries[key] = domain.CacheEntry{Value: value, StoredAt: at}
	return nil
}

func (s *countingStore) Ping(context.Context) error { return s.pingErr }

// --- Store tests ---

func TestStore_GetPut(t *testing.T) {
	ctx := context.Background()
	s := NewStore(4)

	_, ok, err := s.Get(ctx, "m_100")
	require.NoError(t, err)
	assert.False(t, ok)

	value := []byte(`{"event":"m_100"}`)
	require.NoError(t, s.Put(ctx, "m_100", value, storedAt))
	value[2] = 'X'

	e, ok, err := s.Get(ctx, "m_100")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"event":"m_100"}`, string(e.Value), "stored value must not alias the caller's slice")
	assert.True(t, storedAt.Equal(e.StoredAt))
	assert.Equal(t, 1, s.Len())
}

func TestStore_Bounded(t *testing.T) {
	ctx := context.Background()
	s := NewStore(2)

	for _, key := range []string{"m_100", "m_200", "m_400"} {
		require.NoError(t, s.Put(ctx, key, []byte("{}"), storedAt))
	}

	assert.Equal(t, 2, s.Len())
	_, ok, _ := s.Get(ctx, "m_100")
	assert.False(t, ok, "oldest entry should have been evicted")
}

// --- CachedStore tests ---

func TestCachedStore_ReadThrough(t *testing.T) {
	ctx := context.Background()
	inner := newCountingStore()
	inner.entries["mhigh"] = domain.CacheEntry{Value: []byte("{}"), StoredAt: storedAt}
	cached := NewCachedStore(inner, 10)

	_, ok, err := cached.Get(ctx, "mhigh")
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = cached.Get(ctx, "mhigh")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, 1, inner.gets, "should only call inner once")
}

func TestCachedStore_MissIsNotCached(t *testing.T) {
	ctx := context.Background()
	inner := newCountingStore()
	cached := NewCachedStore(inner, 10)

	_, ok, _ := cached.Get(ctx, "mhigh")
	assert.False(t, ok)
	_, ok, _ = cached.Get(ctx, "mhigh")
	assert.False(t, ok)

	assert.Equal(t, 2, inner.gets)
}

func TestCachedStore_WriteThrough(t *testing.T) {
	ctx := context.Background()
	inner := newCountingStore()
	cached := NewCachedStore(inner, 10)

	require.NoError(t, cached.Put(ctx, "mpole", []byte("{}"), storedAt))
	assert.Equal(t, 1, inner.puts)

	_, ok, err := cached.Get(ctx, "mpole")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, inner.gets, "fresh write should be served from memory")
}

func TestCachedStore_FailedWriteNotCached(t *testing.T) {
	ctx := context.Background()
	inner := newCountingStore()
	inner.putErr = errors.New("disk full")
	cached := NewCachedStore(inner, 10)

	err := cached.Put(ctx, "mpole", []byte("{}"), storedAt)
	require.Error(t, err)

	_, ok, _ := cached.Get(ctx, "mpole")
	assert.False(t, ok)
}

func TestCachedStore_Ping(t *testing.T) {
	inner := newCountingStore()
	cached := NewCachedStore(inner, 10)
	require.NoError(t, cached.Ping(context.Background()))

	inner.pingErr = errors.New("closed")
	require.Error(t, cached.Ping(context.Background()))

	require.NoError(t, NewCachedStore(NewStore(1), 1).Ping(context.Background()))
}

// --- LRU cache unit tests ---

func entry(v string) domain.CacheEntry {
	return domain.CacheEntry{Value: []byte(v), StoredAt: storedAt}
}

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", entry("A"))
	c.put("b", entry("B"))

	e, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A", string(e.Value))

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", entry("A"))
	c.put("b", entry("B"))
	c.put("c", entry("C")) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	e, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, "B", string(e.Value))

	e, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, "C", string(e.Value))
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", entry("A"))
	c.put("b", entry("B"))

	c.get("a")

	// "b" is now least recently used.
	c.put("c", entry("C"))

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", entry("A1"))
	c.put("a", entry("A2"))

	e, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A2", string(e.Value))
	assert.Equal(t, 1, c.len())
}

func TestLRUCache_ZeroSizeHoldsOne(t *testing.T) {
	for _, size := range []int{0, -5} {
		c := newLRUCache(size)

		c.put("a", entry("A"))
		_, ok := c.get("a")
		assert.True(t, ok, "size %d", size)

		c.put("b", entry("B"))
		_, ok = c.get("a")
		assert.False(t, ok, "size %d keeps only the latest entry", size)
		_, ok = c.get("b")
		assert.True(t, ok, "size %d", size)
	}
}
