package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/couchcryptid/athletics-rankings-etl/internal/domain"
	"github.com/jonboulle/clockwork"
)

// Lookup is the outcome of a result cache read.
type Lookup int

const (
	LookupMiss Lookup = iota
	LookupHit
	LookupStale
)

func (l Lookup) String() string {
	switch l {
	case LookupHit:
		return "hit"
	case LookupStale:
		return "stale"
	default:
		return "miss"
	}
}

// ResultCache stores result sets as JSON in a ResultStore and treats entries
// older than the TTL as stale. There is no eviction; stale entries are simply
// overwritten by the next fetch.
type ResultCache struct {
	store domain.ResultStore
	ttl   time.Duration
	clock clockwork.Clock
}

// NewResultCache wraps store with a fixed freshness window.
func NewResultCache(store domain.ResultStore, ttl time.Duration, clock clockwork.Clock) *ResultCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ResultCache{store: store, ttl: ttl, clock: clock}
}

// Get returns the cached result set for code. A stale entry is still decoded
// and returned alongside LookupStale.
func (c *ResultCache) Get(ctx context.Context, code string) (domain.ResultSet, Lookup, error) {
	entry, ok, err := c.store.Get(ctx, code)
	if err != nil {
		return domain.ResultSet{}, LookupMiss, fmt.Errorf("read cache entry %s: %w", code, err)
	}
	if !ok {
		return domain.ResultSet{}, LookupMiss, nil
	}

	var rs domain.ResultSet
	if err := json.Unmarshal(entry.Value, &rs); err != nil {
		return domain.ResultSet{}, LookupMiss, fmt.Errorf("decode cache entry %s: %w", code, err)
	}

	if c.clock.Since(entry.StoredAt) >= c.ttl {
		return rs, LookupStale, nil
	}
	return rs, LookupHit, nil
}

// Put replaces the cached result set for rs.Event.
func (c *ResultCache) Put(ctx context.Context, rs domain.ResultSet) error {
	data, err := json.Marshal(rs)
	if err != nil {
		return fmt.Errorf("encode result set %s: %w", rs.Event, err)
	}
	if err := c.store.Put(ctx, rs.Event, data, c.clock.Now()); err != nil {
		return fmt.Errorf("write cache entry %s: %w", rs.Event, err)
	}
	return nil
}

// Pinger is implemented by stores that can report their own health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks the underlying store when it supports health checks.
func (c *ResultCache) Ping(ctx context.Context) error {
	if p, ok := c.store.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
