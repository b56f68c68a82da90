package domain

import (
	"context"
	"time"
)

// CacheEntry is a serialized result set and the time it was stored.
type CacheEntry struct {
	Value    []byte
	StoredAt time.Time
}

// ResultStore persists serialized result sets keyed by event code. Writes
// replace the whole entry, so concurrent writers for the same key leave one of
// their values in place and never a mix of both.
type ResultStore interface {
	// Get returns the entry for key; ok is false when there is none.
	Get(ctx context.Context, key string) (entry CacheEntry, ok bool, err error)
	// Put stores value under key, replacing any previous entry.
	Put(ctx context.Context, key string, value []byte, storedAt time.Time) error
}
