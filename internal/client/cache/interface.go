// Package cache persists the last successful response per query key so
// feeds and balances still render when the backend is unreachable.
package cache

import (
	"context"
	"time"
)

// Entry is one cached payload with the time it was fetched.
type Entry struct {
	Key       string
	Payload   []byte
	FetchedAt time.Time
}

// Repository stores JSON payloads keyed by query key.
// Get returns (nil, nil) when nothing is cached under the key.
type Repository interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Put(ctx context.Context, key string, payload []byte, fetchedAt time.Time) error
	Clear(ctx context.Context) error
}
