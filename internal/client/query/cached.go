package query

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rferrari/mycommunity-app-sub000/internal/client/cache"
	"github.com/rferrari/mycommunity-app-sub000/internal/logging"
)

// WithCache wraps a fetcher with write-through persistence: successful
// results are stored under key, and when the backend is unreachable the
// last stored result is served instead of an error. Cache writes are
// best-effort; a failed write never fails the fetch.
func WithCache[T any](key string, fetch Fetcher[T], repo cache.Repository, clock func() time.Time, log logging.Logger) Fetcher[T] {
	log = log.With("cache", key)

	return func(ctx context.Context) (T, error) {
		data, err := fetch(ctx)
		if err == nil {
			if payload, merr := json.Marshal(data); merr == nil {
				if werr := repo.Put(ctx, key, payload, clock()); werr != nil {
					log.Warn(ctx, "cache write failed", "err", werr)
				}
			}
			return data, nil
		}

		entry, gerr := repo.Get(ctx, key)
		if gerr != nil || entry == nil {
			return data, err
		}

		var cached T
		if uerr := json.Unmarshal(entry.Payload, &cached); uerr != nil {
			return data, err
		}

		log.Warn(ctx, "serving cached data", "fetched_at", entry.FetchedAt, "err", err)
		return cached, nil
	}
}
