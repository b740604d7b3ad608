// Package query implements the polling data-fetching layer. Each remote
// resource is one Query: a stable key, a fetch function, and a poll interval.
// A background loop re-fetches while running; Refetch serves manual refresh.
//
// Responses are sequence-numbered and stale responses are discarded, so a
// slow scheduled poll can never overwrite the result of a newer manual
// refresh.
package query

import (
	"context"
	"sync"
	"time"

	"github.com/rferrari/mycommunity-app-sub000/internal/logging"
)

// Fetcher loads the current value of a remote resource.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Snapshot is the point-in-time state a view renders from.
//
// Loading and Refetching are deliberately distinct: Loading means no data
// has ever arrived (spinner), Refetching means a background refresh is in
// flight behind existing data.
type Snapshot[T any] struct {
	Data       T
	HasData    bool
	Loading    bool
	Refetching bool
	Err        error
	UpdatedAt  time.Time
}

// Query polls one remote resource.
type Query[T any] struct {
	key      string
	interval time.Duration
	fetch    Fetcher[T]
	log      logging.Logger

	mu       sync.Mutex
	nextSeq  uint64
	applied  uint64
	inflight int
	data     T
	hasData  bool
	err      error
	updated  time.Time
}

func New[T any](key string, interval time.Duration, fetch Fetcher[T], log logging.Logger) *Query[T] {
	return &Query[T]{
		key:      key,
		interval: interval,
		fetch:    fetch,
		log:      log.With("query", key),
	}
}

// Key returns the stable cache key of this query.
func (q *Query[T]) Key() string { return q.key }

// Run polls until ctx is cancelled: one immediate fetch, then one per
// interval tick. Blocking; callers run it in a goroutine. No state is
// written after Run returns.
func (q *Query[T]) Run(ctx context.Context) {
	q.runFetch(ctx)

	ticker := time.NewTicker(q.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			q.runFetch(ctx)
		case <-ctx.Done():
			q.log.Debug(ctx, "poll loop stopped")
			return
		}
	}
}

// Refetch performs one manual fetch (pull-to-refresh). It returns the fetch
// error even when the result was discarded as stale, so callers can surface
// it.
func (q *Query[T]) Refetch(ctx context.Context) error {
	return q.runFetch(ctx)
}

// Snapshot returns the current state for rendering.
func (q *Query[T]) Snapshot() Snapshot[T] {
	q.mu.Lock()
	defer q.mu.Unlock()

	return Snapshot[T]{
		Data:       q.data,
		HasData:    q.hasData,
		Loading:    !q.hasData && q.inflight > 0,
		Refetching: q.hasData && q.inflight > 0,
		Err:        q.err,
		UpdatedAt:  q.updated,
	}
}

func (q *Query[T]) runFetch(ctx context.Context) error {
	q.mu.Lock()
	q.nextSeq++
	seq := q.nextSeq
	q.inflight++
	q.mu.Unlock()

	data, err := q.fetch(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.inflight--

	// a response with a newer sequence number already landed
	if seq <= q.applied {
		q.log.Debug(ctx, "discarding stale response", "seq", seq, "applied", q.applied)
		return err
	}
	q.applied = seq

	if err != nil {
		q.err = err
		q.log.Warn(ctx, "fetch failed", "err", err)
		return err
	}

	q.data = data
	q.hasData = true
	q.err = nil
	q.updated = time.Now()
	return nil
}
