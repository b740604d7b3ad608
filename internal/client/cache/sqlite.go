package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rferrari/mycommunity-app-sub000/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (*Entry, error) {
	e := &Entry{Key: key}
	err := r.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM feed_cache WHERE key = ?`, key).
		Scan(&e.Payload, &e.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cache[%s]: %w", key, err)
	}
	return e, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, key string, payload []byte, fetchedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO feed_cache (key, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
	`, key, payload, fetchedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to put cache[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM feed_cache`)
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
