package cache

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE feed_cache (
  key        TEXT PRIMARY KEY,
  payload    BLOB NOT NULL,
  fetched_at TIMESTAMP NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestPutAndGet_RoundTrip(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	fetched := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, r.Put(ctx, "feed", []byte(`[{"author":"skater"}]`), fetched))

	e, err := r.Get(ctx, "feed")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "feed", e.Key)
	assert.Equal(t, []byte(`[{"author":"skater"}]`), e.Payload)
	assert.True(t, e.FetchedAt.Equal(fetched))
}

func TestGet_MissReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	e, err := r.Get(context.Background(), "trending")
	require.NoError(t, err)
	require.Nil(t, e)
}

func TestPut_Overwrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "feed", []byte("old"), time.Now()))
	require.NoError(t, r.Put(ctx, "feed", []byte("new"), time.Now()))

	e, err := r.Get(ctx, "feed")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), e.Payload)
}

func TestClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "feed", []byte("x"), time.Now()))
	require.NoError(t, r.Clear(ctx))

	e, err := r.Get(ctx, "feed")
	require.NoError(t, err)
	require.Nil(t, e)
}

func TestDBErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to get cache[k]")

	err = r.Put(ctx, "k", []byte("v"), time.Now())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to put cache[k]")

	require.Error(t, r.Clear(ctx))
}
