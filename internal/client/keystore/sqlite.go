package keystore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rferrari/mycommunity-app-sub000/internal/cryptox"
	"github.com/rferrari/mycommunity-app-sub000/internal/dbx"
)

// SQLiteStore keeps sealed secrets in the keystore table. Every value is
// encrypted with AES-GCM under sealKey before it touches disk.
type SQLiteStore struct {
	db      dbx.DBTX
	sealKey []byte
}

func NewSQLiteStore(db dbx.DBTX, sealKey []byte) *SQLiteStore {
	return &SQLiteStore{db: db, sealKey: sealKey}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var ciphertext, nonce []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT ciphertext, nonce FROM keystore WHERE key = ?`, key).Scan(&ciphertext, &nonce)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get keystore[%s]: %w", key, err)
	}

	secret, err := cryptox.Open(ciphertext, nonce, s.sealKey)
	if err != nil {
		return nil, fmt.Errorf("failed to unseal keystore[%s]: %w", key, err)
	}
	return secret, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, secret []byte) error {
	ciphertext, nonce, err := cryptox.Seal(secret, s.sealKey)
	if err != nil {
		return fmt.Errorf("failed to seal keystore[%s]: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO keystore (key, ciphertext, nonce) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET ciphertext = excluded.ciphertext, nonce = excluded.nonce
	`, key, ciphertext, nonce)
	if err != nil {
		return fmt.Errorf("failed to set keystore[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM keystore WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete keystore[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM keystore`)
	if err != nil {
		return fmt.Errorf("failed to clear keystore: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM keystore ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list keystore: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan keystore row: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate keystore rows: %w", err)
	}
	return keys, nil
}
