// Package keystore persists credentials and small auth state flags in the
// local client database, sealed at rest with a device-local key.
//
// The store holds: one entry per stored username with its raw posting key,
// the lastLoggedInUser pointer, the manualQuit flag, and the serialized
// user registry.
package keystore

import "context"

// Store is a key/value secret store.
//
// Contract (matches the platform-keystore semantics the UI relies on):
//   - Get returns (nil, nil) when the key is absent; it never errors on
//     "not found".
//   - Set overwrites silently if the key is already present.
//   - Delete of a non-existent key is a no-op.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, secret []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	List(ctx context.Context) ([]string, error)
}
