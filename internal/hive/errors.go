// Package hive implements client-side key derivation for Hive-style
// accounts. Its only job in this client is credential validation: keys
// derived here are discarded, and the raw posting key is what gets stored.
package hive

import "errors"

// Credential validation errors form a closed set; the UI matches them
// exhaustively with errors.Is and renders a distinct message for each.
var (
	// ErrMissingCredentials means username or password was empty.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrInvalidKeyFormat means the supplied key is not well-formed WIF
	// (bad base58 payload or checksum mismatch).
	ErrInvalidKeyFormat = errors.New("invalid key format")

	// ErrInvalidKey means the key decoded but is not usable as a private
	// key (wrong version byte or wrong length).
	ErrInvalidKey = errors.New("invalid key")

	// ErrAccountNotFound means the account does not exist on the backend.
	ErrAccountNotFound = errors.New("account not found")
)
