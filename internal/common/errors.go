// Package common defines shared constants and sentinel errors used across
// the MyCommunity client layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Keystore-level errors.
	ErrorNotFound = errors.New("not found")

	// Session/service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Local-state integrity errors (stored credentials missing or damaged).
	ErrNoStoredCredentials = errors.New("no stored credentials")
	ErrCorruptRegistry     = errors.New("corrupt user registry")
)
