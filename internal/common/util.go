package common

import (
	"crypto/rand"
	"strings"
)

// GenerateRandByteArray returns size cryptographically random bytes.
// It panics only if the platform CSPRNG is unavailable, which is fatal anyway.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Used to remove posting keys and passwords from memory after use.
// A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// NormalizeUsername lowercases and trims an account name. Account names are
// case-insensitive on chain; the lowercase form is the canonical one used for
// storage keys and registry entries.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
