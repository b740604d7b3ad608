package hive

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/rferrari/mycommunity-app-sub000/internal/common"
)

// Roles a derived key can serve. Only the posting key is ever used by this
// client; active and memo are derived for completeness and discarded.
const (
	RolePosting = "posting"
	RoleActive  = "active"
	RoleMemo    = "memo"
)

// wifVersion is the version byte prefixed to a raw private key before
// base58check encoding. Same value as Bitcoin mainnet WIF.
const wifVersion = 0x80

// KeySet holds the three private keys derived from a username/password
// pair, each in WIF form.
type KeySet struct {
	Posting string
	Active  string
	Memo    string
}

// DeriveKeys validates a credential pair and produces its key set.
//
// Two inputs are accepted as "password":
//   - a WIF private key (the usual case: users log in with their posting
//     key directly). The key is checked for well-formedness and becomes the
//     posting key of the returned set.
//   - a master password, from which posting/active/memo keys are derived
//     deterministically: priv = sha256(username + role + password).
//
// Returned errors are the package sentinels; anything else is wrapped.
func DeriveKeys(username, password string) (*KeySet, error) {
	username = common.NormalizeUsername(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	if looksLikeWIF(password) {
		if err := validateWIF(password); err != nil {
			return nil, err
		}
		return &KeySet{Posting: password}, nil
	}

	ks := &KeySet{}
	for _, role := range []string{RolePosting, RoleActive, RoleMemo} {
		seed := sha256.Sum256([]byte(username + role + password))
		wif, err := encodeWIF(seed[:])
		if err != nil {
			return nil, fmt.Errorf("derive %s key: %w", role, err)
		}
		switch role {
		case RolePosting:
			ks.Posting = wif
		case RoleActive:
			ks.Active = wif
		case RoleMemo:
			ks.Memo = wif
		}
	}
	return ks, nil
}

// looksLikeWIF reports whether s is shaped like a WIF private key:
// 51 base58 characters starting with '5'. Shape only; checksum is
// verified separately.
func looksLikeWIF(s string) bool {
	if len(s) != 51 || !strings.HasPrefix(s, "5") {
		return false
	}
	for i := 0; i < len(s); i++ {
		if b58Index[s[i]] < 0 {
			return false
		}
	}
	return true
}

// encodeWIF wraps a 32-byte private key in base58check with the WIF
// version byte.
func encodeWIF(priv []byte) (string, error) {
	if len(priv) != 32 {
		return "", ErrInvalidKey
	}
	payload := append([]byte{wifVersion}, priv...)
	check := checksum(payload)
	return base58Encode(append(payload, check...)), nil
}

// validateWIF decodes a WIF string and verifies length, checksum and
// version byte. Distinguishes malformed encodings (ErrInvalidKeyFormat)
// from structurally valid but unusable keys (ErrInvalidKey).
func validateWIF(wif string) error {
	raw, err := base58Decode(wif)
	if err != nil {
		return ErrInvalidKeyFormat
	}
	// version byte + 32-byte key + 4-byte checksum
	if len(raw) != 37 {
		return ErrInvalidKeyFormat
	}

	payload, check := raw[:33], raw[33:]
	expected := checksum(payload)
	for i := range check {
		if check[i] != expected[i] {
			return ErrInvalidKeyFormat
		}
	}

	if payload[0] != wifVersion {
		return ErrInvalidKey
	}
	return nil
}

// checksum is the first four bytes of double sha256.
func checksum(payload []byte) []byte {
	h1 := sha256.Sum256(payload)
	h2 := sha256.Sum256(h1[:])
	return h2[:4]
}
