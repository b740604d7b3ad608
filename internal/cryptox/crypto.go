// Package cryptox implements the at-rest sealing used by the credential
// keystore: secrets are encrypted with AES-256-GCM under a key derived from
// the local device key with argon2id.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"

	"golang.org/x/crypto/argon2"

	"github.com/rferrari/mycommunity-app-sub000/internal/common"
)

const (
	// NonceSize is the AES-GCM nonce length in bytes.
	NonceSize = 12

	// SaltSize is the argon2 salt length in bytes.
	SaltSize = 16
)

// DeriveSealKey stretches the raw device key into a 32-byte AES key.
// The same (deviceKey, salt) pair always yields the same key.
func DeriveSealKey(deviceKey []byte, salt []byte) []byte {
	return argon2.IDKey(deviceKey, salt, 1, 64*1024, 4, 32)
}

// Seal encrypts plaintext with AES-GCM under key. A fresh random nonce is
// generated per call and returned alongside the ciphertext.
func Seal(plaintext []byte, key []byte) (ciphertext, nonce []byte, err error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}

	nonce = common.GenerateRandByteArray(NonceSize)
	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)
	return ciphertext, nonce, nil
}

// Open decrypts a ciphertext produced by Seal. It fails if the key or nonce
// differ from the ones used to seal, or if the ciphertext was tampered with.
func Open(ciphertext, nonce, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return aesgcm.Open(nil, nonce, ciphertext, nil)
}
