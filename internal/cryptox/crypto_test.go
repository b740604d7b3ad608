package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rferrari/mycommunity-app-sub000/internal/common"
)

func TestDeriveSealKey_DeterministicAndSaltSensitive(t *testing.T) {
	deviceKey := []byte("device-key-material")
	salt := common.GenerateRandByteArray(SaltSize)

	k1 := DeriveSealKey(deviceKey, salt)
	k2 := DeriveSealKey(deviceKey, salt)
	require.Len(t, k1, 32)
	require.Equal(t, k1, k2)

	other := DeriveSealKey(deviceKey, common.GenerateRandByteArray(SaltSize))
	require.NotEqual(t, k1, other)
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := common.GenerateRandByteArray(32)
	secret := []byte("5JRaVmYzFXLjPnFqewVoUvDKEK1BAvv6jUNAn6mEBTBCJtPmM8z")

	ciphertext, nonce, err := Seal(secret, key)
	require.NoError(t, err)
	require.Len(t, nonce, NonceSize)
	require.NotEqual(t, secret, ciphertext)

	plain, err := Open(ciphertext, nonce, key)
	require.NoError(t, err)
	require.Equal(t, secret, plain)
}

func TestOpen_WrongKeyFails(t *testing.T) {
	key := common.GenerateRandByteArray(32)
	ciphertext, nonce, err := Seal([]byte("secret"), key)
	require.NoError(t, err)

	_, err = Open(ciphertext, nonce, common.GenerateRandByteArray(32))
	require.Error(t, err)
}

func TestOpen_TamperedCiphertextFails(t *testing.T) {
	key := common.GenerateRandByteArray(32)
	ciphertext, nonce, err := Seal([]byte("secret"), key)
	require.NoError(t, err)

	ciphertext[0] ^= 0xFF
	_, err = Open(ciphertext, nonce, key)
	require.Error(t, err)
}

func TestSeal_BadKeyLength(t *testing.T) {
	_, _, err := Seal([]byte("secret"), []byte("short"))
	require.Error(t, err)
}
