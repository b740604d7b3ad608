package keystore

import (
	"fmt"
	"os"

	"github.com/rferrari/mycommunity-app-sub000/internal/common"
	"github.com/rferrari/mycommunity-app-sub000/internal/cryptox"
)

// deviceKeyFileSize is 32 bytes of key material plus the argon2 salt.
const deviceKeyFileSize = 32 + cryptox.SaltSize

// LoadSealKey returns the AES key protecting the keystore, derived from the
// device key file at path. The file is created with fresh random contents on
// first use (mode 0600). Losing the file makes all sealed secrets
// unrecoverable; users then log in again with their posting keys.
func LoadSealKey(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		raw = common.GenerateRandByteArray(deviceKeyFileSize)
		if err := os.WriteFile(path, raw, 0o600); err != nil {
			return nil, fmt.Errorf("failed to create device key file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to read device key file: %w", err)
	}

	if len(raw) != deviceKeyFileSize {
		return nil, fmt.Errorf("device key file %s is damaged (%d bytes)", path, len(raw))
	}

	deviceKey, salt := raw[:32], raw[32:]
	return cryptox.DeriveSealKey(deviceKey, salt), nil
}
