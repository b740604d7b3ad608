package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rferrari/mycommunity-app-sub000/internal/client/api"
	"github.com/rferrari/mycommunity-app-sub000/internal/hive"
)

// CredentialValidator checks a credential pair before it is persisted and
// returns the posting key to store. Implementations return the hive sentinel
// errors for credential problems; anything else is treated as an
// infrastructure failure.
type CredentialValidator interface {
	Validate(ctx context.Context, username, password string) (postingKey string, err error)
}

// hiveValidator is the production validator: it derives the account keys
// from the credential pair and confirms the account exists on the backend.
// The returned posting key is the password itself when it already is a WIF
// key, a derived key otherwise.
type hiveValidator struct {
	client api.Client
}

func NewHiveValidator(client api.Client) CredentialValidator {
	return &hiveValidator{client: client}
}

func (v *hiveValidator) Validate(ctx context.Context, username, password string) (string, error) {
	keys, err := hive.DeriveKeys(username, password)
	if err != nil {
		return "", err
	}

	if _, err := v.client.Profile(ctx, username); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return "", hive.ErrAccountNotFound
		}
		return "", fmt.Errorf("account lookup failed: %w", err)
	}
	return keys.Posting, nil
}
