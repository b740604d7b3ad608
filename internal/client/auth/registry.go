package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rferrari/mycommunity-app-sub000/internal/client/keystore"
	"github.com/rferrari/mycommunity-app-sub000/internal/common"
)

// The registry is the ordered list of previously logged-in usernames,
// most-recently-used first, persisted as a JSON array under a fixed
// keystore key. Invariants: no duplicates; after any successful login the
// active user is first; the spectator sentinel never appears.

func loadRegistry(ctx context.Context, store keystore.Store) ([]string, error) {
	raw, err := store.Get(ctx, common.KeyUserRegistry)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var users []string
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCorruptRegistry, err)
	}
	return users, nil
}

func saveRegistry(ctx context.Context, store keystore.Store, users []string) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return store.Set(ctx, common.KeyUserRegistry, raw)
}

// moveToFront returns users with username first: removed from its old
// position if present, then prepended.
func moveToFront(users []string, username string) []string {
	out := make([]string, 0, len(users)+1)
	out = append(out, username)
	for _, u := range users {
		if u != username {
			out = append(out, u)
		}
	}
	return out
}

// removeUser returns users without username. Order of the rest is kept.
func removeUser(users []string, username string) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		if u != username {
			out = append(out, u)
		}
	}
	return out
}
