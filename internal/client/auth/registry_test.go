package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rferrari/mycommunity-app-sub000/internal/common"
)

func TestMoveToFront(t *testing.T) {
	tests := []struct {
		name     string
		users    []string
		username string
		want     []string
	}{
		{"empty registry", nil, "alice", []string{"alice"}},
		{"new user prepended", []string{"bob"}, "alice", []string{"alice", "bob"}},
		{"existing user moved", []string{"bob", "alice", "carol"}, "alice", []string{"alice", "bob", "carol"}},
		{"already first", []string{"alice", "bob"}, "alice", []string{"alice", "bob"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, moveToFront(tc.users, tc.username))
		})
	}
}

func TestRemoveUser(t *testing.T) {
	tests := []struct {
		name     string
		users    []string
		username string
		want     []string
	}{
		{"present", []string{"alice", "bob"}, "alice", []string{"bob"}},
		{"absent", []string{"alice"}, "bob", []string{"alice"}},
		{"empty", nil, "alice", []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, removeUser(tc.users, tc.username))
		})
	}
}

func TestRegistryPersistence_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	users, err := loadRegistry(ctx, store)
	require.NoError(t, err)
	assert.Nil(t, users)

	require.NoError(t, saveRegistry(ctx, store, []string{"alice", "bob"}))

	users, err = loadRegistry(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, users)
}

func TestLoadRegistry_CorruptPayload(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, common.KeyUserRegistry, []byte("{broken")))

	_, err := loadRegistry(ctx, store)
	require.ErrorIs(t, err, common.ErrCorruptRegistry)
}

func TestSessionPredicates(t *testing.T) {
	assert.False(t, Session{State: StateUninitialized}.IsAuthenticated())
	assert.False(t, Session{State: StateUnauthenticated}.IsAuthenticated())

	real := Session{State: StateAuthenticated, Username: "alice"}
	assert.True(t, real.IsAuthenticated())
	assert.False(t, real.IsSpectator())

	spect := Session{State: StateAuthenticated, Username: common.SpectatorUsername}
	assert.True(t, spect.IsAuthenticated())
	assert.True(t, spect.IsSpectator())
}
