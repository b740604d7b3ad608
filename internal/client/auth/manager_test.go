package auth

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/rferrari/mycommunity-app-sub000/internal/client/keystore"
	"github.com/rferrari/mycommunity-app-sub000/internal/common"
	"github.com/rferrari/mycommunity-app-sub000/internal/hive"
	"github.com/rferrari/mycommunity-app-sub000/internal/logging"
)

// ---- helpers ----

func nopLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestStore(t *testing.T) keystore.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE keystore (
  key        TEXT PRIMARY KEY,
  ciphertext BLOB NOT NULL,
  nonce      BLOB NOT NULL
);`)
	require.NoError(t, err)
	return keystore.NewSQLiteStore(db, common.GenerateRandByteArray(32))
}

// okValidator accepts everything except empty credentials and hands the
// password back as the posting key.
type okValidator struct {
	lastUsername string
	lastPassword string
	err          error
}

func (v *okValidator) Validate(ctx context.Context, username, password string) (string, error) {
	v.lastUsername = username
	v.lastPassword = password
	if v.err != nil {
		return "", v.err
	}
	if username == "" || password == "" {
		return "", hive.ErrMissingCredentials
	}
	return password, nil
}

func newManager(t *testing.T) (*Manager, keystore.Store, *okValidator) {
	t.Helper()
	store := newTestStore(t)
	v := &okValidator{}
	return NewManager(store, v, nopLogger()), store, v
}

func storedRegistry(t *testing.T, m *Manager) []string {
	t.Helper()
	users, err := m.StoredUsers(context.Background())
	require.NoError(t, err)
	return users
}

// ---- login ----

func TestLogin_EmptyCredentialsFail(t *testing.T) {
	m, _, _ := newManager(t)
	ctx := context.Background()

	tests := []struct {
		username string
		password string
	}{
		{"", "secret"},
		{"alice", ""},
		{"", ""},
	}
	for _, tc := range tests {
		err := m.Login(ctx, tc.username, tc.password)
		require.ErrorIs(t, err, hive.ErrMissingCredentials)
		assert.False(t, m.Session().IsAuthenticated())
	}
}

func TestLogin_NormalizesUsernameAndUpdatesState(t *testing.T) {
	m, store, v := newManager(t)
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, "  Alice ", "5JPostingKeyAlice"))

	// validator saw the normalized name
	assert.Equal(t, "alice", v.lastUsername)

	// session
	s := m.Session()
	require.Equal(t, StateAuthenticated, s.State)
	assert.Equal(t, "alice", s.Username)
	assert.False(t, s.IsSpectator())

	// registry has alice first
	assert.Equal(t, []string{"alice"}, storedRegistry(t, m))

	// pointer and secret persisted
	last, err := store.Get(ctx, common.KeyLastLoggedInUser)
	require.NoError(t, err)
	assert.Equal(t, "alice", string(last))

	secret, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "5JPostingKeyAlice", string(secret))
}

func TestLogin_ValidationFailureLeavesStateUntouched(t *testing.T) {
	m, store, v := newManager(t)
	ctx := context.Background()

	v.err = hive.ErrInvalidKeyFormat
	err := m.Login(ctx, "alice", "garbage")
	require.ErrorIs(t, err, hive.ErrInvalidKeyFormat)

	assert.Equal(t, StateUninitialized, m.Session().State)
	assert.Empty(t, storedRegistry(t, m))

	secret, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, secret, "no partial state may be persisted")
}

func TestLogin_TwoUsers_BothSecretsKept_SecondFirst(t *testing.T) {
	m, store, _ := newManager(t)
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, "alice", "keyA"))
	require.NoError(t, m.Login(ctx, "bob", "keyB"))

	assert.Equal(t, []string{"bob", "alice"}, storedRegistry(t, m))

	a, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	b, err := store.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "keyA", string(a))
	assert.Equal(t, "keyB", string(b))
}

func TestLogin_ReloginMovesToFrontWithoutDuplicate(t *testing.T) {
	m, _, _ := newManager(t)
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, "alice", "keyA"))
	require.NoError(t, m.Login(ctx, "bob", "keyB"))
	require.NoError(t, m.Login(ctx, "alice", "keyA2"))

	assert.Equal(t, []string{"alice", "bob"}, storedRegistry(t, m))
}

// ---- stored-user login ----

func TestLoginStoredUser_Succeeds(t *testing.T) {
	m, _, v := newManager(t)
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, "alice", "keyA"))
	require.NoError(t, m.Login(ctx, "bob", "keyB"))

	v.lastUsername = "" // loginStoredUser must not revalidate
	require.NoError(t, m.LoginStoredUser(ctx, "Alice"))

	assert.Empty(t, v.lastUsername, "stored login must trust the prior validation")
	assert.Equal(t, "alice", m.Session().Username)
	assert.Equal(t, []string{"alice", "bob"}, storedRegistry(t, m))
}

func TestLoginStoredUser_MissingSecretIsIntegrityError(t *testing.T) {
	m, _, _ := newManager(t)
	ctx := context.Background()

	err := m.LoginStoredUser(ctx, "ghost")
	require.ErrorIs(t, err, common.ErrNoStoredCredentials)
	assert.False(t, m.Session().IsAuthenticated())
}

// ---- spectator ----

func TestEnterSpectatorMode_DoesNotTouchRegistry(t *testing.T) {
	m, store, _ := newManager(t)
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, "alice", "keyA"))
	before := storedRegistry(t, m)

	require.NoError(t, m.EnterSpectatorMode(ctx))

	s := m.Session()
	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.IsSpectator())
	assert.Equal(t, common.SpectatorUsername, s.Username)

	assert.Equal(t, before, storedRegistry(t, m), "spectator must never appear in the registry")

	last, err := store.Get(ctx, common.KeyLastLoggedInUser)
	require.NoError(t, err)
	assert.Equal(t, common.SpectatorUsername, string(last))
}

func TestSpectatorEntryAndExit_RegistryLengthUnaffected(t *testing.T) {
	m, _, _ := newManager(t)
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, "alice", "keyA"))
	require.Equal(t, 1, len(storedRegistry(t, m)))

	require.NoError(t, m.EnterSpectatorMode(ctx))
	require.NoError(t, m.Logout(ctx))

	assert.Equal(t, 1, len(storedRegistry(t, m)))
	assert.False(t, m.Session().IsAuthenticated())
}

// ---- logout ----

func TestLogout_RemovesUserStateAndPointer(t *testing.T) {
	m, store, _ := newManager(t)
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, "alice", "keyA"))
	require.NoError(t, m.Login(ctx, "bob", "keyB"))
	require.NoError(t, m.Logout(ctx)) // bob is active

	assert.Equal(t, []string{"alice"}, storedRegistry(t, m))
	assert.Equal(t, StateUnauthenticated, m.Session().State)

	secret, err := store.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, secret)

	last, err := store.Get(ctx, common.KeyLastLoggedInUser)
	require.NoError(t, err)
	assert.Nil(t, last)

	// alice's secret survives
	secret, err = store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "keyA", string(secret))
}

func TestLogout_NoOpWhenUnauthenticated(t *testing.T) {
	m, _, _ := newManager(t)
	require.NoError(t, m.Logout(context.Background()))
	require.NoError(t, m.Logout(context.Background()))
}

// ---- delete all ----

func TestDeleteAllStoredUsers_TotalCleanup(t *testing.T) {
	m, store, _ := newManager(t)
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, "alice", "keyA"))
	require.NoError(t, m.Login(ctx, "bob", "keyB"))

	require.NoError(t, m.DeleteAllStoredUsers(ctx))

	assert.Empty(t, storedRegistry(t, m))

	for _, key := range []string{"alice", "bob", common.KeyUserRegistry, common.KeyLastLoggedInUser} {
		v, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, v, "key %s must be gone", key)
	}
}

func TestDeleteAllThenQuickLoginFails(t *testing.T) {
	m, _, _ := newManager(t)
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, "alice", "keyA"))
	require.NoError(t, m.DeleteAllStoredUsers(ctx))

	err := m.LoginStoredUser(ctx, "alice")
	require.ErrorIs(t, err, common.ErrNoStoredCredentials)
}

// ---- bootstrap ----

func TestBootstrap_NoState_Unauthenticated(t *testing.T) {
	m, _, _ := newManager(t)

	require.NoError(t, m.Bootstrap(context.Background()))
	assert.Equal(t, StateUnauthenticated, m.Session().State)
}

func TestBootstrap_RestoresLastUserWithoutRevalidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, common.KeyLastLoggedInUser, []byte("bob")))

	v := &okValidator{}
	m := NewManager(store, v, nopLogger())

	require.NoError(t, m.Bootstrap(ctx))

	s := m.Session()
	assert.Equal(t, StateAuthenticated, s.State)
	assert.Equal(t, "bob", s.Username)
	assert.Empty(t, v.lastUsername, "boot must not revalidate credentials")
}

func TestBootstrap_ManualQuitSuppressesAutoLogin(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, common.KeyManualQuit, []byte("true")))
	require.NoError(t, store.Set(ctx, common.KeyLastLoggedInUser, []byte("bob")))

	m := NewManager(store, &okValidator{}, nopLogger())
	require.NoError(t, m.Bootstrap(ctx))

	assert.Equal(t, StateUnauthenticated, m.Session().State)

	// the flag is consumed
	quit, err := store.Get(ctx, common.KeyManualQuit)
	require.NoError(t, err)
	assert.Nil(t, quit)

	// but the pointer survives for the next regular boot
	last, err := store.Get(ctx, common.KeyLastLoggedInUser)
	require.NoError(t, err)
	assert.Equal(t, "bob", string(last))
}

func TestBootstrap_RestoresSpectator(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, common.KeyLastLoggedInUser, []byte(common.SpectatorUsername)))

	m := NewManager(store, &okValidator{}, nopLogger())
	require.NoError(t, m.Bootstrap(ctx))

	assert.True(t, m.Session().IsSpectator())
}

func TestManualQuitRoundTrip(t *testing.T) {
	m, store, _ := newManager(t)
	ctx := context.Background()

	require.NoError(t, m.MarkManualQuit(ctx))
	quit, err := store.Get(ctx, common.KeyManualQuit)
	require.NoError(t, err)
	assert.Equal(t, "true", string(quit))
}

// ---- posting key ----

func TestPostingKey(t *testing.T) {
	m, _, _ := newManager(t)
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, "alice", "keyA"))

	key, err := m.PostingKey(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "keyA", string(key))

	_, err = m.PostingKey(ctx, "ghost")
	require.ErrorIs(t, err, common.ErrNoStoredCredentials)

	_, err = m.PostingKey(ctx, common.SpectatorUsername)
	require.ErrorIs(t, err, common.ErrNoStoredCredentials)
}
