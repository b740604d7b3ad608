package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/rferrari/mycommunity-app-sub000/internal/client/keystore"
	"github.com/rferrari/mycommunity-app-sub000/internal/common"
	"github.com/rferrari/mycommunity-app-sub000/internal/logging"
)

// Manager implements the authentication state machine:
//
//	Uninitialized -> {Unauthenticated, Authenticated(username)}
//
// Spectator mode is Authenticated with the sentinel username. All
// registry read-modify-write cycles run under one mutex, so concurrent
// operations cannot interleave on the persisted state.
type Manager struct {
	store     keystore.Store
	validator CredentialValidator
	log       logging.Logger

	mu      sync.Mutex
	session Session
}

func NewManager(store keystore.Store, validator CredentialValidator, log logging.Logger) *Manager {
	return &Manager{
		store:     store,
		validator: validator,
		log:       log.With("component", "auth"),
		session:   Session{State: StateUninitialized},
	}
}

// Session returns the current session snapshot.
func (m *Manager) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Bootstrap restores the session from storage. Runs once at process start.
//
// If the manualQuit flag is set, it is cleared and the session stays
// Unauthenticated even when a last-user pointer exists. Otherwise the
// lastLoggedInUser pointer is trusted as-is: the persisted secret is not
// re-validated until it is used (trust-on-read).
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	quit, err := m.store.Get(ctx, common.KeyManualQuit)
	if err != nil {
		return fmt.Errorf("failed to read manual quit flag: %w", err)
	}
	if quit != nil {
		if err := m.store.Delete(ctx, common.KeyManualQuit); err != nil {
			return fmt.Errorf("failed to clear manual quit flag: %w", err)
		}
		m.session = Session{State: StateUnauthenticated}
		m.log.Info(ctx, "manual quit flag set, skipping auto-login")
		return nil
	}

	last, err := m.store.Get(ctx, common.KeyLastLoggedInUser)
	if err != nil {
		return fmt.Errorf("failed to read last user pointer: %w", err)
	}
	if last == nil {
		m.session = Session{State: StateUnauthenticated}
		return nil
	}

	m.session = Session{State: StateAuthenticated, Username: string(last)}
	m.log.Info(ctx, "session restored", "username", m.session.Username)
	return nil
}

// Login validates a credential pair and signs the user in. The username is
// normalized (trimmed, lowercased) first. On any validation failure the
// session and storage are left untouched. On success the validated posting
// key is persisted, the registry is updated with move-to-front semantics,
// and the session transitions to Authenticated.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	username = common.NormalizeUsername(username)

	postingKey, err := m.validator.Validate(ctx, username, password)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(ctx, username, []byte(postingKey)); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}
	if err := m.activateLocked(ctx, username); err != nil {
		return err
	}

	m.log.Info(ctx, "user logged in", "username", username)
	return nil
}

// LoginStoredUser signs in a previously stored user without re-validating
// the credential (it was validated when first stored). A missing secret is
// a local-state integrity failure, reported as
// common.ErrNoStoredCredentials.
func (m *Manager) LoginStoredUser(ctx context.Context, username string) error {
	username = common.NormalizeUsername(username)

	m.mu.Lock()
	defer m.mu.Unlock()

	secret, err := m.store.Get(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to read stored credentials: %w", err)
	}
	if secret == nil {
		return common.ErrNoStoredCredentials
	}
	common.WipeByteArray(secret)

	if err := m.activateLocked(ctx, username); err != nil {
		return err
	}

	m.log.Info(ctx, "stored user logged in", "username", username)
	return nil
}

// EnterSpectatorMode activates the read-only pseudo-session. The spectator
// is never added to the registry and stores no secret; only the last-user
// pointer is written so the mode survives a restart.
func (m *Manager) EnterSpectatorMode(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(ctx, common.KeyLastLoggedInUser, []byte(common.SpectatorUsername)); err != nil {
		return fmt.Errorf("failed to set last user pointer: %w", err)
	}

	m.session = Session{State: StateAuthenticated, Username: common.SpectatorUsername}
	m.log.Info(ctx, "entered spectator mode")
	return nil
}

// Logout removes the current user from the registry, deletes their stored
// secret and the last-user pointer, and transitions to Unauthenticated.
// Calling it without an active session is a no-op.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.State != StateAuthenticated {
		return nil
	}
	username := m.session.Username

	if username != common.SpectatorUsername {
		users, err := loadRegistry(ctx, m.store)
		if err != nil {
			return err
		}
		if err := saveRegistry(ctx, m.store, removeUser(users, username)); err != nil {
			return err
		}
		if err := m.store.Delete(ctx, username); err != nil {
			return err
		}
	}

	if err := m.store.Delete(ctx, common.KeyLastLoggedInUser); err != nil {
		return err
	}

	m.session = Session{State: StateUnauthenticated}
	m.log.Info(ctx, "logged out", "username", username)
	return nil
}

// DeleteAllStoredUsers wipes the registry, every per-username secret, and
// the last-user pointer. The active session is not changed; a signed-in
// user keeps their session until logout, but quick login will no longer
// find any stored account.
func (m *Manager) DeleteAllStoredUsers(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	users, err := loadRegistry(ctx, m.store)
	if err != nil {
		return err
	}
	for _, u := range users {
		if err := m.store.Delete(ctx, u); err != nil {
			return err
		}
	}

	if err := m.store.Delete(ctx, common.KeyUserRegistry); err != nil {
		return err
	}
	if err := m.store.Delete(ctx, common.KeyLastLoggedInUser); err != nil {
		return err
	}

	m.log.Info(ctx, "deleted all stored users", "count", len(users))
	return nil
}

// StoredUsers returns the registry, most recently used first.
func (m *Manager) StoredUsers(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return loadRegistry(ctx, m.store)
}

// PostingKey returns the stored posting key for username. Spectators and
// unknown users get common.ErrNoStoredCredentials; the caller owns wiping
// the returned slice.
func (m *Manager) PostingKey(ctx context.Context, username string) ([]byte, error) {
	if username == common.SpectatorUsername {
		return nil, common.ErrNoStoredCredentials
	}
	username = common.NormalizeUsername(username)
	if username == "" {
		return nil, common.ErrNoStoredCredentials
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	secret, err := m.store.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	if secret == nil {
		return nil, common.ErrNoStoredCredentials
	}
	return secret, nil
}

// MarkManualQuit records that the user quit on purpose, suppressing
// auto-login on the next launch.
func (m *Manager) MarkManualQuit(ctx context.Context) error {
	return m.store.Set(ctx, common.KeyManualQuit, []byte("true"))
}

// activateLocked runs the shared tail of both login paths: registry
// move-to-front, last-user pointer, session transition. Caller holds m.mu.
func (m *Manager) activateLocked(ctx context.Context, username string) error {
	users, err := loadRegistry(ctx, m.store)
	if err != nil {
		return err
	}
	if err := saveRegistry(ctx, m.store, moveToFront(users, username)); err != nil {
		return err
	}
	if err := m.store.Set(ctx, common.KeyLastLoggedInUser, []byte(username)); err != nil {
		return fmt.Errorf("failed to set last user pointer: %w", err)
	}

	m.session = Session{State: StateAuthenticated, Username: username}
	return nil
}
