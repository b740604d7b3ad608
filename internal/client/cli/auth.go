package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/rferrari/mycommunity-app-sub000/internal/client/api"
	"github.com/rferrari/mycommunity-app-sub000/internal/common"
	"github.com/rferrari/mycommunity-app-sub000/internal/hive"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for a username and password (or a WIF posting key) and tries
// to sign in. The password byte slice is securely wiped before returning.
//
// Validation failures are reported to the user in plain language; the session
// is only updated on success, after which background pollers are re-aligned
// with the new user.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, username, string(password)); err != nil {
		switch {
		case errors.Is(err, hive.ErrMissingCredentials):
			fmt.Fprintln(a.out, "Username and password are required")
		case errors.Is(err, hive.ErrInvalidKeyFormat), errors.Is(err, hive.ErrInvalidKey):
			fmt.Fprintln(a.out, "That posting key is not valid")
		case errors.Is(err, hive.ErrAccountNotFound):
			fmt.Fprintln(a.out, "Account not found")
		case errors.Is(err, api.ErrUnavailable):
			fmt.Fprintln(a.out, "Backend unavailable, try again later")
		default:
			fmt.Fprintln(a.out, "Login failed:", err)
		}
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", a.auth.Session().Username)
	a.syncPollers()
	return nil
}

// LoginStored performs quick login for a user whose credentials are already
// in the keystore. No re-validation happens; a missing secret means local
// state was wiped and the user must log in again.
func (a *App) LoginStored(ctx context.Context, username string) error {
	if err := a.auth.LoginStoredUser(ctx, username); err != nil {
		if errors.Is(err, common.ErrNoStoredCredentials) {
			fmt.Fprintf(a.out, "No stored credentials for %s, use 'login'\n", username)
		} else {
			fmt.Fprintln(a.out, "Quick login failed:", err)
		}
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", a.auth.Session().Username)
	a.syncPollers()
	return nil
}

// ListUsers prints the stored users, most recently used first. The active
// user is marked with an asterisk.
func (a *App) ListUsers(ctx context.Context) error {
	users, err := a.auth.StoredUsers(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Cannot list stored users:", err)
		return err
	}
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No stored users")
		return nil
	}

	current := a.auth.Session().Username
	for _, u := range users {
		marker := " "
		if u == current {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %s\n", marker, u)
	}
	return nil
}

// Spectator switches to the read-only browsing mode.
func (a *App) Spectator(ctx context.Context) error {
	if err := a.auth.EnterSpectatorMode(ctx); err != nil {
		fmt.Fprintln(a.out, "Cannot enter spectator mode:", err)
		return err
	}
	fmt.Fprintln(a.out, "Browsing as spectator")
	a.syncPollers()
	return nil
}

// Logout signs the current user out and removes their stored credentials.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "Logout failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	a.syncPollers()
	return nil
}

// ForgetAll wipes every stored credential after an explicit confirmation.
func (a *App) ForgetAll(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "This removes every stored account. Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.auth.DeleteAllStoredUsers(ctx); err != nil {
		fmt.Fprintln(a.out, "Cleanup failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "All stored accounts removed")
	return nil
}

// MarkQuit records an intentional quit so the next launch starts signed out.
func (a *App) MarkQuit(ctx context.Context) error {
	if err := a.auth.MarkManualQuit(ctx); err != nil {
		a.log.Warn(ctx, "failed to record manual quit", "err", err)
		return err
	}
	return nil
}
