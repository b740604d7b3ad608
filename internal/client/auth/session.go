// Package auth owns the client-side authentication lifecycle: the session
// state machine, the stored-user registry, and the login/logout/spectator
// operations the UI calls.
package auth

import "github.com/rferrari/mycommunity-app-sub000/internal/common"

// State is the coarse session state.
type State int

const (
	// StateUninitialized means Bootstrap has not run yet.
	StateUninitialized State = iota

	// StateUnauthenticated means no user is signed in.
	StateUnauthenticated

	// StateAuthenticated means a user (possibly the spectator) is signed in.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is the process-wide authentication snapshot. Username is empty
// unless State is StateAuthenticated. It is derived from storage at boot
// and never persisted directly.
type Session struct {
	State    State
	Username string
}

// IsAuthenticated reports whether any session (spectator included) is active.
func (s Session) IsAuthenticated() bool {
	return s.State == StateAuthenticated
}

// IsSpectator reports whether the session is the read-only spectator
// pseudo-account.
func (s Session) IsSpectator() bool {
	return s.State == StateAuthenticated && s.Username == common.SpectatorUsername
}
