package common

// SpectatorUsername is the sentinel username for spectator mode: a
// pseudo-authenticated session that represents no real on-chain account.
// It is never written to the stored-user registry.
const SpectatorUsername = "SPECTATOR"

// Keystore keys shared between the auth manager and the boot sequence.
const (
	KeyLastLoggedInUser = "lastLoggedInUser"
	KeyManualQuit       = "manualQuit"
	KeyUserRegistry     = "userRegistry"
)
