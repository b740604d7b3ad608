// Package cli provides the interactive MyCommunity command-line client.
//
// It wires configuration, the sealed local keystore, the backend API client,
// and an interactive REPL with background polling for feeds and balances.
// Typical flow: restore the previous session from storage, start the feed
// poller, and execute user commands.
//
// Key features:
//   - Login with Hive-style credentials, quick login for stored users
//   - Spectator mode for browsing without an account
//   - Feed, trending, skatefeed and magazine views with offline cache
//   - Wallet views: balance, rewards, following
//   - Optimistic vote toggling and follow
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// "exit" leaves the session restorable; "quit" suppresses auto-login on the
// next launch. See App and runREPL for details.
package cli
