package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	LoginStored(ctx context.Context, username string) error
	ListUsers(ctx context.Context) error
	Spectator(ctx context.Context) error
	Logout(ctx context.Context) error
	ForgetAll(ctx context.Context) error
	Feed(ctx context.Context) error
	Trending(ctx context.Context) error
	SkateFeed(ctx context.Context) error
	Magazine(ctx context.Context, page int) error
	Profile(ctx context.Context, username string) error
	Balance(ctx context.Context) error
	Rewards(ctx context.Context) error
	Following(ctx context.Context) error
	Vote(ctx context.Context, author, permlink string) error
	Follow(ctx context.Context, username string) error
	Refresh(ctx context.Context) error
	MarkQuit(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the MyCommunity CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current session (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                     — show available commands
//	  - login                    — sign in with username and password
//	  - user <name>              — quick login for a stored user
//	  - users                    — list stored users
//	  - spectator                — browse without an account
//	  - feed | trending | skatefeed | magazine [page]
//	  - exit | quit              — leave the program
//
//	Logged in:
//	  - all of the above, plus:
//	  - profile [user]           — show a profile
//	  - balance                  — show wallet balance
//	  - rewards                  — show pending rewards
//	  - following                — list followed accounts
//	  - vote <author> <permlink> — toggle a vote on a post
//	  - follow <user>            — follow an account
//	  - refresh                  — force a feed re-fetch
//	  - logout                   — sign out and forget this user
//	  - forget-all               — wipe every stored credential
//
// "exit" keeps the session restorable on next launch; "quit" additionally
// suppresses auto-login. Errors returned by command handlers are ignored
// here; handlers report their own errors. This keeps the REPL loop resilient
// and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("mc> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: feed, trending, skatefeed, magazine [page], profile [user], balance, rewards, following, vote <author> <permlink>, follow <user>, refresh, users, logout, forget-all, exit, quit")
			} else {
				printlnFn("Available commands: login, user <name>, users, spectator, feed, trending, skatefeed, magazine [page], exit, quit")
			}

		case "login":
			_ = a.Login(ctx)

		case "user":
			if len(args) == 0 {
				printlnFn("Usage: user <name>")
				continue
			}
			_ = a.LoginStored(ctx, args[0])

		case "users":
			_ = a.ListUsers(ctx)

		case "spectator":
			_ = a.Spectator(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "forget-all":
			_ = a.ForgetAll(ctx)

		case "feed":
			_ = a.Feed(ctx)

		case "trending":
			_ = a.Trending(ctx)

		case "skatefeed":
			_ = a.SkateFeed(ctx)

		case "magazine":
			page := 1
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					printlnFn("Usage: magazine [page]")
					continue
				}
				page = n
			}
			_ = a.Magazine(ctx, page)

		case "profile":
			username := ""
			if len(args) > 0 {
				username = args[0]
			}
			_ = a.Profile(ctx, username)

		case "balance":
			_ = a.Balance(ctx)

		case "rewards":
			_ = a.Rewards(ctx)

		case "following":
			_ = a.Following(ctx)

		case "vote":
			if len(args) < 2 {
				printlnFn("Usage: vote <author> <permlink>")
				continue
			}
			_ = a.Vote(ctx, args[0], args[1])

		case "follow":
			if len(args) == 0 {
				printlnFn("Usage: follow <user>")
				continue
			}
			_ = a.Follow(ctx, args[0])

		case "refresh":
			_ = a.Refresh(ctx)

		case "exit":
			printlnFn("Bye!")
			return

		case "quit":
			_ = a.MarkQuit(ctx)
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
