package cli

import (
	"context"
	"fmt"

	"github.com/rferrari/mycommunity-app-sub000/internal/common"
)

// Profile shows an account profile. With an empty username the signed-in
// user's own profile is shown; spectators must name an account explicitly.
func (a *App) Profile(ctx context.Context, username string) error {
	if username == "" {
		u, err := a.currentUsername()
		if err != nil {
			fmt.Fprintln(a.out, "Usage: profile <user> (or sign in first)")
			return err
		}
		username = u
	}

	p, err := a.api.Profile(ctx, username)
	if err != nil {
		fmt.Fprintln(a.out, "Cannot load profile:", err)
		return err
	}

	fmt.Fprintf(a.out, "%s (%s)\n", p.DisplayName, p.Username)
	if p.About != "" {
		fmt.Fprintln(a.out, p.About)
	}
	if p.Location != "" {
		fmt.Fprintln(a.out, "Location:", p.Location)
	}
	fmt.Fprintf(a.out, "Followers: %d  Following: %d  Posts: %d\n",
		p.Followers, p.Following, p.PostCount)
	return nil
}

// Balance shows the signed-in user's wallet from the background poller. If
// no data has arrived yet, one synchronous fetch is attempted first.
func (a *App) Balance(ctx context.Context) error {
	if _, err := a.currentUsername(); err != nil {
		fmt.Fprintln(a.out, "Balance requires a signed-in account")
		return err
	}
	if a.balanceQuery == nil {
		fmt.Fprintln(a.out, "Balance poller is not running")
		return common.ErrorInternal
	}

	snap := a.balanceQuery.Snapshot()
	if !snap.HasData {
		if err := a.balanceQuery.Refetch(ctx); err != nil {
			fmt.Fprintln(a.out, "Cannot load balance:", err)
			return err
		}
		snap = a.balanceQuery.Snapshot()
	}

	b := snap.Data
	if b == nil {
		fmt.Fprintln(a.out, "No balance data")
		return nil
	}

	fmt.Fprintf(a.out, "Wallet of %s\n", b.Username)
	fmt.Fprintln(a.out, "  HIVE:       ", b.Hive)
	fmt.Fprintln(a.out, "  Hive Power: ", b.HivePower)
	fmt.Fprintln(a.out, "  HBD:        ", b.Hbd)
	fmt.Fprintln(a.out, "  HBD savings:", b.HbdSavings)
	fmt.Fprintln(a.out, "  Community:  ", b.CommunityToken)
	return nil
}

// Rewards shows the signed-in user's pending payouts.
func (a *App) Rewards(ctx context.Context) error {
	username, err := a.currentUsername()
	if err != nil {
		fmt.Fprintln(a.out, "Rewards require a signed-in account")
		return err
	}

	r, err := a.api.Rewards(ctx, username)
	if err != nil {
		fmt.Fprintln(a.out, "Cannot load rewards:", err)
		return err
	}

	fmt.Fprintf(a.out, "Pending rewards for %s\n", r.Username)
	fmt.Fprintln(a.out, "  HBD:  ", r.PendingHbd)
	fmt.Fprintln(a.out, "  HIVE: ", r.PendingHive)
	fmt.Fprintln(a.out, "  VESTS:", r.PendingVests)
	if r.LastClaim != "" {
		fmt.Fprintln(a.out, "  Last claim:", r.LastClaim)
	}
	return nil
}

// Following lists the accounts the signed-in user follows.
func (a *App) Following(ctx context.Context) error {
	username, err := a.currentUsername()
	if err != nil {
		fmt.Fprintln(a.out, "Following requires a signed-in account")
		return err
	}

	entries, err := a.api.Following(ctx, username)
	if err != nil {
		fmt.Fprintln(a.out, "Cannot load follow list:", err)
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "Not following anyone yet")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintln(a.out, " ", e.Following)
	}
	return nil
}

// Follow makes the signed-in user follow another account.
func (a *App) Follow(ctx context.Context, username string) error {
	follower, err := a.currentUsername()
	if err != nil {
		fmt.Fprintln(a.out, "Following requires a signed-in account")
		return err
	}

	postingKey, err := a.auth.PostingKey(ctx, follower)
	if err != nil {
		fmt.Fprintln(a.out, "No posting key available:", err)
		return err
	}
	defer common.WipeByteArray(postingKey)

	if err := a.api.Follow(ctx, follower, username, string(postingKey)); err != nil {
		fmt.Fprintln(a.out, "Follow failed:", err)
		return err
	}
	fmt.Fprintf(a.out, "Now following %s\n", username)
	return nil
}
