package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rferrari/mycommunity-app-sub000/internal/client/models"
	"github.com/rferrari/mycommunity-app-sub000/internal/client/query"
	"github.com/rferrari/mycommunity-app-sub000/internal/client/vote"
	"github.com/rferrari/mycommunity-app-sub000/internal/common"
)

// Feed renders the main community feed from the background poller. If no
// data has arrived yet, one synchronous fetch is attempted first.
func (a *App) Feed(ctx context.Context) error {
	snap := a.feedQuery.Snapshot()
	if !snap.HasData {
		if err := a.feedQuery.Refetch(ctx); err != nil {
			fmt.Fprintln(a.out, "Cannot load feed:", err)
			return err
		}
		snap = a.feedQuery.Snapshot()
	}
	a.renderPosts(snap.Data, snap.UpdatedAt)
	return nil
}

// Trending renders the trending feed.
func (a *App) Trending(ctx context.Context) error {
	return a.renderCachedFeed(ctx, "feed/trending", a.api.TrendingFeed)
}

// SkateFeed renders the skate-content feed.
func (a *App) SkateFeed(ctx context.Context) error {
	return a.renderCachedFeed(ctx, "feed/skatefeed", a.api.SkateFeed)
}

// Magazine renders one page of the curated magazine.
func (a *App) Magazine(ctx context.Context, page int) error {
	key := fmt.Sprintf("feed/magazine/%d", page)
	fetch := func(ctx context.Context) ([]models.Post, error) {
		return a.api.Magazine(ctx, page)
	}
	return a.renderCachedFeed(ctx, key, fetch)
}

// Refresh forces a re-fetch of the main feed poller.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.feedQuery.Refetch(ctx); err != nil {
		fmt.Fprintln(a.out, "Refresh failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Feed refreshed")
	return nil
}

// Vote toggles the current user's vote on a post. The toggle is optimistic:
// a failure is reported and the previous state restored.
func (a *App) Vote(ctx context.Context, author, permlink string) error {
	username, err := a.currentUsername()
	if err != nil {
		fmt.Fprintln(a.out, "Voting requires a signed-in account")
		return err
	}

	postingKey, err := a.auth.PostingKey(ctx, username)
	if err != nil {
		fmt.Fprintln(a.out, "No posting key available:", err)
		return err
	}
	defer common.WipeByteArray(postingKey)

	ctrl := vote.NewController(a.api, username, string(postingKey),
		author, permlink, a.likeStateFor(username, author, permlink))

	if err := ctrl.Toggle(ctx); err != nil {
		fmt.Fprintln(a.out, "Vote failed, previous state restored:", err)
		return err
	}

	state, _ := ctrl.State()
	if state.Liked {
		fmt.Fprintf(a.out, "Voted on %s/%s (%d votes)\n", author, permlink, state.Count)
	} else {
		fmt.Fprintf(a.out, "Removed vote on %s/%s (%d votes)\n", author, permlink, state.Count)
	}
	return nil
}

// likeStateFor derives the current like state of a post from the latest feed
// snapshot. An unknown post starts from the zero state.
func (a *App) likeStateFor(username, author, permlink string) vote.LikeState {
	snap := a.feedQuery.Snapshot()
	for _, p := range snap.Data {
		if p.Author == author && p.Permlink == permlink {
			return vote.LikeState{Liked: p.LikedBy(username), Count: p.VoteCount()}
		}
	}
	return vote.LikeState{}
}

// renderCachedFeed runs a one-shot fetch through the offline cache and
// renders the result. On a backend failure the cached copy, when present,
// is served instead.
func (a *App) renderCachedFeed(ctx context.Context, key string, fetch query.Fetcher[[]models.Post]) error {
	posts, err := query.WithCache(key, fetch, a.cache, time.Now, a.log)(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		fmt.Fprintln(a.out, "Cannot load feed:", err)
		return err
	}
	a.renderPosts(posts, time.Time{})
	return nil
}

func (a *App) renderPosts(posts []models.Post, updated time.Time) {
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts")
		return
	}

	current := a.auth.Session().Username
	for i, p := range posts {
		liked := " "
		if current != "" && p.LikedBy(current) {
			liked = "+"
		}
		fmt.Fprintf(a.out, "%2d %s [%s] %s (%d votes, %s pending)\n",
			i+1, liked, p.ID(), p.Title, p.VoteCount(), p.PendingPayout)
	}
	if !updated.IsZero() {
		fmt.Fprintf(a.out, "Updated %s\n", updated.Format(time.Kitchen))
	}
}
