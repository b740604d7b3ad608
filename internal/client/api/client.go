// Package api is the stateless HTTP client for the community backend. All
// endpoints return a {success, data} envelope; this package unwraps it and
// maps transport failures onto a small sentinel error set.
package api

import (
	"context"

	"github.com/rferrari/mycommunity-app-sub000/internal/client/models"
)

// VoteRequest is the body of POST /vote. The posting key authorizes the
// vote; Weight is models.MaxVoteWeight for a full vote, 0 for an unvote.
type VoteRequest struct {
	Voter      string `json:"voter"`
	Author     string `json:"author"`
	Permlink   string `json:"permlink"`
	PostingKey string `json:"posting_key"`
	Weight     int    `json:"weight"`
}

// Client is the remote surface of the backend. Implementations must honor
// context cancellation on every call.
type Client interface {
	// Feed returns the latest posts.
	Feed(ctx context.Context) ([]models.Post, error)

	// TrendingFeed returns the trending posts.
	TrendingFeed(ctx context.Context) ([]models.Post, error)

	// SkateFeed returns the community-specific feed.
	SkateFeed(ctx context.Context) ([]models.Post, error)

	// Magazine returns one page of long-form posts. Pages start at 1.
	Magazine(ctx context.Context, page int) ([]models.Post, error)

	// Profile returns account metadata, or ErrNotFound if the account
	// does not exist.
	Profile(ctx context.Context, username string) (*models.Profile, error)

	// Balance returns the account's token balances.
	Balance(ctx context.Context, username string) (*models.Balance, error)

	// Rewards returns the account's pending payout summary.
	Rewards(ctx context.Context, username string) (*models.RewardSummary, error)

	// Following returns the accounts username follows.
	Following(ctx context.Context, username string) ([]models.FollowEntry, error)

	// Vote submits a vote or unvote.
	Vote(ctx context.Context, req VoteRequest) error

	// Follow makes follower follow following, authorized by postingKey.
	Follow(ctx context.Context, follower, following, postingKey string) error

	Close() error
}
