// Package vote implements the optimistic vote toggle: the displayed liked
// state and counter flip before the network call resolves, and revert to
// the captured previous state if it fails.
//
// Each toggle is an explicit state machine:
//
//	Idle -> Pending(previous) -> Committed
//	                          -> Reverted(previous)
//
// One Controller guards one post for one user; an in-flight toggle rejects
// further toggles, approximating one-at-a-time semantics per post.
package vote

import (
	"context"
	"errors"
	"sync"

	"github.com/rferrari/mycommunity-app-sub000/internal/client/api"
	"github.com/rferrari/mycommunity-app-sub000/internal/client/models"
)

// ErrVoteInFlight is returned when a toggle is requested while the previous
// one has not settled yet.
var ErrVoteInFlight = errors.New("vote already in flight")

// Status of the last toggle on a controller.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusCommitted
	StatusReverted
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusCommitted:
		return "committed"
	case StatusReverted:
		return "reverted"
	default:
		return "unknown"
	}
}

// LikeState is what the UI renders for one post.
type LikeState struct {
	Liked bool
	Count int
}

// Controller runs optimistic vote toggles for a single (voter, post) pair.
type Controller struct {
	client     api.Client
	voter      string
	postingKey string
	author     string
	permlink   string

	mu     sync.Mutex
	state  LikeState
	status Status
}

// NewController seeds a controller with the server-derived like state.
func NewController(client api.Client, voter, postingKey, author, permlink string, initial LikeState) *Controller {
	return &Controller{
		client:     client,
		voter:      voter,
		postingKey: postingKey,
		author:     author,
		permlink:   permlink,
		state:      initial,
		status:     StatusIdle,
	}
}

// State returns the currently displayed like state and toggle status.
func (c *Controller) State() (LikeState, Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.status
}

// Toggle flips the like state optimistically, then submits the vote. On
// network failure the displayed state reverts to its pre-toggle value and
// the error is returned for the caller to surface.
//
// A full vote submits models.MaxVoteWeight; an unvote submits weight 0.
func (c *Controller) Toggle(ctx context.Context) error {
	c.mu.Lock()
	if c.status == StatusPending {
		c.mu.Unlock()
		return ErrVoteInFlight
	}

	previous := c.state

	// optimistic flip before the request leaves
	next := LikeState{Liked: !previous.Liked}
	if next.Liked {
		next.Count = previous.Count + 1
	} else {
		next.Count = previous.Count - 1
		if next.Count < 0 {
			next.Count = 0
		}
	}
	c.state = next
	c.status = StatusPending
	c.mu.Unlock()

	weight := 0
	if next.Liked {
		weight = models.MaxVoteWeight
	}

	err := c.client.Vote(ctx, api.VoteRequest{
		Voter:      c.voter,
		Author:     c.author,
		Permlink:   c.permlink,
		PostingKey: c.postingKey,
		Weight:     weight,
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = previous
		c.status = StatusReverted
		return err
	}
	c.status = StatusCommitted
	return nil
}
