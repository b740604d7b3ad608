// Package models defines the remote entities the client renders: posts,
// votes, profiles and wallet balances. Posts are fetched, not owned; the
// client treats them as read-mostly and only patches vote state optimistically.
package models

import "time"

// MaxVoteWeight is the fixed weight for a full upvote. A weight of zero
// removes the vote. Partial weights are not modeled in this client.
const MaxVoteWeight = 10000

// Vote is a single voter's weight on a post.
type Vote struct {
	Voter     string    `json:"voter"`
	Weight    int       `json:"weight"`
	Timestamp time.Time `json:"timestamp"`
}

// Post is one feed item. Permlink is unique within the author's namespace,
// so (Author, Permlink) identifies a post globally.
type Post struct {
	Author        string    `json:"author"`
	Permlink      string    `json:"permlink"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	Created       time.Time `json:"created"`
	Votes         []Vote    `json:"votes"`
	PendingPayout string    `json:"pending_payout_value"`
	TotalPayout   string    `json:"total_payout_value"`
}

// ID returns the author/permlink pair as a single key.
func (p *Post) ID() string {
	return p.Author + "/" + p.Permlink
}

// CollapseVotes reduces the vote list to at most one vote per voter,
// keeping the vote with the latest timestamp (last-writer-wins). The
// backend occasionally returns the full vote history including re-votes,
// which would otherwise double-count voters in the UI.
//
// Relative order of the surviving votes is preserved.
func (p *Post) CollapseVotes() {
	if len(p.Votes) < 2 {
		return
	}

	latest := make(map[string]int, len(p.Votes)) // voter -> index in collapsed
	collapsed := make([]Vote, 0, len(p.Votes))

	for _, v := range p.Votes {
		if i, seen := latest[v.Voter]; seen {
			if !v.Timestamp.Before(collapsed[i].Timestamp) {
				collapsed[i] = v
			}
			continue
		}
		latest[v.Voter] = len(collapsed)
		collapsed = append(collapsed, v)
	}

	p.Votes = collapsed
}

// LikedBy reports whether username currently has a positive-weight vote on
// the post. Callers should collapse votes first so re-votes do not shadow
// a later unvote.
func (p *Post) LikedBy(username string) bool {
	for _, v := range p.Votes {
		if v.Voter == username && v.Weight > 0 {
			return true
		}
	}
	return false
}

// VoteCount is the number of positive-weight votes on the post.
func (p *Post) VoteCount() int {
	n := 0
	for _, v := range p.Votes {
		if v.Weight > 0 {
			n++
		}
	}
	return n
}
