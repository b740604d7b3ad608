package models

// Profile is the account metadata shown on the profile screen.
type Profile struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	About       string `json:"about"`
	Location    string `json:"location"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PostCount   int    `json:"post_count"`
}

// Balance holds the token balances for one account. Amounts are returned by
// the backend as formatted strings ("12.345 HIVE") and displayed verbatim;
// the client never does arithmetic on them.
type Balance struct {
	Username       string `json:"username"`
	Hive           string `json:"hive"`
	HivePower      string `json:"hive_power"`
	Hbd            string `json:"hbd"`
	HbdSavings     string `json:"hbd_savings"`
	CommunityToken string `json:"community_token"`
}

// RewardSummary is the pending payout summary for one account.
type RewardSummary struct {
	Username       string `json:"username"`
	PendingHbd     string `json:"pending_hbd"`
	PendingHive    string `json:"pending_hive"`
	PendingVests   string `json:"pending_vests"`
	LastClaim      string `json:"last_claim"`
	PendingPostHbd string `json:"pending_post_hbd"`
}

// FollowEntry is one row of an account's follow list.
type FollowEntry struct {
	Follower  string `json:"follower"`
	Following string `json:"following"`
}
