package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/rferrari/mycommunity-app-sub000/internal/client/models"
)

// envelope is the wire wrapper every backend response uses.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// HTTPClient implements Client over the backend's JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a client for the given base URL. timeout bounds each
// individual request on top of whatever deadline the context carries.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Feed(ctx context.Context) ([]models.Post, error) {
	return c.getFeed(ctx, "/feed")
}

func (c *HTTPClient) TrendingFeed(ctx context.Context) ([]models.Post, error) {
	return c.getFeed(ctx, "/feed/trending")
}

func (c *HTTPClient) SkateFeed(ctx context.Context) ([]models.Post, error) {
	return c.getFeed(ctx, "/skatefeed")
}

func (c *HTTPClient) Magazine(ctx context.Context, page int) ([]models.Post, error) {
	if page < 1 {
		page = 1
	}
	return c.getFeed(ctx, fmt.Sprintf("/magazine?page=%d", page))
}

// getFeed fetches a list of posts and collapses duplicate votes, so every
// consumer sees at most one vote per voter.
func (c *HTTPClient) getFeed(ctx context.Context, path string) ([]models.Post, error) {
	var posts []models.Post
	if err := c.get(ctx, path, &posts); err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].CollapseVotes()
	}
	return posts, nil
}

func (c *HTTPClient) Profile(ctx context.Context, username string) (*models.Profile, error) {
	var p models.Profile
	if err := c.get(ctx, "/profile/"+url.PathEscape(username), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Balance(ctx context.Context, username string) (*models.Balance, error) {
	var b models.Balance
	if err := c.get(ctx, "/balance/"+url.PathEscape(username), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *HTTPClient) Rewards(ctx context.Context, username string) (*models.RewardSummary, error) {
	var r models.RewardSummary
	if err := c.get(ctx, "/balance/"+url.PathEscape(username)+"/rewards", &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) Following(ctx context.Context, username string) ([]models.FollowEntry, error) {
	var entries []models.FollowEntry
	if err := c.get(ctx, "/following/"+url.PathEscape(username), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *HTTPClient) Vote(ctx context.Context, req VoteRequest) error {
	return c.post(ctx, "/vote", req, nil, "")
}

func (c *HTTPClient) Follow(ctx context.Context, follower, following, postingKey string) error {
	body := struct {
		Follower  string `json:"follower"`
		Following string `json:"following"`
	}{Follower: follower, Following: following}

	return c.post(ctx, "/follow", body, nil, postingKey)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *HTTPClient) post(ctx context.Context, path string, body any, out any, bearer string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return c.do(req, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	if err := mapStatus(resp.StatusCode); err != nil {
		return err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return mapTransportError(err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if !env.Success {
		if env.Error != "" {
			return fmt.Errorf("server error: %s", env.Error)
		}
		return fmt.Errorf("%w: success=false without error message", ErrBadResponse)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

func mapStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return ErrUnavailable
	case code >= 400:
		return fmt.Errorf("unexpected status %d", code)
	default:
		return nil
	}
}

func mapTransportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrUnavailable
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrUnavailable
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrUnavailable
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return mapTransportError(urlErr.Err)
	}
	return err
}
