// Package market fetches mutual-fund and leaderboard data from the optional
// FinLearn data service and falls back to static datasets when it is
// unreachable.
package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Fund is a mutual fund with its trailing returns in percent.
type Fund struct {
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	MinSIP       decimal.Decimal `json:"min_sip"`
	ExpenseRatio decimal.Decimal `json:"expense_ratio"`
	Return1Y     decimal.Decimal `json:"return_1y"`
	Return3Y     decimal.Decimal `json:"return_3y"`
	Return5Y     decimal.Decimal `json:"return_5y"`
	CurrentNAV   decimal.Decimal `json:"current_nav"`
}

// LeaderboardEntry is one ranked player.
type LeaderboardEntry struct {
	Rank              int    `json:"rank"`
	Username          string `json:"username"`
	XP                int    `json:"xp"`
	Level             int    `json:"level"`
	AchievementsCount int    `json:"achievements_count"`
	Avatar            string `json:"avatar,omitempty"`
	IsCurrentUser     bool   `json:"is_current_user,omitempty"`
}

// Source is a remote provider of market data.
type Source interface {
	Funds(ctx context.Context) ([]Fund, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}

// ErrUnsuccessful is returned when the service answers with success=false.
var ErrUnsuccessful = errors.New("market: service reported failure")

// Client talks to the data service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for baseURL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Funds fetches the fund list from /api/funds.
func (c *Client) Funds(ctx context.Context) ([]Fund, error) {
	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Funds   []Fund `json:"funds"`
	}
	if err := c.getJSON(ctx, "/api/funds", nil, &result); err != nil {
		return nil, fmt.Errorf("fetching funds: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("fetching funds: %w: %s", ErrUnsuccessful, result.Error)
	}
	return result.Funds, nil
}

// Leaderboard fetches the top limit players from /api/leaderboard.
func (c *Client) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var result struct {
		Success     bool               `json:"success"`
		Error       string             `json:"error"`
		Leaderboard []LeaderboardEntry `json:"leaderboard"`
	}
	if err := c.getJSON(ctx, "/api/leaderboard", q, &result); err != nil {
		return nil, fmt.Errorf("fetching leaderboard: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("fetching leaderboard: %w: %s", ErrUnsuccessful, result.Error)
	}
	return result.Leaderboard, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Service-level failures that trigger fallbacks.
var (
	ErrNoSource = errors.New("market: no remote source configured")
	ErrEmpty    = errors.New("market: remote returned no data")
)
