package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"artimentor/internal/logging"
)

const (
	// DefaultBaseURL is the public akasha.cv leaderboard endpoint.
	DefaultBaseURL = "https://akasha.cv/api/leaderboards"

	// DefaultLimit is the number of entries fetched when the caller does
	// not specify one.
	DefaultLimit = 20

	// MinLimit and MaxLimit bound the fetch size.
	MinLimit = 5
	MaxLimit = 100
)

// Config holds leaderboard client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns the standard akasha client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: 15 * time.Second,
	}
}

// Client fetches ranked builds from the akasha leaderboard API.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a leaderboard client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a leaderboard client with the given configuration.
func NewClientWithConfig(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// ClampLimit normalizes a requested entry count to the supported range.
// Zero or negative requests fall back to the default.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Fetch retrieves the top entries for a calculation ID. akasha exposes
// two historical parameter shapes; the newer one is tried first and the
// older one used as fallback when the first returns nothing.
func (c *Client) Fetch(ctx context.Context, calculationID string, limit int) ([]Entry, error) {
	if !ValidCalculationID(calculationID) {
		return nil, fmt.Errorf("invalid calculation ID %q", calculationID)
	}
	limit = ClampLimit(limit)

	timer := logging.StartTimer(logging.CategoryLeaderboard, "akasha fetch")
	defer timer.Stop()

	paramSets := []url.Values{
		{
			"sort":          {"Leaderboard.result"},
			"order":         {"-1"},
			"size":          {strconv.Itoa(limit)},
			"LeaderboardId": {calculationID},
		},
		{
			"sort":          {"calculation.result"},
			"order":         {"-1"},
			"size":          {strconv.Itoa(limit)},
			"calculationId": {calculationID},
		},
	}

	var lastErr error
	for _, params := range paramSets {
		entries, err := c.fetchOnce(ctx, params)
		if err != nil {
			lastErr = err
			logging.Get(logging.CategoryLeaderboard).Warn("fetch attempt failed: %v", err)
			continue
		}
		if len(entries) > 0 {
			return entries, nil
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("leaderboard fetch failed: %w", lastErr)
	}
	return nil, fmt.Errorf("no leaderboard data for calculation %s", calculationID)
}

func (c *Client) fetchOnce(ctx context.Context, params url.Values) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if resp.StatusCode == http.StatusForbidden {
			return nil, fmt.Errorf("akasha returned 403 (likely Cloudflare block): %s", string(body))
		}
		return nil, fmt.Errorf("akasha returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Data []rawEntry `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard response: %w", err)
	}

	entries := make([]Entry, 0, len(payload.Data))
	for i := range payload.Data {
		entries = append(entries, payload.Data[i].toEntry())
	}
	return entries, nil
}
