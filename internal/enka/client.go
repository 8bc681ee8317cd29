// Package enka fetches public character showcases from enka.network and
// converts them into canonical roster rows.
package enka

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"artimentor/internal/logging"
)

// DefaultBaseURL is the public showcase endpoint; %s receives the UID.
const DefaultBaseURL = "https://enka.network/api/uid/%s"

// uidRe matches valid 9-digit account UIDs.
var uidRe = regexp.MustCompile(`^\d{9}$`)

// ValidUID reports whether s is a well-formed account UID.
func ValidUID(s string) bool {
	return uidRe.MatchString(strings.TrimSpace(s))
}

// Config holds showcase client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns the standard enka client configuration. The
// timeout is generous because the upstream API rate-limits aggressively.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: 90 * time.Second,
	}
}

// Client fetches player showcases.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a showcase client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a showcase client with the given configuration.
func NewClientWithConfig(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 90 * time.Second
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// FetchShowcase retrieves and parses the public showcase for a UID.
func (c *Client) FetchShowcase(ctx context.Context, uid string) (*Showcase, error) {
	uid = strings.TrimSpace(uid)
	if !ValidUID(uid) {
		return nil, fmt.Errorf("invalid UID %q: must be 9 digits", uid)
	}

	timer := logging.StartTimer(logging.CategoryScan, "showcase fetch "+uid)
	defer timer.Stop()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(c.config.BaseURL, uid), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("showcase request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, fmt.Errorf("UID %s rejected by showcase API", uid)
	case http.StatusNotFound:
		return nil, fmt.Errorf("player %s not found", uid)
	case http.StatusFailedDependency:
		return nil, fmt.Errorf("showcase API is under maintenance")
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("showcase API rate limit hit, retry later")
	default:
		return nil, fmt.Errorf("showcase API returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read showcase response: %w", err)
	}

	showcase, err := ParseShowcase(data)
	if err != nil {
		return nil, err
	}
	logging.Scan("UID %s: %d showcased characters", uid, len(showcase.Characters))
	return showcase, nil
}
