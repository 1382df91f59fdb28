package status

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/streakbadge-io/streakbadge/internal/buildinfo"
	"github.com/streakbadge-io/streakbadge/internal/models"
)

const (
	defaultTokenURL = "https://osu.ppy.sh/oauth/token"
	defaultUsersURL = "https://osu.ppy.sh/api/v2/users"

	requestTimeout = 10 * time.Second

	// tokenSlack is subtracted from the token lifetime so a token is never
	// used right at its expiry.
	tokenSlack = 60 * time.Second
)

// Client queries the osu! v2 API for daily-challenge statistics using the
// client-credentials grant.
type Client struct {
	httpClient *http.Client
	tokenURL   string
	usersURL   string

	mu          sync.Mutex
	token       string
	tokenCreds  models.Credentials
	tokenExpiry time.Time
}

// NewClient creates a client against the public osu! API.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		tokenURL:   defaultTokenURL,
		usersURL:   defaultUsersURL,
	}
}

// NewClientForURLs creates a client against alternate endpoints. Used by tests.
func NewClientForURLs(tokenURL, usersURL string) *Client {
	c := NewClient()
	c.tokenURL = tokenURL
	c.usersURL = usersURL
	return c
}

// FetchStreak returns the subject's current daily-challenge streak.
func (c *Client) FetchStreak(ctx context.Context, creds models.Credentials) (int, error) {
	if !creds.Complete() {
		return 0, ErrNotConfigured
	}

	token, err := c.accessToken(ctx, creds)
	if err != nil {
		return 0, err
	}

	url := fmt.Sprintf("%s/%s?key=username", c.usersURL, creds.Username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", "streakbadge/"+buildinfo.Version)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Token may have been revoked server-side; drop the cache so the
		// next poll re-authenticates.
		c.mu.Lock()
		c.token = ""
		c.mu.Unlock()
		return 0, fmt.Errorf("osu! API returned %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("osu! API returned %d", resp.StatusCode)
	}

	var user struct {
		DailyChallenge struct {
			DailyStreakCurrent int `json:"daily_streak_current"`
		} `json:"daily_challenge_user_stats"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return 0, fmt.Errorf("decode user: %w", err)
	}

	return user.DailyChallenge.DailyStreakCurrent, nil
}

// accessToken returns a cached token or requests a fresh one via the
// client-credentials grant.
func (c *Client) accessToken(ctx context.Context, creds models.Credentials) (string, error) {
	c.mu.Lock()
	if c.token != "" && c.tokenCreds == creds && time.Now().Before(c.tokenExpiry) {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	body, err := json.Marshal(map[string]string{
		"client_id":     creds.ClientID,
		"client_secret": creds.ClientSecret,
		"grant_type":    "client_credentials",
		"scope":         "public",
	})
	if err != nil {
		return "", fmt.Errorf("marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "streakbadge/"+buildinfo.Version)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned empty token")
	}

	c.mu.Lock()
	c.token = tok.AccessToken
	c.tokenCreds = creds
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenSlack)
	c.mu.Unlock()

	return tok.AccessToken, nil
}
