package strava

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Config configures a Client.
type Config struct {
	ClientID        string
	ClientSecret    string
	CallbackBaseURL string
	APIURL          string // defaults to DefaultAPIURL
	OAuthURL        string // defaults to DefaultOAuthURL
}

// Client talks to Strava on behalf of users whose tokens live in a TokenStore.
type Client struct {
	cfg    Config
	http   *http.Client
	tokens TokenStore
	now    func() time.Time
	sleep  func(context.Context, time.Duration) error
}

// NewClient creates a Strava client.
func NewClient(cfg Config, tokens TokenStore) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.OAuthURL == "" {
		cfg.OAuthURL = DefaultOAuthURL
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: 30 * time.Second},
		tokens: tokens,
		now:    time.Now,
		sleep:  sleepContext,
	}
}

// Configured reports whether client credentials are set.
func (c *Client) Configured() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientSecret != ""
}

// AuthorizeURL returns the Strava consent page URL. state is echoed back to
// the callback and carries the user id.
func (c *Client) AuthorizeURL(state string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	redirect, err := url.JoinPath(c.cfg.CallbackBaseURL, CallbackPath)
	if err != nil {
		return "", fmt.Errorf("building redirect url: %w", err)
	}
	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("response_type", "code")
	q.Set("redirect_uri", redirect)
	q.Set("approval_prompt", "auto")
	q.Set("scope", scopes)
	q.Set("state", state)
	return c.cfg.OAuthURL + "/authorize?" + q.Encode(), nil
}

// Exchange trades an authorisation code for a token and stores it.
func (c *Client) Exchange(ctx context.Context, userID, code string) (*Token, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrMissingCode
	}
	return c.requestToken(ctx, userID, 0, map[string]string{
		"code":       code,
		"grant_type": "authorization_code",
	})
}

// Refresh renews the user's access token and stores the new pair.
func (c *Client) Refresh(ctx context.Context, userID string) (*Token, error) {
	current, err := c.tokens.GetToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reading token: %w", err)
	}
	if current == nil {
		return nil, ErrNotConnected
	}
	// Refresh responses carry no athlete, so the stored id is kept.
	return c.requestToken(ctx, userID, current.AthleteID, map[string]string{
		"refresh_token": current.RefreshToken,
		"grant_type":    "refresh_token",
	})
}

// requestToken posts fields to the token endpoint and stores the result.
// athleteID is used when the response names no athlete.
func (c *Client) requestToken(ctx context.Context, userID string, athleteID int64, fields map[string]string) (*Token, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	var err error
	write := func(field, value string) {
		if err != nil {
			return
		}
		err = writer.WriteField(field, value)
	}
	write("client_id", c.cfg.ClientID)
	write("client_secret", c.cfg.ClientSecret)
	for _, k := range []string{"code", "refresh_token", "grant_type"} {
		if v, ok := fields[k]; ok {
			write(k, v)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("building token request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing form writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.OAuthURL+"/token", &buf)
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending token request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("strava: unexpected token status code %d", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrTokenExchange, resp.StatusCode)
	}

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding token response: %w", err)
	}

	t := &Token{
		AccessToken:  body.AccessToken,
		RefreshToken: body.RefreshToken,
		AthleteID:    cmp.Or(body.Athlete.ID, athleteID),
	}
	if body.ExpiresAt > 0 {
		t.ExpiresAt = time.Unix(body.ExpiresAt, 0).UTC()
	}
	if err := c.tokens.SaveToken(ctx, userID, t); err != nil {
		return nil, fmt.Errorf("saving token: %w", err)
	}
	return t, nil
}

// ListActivities returns one page of the athlete's activities started after
// the given time. Pages start at 1.
func (c *Client) ListActivities(ctx context.Context, userID string, after time.Time, page, perPage int) ([]Activity, error) {
	tok, err := c.tokens.GetToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reading token: %w", err)
	}
	if tok == nil {
		return nil, ErrNotConnected
	}
	if tok.Expired(c.now()) {
		if tok, err = c.Refresh(ctx, userID); err != nil {
			return nil, fmt.Errorf("refreshing token: %w", err)
		}
	}

	q := url.Values{}
	if !after.IsZero() {
		q.Set("after", strconv.FormatInt(after.Unix(), 10))
	}
	q.Set("page", strconv.Itoa(max(page, 1)))
	q.Set("per_page", strconv.Itoa(max(perPage, 1)))
	endpoint := c.cfg.APIURL + "/athlete/activities?" + q.Encode()

	access := tok.AccessToken
	send := func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+access)
		return c.http.Do(req)
	}
	beforeRetry := func(*http.Response, error) error {
		fresh, err := c.Refresh(ctx, userID)
		if err != nil {
			return err
		}
		access = fresh.AccessToken
		return nil
	}

	resp, err := sendWithRetry(ctx, send, unauthorized, beforeRetry, 1, c.sleep)
	if err != nil {
		log.Println("strava: failed to list activities:", err)
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("listing activities: unexpected status %d", resp.StatusCode)
	}

	var activities []Activity
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		return nil, fmt.Errorf("decoding activities: %w", err)
	}
	return activities, nil
}

// maxPages bounds ListAllActivities.
const maxPages = 10

// ListAllActivities pages through activities started after the given time.
func (c *Client) ListAllActivities(ctx context.Context, userID string, after time.Time) ([]Activity, error) {
	const perPage = 100
	var all []Activity
	for page := 1; page <= maxPages; page++ {
		batch, err := c.ListActivities(ctx, userID, after, page, perPage)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < perPage {
			break
		}
	}
	return all, nil
}
