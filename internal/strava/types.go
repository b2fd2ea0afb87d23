// Package strava is a small client for the Strava API: OAuth, token refresh
// and activity listing.
package strava

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/javiermolinar/trote/internal/plan"
)

// Default endpoints.
const (
	DefaultAPIURL   = "https://www.strava.com/api/v3"
	DefaultOAuthURL = "https://www.strava.com/oauth"

	// CallbackPath is where Strava redirects after authorisation.
	CallbackPath = "/api/strava/callback"

	scopes = "read,activity:read_all"
)

// Client errors.
var (
	ErrNotConnected  = errors.New("strava account not connected")
	ErrMissingCode   = errors.New("authorisation code is missing")
	ErrTokenExchange = errors.New("strava token exchange failed")
	ErrMaxRetries    = errors.New("max retry exceeded")
	ErrNotConfigured = errors.New("strava client id and secret are required")
)

// Token is an OAuth token pair for one athlete.
type Token struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	AthleteID    int64
}

// Expired reports whether the access token is past its expiry, with a
// minute of slack.
func (t *Token) Expired(now time.Time) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return now.Add(time.Minute).After(t.ExpiresAt)
}

// TokenStore persists tokens per user.
type TokenStore interface {
	// GetToken returns the user's token, or nil if none is stored.
	GetToken(ctx context.Context, userID string) (*Token, error)

	// SaveToken inserts or replaces the user's token.
	SaveToken(ctx context.Context, userID string, t *Token) error
}

// Activity is the summary returned by the athlete activities endpoint.
type Activity struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	SportType      string    `json:"sport_type"`
	Distance       float64   `json:"distance"` // metres
	MovingTime     int       `json:"moving_time"`
	ElapsedTime    int       `json:"elapsed_time"`
	StartDate      time.Time `json:"start_date"`
	StartDateLocal time.Time `json:"start_date_local"`
}

// Imported converts the activity for plan matching. The local start date is
// the athlete's wall clock time and is placed in loc.
func (a Activity) Imported(loc *time.Location) plan.ImportedActivity {
	sport := a.SportType
	if strings.TrimSpace(sport) == "" {
		sport = a.Type
	}
	start := a.StartDateLocal
	if start.IsZero() {
		start = a.StartDate.In(loc)
	}
	secs := a.MovingTime
	if secs == 0 {
		secs = a.ElapsedTime
	}
	return plan.ImportedActivity{
		ExternalID: strconv.FormatInt(a.ID, 10),
		Date:       time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc),
		Type:       sport,
		DistanceKm: a.Distance / 1000,
		Seconds:    secs,
	}
}

type tokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    int64        `json:"expires_at"`
	Athlete      tokenAthlete `json:"athlete"`
}

type tokenAthlete struct {
	ID int64 `json:"id"`
}
