package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/javiermolinar/trote/internal/strava"
)

// GetToken returns the user's Strava token, or nil if none is stored.
func (s *SQLite) GetToken(ctx context.Context, userID string) (*strava.Token, error) {
	query := `
		SELECT access_token, refresh_token, expires_at, athlete_id
		FROM strava_tokens
		WHERE user_id = ?
	`
	var (
		t         strava.Token
		expiresAt sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&t.AccessToken, &t.RefreshToken, &expiresAt, &t.AthleteID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying token: %w", err)
	}
	if expiresAt.Valid && expiresAt.String != "" {
		if t.ExpiresAt, err = parseTimestamp(expiresAt.String); err != nil {
			return nil, fmt.Errorf("parsing token expiry: %w", err)
		}
	}
	return &t, nil
}

// SaveToken inserts or replaces the user's Strava token.
func (s *SQLite) SaveToken(ctx context.Context, userID string, t *strava.Token) error {
	var expires sql.NullString
	if !t.ExpiresAt.IsZero() {
		expires = sql.NullString{String: t.ExpiresAt.UTC().Format(time.RFC3339), Valid: true}
	}
	query := `
		INSERT INTO strava_tokens (user_id, access_token, refresh_token, expires_at, athlete_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			athlete_id = excluded.athlete_id
	`
	if _, err := s.db.ExecContext(ctx, query, userID, t.AccessToken, t.RefreshToken, expires, t.AthleteID); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}
