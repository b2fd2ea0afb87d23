package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/javiermolinar/trote/internal/profile"
)

// GetProfile retrieves a profile. Returns nil if the user has none.
func (s *SQLite) GetProfile(ctx context.Context, userID string) (*profile.Profile, error) {
	query := `
		SELECT user_id, active_plan, saved_plans, custom_paces, completed_workouts, total_distance, streak_days, updated_at
		FROM profiles
		WHERE user_id = ?
	`

	var (
		p           profile.Profile
		savedPlans  string
		customPaces string
		completed   string
		updatedAt   sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&p.ActivePlan,
		&savedPlans,
		&customPaces,
		&completed,
		&p.TotalDistance,
		&p.StreakDays,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}

	if err := json.Unmarshal([]byte(savedPlans), &p.SavedPlans); err != nil {
		return nil, fmt.Errorf("decoding saved plans: %w", err)
	}
	p.CustomPaces = map[string]profile.PaceSettings{}
	if err := json.Unmarshal([]byte(customPaces), &p.CustomPaces); err != nil {
		return nil, fmt.Errorf("decoding custom paces: %w", err)
	}
	if err := json.Unmarshal([]byte(completed), &p.CompletedWorkouts); err != nil {
		return nil, fmt.Errorf("decoding completed workouts: %w", err)
	}
	if updatedAt.Valid {
		if p.UpdatedAt, err = parseTimestamp(updatedAt.String); err != nil {
			return nil, fmt.Errorf("parsing updated at: %w", err)
		}
	}

	return &p, nil
}

// SaveProfile inserts or replaces a profile.
func (s *SQLite) SaveProfile(ctx context.Context, p *profile.Profile) error {
	saved := p.SavedPlans
	if saved == nil {
		saved = []string{}
	}
	savedJSON, err := json.Marshal(saved)
	if err != nil {
		return fmt.Errorf("encoding saved plans: %w", err)
	}
	paces := p.CustomPaces
	if paces == nil {
		paces = map[string]profile.PaceSettings{}
	}
	pacesJSON, err := json.Marshal(paces)
	if err != nil {
		return fmt.Errorf("encoding custom paces: %w", err)
	}

	completed := p.CompletedWorkouts
	if completed == nil {
		completed = []profile.CompletedWorkout{}
	}
	completedJSON, err := json.Marshal(completed)
	if err != nil {
		return fmt.Errorf("encoding completed workouts: %w", err)
	}

	updated := p.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	}

	query := `
		INSERT INTO profiles (user_id, active_plan, saved_plans, custom_paces, completed_workouts, total_distance, streak_days, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			active_plan = excluded.active_plan,
			saved_plans = excluded.saved_plans,
			custom_paces = excluded.custom_paces,
			completed_workouts = excluded.completed_workouts,
			total_distance = excluded.total_distance,
			streak_days = excluded.streak_days,
			updated_at = excluded.updated_at
	`
	_, err = s.db.ExecContext(ctx, query,
		p.UserID,
		p.ActivePlan,
		string(savedJSON),
		string(pacesJSON),
		string(completedJSON),
		p.TotalDistance,
		p.StreakDays,
		updated.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}
