package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/javiermolinar/trote/internal/profile"
)

// CreateWorkout stores a workout log.
// Returns profile.ErrDuplicateWorkout if the external id was already imported.
func (s *SQLite) CreateWorkout(ctx context.Context, w *profile.WorkoutLog) error {
	query := `
		INSERT INTO workouts (
			id, user_id, date, distance_km, duration_sec, pace, source,
			external_id, external_type, plan_path, plan_day_index, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var externalID sql.NullString
	if w.ExternalID != "" {
		externalID = sql.NullString{String: w.ExternalID, Valid: true}
	}
	var dayIndex sql.NullInt64
	if w.PlanDayIndex != nil {
		dayIndex = sql.NullInt64{Int64: int64(*w.PlanDayIndex), Valid: true}
	}
	created := w.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, query,
		w.ID,
		w.UserID,
		w.Date.Format("2006-01-02"),
		w.DistanceKm,
		w.DurationSec,
		w.Pace,
		w.Source,
		externalID,
		w.ExternalType,
		w.PlanPath,
		dayIndex,
		w.Notes,
		created.Format(time.RFC3339),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", profile.ErrDuplicateWorkout, w.ExternalID)
	}
	if err != nil {
		return fmt.Errorf("inserting workout: %w", err)
	}
	return nil
}

// ListWorkouts returns a user's workout logs, most recent first.
func (s *SQLite) ListWorkouts(ctx context.Context, userID string) ([]*profile.WorkoutLog, error) {
	query := `
		SELECT id, user_id, date, distance_km, duration_sec, pace, source,
		       external_id, external_type, plan_path, plan_day_index, notes, created_at
		FROM workouts
		WHERE user_id = ?
		ORDER BY date DESC, created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*profile.WorkoutLog
	for rows.Next() {
		var (
			w          profile.WorkoutLog
			date       string
			createdAt  string
			externalID sql.NullString
			dayIndex   sql.NullInt64
		)
		if err := rows.Scan(
			&w.ID,
			&w.UserID,
			&date,
			&w.DistanceKm,
			&w.DurationSec,
			&w.Pace,
			&w.Source,
			&externalID,
			&w.ExternalType,
			&w.PlanPath,
			&dayIndex,
			&w.Notes,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}

		if w.Date, err = parseDate(date); err != nil {
			return nil, fmt.Errorf("parsing workout date: %w", err)
		}
		if w.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}
		w.ExternalID = externalID.String
		if dayIndex.Valid {
			idx := int(dayIndex.Int64)
			w.PlanDayIndex = &idx
		}
		out = append(out, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workouts: %w", err)
	}
	return out, nil
}

// ExternalIDs returns the external ids already imported from a source.
func (s *SQLite) ExternalIDs(ctx context.Context, userID string, source profile.Source) (map[string]bool, error) {
	query := `
		SELECT external_id FROM workouts
		WHERE user_id = ? AND source = ? AND external_id IS NOT NULL
	`
	rows, err := s.db.QueryContext(ctx, query, userID, source)
	if err != nil {
		return nil, fmt.Errorf("querying external ids: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning external id: %w", err)
		}
		ids[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating external ids: %w", err)
	}
	return ids, nil
}
