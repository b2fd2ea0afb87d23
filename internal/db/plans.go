package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/javiermolinar/trote/internal/plan"
)

// SavePlan inserts or replaces a plan by path.
func (s *SQLite) SavePlan(ctx context.Context, p *plan.Plan) error {
	doc, err := plan.Encode(p)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}

	query := `
		INSERT INTO plans (path, name, coach, level, duration, volume, days, document, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			name = excluded.name,
			coach = excluded.coach,
			level = excluded.level,
			duration = excluded.duration,
			volume = excluded.volume,
			days = excluded.days,
			document = excluded.document,
			updated_at = excluded.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		p.Path,
		p.Name,
		p.Coach,
		p.Level,
		p.Duration,
		p.Volume,
		len(p.Days),
		string(doc),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	return nil
}

// GetPlan retrieves a plan by path. Returns nil if it does not exist.
func (s *SQLite) GetPlan(ctx context.Context, path string) (*plan.Plan, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM plans WHERE path = ?`, path).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan: %w", err)
	}

	p, err := plan.Decode([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("decoding plan %s: %w", path, err)
	}
	return p, nil
}

// ListPlans returns the summaries of all stored plans ordered by path.
func (s *SQLite) ListPlans(ctx context.Context) ([]plan.Summary, error) {
	query := `
		SELECT path, name, coach, level, duration, volume, days
		FROM plans
		ORDER BY path
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []plan.Summary
	for rows.Next() {
		var sum plan.Summary
		if err := rows.Scan(&sum.Path, &sum.Name, &sum.Coach, &sum.Level, &sum.Duration, &sum.Volume, &sum.Days); err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return out, nil
}
