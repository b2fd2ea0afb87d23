package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS plans (
			path        TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			coach       TEXT NOT NULL DEFAULT '',
			level       TEXT NOT NULL DEFAULT '',
			duration    INTEGER NOT NULL DEFAULT 0,
			volume      TEXT NOT NULL DEFAULT '',
			days        INTEGER NOT NULL DEFAULT 0,
			document    TEXT NOT NULL,
			updated_at  DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS profiles (
			user_id         TEXT PRIMARY KEY,
			active_plan     TEXT NOT NULL DEFAULT '',
			saved_plans     TEXT NOT NULL DEFAULT '[]',
			custom_paces    TEXT NOT NULL DEFAULT '{}',
			completed_workouts TEXT NOT NULL DEFAULT '[]',
			total_distance  REAL NOT NULL DEFAULT 0,
			streak_days     INTEGER NOT NULL DEFAULT 0,
			updated_at      DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS workouts (
			id              TEXT PRIMARY KEY,
			user_id         TEXT NOT NULL,
			date            DATE NOT NULL,
			distance_km     REAL NOT NULL DEFAULT 0,
			duration_sec    INTEGER NOT NULL DEFAULT 0,
			pace            TEXT NOT NULL DEFAULT '',
			source          TEXT NOT NULL CHECK(source IN ('manual', 'strava', 'system')),
			external_id     TEXT,
			external_type   TEXT NOT NULL DEFAULT '',
			plan_path       TEXT NOT NULL DEFAULT '',
			plan_day_index  INTEGER,
			notes           TEXT NOT NULL DEFAULT '',
			created_at      DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, source, external_id)
		);

		CREATE INDEX IF NOT EXISTS idx_workouts_user_date ON workouts(user_id, date);

		CREATE TABLE IF NOT EXISTS strava_tokens (
			user_id        TEXT PRIMARY KEY,
			access_token   TEXT NOT NULL,
			refresh_token  TEXT NOT NULL,
			expires_at     DATETIME,
			athlete_id     INTEGER NOT NULL DEFAULT 0
		);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	// Databases created before profiles referenced their workouts.
	return s.addColumn("profiles", "completed_workouts", "TEXT NOT NULL DEFAULT '[]'")
}

// addColumn adds a column to table unless it already exists.
func (s *SQLite) addColumn(table, column, definition string) error {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column).Scan(&n)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", table, err)
	}
	if n > 0 {
		return nil
	}
	if _, err := s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition)); err != nil {
		return fmt.Errorf("adding %s.%s: %w", table, column, err)
	}
	return nil
}
