// Package storage opens the configured persistence backend.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/javiermolinar/trote/internal/config"
	"github.com/javiermolinar/trote/internal/db"
	"github.com/javiermolinar/trote/internal/docstore"
	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
	"github.com/javiermolinar/trote/internal/strava"
)

// Store is everything the application persists.
type Store interface {
	plan.Repository
	profile.Repository
	strava.TokenStore
	Close() error
}

var (
	_ Store = (*db.SQLite)(nil)
	_ Store = (*docstore.Store)(nil)
)

// Open returns the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", config.DriverSQLite:
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		s, err := db.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverFirestore:
		s, err := docstore.New(ctx, cfg.FirestoreProject)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
