// Package profile holds per-user state: active and saved plans, custom pace
// settings and the log of completed workouts.
package profile

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/javiermolinar/trote/internal/dateutil"
)

// Profile errors.
var (
	ErrEmptyUserID = errors.New("user id cannot be empty")
	ErrEmptyPlan   = errors.New("plan path cannot be empty")
)

// Profile is the per-user document. Writes replace the whole profile.
type Profile struct {
	UserID            string
	ActivePlan        string
	SavedPlans        []string
	CustomPaces       map[string]PaceSettings // keyed by plan path
	CompletedWorkouts []CompletedWorkout      // most recent first
	TotalDistance     float64
	StreakDays        int
	UpdatedAt         time.Time
}

// CompletedWorkout is the profile's reference to one stored workout log.
type CompletedWorkout struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	DistanceKm   float64   `json:"distanceKm"`
	Source       Source    `json:"source"`
	PlanPath     string    `json:"planPath,omitempty"`
	PlanDayIndex *int      `json:"planDayIndex,omitempty"`
}

// Completed summarises logs in the order given.
func Completed(logs []*WorkoutLog) []CompletedWorkout {
	out := make([]CompletedWorkout, 0, len(logs))
	for _, w := range logs {
		out = append(out, CompletedWorkout{
			ID:           w.ID,
			Date:         w.Date,
			DistanceKm:   w.DistanceKm,
			Source:       w.Source,
			PlanPath:     w.PlanPath,
			PlanDayIndex: w.PlanDayIndex,
		})
	}
	return out
}

// New returns an empty profile for a user.
func New(userID string) *Profile {
	return &Profile{
		UserID:      userID,
		CustomPaces: map[string]PaceSettings{},
	}
}

// Activate sets the active plan and adds it to the saved plans.
func (p *Profile) Activate(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return ErrEmptyPlan
	}
	p.ActivePlan = path
	return p.Save(path)
}

// Save adds a plan to the saved list if it is not there yet.
func (p *Profile) Save(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return ErrEmptyPlan
	}
	if !slices.Contains(p.SavedPlans, path) {
		p.SavedPlans = append(p.SavedPlans, path)
	}
	return nil
}

// Settings returns the pace settings for a plan, or zero settings.
func (p *Profile) Settings(path string) PaceSettings {
	if p.CustomPaces == nil {
		return PaceSettings{}
	}
	return p.CustomPaces[path]
}

// SetSettings validates and stores pace settings for a plan, replacing any
// previous settings for that path.
func (p *Profile) SetSettings(path string, s PaceSettings) error {
	if strings.TrimSpace(path) == "" {
		return ErrEmptyPlan
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if p.CustomPaces == nil {
		p.CustomPaces = map[string]PaceSettings{}
	}
	p.CustomPaces[path] = s
	return nil
}

// StartOn records the start date of a plan unless one is already set.
func (p *Profile) StartOn(path string, start time.Time) {
	s := p.Settings(path)
	if s.StartDate != "" {
		return
	}
	s.StartDate = dateutil.FormatDate(start)
	if p.CustomPaces == nil {
		p.CustomPaces = map[string]PaceSettings{}
	}
	p.CustomPaces[path] = s
}

// Refresh recomputes the workout references and derived totals from the
// workout log.
func (p *Profile) Refresh(logs []*WorkoutLog, now time.Time) {
	p.CompletedWorkouts = Completed(logs)
	p.TotalDistance = TotalDistance(logs)
	p.StreakDays = StreakDays(logs, now)
}

// Repository defines the storage interface for profiles and workout logs.
type Repository interface {
	// GetProfile retrieves a profile. Returns nil if the user has none.
	GetProfile(ctx context.Context, userID string) (*Profile, error)

	// SaveProfile inserts or replaces a profile.
	SaveProfile(ctx context.Context, p *Profile) error

	// CreateWorkout stores a workout log. Returns ErrDuplicateWorkout if a log
	// with the same external id already exists for the user.
	CreateWorkout(ctx context.Context, w *WorkoutLog) error

	// ListWorkouts returns a user's workout logs, most recent first.
	ListWorkouts(ctx context.Context, userID string) ([]*WorkoutLog, error)

	// ExternalIDs returns the external ids already imported from a source.
	ExternalIDs(ctx context.Context, userID string, source Source) (map[string]bool, error)
}

// Update loads a user's profile (creating it when missing), applies fn and
// saves the result. The last writer wins.
func Update(ctx context.Context, repo Repository, userID string, fn func(*Profile) error) (*Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	p, err := repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	if p == nil {
		p = New(userID)
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now().UTC()
	if err := repo.SaveProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("saving profile: %w", err)
	}
	return p, nil
}

// Load returns a user's profile, or an empty one when none is stored.
func Load(ctx context.Context, repo Repository, userID string) (*Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	p, err := repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	if p == nil {
		p = New(userID)
	}
	return p, nil
}

// RefreshTotals recomputes the user's derived totals from the stored log.
func RefreshTotals(ctx context.Context, repo Repository, userID string, now time.Time) (*Profile, error) {
	logs, err := repo.ListWorkouts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing workouts: %w", err)
	}
	return Update(ctx, repo, userID, func(p *Profile) error {
		p.Refresh(logs, now)
		return nil
	})
}
