package profile

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/trote/internal/dateutil"
	"github.com/javiermolinar/trote/internal/pace"
	"github.com/javiermolinar/trote/internal/plan"
)

// Workout log errors.
var (
	ErrInvalidSource     = errors.New("source must be 'manual', 'strava' or 'system'")
	ErrMissingDate       = errors.New("workout date is required")
	ErrEmptyWorkout      = errors.New("workout needs a distance or a duration")
	ErrNegativeAmount    = errors.New("distance and duration cannot be negative")
	ErrDuplicateWorkout  = errors.New("workout already imported")
	ErrDayIndexNeedsPlan = errors.New("plan day index requires a plan path")
)

// Source identifies where a workout log came from.
type Source string

const (
	SourceManual Source = "manual"
	SourceStrava Source = "strava"
	SourceSystem Source = "system"
)

// IsValid returns true if the source is known.
func (s Source) IsValid() bool {
	return s == SourceManual || s == SourceStrava || s == SourceSystem
}

// WorkoutLog is a real workout, entered by hand or imported.
type WorkoutLog struct {
	ID           string
	UserID       string
	Date         time.Time
	DistanceKm   float64
	DurationSec  int
	Pace         string
	Source       Source
	ExternalID   string
	ExternalType string
	PlanPath     string
	PlanDayIndex *int
	Notes        string
	CreatedAt    time.Time
}

// NewWorkoutLog creates a log with a fresh id and a pace derived from the
// distance and duration.
func NewWorkoutLog(userID string, date time.Time, km float64, seconds int, source Source) *WorkoutLog {
	return &WorkoutLog{
		ID:          uuid.NewString(),
		UserID:      userID,
		Date:        dateutil.TruncateToDay(date),
		DistanceKm:  km,
		DurationSec: seconds,
		Pace:        pace.FromSeconds(pace.PerKm(km, seconds)),
		Source:      source,
		CreatedAt:   time.Now().UTC(),
	}
}

// Validate checks the log fields that do not depend on a plan.
func (w *WorkoutLog) Validate() error {
	if w.UserID == "" {
		return ErrEmptyUserID
	}
	if w.Date.IsZero() {
		return ErrMissingDate
	}
	if w.DistanceKm < 0 || w.DurationSec < 0 {
		return ErrNegativeAmount
	}
	if w.DistanceKm == 0 && w.DurationSec == 0 {
		return ErrEmptyWorkout
	}
	if !w.Source.IsValid() {
		return ErrInvalidSource
	}
	if w.PlanDayIndex != nil && w.PlanPath == "" {
		return ErrDayIndexNeedsPlan
	}
	return nil
}

// ValidateAgainst checks that the plan day index, if any, exists in p.
func (w *WorkoutLog) ValidateAgainst(p *plan.Plan) error {
	if w.PlanDayIndex == nil {
		return nil
	}
	if p == nil || p.Path != w.PlanPath {
		return fmt.Errorf("%w: %s", plan.ErrPlanNotFound, w.PlanPath)
	}
	return p.ValidateDayIndex(*w.PlanDayIndex)
}

// TotalDistance sums the distance of all logs.
func TotalDistance(logs []*WorkoutLog) float64 {
	var total float64
	for _, w := range logs {
		total += w.DistanceKm
	}
	return total
}

// StreakDays counts consecutive days with at least one workout, ending today.
// A day without a workout yet today does not break a streak that reached
// yesterday.
func StreakDays(logs []*WorkoutLog, now time.Time) int {
	days := make(map[string]bool, len(logs))
	for _, w := range logs {
		days[dateutil.FormatDate(w.Date)] = true
	}

	day := dateutil.TruncateToDay(now)
	if !days[dateutil.FormatDate(day)] {
		day = dateutil.AddDays(day, -1)
	}
	streak := 0
	for days[dateutil.FormatDate(day)] {
		streak++
		day = dateutil.AddDays(day, -1)
	}
	return streak
}
