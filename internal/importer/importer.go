// Package importer pulls activities from Strava into a runner's workout log,
// matching each one to a day of the active plan.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
	"github.com/javiermolinar/trote/internal/reference"
	"github.com/javiermolinar/trote/internal/strava"
)

// ActivitySource lists a user's external activities.
type ActivitySource interface {
	ListAllActivities(ctx context.Context, userID string, after time.Time) ([]strava.Activity, error)
}

// Result reports what an import did.
type Result struct {
	Fetched  int                   `json:"fetched"`
	Imported int                   `json:"imported"`
	Matched  int                   `json:"matched"`
	Skipped  int                   `json:"skipped"`
	Logs     []*profile.WorkoutLog `json:"-"`
}

// Importer imports external activities into the workout log.
type Importer struct {
	plans    plan.Repository
	profiles profile.Repository
	source   ActivitySource
	tables   *reference.Tables
	locale   string
	loc      *time.Location
	now      func() time.Time
}

// Option configures an Importer.
type Option func(*Importer)

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(im *Importer) { im.now = now }
}

// WithLocation sets the time zone activity dates are placed in.
func WithLocation(loc *time.Location) Option {
	return func(im *Importer) { im.loc = loc }
}

// WithLocale sets the locale of scheduled day labels.
func WithLocale(locale string) Option {
	return func(im *Importer) { im.locale = locale }
}

// New creates an Importer.
func New(plans plan.Repository, profiles profile.Repository, source ActivitySource, opts ...Option) *Importer {
	im := &Importer{
		plans:    plans,
		profiles: profiles,
		source:   source,
		tables:   reference.Default(),
		locale:   "en",
		loc:      time.Local,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Import fetches the user's activities started after the given time and stores
// the ones not seen before. A zero after means "since the active plan start".
func (im *Importer) Import(ctx context.Context, userID string, after time.Time) (*Result, error) {
	var (
		prof     *profile.Profile
		existing map[string]bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		prof, err = profile.Load(gctx, im.profiles, userID)
		return err
	})
	g.Go(func() error {
		var err error
		existing, err = im.profiles.ExternalIDs(gctx, userID, profile.SourceStrava)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := im.now()
	days, err := im.schedule(ctx, prof, now)
	if err != nil {
		return nil, err
	}
	if after.IsZero() && len(days) > 0 {
		after = days[0].Date
	}

	activities, err := im.source.ListAllActivities(ctx, userID, after)
	if err != nil {
		return nil, fmt.Errorf("fetching activities: %w", err)
	}

	res := &Result{Fetched: len(activities)}
	for _, a := range activities {
		ext := a.Imported(im.loc)
		if existing[ext.ExternalID] {
			res.Skipped++
			continue
		}

		w := profile.NewWorkoutLog(userID, ext.Date, ext.DistanceKm, ext.Seconds, profile.SourceStrava)
		w.ExternalID = ext.ExternalID
		w.ExternalType = ext.Type
		w.Notes = a.Name
		if idx, ok := plan.MatchPlanDay(ext, days); ok {
			w.PlanPath = prof.ActivePlan
			w.PlanDayIndex = &idx
		}
		if err := w.Validate(); err != nil {
			log.Printf("importer: skipping activity %s: %v", ext.ExternalID, err)
			res.Skipped++
			continue
		}

		err := im.profiles.CreateWorkout(ctx, w)
		if errors.Is(err, profile.ErrDuplicateWorkout) {
			res.Skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("storing activity %s: %w", ext.ExternalID, err)
		}

		existing[ext.ExternalID] = true
		res.Imported++
		if w.PlanDayIndex != nil {
			res.Matched++
		}
		res.Logs = append(res.Logs, w)
	}

	if res.Imported > 0 {
		if _, err := profile.RefreshTotals(ctx, im.profiles, userID, now); err != nil {
			return nil, err
		}
	}
	log.Printf("importer: user %s fetched=%d imported=%d matched=%d skipped=%d",
		userID, res.Fetched, res.Imported, res.Matched, res.Skipped)
	return res, nil
}

// schedule places the active plan on the calendar. It returns nil when the
// user has no active plan or the plan no longer exists.
func (im *Importer) schedule(ctx context.Context, prof *profile.Profile, now time.Time) ([]plan.ScheduledDay, error) {
	if prof.ActivePlan == "" {
		return nil, nil
	}
	p, err := im.plans.GetPlan(ctx, prof.ActivePlan)
	if err != nil {
		return nil, fmt.Errorf("loading active plan: %w", err)
	}
	if p == nil {
		log.Printf("importer: active plan %s not found", prof.ActivePlan)
		return nil, nil
	}
	resolved := profile.Resolve(prof.Settings(p.Path), im.tables, profile.DefaultStart(now))
	s := resolved.Start
	start := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, im.loc)
	return plan.Schedule(p.Days, start, now, im.locale), nil
}
