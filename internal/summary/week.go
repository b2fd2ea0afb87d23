// Package summary builds the read side of a runner's training: the plan placed
// on the calendar with resolved paces, and week summaries with optional insight.
package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/javiermolinar/trote/internal/dateutil"
	"github.com/javiermolinar/trote/internal/llm"
	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
	"github.com/javiermolinar/trote/internal/reference"
)

// ErrNoActivePlan is returned when a view of the active plan is requested
// and the user has none.
var ErrNoActivePlan = errors.New("no active plan")

// PlanView is a plan scheduled from the runner's start date with paces
// resolved from their settings.
type PlanView struct {
	Plan     *plan.Plan
	Settings profile.PaceSettings
	Param    int
	Start    time.Time
	Resolver *plan.Resolver
	Weeks    []plan.WeeklyBlock
	Current  int
}

// NewPlanView schedules p with the given settings.
func NewPlanView(p *plan.Plan, s profile.PaceSettings, tables *reference.Tables, now time.Time, locale string) *PlanView {
	resolved := profile.Resolve(s, tables, profile.DefaultStart(now))
	weeks := plan.OrganizeWeeks(p.Days, resolved.Start, now, locale)
	return &PlanView{
		Plan:     p,
		Settings: s,
		Param:    resolved.Param,
		Start:    resolved.Start,
		Resolver: resolved.Resolver,
		Weeks:    weeks,
		Current:  plan.CurrentWeek(weeks, now),
	}
}

// Week returns block i, or false if out of range.
func (v *PlanView) Week(i int) (plan.WeeklyBlock, bool) {
	if i < 0 || i >= len(v.Weeks) {
		return plan.WeeklyBlock{}, false
	}
	return v.Weeks[i], true
}

// Stats returns the planned volume of block i.
func (v *PlanView) Stats(i int) plan.Stats {
	b, ok := v.Week(i)
	if !ok {
		return plan.Stats{}
	}
	return plan.WeekStats(b.Records(), v.Resolver.Func())
}

// LoadOptions selects the plan view to load.
type LoadOptions struct {
	UserID string
	Path   string // empty means the active plan
	Now    time.Time
	Locale string
	Tables *reference.Tables
}

// LoadPlanView loads the profile and the selected plan and builds the view.
// The returned error wraps plan.ErrPlanNotFound when the plan is missing.
func LoadPlanView(ctx context.Context, plans plan.Repository, profiles profile.Repository, opts LoadOptions) (*PlanView, *profile.Profile, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Tables == nil {
		opts.Tables = reference.Default()
	}

	prof, err := profile.Load(ctx, profiles, opts.UserID)
	if err != nil {
		return nil, nil, err
	}
	path := opts.Path
	if path == "" {
		path = prof.ActivePlan
	}
	if path == "" {
		return nil, prof, ErrNoActivePlan
	}

	p, err := plans.GetPlan(ctx, path)
	if err != nil {
		return nil, prof, fmt.Errorf("loading plan: %w", err)
	}
	if p == nil {
		return nil, prof, fmt.Errorf("%w: %s", plan.ErrPlanNotFound, path)
	}
	return NewPlanView(p, prof.Settings(path), opts.Tables, opts.Now, opts.Locale), prof, nil
}

// WeekSummary holds the planned and completed training of one week.
type WeekSummary struct {
	PlanPath  string
	PlanName  string
	Week      int
	Weeks     int
	Block     plan.WeeklyBlock
	Stats     plan.Stats
	Resolve   plan.ResolveFunc
	Completed []*profile.WorkoutLog
	Done      plan.Volume
	Insight   string
}

// SummarizeWeek builds the summary of block week from a view and the
// runner's workout logs. Logs outside the block dates are ignored.
func SummarizeWeek(v *PlanView, week int, logs []*profile.WorkoutLog) *WeekSummary {
	b, _ := v.Week(week)
	s := &WeekSummary{
		PlanPath: v.Plan.Path,
		PlanName: v.Plan.Name,
		Week:     week,
		Weeks:    len(v.Weeks),
		Block:    b,
		Stats:    v.Stats(week),
		Resolve:  v.Resolver.Func(),
	}
	if len(b.Days) == 0 {
		return s
	}

	first := b.Days[0].Date
	last := b.Days[len(b.Days)-1].Date
	for _, w := range logs {
		d := dateutil.TruncateToDay(w.Date)
		if d.Before(first) || d.After(last) {
			continue
		}
		s.Completed = append(s.Completed, w)
		s.Done = s.Done.Add(plan.Volume{Km: w.DistanceKm, Minutes: float64(w.DurationSec) / 60})
	}
	return s
}

// Options configures BuildWeekSummary.
type Options struct {
	UserID         string
	Week           int // negative selects the current week
	Now            time.Time
	Locale         string
	Tables         *reference.Tables
	IncludeInsight bool
	Provider       string
	Model          string
	BaseURL        string
}

// BuildWeekSummary loads the active plan and workout log and summarises one
// week, optionally asking an LLM for a coaching note.
func BuildWeekSummary(ctx context.Context, plans plan.Repository, profiles profile.Repository, opts Options) (*WeekSummary, error) {
	var (
		view *PlanView
		logs []*profile.WorkoutLog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		view, _, err = LoadPlanView(gctx, plans, profiles, LoadOptions{
			UserID: opts.UserID,
			Now:    opts.Now,
			Locale: opts.Locale,
			Tables: opts.Tables,
		})
		return err
	})
	g.Go(func() error {
		var err error
		logs, err = profiles.ListWorkouts(gctx, opts.UserID)
		if err != nil {
			return fmt.Errorf("listing workouts: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	week := opts.Week
	if week < 0 {
		week = view.Current
	}
	if _, ok := view.Week(week); !ok {
		return nil, fmt.Errorf("week %d out of range (plan has %d)", week+1, len(view.Weeks))
	}
	summary := SummarizeWeek(view, week, logs)

	if opts.IncludeInsight {
		if opts.Model == "" {
			return nil, errors.New("model is required for insight")
		}
		client, err := llm.NewClient(opts.Provider, opts.Model, opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("creating LLM client: %w", err)
		}
		insight, err := llm.NewCoach(client).ReviewWeek(ctx, summary.Review())
		if err != nil {
			return nil, fmt.Errorf("reviewing week: %w", err)
		}
		summary.Insight = insight
	}

	return summary, nil
}

// Review converts the summary into the coach's input.
func (s *WeekSummary) Review() llm.WeekReview {
	return llm.WeekReview{
		PlanName: s.PlanName,
		Week:     s.Week,
		Weeks:    s.Weeks,
		Days:     s.Block.Days,
		Stats:    s.Stats,
		Resolve:  s.Resolve,
		Logs:     s.Completed,
	}
}
