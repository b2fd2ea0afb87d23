// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/javiermolinar/trote/internal/config"
	"github.com/javiermolinar/trote/internal/dateutil"
	"github.com/javiermolinar/trote/internal/llm"
	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
	"github.com/javiermolinar/trote/internal/summary"
)

// PlanLoadedMsg is sent when the active plan and workout log are loaded.
type PlanLoadedMsg struct {
	View *summary.PlanView
	Logs []*profile.WorkoutLog
}

// NoPlanMsg is sent when the runner has no active plan.
type NoPlanMsg struct{}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// ReviewStartedMsg is sent when the coach review starts.
type ReviewStartedMsg struct{}

// WeekSummaryMsg is sent when week summary data is ready.
type WeekSummaryMsg struct {
	Summary *summary.WeekSummary
}

// WorkoutLoggedMsg is sent after a workout is stored.
type WorkoutLoggedMsg struct {
	Log     *profile.WorkoutLog
	Profile *profile.Profile
}

// PlanActivatedMsg is sent after the active plan changes.
type PlanActivatedMsg struct {
	Path  string
	Start string
}

// Source loads plans and the runner's profile.
type Source struct {
	Plans    plan.Repository
	Profiles profile.Repository
	Options  summary.LoadOptions
}

// LoadPlan loads the active plan view and the workout log concurrently.
func LoadPlan(src Source) tea.Cmd {
	return func() tea.Msg {
		var (
			view *summary.PlanView
			logs []*profile.WorkoutLog
		)
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			view, _, err = summary.LoadPlanView(ctx, src.Plans, src.Profiles, src.Options)
			return err
		})
		g.Go(func() error {
			var err error
			logs, err = src.Profiles.ListWorkouts(ctx, src.Options.UserID)
			return err
		})
		if err := g.Wait(); err != nil {
			if errors.Is(err, summary.ErrNoActivePlan) {
				return NoPlanMsg{}
			}
			return ErrMsg{Err: err}
		}
		return PlanLoadedMsg{View: view, Logs: logs}
	}
}

// ReviewWeek summarises a week of the loaded view and asks the coach for a
// note when an LLM model is configured.
func ReviewWeek(cfg *config.Config, view *summary.PlanView, week int, logs []*profile.WorkoutLog) tea.Cmd {
	return func() tea.Msg {
		ws := summary.SummarizeWeek(view, week, logs)
		if cfg.LLM.Model == "" {
			return WeekSummaryMsg{Summary: ws}
		}

		client, err := llm.NewClient(cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.BaseURL)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating LLM client: %w", err)}
		}
		insight, err := llm.NewCoach(client).ReviewWeek(context.Background(), ws.Review())
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("reviewing week: %w", err)}
		}
		ws.Insight = insight
		return WeekSummaryMsg{Summary: ws}
	}
}

// LogEntry is a workout typed in the prompt for one scheduled day.
type LogEntry struct {
	UserID   string
	PlanPath string
	Day      plan.ScheduledDay
	Km       float64
	Seconds  int
	Notes    string
	Now      time.Time
}

// LogWorkout stores a manual workout linked to the plan day and refreshes the
// profile totals.
func LogWorkout(profiles profile.Repository, e LogEntry) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		wl := profile.NewWorkoutLog(e.UserID, e.Day.Date, e.Km, e.Seconds, profile.SourceManual)
		wl.Notes = e.Notes
		if e.PlanPath != "" {
			idx := e.Day.Index
			wl.PlanPath = e.PlanPath
			wl.PlanDayIndex = &idx
		}
		if err := wl.Validate(); err != nil {
			return ErrMsg{Err: err}
		}
		if err := profiles.CreateWorkout(ctx, wl); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving workout: %w", err)}
		}
		prof, err := profile.RefreshTotals(ctx, profiles, e.UserID, e.Now)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return WorkoutLoggedMsg{Log: wl, Profile: prof}
	}
}

// ActivatePlan makes path the active plan, starting it on the next
// startWeekday unless the runner already has a start date for it.
func ActivatePlan(plans plan.Repository, profiles profile.Repository, userID, path, startWeekday string, now time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		p, err := plans.GetPlan(ctx, path)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading plan: %w", err)}
		}
		if p == nil {
			return ErrMsg{Err: fmt.Errorf("%w: %s", plan.ErrPlanNotFound, path)}
		}
		start, err := dateutil.NextWeekday(now, startWeekday)
		if err != nil {
			return ErrMsg{Err: err}
		}

		prof, err := profile.Update(ctx, profiles, userID, func(pr *profile.Profile) error {
			if err := pr.Activate(p.Path); err != nil {
				return err
			}
			pr.StartOn(p.Path, start)
			return nil
		})
		if err != nil {
			return ErrMsg{Err: err}
		}
		return PlanActivatedMsg{Path: p.Path, Start: prof.Settings(p.Path).StartDate}
	}
}

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: "Copied to clipboard"}
	}
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
