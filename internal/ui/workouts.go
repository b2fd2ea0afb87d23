package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/trote/internal/dateutil"
	"github.com/javiermolinar/trote/internal/pace"
	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
)

func (a *App) logCmd() *cobra.Command {
	var (
		date     string
		km       float64
		duration string
		planPath string
		day      int
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a completed workout",
		Long: `Record a workout you ran. Give a distance, a duration or both.

Use --plan and --day to link it to a day of a plan (1-based).

Example:
  trote log --km 10.2 --time 00:52:30
  trote log --date 2024-06-12 --km 8 --plan 10k-base --day 3`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			when := a.now()
			if date != "" {
				d, err := dateutil.ParseDate(date)
				if err != nil {
					return err
				}
				when = d
			}
			var secs int
			if duration != "" {
				secs = pace.ParseClock(duration)
				if secs == 0 {
					return fmt.Errorf("invalid duration %q, use HH:MM:SS", duration)
				}
			}

			wl := profile.NewWorkoutLog(a.user(), when, km, secs, profile.SourceManual)
			wl.PlanPath = strings.TrimSpace(planPath)
			wl.Notes = notes
			if cmd.Flags().Changed("day") {
				idx := day - 1
				wl.PlanDayIndex = &idx
			}
			if err := wl.Validate(); err != nil {
				return err
			}
			if wl.PlanPath != "" {
				p, err := a.store.GetPlan(ctx, wl.PlanPath)
				if err != nil {
					return fmt.Errorf("loading plan: %w", err)
				}
				if p == nil {
					return fmt.Errorf("%w: %s", plan.ErrPlanNotFound, wl.PlanPath)
				}
				if err := wl.ValidateAgainst(p); err != nil {
					return err
				}
			}

			if err := a.store.CreateWorkout(ctx, wl); err != nil {
				return fmt.Errorf("saving workout: %w", err)
			}
			prof, err := profile.RefreshTotals(ctx, a.store, a.user(), a.now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Logged %.1f km in %s on %s", wl.DistanceKm, FormatDuration(wl.DurationSec/60), dateutil.FormatDate(wl.Date))
			if wl.Pace != "" {
				fmt.Fprintf(out, " (%s/km)", wl.Pace)
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Total: %.1f km · streak %d days\n", prof.TotalDistance, prof.StreakDays)
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Workout date (YYYY-MM-DD, default today)")
	cmd.Flags().Float64VarP(&km, "km", "k", 0, "Distance in kilometres")
	cmd.Flags().StringVarP(&duration, "time", "t", "", "Duration (HH:MM:SS)")
	cmd.Flags().StringVar(&planPath, "plan", "", "Plan the workout belongs to")
	cmd.Flags().IntVar(&day, "day", 0, "Plan day number (1-based)")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Notes")
	return cmd
}

func (a *App) workoutsCmd() *cobra.Command {
	var (
		days     int
		from, to string
	)

	cmd := &cobra.Command{
		Use:   "workouts",
		Short: "List logged workouts",
		Long: `List logged workouts, most recent first.

Use --days for a rolling window or --from/--to for fixed dates.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days > 0 && (from != "" || to != "") {
				return errors.New("--days cannot be combined with --from/--to")
			}
			logs, err := a.store.ListWorkouts(cmd.Context(), a.user())
			if err != nil {
				return fmt.Errorf("listing workouts: %w", err)
			}
			switch {
			case days > 0:
				today := dateutil.TruncateToDay(a.now())
				logs = logsBetween(logs, dateutil.AddDays(today, -days), today)
			case from != "" || to != "":
				if from == "" {
					return errors.New("--to requires --from")
				}
				r, err := dateutil.NewDateRange(from, to)
				if err != nil {
					return err
				}
				logs = logsBetween(logs, r.Start, r.End)
			}

			out := cmd.OutOrStdout()
			if len(logs) == 0 {
				fmt.Fprintln(out, "No workouts logged.")
				return nil
			}
			printWorkouts(out, logs)
			fmt.Fprintf(out, "\n  %d workouts · %.1f km\n", len(logs), profile.TotalDistance(logs))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Only show the last N days")
	cmd.Flags().StringVar(&from, "from", "", "First date to show (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last date to show (YYYY-MM-DD, default: same as --from)")
	return cmd
}

// logsBetween keeps the logs dated within [start, end].
func logsBetween(logs []*profile.WorkoutLog, start, end time.Time) []*profile.WorkoutLog {
	var out []*profile.WorkoutLog
	for _, l := range logs {
		d := dateutil.TruncateToDay(l.Date)
		if !d.Before(start) && !d.After(end) {
			out = append(out, l)
		}
	}
	return out
}
