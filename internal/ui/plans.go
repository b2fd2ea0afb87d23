package ui

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/trote/internal/dateutil"
	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
	"github.com/javiermolinar/trote/internal/summary"
)

func (a *App) plansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List the stored training plans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			plans, err := a.store.ListPlans(ctx)
			if err != nil {
				return fmt.Errorf("listing plans: %w", err)
			}
			prof, err := profile.Load(ctx, a.store, a.user())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(plans) == 0 {
				fmt.Fprintln(out, "No plans stored. Load one with 'trote load <file>'.")
				return nil
			}
			for _, p := range plans {
				marker := "  "
				if p.Path == prof.ActivePlan {
					marker = formatStats("▸ ")
				}
				fmt.Fprintf(out, "%s%-20s %-28s %2d weeks  %-12s %s\n",
					marker, p.Path, p.Name, p.Duration, p.Level, formatMuted(p.Volume))
			}
			return nil
		},
	}
}

func (a *App) showCmd() *cobra.Command {
	var (
		week    int
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Show a plan week with your paces",
		Long: `Display one week of a plan scheduled from your start date, with every
session resolved to your paces.

Without a path the active plan is shown. Without --week the current
week is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				DisableColor()
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}

			ctx := cmd.Context()
			view, _, err := summary.LoadPlanView(ctx, a.store, a.store, summary.LoadOptions{
				UserID: a.user(),
				Path:   path,
				Now:    a.now(),
				Locale: a.config.Athlete.Locale,
				Tables: a.tables,
			})
			if errors.Is(err, summary.ErrNoActivePlan) {
				return errors.New("no active plan, activate one with 'trote activate <path>'")
			}
			if err != nil {
				return err
			}

			idx := view.Current
			if week > 0 {
				idx = week - 1
			}
			block, ok := view.Week(idx)
			if !ok {
				return fmt.Errorf("week %d out of range (plan has %d)", idx+1, len(view.Weeks))
			}
			logs, err := a.store.ListWorkouts(ctx, a.user())
			if err != nil {
				return fmt.Errorf("listing workouts: %w", err)
			}

			printWeek(cmd.OutOrStdout(), WeekPrint{
				PlanName: view.Plan.Name,
				Weeks:    len(view.Weeks),
				Block:    block,
				Stats:    view.Stats(idx),
				Resolve:  view.Resolver.Func(),
				Logs:     logs,
			})
			return nil
		},
	}

	cmd.Flags().IntVarP(&week, "week", "w", 0, "Week number to show (1-based)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

func (a *App) loadCmd() *cobra.Command {
	var activate bool

	cmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Load a plan from a JSON file",
		Long: `Store a plan document read from a JSON file, replacing any plan with
the same path.

Example:
  trote load my-plan.json --activate`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading plan: %w", err)
			}
			p, err := plan.Decode(data)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[0], err)
			}
			if err := a.store.SavePlan(cmd.Context(), p); err != nil {
				return fmt.Errorf("saving plan: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s (%s, %d days)\n", p.Path, p.Name, len(p.Days))

			if activate {
				return a.activatePlan(cmd, p.Path, "")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&activate, "activate", false, "Make the loaded plan the active one")
	return cmd
}

func (a *App) activateCmd() *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "activate <path>",
		Short: "Make a plan the active one",
		Long: `Activate a stored plan. A plan without a start date starts on the next
configured start weekday, or on the date given with --start.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.activatePlan(cmd, args[0], start)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	return cmd
}

// activatePlan sets path as the active plan and fixes its start date.
func (a *App) activatePlan(cmd *cobra.Command, path, start string) error {
	ctx := cmd.Context()
	p, err := a.store.GetPlan(ctx, path)
	if err != nil {
		return fmt.Errorf("loading plan: %w", err)
	}
	if p == nil {
		return fmt.Errorf("%w: %s", plan.ErrPlanNotFound, path)
	}

	var startDate time.Time
	if start != "" {
		startDate, err = dateutil.ParseDate(start)
	} else {
		startDate, err = dateutil.NextWeekday(a.now(), a.config.Athlete.StartWeekday)
	}
	if err != nil {
		return err
	}

	prof, err := profile.Update(ctx, a.store, a.user(), func(pr *profile.Profile) error {
		if err := pr.Activate(p.Path); err != nil {
			return err
		}
		if start != "" {
			s := pr.Settings(p.Path)
			s.StartDate = dateutil.FormatDate(startDate)
			return pr.SetSettings(p.Path, s)
		}
		pr.StartOn(p.Path, startDate)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Active plan: %s, starting %s\n", p.Name, prof.Settings(p.Path).StartDate)
	return nil
}

func (a *App) saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <path>",
		Short: "Add a plan to your saved plans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := a.store.GetPlan(ctx, args[0])
			if err != nil {
				return fmt.Errorf("loading plan: %w", err)
			}
			if p == nil {
				return fmt.Errorf("%w: %s", plan.ErrPlanNotFound, args[0])
			}
			prof, err := profile.Update(ctx, a.store, a.user(), func(pr *profile.Profile) error {
				return pr.Save(p.Path)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved plans: %s\n", strings.Join(prof.SavedPlans, ", "))
			return nil
		},
	}
}
