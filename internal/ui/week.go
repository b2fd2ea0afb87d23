package ui

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/trote/internal/summary"
)

func (a *App) weekCmd() *cobra.Command {
	var model string
	var week int
	var noInsight bool
	var noColor bool

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show and review this week of your plan",
		Long: `Display the current week of the active plan with resolved paces,
planned volume and the workouts you logged, and ask the LLM coach for a
short review.

Use --week to pick another week (1-based).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if model == "" {
				model = a.config.LLM.Model
			}

			ws, err := summary.BuildWeekSummary(cmd.Context(), a.store, a.store, summary.Options{
				UserID:         a.user(),
				Week:           week - 1,
				Now:            a.now(),
				Locale:         a.config.Athlete.Locale,
				Tables:         a.tables,
				IncludeInsight: !noInsight,
				Provider:       a.config.LLM.Provider,
				Model:          model,
				BaseURL:        a.config.LLM.BaseURL,
			})
			if errors.Is(err, summary.ErrNoActivePlan) {
				return errors.New("no active plan, activate one with 'trote activate <path>'")
			}
			if err != nil {
				return fmt.Errorf("building week summary: %w", err)
			}

			out := cmd.OutOrStdout()
			printWeek(out, WeekPrint{
				PlanName: ws.PlanName,
				Weeks:    ws.Weeks,
				Block:    ws.Block,
				Stats:    ws.Stats,
				Resolve:  ws.Resolve,
				Logs:     ws.Completed,
			})

			if ws.Insight != "" {
				fmt.Fprintln(out)
				fmt.Fprintf(out, "  %s\n", formatHeader("COACH"))
				fmt.Fprintln(out, rule())
				PrintInsightWrapped(out, ws.Insight, min(termWidth(), ruleWidth)-2)
			}

			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "LLM model to use (default from config)")
	cmd.Flags().IntVarP(&week, "week", "w", 0, "Week number (default: current week)")
	cmd.Flags().BoolVar(&noInsight, "no-insight", false, "Skip the coach review")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}
