package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/trote/internal/llm"
	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
	"github.com/javiermolinar/trote/internal/summary"
)

func (a *App) generateCmd() *cobra.Command {
	var (
		modelFlag string
		req       llm.GenerateRequest
		activate  bool
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "generate <path>",
		Short: "Write a new training plan with the LLM",
		Long: `Ask the LLM coach for a plan and store it under the given path.

The generated plan is checked for the requested length and training days
per week; invalid plans are sent back to the model with the problems found.

Examples:
  trote generate spring-10k --goal "10K under 50 minutes" --weeks 8 --days 4
  trote generate first-half --goal "finish a half marathon" --level beginner --dry-run

Interactive mode:
  After the plan is shown, you can:
  - [a]ccept: Save the plan
  - [r]egenerate: Ask for another plan, optionally with extra guidance
  - [c]ancel: Exit without saving`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req.Path = args[0]

			model := modelFlag
			if model == "" {
				model = a.config.LLM.Model
			}
			client, err := llm.NewClient(a.config.LLM.Provider, model, a.config.LLM.BaseURL)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}
			gen := llm.NewPlanGenerator(client)

			// Use the runner's reference time from the active plan if none given.
			if req.BaseTime == "" {
				if prof, err := profile.Load(ctx, a.store, a.user()); err == nil && prof.ActivePlan != "" {
					s := prof.Settings(prof.ActivePlan)
					req.BaseTime, req.BaseDistance = s.BaseTime, s.BaseDistance
				}
			}

			out := cmd.OutOrStdout()
			reader := bufio.NewReader(cmd.InOrStdin())
			goal := req.Goal
			for {
				fmt.Fprintln(out, "Generating plan...")
				p, err := gen.Generate(ctx, req)
				if err != nil {
					return fmt.Errorf("generating plan: %w", err)
				}
				a.previewPlan(out, p)

				if dryRun {
					fmt.Fprintln(out, "\n(Dry run - plan not saved)")
					return nil
				}

				fmt.Fprint(out, "\n[a]ccept / [r]egenerate / [c]ancel: ")
				choice, err := reader.ReadString('\n')
				if err != nil && err != io.EOF {
					return fmt.Errorf("reading input: %w", err)
				}
				switch strings.TrimSpace(strings.ToLower(choice)) {
				case "a", "accept":
					if err := a.store.SavePlan(ctx, p); err != nil {
						return fmt.Errorf("saving plan: %w", err)
					}
					fmt.Fprintf(out, "\nSaved %s (%d weeks)\n", p.Path, p.Duration)
					if activate {
						return a.activatePlan(cmd, p.Path, "")
					}
					return nil

				case "r", "regenerate":
					fmt.Fprint(out, "Anything to change? ")
					extra, _ := reader.ReadString('\n')
					if extra = strings.TrimSpace(extra); extra != "" {
						req.Goal = goal + ". " + extra
					}

				default:
					fmt.Fprintln(out, "Generation cancelled.")
					return nil
				}
			}
		},
	}

	cmd.Flags().StringVarP(&req.Goal, "goal", "g", "", "What the plan should prepare you for")
	cmd.Flags().StringVar(&req.Level, "level", "intermediate", "beginner, intermediate or advanced")
	cmd.Flags().IntVar(&req.Weeks, "weeks", 8, "Plan length in weeks")
	cmd.Flags().IntVar(&req.RunDays, "days", 4, "Training days per week")
	cmd.Flags().StringVar(&req.BaseTime, "base-time", "", "Recent race time (HH:MM:SS)")
	cmd.Flags().StringVar(&req.BaseDistance, "base-distance", "", "Recent race distance, e.g. 10km")
	cmd.Flags().StringVar(&modelFlag, "model", "", "LLM model to use (default from config)")
	cmd.Flags().BoolVar(&activate, "activate", false, "Activate the plan once saved")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the plan without saving")
	_ = cmd.MarkFlagRequired("goal")
	return cmd
}

// previewPlan prints one line per week with its sessions and volume.
func (a *App) previewPlan(w io.Writer, p *plan.Plan) {
	view := summary.NewPlanView(p, profile.PaceSettings{}, a.tables, a.now(), a.config.Athlete.Locale)

	fmt.Fprintf(w, "\n  %s\n", formatHeader(fmt.Sprintf("%s · %d weeks · %s", p.Name, len(view.Weeks), p.Level)))
	fmt.Fprintln(w, rule())
	for i, b := range view.Weeks {
		var labels []string
		for _, d := range b.Days {
			for _, act := range d.Record.Activities {
				if !act.IsRest() {
					labels = append(labels, act.Label())
				}
			}
		}
		fmt.Fprintf(w, "  Week %-2d %-14s %s\n", i+1, FormatVolume(view.Stats(i).Total), formatMuted(strings.Join(labels, ", ")))
	}
}
