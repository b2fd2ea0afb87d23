package ui

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/trote/internal/dateutil"
	"github.com/javiermolinar/trote/internal/pace"
	"github.com/javiermolinar/trote/internal/profile"
	"github.com/javiermolinar/trote/internal/reference"
	"github.com/javiermolinar/trote/internal/summary"
)

func (a *App) pacesCmd() *cobra.Command {
	var adjust float64

	cmd := &cobra.Command{
		Use:   "paces [path]",
		Short: "Show your training paces and race predictions",
		Long: `Show the zone paces derived from your reference race time for a plan,
with your overrides applied, and the race times that reference predicts.

Without a path the active plan is used. --adjust scales every zone pace by
a percentage, so 95 is 5% faster and 105 is 5% slower (heat, hills, trail).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if adjust < 0 {
				return fmt.Errorf("--adjust must be a positive percentage")
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			view, _, err := summary.LoadPlanView(cmd.Context(), a.store, a.store, summary.LoadOptions{
				UserID: a.user(),
				Path:   path,
				Now:    a.now(),
				Locale: a.config.Athlete.Locale,
				Tables: a.tables,
			})
			if err != nil {
				return err
			}
			printPaces(cmd.OutOrStdout(), view, a.tables, a.now(), adjust)
			return nil
		},
	}

	cmd.Flags().Float64Var(&adjust, "adjust", 0, "Also show zone paces scaled by this percentage")
	cmd.AddCommand(a.pacesSetCmd())
	return cmd
}

func (a *App) pacesSetCmd() *cobra.Command {
	var (
		path  string
		reset bool
	)

	cmd := &cobra.Command{
		Use:   "set key=value...",
		Short: "Change the pace settings of a plan",
		Long: `Change the pace settings of a plan. Keys are baseTime (HH:MM:SS),
baseDistance (one of ` + strings.Join(reference.DistanceKeys(), ", ") + `), startDate
(YYYY-MM-DD) or a zone name such as "Easy Km". An empty value removes the
setting.

Example:
  trote paces set baseTime=00:48:30 baseDistance=10km "Easy Km=5:40"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !reset {
				return fmt.Errorf("nothing to set")
			}
			changes, err := parseAssignments(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			target := path
			prof, err := profile.Update(ctx, a.store, a.user(), func(p *profile.Profile) error {
				if target == "" {
					target = p.ActivePlan
				}
				if target == "" {
					return summary.ErrNoActivePlan
				}
				flat := map[string]string{}
				if !reset {
					flat = p.Settings(target).Flat()
				}
				for k, v := range changes {
					if v == "" {
						delete(flat, k)
						continue
					}
					flat[k] = v
				}
				return p.SetSettings(target, profile.FromFlat(flat))
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Pace settings for %s:\n", target)
			flat := prof.Settings(target).Flat()
			for _, k := range sortedKeys(flat) {
				fmt.Fprintf(out, "  %-16s %s\n", k, flat[k])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "plan", "", "Plan path (default: active plan)")
	cmd.Flags().BoolVar(&reset, "reset", false, "Clear existing settings before applying")
	return cmd
}

// parseAssignments reads key=value arguments.
func parseAssignments(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid setting %q, use key=value", arg)
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}

func printPaces(w io.Writer, view *summary.PlanView, tables *reference.Tables, now time.Time, adjust float64) {
	s := view.Settings
	baseTime, baseDist := s.BaseTime, s.BaseDistance
	if baseTime == "" {
		baseTime = profile.DefaultBaseTime
	}
	if baseDist == "" {
		baseDist = profile.DefaultBaseDistance
	}

	fmt.Fprintf(w, "\n  %s\n", formatHeader(view.Plan.Name+" · PACES"))
	fmt.Fprintln(w, rule())
	lo, hi := tables.ParamRange()
	fmt.Fprintf(w, "  Reference: %s over %s (VDOT %d, table %d-%d)\n", baseTime, baseDist, view.Param, lo, hi)
	fmt.Fprintf(w, "  Start:     %s (%s)\n\n", dateutil.FormatDate(view.Start), startsIn(dateutil.DaysBetween(now, view.Start)))

	for _, zone := range reference.Zones() {
		p := view.Resolver.Paces[zone]
		if p == "" {
			p = "-"
		}
		note := ""
		if _, ok := s.Overrides[zone]; ok {
			note = formatMuted("  (custom)")
		}
		if adj := pace.Adjust(view.Resolver.Paces[zone], adjust); adj != "" {
			note += formatMuted(fmt.Sprintf("  (%s at %g%%)", adj, adjust))
		}
		fmt.Fprintf(w, "  %-18s %s%s\n", zone, formatStats(p), note)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", formatHeader("Race predictions"))
	for _, key := range reference.DistanceKeys() {
		km, _ := reference.DistanceKm(key)
		secs := tables.Predict(view.Param, km)
		if secs == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-8s %9s  %s/km\n", key, pace.FormatClock(secs), tables.RacePace(view.Param, km))
	}
}

// startsIn describes a plan start relative to today.
func startsIn(days int) string {
	switch {
	case days > 1:
		return fmt.Sprintf("in %d days", days)
	case days == 1:
		return "tomorrow"
	case days == 0:
		return "today"
	default:
		return fmt.Sprintf("day %d", 1-days)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
