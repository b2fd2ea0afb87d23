package view

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/trote/internal/dateutil"
	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
	"github.com/javiermolinar/trote/internal/summary"
)

// BuildWeekSummaryLines builds the lines of the week summary modal: planned
// against done volume, missed sessions and the coach's note.
func BuildWeekSummaryLines(ws *summary.WeekSummary) []Line {
	lines := make([]Line, 0, 24)
	days := ws.Block.Days
	if len(days) == 0 {
		return append(lines, Line{Text: "This week has no plan days."})
	}

	dateLine := fmt.Sprintf("%s · week %d of %d · %s - %s",
		ws.PlanName, ws.Week+1, ws.Weeks, days[0].Display, days[len(days)-1].Display)
	lines = append(lines,
		Line{Text: dateLine, Kind: LineMeta},
		Line{Text: ""},
	)

	planned := FormatVolume(ws.Stats.Total)
	if planned == "" {
		planned = "rest"
	}
	lines = append(lines, Line{Text: fmt.Sprintf("Planned: %s · %d sessions", planned, ws.Stats.Sessions)})

	done := FormatVolume(ws.Done)
	if done == "" {
		lines = append(lines, Line{Text: "Done: nothing logged yet"})
	} else {
		line := fmt.Sprintf("Done: %s · %d workouts", done, len(ws.Completed))
		if ws.Stats.Total.Km > 0 {
			line += fmt.Sprintf(" (%d%%)", int(ws.Done.Km/ws.Stats.Total.Km*100))
		}
		lines = append(lines, Line{Text: line, Kind: LineDone})
	}

	if missed := missedSessions(days, ws.Completed); len(missed) > 0 {
		lines = append(lines,
			Line{Text: ""},
			Line{Text: "MISSED", Kind: LineSection},
		)
		for _, m := range missed {
			lines = append(lines, Line{Text: "  " + m})
		}
	}

	if ws.Insight != "" {
		lines = append(lines,
			Line{Text: ""},
			Line{Text: "COACH", Kind: LineSection},
		)
		for _, line := range strings.Split(strings.TrimSpace(ws.Insight), "\n") {
			lines = append(lines, Line{Text: line})
		}
	}

	return lines
}

// missedSessions lists past training days with no workout logged.
func missedSessions(days []plan.ScheduledDay, logs []*profile.WorkoutLog) []string {
	logged := make(map[string]bool, len(logs))
	for _, w := range logs {
		logged[dateutil.FormatDate(w.Date)] = true
	}

	var out []string
	for _, d := range days {
		if !d.IsPast || d.Record.IsRest() || logged[dateutil.FormatDate(d.Date)] {
			continue
		}
		labels := make([]string, 0, len(d.Record.Activities))
		for _, a := range d.Record.Activities {
			if !a.IsRest() {
				labels = append(labels, a.Label())
			}
		}
		out = append(out, fmt.Sprintf("%s: %s", d.Display, strings.Join(labels, " + ")))
	}
	return out
}

// BuildWeekSummaryCopyText renders week summary lines to plain text for copying.
func BuildWeekSummaryCopyText(lines []Line) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, line.Text)
	}
	return strings.Join(parts, "\n")
}
