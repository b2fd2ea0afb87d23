package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/javiermolinar/trote/internal/dateutil"
	"github.com/javiermolinar/trote/internal/pace"
	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
)

const coachSystemPrompt = `You are a concise running coach. Output ONLY the exact format shown - no markdown, no extra text.`

const coachPromptTemplate = `Review this training week and output EXACTLY this format (no markdown, no code blocks):

FOCUS: [ 2-4 word theme of the week ]

✅ DONE: One sentence comparing completed and planned volume.
⚠️  MISSED: Name the key sessions that were skipped, if any.
🦵 LOAD: One sentence about intensity balance (easy vs quality days).

NEXT:
➜  First specific advice for the remaining days or next week.
➜  Second specific advice.

Data Format:
- "planned" lines show the prescribed session, target pace and estimated volume
- "done" lines show logged workouts for that day
- [today] and [past] mark where the runner is in the week

Weekly Data:
%s

Rules:
- Use the exact emoji prefixes shown (✅, ⚠️, 🦵, ➜)
- Keep each line under 70 characters
- Be specific with distances and paces from the data
- If no issue exists for a category, omit that line
- Output plain text only, no markdown formatting`

// WeekReview is one week of a plan with the workouts logged during it.
type WeekReview struct {
	PlanName string
	Week     int // zero based
	Weeks    int
	Days     []plan.ScheduledDay
	Stats    plan.Stats
	Resolve  plan.ResolveFunc
	Logs     []*profile.WorkoutLog
}

// Coach writes short coaching notes about a training week.
type Coach struct {
	client Client
}

// NewCoach creates a Coach with the given LLM client.
func NewCoach(client Client) *Coach {
	return &Coach{client: client}
}

// ReviewWeek sends the week to the LLM and returns its coaching note.
func (c *Coach) ReviewWeek(ctx context.Context, r WeekReview) (string, error) {
	prompt := fmt.Sprintf(coachPromptTemplate, formatWeek(r))
	return c.client.Chat(ctx, []Message{
		{Role: RoleSystem, Content: coachSystemPrompt},
		{Role: RoleUser, Content: prompt},
	})
}

// formatWeek renders the week in the CLI style for the prompt.
func formatWeek(r WeekReview) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Plan: %s, week %d of %d\n", r.PlanName, r.Week+1, r.Weeks)
	total := r.Stats.Total.Rounded()
	fmt.Fprintf(&sb, "Planned: %.1f km, %.0f min, %d sessions\n", total.Km, total.Minutes, r.Stats.Sessions)

	logsByDay := map[string][]*profile.WorkoutLog{}
	for _, w := range r.Logs {
		key := dateutil.FormatDate(w.Date)
		logsByDay[key] = append(logsByDay[key], w)
	}

	for _, d := range r.Days {
		sb.WriteString("\n")
		sb.WriteString(d.Display)
		switch {
		case d.IsToday:
			sb.WriteString("  [today]")
		case d.IsPast:
			sb.WriteString("  [past]")
		}
		sb.WriteString("\n")

		if d.Record.IsRest() {
			sb.WriteString("  planned  Rest\n")
		}
		for _, a := range d.Record.Activities {
			if a.IsRest() {
				continue
			}
			v := plan.ActivityVolume(a, r.Resolve).Rounded()
			fmt.Fprintf(&sb, "  planned  %s @ %s  (%.1f km, %.0f min)\n", a.Label(), r.Resolve(a), v.Km, v.Minutes)
		}
		if d.Record.Note != "" {
			fmt.Fprintf(&sb, "  note     %s\n", d.Record.Note)
		}

		for _, w := range logsByDay[dateutil.FormatDate(d.Date)] {
			fmt.Fprintf(&sb, "  done     %.1f km in %s (%s/km)\n", w.DistanceKm, formatDuration(w.DurationSec/60), displayPace(w))
		}
	}

	return sb.String()
}

func displayPace(w *profile.WorkoutLog) string {
	if w.Pace != "" {
		return w.Pace
	}
	return pace.FromSeconds(pace.PerKm(w.DistanceKm, w.DurationSec))
}

// formatDuration formats minutes as a human-readable duration.
func formatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}
