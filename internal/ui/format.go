package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/javiermolinar/trote/internal/dateutil"
	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
)

const ruleWidth = 74

func rule() string {
	return strings.Repeat("─", ruleWidth)
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
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
	return fmt.Sprintf("%dh%02dm", hours, mins)
}

// FormatVolume renders a volume as "42.3 km · 3h50m".
func FormatVolume(v plan.Volume) string {
	r := v.Rounded()
	return fmt.Sprintf("%.1f km · %s", r.Km, FormatDuration(int(r.Minutes)))
}

// ProgressBar shows done against planned kilometres.
func ProgressBar(done, planned float64, width int) string {
	if planned <= 0 {
		return "[" + strings.Repeat("░", width) + "]"
	}
	ratio := min(done/planned, 1)
	filled := int(ratio * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %s", formatStats(bar), formatStats(fmt.Sprintf("%d%%", int(done/planned*100))))
}

// logsByDate groups workout logs by calendar date.
func logsByDate(logs []*profile.WorkoutLog) map[string][]*profile.WorkoutLog {
	out := make(map[string][]*profile.WorkoutLog, len(logs))
	for _, w := range logs {
		key := dateutil.FormatDate(w.Date)
		out[key] = append(out[key], w)
	}
	return out
}

// WeekPrint is what printWeek needs to render one block.
type WeekPrint struct {
	PlanName string
	Weeks    int
	Block    plan.WeeklyBlock
	Stats    plan.Stats
	Resolve  plan.ResolveFunc
	Logs     []*profile.WorkoutLog
}

// printWeek renders a weekly block with resolved paces, per-day volume and
// the workouts logged on each day.
func printWeek(w io.Writer, wp WeekPrint) {
	b := wp.Block
	if len(b.Days) == 0 {
		return
	}
	first, last := b.Days[0], b.Days[len(b.Days)-1]
	header := fmt.Sprintf("%s · WEEK %d of %d: %s - %s", wp.PlanName, b.Index+1, wp.Weeks, first.Display, last.Display)
	fmt.Fprintf(w, "\n  %s\n", formatHeader(header))
	fmt.Fprintln(w, rule())

	byDate := logsByDate(wp.Logs)
	var done plan.Volume
	for i, d := range b.Days {
		if i > 0 {
			fmt.Fprintln(w)
		}
		marker := ""
		if d.IsToday {
			marker = "  " + formatStats("▸ today")
		}
		fmt.Fprintf(w, "  %s%s\n", formatHeader(d.Display), marker)

		for _, a := range d.Record.Activities {
			printActivity(w, a, wp.Resolve)
		}
		if d.Record.Note != "" {
			fmt.Fprintf(w, "      %s\n", formatMuted(d.Record.Note))
		}
		for _, l := range byDate[dateutil.FormatDate(d.Date)] {
			done = done.Add(plan.Volume{Km: l.DistanceKm, Minutes: float64(l.DurationSec) / 60})
			fmt.Fprintf(w, "      %s\n", formatStats(fmt.Sprintf("✓ %.1f km in %s (%s/km)",
				l.DistanceKm, FormatDuration(l.DurationSec/60), l.Pace)))
		}
	}

	fmt.Fprintln(w, rule())
	fmt.Fprintf(w, "  Planned: %s  |  Sessions: %d\n", FormatVolume(wp.Stats.Total), wp.Stats.Sessions)
	if done.Km > 0 || done.Minutes > 0 {
		fmt.Fprintf(w, "  Done:    %s  %s\n", FormatVolume(done), ProgressBar(done.Km, wp.Stats.Total.Km, 20))
	}
}

func printActivity(w io.Writer, a plan.Activity, resolve plan.ResolveFunc) {
	if a.IsRest() {
		fmt.Fprintf(w, "      %s\n", formatActivity(a.Type, a.Label()))
		return
	}
	pace := resolve(a)
	v := plan.ActivityVolume(a, resolve)
	label := fmt.Sprintf("%-32s", a.Label())
	fmt.Fprintf(w, "      %s @ %-5s  %s\n", formatActivity(a.Type, label), pace, formatMuted(FormatVolume(v)))
	if a.Note != "" {
		fmt.Fprintf(w, "        %s\n", formatMuted(a.Note))
	}
}

// printWorkouts lists workout logs, most recent first.
func printWorkouts(w io.Writer, logs []*profile.WorkoutLog) {
	for _, l := range logs {
		link := ""
		if l.PlanDayIndex != nil {
			link = formatMuted(fmt.Sprintf("  %s day %d", l.PlanPath, *l.PlanDayIndex+1))
		}
		notes := ""
		if l.Notes != "" {
			notes = "  " + l.Notes
		}
		fmt.Fprintf(w, "  %s  %6.1f km  %7s  %6s/km  %-7s%s%s\n",
			dateutil.FormatDate(l.Date), l.DistanceKm, FormatDuration(l.DurationSec/60), l.Pace,
			l.Source, link, notes)
	}
}

// PrintInsightWrapped formats and prints insight text preserving structure.
func PrintInsightWrapped(w io.Writer, text string, width int) {
	text = stripMarkdownCodeBlocks(text)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			fmt.Fprintln(w)
			continue
		}

		prefix, content, contentWidth, isHeader := parseInsightLine(trimmed, width)
		if isHeader {
			fmt.Fprintln(w)
			fmt.Fprintln(w, formatHeader("  "+content))
			continue
		}
		wrapAndPrint(w, content, prefix, contentWidth)
	}
}

// parseInsightLine returns the prefix, content and width for a line of
// coaching output and whether it is a header.
func parseInsightLine(trimmed string, width int) (prefix, content string, contentWidth int, isHeader bool) {
	prefix = "  "
	content = trimmed
	contentWidth = width - 2

	switch {
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
		prefix = "    • "
		content = strings.TrimPrefix(strings.TrimPrefix(trimmed, "- "), "* ")
		contentWidth = width - 6
	case strings.HasPrefix(trimmed, "#"):
		content = strings.TrimLeft(trimmed, "# ")
		isHeader = true
	case strings.HasPrefix(trimmed, "FOCUS:"):
		content = strings.TrimSpace(strings.TrimPrefix(trimmed, "FOCUS:"))
		isHeader = true
	case strings.HasPrefix(trimmed, ">"):
		content = strings.TrimPrefix(trimmed, "> ")
		prefix = "  │ "
		contentWidth = width - 4
	}
	return prefix, content, contentWidth, isHeader
}

// wrapAndPrint wraps text to width and prints it with the given prefix.
func wrapAndPrint(w io.Writer, text, prefix string, width int) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return
	}
	continuation := strings.Repeat(" ", len([]rune(prefix)))
	current := prefix
	line := ""
	for _, word := range words {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			fmt.Fprintln(w, formatInsight(current+line))
			current = continuation
			line = word
		}
	}
	fmt.Fprintln(w, formatInsight(current+line))
}

// stripMarkdownCodeBlocks drops ``` fence lines, keeping what they wrap.
func stripMarkdownCodeBlocks(text string) string {
	lines := strings.Split(text, "\n")
	result := lines[:0]
	for _, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), "```") {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
