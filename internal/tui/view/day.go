package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
)

// DayCard is one scheduled day with what was logged on it.
type DayCard struct {
	Day      plan.ScheduledDay
	Volume   plan.Volume
	Resolve  plan.ResolveFunc
	Logs     []*profile.WorkoutLog
	Selected bool
}

// DayCardStyles groups the styles a day card is drawn with.
type DayCardStyles struct {
	Card        lipgloss.Style
	Selected    lipgloss.Style
	Header      lipgloss.Style
	Today       lipgloss.Style
	Past        lipgloss.Style
	Rest        lipgloss.Style
	Easy        lipgloss.Style
	Quality     lipgloss.Style
	PastEasy    lipgloss.Style
	PastQuality lipgloss.Style
	Muted       lipgloss.Style
	Done        lipgloss.Style
}

// IsQuality reports whether an activity is a hard session.
func IsQuality(t plan.ActivityType) bool {
	switch t {
	case plan.TypeThreshold, plan.TypeInterval, plan.TypeRepetition, plan.TypeMarathon, plan.TypeRace:
		return true
	}
	return false
}

// DayCardLines returns the plain text content of a card wrapped to width,
// with the style each line should use.
func DayCardLines(card DayCard, styles DayCardStyles, width int) []string {
	d := card.Day
	header := d.Display
	headerStyle := styles.Header
	switch {
	case d.IsToday:
		header += " •"
		headerStyle = styles.Today
	case d.IsPast:
		headerStyle = styles.Past
	}

	lines := []string{headerStyle.Render(truncate(header, width))}
	easy, quality := styles.Easy, styles.Quality
	if d.IsPast {
		easy, quality = styles.PastEasy, styles.PastQuality
	}
	for _, a := range d.Record.Activities {
		style := easy
		switch {
		case a.IsRest():
			style = styles.Rest
		case IsQuality(a.Type), IsQuality(a.Intensity):
			style = quality
		}
		for _, l := range Wrap(a.Label(), width, width) {
			lines = append(lines, style.Render(l))
		}
		if a.IsRest() || card.Resolve == nil {
			continue
		}
		if p := card.Resolve(a); p != "" {
			lines = append(lines, styles.Muted.Render(truncate("@ "+p+"/km", width)))
		}
	}
	if v := FormatVolume(card.Volume); v != "" {
		lines = append(lines, styles.Muted.Render(truncate(v, width)))
	}
	if d.Record.Note != "" {
		for _, l := range Wrap(d.Record.Note, width, width) {
			lines = append(lines, styles.Muted.Render(l))
		}
	}
	for _, w := range card.Logs {
		text := fmt.Sprintf("✓ %.1f km", w.DistanceKm)
		if w.Pace != "" {
			text += " " + w.Pace
		}
		lines = append(lines, styles.Done.Render(truncate(text, width)))
	}
	return lines
}

// RenderDayCard draws a card of the given outer size.
func RenderDayCard(card DayCard, styles DayCardStyles, width, height int) string {
	style := styles.Card
	if card.Selected {
		style = styles.Selected
	}
	frameW, frameH := style.GetFrameSize()
	contentW := max(width-frameW, 1)
	contentH := max(height-frameH, 1)

	lines := DayCardLines(card, styles, contentW)
	if len(lines) > contentH {
		lines = lines[:contentH]
		lines[contentH-1] = styles.Muted.Render("…")
	}
	// Width and Height include padding but not the border.
	return style.
		Width(max(width-style.GetHorizontalBorderSize(), 1)).
		Height(max(height-style.GetVerticalBorderSize(), 1)).
		Render(strings.Join(lines, "\n"))
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
