package tui

import (
	"fmt"

	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/summary"
	"github.com/javiermolinar/trote/internal/tui/view"
)

const weekSummaryFallbackWidth = 60

// renderModal renders the current modal.
func (m Model) renderModal() string {
	switch m.modalType {
	case ModalWeekSummary:
		return m.renderWeekSummaryModal()
	case ModalDay:
		return m.renderDayModal()
	case ModalHelp:
		return m.renderHelpModal()
	default:
		return ""
	}
}

// weekProgress summarises the week under the cursor.
func (m Model) weekProgress() *summary.WeekSummary {
	return summary.SummarizeWeek(m.view, m.week, m.logs)
}

func (m Model) renderWeekSummaryModal() string {
	if m.weekSummary == nil {
		return ""
	}
	title := fmt.Sprintf("Week %d Summary", m.weekSummary.Week+1)
	return view.RenderModal(view.Modal{
		Title: title,
		Body:  m.modalBody(m.weekSummaryLines),
		Keys:  []string{"[y] Copy", "[i] Coach", "[Esc] Close"},
	}, m.modalStyles())
}

func (m Model) modalBody(lines []view.Line) string {
	return view.RenderLines(lines, view.LineStyles{
		Body:    m.styles.ModalBodyStyle,
		Meta:    m.styles.ModalMetaStyle,
		Section: m.styles.ModalSectionTitleStyle,
		Done:    m.styles.ModalDoneStyle,
	}, view.ModalContentWidth(m.styles.ModalStyle, weekSummaryFallbackWidth))
}

func (m Model) renderDayModal() string {
	d, ok := m.selectedDay()
	if !ok {
		return ""
	}
	return view.RenderModal(view.Modal{
		Title: d.Display,
		Body:  m.modalBody(m.dayLines(d)),
		Keys:  []string{"[a] Log", "[Esc] Close"},
	}, m.modalStyles())
}

// dayLines describes a plan day: each session with its pace and volume, the
// notes, and the workouts logged on it.
func (m Model) dayLines(d plan.ScheduledDay) []view.Line {
	resolve := m.view.Resolver.Func()
	lines := []view.Line{
		{Text: fmt.Sprintf("%s · day %d · week %d", m.view.Plan.Name, d.Index+1, m.week+1), Kind: view.LineMeta},
		{Text: ""},
	}

	for _, a := range d.Record.Activities {
		lines = append(lines, view.Line{Text: a.Type.Title(), Kind: view.LineSection})
		if a.IsRest() {
			continue
		}
		if desc := a.Describe(); desc != "" {
			lines = append(lines, view.Line{Text: "  " + desc})
		}
		detail := "  @ " + orDash(resolve(a)) + "/km"
		if v := view.FormatVolume(plan.ActivityVolume(a, resolve)); v != "" {
			detail += " · " + v
		}
		lines = append(lines, view.Line{Text: detail, Kind: view.LineMeta})
		if a.Note != "" {
			lines = append(lines, view.Line{Text: "  " + a.Note, Kind: view.LineMeta})
		}
	}
	if d.Record.Note != "" {
		lines = append(lines, view.Line{Text: ""}, view.Line{Text: d.Record.Note})
	}

	logs := m.logsOn(d.Date)
	if len(logs) > 0 {
		lines = append(lines,
			view.Line{Text: ""},
			view.Line{Text: "LOGGED", Kind: view.LineSection},
		)
	}
	for _, w := range logs {
		text := fmt.Sprintf("  ✓ %.1f km in %s", w.DistanceKm, view.FormatDuration(w.DurationSec/60))
		if w.Pace != "" {
			text += fmt.Sprintf(" (%s/km)", w.Pace)
		}
		text += " · " + string(w.Source)
		if w.Notes != "" {
			text += " · " + w.Notes
		}
		lines = append(lines, view.Line{Text: text, Kind: view.LineDone})
	}
	if len(logs) == 0 && d.IsPast && !d.Record.IsRest() {
		lines = append(lines, view.Line{Text: ""}, view.Line{Text: "Not logged", Kind: view.LineMeta})
	}
	return lines
}

var helpLines = []view.Line{
	{Text: "NAVIGATION", Kind: view.LineSection},
	{Text: "  h/l ←/→      previous/next day"},
	{Text: "  H/L [/]      previous/next week"},
	{Text: "  t            jump to today"},
	{Text: "  r            reload"},
	{Text: ""},
	{Text: "ACTIONS", Kind: view.LineSection},
	{Text: "  Enter        day details"},
	{Text: "  a            log a workout on the selected day"},
	{Text: "  s            week summary"},
	{Text: "  i            coaching note for the week"},
	{Text: "  /            command prompt"},
	{Text: ""},
	{Text: "COMMANDS", Kind: view.LineSection},
	{Text: "  /log <km> [HH:MM:SS] [notes]"},
	{Text: "  /week <n>  /activate <path>  /review  /theme <name>"},
}

func (m Model) renderHelpModal() string {
	return view.RenderModal(view.Modal{
		Title: "Help",
		Body:  m.modalBody(helpLines),
		Keys:  []string{"[Esc] Close"},
	}, m.modalStyles())
}
