package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/tui/commands"
	"github.com/javiermolinar/trote/internal/tui/input"
	"github.com/javiermolinar/trote/internal/tui/theme"
)

func (m Model) handlePromptSubmit(value string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(value) == "" {
		return m, nil
	}
	name, args, err := input.ParseCommand(value)
	if err != nil {
		m.statusMsg = err.Error()
		return m, nil
	}
	trace("command", "name", name, "args", args)

	switch name {
	case "/log":
		return m.submitLog(args)

	case "/week":
		if m.view == nil {
			m.statusMsg = "No active plan"
			return m, nil
		}
		week, err := input.ParseWeek(args, len(m.view.Weeks))
		if err != nil {
			m.statusMsg = err.Error()
			return m, nil
		}
		m.week = week
		m.clampCursor()
		trace("cursor", "week", m.week, "day", m.day, "by", "prompt")
		return m, nil

	case "/activate":
		if len(args) != 1 {
			m.statusMsg = "usage: /activate <path>"
			return m, nil
		}
		m.statusMsg = "Activating " + args[0] + "..."
		return m, commands.ActivatePlan(m.plans, m.profiles, m.config.Athlete.UserID, args[0],
			m.config.Athlete.StartWeekday, m.now())

	case "/review":
		return m.reviewWeek()

	case "/theme":
		if len(args) != 1 || !theme.IsAvailable(args[0]) {
			m.statusMsg = fmt.Sprintf("Themes: %v", theme.Available())
			return m, nil
		}
		t, err := theme.Load(args[0])
		if err != nil {
			m.statusMsg = err.Error()
			return m, nil
		}
		m.theme = t
		m.styles = NewStyles(t)
		m.config.UI.Theme = args[0]
		m.statusMsg = "Theme: " + args[0]
		return m, nil

	default:
		m.statusMsg = fmt.Sprintf("Unknown command: %s", name)
		return m, nil
	}
}

// submitLog logs a workout on the selected plan day, or on today when no
// plan is active.
func (m Model) submitLog(args []string) (tea.Model, tea.Cmd) {
	parsed, err := input.ParseLogArgs(args)
	if err != nil {
		m.statusMsg = err.Error()
		return m, nil
	}

	entry := commands.LogEntry{
		UserID:  m.config.Athlete.UserID,
		Km:      parsed.Km,
		Seconds: parsed.Seconds,
		Notes:   parsed.Notes,
		Now:     m.now(),
	}
	if day, ok := m.selectedDay(); ok {
		if day.Date.After(m.now()) {
			m.statusMsg = "Cannot log a workout on a future day"
			return m, nil
		}
		entry.Day = day
		entry.PlanPath = m.view.Plan.Path
	} else {
		entry.Day = plan.ScheduledDay{Date: m.now()}
	}
	m.statusMsg = "Saving..."
	return m, commands.LogWorkout(m.profiles, entry)
}
