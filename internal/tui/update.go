package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/trote/internal/summary"
	"github.com/javiermolinar/trote/internal/tui/commands"
	"github.com/javiermolinar/trote/internal/tui/view"
)

const statusDuration = 3 * time.Second

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.prompt.Width = max(m.width-10, 10)
		return m, nil

	case commands.PlanLoadedMsg:
		first := m.view == nil
		m.view = msg.View
		m.logs = msg.Logs
		m.noPlan = false
		m.loading = false
		if first {
			m.focusToday()
		} else {
			m.clampCursor()
		}
		traceView(m.view, len(m.logs))
		return m, nil

	case commands.NoPlanMsg:
		m.view = nil
		m.logs = nil
		m.noPlan = true
		m.loading = false
		return m, nil

	case commands.ErrMsg:
		trace("error", "err", msg.Err.Error())
		m.err = msg.Err
		m.loading = false
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = m.now().Add(5 * time.Second)
		return m, nil

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = m.now().Add(statusDuration)
		return m, commands.ClearStatusAfter(statusDuration)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil

	case commands.WeekSummaryMsg:
		m.openWeekSummary(msg.Summary)
		m.statusMsg = ""
		return m, nil

	case commands.WorkoutLoggedMsg:
		m.statusMsg = fmt.Sprintf("Logged %.1f km · total %.1f km · streak %d days",
			msg.Log.DistanceKm, msg.Profile.TotalDistance, msg.Profile.StreakDays)
		m.statusTime = m.now().Add(statusDuration)
		return m, tea.Batch(m.loadPlan(), commands.ClearStatusAfter(statusDuration))

	case commands.PlanActivatedMsg:
		m.view = nil
		m.loading = true
		m.statusMsg = fmt.Sprintf("Active plan: %s, starting %s", msg.Path, msg.Start)
		m.statusTime = m.now().Add(statusDuration)
		return m, tea.Batch(m.loadPlan(), commands.ClearStatusAfter(statusDuration))
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

// setMode switches the interaction mode and logs the change.
func (m *Model) setMode(mode Mode, reason string) {
	trace("mode", "from", m.mode.String(), "to", mode.String(), "reason", reason)
	m.mode = mode
	if mode != ModeModal {
		m.modalType = ModalNone
	}
}

func (m *Model) openModal(t ModalType) {
	m.setMode(ModeModal, "modal")
	m.modalType = t
}

func (m *Model) closeModal() {
	m.setMode(ModeNormal, "close modal")
	m.weekSummary = nil
	m.weekSummaryLines = nil
	m.weekSummaryCopyText = ""
}

func (m *Model) openWeekSummary(ws *summary.WeekSummary) {
	m.weekSummary = ws
	m.weekSummaryLines = view.BuildWeekSummaryLines(ws)
	m.weekSummaryCopyText = view.BuildWeekSummaryCopyText(m.weekSummaryLines)
	m.openModal(ModalWeekSummary)
}
