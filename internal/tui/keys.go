package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/trote/internal/summary"
	"github.com/javiermolinar/trote/internal/tui/commands"
	"github.com/javiermolinar/trote/internal/tui/input"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	trace("key", "key", msg.String())

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Day navigation crosses into the neighbouring week at the edges.
	case "h", "left":
		m.moveDay(-1)
	case "l", "right":
		m.moveDay(1)

	// Week navigation
	case "H", "[", "shift+left":
		m.moveWeek(-1)
	case "L", "]", "shift+right":
		m.moveWeek(1)
	case "t":
		m.focusToday()

	case "r":
		m.loading = true
		return m, m.loadPlan()

	case "enter":
		if _, ok := m.selectedDay(); ok {
			m.openModal(ModalDay)
		}
	case "s":
		return m.showWeekSummary()
	case "i":
		return m.reviewWeek()
	case "a":
		return m.openPrompt("/log ")
	case "/":
		return m.openPrompt("/")
	case "?":
		m.openModal(ModalHelp)
	}
	return m, nil
}

func (m *Model) moveDay(delta int) {
	b, ok := m.block()
	if !ok {
		return
	}
	next := m.day + delta
	switch {
	case next < 0:
		if m.week == 0 {
			return
		}
		m.week--
		prev, _ := m.view.Week(m.week)
		m.day = len(prev.Days) - 1
	case next >= len(b.Days):
		if m.week >= len(m.view.Weeks)-1 {
			return
		}
		m.week++
		m.day = 0
	default:
		m.day = next
	}
	trace("cursor", "week", m.week, "day", m.day, "by", "day")
}

func (m *Model) moveWeek(delta int) {
	if m.view == nil {
		return
	}
	m.week += delta
	m.clampCursor()
	trace("cursor", "week", m.week, "day", m.day, "by", "week")
}

func (m Model) openPrompt(value string) (tea.Model, tea.Cmd) {
	m.setMode(ModePrompt, "prompt")
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	m.prompt.Focus()
	return m, textinput.Blink
}

func (m Model) showWeekSummary() (tea.Model, tea.Cmd) {
	if _, ok := m.block(); !ok {
		m.statusMsg = "No active plan"
		return m, nil
	}
	m.openWeekSummary(summary.SummarizeWeek(m.view, m.week, m.logs))
	return m, nil
}

func (m Model) reviewWeek() (tea.Model, tea.Cmd) {
	if _, ok := m.block(); !ok {
		m.statusMsg = "No active plan"
		return m, nil
	}
	if m.config.LLM.Model == "" {
		m.statusMsg = "Set llm.model with 'trote config' to get coaching notes"
		return m, nil
	}
	m.statusMsg = "Asking the coach..."
	return m, commands.ReviewWeek(m.config, m.view, m.week, m.logs)
}

// handlePromptKeys handles keys in prompt mode.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.setMode(ModeNormal, "prompt cancelled")
		m.prompt.Blur()
		m.prompt.SetValue("")
		return m, nil

	case "enter":
		value := m.prompt.Value()
		m.setMode(ModeNormal, "prompt submitted")
		m.prompt.Blur()
		m.prompt.SetValue("")
		return m.handlePromptSubmit(value)

	case "tab":
		if completion, ok := input.PromptAutocomplete(m.prompt.Value(), input.Commands); ok {
			m.prompt.SetValue(completion)
			m.prompt.CursorEnd()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleModalKeys handles keys while a modal is open.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalWeekSummary:
		return m.handleWeekSummaryKeys(msg)
	case ModalDay:
		switch msg.String() {
		case "a":
			m.closeModal()
			return m.openPrompt("/log ")
		case "esc", "enter", "q":
			m.closeModal()
		}
	default:
		switch msg.String() {
		case "esc", "enter", "q", "?":
			m.closeModal()
		}
	}
	return m, nil
}

func (m Model) handleWeekSummaryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		if m.weekSummaryCopyText == "" {
			m.statusMsg = "Nothing to copy"
			return m, nil
		}
		return m, commands.CopyToClipboard(m.weekSummaryCopyText)
	case "i":
		m.closeModal()
		return m.reviewWeek()
	case "esc", "enter", "q":
		m.closeModal()
	}
	return m, nil
}
