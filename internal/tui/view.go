package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/trote/internal/dateutil"
	"github.com/javiermolinar/trote/internal/tui/input"
	"github.com/javiermolinar/trote/internal/tui/view"
)

const (
	minCardWidth     = 14
	minInnerWidth    = 30
	minInnerHeight   = 10
	fullFooterHeight = 22 // terminal rows below which the footer is compacted
	progressWidth    = 12
	maxPromptLines   = 3
)

// View renders the TUI.
func (m Model) View() string {
	screen := view.Screen{
		Width:   m.width,
		Height:  m.height,
		Base:    m.renderAppContent(),
		ModalBg: m.styles.ModalBgColor,
	}
	if m.mode == ModeModal && m.modalType != ModalNone {
		screen.Modal = m.renderModal()
	}
	return view.Compose(screen)
}

func (m Model) renderAppContent() string {
	frameW, frameH := m.styles.AppStyle.GetFrameSize()
	innerW := m.width - frameW
	innerH := m.height - frameH
	if innerW < minInnerWidth || innerH < minInnerHeight {
		return "Terminal too small"
	}

	header := m.renderHeader(innerW)
	footer := m.renderFooter(innerW)
	bodyH := max(innerH-lipgloss.Height(header)-lipgloss.Height(footer), 1)
	body := m.renderBody(innerW, bodyH)

	content := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	app := m.styles.AppStyle.Render(content)
	return view.PadLinesWithBackground(app, m.width, m.height, m.styles.colorBg)
}

func (m Model) renderHeader(width int) string {
	var title, meta string
	switch {
	case m.view != nil:
		v := m.view
		title = "TROTE · " + v.Plan.Name
		if b, ok := m.block(); ok && len(b.Days) > 0 {
			meta = fmt.Sprintf("Week %d of %d · %s - %s · VDOT %d · started %s",
				m.week+1, len(v.Weeks), b.Days[0].Display, b.Days[len(b.Days)-1].Display,
				v.Param, dateutil.FormatDate(v.Start))
		}
	case m.loading:
		title = "TROTE"
		meta = "Loading..."
	default:
		title = "TROTE"
		meta = "No active plan"
	}
	lines := m.styles.TitleStyle.MaxWidth(width).Render(title) + "\n" + m.styles.MetaStyle.MaxWidth(width).Render(meta)
	return view.PlaceBox(width, 3, lipgloss.Top, lines, m.styles.colorBg)
}

func (m Model) renderBody(width, height int) string {
	b, ok := m.block()
	if !ok {
		msg := "Loading..."
		if m.noPlan {
			msg = "No active plan.\n\nType /activate <path> or run 'trote plans' to pick one."
		}
		placed := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			m.styles.EmptyStyle.Render(msg), lipgloss.WithWhitespaceBackground(m.styles.colorBg))
		return view.PadLinesWithBackground(placed, width, height, m.styles.colorBg)
	}

	stats := m.view.Stats(m.week)
	resolve := m.view.Resolver.Func()
	card := func(i, w int) string {
		d := b.Days[i]
		return view.RenderDayCard(view.DayCard{
			Day:      d,
			Volume:   stats.Days[i],
			Resolve:  resolve,
			Logs:     m.logsOn(d.Date),
			Selected: i == m.day,
		}, m.styles.Day, w, height)
	}

	cardW := width / len(b.Days)
	if cardW < minCardWidth {
		return view.PlaceBox(width, height, lipgloss.Top, card(m.day, width), m.styles.colorBg)
	}
	cards := make([]string, len(b.Days))
	for i := range b.Days {
		cards[i] = card(i, cardW)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	return view.PlaceBox(width, height, lipgloss.Top, row, m.styles.colorBg)
}

func (m Model) renderFooter(width int) string {
	clip := lipgloss.NewStyle().MaxWidth(width)
	return view.RenderFooter(view.Footer{
		Width:  width,
		Full:   m.height >= fullFooterHeight,
		Stats:  clip.Render(m.renderStatsBar()),
		Legend: clip.Render(m.renderLegend()),
		Prompt: m.renderPromptBox(width),
		Status: clip.Render(m.styles.StatusStyle.Render(m.statusMsgOrDefault())),
		Help:   clip.Render(m.styles.HelpStyle.Render(m.renderHelp())),
		Bg:     m.styles.colorBg,
	})
}

func (m Model) renderPromptBox(width int) string {
	return view.RenderPrompt(view.Prompt{
		Value:    m.prompt.Value(),
		Active:   m.mode == ModePrompt,
		Commands: input.Commands,
		MaxRows:  maxPromptLines,
	}, m.styles.PromptStyle, width)
}

// statusMsgOrDefault returns the status message or a space to preserve layout.
func (m Model) statusMsgOrDefault() string {
	if m.statusMsg == "" {
		return " "
	}
	return m.statusMsg
}

// renderStatsBar shows planned and done volume for the week and the
// selected day.
func (m Model) renderStatsBar() string {
	if m.view == nil {
		return m.styles.StatsStyle.Render(" ")
	}
	ws := m.weekProgress()
	parts := []string{
		"Week " + m.styles.StatsValueStyle.Render(orDash(view.FormatVolume(ws.Stats.Total))),
		fmt.Sprintf("%d sessions", ws.Stats.Sessions),
		"Done " + m.styles.StatsValueStyle.Render(orDash(view.FormatVolume(ws.Done))),
	}
	if bar := view.ProgressBar(ws.Done.Km, ws.Stats.Total.Km, progressWidth); bar != "" {
		parts = append(parts, m.styles.ProgressStyle.Render(bar))
	}
	if day, ok := m.selectedDay(); ok {
		parts = append(parts, fmt.Sprintf("Day %d", day.Index+1))
	}
	sep := m.styles.StatsStyle.Render("  │  ")
	for i, p := range parts {
		parts[i] = m.styles.StatsStyle.Render(p)
	}
	return strings.Join(parts, sep)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// renderLegend renders the legend for session kinds.
func (m Model) renderLegend() string {
	base := lipgloss.NewStyle().Foreground(m.styles.colorFg).Background(m.styles.colorBg)
	easy := base.Foreground(m.styles.colorEasy).Bold(true)
	quality := base.Foreground(m.styles.colorQuality).Bold(true)
	done := base.Foreground(m.styles.colorDone).Bold(true)
	today := base.Foreground(m.styles.colorCurrent).Bold(true)

	var legend strings.Builder
	legend.WriteString(base.Render("Legend: "))
	legend.WriteString(easy.Render("■ easy"))
	legend.WriteString(base.Render("  "))
	legend.WriteString(quality.Render("■ quality"))
	legend.WriteString(base.Render("  "))
	legend.WriteString(done.Render("✓ logged"))
	legend.WriteString(base.Render("  "))
	legend.WriteString(today.Render("• today"))
	return legend.String()
}

// renderHelp renders the help bar.
func (m Model) renderHelp() string {
	switch m.mode {
	case ModePrompt:
		return "Enter: submit | Tab: complete | Esc: cancel"
	case ModeModal:
		switch m.modalType {
		case ModalWeekSummary:
			return "y: copy | i: coach | Enter/Esc: close"
		case ModalDay:
			return "a: log workout | Enter/Esc: close"
		default:
			return "Esc: close"
		}
	default:
		return "h/l: day | H/L: week | t: today | Enter: details | a: log | s: summary | i: coach | /: command | ?: help | q: quit"
	}
}
