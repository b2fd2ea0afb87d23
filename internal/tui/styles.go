package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/trote/internal/tui/theme"
	"github.com/javiermolinar/trote/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg      lipgloss.Color
	colorFg      lipgloss.Color
	colorFgMuted lipgloss.Color
	colorAccent  lipgloss.Color
	colorEasy    lipgloss.Color
	colorQuality lipgloss.Color
	colorDone    lipgloss.Color
	colorCurrent lipgloss.Color
	colorWarning lipgloss.Color

	TitleStyle lipgloss.Style
	MetaStyle  lipgloss.Style

	Day view.DayCardStyles

	StatsStyle      lipgloss.Style
	StatsValueStyle lipgloss.Style
	ProgressStyle   lipgloss.Style
	PromptStyle     lipgloss.Style
	StatusStyle     lipgloss.Style
	HelpStyle       lipgloss.Style
	EmptyStyle      lipgloss.Style

	ModalBackdropColor     lipgloss.Color
	ModalBgColor           lipgloss.Color
	ModalStyle             lipgloss.Style
	ModalHeaderStyle       lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalMetaStyle         lipgloss.Style
	ModalSectionTitleStyle lipgloss.Style
	ModalDoneStyle         lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style

	AppStyle lipgloss.Style
}

// NewStyles builds the styles for a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)

	s.colorBg = palette.Bg
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent
	s.colorEasy = palette.Easy
	s.colorQuality = palette.Quality
	s.colorDone = palette.Done
	s.colorCurrent = palette.Current
	s.colorWarning = palette.Warning

	base := lipgloss.NewStyle().Foreground(s.colorFg).Background(s.colorBg)

	s.TitleStyle = base.Bold(true).Foreground(s.colorAccent)
	s.MetaStyle = base.Foreground(s.colorFgMuted)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(palette.BgSelection).
		BorderBackground(s.colorBg).
		Background(s.colorBg).
		Foreground(s.colorFg).
		Padding(0, 1)
	s.Day = view.DayCardStyles{
		Card:     card,
		Selected: card.BorderForeground(s.colorAccent).Background(palette.SelectedBg),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(s.colorFg),
		Today:    lipgloss.NewStyle().Bold(true).Foreground(s.colorCurrent),
		Past:     lipgloss.NewStyle().Foreground(s.colorFgMuted),
		Rest:     lipgloss.NewStyle().Italic(true).Foreground(s.colorFgMuted),
		Easy: lipgloss.NewStyle().
			Foreground(palette.TextOnEasy).
			Background(palette.EasyBg),
		Quality: lipgloss.NewStyle().
			Bold(true).
			Foreground(palette.TextOnQuality).
			Background(palette.QualityBg),
		PastEasy: lipgloss.NewStyle().
			Foreground(s.colorFgMuted).
			Background(palette.EasyPastBg),
		PastQuality: lipgloss.NewStyle().
			Foreground(s.colorFgMuted).
			Background(palette.QualityPastBg),
		Muted: lipgloss.NewStyle().Foreground(s.colorFgMuted),
		Done:  lipgloss.NewStyle().Bold(true).Foreground(s.colorDone),
	}

	s.StatsStyle = base
	s.StatsValueStyle = base.Bold(true).Foreground(s.colorAccent)
	s.ProgressStyle = base.Foreground(s.colorDone)
	s.PromptStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(palette.BgSelection).
		BorderBackground(s.colorBg).
		Background(s.colorBg).
		Foreground(s.colorFg).
		Padding(0, 1)
	s.StatusStyle = base.Bold(true).Foreground(s.colorWarning)
	s.HelpStyle = base.Foreground(s.colorFgMuted)
	s.EmptyStyle = base.Foreground(s.colorFgMuted).Align(lipgloss.Center)

	modal := palette.Modal
	s.ModalBackdropColor = modal.Backdrop
	s.ModalBgColor = modal.Bg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.Border).
		Background(modal.Bg).
		Foreground(modal.Text).
		Padding(1, 1).
		Width(64).
		Align(lipgloss.Left)

	s.ModalHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modal.Bg).
		Padding(0, 1).
		Align(lipgloss.Center)

	s.ModalFooterStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(modal.Bg)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ModalMetaStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modal.Bg)

	s.ModalSectionTitleStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Bold(true).
		PaddingLeft(1).
		Background(modal.Bg)

	s.ModalDoneStyle = lipgloss.NewStyle().
		Foreground(s.colorDone).
		Bold(true).
		Background(modal.Bg)

	s.ModalButtonStyle = lipgloss.NewStyle().
		Background(modal.Panel).
		Foreground(modal.Text).
		Padding(0, 3)

	s.ModalButtonActiveStyle = lipgloss.NewStyle().
		Background(modal.Highlight).
		Foreground(modal.ReverseText).
		Padding(0, 3).
		Underline(true)

	s.AppStyle = lipgloss.NewStyle().
		Background(s.colorBg).
		PaddingTop(1).
		PaddingLeft(2).
		PaddingRight(2)

	return s
}

func (m Model) modalStyles() view.ModalStyles {
	return view.ModalStyles{
		Frame:     m.styles.ModalStyle,
		Header:    m.styles.ModalHeaderStyle,
		Title:     m.styles.ModalTitleStyle,
		Body:      m.styles.ModalBodyStyle,
		Footer:    m.styles.ModalFooterStyle,
		Key:       m.styles.ModalButtonStyle,
		ActiveKey: m.styles.ModalButtonActiveStyle,
	}
}
