// Package view renders the pieces of the week browser: day cards, the
// footer, modals and the overlay that puts a modal on top of the week.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Screen is one frame of the browser.
type Screen struct {
	Width   int
	Height  int
	Base    string
	Modal   string // empty when no modal is open
	ModalBg lipgloss.Color
}

// Compose returns the text to draw for s. Until the terminal size is known
// it returns a loading placeholder.
func Compose(s Screen) string {
	if s.Width <= 0 || s.Height <= 0 {
		return "Loading..."
	}
	if s.Modal == "" {
		return s.Base
	}
	return Overlay(s.Base, s.Modal, s.Width, s.Height, s.ModalBg)
}

// Footer holds the pre-rendered footer rows. The compact footer keeps only
// the status and help rows.
type Footer struct {
	Width  int
	Full   bool
	Stats  string
	Legend string
	Prompt string
	Status string
	Help   string
	Bg     lipgloss.Color
}

func (f Footer) rows() []string {
	if f.Full {
		return []string{f.Stats, f.Legend, f.Prompt, f.Status, f.Help}
	}
	return []string{f.Status, f.Help}
}

// Height is the number of terminal rows the footer takes.
func (f Footer) Height() int {
	h := 0
	for _, r := range f.rows() {
		h += lipgloss.Height(r)
	}
	return h
}

// RenderFooter draws the footer rows bottom aligned.
func RenderFooter(f Footer) string {
	return PlaceBox(f.Width, f.Height(), lipgloss.Bottom, strings.Join(f.rows(), "\n"), f.Bg)
}

// Modal is the content of a modal window. The first key is highlighted.
type Modal struct {
	Title string
	Body  string
	Keys  []string
}

// ModalStyles groups the styles of the modal frame.
type ModalStyles struct {
	Frame     lipgloss.Style
	Header    lipgloss.Style
	Title     lipgloss.Style
	Body      lipgloss.Style
	Footer    lipgloss.Style
	Key       lipgloss.Style
	ActiveKey lipgloss.Style
}

// RenderModal draws the title, body and key row of a modal inside its frame.
func RenderModal(m Modal, s ModalStyles) string {
	parts := []string{s.Header.Render(s.Title.Render(m.Title))}
	if m.Body != "" {
		parts = append(parts, m.Body)
	}
	if len(m.Keys) > 0 {
		keys := make([]string, len(m.Keys))
		for i, k := range m.Keys {
			style := s.Key
			if i == 0 {
				style = s.ActiveKey
			}
			keys[i] = style.Padding(0, 1).Render(k)
		}
		parts = append(parts, s.Footer.Render(strings.Join(keys, s.Body.Render(" "))))
	}
	return s.Frame.Render(strings.Join(parts, "\n\n"))
}

// PlaceBox places content in a w×h box filled with bg.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(w, h, lipgloss.Left, vAlign, content, lipgloss.WithWhitespaceBackground(bg))
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground pads or trims content to exactly height rows and
// fills each short row up to width with bg.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	fill := lipgloss.NewStyle().Background(bg)
	for i, line := range lines {
		if gap := width - lipgloss.Width(line); gap > 0 {
			lines[i] = line + fill.Render(strings.Repeat(" ", gap))
		}
	}
	return strings.Join(lines, "\n")
}

// Overlay centers modal over base, a width×height frame. Rows of base
// outside the modal are kept as they are.
func Overlay(base, modal string, width, height int, modalBg lipgloss.Color) string {
	rows := strings.Split(modal, "\n")
	modalW := min(lipgloss.Width(modal), width)
	if modalW == 0 {
		return base
	}
	top := max((height-len(rows))/2, 0)
	left := max((width-modalW)/2, 0)

	fill := lipgloss.NewStyle().Background(modalBg)
	for i, row := range rows {
		w := lipgloss.Width(row)
		switch {
		case w > modalW:
			row = ansi.Cut(row, 0, modalW)
		case w < modalW:
			row += fill.Render(strings.Repeat(" ", modalW-w))
		}
		rows[i] = keepBackground(row, modalBg) + ansi.ResetStyle
	}

	lines := strings.Split(PadLinesWithBackground(base, width, height, ""), "\n")
	for i, row := range rows {
		y := top + i
		if y >= len(lines) {
			break
		}
		lines[y] = ansi.Cut(lines[y], 0, left) + row + ansi.Cut(lines[y], left+modalW, width)
	}
	return strings.Join(lines, "\n")
}

// keepBackground re-applies bg after every reset inside row so styled spans
// do not punch holes in the modal background.
func keepBackground(row string, bg lipgloss.Color) string {
	if bg == "" {
		return row
	}
	seq := ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
	for _, reset := range []string{ansi.ResetStyle, "\x1b[0m", "\x1b[49m"} {
		row = strings.ReplaceAll(row, reset, reset+seq)
	}
	return row
}
