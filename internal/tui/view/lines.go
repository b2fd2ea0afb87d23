package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// LineKind selects the style of a modal line.
type LineKind int

const (
	LineBody LineKind = iota
	LineMeta
	LineSection
	LineDone
)

// Line is one display-ready row of a modal body.
type Line struct {
	Text string
	Kind LineKind
}

// LineStyles maps each LineKind to a style.
type LineStyles struct {
	Body    lipgloss.Style
	Meta    lipgloss.Style
	Section lipgloss.Style
	Done    lipgloss.Style
}

func (s LineStyles) style(k LineKind) lipgloss.Style {
	switch k {
	case LineMeta:
		return s.Meta
	case LineSection:
		return s.Section
	case LineDone:
		return s.Done
	default:
		return s.Body
	}
}

// RenderLines wraps every line to width and styles it by kind.
func RenderLines(lines []Line, styles LineStyles, width int) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		style := styles.style(l.Kind)
		wrapped := []string{l.Text}
		if width > 0 {
			if w := Wrap(l.Text, width, width); len(w) > 0 {
				wrapped = w
			}
		}
		for _, row := range wrapped {
			out = append(out, style.Render(row))
		}
	}
	return strings.Join(out, "\n")
}

// ModalContentWidth is the text width inside a modal frame of fixed width,
// or fallback when the frame has none.
func ModalContentWidth(frame lipgloss.Style, fallback int) int {
	if frame.GetWidth() <= 0 {
		return fallback
	}
	return max(frame.GetWidth()-frame.GetHorizontalPadding(), 10)
}
