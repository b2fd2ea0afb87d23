package view

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/trote/internal/tui/input"
)

const (
	promptMark   = "> "
	promptIndent = "  "
	promptCursor = "_"
	ellipsis     = "..."
)

// Prompt is the command line under the week.
type Prompt struct {
	Value    string
	Active   bool
	Commands []input.PromptCommand
	MaxRows  int // zero means no limit
}

// Rows returns the input row followed by one row per matching command,
// wrapped to width. When there are more than MaxRows the last kept row ends
// in an ellipsis.
func (p Prompt) Rows(width int) []string {
	rows := indent(Wrap(p.Value+promptCursor, width-len(promptMark), width-len(promptIndent)), promptMark)
	for _, c := range input.PromptMatchingCommands(p.Value, p.Commands) {
		rows = append(rows, indent(Wrap(c.Name+" "+c.Description, width-len(promptIndent), width-len(promptIndent)), promptIndent)...)
	}
	if p.MaxRows <= 0 || len(rows) <= p.MaxRows {
		return rows
	}
	rows = rows[:p.MaxRows]
	last := &rows[p.MaxRows-1]
	if width > len(ellipsis) {
		*last = runewidth.Truncate(*last, width-len(ellipsis), "") + ellipsis
	} else {
		*last = ellipsis[:max(width, 0)]
	}
	return rows
}

// RenderPrompt draws p in style at the given outer width. An inactive prompt
// keeps its box as one blank row.
func RenderPrompt(p Prompt, style lipgloss.Style, width int) string {
	frameW, _ := style.GetFrameSize()
	inner := max(width-frameW, 0)
	rows := []string{""}
	if p.Active {
		rows = p.Rows(inner)
	}
	return style.Width(inner).Render(strings.Join(rows, "\n"))
}

// Wrap breaks s at spaces into rows of at most first columns for the first
// row and rest columns after it. Words wider than a row are split.
func Wrap(s string, first, rest int) []string {
	if first <= 0 || rest <= 0 {
		return []string{""}
	}
	var (
		rows  []string
		row   strings.Builder
		used  int
		limit = first
	)
	next := func() {
		rows = append(rows, row.String())
		row.Reset()
		used = 0
		limit = rest
	}
	for _, word := range strings.Fields(s) {
		w := runewidth.StringWidth(word)
		if used > 0 && used+1+w > limit {
			next()
		}
		for used == 0 && w > limit {
			head := runewidth.Truncate(word, limit, "")
			if head == "" {
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			row.WriteString(head)
			next()
			word = word[len(head):]
			w = runewidth.StringWidth(word)
		}
		if word == "" {
			continue
		}
		if used > 0 {
			row.WriteByte(' ')
			used++
		}
		row.WriteString(word)
		used += w
	}
	if used > 0 || len(rows) == 0 {
		rows = append(rows, row.String())
	}
	return rows
}

func indent(rows []string, mark string) []string {
	pad := strings.Repeat(" ", len(mark))
	for i := range rows {
		if i == 0 {
			rows[i] = mark + rows[i]
		} else {
			rows[i] = pad + rows[i]
		}
	}
	return rows
}
