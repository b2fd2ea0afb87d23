package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/trote/internal/plan"
)

// Color definitions for consistent styling across the UI.
var (
	// Aerobic work: green
	colorEasy = color.New(color.FgGreen)

	// Quality sessions: bold magenta so they stand out in the week
	colorQuality = color.New(color.FgMagenta, color.Bold)

	// Insight/results: yellow to make it pop
	colorInsight = color.New(color.FgYellow)

	colorHeader = color.New(color.Bold)

	// Completed volume and paces
	colorStats = color.New(color.FgCyan)

	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatActivity colours a label by the intensity of its type.
func formatActivity(t plan.ActivityType, s string) string {
	switch t {
	case plan.TypeOff:
		return colorMuted.Sprint(s)
	case plan.TypeThreshold, plan.TypeInterval, plan.TypeRepetition, plan.TypeRace, plan.TypeMarathon:
		return colorQuality.Sprint(s)
	default:
		return colorEasy.Sprint(s)
	}
}

func formatInsight(s string) string {
	return colorInsight.Sprint(s)
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatStats(s string) string {
	return colorStats.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
