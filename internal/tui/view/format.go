package view

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/trote/internal/plan"
)

// FormatDuration formats minutes as "Xh Ym".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatVolume formats a volume as "12.5 km · 1h 5m". Zero volumes render
// as an empty string.
func FormatVolume(v plan.Volume) string {
	r := v.Rounded()
	if r.Km == 0 && r.Minutes == 0 {
		return ""
	}
	return fmt.Sprintf("%.1f km · %s", r.Km, FormatDuration(int(r.Minutes)))
}

// ProgressBar renders done against planned as a bar of width cells and a
// percentage. Ratios above one fill the bar.
func ProgressBar(done, planned float64, width int) string {
	if planned <= 0 || width <= 0 {
		return ""
	}
	ratio := min(done/planned, 1)
	filled := int(ratio * float64(width))
	return fmt.Sprintf("%s%s %d%%", strings.Repeat("█", filled), strings.Repeat("░", width-filled), int(done/planned*100))
}
