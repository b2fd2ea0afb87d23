package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h"},
		{65, "1h05m"},
		{230, "3h50m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatVolume(t *testing.T) {
	got := FormatVolume(plan.Volume{Km: 42.26, Minutes: 230})
	if got != "42.3 km · 3h50m" {
		t.Errorf("FormatVolume = %q", got)
	}
}

func TestProgressBar(t *testing.T) {
	DisableColor()
	tests := []struct {
		name          string
		done, planned float64
		want          string
	}{
		{"nothing planned", 5, 0, "[░░░░░░░░░░]"},
		{"half", 10, 20, "[█████░░░░░] 50%"},
		{"over", 30, 20, "[██████████] 150%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgressBar(tt.done, tt.planned, 10); got != tt.want {
				t.Errorf("ProgressBar = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintWeek(t *testing.T) {
	DisableColor()
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)
	days := []plan.DayRecord{
		{Activities: []plan.Activity{{Type: plan.TypeEasy, Load: plan.Distance{Km: 8}}}, Note: "keep it relaxed"},
		{Activities: []plan.Activity{{Type: plan.TypeOff}}},
	}
	blocks := plan.OrganizeWeeks(days, monday, monday.Add(9*time.Hour), "en")
	resolve := func(plan.Activity) string { return "5:30" }

	logs := []*profile.WorkoutLog{profile.NewWorkoutLog("u", monday, 8.2, 2700, profile.SourceManual)}

	var buf bytes.Buffer
	printWeek(&buf, WeekPrint{
		PlanName: "10K Base",
		Weeks:    1,
		Block:    blocks[0],
		Stats:    plan.WeekStats(days, resolve),
		Resolve:  resolve,
		Logs:     logs,
	})
	out := buf.String()

	for _, want := range []string{
		"10K Base · WEEK 1 of 1",
		"▸ today",
		"Easy 8 km",
		"@ 5:30",
		"keep it relaxed",
		"✓ 8.2 km in 45m (5:29/km)",
		"Sessions: 1",
		"Done:    8.2 km · 45m",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintWeekEmptyBlock(t *testing.T) {
	var buf bytes.Buffer
	printWeek(&buf, WeekPrint{PlanName: "x"})
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestParseInsightLine(t *testing.T) {
	tests := []struct {
		line       string
		wantPrefix string
		wantText   string
		wantHeader bool
	}{
		{"FOCUS: Aerobic base", "  ", "Aerobic base", true},
		{"# Next week", "  ", "Next week", true},
		{"- Run easy", "    • ", "Run easy", false},
		{"> quote", "  │ ", "quote", false},
		{"✅ DONE: 30 of 35 km", "  ", "✅ DONE: 30 of 35 km", false},
	}
	for _, tt := range tests {
		prefix, content, _, header := parseInsightLine(tt.line, 72)
		if prefix != tt.wantPrefix || content != tt.wantText || header != tt.wantHeader {
			t.Errorf("parseInsightLine(%q) = %q, %q, %v", tt.line, prefix, content, header)
		}
	}
}

func TestPrintInsightWrapped(t *testing.T) {
	DisableColor()
	var buf bytes.Buffer
	PrintInsightWrapped(&buf, "```\nFOCUS: Build volume\n\n➜  one two three four five six\n```", 20)
	out := buf.String()

	if strings.Contains(out, "```") {
		t.Errorf("code fences not stripped:\n%s", out)
	}
	if !strings.Contains(out, "Build volume") {
		t.Errorf("missing header:\n%s", out)
	}
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if len([]rune(line)) > 20 {
			t.Errorf("line longer than width: %q", line)
		}
	}
}

func TestStripMarkdownCodeBlocks(t *testing.T) {
	got := stripMarkdownCodeBlocks("```text\nhello\n```\nworld")
	if got != "hello\nworld" {
		t.Errorf("got %q", got)
	}
}

func TestRunConfigInteractive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	var out bytes.Buffer
	if err := runConfigInteractive(strings.NewReader("n\n"), &out, path); err != nil {
		t.Fatalf("runConfigInteractive failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	for _, want := range []string{"Created " + path, "[athlete]", "[strava]", "(not configured)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunConfigInteractive_Edit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	// Edit, then user id and locale. Every other prompt keeps its default.
	answers := []string{"y", "ana", "es"}
	input := strings.Join(answers, "\n") + strings.Repeat("\n", 20)

	var out bytes.Buffer
	if err := runConfigInteractive(strings.NewReader(input), &out, path); err != nil {
		t.Fatalf("runConfigInteractive failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "user_id = 'ana'") || !strings.Contains(string(data), "locale = 'es'") {
		t.Errorf("config not saved:\n%s", data)
	}
}
