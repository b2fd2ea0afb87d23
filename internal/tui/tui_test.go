package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/trote/internal/config"
	"github.com/javiermolinar/trote/internal/db"
	"github.com/javiermolinar/trote/internal/profile"
	"github.com/javiermolinar/trote/internal/tui/commands"
)

var testNow = time.Date(2024, 6, 12, 9, 0, 0, 0, time.Local)

type testEnv struct {
	store  *db.SQLite
	config *config.Config
}

func newTestEnv(t *testing.T, active bool) *testEnv {
	t.Helper()
	store, err := db.New(filepath.Join(t.TempDir(), "trote.db"))
	if err != nil {
		t.Fatalf("creating repo: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if active {
		_, err := profile.Update(t.Context(), store, "runner", func(p *profile.Profile) error {
			if err := p.Activate("10k-base"); err != nil {
				return err
			}
			s := p.Settings("10k-base")
			s.StartDate = "2024-06-10"
			return p.SetSettings("10k-base", s)
		})
		if err != nil {
			t.Fatalf("activating plan: %v", err)
		}
	}

	cfg := config.Default()
	cfg.Athlete.UserID = "runner"
	cfg.LLM.Model = ""
	return &testEnv{store: store, config: cfg}
}

// loaded returns a model that has processed its initial load.
func (e *testEnv) loaded(t *testing.T) Model {
	t.Helper()
	m := New(e.store, e.store, e.config, WithClock(func() time.Time { return testNow }))
	return update(t, *m, m.Init()())
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T", updated)
	}
	return model
}

// press sends a key and returns the model and the command it produced.
func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// submit types a prompt command and presses enter.
func submit(t *testing.T, m Model, value string) (Model, tea.Cmd) {
	t.Helper()
	m, _ = press(t, m, "/")
	m.prompt.SetValue(value)
	return press(t, m, "enter")
}

func TestInitFocusesToday(t *testing.T) {
	m := newTestEnv(t, true).loaded(t)

	if m.view == nil {
		t.Fatal("plan view not loaded")
	}
	if m.week != 0 || m.day != 2 {
		t.Fatalf("cursor = week %d day %d, want week 0 day 2", m.week, m.day)
	}
	d, ok := m.selectedDay()
	if !ok || !d.IsToday {
		t.Fatalf("selected day = %+v, want today", d)
	}
}

func TestNoActivePlan(t *testing.T) {
	m := newTestEnv(t, false).loaded(t)
	if !m.noPlan {
		t.Fatal("expected noPlan")
	}
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	if out := m.View(); !strings.Contains(out, "No active plan") {
		t.Errorf("view missing empty state:\n%s", out)
	}

	m, _ = press(t, m, "s")
	if m.mode != ModeNormal || m.statusMsg != "No active plan" {
		t.Errorf("mode = %v status = %q", m.mode, m.statusMsg)
	}
}

func TestDayNavigation(t *testing.T) {
	m := newTestEnv(t, true).loaded(t)

	tests := []struct {
		key       string
		week, day int
	}{
		{"l", 0, 3},
		{"l", 0, 4},
		{"l", 0, 5},
		{"l", 0, 6},
		{"l", 1, 0},
		{"h", 0, 6},
		{"L", 1, 6},
		{"]", 2, 6},
		{"[", 1, 6},
		{"t", 0, 2},
		{"H", 0, 2},
	}
	for _, tt := range tests {
		m, _ = press(t, m, tt.key)
		if m.week != tt.week || m.day != tt.day {
			t.Fatalf("after %q cursor = week %d day %d, want week %d day %d", tt.key, m.week, m.day, tt.week, tt.day)
		}
	}
}

func TestNavigationStopsAtPlanEdges(t *testing.T) {
	m := newTestEnv(t, true).loaded(t)
	for range 3 {
		m, _ = press(t, m, "h")
	}
	if m.week != 0 || m.day != 0 {
		t.Fatalf("cursor = week %d day %d, want start of plan", m.week, m.day)
	}

	m, _ = submit(t, m, "/week 4")
	for range 10 {
		m, _ = press(t, m, "l")
	}
	last := len(m.view.Weeks) - 1
	b, _ := m.view.Week(last)
	if m.week != last || m.day != len(b.Days)-1 {
		t.Fatalf("cursor = week %d day %d, want end of plan", m.week, m.day)
	}
}

func TestLogWorkoutFromPrompt(t *testing.T) {
	env := newTestEnv(t, true)
	m := env.loaded(t)

	m, _ = press(t, m, "a")
	if m.mode != ModePrompt || m.prompt.Value() != "/log " {
		t.Fatalf("mode = %v value = %q", m.mode, m.prompt.Value())
	}
	for _, r := range "6 00:33:00 steady" {
		m, _ = press(t, m, string(r))
	}
	m, cmd := press(t, m, "enter")
	if m.mode != ModeNormal {
		t.Fatalf("mode = %v, want normal", m.mode)
	}
	if cmd == nil {
		t.Fatal("expected a command")
	}

	msg := cmd()
	logged, ok := msg.(commands.WorkoutLoggedMsg)
	if !ok {
		t.Fatalf("msg = %T %v, want WorkoutLoggedMsg", msg, msg)
	}
	if logged.Log.PlanDayIndex == nil || *logged.Log.PlanDayIndex != 2 {
		t.Errorf("plan day = %v, want 2", logged.Log.PlanDayIndex)
	}
	if logged.Log.Notes != "steady" {
		t.Errorf("notes = %q", logged.Log.Notes)
	}

	m = update(t, m, msg)
	if !strings.Contains(m.statusMsg, "Logged 6.0 km") {
		t.Errorf("status = %q", m.statusMsg)
	}
	m = update(t, m, m.loadPlan()())
	if got := m.logsOn(testNow); len(got) != 1 {
		t.Fatalf("logs today = %d, want 1", len(got))
	}
	if m.week != 0 || m.day != 2 {
		t.Errorf("reload moved the cursor to week %d day %d", m.week, m.day)
	}
}

func TestLogRejectsFutureDay(t *testing.T) {
	m := newTestEnv(t, true).loaded(t)
	m, _ = press(t, m, "l")

	m, cmd := submit(t, m, "/log 5")
	if cmd != nil {
		t.Fatal("expected no command for a future day")
	}
	if !strings.Contains(m.statusMsg, "future") {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestPromptCommands(t *testing.T) {
	m := newTestEnv(t, true).loaded(t)

	m, _ = submit(t, m, "/week 3")
	if m.week != 2 {
		t.Errorf("week = %d, want 2", m.week)
	}

	m, _ = submit(t, m, "/week 9")
	if !strings.Contains(m.statusMsg, "between 1 and 4") {
		t.Errorf("status = %q", m.statusMsg)
	}

	m, _ = submit(t, m, "/nope")
	if m.statusMsg != "Unknown command: /nope" {
		t.Errorf("status = %q", m.statusMsg)
	}

	m, _ = submit(t, m, "/log far")
	if !strings.Contains(m.statusMsg, "invalid distance") {
		t.Errorf("status = %q", m.statusMsg)
	}

	m, _ = submit(t, m, "/theme latte")
	if m.config.UI.Theme != "latte" || m.statusMsg != "Theme: latte" {
		t.Errorf("theme = %q status = %q", m.config.UI.Theme, m.statusMsg)
	}
	m, _ = submit(t, m, "/theme neon")
	if !strings.HasPrefix(m.statusMsg, "Themes:") {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestPromptEscapeAndAutocomplete(t *testing.T) {
	m := newTestEnv(t, true).loaded(t)

	m, _ = press(t, m, "/")
	m, _ = press(t, m, "a")
	m, _ = press(t, m, "c")
	m, _ = press(t, m, "tab")
	if got := m.prompt.Value(); got != "/activate " {
		t.Errorf("autocomplete = %q, want /activate ", got)
	}

	m, _ = press(t, m, "esc")
	if m.mode != ModeNormal || m.prompt.Value() != "" {
		t.Errorf("mode = %v value = %q", m.mode, m.prompt.Value())
	}
}

func TestActivateFromPrompt(t *testing.T) {
	env := newTestEnv(t, true)
	m := env.loaded(t)

	m, cmd := submit(t, m, "/activate half-marathon")
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	if _, ok := msg.(commands.PlanActivatedMsg); !ok {
		t.Fatalf("msg = %T %v, want PlanActivatedMsg", msg, msg)
	}
	m = update(t, m, msg)
	if m.view != nil || !m.loading {
		t.Fatal("expected a reload after activation")
	}
	m = update(t, m, m.loadPlan()())
	if m.view.Plan.Path != "half-marathon" {
		t.Errorf("plan = %q", m.view.Plan.Path)
	}
}

func TestWeekSummaryModal(t *testing.T) {
	m := newTestEnv(t, true).loaded(t)

	m, _ = press(t, m, "s")
	if m.mode != ModeModal || m.modalType != ModalWeekSummary {
		t.Fatalf("mode = %v modal = %v", m.mode, m.modalType)
	}
	if !strings.Contains(m.weekSummaryCopyText, "10K Base · week 1 of 4") {
		t.Errorf("copy text:\n%s", m.weekSummaryCopyText)
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})
	if out := m.View(); !strings.Contains(out, "Week 1 Summary") {
		t.Errorf("view missing summary modal:\n%s", out)
	}

	m, _ = press(t, m, "esc")
	if m.mode != ModeNormal || m.weekSummary != nil {
		t.Errorf("modal not closed: mode = %v", m.mode)
	}
}

func TestReviewNeedsModel(t *testing.T) {
	m := newTestEnv(t, true).loaded(t)

	m, cmd := press(t, m, "i")
	if cmd != nil {
		t.Fatal("expected no command without a model")
	}
	if !strings.Contains(m.statusMsg, "llm.model") {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestDayModal(t *testing.T) {
	m := newTestEnv(t, true).loaded(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})

	m, _ = press(t, m, "h")
	m, _ = press(t, m, "h")
	m, _ = press(t, m, "enter")
	if m.modalType != ModalDay {
		t.Fatalf("modal = %v, want day", m.modalType)
	}
	d, _ := m.selectedDay()
	text := ""
	for _, l := range m.dayLines(d) {
		text += l.Text + "\n"
	}
	for _, want := range []string{"10K Base · day 1 · week 1", "Easy", "6 km", "/km", "Not logged"} {
		if !strings.Contains(text, want) {
			t.Errorf("day modal missing %q:\n%s", want, text)
		}
	}

	m, _ = press(t, m, "a")
	if m.mode != ModePrompt || m.prompt.Value() != "/log " {
		t.Errorf("mode = %v value = %q", m.mode, m.prompt.Value())
	}
}

func TestView(t *testing.T) {
	m := newTestEnv(t, true).loaded(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 180, Height: 40})

	out := m.View()
	for _, want := range []string{"TROTE · 10K Base", "Week 1 of 4", "Mon Jun 10", "Easy 6 km", "Legend:", "q: quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
	if got := len(strings.Split(out, "\n")); got != 40 {
		t.Errorf("view height = %d, want 40", got)
	}
}

func TestViewNarrowShowsSelectedDay(t *testing.T) {
	m := newTestEnv(t, true).loaded(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 30})

	out := m.View()
	if !strings.Contains(out, "Wed Jun 12") {
		t.Errorf("narrow view missing selected day:\n%s", out)
	}
	if strings.Contains(out, "Thu Jun 13") {
		t.Errorf("narrow view shows other days:\n%s", out)
	}
}

func TestViewTooSmall(t *testing.T) {
	m := newTestEnv(t, true).loaded(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 6})
	if out := m.View(); out != "Terminal too small" {
		t.Errorf("view = %q", out)
	}
}

func TestStatusMessages(t *testing.T) {
	m := newTestEnv(t, true).loaded(t)

	updated, cmd := m.Update(commands.StatusMsgCmd{Msg: "Copied to clipboard"})
	m = updated.(Model)
	if m.statusMsg != "Copied to clipboard" || cmd == nil {
		t.Fatalf("status = %q cmd = %v", m.statusMsg, cmd)
	}

	m.now = func() time.Time { return testNow.Add(time.Minute) }
	m = update(t, m, commands.ClearStatusMsg{})
	if m.statusMsg != "" {
		t.Errorf("status not cleared: %q", m.statusMsg)
	}
}
