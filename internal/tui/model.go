// Package tui provides the terminal week browser for trote.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/trote/internal/config"
	"github.com/javiermolinar/trote/internal/dateutil"
	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
	"github.com/javiermolinar/trote/internal/reference"
	"github.com/javiermolinar/trote/internal/summary"
	"github.com/javiermolinar/trote/internal/tui/commands"
	"github.com/javiermolinar/trote/internal/tui/theme"
	"github.com/javiermolinar/trote/internal/tui/view"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalDay
	ModalWeekSummary
	ModalHelp
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	plans    plan.Repository
	profiles profile.Repository
	config   *config.Config
	tables   *reference.Tables
	now      func() time.Time

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Plan state
	view    *summary.PlanView
	logs    []*profile.WorkoutLog
	noPlan  bool
	loading bool

	// Cursor
	week int // block index
	day  int // 0..6 within the block

	mode      Mode
	modalType ModalType

	// Summary state
	weekSummary         *summary.WeekSummary
	weekSummaryLines    []view.Line
	weekSummaryCopyText string

	prompt textinput.Model

	width  int
	height int

	statusMsg  string
	statusTime time.Time

	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a new TUI model.
func New(plans plan.Repository, profiles profile.Repository, cfg *config.Config, opts ...ModelOption) *Model {
	ti := textinput.New()
	ti.Placeholder = "/log 8 00:45:00"
	ti.Prompt = ""

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}

	m := &Model{
		plans:    plans,
		profiles: profiles,
		config:   cfg,
		tables:   reference.Default(),
		now:      time.Now,
		theme:    t,
		styles:   NewStyles(t),
		mode:     ModeNormal,
		prompt:   ti,
		loading:  true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.loadPlan()
}

func (m Model) loadPlan() tea.Cmd {
	return commands.LoadPlan(commands.Source{
		Plans:    m.plans,
		Profiles: m.profiles,
		Options: summary.LoadOptions{
			UserID: m.config.Athlete.UserID,
			Now:    m.now(),
			Locale: m.config.Athlete.Locale,
			Tables: m.tables,
		},
	})
}

// block returns the week under the cursor.
func (m Model) block() (plan.WeeklyBlock, bool) {
	if m.view == nil {
		return plan.WeeklyBlock{}, false
	}
	return m.view.Week(m.week)
}

// selectedDay returns the plan day under the cursor.
func (m Model) selectedDay() (plan.ScheduledDay, bool) {
	b, ok := m.block()
	if !ok || m.day >= len(b.Days) {
		return plan.ScheduledDay{}, false
	}
	return b.Days[m.day], true
}

// logsOn returns the workouts logged on date.
func (m Model) logsOn(date time.Time) []*profile.WorkoutLog {
	var out []*profile.WorkoutLog
	for _, w := range m.logs {
		if dateutil.SameDay(w.Date, date) {
			out = append(out, w)
		}
	}
	return out
}

// focusToday moves the cursor to today, or the first day of the current
// block when today is outside the plan.
func (m *Model) focusToday() {
	if m.view == nil {
		return
	}
	m.week = m.view.Current
	m.day = 0
	b, _ := m.view.Week(m.week)
	for i, d := range b.Days {
		if d.IsToday {
			m.day = i
			break
		}
	}
	trace("cursor", "week", m.week, "day", m.day, "by", "today")
}

// clampCursor keeps the cursor inside the plan after a reload.
func (m *Model) clampCursor() {
	if m.view == nil || len(m.view.Weeks) == 0 {
		m.week, m.day = 0, 0
		return
	}
	m.week = max(0, min(m.week, len(m.view.Weeks)-1))
	b, _ := m.view.Week(m.week)
	m.day = max(0, min(m.day, len(b.Days)-1))
}

// Run starts the TUI.
func Run(plans plan.Repository, profiles profile.Repository, cfg *config.Config) error {
	return RunWithDebug(plans, profiles, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(plans plan.Repository, profiles profile.Repository, cfg *config.Config, debug bool) error {
	if debug {
		stop, err := startTrace(DebugLogPath)
		if err != nil {
			return err
		}
		defer stop()
	}

	model := New(plans, profiles, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
