package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/trote/internal/tui/theme"
)

func TestStylesFollowTheme(t *testing.T) {
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(termenv.Ascii) })

	mocha, err := theme.Load("mocha")
	if err != nil {
		t.Fatalf("Load(mocha) failed: %v", err)
	}
	latte, err := theme.Load("latte")
	if err != nil {
		t.Fatalf("Load(latte) failed: %v", err)
	}

	dark := NewStyles(mocha)
	light := NewStyles(latte)

	easy := dark.Day.Easy.Render("Easy 6 km")
	if !strings.Contains(easy, "\x1b[") {
		t.Fatalf("expected ANSI colors, got %q", easy)
	}
	if easy == light.Day.Easy.Render("Easy 6 km") {
		t.Error("easy sessions render the same in mocha and latte")
	}
	if dark.Day.Easy.Render("x") == dark.Day.Quality.Render("x") {
		t.Error("easy and quality sessions share a style")
	}
	if dark.Day.Quality.Render("x") == dark.Day.PastQuality.Render("x") {
		t.Error("past quality sessions are not muted")
	}
}

func TestNewFallsBackToMocha(t *testing.T) {
	env := newTestEnv(t, false)
	env.config.UI.Theme = "neon"

	m := New(env.store, env.store, env.config)
	if m.theme == nil || m.theme.Name != "mocha" {
		t.Fatalf("theme = %+v, want mocha", m.theme)
	}
}
