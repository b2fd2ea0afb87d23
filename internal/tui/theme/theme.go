// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// DefaultName is the theme used when none is configured.
const DefaultName = "mocha"

// ErrUnknownTheme is returned by Load for names without an embedded file.
var ErrUnknownTheme = errors.New("unknown theme")

var names = []string{DefaultName, "macchiato", "frappe", "latte", "light"}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`
	BgHighlight string `toml:"bg_highlight"` // day cards
	BgSelection string `toml:"bg_selection"` // selected day
	Fg          string `toml:"fg"`
	FgMuted     string `toml:"fg_muted"` // past and rest days
	Accent      string `toml:"accent"`   // title and borders
	Easy        string `toml:"easy"`     // aerobic sessions
	Quality     string `toml:"quality"`  // threshold, interval and race sessions
	Done        string `toml:"done"`     // logged workouts
	Current     string `toml:"current"`  // today
	Warning     string `toml:"warning"`  // errors and missed sessions

	// Modal colors default to the base colors above.
	BaseBg      string `toml:"base_bg"`
	ModalBorder string `toml:"modal_border"`
	TextPrimary string `toml:"text_primary"`
	TextMuted   string `toml:"text_muted"`
	Highlight   string `toml:"highlight"`
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load reads an embedded theme. An empty name loads the default theme.
func Load(name string) (*Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultName
	}
	if !IsAvailable(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}
	return parse(name, data)
}

func parse(name string, data []byte) (*Theme, error) {
	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	if t.Name == "" {
		t.Name = name
	}
	t.BaseBg = coalesce(t.BaseBg, t.BgHighlight, t.Bg)
	t.ModalBorder = coalesce(t.ModalBorder, t.Accent)
	t.TextPrimary = coalesce(t.TextPrimary, t.Fg)
	t.TextMuted = coalesce(t.TextMuted, t.FgMuted)
	t.Highlight = coalesce(t.Highlight, t.BgSelection, t.Accent)

	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("theme %q: %w", name, err)
	}
	return &t, nil
}

// validate checks that every color the day cards need is a #rrggbb value.
func (t *Theme) validate() error {
	required := []struct{ key, value string }{
		{"bg", t.Bg}, {"bg_highlight", t.BgHighlight}, {"bg_selection", t.BgSelection},
		{"fg", t.Fg}, {"fg_muted", t.FgMuted}, {"accent", t.Accent},
		{"easy", t.Easy}, {"quality", t.Quality}, {"done", t.Done},
		{"current", t.Current}, {"warning", t.Warning},
	}
	var errs []error
	for _, c := range required {
		if !hexColor.MatchString(c.value) {
			errs = append(errs, fmt.Errorf("%s = %q is not a #rrggbb color", c.key, c.value))
		}
	}
	return errors.Join(errs...)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns the embedded theme names, default first.
func Available() []string {
	return slices.Clone(names)
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	return slices.Contains(names, strings.ToLower(strings.TrimSpace(name)))
}
