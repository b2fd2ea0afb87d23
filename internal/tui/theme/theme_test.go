package theme

import (
	"errors"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantErr  error
	}{
		{"mocha", "mocha", "mocha", nil},
		{"macchiato", "macchiato", "macchiato", nil},
		{"frappe", "frappe", "frappe", nil},
		{"latte", "latte", "latte", nil},
		{"light", "light", "light", nil},
		{"case and spaces", "  Latte ", "latte", nil},
		{"empty name is the default", "", DefaultName, nil},
		{"unknown", "solarized", "", ErrUnknownTheme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th, err := Load(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Load(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load(%q) unexpected error: %v", tt.input, err)
			}
			if th.Name != tt.wantName {
				t.Errorf("Load(%q).Name = %q, want %q", tt.input, th.Name, tt.wantName)
			}
		})
	}
}

func TestLoad_AllThemesComplete(t *testing.T) {
	for _, name := range Available() {
		th, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		for field, hex := range map[string]string{
			"base_bg":      th.BaseBg,
			"modal_border": th.ModalBorder,
			"text_primary": th.TextPrimary,
			"text_muted":   th.TextMuted,
			"highlight":    th.Highlight,
		} {
			if !hexColor.MatchString(hex) {
				t.Errorf("%s.%s = %q, want a defaulted hex color", name, field, hex)
			}
		}
	}
}

func TestParse_ModalDefaults(t *testing.T) {
	data := []byte(`
bg = "#000000"
bg_highlight = "#111111"
bg_selection = "#222222"
fg = "#eeeeee"
fg_muted = "#888888"
accent = "#ff00ff"
easy = "#00ff00"
quality = "#ff0000"
done = "#00ffff"
current = "#ffff00"
warning = "#ff8800"
highlight = "#abcdef"
`)
	th, err := parse("custom", data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if th.Name != "custom" {
		t.Errorf("Name = %q, want the file name", th.Name)
	}
	if th.BaseBg != "#111111" || th.ModalBorder != "#ff00ff" || th.TextPrimary != "#eeeeee" ||
		th.TextMuted != "#888888" || th.Highlight != "#abcdef" {
		t.Errorf("modal defaults = %q %q %q %q %q", th.BaseBg, th.ModalBorder, th.TextPrimary, th.TextMuted, th.Highlight)
	}
}

func TestParse_InvalidColors(t *testing.T) {
	data := []byte(`
bg = "#000000"
bg_highlight = "#111111"
bg_selection = "#222222"
fg = "#eeeeee"
fg_muted = "#888888"
accent = "#ff00ff"
easy = "green"
quality = "#ff0000"
done = "#00ffff"
current = "#ffff00"
`)
	_, err := parse("broken", data)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{`easy = "green"`, `warning = ""`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}

	if _, err := parse("garbage", []byte("bg = ")); err == nil {
		t.Error("expected TOML error")
	}
}

func TestAvailable(t *testing.T) {
	got := Available()
	want := []string{"mocha", "macchiato", "frappe", "latte", "light"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Available() = %v, want %v", got, want)
	}

	got[0] = "changed"
	if Available()[0] != DefaultName {
		t.Error("Available returned a shared slice")
	}
}

func TestIsAvailable(t *testing.T) {
	tests := []struct {
		theme string
		want  bool
	}{
		{"mocha", true},
		{"Mocha", true},
		{" light", true},
		{"unknown", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsAvailable(tt.theme); got != tt.want {
			t.Errorf("IsAvailable(%q) = %t, want %t", tt.theme, got, tt.want)
		}
	}
}

func TestColor(t *testing.T) {
	hex := "#89b4fa"
	if c := Color(hex); string(c) != hex {
		t.Errorf("Color(%q) = %q, want %q", hex, string(c), hex)
	}
}
