package input

import "testing"

func TestPromptMatchingCommands(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "no_slash", input: "log", want: 0},
		{name: "empty", input: "", want: 0},
		{name: "full", input: "/log", want: 1},
		{name: "prefix", input: "/w", want: 1},
		{name: "all", input: "/", want: len(Commands)},
		{name: "with_space", input: "/log 5", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PromptMatchingCommands(tt.input, Commands)
			if len(got) != tt.want {
				t.Fatalf("matches = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestPromptAutocomplete(t *testing.T) {
	value, ok := PromptAutocomplete("/re", Commands)
	if !ok {
		t.Fatal("expected autocomplete")
	}
	if value != "/review " {
		t.Fatalf("value = %q, want %q", value, "/review ")
	}
	if _, ok := PromptAutocomplete("/zzz", Commands); ok {
		t.Fatal("unexpected autocomplete")
	}
}

func TestParseCommand(t *testing.T) {
	name, args, err := ParseCommand("  /LOG 8.5 00:45:00 easy  ")
	if err != nil {
		t.Fatalf("ParseCommand failed: %v", err)
	}
	if name != "/log" || len(args) != 3 {
		t.Fatalf("got %q %v", name, args)
	}
	if _, _, err := ParseCommand("log 5"); err != ErrNotACommand {
		t.Fatalf("expected ErrNotACommand, got %v", err)
	}
}

func TestParseLogArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    LogArgs
		wantErr bool
	}{
		{"distance only", []string{"8"}, LogArgs{Km: 8}, false},
		{"comma decimal", []string{"8,5"}, LogArgs{Km: 8.5}, false},
		{"with duration", []string{"10", "00:50:00"}, LogArgs{Km: 10, Seconds: 3000}, false},
		{"notes without duration", []string{"6", "felt", "good"}, LogArgs{Km: 6, Notes: "felt good"}, false},
		{"everything", []string{"12", "1:05:00", "long", "run"}, LogArgs{Km: 12, Seconds: 3900, Notes: "long run"}, false},
		{"empty", nil, LogArgs{}, true},
		{"bad distance", []string{"far"}, LogArgs{}, true},
		{"bad duration", []string{"5", "xx:yy"}, LogArgs{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLogArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseWeek(t *testing.T) {
	if got, err := ParseWeek([]string{"3"}, 4); err != nil || got != 2 {
		t.Fatalf("ParseWeek = %d, %v", got, err)
	}
	for _, args := range [][]string{nil, {"0"}, {"5"}, {"x"}} {
		if _, err := ParseWeek(args, 4); err == nil {
			t.Errorf("ParseWeek(%v) expected error", args)
		}
	}
}
