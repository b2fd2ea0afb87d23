// Package input parses the TUI command prompt.
package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/javiermolinar/trote/internal/pace"
)

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Description string
}

// Commands are the prompt commands the TUI understands.
var Commands = []PromptCommand{
	{Name: "/log", Description: "<km> [HH:MM:SS] [notes] log a run on the selected day"},
	{Name: "/week", Description: "<n> jump to week n"},
	{Name: "/activate", Description: "<path> switch the active plan"},
	{Name: "/review", Description: "ask the coach to review this week"},
	{Name: "/theme", Description: "<name> change the colour theme"},
}

// PromptMatchingCommands returns commands that match the current input prefix.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") || strings.Contains(input, " ") {
		return nil
	}

	prefix := strings.ToLower(trimmed)
	matches := make([]PromptCommand, 0, len(commands))
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete returns the first matching command and whether it exists.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name + " ", true
}

// ErrNotACommand is returned for input that does not start with a slash.
var ErrNotACommand = errors.New("commands start with /")

// ParseCommand splits prompt input into a lowercase command name and its
// arguments.
func ParseCommand(s string) (name string, args []string, err error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil, ErrNotACommand
	}
	return strings.ToLower(fields[0]), fields[1:], nil
}

// LogArgs is a parsed /log command.
type LogArgs struct {
	Km      float64
	Seconds int
	Notes   string
}

// ParseLogArgs reads "<km> [HH:MM:SS] [notes...]". The duration may be
// omitted, in which case the remaining words are the notes.
func ParseLogArgs(args []string) (LogArgs, error) {
	if len(args) == 0 {
		return LogArgs{}, errors.New("usage: /log <km> [HH:MM:SS] [notes]")
	}
	km, err := strconv.ParseFloat(strings.Replace(args[0], ",", ".", 1), 64)
	if err != nil || km < 0 {
		return LogArgs{}, fmt.Errorf("invalid distance %q", args[0])
	}

	out := LogArgs{Km: km}
	rest := args[1:]
	if len(rest) > 0 && strings.Contains(rest[0], ":") {
		secs := pace.ParseClock(rest[0])
		if secs == 0 {
			return LogArgs{}, fmt.Errorf("invalid duration %q, use HH:MM:SS", rest[0])
		}
		out.Seconds = secs
		rest = rest[1:]
	}
	out.Notes = strings.Join(rest, " ")
	return out, nil
}

// ParseWeek reads a 1-based week number and returns it zero based.
func ParseWeek(args []string, weeks int) (int, error) {
	if len(args) != 1 {
		return 0, errors.New("usage: /week <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > weeks {
		return 0, fmt.Errorf("week must be between 1 and %d", weeks)
	}
	return n - 1, nil
}
