package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "raw json object",
			input:    `{"name": "10K"}`,
			expected: `{"name": "10K"}`,
		},
		{
			name:     "json with leading text",
			input:    `Here is the plan: {"dailyWorkouts": [{"note": "test"}]}`,
			expected: `{"dailyWorkouts": [{"note": "test"}]}`,
		},
		{
			name:     "json in code block",
			input:    "```json\n{\"name\": \"10K\"}\n```",
			expected: `{"name": "10K"}`,
		},
		{
			name:     "json in plain code block",
			input:    "```\n{\"name\": \"10K\"}\n```",
			expected: `{"name": "10K"}`,
		},
		{
			name:     "json array",
			input:    `[{"id": 1}, {"id": 2}]`,
			expected: `[{"id": 1}, {"id": 2}]`,
		},
		{
			name:     "nested json",
			input:    `{"outer": {"inner": {"deep": true}}}`,
			expected: `{"outer": {"inner": {"deep": true}}}`,
		},
		{
			name: "markdown with explanation",
			input: `Here's my analysis:

` + "```json" + `
{
  "dailyWorkouts": [
    {"activities": [{"type": "easy", "distance": 8}]}
  ]
}
` + "```" + `

Let me know if you need anything else.`,
			expected: `{
  "dailyWorkouts": [
    {"activities": [{"type": "easy", "distance": 8}]}
  ]
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON(tt.input)
			if got != tt.expected {
				t.Errorf("extractJSON() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// fakeClient replays canned replies and records every request.
type fakeClient struct {
	replies  []string
	err      error
	requests [][]Message
}

func (f *fakeClient) next(messages []Message) (string, error) {
	f.requests = append(f.requests, append([]Message(nil), messages...))
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", errors.New("no more replies")
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r, nil
}

func (f *fakeClient) Chat(_ context.Context, messages []Message) (string, error) {
	return f.next(messages)
}

func (f *fakeClient) ChatJSON(_ context.Context, messages []Message, result any) error {
	r, err := f.next(messages)
	if err != nil {
		return err
	}
	return decodeJSON(r, result)
}

func testWeek() WeekReview {
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	easy := plan.Activity{Type: plan.TypeEasy, Load: plan.Distance{Km: 8}}
	days := []plan.ScheduledDay{
		{Index: 0, Date: monday, Display: "Mon 10 Jun", IsPast: true,
			Record: plan.DayRecord{Activities: []plan.Activity{{Type: plan.TypeOff}}}},
		{Index: 1, Date: tuesday, Display: "Tue 11 Jun", IsToday: true,
			Record: plan.DayRecord{Note: "keep it relaxed", Activities: []plan.Activity{easy}}},
	}
	resolve := func(plan.Activity) string { return "5:30" }
	return WeekReview{
		PlanName: "10K base",
		Week:     0,
		Weeks:    4,
		Days:     days,
		Stats:    plan.WeekStats([]plan.DayRecord{days[0].Record, days[1].Record}, resolve),
		Resolve:  resolve,
		Logs: []*profile.WorkoutLog{
			{Date: monday.Add(7 * time.Hour), DistanceKm: 6, DurationSec: 1800},
		},
	}
}

func TestFormatWeek(t *testing.T) {
	got := formatWeek(testWeek())

	for _, want := range []string{
		"Plan: 10K base, week 1 of 4",
		"Planned: 8.0 km, 44 min, 1 sessions",
		"Mon 10 Jun  [past]",
		"  planned  Rest",
		"  done     6.0 km in 30m (5:00/km)",
		"Tue 11 Jun  [today]",
		"  planned  Easy 8 km @ 5:30  (8.0 km, 44 min)",
		"  note     keep it relaxed",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("formatWeek() missing %q\ngot:\n%s", want, got)
		}
	}
	if strings.Count(got, "done") != 1 {
		t.Errorf("expected a single done line, got:\n%s", got)
	}
}

func TestCoach_ReviewWeek(t *testing.T) {
	client := &fakeClient{replies: []string{"FOCUS: aerobic base"}}
	got, err := NewCoach(client).ReviewWeek(context.Background(), testWeek())
	if err != nil {
		t.Fatalf("ReviewWeek failed: %v", err)
	}
	if got != "FOCUS: aerobic base" {
		t.Errorf("ReviewWeek() = %q", got)
	}

	if len(client.requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(client.requests))
	}
	msgs := client.requests[0]
	if len(msgs) != 2 || msgs[0].Role != "system" || msgs[1].Role != "user" {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
	if !strings.Contains(msgs[1].Content, "Plan: 10K base, week 1 of 4") {
		t.Errorf("prompt does not contain the week:\n%s", msgs[1].Content)
	}
}

func TestCoach_ReviewWeekError(t *testing.T) {
	client := &fakeClient{err: errors.New("boom")}
	if _, err := NewCoach(client).ReviewWeek(context.Background(), testWeek()); err == nil {
		t.Fatal("expected error")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h"},
		{95, "1h35m"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.minutes); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestDecodeJSON(t *testing.T) {
	var out struct {
		Name string `json:"name"`
	}
	if err := decodeJSON("Sure!\n```json\n{\"name\": \"10K\"}\n```", &out); err != nil {
		t.Fatalf("decodeJSON failed: %v", err)
	}
	if out.Name != "10K" {
		t.Errorf("name = %q, want 10K", out.Name)
	}
	if err := decodeJSON("no json here", &out); err == nil {
		t.Error("expected error for reply without JSON")
	}
}
