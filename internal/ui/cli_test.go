package ui

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/trote/internal/config"
	"github.com/javiermolinar/trote/internal/dateutil"
	"github.com/javiermolinar/trote/internal/db"
	"github.com/javiermolinar/trote/internal/profile"
)

var testNow = time.Date(2024, 6, 12, 9, 0, 0, 0, time.Local)

// testEnv is a store and config shared by fresh App instances, so flag
// values never leak between commands.
type testEnv struct {
	store  *db.SQLite
	config *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	DisableColor()

	repo, err := db.New(filepath.Join(t.TempDir(), "trote.db"))
	if err != nil {
		t.Fatalf("creating repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	cfg := config.Default()
	cfg.Athlete.UserID = "runner"
	return &testEnv{store: repo, config: cfg}
}

// run executes the CLI with args and returns its output.
func run(t *testing.T, env *testEnv, args ...string) (string, error) {
	t.Helper()
	a := NewApp(env.store, env.config)
	a.now = func() time.Time { return testNow }

	var out bytes.Buffer
	a.root.SetOut(&out)
	a.root.SetErr(&out)
	a.root.SetIn(strings.NewReader(""))
	a.root.SetArgs(args)
	err := a.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, a *testEnv, args ...string) string {
	t.Helper()
	out, err := run(t, a, args...)
	if err != nil {
		t.Fatalf("%v failed: %v\n%s", args, err, out)
	}
	return out
}

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestVersion(t *testing.T) {
	a := newTestEnv(t)
	assertContains(t, mustRun(t, a, "version"), "trote dev")
}

func TestPlansAndActivate(t *testing.T) {
	a := newTestEnv(t)

	out := mustRun(t, a, "plans")
	assertContains(t, out, "10k-base", "10K Base", "half-marathon")

	out = mustRun(t, a, "activate", "10k-base", "--start", "2024-06-10")
	assertContains(t, out, "Active plan: 10K Base, starting 2024-06-10")

	out = mustRun(t, a, "plans")
	assertContains(t, out, "▸ 10k-base")

	out = mustRun(t, a, "show")
	assertContains(t, out, "10K Base · WEEK 1 of 4", "Easy 6 km", "▸ today", "Planned:")

	out = mustRun(t, a, "show", "--week", "2")
	assertContains(t, out, "WEEK 2 of 4")

	if _, err := run(t, a, "show", "--week", "9"); err == nil {
		t.Error("expected out of range week to fail")
	}
}

func TestActivateDefaultsToNextStartWeekday(t *testing.T) {
	a := newTestEnv(t)

	out := mustRun(t, a, "activate", "half-marathon")
	assertContains(t, out, "starting 2024-06-17")

	prof, err := profile.Load(t.Context(), a.store, "runner")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if prof.ActivePlan != "half-marathon" {
		t.Errorf("active plan = %q, want half-marathon", prof.ActivePlan)
	}
}

func TestShowWithoutActivePlan(t *testing.T) {
	a := newTestEnv(t)
	_, err := run(t, a, "show")
	if err == nil || !strings.Contains(err.Error(), "no active plan") {
		t.Fatalf("expected no active plan error, got %v", err)
	}
}

func TestActivateUnknownPlan(t *testing.T) {
	a := newTestEnv(t)
	if _, err := run(t, a, "activate", "nope"); err == nil {
		t.Fatal("expected error for unknown plan")
	}
}

func TestLogAndWorkouts(t *testing.T) {
	a := newTestEnv(t)

	out := mustRun(t, a, "log", "--date", "2024-06-11", "--km", "10", "--time", "00:50:00", "--notes", "river loop")
	assertContains(t, out, "Logged 10.0 km in 50m on 2024-06-11 (5:00/km)", "Total: 10.0 km · streak 1 days")

	out = mustRun(t, a, "log", "--km", "5", "--plan", "10k-base", "--day", "3")
	assertContains(t, out, "Logged 5.0 km in 0m on 2024-06-12\n", "Total: 15.0 km · streak 2 days")

	out = mustRun(t, a, "workouts")
	assertContains(t, out, "2024-06-11", "river loop", "10k-base day 3", "2 workouts · 15.0 km")

	out = mustRun(t, a, "workouts", "--days", "0")
	assertContains(t, out, "2 workouts")

	out = mustRun(t, a, "workouts", "--from", "2024-06-12")
	assertContains(t, out, "1 workouts · 5.0 km")

	out = mustRun(t, a, "workouts", "--from", "2024-06-01", "--to", "2024-06-10")
	assertContains(t, out, "No workouts logged.")

	if _, err := run(t, a, "workouts", "--from", "2024-06-12", "--to", "2024-06-11"); !errors.Is(err, dateutil.ErrEndDateBeforeStart) {
		t.Errorf("reversed range error = %v", err)
	}
	if _, err := run(t, a, "workouts", "--days", "3", "--from", "2024-06-12"); err == nil {
		t.Error("expected --days with --from to fail")
	}
}

func TestLogErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"empty workout", []string{"log"}, profile.ErrEmptyWorkout},
		{"day without plan", []string{"log", "--km", "5", "--day", "2"}, profile.ErrDayIndexNeedsPlan},
		{"negative distance", []string{"log", "--km=-3"}, profile.ErrNegativeAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestEnv(t)
			_, err := run(t, a, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	a := newTestEnv(t)
	if _, err := run(t, a, "log", "--km", "5", "--time", "fast"); err == nil {
		t.Error("expected invalid duration error")
	}
	if _, err := run(t, a, "log", "--km", "5", "--plan", "10k-base", "--day", "99"); err == nil {
		t.Error("expected day out of range error")
	}
}

func TestPaces(t *testing.T) {
	a := newTestEnv(t)
	mustRun(t, a, "activate", "10k-base", "--start", "2024-06-10")

	out := mustRun(t, a, "paces")
	assertContains(t, out, "10K Base · PACES", "Reference: 00:25:00 over 5km", "Easy Km", "Race predictions", "42km")
	assertContains(t, out, "Start:     2024-06-10 (day 3)", "table ")

	out = mustRun(t, a, "paces", "--adjust", "110")
	assertContains(t, out, "at 110%)")
	if _, err := run(t, a, "paces", "--adjust", "-5"); err == nil {
		t.Error("expected an error for a negative adjustment")
	}

	out = mustRun(t, a, "paces", "set", "baseTime=00:50:00", "baseDistance=10km", "Easy Km=5:45")
	assertContains(t, out, "Pace settings for 10k-base:", "baseDistance     10km", "Easy Km          5:45", "startDate        2024-06-10")

	out = mustRun(t, a, "paces")
	assertContains(t, out, "Reference: 00:50:00 over 10km", "5:45", "(custom)")

	out = mustRun(t, a, "paces", "set", "Easy Km=")
	if strings.Contains(out, "Easy Km") {
		t.Errorf("expected Easy Km override removed:\n%s", out)
	}

	_, err := run(t, a, "paces", "set", "Tempo=4:00")
	var fe *profile.FieldError
	if !errors.As(err, &fe) || fe.Field != "Tempo" {
		t.Fatalf("expected field error for Tempo, got %v", err)
	}
}

func TestParseAssignments(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    map[string]string
		wantErr bool
	}{
		{"single", []string{"baseTime=00:50:00"}, map[string]string{"baseTime": "00:50:00"}, false},
		{"spaces in key", []string{"Easy Km = 5:40"}, map[string]string{"Easy Km": "5:40"}, false},
		{"empty value", []string{"startDate="}, map[string]string{"startDate": ""}, false},
		{"missing equals", []string{"baseTime"}, nil, true},
		{"empty key", []string{"=5:00"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAssignments(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestWeekWithoutInsight(t *testing.T) {
	a := newTestEnv(t)
	mustRun(t, a, "activate", "10k-base", "--start", "2024-06-10")
	mustRun(t, a, "log", "--date", "2024-06-10", "--km", "6", "--time", "00:36:00")

	out := mustRun(t, a, "week", "--no-insight")
	assertContains(t, out, "WEEK 1 of 4", "✓ 6.0 km in 36m (6:00/km)", "Done:    6.0 km · 36m")
	if strings.Contains(out, "COACH") {
		t.Errorf("unexpected coach section:\n%s", out)
	}
}

func TestStravaNotConfigured(t *testing.T) {
	a := newTestEnv(t)
	if _, err := run(t, a, "strava", "auth"); err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Errorf("expected not configured error, got %v", err)
	}
	if _, err := run(t, a, "strava", "import"); err == nil {
		t.Error("expected import to fail without credentials")
	}
}

func TestStravaAuthURL(t *testing.T) {
	a := newTestEnv(t)
	a.config.Strava.ClientID = "123"
	a.config.Strava.ClientSecret = "secret"

	out := mustRun(t, a, "strava", "auth")
	assertContains(t, out, "client_id=123", "state=runner")
}

func TestLoadPlanFile(t *testing.T) {
	a := newTestEnv(t)

	path := filepath.Join(t.TempDir(), "mini.json")
	doc := `{"path": "mini", "name": "Mini", "duration": 1, "dailyWorkouts": [
		{"activities": [{"type": "easy", "distance": 5, "units": "km"}]},
		{"activities": [{"type": "off"}]}
	]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, a, "load", path, "--activate")
	assertContains(t, out, "Loaded mini (Mini, 2 days)", "Active plan: Mini, starting 2024-06-17")

	if _, err := run(t, a, "load", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
