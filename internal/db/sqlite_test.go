package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
	"github.com/javiermolinar/trote/internal/reference"
	"github.com/javiermolinar/trote/internal/strava"
)

// newTestRepo creates a temporary SQLite repository for testing.
func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}

func TestNew_SeedsCatalog(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	catalog, err := plan.Catalog()
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	plans, err := repo.ListPlans(ctx)
	if err != nil {
		t.Fatalf("ListPlans failed: %v", err)
	}
	if len(plans) != len(catalog) {
		t.Fatalf("expected %d seeded plans, got %d", len(catalog), len(plans))
	}
	for i := 1; i < len(plans); i++ {
		if plans[i-1].Path > plans[i].Path {
			t.Errorf("plans not ordered by path: %s before %s", plans[i-1].Path, plans[i].Path)
		}
	}
}

func TestSaveAndGetPlan(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := &plan.Plan{
		Path:     "custom",
		Name:     "Custom",
		Coach:    "Me",
		Level:    "advanced",
		Duration: 1,
		Days: []plan.DayRecord{
			{Activities: []plan.Activity{{Type: plan.TypeEasy, Load: plan.Distance{Km: 8}}}},
			{Note: "rest", Activities: []plan.Activity{{Type: plan.TypeOff}}},
			{Activities: []plan.Activity{{Type: plan.TypeInterval, Load: plan.Intervals{Workouts: []plan.Workout{
				{Name: "main", Series: []plan.Series{{Sets: "6x", Work: "400m", Rest: "90s"}}},
			}}}}},
		},
	}
	if err := repo.SavePlan(ctx, p); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}

	got, err := repo.GetPlan(ctx, "custom")
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected plan, got nil")
	}
	if got.Name != "Custom" || got.Level != "advanced" || len(got.Days) != 3 {
		t.Errorf("unexpected plan: %+v", got.Summary())
	}
	if d, ok := got.Days[0].Activities[0].Load.(plan.Distance); !ok || d.Km != 8 {
		t.Errorf("day 0 load = %#v", got.Days[0].Activities[0].Load)
	}
	if got.Days[1].Note != "rest" {
		t.Errorf("day 1 note = %q", got.Days[1].Note)
	}

	p.Name = "Renamed"
	if err := repo.SavePlan(ctx, p); err != nil {
		t.Fatalf("second SavePlan failed: %v", err)
	}
	got, _ = repo.GetPlan(ctx, "custom")
	if got.Name != "Renamed" {
		t.Errorf("plan not replaced, name = %q", got.Name)
	}
}

func TestGetPlan_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	got, err := repo.GetPlan(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestSaveAndGetProfile(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := profile.New("u1")
	if err := p.Activate("10k-base"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetSettings("10k-base", profile.PaceSettings{
		BaseTime:     "00:45:00",
		BaseDistance: reference.Dist10K,
		StartDate:    "2024-06-10",
		Overrides:    map[string]string{reference.ZoneEasy: "5:30"},
	}); err != nil {
		t.Fatal(err)
	}
	p.TotalDistance = 42.5
	p.StreakDays = 3
	day := 2
	p.CompletedWorkouts = []profile.CompletedWorkout{{
		ID:           "w1",
		Date:         time.Date(2024, 6, 12, 0, 0, 0, 0, time.Local),
		DistanceKm:   7,
		Source:       profile.SourceStrava,
		PlanPath:     "10k-base",
		PlanDayIndex: &day,
	}}

	if err := repo.SaveProfile(ctx, p); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	got, err := repo.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if got.ActivePlan != "10k-base" || len(got.SavedPlans) != 1 {
		t.Errorf("unexpected plans: %q %v", got.ActivePlan, got.SavedPlans)
	}
	s := got.Settings("10k-base")
	if s.BaseTime != "00:45:00" || s.StartDate != "2024-06-10" || s.Overrides[reference.ZoneEasy] != "5:30" {
		t.Errorf("unexpected settings: %+v", s)
	}
	if got.TotalDistance != 42.5 || got.StreakDays != 3 {
		t.Errorf("unexpected totals: %v %d", got.TotalDistance, got.StreakDays)
	}
	if len(got.CompletedWorkouts) != 1 {
		t.Fatalf("completed workouts = %+v", got.CompletedWorkouts)
	}
	if c := got.CompletedWorkouts[0]; c.ID != "w1" || !c.Date.Equal(p.CompletedWorkouts[0].Date) ||
		c.Source != profile.SourceStrava || c.PlanDayIndex == nil || *c.PlanDayIndex != 2 {
		t.Errorf("completed workout = %+v", c)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be set")
	}

	missing, err := repo.GetProfile(ctx, "nobody")
	if err != nil || missing != nil {
		t.Errorf("GetProfile(nobody) = %+v, %v; want nil, nil", missing, err)
	}
}

func TestProfile_LastWriteWins(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := profile.New("u1")
	_ = first.Activate("a")
	second := profile.New("u1")
	_ = second.Activate("b")

	if err := repo.SaveProfile(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveProfile(ctx, second); err != nil {
		t.Fatal(err)
	}
	got, _ := repo.GetProfile(ctx, "u1")
	if got.ActivePlan != "b" || len(got.SavedPlans) != 1 {
		t.Errorf("expected the second write to replace the first, got %+v", got)
	}
}

func TestCreateAndListWorkouts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	older := profile.NewWorkoutLog("u1", time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local), 8, 2640, profile.SourceManual)
	idx := 0
	older.PlanPath = "10k-base"
	older.PlanDayIndex = &idx

	newer := profile.NewWorkoutLog("u1", time.Date(2024, 6, 12, 0, 0, 0, 0, time.Local), 10, 3000, profile.SourceStrava)
	newer.ExternalID = "101"
	newer.ExternalType = "Run"

	other := profile.NewWorkoutLog("u2", time.Date(2024, 6, 12, 0, 0, 0, 0, time.Local), 5, 1500, profile.SourceManual)

	for _, w := range []*profile.WorkoutLog{older, newer, other} {
		if err := repo.CreateWorkout(ctx, w); err != nil {
			t.Fatalf("CreateWorkout failed: %v", err)
		}
	}

	logs, err := repo.ListWorkouts(ctx, "u1")
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if logs[0].ID != newer.ID {
		t.Errorf("expected most recent first, got %s", logs[0].ID)
	}
	if logs[0].ExternalID != "101" || logs[0].Source != profile.SourceStrava || logs[0].Pace != "5:00" {
		t.Errorf("unexpected newer log: %+v", logs[0])
	}
	if logs[1].PlanDayIndex == nil || *logs[1].PlanDayIndex != 0 {
		t.Errorf("plan day index not round-tripped: %+v", logs[1].PlanDayIndex)
	}
	if logs[1].Date.Location() != time.Local || logs[1].Date.Day() != 10 {
		t.Errorf("date = %v, want local June 10", logs[1].Date)
	}
}

func TestCreateWorkout_DuplicateExternalID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	date := time.Date(2024, 6, 12, 0, 0, 0, 0, time.Local)

	w := profile.NewWorkoutLog("u1", date, 10, 3000, profile.SourceStrava)
	w.ExternalID = "101"
	if err := repo.CreateWorkout(ctx, w); err != nil {
		t.Fatal(err)
	}

	dup := profile.NewWorkoutLog("u1", date, 10, 3000, profile.SourceStrava)
	dup.ExternalID = "101"
	if err := repo.CreateWorkout(ctx, dup); !errors.Is(err, profile.ErrDuplicateWorkout) {
		t.Errorf("expected ErrDuplicateWorkout, got %v", err)
	}

	// Manual logs have no external id and never collide.
	for i := 0; i < 2; i++ {
		if err := repo.CreateWorkout(ctx, profile.NewWorkoutLog("u1", date, 5, 0, profile.SourceManual)); err != nil {
			t.Errorf("manual log %d: %v", i, err)
		}
	}

	ids, err := repo.ExternalIDs(ctx, "u1", profile.SourceStrava)
	if err != nil {
		t.Fatalf("ExternalIDs failed: %v", err)
	}
	if len(ids) != 1 || !ids["101"] {
		t.Errorf("ExternalIDs = %v", ids)
	}
}

func TestTokens(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	got, err := repo.GetToken(ctx, "u1")
	if err != nil || got != nil {
		t.Fatalf("GetToken before save = %+v, %v", got, err)
	}

	expires := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	if err := repo.SaveToken(ctx, "u1", &strava.Token{AccessToken: "a", RefreshToken: "r", ExpiresAt: expires, AthleteID: 42}); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}
	if err := repo.SaveToken(ctx, "u1", &strava.Token{AccessToken: "a2", RefreshToken: "r2", ExpiresAt: expires, AthleteID: 42}); err != nil {
		t.Fatalf("second SaveToken failed: %v", err)
	}

	got, err = repo.GetToken(ctx, "u1")
	if err != nil {
		t.Fatalf("GetToken failed: %v", err)
	}
	if got.AccessToken != "a2" || got.RefreshToken != "r2" || got.AthleteID != 42 {
		t.Errorf("unexpected token: %+v", got)
	}
	if !got.ExpiresAt.Equal(expires) {
		t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, expires)
	}
}

func TestParseDate_LocalTimezone(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"date only", "2025-01-15"},
		{"sqlite date placeholder", "2025-06-20T00:00:00Z"},
		{"date only end of year", "2025-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parseDate(tt.input)
			if err != nil {
				t.Fatalf("parseDate(%q) failed: %v", tt.input, err)
			}
			if parsed.Location() != time.Local {
				t.Errorf("parseDate(%q) location = %v, want %v", tt.input, parsed.Location(), time.Local)
			}
			localMidnight := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.Local)
			if !parsed.Equal(localMidnight) {
				t.Errorf("parseDate(%q) = %v, want local midnight", tt.input, parsed)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2025-01-15T09:00:00Z", false},
		{"2025-01-15T09:00:00+05:00", false},
		{"2025-01-15 09:00:00", false},
		{"15/01/2025", true},
		{"", true},
	}
	for _, tt := range tests {
		if _, err := parseTimestamp(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("parseTimestamp(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestAddColumn(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.addColumn("profiles", "completed_workouts", "TEXT NOT NULL DEFAULT '[]'"); err != nil {
		t.Fatalf("existing column: %v", err)
	}

	if _, err := repo.db.Exec(`CREATE TABLE legacy (id TEXT PRIMARY KEY)`); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.db.Exec(`INSERT INTO legacy (id) VALUES ('a')`); err != nil {
		t.Fatal(err)
	}
	if err := repo.addColumn("legacy", "extra", "TEXT NOT NULL DEFAULT '[]'"); err != nil {
		t.Fatalf("adding column: %v", err)
	}
	var extra string
	if err := repo.db.QueryRow(`SELECT extra FROM legacy WHERE id = 'a'`).Scan(&extra); err != nil || extra != "[]" {
		t.Errorf("extra = %q, %v; want the default", extra, err)
	}
}
