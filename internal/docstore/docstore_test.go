package docstore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
	"github.com/javiermolinar/trote/internal/strava"
)

func TestProfileDocRoundTrip(t *testing.T) {
	p := profile.New("runner")
	p.ActivePlan = "10k-base"
	p.SavedPlans = []string{"10k-base", "half-marathon"}
	p.CustomPaces["10k-base"] = profile.PaceSettings{
		BaseTime:     "00:45:00",
		BaseDistance: "10K",
		StartDate:    "2024-06-10",
		Overrides:    map[string]string{"Easy Km": "5:30"},
	}
	p.TotalDistance = 42.5
	p.StreakDays = 3
	day := 4
	p.CompletedWorkouts = []profile.CompletedWorkout{{
		ID:           "w1",
		Date:         time.Date(2024, 6, 14, 0, 0, 0, 0, time.Local),
		DistanceKm:   6.2,
		Source:       profile.SourceStrava,
		PlanPath:     "10k-base",
		PlanDayIndex: &day,
	}}

	doc := toProfileDoc(p)
	if len(doc.CompletedWorkouts) != 1 || doc.CompletedWorkouts[0].Date != "2024-06-14" {
		t.Errorf("completedWorkouts = %+v", doc.CompletedWorkouts)
	}
	if got := doc.CustomPaces["10k-base"]["baseTime"]; got != "00:45:00" {
		t.Errorf("flattened baseTime = %q, want 00:45:00", got)
	}
	if got := doc.CustomPaces["10k-base"]["Easy Km"]; got != "5:30" {
		t.Errorf("flattened Easy Km = %q, want 5:30", got)
	}

	back := doc.profile()
	if back.ActivePlan != p.ActivePlan || back.TotalDistance != p.TotalDistance || back.StreakDays != 3 {
		t.Errorf("profile() = %+v, want fields of %+v", back, p)
	}
	if len(back.CompletedWorkouts) != 1 {
		t.Fatalf("completed after round trip = %+v", back.CompletedWorkouts)
	}
	c := back.CompletedWorkouts[0]
	if c.ID != "w1" || c.Source != profile.SourceStrava || *c.PlanDayIndex != 4 || !c.Date.Equal(p.CompletedWorkouts[0].Date) {
		t.Errorf("completed after round trip = %+v", c)
	}
	s := back.Settings("10k-base")
	if s.BaseDistance != "10K" || s.StartDate != "2024-06-10" || s.Overrides["Easy Km"] != "5:30" {
		t.Errorf("settings after round trip = %+v", s)
	}
}

func TestToProfileDocNilSavedPlans(t *testing.T) {
	doc := toProfileDoc(profile.New("runner"))
	if doc.SavedPlans == nil {
		t.Error("SavedPlans should be an empty slice, not nil")
	}
}

func TestWorkoutDocID(t *testing.T) {
	manual := &profile.WorkoutLog{ID: "abc", UserID: "runner", Source: profile.SourceManual}
	if got := workoutDocID(manual); got != "abc" {
		t.Errorf("manual id = %q, want abc", got)
	}

	imported := &profile.WorkoutLog{ID: "abc", UserID: "runner", Source: profile.SourceStrava, ExternalID: "987"}
	if got := workoutDocID(imported); got != "runner_strava_987" {
		t.Errorf("imported id = %q, want runner_strava_987", got)
	}
}

func TestWorkoutDocDate(t *testing.T) {
	idx := 4
	w := &profile.WorkoutLog{
		ID:           "w1",
		UserID:       "runner",
		Date:         time.Date(2024, 6, 14, 0, 0, 0, 0, time.Local),
		DistanceKm:   10,
		DurationSec:  3000,
		Source:       profile.SourceStrava,
		ExternalID:   "987",
		PlanPath:     "10k-base",
		PlanDayIndex: &idx,
	}

	doc := toWorkoutDoc(w)
	if doc.Date != "2024-06-14" {
		t.Errorf("doc date = %q, want 2024-06-14", doc.Date)
	}

	back := doc.workout()
	if !back.Date.Equal(w.Date) {
		t.Errorf("date = %v, want %v", back.Date, w.Date)
	}
	if back.PlanDayIndex == nil || *back.PlanDayIndex != 4 {
		t.Errorf("PlanDayIndex = %v, want 4", back.PlanDayIndex)
	}
	if back.Source != profile.SourceStrava {
		t.Errorf("Source = %q, want strava", back.Source)
	}
}

func TestPlanDocSummary(t *testing.T) {
	p := &plan.Plan{
		Path:     "custom",
		Name:     "Custom",
		Duration: 1,
		Days:     make([]plan.DayRecord, 7),
	}
	doc, err := toPlanDoc(p)
	if err != nil {
		t.Fatalf("toPlanDoc: %v", err)
	}
	if sum := doc.summary(); sum.Days != 7 || sum.Path != "custom" {
		t.Errorf("summary = %+v", sum)
	}
	got, err := doc.plan()
	if err != nil {
		t.Fatalf("plan(): %v", err)
	}
	if got.Path != "custom" || len(got.Days) != 7 {
		t.Errorf("plan() = %+v", got)
	}
}

// newEmulatorStore connects to the Firestore emulator, skipping when it is
// not running.
func newEmulatorStore(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	s, err := New(context.Background(), "trote-test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestEmulatorStore(t *testing.T) {
	s := newEmulatorStore(t)
	ctx := context.Background()
	user := "runner-" + uuid.NewString()

	t.Run("catalog seeded", func(t *testing.T) {
		p, err := s.GetPlan(ctx, "10k-base")
		if err != nil {
			t.Fatalf("GetPlan: %v", err)
		}
		if p == nil {
			t.Fatal("catalog plan missing")
		}
	})

	t.Run("missing profile", func(t *testing.T) {
		p, err := s.GetProfile(ctx, user)
		if err != nil {
			t.Fatalf("GetProfile: %v", err)
		}
		if p != nil {
			t.Errorf("GetProfile = %+v, want nil", p)
		}
	})

	t.Run("duplicate import", func(t *testing.T) {
		w := profile.NewWorkoutLog(user, time.Now(), 5, 1500, profile.SourceStrava)
		w.ExternalID = "42"
		if err := s.CreateWorkout(ctx, w); err != nil {
			t.Fatalf("CreateWorkout: %v", err)
		}
		again := *w
		again.ID = uuid.NewString()
		if err := s.CreateWorkout(ctx, &again); !errors.Is(err, profile.ErrDuplicateWorkout) {
			t.Errorf("second CreateWorkout = %v, want ErrDuplicateWorkout", err)
		}

		ids, err := s.ExternalIDs(ctx, user, profile.SourceStrava)
		if err != nil {
			t.Fatalf("ExternalIDs: %v", err)
		}
		if !ids["42"] {
			t.Errorf("ExternalIDs = %v, want 42", ids)
		}
	})

	t.Run("token", func(t *testing.T) {
		tok := &strava.Token{AccessToken: "a", RefreshToken: "r", ExpiresAt: time.Now().Add(time.Hour).UTC(), AthleteID: 7}
		if err := s.SaveToken(ctx, user, tok); err != nil {
			t.Fatalf("SaveToken: %v", err)
		}
		got, err := s.GetToken(ctx, user)
		if err != nil {
			t.Fatalf("GetToken: %v", err)
		}
		if got == nil || got.AthleteID != 7 {
			t.Errorf("GetToken = %+v", got)
		}
	})
}
