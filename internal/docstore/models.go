package docstore

import (
	"fmt"
	"time"

	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
	"github.com/javiermolinar/trote/internal/strava"
)

// planDoc stores the summary fields for queries and the full plan JSON.
type planDoc struct {
	Path      string    `firestore:"path"`
	Name      string    `firestore:"name"`
	Coach     string    `firestore:"coach,omitempty"`
	Level     string    `firestore:"nivel,omitempty"`
	Duration  int       `firestore:"duration"`
	Volume    string    `firestore:"volume,omitempty"`
	Days      int       `firestore:"days"`
	Document  string    `firestore:"document"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func toPlanDoc(p *plan.Plan) (planDoc, error) {
	data, err := plan.Encode(p)
	if err != nil {
		return planDoc{}, fmt.Errorf("encoding plan: %w", err)
	}
	return planDoc{
		Path:      p.Path,
		Name:      p.Name,
		Coach:     p.Coach,
		Level:     p.Level,
		Duration:  p.Duration,
		Volume:    p.Volume,
		Days:      len(p.Days),
		Document:  string(data),
		UpdatedAt: time.Now().UTC(),
	}, nil
}

func (d planDoc) plan() (*plan.Plan, error) {
	p, err := plan.Decode([]byte(d.Document))
	if err != nil {
		return nil, fmt.Errorf("decoding plan %s: %w", d.Path, err)
	}
	return p, nil
}

func (d planDoc) summary() plan.Summary {
	return plan.Summary{
		Path:     d.Path,
		Name:     d.Name,
		Coach:    d.Coach,
		Level:    d.Level,
		Duration: d.Duration,
		Volume:   d.Volume,
		Days:     d.Days,
	}
}

type profileDoc struct {
	UserID            string                       `firestore:"userId"`
	ActivePlan        string                       `firestore:"activePlan"`
	SavedPlans        []string                     `firestore:"savedPlans"`
	CustomPaces       map[string]map[string]string `firestore:"customPaces"`
	CompletedWorkouts []completedDoc               `firestore:"completedWorkouts"`
	TotalDistance     float64                      `firestore:"totalDistance"`
	StreakDays        int                          `firestore:"streakDays"`
	UpdatedAt         time.Time                    `firestore:"updatedAt"`
}

// completedDoc is one entry of a profile's completedWorkouts array.
type completedDoc struct {
	ID           string  `firestore:"id"`
	Date         string  `firestore:"date"`
	DistanceKm   float64 `firestore:"distanceKm"`
	Source       string  `firestore:"source"`
	PlanPath     string  `firestore:"planPath,omitempty"`
	PlanDayIndex *int    `firestore:"planDayIndex"`
}

func toProfileDoc(p *profile.Profile) profileDoc {
	paces := make(map[string]map[string]string, len(p.CustomPaces))
	for path, s := range p.CustomPaces {
		paces[path] = s.Flat()
	}
	saved := p.SavedPlans
	if saved == nil {
		saved = []string{}
	}
	completed := make([]completedDoc, len(p.CompletedWorkouts))
	for i, c := range p.CompletedWorkouts {
		completed[i] = completedDoc{
			ID:           c.ID,
			Date:         c.Date.Format("2006-01-02"),
			DistanceKm:   c.DistanceKm,
			Source:       string(c.Source),
			PlanPath:     c.PlanPath,
			PlanDayIndex: c.PlanDayIndex,
		}
	}
	return profileDoc{
		UserID:            p.UserID,
		ActivePlan:        p.ActivePlan,
		SavedPlans:        saved,
		CustomPaces:       paces,
		CompletedWorkouts: completed,
		TotalDistance:     p.TotalDistance,
		StreakDays:        p.StreakDays,
		UpdatedAt:         p.UpdatedAt,
	}
}

func (d profileDoc) profile() *profile.Profile {
	p := profile.New(d.UserID)
	p.ActivePlan = d.ActivePlan
	p.SavedPlans = d.SavedPlans
	for path, m := range d.CustomPaces {
		p.CustomPaces[path] = profile.FromFlat(m)
	}
	for _, c := range d.CompletedWorkouts {
		date, _ := time.ParseInLocation("2006-01-02", c.Date, time.Local)
		p.CompletedWorkouts = append(p.CompletedWorkouts, profile.CompletedWorkout{
			ID:           c.ID,
			Date:         date,
			DistanceKm:   c.DistanceKm,
			Source:       profile.Source(c.Source),
			PlanPath:     c.PlanPath,
			PlanDayIndex: c.PlanDayIndex,
		})
	}
	p.TotalDistance = d.TotalDistance
	p.StreakDays = d.StreakDays
	p.UpdatedAt = d.UpdatedAt
	return p
}

type workoutDoc struct {
	ID           string    `firestore:"id"`
	UserID       string    `firestore:"userId"`
	Date         string    `firestore:"date"` // YYYY-MM-DD, sorts lexically
	DistanceKm   float64   `firestore:"distanceKm"`
	DurationSec  int       `firestore:"durationSec"`
	Pace         string    `firestore:"pace,omitempty"`
	Source       string    `firestore:"source"`
	ExternalID   string    `firestore:"externalId,omitempty"`
	ExternalType string    `firestore:"externalType,omitempty"`
	PlanPath     string    `firestore:"planPath,omitempty"`
	PlanDayIndex *int      `firestore:"planDayIndex"`
	Notes        string    `firestore:"notes,omitempty"`
	CreatedAt    time.Time `firestore:"createdAt"`
}

func workoutDocID(w *profile.WorkoutLog) string {
	if w.ExternalID == "" {
		return w.ID
	}
	return fmt.Sprintf("%s_%s_%s", w.UserID, w.Source, w.ExternalID)
}

func toWorkoutDoc(w *profile.WorkoutLog) workoutDoc {
	return workoutDoc{
		ID:           w.ID,
		UserID:       w.UserID,
		Date:         w.Date.Format("2006-01-02"),
		DistanceKm:   w.DistanceKm,
		DurationSec:  w.DurationSec,
		Pace:         w.Pace,
		Source:       string(w.Source),
		ExternalID:   w.ExternalID,
		ExternalType: w.ExternalType,
		PlanPath:     w.PlanPath,
		PlanDayIndex: w.PlanDayIndex,
		Notes:        w.Notes,
		CreatedAt:    w.CreatedAt,
	}
}

func (d workoutDoc) workout() *profile.WorkoutLog {
	date, _ := time.ParseInLocation("2006-01-02", d.Date, time.Local)
	return &profile.WorkoutLog{
		ID:           d.ID,
		UserID:       d.UserID,
		Date:         date,
		DistanceKm:   d.DistanceKm,
		DurationSec:  d.DurationSec,
		Pace:         d.Pace,
		Source:       profile.Source(d.Source),
		ExternalID:   d.ExternalID,
		ExternalType: d.ExternalType,
		PlanPath:     d.PlanPath,
		PlanDayIndex: d.PlanDayIndex,
		Notes:        d.Notes,
		CreatedAt:    d.CreatedAt,
	}
}

type tokenDoc struct {
	AccessToken  string    `firestore:"accessToken"`
	RefreshToken string    `firestore:"refreshToken"`
	ExpiresAt    time.Time `firestore:"expiresAt"`
	AthleteID    int64     `firestore:"athleteId"`
}

func toTokenDoc(t *strava.Token) tokenDoc {
	return tokenDoc{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresAt:    t.ExpiresAt,
		AthleteID:    t.AthleteID,
	}
}

func (d tokenDoc) token() *strava.Token {
	return &strava.Token{
		AccessToken:  d.AccessToken,
		RefreshToken: d.RefreshToken,
		ExpiresAt:    d.ExpiresAt,
		AthleteID:    d.AthleteID,
	}
}
