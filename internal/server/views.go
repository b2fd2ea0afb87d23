package server

import (
	"time"

	"github.com/javiermolinar/trote/internal/dateutil"
	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
	"github.com/javiermolinar/trote/internal/summary"
)

type volumeJSON struct {
	Km      float64 `json:"km"`
	Minutes float64 `json:"minutes"`
}

func newVolume(v plan.Volume) volumeJSON {
	r := v.Rounded()
	return volumeJSON{Km: r.Km, Minutes: r.Minutes}
}

type planSummaryJSON struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Coach    string `json:"coach,omitempty"`
	Level    string `json:"nivel,omitempty"`
	Duration int    `json:"duration"`
	Volume   string `json:"volume,omitempty"`
	Days     int    `json:"days"`
}

func newPlanSummary(s plan.Summary) planSummaryJSON {
	return planSummaryJSON(s)
}

type activityJSON struct {
	Type   string     `json:"type"`
	Label  string     `json:"label"`
	Pace   string     `json:"pace,omitempty"`
	Volume volumeJSON `json:"volume"`
	Note   string     `json:"note,omitempty"`
}

type dayJSON struct {
	Index      int            `json:"index"`
	Date       string         `json:"date"`
	Display    string         `json:"display"`
	IsToday    bool           `json:"isToday"`
	IsPast     bool           `json:"isPast"`
	Note       string         `json:"note,omitempty"`
	Activities []activityJSON `json:"activities"`
	Volume     volumeJSON     `json:"volume"`
}

type weekJSON struct {
	Index     int        `json:"index"`
	StartDate string     `json:"startDate"`
	Current   bool       `json:"current"`
	Volume    volumeJSON `json:"volume"`
	Sessions  int        `json:"sessions"`
	Days      []dayJSON  `json:"days"`
}

type weeksResponse struct {
	Path        string     `json:"path"`
	Name        string     `json:"name"`
	Param       int        `json:"param"`
	StartDate   string     `json:"startDate"`
	CurrentWeek int        `json:"currentWeek"`
	Weeks       []weekJSON `json:"weeks"`
}

func newWeeksResponse(v *summary.PlanView) weeksResponse {
	resolve := v.Resolver.Func()
	out := weeksResponse{
		Path:        v.Plan.Path,
		Name:        v.Plan.Name,
		Param:       v.Param,
		StartDate:   dateutil.FormatDate(v.Start),
		CurrentWeek: v.Current,
		Weeks:       make([]weekJSON, len(v.Weeks)),
	}
	for i, b := range v.Weeks {
		stats := v.Stats(i)
		w := weekJSON{
			Index:     b.Index,
			StartDate: dateutil.FormatDate(b.StartDate),
			Current:   i == v.Current,
			Volume:    newVolume(stats.Total),
			Sessions:  stats.Sessions,
			Days:      make([]dayJSON, len(b.Days)),
		}
		for j, d := range b.Days {
			day := dayJSON{
				Index:      d.Index,
				Date:       dateutil.FormatDate(d.Date),
				Display:    d.Display,
				IsToday:    d.IsToday,
				IsPast:     d.IsPast,
				Note:       d.Record.Note,
				Activities: make([]activityJSON, 0, len(d.Record.Activities)),
				Volume:     newVolume(stats.Days[j]),
			}
			for _, a := range d.Record.Activities {
				aj := activityJSON{
					Type:   string(a.Type),
					Label:  a.Label(),
					Volume: newVolume(plan.ActivityVolume(a, resolve)),
					Note:   a.Note,
				}
				if p := resolve(a); p != plan.NotAvailable {
					aj.Pace = p
				}
				day.Activities = append(day.Activities, aj)
			}
			w.Days[j] = day
		}
		out.Weeks[i] = w
	}
	return out
}

type profileJSON struct {
	UserID            string                          `json:"userId"`
	ActivePlan        string                          `json:"activePlan,omitempty"`
	SavedPlans        []string                        `json:"savedPlans"`
	CustomPaces       map[string]profile.PaceSettings `json:"customPaces"`
	CompletedWorkouts []completedJSON                 `json:"completedWorkouts"`
	TotalDistance     float64                         `json:"totalDistance"`
	StreakDays        int                             `json:"streakDays"`
	UpdatedAt         *time.Time                      `json:"updatedAt,omitempty"`
}

type completedJSON struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"`
	DistanceKm   float64 `json:"distanceKm"`
	Source       string  `json:"source"`
	PlanPath     string  `json:"planPath,omitempty"`
	PlanDayIndex *int    `json:"planDayIndex,omitempty"`
}

func newProfile(p *profile.Profile) profileJSON {
	out := profileJSON{
		UserID:            p.UserID,
		ActivePlan:        p.ActivePlan,
		SavedPlans:        p.SavedPlans,
		CustomPaces:       p.CustomPaces,
		CompletedWorkouts: make([]completedJSON, len(p.CompletedWorkouts)),
		TotalDistance:     p.TotalDistance,
		StreakDays:        p.StreakDays,
	}
	for i, c := range p.CompletedWorkouts {
		out.CompletedWorkouts[i] = completedJSON{
			ID:           c.ID,
			Date:         dateutil.FormatDate(c.Date),
			DistanceKm:   c.DistanceKm,
			Source:       string(c.Source),
			PlanPath:     c.PlanPath,
			PlanDayIndex: c.PlanDayIndex,
		}
	}
	if out.SavedPlans == nil {
		out.SavedPlans = []string{}
	}
	if out.CustomPaces == nil {
		out.CustomPaces = map[string]profile.PaceSettings{}
	}
	if !p.UpdatedAt.IsZero() {
		out.UpdatedAt = &p.UpdatedAt
	}
	return out
}

type workoutJSON struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"`
	DistanceKm   float64 `json:"distanceKm"`
	DurationSec  int     `json:"durationSec"`
	Pace         string  `json:"pace,omitempty"`
	Source       string  `json:"source"`
	ExternalID   string  `json:"externalId,omitempty"`
	ExternalType string  `json:"externalType,omitempty"`
	PlanPath     string  `json:"planPath,omitempty"`
	PlanDayIndex *int    `json:"planDayIndex,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

func newWorkout(w *profile.WorkoutLog) workoutJSON {
	return workoutJSON{
		ID:           w.ID,
		Date:         dateutil.FormatDate(w.Date),
		DistanceKm:   w.DistanceKm,
		DurationSec:  w.DurationSec,
		Pace:         w.Pace,
		Source:       string(w.Source),
		ExternalID:   w.ExternalID,
		ExternalType: w.ExternalType,
		PlanPath:     w.PlanPath,
		PlanDayIndex: w.PlanDayIndex,
		Notes:        w.Notes,
	}
}
