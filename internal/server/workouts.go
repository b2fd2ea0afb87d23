package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/javiermolinar/trote/internal/dateutil"
	"github.com/javiermolinar/trote/internal/pace"
	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
)

type workoutRequest struct {
	Date         string  `json:"date"`
	DistanceKm   float64 `json:"distanceKm"`
	DurationSec  int     `json:"durationSec"`
	Duration     string  `json:"duration"` // HH:MM:SS, used when durationSec is 0
	PlanPath     string  `json:"planPath"`
	PlanDayIndex *int    `json:"planDayIndex"`
	Notes        string  `json:"notes"`
}

func (s *Server) listWorkouts(w http.ResponseWriter, r *http.Request) {
	logs, err := s.profiles.ListWorkouts(r.Context(), userID(r))
	if err != nil {
		respondWithErr(w, err)
		return
	}
	out := make([]workoutJSON, len(logs))
	for i, l := range logs {
		out[i] = newWorkout(l)
	}
	respondWithJSON(w, http.StatusOK, out)
}

// createWorkout stores a manual workout log and refreshes the profile totals.
func (s *Server) createWorkout(w http.ResponseWriter, r *http.Request) {
	var req workoutRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithErr(w, err)
		return
	}
	wl, err := s.newManualLog(r, req)
	if err != nil {
		respondWithErr(w, err)
		return
	}
	if err := s.profiles.CreateWorkout(r.Context(), wl); err != nil {
		respondWithErr(w, err)
		return
	}
	if _, err := profile.RefreshTotals(r.Context(), s.profiles, wl.UserID, s.now()); err != nil {
		respondWithErr(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, newWorkout(wl))
}

func (s *Server) newManualLog(r *http.Request, req workoutRequest) (*profile.WorkoutLog, error) {
	date := s.now()
	if strings.TrimSpace(req.Date) != "" {
		d, err := dateutil.ParseDate(req.Date)
		if err != nil {
			return nil, &requestError{field: "date", err: err}
		}
		date = d
	}
	secs := req.DurationSec
	if secs == 0 && req.Duration != "" {
		secs = pace.ParseClock(req.Duration)
		if secs == 0 {
			return nil, &requestError{field: "duration", err: fmt.Errorf("invalid duration %q, use HH:MM:SS", req.Duration)}
		}
	}

	wl := profile.NewWorkoutLog(userID(r), date, req.DistanceKm, secs, profile.SourceManual)
	wl.PlanPath = strings.TrimSpace(req.PlanPath)
	wl.PlanDayIndex = req.PlanDayIndex
	wl.Notes = req.Notes
	if err := wl.Validate(); err != nil {
		return nil, err
	}
	if wl.PlanPath == "" {
		return wl, nil
	}

	p, err := s.plans.GetPlan(r.Context(), wl.PlanPath)
	if err != nil {
		return nil, fmt.Errorf("loading plan: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", plan.ErrPlanNotFound, wl.PlanPath)
	}
	if err := wl.ValidateAgainst(p); err != nil {
		return nil, err
	}
	return wl, nil
}
