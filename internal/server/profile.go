package server

import (
	"fmt"
	"net/http"

	"github.com/javiermolinar/trote/internal/dateutil"
	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
)

type planRequest struct {
	Path string `json:"path"`
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	prof, err := profile.Load(r.Context(), s.profiles, userID(r))
	if err != nil {
		respondWithErr(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, newProfile(prof))
}

// setActivePlan activates a plan. A plan without a start date starts on the
// next configured start weekday.
func (s *Server) setActivePlan(w http.ResponseWriter, r *http.Request) {
	path, err := s.decodePlanPath(r)
	if err != nil {
		respondWithErr(w, err)
		return
	}
	start, err := dateutil.NextWeekday(s.now(), s.cfg.StartWeekday)
	if err != nil {
		respondWithErr(w, err)
		return
	}
	prof, err := profile.Update(r.Context(), s.profiles, userID(r), func(p *profile.Profile) error {
		if err := p.Activate(path); err != nil {
			return err
		}
		p.StartOn(path, start)
		return nil
	})
	if err != nil {
		respondWithErr(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, newProfile(prof))
}

func (s *Server) addSavedPlan(w http.ResponseWriter, r *http.Request) {
	path, err := s.decodePlanPath(r)
	if err != nil {
		respondWithErr(w, err)
		return
	}
	prof, err := profile.Update(r.Context(), s.profiles, userID(r), func(p *profile.Profile) error {
		return p.Save(path)
	})
	if err != nil {
		respondWithErr(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, newProfile(prof))
}

// decodePlanPath reads {"path": ...} and checks the plan exists.
func (s *Server) decodePlanPath(r *http.Request) (string, error) {
	var req planRequest
	if err := decodeBody(r, &req); err != nil {
		return "", err
	}
	if req.Path == "" {
		return "", profile.ErrEmptyPlan
	}
	p, err := s.plans.GetPlan(r.Context(), req.Path)
	if err != nil {
		return "", fmt.Errorf("loading plan: %w", err)
	}
	if p == nil {
		return "", fmt.Errorf("%w: %s", plan.ErrPlanNotFound, req.Path)
	}
	return p.Path, nil
}
