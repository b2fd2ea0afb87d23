package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
	"github.com/javiermolinar/trote/internal/summary"
)

func (s *Server) listPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.plans.ListPlans(r.Context())
	if err != nil {
		respondWithErr(w, err)
		return
	}
	out := make([]planSummaryJSON, len(plans))
	for i, p := range plans {
		out[i] = newPlanSummary(p)
	}
	respondWithJSON(w, http.StatusOK, out)
}

func (s *Server) getPlan(w http.ResponseWriter, r *http.Request) {
	p, err := s.loadPlan(r)
	if err != nil {
		respondWithErr(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, plan.NewDocument(p))
}

// loadPlan fetches the plan named by the path URL parameter.
func (s *Server) loadPlan(r *http.Request) (*plan.Plan, error) {
	path := chi.URLParam(r, "path")
	p, err := s.plans.GetPlan(r.Context(), path)
	if err != nil {
		return nil, fmt.Errorf("loading plan: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", plan.ErrPlanNotFound, path)
	}
	return p, nil
}

func (s *Server) planWeeks(w http.ResponseWriter, r *http.Request) {
	view, _, err := summary.LoadPlanView(r.Context(), s.plans, s.profiles, summary.LoadOptions{
		UserID: userID(r),
		Path:   chi.URLParam(r, "path"),
		Now:    s.now(),
		Locale: s.cfg.Locale,
		Tables: s.tables,
	})
	if err != nil {
		respondWithErr(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, newWeeksResponse(view))
}

func (s *Server) getPaces(w http.ResponseWriter, r *http.Request) {
	p, err := s.loadPlan(r)
	if err != nil {
		respondWithErr(w, err)
		return
	}
	prof, err := profile.Load(r.Context(), s.profiles, userID(r))
	if err != nil {
		respondWithErr(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, prof.Settings(p.Path))
}

// setPaces replaces the pace settings of a plan with the posted flat object.
func (s *Server) setPaces(w http.ResponseWriter, r *http.Request) {
	p, err := s.loadPlan(r)
	if err != nil {
		respondWithErr(w, err)
		return
	}
	var body map[string]string
	if err := decodeBody(r, &body); err != nil {
		respondWithErr(w, err)
		return
	}
	settings := profile.FromFlat(body)

	prof, err := profile.Update(r.Context(), s.profiles, userID(r), func(prof *profile.Profile) error {
		return prof.SetSettings(p.Path, settings)
	})
	if err != nil {
		respondWithErr(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, prof.Settings(p.Path))
}
