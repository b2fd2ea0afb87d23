package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/javiermolinar/trote/internal/dateutil"
	"github.com/javiermolinar/trote/internal/strava"
)

type importRequest struct {
	After string `json:"after"` // YYYY-MM-DD, empty means since the plan start
}

// stravaAuth returns the Strava consent URL. The user id travels as state.
func (s *Server) stravaAuth(w http.ResponseWriter, r *http.Request) {
	if s.strava == nil {
		respondWithErr(w, strava.ErrNotConfigured)
		return
	}
	url, err := s.strava.AuthorizeURL(userID(r))
	if err != nil {
		respondWithErr(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (s *Server) stravaCallback(w http.ResponseWriter, r *http.Request) {
	if s.strava == nil {
		respondWithErr(w, strava.ErrNotConfigured)
		return
	}
	q := r.URL.Query()
	if reason := q.Get("error"); reason != "" {
		respondWithError(w, http.StatusBadRequest, "strava authorisation denied: "+reason, "")
		return
	}
	user := q.Get("state")
	if user == "" {
		respondWithError(w, http.StatusBadRequest, "missing state", "state")
		return
	}
	tok, err := s.strava.Exchange(r.Context(), user, q.Get("code"))
	if err != nil {
		respondWithErr(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{
		"connected": true,
		"athleteId": tok.AthleteID,
	})
}

func (s *Server) stravaImport(w http.ResponseWriter, r *http.Request) {
	if s.importer == nil {
		respondWithErr(w, strava.ErrNotConfigured)
		return
	}
	var req importRequest
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		respondWithErr(w, err)
		return
	}
	var after time.Time
	if req.After != "" {
		d, err := dateutil.ParseDate(req.After)
		if err != nil {
			respondWithErr(w, &requestError{field: "after", err: err})
			return
		}
		after = d
	}
	res, err := s.importer.Import(r.Context(), userID(r), after)
	if err != nil {
		respondWithErr(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}
