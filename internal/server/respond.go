package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
	"github.com/javiermolinar/trote/internal/strava"
	"github.com/javiermolinar/trote/internal/summary"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func respondWithError(w http.ResponseWriter, code int, message, field string) {
	respondWithJSON(w, code, errorResponse{Error: message, Field: field})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// requestError is a malformed request body or parameter.
type requestError struct {
	field string
	err   error
}

func (e *requestError) Error() string { return e.err.Error() }

func (e *requestError) Unwrap() error { return e.err }

// respondWithErr maps a domain error to a status code.
func respondWithErr(w http.ResponseWriter, err error) {
	var (
		fe *profile.FieldError
		re *requestError
	)
	switch {
	case errors.As(err, &re):
		respondWithError(w, http.StatusBadRequest, re.Error(), re.field)
	case errors.As(err, &fe):
		respondWithError(w, http.StatusBadRequest, fe.Reason, fe.Field)
	case errors.Is(err, plan.ErrPlanNotFound), errors.Is(err, summary.ErrNoActivePlan):
		respondWithError(w, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, plan.ErrDayOutOfRange), errors.Is(err, profile.ErrDayIndexNeedsPlan):
		respondWithError(w, http.StatusBadRequest, err.Error(), "planDayIndex")
	case errors.Is(err, profile.ErrMissingDate):
		respondWithError(w, http.StatusBadRequest, err.Error(), "date")
	case errors.Is(err, profile.ErrEmptyPlan),
		errors.Is(err, profile.ErrEmptyWorkout),
		errors.Is(err, profile.ErrNegativeAmount),
		errors.Is(err, profile.ErrInvalidSource),
		errors.Is(err, strava.ErrMissingCode):
		respondWithError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, profile.ErrDuplicateWorkout), errors.Is(err, strava.ErrNotConnected):
		respondWithError(w, http.StatusConflict, err.Error(), "")
	case errors.Is(err, strava.ErrNotConfigured):
		respondWithError(w, http.StatusServiceUnavailable, err.Error(), "")
	default:
		log.Printf("internal error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

// decodeBody decodes a JSON request body, rejecting unknown fields.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &requestError{err: fmt.Errorf("invalid request body: %w", err)}
	}
	return nil
}
