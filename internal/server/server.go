// Package server exposes plans, pace settings, the workout log and the Strava
// import over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/javiermolinar/trote/internal/importer"
	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
	"github.com/javiermolinar/trote/internal/reference"
	"github.com/javiermolinar/trote/internal/strava"
)

// UserHeader carries the caller's user id.
const UserHeader = "X-User-ID"

// Config configures the API server.
type Config struct {
	Addr           string
	AllowedOrigins []string
	Locale         string
	StartWeekday   string // weekday new plans start on
	Timeout        time.Duration
}

// Server serves the training API.
type Server struct {
	cfg      Config
	plans    plan.Repository
	profiles profile.Repository
	strava   *strava.Client
	importer *importer.Importer
	tables   *reference.Tables
	now      func() time.Time
}

// Option customises a Server.
type Option func(*Server)

// WithClock overrides the server clock.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a server. sc may be nil when Strava is not configured.
func New(cfg Config, plans plan.Repository, profiles profile.Repository, sc *strava.Client, opts ...Option) *Server {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.StartWeekday == "" {
		cfg.StartWeekday = "monday"
	}
	s := &Server{
		cfg:      cfg,
		plans:    plans,
		profiles: profiles,
		strava:   sc,
		tables:   reference.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if sc != nil {
		s.importer = importer.New(plans, profiles, sc,
			importer.WithClock(s.now),
			importer.WithLocale(cfg.Locale),
		)
	}
	return s
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Timeout))

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", UserHeader},
		AllowCredentials: true,
	})
	r.Use(corsMiddleware.Handler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/plans", s.listPlans)
		r.Get("/plans/{path}", s.getPlan)

		// Strava redirects the browser here, so the user comes from state.
		r.Get("/strava/callback", s.stravaCallback)

		r.Group(func(r chi.Router) {
			r.Use(requireUser)

			r.Get("/plans/{path}/weeks", s.planWeeks)
			r.Get("/plans/{path}/paces", s.getPaces)
			r.Post("/plans/{path}/paces", s.setPaces)

			r.Get("/profile", s.getProfile)
			r.Post("/profile/active-plan", s.setActivePlan)
			r.Post("/profile/saved-plans", s.addSavedPlan)

			r.Get("/workouts", s.listWorkouts)
			r.Post("/workouts", s.createWorkout)

			r.Get("/strava/auth", s.stravaAuth)
			r.Post("/strava/import", s.stravaImport)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}

// ListenAndServe serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("Server exiting")
	return nil
}

type ctxKey struct{}

// requireUser rejects requests without a user id header.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.Header.Get(UserHeader)
		if user == "" {
			respondWithError(w, http.StatusUnauthorized, "missing "+UserHeader+" header", "")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, user)))
	})
}

func userID(r *http.Request) string {
	user, _ := r.Context().Value(ctxKey{}).(string)
	return user
}
