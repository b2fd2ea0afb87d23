// Package docstore provides a Firestore storage implementation with the same
// contracts as the SQLite repository.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/profile"
	"github.com/javiermolinar/trote/internal/strava"
)

const (
	plansCollection    = "plans"
	profilesCollection = "profiles"
	workoutsCollection = "workouts"
	tokensCollection   = "stravaTokens"
)

// Store implements plan.Repository, profile.Repository and
// strava.TokenStore on Firestore.
type Store struct {
	client *firestore.Client
}

// New connects to Firestore and seeds the plan catalog. The emulator is used
// when FIRESTORE_EMULATOR_HOST is set.
func New(ctx context.Context, projectID string) (*Store, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	s := &Store{client: client}

	added, err := plan.Seed(ctx, s)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("seeding catalog: %w", err)
	}
	if added > 0 {
		log.Printf("docstore: seeded %d catalog plans", added)
	}
	return s, nil
}

// Close releases the Firestore client.
func (s *Store) Close() error {
	return s.client.Close()
}

func notFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// SavePlan inserts or replaces a plan by path.
func (s *Store) SavePlan(ctx context.Context, p *plan.Plan) error {
	doc, err := toPlanDoc(p)
	if err != nil {
		return err
	}
	if _, err := s.client.Collection(plansCollection).Doc(p.Path).Set(ctx, doc); err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	return nil
}

// GetPlan retrieves a plan by path. Returns nil if it does not exist.
func (s *Store) GetPlan(ctx context.Context, path string) (*plan.Plan, error) {
	snap, err := s.client.Collection(plansCollection).Doc(path).Get(ctx)
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting plan: %w", err)
	}
	var doc planDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("parsing plan data: %w", err)
	}
	return doc.plan()
}

// ListPlans returns the summaries of all stored plans ordered by path.
func (s *Store) ListPlans(ctx context.Context) ([]plan.Summary, error) {
	iter := s.client.Collection(plansCollection).OrderBy("path", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var out []plan.Summary
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing plans: %w", err)
		}
		var doc planDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("parsing plan data: %w", err)
		}
		out = append(out, doc.summary())
	}
	return out, nil
}

// GetProfile retrieves a profile. Returns nil if the user has none.
func (s *Store) GetProfile(ctx context.Context, userID string) (*profile.Profile, error) {
	snap, err := s.client.Collection(profilesCollection).Doc(userID).Get(ctx)
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	var doc profileDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("parsing profile data: %w", err)
	}
	return doc.profile(), nil
}

// SaveProfile replaces the whole profile document.
func (s *Store) SaveProfile(ctx context.Context, p *profile.Profile) error {
	if _, err := s.client.Collection(profilesCollection).Doc(p.UserID).Set(ctx, toProfileDoc(p)); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// CreateWorkout stores a workout log. Imported logs use a document id derived
// from their external id so a second import fails with ErrDuplicateWorkout.
func (s *Store) CreateWorkout(ctx context.Context, w *profile.WorkoutLog) error {
	_, err := s.client.Collection(workoutsCollection).Doc(workoutDocID(w)).Create(ctx, toWorkoutDoc(w))
	if status.Code(err) == codes.AlreadyExists {
		return fmt.Errorf("%w: %s", profile.ErrDuplicateWorkout, w.ExternalID)
	}
	if err != nil {
		return fmt.Errorf("creating workout: %w", err)
	}
	return nil
}

// ListWorkouts returns a user's workout logs, most recent first.
func (s *Store) ListWorkouts(ctx context.Context, userID string) ([]*profile.WorkoutLog, error) {
	snaps, err := s.client.Collection(workoutsCollection).
		Where("userId", "==", userID).
		OrderBy("date", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("listing workouts: %w", err)
	}
	out := make([]*profile.WorkoutLog, 0, len(snaps))
	for _, snap := range snaps {
		var doc workoutDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("parsing workout data: %w", err)
		}
		out = append(out, doc.workout())
	}
	return out, nil
}

// ExternalIDs returns the external ids already imported from a source.
func (s *Store) ExternalIDs(ctx context.Context, userID string, source profile.Source) (map[string]bool, error) {
	snaps, err := s.client.Collection(workoutsCollection).
		Where("userId", "==", userID).
		Where("source", "==", string(source)).
		Select("externalId").
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("listing external ids: %w", err)
	}
	ids := make(map[string]bool, len(snaps))
	for _, snap := range snaps {
		if v, err := snap.DataAt("externalId"); err == nil {
			if id, ok := v.(string); ok && id != "" {
				ids[id] = true
			}
		}
	}
	return ids, nil
}

// GetToken returns the user's Strava token, or nil if none is stored.
func (s *Store) GetToken(ctx context.Context, userID string) (*strava.Token, error) {
	snap, err := s.client.Collection(tokensCollection).Doc(userID).Get(ctx)
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting token: %w", err)
	}
	var doc tokenDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("parsing token data: %w", err)
	}
	return doc.token(), nil
}

// SaveToken inserts or replaces the user's Strava token.
func (s *Store) SaveToken(ctx context.Context, userID string, t *strava.Token) error {
	if _, err := s.client.Collection(tokensCollection).Doc(userID).Set(ctx, toTokenDoc(t)); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}
