package plan

import "context"

// Repository defines the storage interface for plans.
type Repository interface {
	// SavePlan inserts or replaces a plan by path.
	SavePlan(ctx context.Context, p *Plan) error

	// GetPlan retrieves a plan by path. Returns nil if it does not exist.
	GetPlan(ctx context.Context, path string) (*Plan, error)

	// ListPlans returns the summaries of all stored plans ordered by path.
	ListPlans(ctx context.Context) ([]Summary, error)
}
