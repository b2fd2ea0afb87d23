package plan

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed catalog/*.json
var catalogFS embed.FS

// Catalog returns the plans bundled with the binary, ordered by path.
func Catalog() ([]*Plan, error) {
	entries, err := fs.ReadDir(catalogFS, "catalog")
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	plans := make([]*Plan, 0, len(entries))
	for _, e := range entries {
		data, err := catalogFS.ReadFile("catalog/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		p, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", e.Name(), err)
		}
		plans = append(plans, p)
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].Path < plans[j].Path })
	return plans, nil
}

// Seed stores every catalog plan that the repository does not have yet.
// It returns the number of plans added.
func Seed(ctx context.Context, repo Repository) (int, error) {
	plans, err := Catalog()
	if err != nil {
		return 0, err
	}
	added := 0
	for _, p := range plans {
		existing, err := repo.GetPlan(ctx, p.Path)
		if err != nil {
			return added, fmt.Errorf("checking plan %s: %w", p.Path, err)
		}
		if existing != nil {
			continue
		}
		if err := repo.SavePlan(ctx, p); err != nil {
			return added, fmt.Errorf("seeding plan %s: %w", p.Path, err)
		}
		added++
	}
	return added, nil
}
