// Package executor selects concrete catalog problems for an assessment plan
// under a total time budget.
package executor

import (
	"context"

	"github.com/google/uuid"

	"github.com/abhisek/assessgen/internal/catalog"
	"github.com/abhisek/assessgen/internal/planner"
)

// BudgetConstraint is the key under which the time budget is echoed in
// Assessment.Constraints.
const BudgetConstraint = "max_total_time_minutes"

// Assessment is the executor output.
type Assessment struct {
	ID           string            `json:"assessment_id"`
	Problems     []catalog.Problem `json:"selected_problems"`
	TotalMinutes int               `json:"total_estimated_time_minutes"`
	Constraints  map[string]int    `json:"constraints"`
}

// Executor runs plans against a catalog.
type Executor struct {
	q   catalog.Querier
	cfg Config
}

// New creates an Executor that reads problems from q.
func New(q catalog.Querier, cfg Config) *Executor {
	if cfg.MaxConcurrentFetches <= 0 {
		cfg.MaxConcurrentFetches = DefaultConfig().MaxConcurrentFetches
	}
	return &Executor{q: q, cfg: cfg}
}

// Execute fetches candidates for every target topic, filters them to the
// plan's difficulty range, removes duplicates, orders them easiest first
// and greedily selects up to plan.NumProblems within maxTotalTimeMinutes.
//
// A catalog failure aborts the whole execution with a
// *catalog.UnavailableError; no partial assessment is returned.
func (e *Executor) Execute(ctx context.Context, plan *planner.Plan, maxTotalTimeMinutes int) (*Assessment, error) {
	fetched, err := e.fetch(ctx, plan.TargetTopics)
	if err != nil {
		return nil, err
	}

	candidates := filterDifficulty(fetched, plan.Difficulty)
	candidates = dedupe(candidates)
	sortByDifficulty(candidates)

	selected, total := selectProblems(candidates, plan.NumProblems, maxTotalTimeMinutes, e.cfg.Policy)

	return &Assessment{
		ID:           uuid.NewString(),
		Problems:     selected,
		TotalMinutes: total,
		Constraints:  map[string]int{BudgetConstraint: maxTotalTimeMinutes},
	}, nil
}
