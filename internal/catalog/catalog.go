// Package catalog defines the problem catalog consumed by the assessment
// executor and the stores that back it.
package catalog

import "context"

// Querier is the read capability the executor depends on.
type Querier interface {
	// ListByTopic returns problems whose topic equals topic exactly, in
	// insertion order. A difficulty of 0 matches any difficulty; otherwise
	// the difficulty must match exactly.
	ListByTopic(ctx context.Context, topic string, difficulty int) ([]Problem, error)
}

// Repository is the full catalog capability used by the API and CLI.
type Repository interface {
	Querier

	// List returns the problems matching f in insertion order.
	List(ctx context.Context, f Filter) ([]Problem, error)

	// Get returns the problem with the given ID or a *NotFoundError.
	Get(ctx context.Context, id string) (Problem, error)

	// Create stores a new problem. Returns *ConflictError if the ID exists.
	Create(ctx context.Context, p Problem) error

	// Update replaces the problem stored under id. p.ID must be empty or
	// equal to id. Returns *NotFoundError if id does not exist.
	Update(ctx context.Context, id string, p Problem) error

	// Delete removes the problem. Returns *NotFoundError if id does not exist.
	Delete(ctx context.Context, id string) error
}

// Counter is implemented by stores that can report their size without
// listing every problem.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// NormalizeUpdate applies the Update ID rule shared by all stores: an empty
// p.ID takes id, a different one is rejected. The result is validated.
func NormalizeUpdate(id string, p Problem) (Problem, error) {
	if p.ID == "" {
		p.ID = id
	}
	if p.ID != id {
		return Problem{}, &InvalidProblemError{Field: "id", Message: "must match the problem being updated"}
	}
	return p, Validate(p)
}
