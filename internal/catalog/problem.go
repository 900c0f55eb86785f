package catalog

import "strings"

// Difficulty bounds for catalog problems.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Problem is a single catalog entry. Entries are treated as immutable once
// returned from a query; stores hand out copies.
type Problem struct {
	// ID is unique across the catalog.
	ID string `json:"id"`

	// Text is the problem statement shown to the student.
	Text string `json:"text"`

	// Topic is matched exactly by topic queries.
	Topic string `json:"topic"`

	// Difficulty ranges from 1 (easy) to 5 (hard).
	Difficulty int `json:"difficulty"`

	// EstimatedMinutes is the expected solve time in whole minutes.
	EstimatedMinutes int `json:"estimated_time_to_solve_minutes"`
}

// Filter narrows List results. The zero value matches every problem.
type Filter struct {
	// Topic, when non-empty, must equal the problem topic exactly.
	Topic string

	// Difficulty, when non-zero, must equal the problem difficulty.
	Difficulty int
}

// Match reports whether p satisfies the filter.
func (f Filter) Match(p Problem) bool {
	if f.Topic != "" && p.Topic != f.Topic {
		return false
	}
	if f.Difficulty != 0 && p.Difficulty != f.Difficulty {
		return false
	}
	return true
}

// Validate checks the fields every stored problem must carry.
func Validate(p Problem) error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return &InvalidProblemError{Field: "id", Message: "must not be empty"}
	case strings.TrimSpace(p.Text) == "":
		return &InvalidProblemError{Field: "text", Message: "must not be empty"}
	case strings.TrimSpace(p.Topic) == "":
		return &InvalidProblemError{Field: "topic", Message: "must not be empty"}
	case p.Difficulty < MinDifficulty || p.Difficulty > MaxDifficulty:
		return &InvalidProblemError{Field: "difficulty", Message: "must be between 1 and 5"}
	case p.EstimatedMinutes <= 0:
		return &InvalidProblemError{Field: "estimated_time_to_solve_minutes", Message: "must be positive"}
	}
	return nil
}
