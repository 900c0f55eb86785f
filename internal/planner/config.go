package planner

import "fmt"

// Config holds the problem counts used by the strategies.
type Config struct {
	// MinProblems is the count for REVIEW and NEW_TOPIC_INTRODUCTION.
	MinProblems int `yaml:"min_problems"`

	// MaxProblems is the count for CHALLENGE.
	MaxProblems int `yaml:"max_problems"`
}

// DefaultConfig returns the standard problem counts.
func DefaultConfig() Config {
	return Config{
		MinProblems: 5,
		MaxProblems: 15,
	}
}

// Validate checks that the counts are usable.
func (c Config) Validate() error {
	if c.MinProblems <= 0 {
		return fmt.Errorf("planner: min_problems must be positive, got %d", c.MinProblems)
	}
	if c.MaxProblems < c.MinProblems {
		return fmt.Errorf("planner: max_problems (%d) must be >= min_problems (%d)", c.MaxProblems, c.MinProblems)
	}
	return nil
}
