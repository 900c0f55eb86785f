package executor

import (
	"fmt"
	"strings"
)

// Policy decides what happens when a candidate does not fit the remaining
// time budget.
type Policy int

const (
	// SkipOverBudget skips the candidate and keeps scanning.
	SkipOverBudget Policy = iota

	// StopAtOverBudget ends selection at the first candidate that does not fit.
	StopAtOverBudget
)

func (p Policy) String() string {
	switch p {
	case SkipOverBudget:
		return "skip"
	case StopAtOverBudget:
		return "stop"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy resolves "skip" or "stop".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return SkipOverBudget, nil
	case "stop":
		return StopAtOverBudget, nil
	}
	return 0, fmt.Errorf("unknown selection policy %q (want skip or stop)", s)
}

// Config tunes the executor.
type Config struct {
	Policy Policy

	// MaxConcurrentFetches bounds the per-topic catalog queries in flight.
	MaxConcurrentFetches int
}

// DefaultConfig returns the standard executor settings.
func DefaultConfig() Config {
	return Config{
		Policy:               SkipOverBudget,
		MaxConcurrentFetches: 8,
	}
}
