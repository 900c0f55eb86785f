// Package planner turns a student profile and a pedagogical strategy into
// an assessment plan: target topics, a difficulty range and a problem count.
package planner

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Planner builds assessment plans.
type Planner interface {
	// GeneratePlan derives a plan for the given profile and request.
	GeneratePlan(profile StudentProfile, req Request) *Plan
}

// DefaultPlanner maps each strategy to fixed constraints.
type DefaultPlanner struct {
	cfg Config
}

var _ Planner = (*DefaultPlanner)(nil)

// New creates a DefaultPlanner.
func New(cfg Config) *DefaultPlanner {
	return &DefaultPlanner{cfg: cfg}
}

// GeneratePlan derives a plan. It performs no I/O; the only
// nondeterminism is the plan ID. req.Strategy must be set.
func (p *DefaultPlanner) GeneratePlan(profile StudentProfile, req Request) *Plan {
	if req.Strategy == nil {
		panic("planner: request has no strategy")
	}

	topics, diff, count := req.Strategy.constraints(profile, p.cfg)

	return &Plan{
		ID:           uuid.NewString(),
		TargetTopics: topics,
		NumProblems:  count,
		Difficulty:   diff,
		Strategy:     req.Strategy,
		ReasoningLog: reasoningLog(req.Strategy, topics, diff, count),
	}
}

func reasoningLog(s Strategy, topics []string, diff DifficultyRange, count int) []string {
	return []string{
		fmt.Sprintf("Strategy selected: %s.", s.Name()),
		"Rationale: " + s.rationale(),
		fmt.Sprintf("Target topics: %s.", formatTopics(topics)),
		fmt.Sprintf("Difficulty range: %d to %d.", diff.Low, diff.High),
		fmt.Sprintf("Number of problems: %d.", count),
	}
}

func formatTopics(topics []string) string {
	if len(topics) == 0 {
		return "none"
	}
	return strings.Join(topics, ", ")
}
