// Package assessment runs the plan then execute pipeline for one request
// and records the outcome.
package assessment

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/assessgen/internal/catalog"
	"github.com/abhisek/assessgen/internal/executor"
	"github.com/abhisek/assessgen/internal/metrics"
	"github.com/abhisek/assessgen/internal/planner"
	"github.com/abhisek/assessgen/internal/store"
)

// RequestError describes an assessment request that cannot be planned.
type RequestError struct {
	Field   string
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid assessment request: %s %s", e.Field, e.Message)
}

// Deps wires a Service. Catalog and Planner are required; the rest may be
// left nil.
type Deps struct {
	Planner  planner.Planner
	Catalog  catalog.Querier
	Executor executor.Config
	Events   store.AssessmentEventRepo
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
}

// Service generates assessments.
type Service struct {
	planner  planner.Planner
	executor *executor.Executor
	events   store.AssessmentEventRepo
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewService builds a Service. When Metrics is set, catalog queries are
// instrumented.
func NewService(d Deps) *Service {
	q := d.Catalog
	if d.Metrics != nil {
		q = d.Metrics.WrapQuerier(q)
	}
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		planner:  d.Planner,
		executor: executor.New(q, d.Executor),
		events:   d.Events,
		metrics:  d.Metrics,
		logger:   logger,
	}
}

// Generate plans and executes one assessment. Catalog failures come back
// as *catalog.UnavailableError; an audit write failure is logged and does
// not fail the request.
func (s *Service) Generate(ctx context.Context, profile planner.StudentProfile, req planner.Request) (*Result, error) {
	if req.Strategy == nil {
		return nil, &RequestError{Field: "pedagogical_strategy", Message: "is required"}
	}
	if req.MaxTotalTimeMinutes < 0 {
		return nil, &RequestError{Field: "max_total_time_minutes", Message: "must not be negative"}
	}

	start := time.Now()
	strategy := req.Strategy.Name()

	plan := s.planner.GeneratePlan(profile, req)

	generated, err := s.executor.Execute(ctx, plan, req.MaxTotalTimeMinutes)
	if s.metrics != nil {
		s.metrics.ObserveAssessment(strategy, selectedCount(generated), err)
	}
	if err != nil {
		s.logger.Error("assessment failed",
			zap.String("plan_id", plan.ID),
			zap.String("strategy", strategy),
			zap.Error(err),
		)
		return nil, fmt.Errorf("execute plan %s: %w", plan.ID, err)
	}

	result := newResult(plan, generated)
	s.record(ctx, profile, plan, generated, req.MaxTotalTimeMinutes)

	s.logger.Info("assessment generated",
		zap.String("plan_id", plan.ID),
		zap.String("assessment_id", generated.ID),
		zap.String("strategy", strategy),
		zap.Int("topics", len(plan.TargetTopics)),
		zap.Int("selected", len(generated.Problems)),
		zap.Int("total_minutes", generated.TotalMinutes),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

func (s *Service) record(ctx context.Context, profile planner.StudentProfile, plan *planner.Plan, a *executor.Assessment, budget int) {
	if s.events == nil {
		return
	}

	ids := make([]string, len(a.Problems))
	for i, p := range a.Problems {
		ids[i] = p.ID
	}

	err := s.events.AppendAssessmentEvent(ctx, store.AssessmentEventData{
		PlanID:         plan.ID,
		AssessmentID:   a.ID,
		StudentID:      profile.ID,
		Strategy:       plan.Strategy.Name(),
		TargetTopics:   plan.TargetTopics,
		DifficultyLow:  plan.Difficulty.Low,
		DifficultyHigh: plan.Difficulty.High,
		NumProblems:    plan.NumProblems,
		SelectedIDs:    ids,
		TotalMinutes:   a.TotalMinutes,
		BudgetMinutes:  budget,
	})
	if err != nil {
		s.logger.Warn("failed to record assessment event",
			zap.String("assessment_id", a.ID),
			zap.Error(err),
		)
	}
}

func selectedCount(a *executor.Assessment) int {
	if a == nil {
		return 0
	}
	return len(a.Problems)
}
