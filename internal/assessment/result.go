package assessment

import (
	"github.com/abhisek/assessgen/internal/catalog"
	"github.com/abhisek/assessgen/internal/executor"
	"github.com/abhisek/assessgen/internal/planner"
)

// Result is the serialized outcome of one generation request.
type Result struct {
	AssessmentID string         `json:"assessment_id"`
	Planner      PlannerOutput  `json:"planner_output"`
	Executor     ExecutorOutput `json:"executor_output"`
}

// PlannerOutput carries the plan and its reasoning log.
type PlannerOutput struct {
	ReasoningLog []string      `json:"reasoning_log"`
	Plan         *planner.Plan `json:"assessment_plan"`
}

// ExecutorOutput carries the selected problems.
type ExecutorOutput struct {
	SelectedProblems []catalog.Problem `json:"selected_problems"`
	TotalMinutes     int               `json:"total_estimated_time_minutes"`
	Constraints      map[string]int    `json:"constraints"`
}

func newResult(plan *planner.Plan, a *executor.Assessment) *Result {
	problems := a.Problems
	if problems == nil {
		problems = []catalog.Problem{}
	}
	return &Result{
		AssessmentID: a.ID,
		Planner: PlannerOutput{
			ReasoningLog: plan.ReasoningLog,
			Plan:         plan,
		},
		Executor: ExecutorOutput{
			SelectedProblems: problems,
			TotalMinutes:     a.TotalMinutes,
			Constraints:      a.Constraints,
		},
	}
}
