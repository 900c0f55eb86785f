package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/assessgen/internal/planner"
	"github.com/abhisek/assessgen/internal/store"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

type generateAssessmentRequest struct {
	Profile planner.StudentProfile `json:"student_profile"`
	Request planner.Request        `json:"assessment_request"`
}

func (h *handlers) generateAssessment(c *gin.Context) {
	var req generateAssessmentRequest
	if !bindBody(c, generateAssessmentSchema, &req) {
		return
	}

	result, err := h.Assessments.Generate(c.Request.Context(), req.Profile, req.Request)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type historyEvent struct {
	Sequence      int64     `json:"sequence"`
	Timestamp     time.Time `json:"timestamp"`
	PlanID        string    `json:"plan_id"`
	AssessmentID  string    `json:"assessment_id"`
	StudentID     string    `json:"student_id"`
	Strategy      string    `json:"pedagogical_strategy"`
	TargetTopics  []string  `json:"target_topics"`
	Difficulty    [2]int    `json:"difficulty_range"`
	NumProblems   int       `json:"num_problems"`
	SelectedIDs   []string  `json:"selected_problem_ids"`
	TotalMinutes  int       `json:"total_estimated_time_minutes"`
	BudgetMinutes int       `json:"max_total_time_minutes"`
}

func (h *handlers) history(c *gin.Context) {
	if h.History == nil {
		respondError(c, unavailable(CodeHistoryUnavailable, "assessment history is not recorded", "history requires the sqlite backend"))
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryLimit {
			respondError(c, validationError("invalid limit", "limit must be an integer between 1 and 200"))
			return
		}
		limit = n
	}

	records, err := h.History.QueryAssessmentEvents(c.Request.Context(), c.Query("student_id"), store.QueryOpts{Limit: limit})
	if err != nil {
		respondError(c, err)
		return
	}

	events := make([]historyEvent, len(records))
	for i, r := range records {
		events[i] = historyEvent{
			Sequence:      r.Sequence,
			Timestamp:     r.Timestamp,
			PlanID:        r.PlanID,
			AssessmentID:  r.AssessmentID,
			StudentID:     r.StudentID,
			Strategy:      r.Strategy,
			TargetTopics:  r.TargetTopics,
			Difficulty:    [2]int{r.DifficultyLow, r.DifficultyHigh},
			NumProblems:   r.NumProblems,
			SelectedIDs:   r.SelectedIDs,
			TotalMinutes:  r.TotalMinutes,
			BudgetMinutes: r.BudgetMinutes,
		}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
