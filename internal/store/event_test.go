package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessmentEvents_AppendAndQuery(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		student := "s1"
		if i == 1 {
			student = "s2"
		}
		require.NoError(t, repo.AppendAssessmentEvent(ctx, AssessmentEventData{
			PlanID:         fmt.Sprintf("plan-%d", i),
			AssessmentID:   fmt.Sprintf("assessment-%d", i),
			StudentID:      student,
			Strategy:       "REVIEW",
			TargetTopics:   []string{"Fractions"},
			DifficultyLow:  1,
			DifficultyHigh: 2,
			NumProblems:    5,
			SelectedIDs:    []string{"f1", "f2"},
			TotalMinutes:   4,
			BudgetMinutes:  30,
		}))
	}

	all, err := repo.QueryAssessmentEvents(ctx, "", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "assessment-2", all[0].AssessmentID, "newest first")
	assert.Equal(t, []string{"Fractions"}, all[0].TargetTopics)
	assert.Equal(t, []string{"f1", "f2"}, all[0].SelectedIDs)
	assert.Greater(t, all[0].Sequence, all[1].Sequence)
	assert.False(t, all[0].Timestamp.IsZero())

	limited, err := repo.QueryAssessmentEvents(ctx, "", QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	forStudent, err := repo.QueryAssessmentEvents(ctx, "s1", QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, forStudent, 2)

	after, err := repo.QueryAssessmentEvents(ctx, "", QueryOpts{After: all[1].Sequence})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "assessment-2", after[0].AssessmentID)
}

func TestAssessmentEvents_EmptySelection(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendAssessmentEvent(ctx, AssessmentEventData{PlanID: "p", AssessmentID: "a", Strategy: "CHALLENGE"}))

	events, err := repo.QueryAssessmentEvents(ctx, "", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Empty(t, events[0].SelectedIDs)
	assert.NotNil(t, events[0].SelectedIDs)
}

func TestLLMEvents(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "problem-gen",
		InputTokens: 100, OutputTokens: 50, LatencyMs: 120, Success: true,
		RequestBody: "[user]\nhi", ResponseBody: `{"text":"1+1"}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "other",
		InputTokens: 10, OutputTokens: 5, Success: false, ErrorMessage: "boom",
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "openai", Model: "gpt-4o-mini", Purpose: "problem-gen",
		InputTokens: 7, OutputTokens: 3, Success: true,
	}))

	gen, err := repo.QueryLLMEvents(ctx, "problem-gen", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, gen, 2)
	assert.Equal(t, "gpt-4o-mini", gen[0].Model)

	e, err := repo.GetLLMEvent(ctx, gen[1].ID)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, `{"text":"1+1"}`, e.ResponseBody)
	assert.True(t, e.Success)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	usage, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, []LLMModelUsage{
		{Model: "claude-haiku-4-5", Requests: 2, InputTokens: 110, OutputTokens: 55},
		{Model: "gpt-4o-mini", Requests: 1, InputTokens: 7, OutputTokens: 3},
	}, usage)
}
