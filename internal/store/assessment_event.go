package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var assessmentEventSelectColumns = []string{
	colID, colSequence, colTimestamp,
	"plan_id", "assessment_id", "student_id", "strategy",
	"target_topics", "difficulty_low", "difficulty_high", "num_problems",
	"selected_ids", "total_minutes", "budget_minutes",
}

func (r *eventRepo) AppendAssessmentEvent(ctx context.Context, data AssessmentEventData) error {
	topics, err := json.Marshal(nonNil(data.TargetTopics))
	if err != nil {
		return fmt.Errorf("marshal target topics: %w", err)
	}
	selected, err := json.Marshal(nonNil(data.SelectedIDs))
	if err != nil {
		return fmt.Errorf("marshal selected ids: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(AssessmentEventsTable.Name).
		Columns(assessmentEventSelectColumns[1:]...).
		Values(
			seqNum, time.Now().UTC(),
			data.PlanID, data.AssessmentID, data.StudentID, data.Strategy,
			string(topics), data.DifficultyLow, data.DifficultyHigh, data.NumProblems,
			string(selected), data.TotalMinutes, data.BudgetMinutes,
		).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save assessment event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAssessmentEvents(ctx context.Context, studentID string, opts QueryOpts) ([]AssessmentEventRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select(assessmentEventSelectColumns...).From(b.Table(AssessmentEventsTable.Name))

	var extra []*entsql.Predicate
	if studentID != "" {
		extra = append(extra, entsql.EQ("student_id", studentID))
	}
	query, args := opts.apply(sel, extra...).Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query assessment events: %w", err)
	}
	defer rows.Close()

	var out []AssessmentEventRecord
	for rows.Next() {
		var (
			e        AssessmentEventRecord
			topics   string
			selected string
		)
		if err := rows.Scan(
			&e.ID, &e.Sequence, &e.Timestamp,
			&e.PlanID, &e.AssessmentID, &e.StudentID, &e.Strategy,
			&topics, &e.DifficultyLow, &e.DifficultyHigh, &e.NumProblems,
			&selected, &e.TotalMinutes, &e.BudgetMinutes,
		); err != nil {
			return nil, fmt.Errorf("scan assessment event: %w", err)
		}
		if err := json.Unmarshal([]byte(topics), &e.TargetTopics); err != nil {
			return nil, fmt.Errorf("decode target topics: %w", err)
		}
		if err := json.Unmarshal([]byte(selected), &e.SelectedIDs); err != nil {
			return nil, fmt.Errorf("decode selected ids: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
