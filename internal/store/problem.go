package store

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"

	"github.com/abhisek/assessgen/internal/catalog"
)

const (
	problemColID         = "id"
	problemColSeq        = "seq"
	problemColText       = "text"
	problemColTopic      = "topic"
	problemColDifficulty = "difficulty"
	problemColMinutes    = "estimated_minutes"
)

var problemSelectColumns = []string{
	problemColID,
	problemColText,
	problemColTopic,
	problemColDifficulty,
	problemColMinutes,
}

// ProblemRepo is a catalog.Repository persisted in SQLite. Rows are ordered
// by the global sequence assigned at insert time.
type ProblemRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

var (
	_ catalog.Repository = (*ProblemRepo)(nil)
	_ catalog.Counter    = (*ProblemRepo)(nil)
)

func (r *ProblemRepo) ListByTopic(ctx context.Context, topic string, difficulty int) ([]catalog.Problem, error) {
	if topic == "" {
		return nil, nil
	}
	return r.List(ctx, catalog.Filter{Topic: topic, Difficulty: difficulty})
}

func (r *ProblemRepo) List(ctx context.Context, f catalog.Filter) ([]catalog.Problem, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select(problemSelectColumns...).
		From(b.Table(ProblemsTable.Name)).
		OrderBy(problemColSeq)

	var preds []*entsql.Predicate
	if f.Topic != "" {
		preds = append(preds, entsql.EQ(problemColTopic, f.Topic))
	}
	if f.Difficulty != 0 {
		preds = append(preds, entsql.EQ(problemColDifficulty, f.Difficulty))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}

	problems, err := r.query(ctx, sel)
	if err != nil {
		return nil, &catalog.UnavailableError{Op: "list problems", Err: err}
	}
	return problems, nil
}

func (r *ProblemRepo) Get(ctx context.Context, id string) (catalog.Problem, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select(problemSelectColumns...).
		From(b.Table(ProblemsTable.Name)).
		Where(entsql.EQ(problemColID, id)).
		Limit(1)

	problems, err := r.query(ctx, sel)
	if err != nil {
		return catalog.Problem{}, &catalog.UnavailableError{Op: "get problem", Err: err}
	}
	if len(problems) == 0 {
		return catalog.Problem{}, &catalog.NotFoundError{ID: id}
	}
	return problems[0], nil
}

func (r *ProblemRepo) Create(ctx context.Context, p catalog.Problem) error {
	if err := catalog.Validate(p); err != nil {
		return err
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return &catalog.UnavailableError{Op: "create problem", Err: err}
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(ProblemsTable.Name).
		Columns(problemColID, problemColSeq, problemColText, problemColTopic, problemColDifficulty, problemColMinutes).
		Values(p.ID, seqNum, p.Text, p.Topic, p.Difficulty, p.EstimatedMinutes).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		if sqlgraph.IsUniqueConstraintError(err) {
			return &catalog.ConflictError{ID: p.ID}
		}
		return &catalog.UnavailableError{Op: "create problem", Err: err}
	}
	return nil
}

func (r *ProblemRepo) Update(ctx context.Context, id string, p catalog.Problem) error {
	p, err := catalog.NormalizeUpdate(id, p)
	if err != nil {
		return err
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Update(ProblemsTable.Name).
		Set(problemColText, p.Text).
		Set(problemColTopic, p.Topic).
		Set(problemColDifficulty, p.Difficulty).
		Set(problemColMinutes, p.EstimatedMinutes).
		Where(entsql.EQ(problemColID, id)).
		Query()

	return r.execOne(ctx, "update problem", id, query, args)
}

func (r *ProblemRepo) Delete(ctx context.Context, id string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(ProblemsTable.Name).
		Where(entsql.EQ(problemColID, id)).
		Query()

	return r.execOne(ctx, "delete problem", id, query, args)
}

// Count returns the number of stored problems.
func (r *ProblemRepo) Count(ctx context.Context) (int, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select(entsql.Count("*")).From(b.Table(ProblemsTable.Name)).Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return 0, &catalog.UnavailableError{Op: "count problems", Err: err}
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, &catalog.UnavailableError{Op: "count problems", Err: err}
		}
	}
	return n, rows.Err()
}

// execOne runs a statement that must touch exactly the row with the given id.
func (r *ProblemRepo) execOne(ctx context.Context, op, id, query string, args []any) error {
	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return &catalog.UnavailableError{Op: op, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &catalog.UnavailableError{Op: op, Err: err}
	}
	if n == 0 {
		return &catalog.NotFoundError{ID: id}
	}
	return nil
}

func (r *ProblemRepo) query(ctx context.Context, sel *entsql.Selector) ([]catalog.Problem, error) {
	query, args := sel.Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Problem
	for rows.Next() {
		var p catalog.Problem
		if err := rows.Scan(&p.ID, &p.Text, &p.Topic, &p.Difficulty, &p.EstimatedMinutes); err != nil {
			return nil, fmt.Errorf("scan problem: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate problems: %w", err)
	}
	return out, nil
}
