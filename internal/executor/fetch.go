package executor

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/assessgen/internal/catalog"
)

// fetch queries every topic concurrently and concatenates the results in
// topic order, independent of completion order.
func (e *Executor) fetch(ctx context.Context, topics []string) ([]catalog.Problem, error) {
	if len(topics) == 0 {
		return nil, nil
	}

	results := make([][]catalog.Problem, len(topics))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.MaxConcurrentFetches)

	for i, topic := range topics {
		g.Go(func() error {
			problems, err := e.q.ListByTopic(gctx, topic, 0)
			if err != nil {
				return wrapUnavailable(topic, err)
			}
			results[i] = problems
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []catalog.Problem
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

func wrapUnavailable(topic string, err error) error {
	var unavailable *catalog.UnavailableError
	if errors.As(err, &unavailable) {
		return err
	}
	return &catalog.UnavailableError{
		Op:  fmt.Sprintf("list topic %q", topic),
		Err: err,
	}
}
