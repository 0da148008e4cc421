package report

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// result wraps one row's outcome with its position in the address table.
type result[T any] struct {
	Index int
	Value T
	Err   error
}

// collect runs fn for each item with at most limit calls in flight and
// returns results in item order, not completion order. With limit 1 the
// items are processed strictly one after another.
//
// Failures do not stop the remaining items; each is recorded in its result.
func collect[E, T any](ctx context.Context, items []E, limit int, fn func(ctx context.Context, item E) (T, error)) []result[T] {
	if limit < 1 {
		limit = 1
	}
	results := make([]result[T], len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, item := range items {
		g.Go(func() error {
			val, err := fn(gctx, item)
			results[i] = result[T]{Index: i, Value: val, Err: err}
			return nil // don't fail-fast; collect all results
		})
	}

	_ = g.Wait()
	return results
}
