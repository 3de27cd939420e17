package services

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Outcome is the settled result of one task.
type Outcome[T any] struct {
	Value T
	Err   error
}

// SettleBoth runs a and b concurrently and waits for both. A failure on one
// side never cancels or discards the other.
func SettleBoth[A, B any](
	ctx context.Context,
	a func(context.Context) (A, error),
	b func(context.Context) (B, error),
) (Outcome[A], Outcome[B]) {
	var (
		g  errgroup.Group
		oa Outcome[A]
		ob Outcome[B]
	)

	g.Go(func() error {
		oa.Value, oa.Err = a(ctx)
		return nil
	})
	g.Go(func() error {
		ob.Value, ob.Err = b(ctx)
		return nil
	})
	_ = g.Wait()

	return oa, ob
}
