package service

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// shared runs fn at most once per key among concurrent callers.
// fn gets a context that keeps the caller's values but not its cancellation, so a caller that
// goes away does not fail the others. Each caller stops waiting when its own ctx ends.
func shared[T any](ctx context.Context, g *singleflight.Group, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	flightCtx := context.WithoutCancel(ctx)
	ch := g.DoChan(key, func() (any, error) {
		return fn(flightCtx)
	})

	var zero T
	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
