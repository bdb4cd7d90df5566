package limq

import "context"

// Map runs fn over every item through a bounded queue and returns the
// results in input order. Concurrency defaults to [DefaultLimit]; pass
// [WithLimit] to widen it.
//
// Map waits for every task to finish. If any task failed, Map returns
// nil and the first error in input order; there is no early
// cancellation of the remaining tasks (the queue never cancels work).
//
// Panics if fn is nil.
func Map[T, R any](
	ctx context.Context,
	items []T,
	fn func(ctx context.Context, item T) (R, error),
	opts ...Option,
) ([]R, error) {
	if fn == nil {
		panic("limq: Map requires non-nil function")
	}

	q := New(ctx, opts...)
	handles := make([]*Result[R], len(items))
	for i, item := range items {
		item := item // capture for Go < 1.22
		handles[i] = Push(q, func(ctx context.Context) (R, error) {
			return fn(ctx, item)
		})
	}

	results := make([]R, len(items))
	var firstErr error
	for i, h := range handles {
		v, err := h.Wait()
		if err != nil && firstErr == nil {
			firstErr = err
		}
		results[i] = v
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// Every applies an asynchronous predicate across items and reports
// whether it held for all of them. All predicates run to completion
// regardless of individual outcomes; the first predicate error in input
// order is returned with false.
func Every[T any](
	ctx context.Context,
	items []T,
	pred func(ctx context.Context, item T) (bool, error),
	opts ...Option,
) (bool, error) {
	oks, err := Map(ctx, items, pred, opts...)
	if err != nil {
		return false, err
	}
	for _, ok := range oks {
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Filter applies an asynchronous predicate across items and returns the
// items for which it resolved true, preserving input order.
func Filter[T any](
	ctx context.Context,
	items []T,
	pred func(ctx context.Context, item T) (bool, error),
	opts ...Option,
) ([]T, error) {
	oks, err := Map(ctx, items, pred, opts...)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(items))
	for i, ok := range oks {
		if ok {
			out = append(out, items[i])
		}
	}
	return out, nil
}
