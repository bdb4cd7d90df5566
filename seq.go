package limq

import (
	"context"
	"io"
)

// Seq is a pull-based lazy sequence. Transform methods wrap the source
// without evaluating it; items are produced only when a terminal method
// (or [Seq.Next]) pulls them. Seq carries no concurrency or failure
// semantics of its own beyond what the underlying source reports.
//
// Sequences are single-consumer: Next and the terminal methods must not
// be called concurrently.
type Seq[T any] struct {
	next func(ctx context.Context) (T, error)
}

// NewSeq creates a sequence from an iterator function. The function
// returns io.EOF when the sequence is exhausted.
func NewSeq[T any](next func(ctx context.Context) (T, error)) *Seq[T] {
	if next == nil {
		panic("limq: NewSeq requires non-nil iterator")
	}
	return &Seq[T]{next: next}
}

// FromSlice creates a sequence over a slice.
func FromSlice[T any](items []T) *Seq[T] {
	var idx int
	return NewSeq(func(ctx context.Context) (T, error) {
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		default:
		}
		if idx >= len(items) {
			var zero T
			return zero, io.EOF
		}
		val := items[idx]
		idx++
		return val, nil
	})
}

// FromChan creates a sequence that pulls from a channel. The sequence
// ends (io.EOF) when the channel is closed, or fails with ctx.Err() if
// ctx ends first.
func FromChan[T any](ch <-chan T) *Seq[T] {
	return NewSeq(func(ctx context.Context) (T, error) {
		select {
		case val, ok := <-ch:
			if !ok {
				var zero T
				return zero, io.EOF
			}
			return val, nil
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	})
}

// Next returns the next item, io.EOF at exhaustion, or the source's
// error.
func (s *Seq[T]) Next(ctx context.Context) (T, error) {
	return s.next(ctx)
}

// Filter returns a sequence that yields only items for which fn is true.
func (s *Seq[T]) Filter(fn func(T) bool) *Seq[T] {
	return &Seq[T]{
		next: func(ctx context.Context) (T, error) {
			for {
				val, err := s.next(ctx)
				if err != nil {
					return val, err
				}
				if fn(val) {
					return val, nil
				}
			}
		},
	}
}

// Take limits the sequence to its first n items.
func (s *Seq[T]) Take(n int) *Seq[T] {
	var idx int
	return &Seq[T]{
		next: func(ctx context.Context) (T, error) {
			if idx >= n {
				var zero T
				return zero, io.EOF
			}
			val, err := s.next(ctx)
			if err != nil {
				return val, err
			}
			idx++
			return val, nil
		},
	}
}

// Skip drops the first n items. Only successful pulls count as skips,
// so a transient source error during the skip phase surfaces to the
// caller and the remaining skips resume on the next pull.
func (s *Seq[T]) Skip(n int) *Seq[T] {
	var skipped int
	return &Seq[T]{
		next: func(ctx context.Context) (T, error) {
			for skipped < n {
				if _, err := s.next(ctx); err != nil {
					var zero T
					return zero, err
				}
				skipped++
			}
			return s.next(ctx)
		},
	}
}

// MapSeq returns a sequence that applies fn to each item. It is a
// package-level function because Go methods cannot introduce type
// parameters.
func MapSeq[T, R any](s *Seq[T], fn func(T) R) *Seq[R] {
	return &Seq[R]{
		next: func(ctx context.Context) (R, error) {
			val, err := s.next(ctx)
			if err != nil {
				var zero R
				return zero, err
			}
			return fn(val), nil
		},
	}
}

// Reduce folds the sequence into a single value. On a source error the
// accumulation so far is returned alongside the error.
func Reduce[T, R any](ctx context.Context, s *Seq[T], initial R, fn func(R, T) R) (R, error) {
	acc := initial
	for {
		val, err := s.next(ctx)
		if err == io.EOF {
			return acc, nil
		}
		if err != nil {
			return acc, err
		}
		acc = fn(acc, val)
	}
}

// ToSlice drains the sequence. On a source error the items collected so
// far are returned alongside the error.
func (s *Seq[T]) ToSlice(ctx context.Context) ([]T, error) {
	var out []T
	for {
		val, err := s.next(ctx)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, val)
	}
}

// ForEach applies fn to each item in order.
func (s *Seq[T]) ForEach(ctx context.Context, fn func(T)) error {
	for {
		val, err := s.next(ctx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		fn(val)
	}
}

// Count drains the sequence and returns the number of items seen before
// exhaustion or error.
func (s *Seq[T]) Count(ctx context.Context) (int, error) {
	var n int
	for {
		_, err := s.next(ctx)
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		n++
	}
}
