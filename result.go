package limq

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"sync"
)

// TaskRef is the ticket identifying a single submission. Every push mints
// a fresh ref, so submitting the same function twice yields two distinct
// refs with independent handles. TaskRef is comparable and can be used as
// a map key.
type TaskRef struct {
	id   uint64
	name string
}

// ID returns the submission's generated sequence number. IDs are unique
// within a Queue and never reused.
func (t TaskRef) ID() uint64 { return t.id }

// Name returns the task function's name, or "anonymous" if it could not
// be determined.
func (t TaskRef) Name() string { return t.name }

func (t TaskRef) String() string {
	if t.id == 0 {
		return t.name
	}
	return fmt.Sprintf("%s#%d", t.name, t.id)
}

// Result is a one-shot settlement handle for an asynchronous task.
// It settles exactly once, with either a value or an error, and never
// transitions again. Create one via [Push] or a [WithTimeout]-wrapped call.
//
// A Result may legitimately never settle: [Queue.Clear] drops pending
// tasks without settling their handles, and [WithSilentTimeout] abandons
// the handle on expiry. Use [Result.WaitContext] or [Result.Done] when
// waiting on such a handle.
type Result[T any] struct {
	ref  TaskRef
	once sync.Once
	done chan struct{}
	val  T
	err  error
}

func newResult[T any](ref TaskRef) *Result[T] {
	return &Result[T]{
		ref:  ref,
		done: make(chan struct{}),
	}
}

// resolve settles the handle with a value. First settle wins; later
// attempts are discarded.
func (r *Result[T]) resolve(v T) {
	r.once.Do(func() {
		r.val = v
		close(r.done)
	})
}

// reject settles the handle with an error.
func (r *Result[T]) reject(err error) {
	r.once.Do(func() {
		r.err = err
		close(r.done)
	})
}

// Wait blocks until the handle settles and returns the task's outcome.
// It blocks forever on a handle that never settles; prefer
// [Result.WaitContext] when that is possible.
func (r *Result[T]) Wait() (T, error) {
	<-r.done
	return r.val, r.err
}

// WaitContext blocks until the handle settles or ctx ends, whichever
// comes first. On cancellation it returns the zero value and ctx.Err();
// the handle itself is unaffected and may still settle later.
func (r *Result[T]) WaitContext(ctx context.Context) (T, error) {
	select {
	case <-r.done:
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel that is closed when the handle settles.
func (r *Result[T]) Done() <-chan struct{} {
	return r.done
}

// Settled reports whether the handle has settled.
func (r *Result[T]) Settled() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Task returns the ref minted for this submission. For handles produced
// by [WithTimeout] the ref carries the wrapped function's name and a
// zero ID.
func (r *Result[T]) Task() TaskRef {
	return r.ref
}

// funcName resolves a function value's short name for diagnostics,
// falling back to "anonymous" when the runtime has nothing useful.
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return "anonymous"
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return "anonymous"
	}

	name := rf.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "anonymous"
	}
	return name
}
