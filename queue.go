package limq

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// task is one admitted submission: its ticket plus the type-erased body.
type task struct {
	ref TaskRef
	run func(ctx context.Context) (any, error)
}

// binding is the settlement side of a submission's handle. It is recorded
// under the task's ticket at push time and released exactly once, at
// settlement. A task reaching the scheduler without a binding means the
// queue's own bookkeeping is corrupted.
type binding struct {
	settle func(val any, err error)
}

// Queue is a bounded-concurrency FIFO task scheduler. Submissions are
// admitted via [Push], held in insertion order, and started as slots
// free up, with at most the configured limit executing simultaneously.
//
// The queue never cancels a running task. [Queue.Clear] discards tasks
// that have not started; their handles are never settled.
type Queue struct {
	ctx context.Context
	cfg config

	mu       sync.Mutex
	pending  []*task
	running  map[TaskRef]struct{}
	bindings map[uint64]*binding

	nextID    atomic.Uint64
	submitted atomic.Int64
	completed atomic.Int64
	errored   atomic.Int64
}

// QueueStats provides a point-in-time snapshot of queue activity.
type QueueStats struct {
	Submitted int64 // total tasks pushed
	Completed int64 // tasks finished (success + error + panic)
	Errored   int64 // tasks whose handle settled with an error
	Running   int   // tasks currently executing
	Pending   int   // tasks admitted but not yet started
	Limit     int   // concurrency limit (fixed at creation)
}

// New creates a queue. Tasks receive ctx as their execution context; the
// queue itself keeps accepting and starting work until its owner stops
// pushing, so a caller that wants tasks to observe shutdown should pass
// a cancellable ctx.
func New(ctx context.Context, opts ...Option) *Queue {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	q := &Queue{
		ctx:      ctx,
		cfg:      cfg,
		running:  make(map[TaskRef]struct{}),
		bindings: make(map[uint64]*binding),
	}

	// Start metrics ticker if configured.
	if cfg.onMetrics != nil {
		go func() {
			ticker := time.NewTicker(cfg.metricsInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					cfg.onMetrics(q.Stats())
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	return q
}

// Push submits fn to the queue and returns its handle immediately. Push
// never blocks and never fails; the scheduler decides when fn starts.
// The handle settles exactly once, with fn's return value or its error,
// independent of every other task's outcome.
//
// Each call mints a fresh [TaskRef]: pushing the same function value
// twice yields two independent submissions.
//
// Panics if fn is nil.
func Push[T any](q *Queue, fn func(ctx context.Context) (T, error)) *Result[T] {
	if fn == nil {
		panic("limq: Push requires non-nil task")
	}

	ref := TaskRef{
		id:   q.nextID.Add(1),
		name: funcName(fn),
	}
	r := newResult[T](ref)

	t := &task{
		ref: ref,
		run: func(ctx context.Context) (any, error) {
			return fn(ctx)
		},
	}
	b := &binding{
		settle: func(val any, err error) {
			if err != nil {
				r.reject(err)
				return
			}
			v, _ := val.(T)
			r.resolve(v)
		},
	}

	q.mu.Lock()
	q.bindings[ref.id] = b
	q.pending = append(q.pending, t)
	// Counted under the lock so a concurrent Stats never observes a
	// pending task that is not yet in Submitted.
	q.submitted.Add(1)
	q.mu.Unlock()

	q.dispatch()
	return r
}

// dispatch is the scheduler: it runs after every push and after every
// settlement, admitting pending tasks in FIFO order while slots are
// free. The mutex serializes dispatch passes, so a pass never runs
// concurrently with itself or with other queue mutations.
func (q *Queue) dispatch() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.running) < q.cfg.limit && len(q.pending) > 0 {
		t := q.pending[0]
		q.pending[0] = nil // release for GC
		q.pending = q.pending[1:]

		if _, ok := q.bindings[t.ref.id]; !ok {
			// A dequeued task must always have a binding; anything else
			// is a double-dequeue or similar bookkeeping corruption.
			panic(fmt.Sprintf("limq: no result binding recorded for task %s", t.ref))
		}

		q.running[t.ref] = struct{}{}
		go q.execute(t)
	}
}

func (q *Queue) execute(t *task) {
	if q.cfg.onStart != nil {
		q.cfg.onStart(t.ref)
	}

	start := time.Now()
	var (
		val any
		err error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = newPanicError(r)
			}
		}()
		val, err = t.run(q.ctx)
	}()
	elapsed := time.Since(start)

	q.mu.Lock()
	b := q.bindings[t.ref.id]
	delete(q.bindings, t.ref.id)
	delete(q.running, t.ref)
	q.mu.Unlock()

	if b == nil {
		panic(fmt.Sprintf("limq: task %s finished without a recorded binding", t.ref))
	}

	q.completed.Add(1)
	if err != nil {
		q.errored.Add(1)
	}
	b.settle(val, err)

	if q.cfg.onDone != nil {
		// onDone runs after settlement so hooks observe final state.
		q.cfg.onDone(t.ref, err, elapsed)
	}

	q.dispatch()
}

// Clear atomically drops every pending task. Tasks already running are
// unaffected and still settle their handles. Dropped tasks never start
// and their handles are never settled by the queue; use
// [Result.WaitContext] if a caller may be holding such a handle.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, t := range q.pending {
		delete(q.bindings, t.ref.id)
	}
	q.pending = nil
}

// Running returns a snapshot of the refs of currently-executing tasks,
// ordered by submission ID. The slice is an independent copy; mutating
// it does not affect the queue.
func (q *Queue) Running() []TaskRef {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]TaskRef, 0, len(q.running))
	for ref := range q.running {
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Stats returns a point-in-time snapshot of queue activity.
// Safe to call concurrently.
func (q *Queue) Stats() QueueStats {
	q.mu.Lock()
	pending := len(q.pending)
	running := len(q.running)
	q.mu.Unlock()

	return QueueStats{
		Submitted: q.submitted.Load(),
		Completed: q.completed.Load(),
		Errored:   q.errored.Load(),
		Running:   running,
		Pending:   pending,
		Limit:     q.cfg.limit,
	}
}
