// Package limq provides small, composable primitives for driving
// asynchronous work: a bounded-concurrency FIFO task queue and a
// deadline wrapper that races an operation against a timer.
//
// # Bounded Queue
//
// A [Queue] admits tasks via [Push] and runs at most a fixed number of
// them simultaneously. Push never blocks: it records the task, returns
// a [Result] handle immediately, and leaves the start decision to the
// scheduler. Pending tasks start in strict submission order as running
// tasks free slots.
//
//	q := limq.New(ctx, limq.WithLimit(4))
//	r := limq.Push(q, func(ctx context.Context) (string, error) {
//	    return fetch(ctx, url)
//	})
//	body, err := r.Wait()
//
// Each handle settles exactly once, with the task's value or its error.
// One task's failure never affects its siblings or the queue. A panic in
// a task body is captured as a [*PanicError] and settles only that
// task's handle.
//
// [Queue.Clear] drops tasks that have not started; already-running tasks
// are unaffected. Dropped handles are never settled, so callers that may
// hold one should wait with [Result.WaitContext] rather than
// [Result.Wait]. The queue never cancels a running task.
//
// # Deadline Wrapper
//
// [WithTimeout] bounds how long a caller waits for an asynchronous
// operation:
//
//	guarded := limq.WithTimeout(slowLookup, 50*time.Millisecond)
//	v, err := guarded(ctx).Wait() // *TimeoutError after 50ms
//
// The wrapper races the operation against a timer and forwards whichever
// finishes first; the loser is discarded. Timing out means the caller
// stops waiting, not that the operation stops executing. With
// [WithSilentTimeout] the expiry path abandons the handle unsettled
// instead of rejecting it.
//
// The two primitives compose: a queue task's function can itself be a
// [WithTimeout]-wrapped call, and a pushed handle can be awaited under a
// caller-side deadline via [Result.WaitContext].
//
// # Batch Helpers
//
// [Map], [Every], and [Filter] are thin conveniences that drive a fixed
// slice of inputs through a bounded queue: Map collects results in input
// order, Every reduces an asynchronous predicate to a boolean, and
// Filter keeps the items whose predicate held.
//
// # Lazy Sequences
//
// [Seq] provides pull-based lazy transforms (Filter, Take, Skip,
// [MapSeq]) over an iteration source, with [Reduce], ToSlice, ForEach,
// and Count as terminals. Sequences carry no concurrency semantics;
// they end with io.EOF and are single-consumer.
//
// # Observability
//
// [Queue.Stats] returns counter snapshots; [WithOnStart] and
// [WithOnDone] register per-task lifecycle hooks; [WithMetrics] emits
// periodic [QueueStats] until the queue's context ends.
package limq
