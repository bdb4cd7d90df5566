package limq

import "time"

// DefaultLimit is the concurrency limit a [Queue] uses when [WithLimit]
// is not given.
const DefaultLimit = 2

type config struct {
	limit           int
	onStart         func(TaskRef)
	onDone          func(TaskRef, error, time.Duration)
	onMetrics       func(QueueStats)
	metricsInterval time.Duration
}

func defaultConfig() config {
	return config{limit: DefaultLimit}
}

// Option configures a [Queue].
type Option func(*config)

// WithLimit sets the maximum number of tasks the queue may run
// simultaneously. The default is [DefaultLimit].
//
// Panics if n < 1.
func WithLimit(n int) Option {
	if n < 1 {
		panic("limq: WithLimit requires n >= 1")
	}
	return func(c *config) {
		c.limit = n
	}
}

// WithOnStart registers a hook invoked when each task begins executing.
// The hook runs inside the task's goroutine before the task function.
func WithOnStart(fn func(TaskRef)) Option {
	return func(c *config) {
		c.onStart = fn
	}
}

// WithOnDone registers a hook invoked after each task settles its handle.
// The hook receives the task's error (nil on success) and wall-clock
// duration. It runs inside the task's goroutine.
func WithOnDone(fn func(TaskRef, error, time.Duration)) Option {
	return func(c *config) {
		c.onDone = fn
	}
}

// WithMetrics registers a periodic stats callback that fires every
// interval with a [QueueStats] snapshot. The ticker goroutine stops when
// the queue's context ends.
//
// Panics if interval <= 0 or fn is nil.
func WithMetrics(interval time.Duration, fn func(QueueStats)) Option {
	if interval <= 0 {
		panic("limq: WithMetrics requires interval > 0")
	}
	if fn == nil {
		panic("limq: WithMetrics requires non-nil callback")
	}
	return func(c *config) {
		c.onMetrics = fn
		c.metricsInterval = interval
	}
}
