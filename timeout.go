package limq

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultTimeout is the conventional deadline for [WithTimeout] callers
// that have no specific budget in mind.
const DefaultTimeout = 5 * time.Second

// TimeoutError is the error a [WithTimeout]-wrapped call settles with
// when the deadline fires first. It is produced only by the timeout
// path; the wrapped function's own errors pass through verbatim.
type TimeoutError struct {
	// Func is the wrapped function's name, or "anonymous" if it could
	// not be determined.
	Func string

	// Timeout is the configured deadline.
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("limq: %s timed out after %s", e.Func, e.Timeout)
}

// IsTimeout reports whether err (or any error in its chain) is a
// [*TimeoutError].
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	var te *TimeoutError
	return errors.As(err, &te)
}

type timeoutConfig struct {
	silent bool
}

// TimeoutOption configures a [WithTimeout] wrapper.
type TimeoutOption func(*timeoutConfig)

// WithSilentTimeout makes the wrapper abandon the handle on expiry
// instead of rejecting it with a [*TimeoutError]: the handle is left
// permanently unsettled, and a late completion of the wrapped function
// is discarded. Callers holding such a handle must not rely on it ever
// settling; wait with [Result.WaitContext] or [Result.Done].
func WithSilentTimeout() TimeoutOption {
	return func(c *timeoutConfig) {
		c.silent = true
	}
}

// WithTimeout wraps fn so each invocation races it against a deadline.
// The returned function starts fn in its own goroutine and immediately
// returns a handle that settles with whichever side finishes first:
//
//   - fn settles before the deadline: its outcome (value or error) is
//     forwarded and the timer is released.
//   - the deadline fires first: the handle is rejected with a
//     [*TimeoutError] carrying fn's name and the configured duration
//     (or abandoned unsettled under [WithSilentTimeout]), and fn's
//     eventual outcome is discarded.
//
// The wrapper never cancels fn's execution. Timing out means the caller
// stops waiting, not that fn stops running; fn keeps the ctx it was
// invoked with, so callers wanting true cancellation should pass a ctx
// with its own deadline.
//
// Panics if fn is nil or timeout <= 0.
func WithTimeout[T any](
	fn func(ctx context.Context) (T, error),
	timeout time.Duration,
	opts ...TimeoutOption,
) func(ctx context.Context) *Result[T] {
	if fn == nil {
		panic("limq: WithTimeout requires non-nil function")
	}
	if timeout <= 0 {
		panic("limq: WithTimeout requires timeout > 0")
	}

	var cfg timeoutConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	name := funcName(fn)

	return func(ctx context.Context) *Result[T] {
		r := newResult[T](TaskRef{name: name})

		type outcome struct {
			val T
			err error
		}
		// Buffered so an abandoned fn can always deliver and exit.
		ch := make(chan outcome, 1)

		go func() {
			v, err := fn(ctx)
			ch <- outcome{val: v, err: err}
		}()

		go func() {
			timer := time.NewTimer(timeout)
			select {
			case out := <-ch:
				timer.Stop()
				if out.err != nil {
					r.reject(out.err)
					return
				}
				r.resolve(out.val)
			case <-timer.C:
				if cfg.silent {
					// Abandoned: the handle never settles, and fn's
					// late outcome stays unread in the buffer.
					return
				}
				r.reject(&TimeoutError{Func: name, Timeout: timeout})
			}
		}()

		return r
	}
}
