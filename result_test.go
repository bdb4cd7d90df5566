package limq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultSettleOnce(t *testing.T) {
	r := newResult[int](TaskRef{id: 1, name: "one"})
	require.False(t, r.Settled())

	r.resolve(10)
	r.reject(errors.New("too late"))
	r.resolve(99)

	v, err := r.Wait()
	assert.NoError(t, err, "later settlement attempts must be discarded")
	assert.Equal(t, 10, v, "first settlement wins")
	assert.True(t, r.Settled())
}

func TestResultRejectFirst(t *testing.T) {
	sentinel := errors.New("failed")
	r := newResult[int](TaskRef{id: 2, name: "two"})

	r.reject(sentinel)
	r.resolve(5)

	v, err := r.Wait()
	assert.ErrorIs(t, err, sentinel)
	assert.Zero(t, v)
}

func TestResultDone(t *testing.T) {
	r := newResult[string](TaskRef{})

	select {
	case <-r.Done():
		t.Fatal("Done must not be closed before settlement")
	default:
	}

	r.resolve("ok")

	select {
	case <-r.Done():
	case <-time.After(time.Second):
		t.Fatal("Done should be closed after settlement")
	}
}

func TestResultWaitContext(t *testing.T) {
	r := newResult[int](TaskRef{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := r.WaitContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The handle itself is unaffected and can still settle.
	r.resolve(3)
	v, err := r.WaitContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestTaskRefString(t *testing.T) {
	assert.Equal(t, "fetch#3", TaskRef{id: 3, name: "fetch"}.String())
	assert.Equal(t, "fetch", TaskRef{name: "fetch"}.String(),
		"refs without an ID (timeout wrappers) print bare names")
}

func TestFuncName(t *testing.T) {
	assert.Equal(t, "slowLookup", funcName(slowLookup))
	assert.Equal(t, "anonymous", funcName(42), "non-functions fall back to the anonymous marker")
	assert.NotEmpty(t, funcName(func(ctx context.Context) (int, error) { return 0, nil }))
}
