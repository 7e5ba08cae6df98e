package utils

import (
	"context"
	"testing"
	"time"

	"github.com/gravitational/trace"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func TestLinearRetry(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	r, err := NewLinear(LinearConfig{
		Step:  time.Second,
		Max:   3 * time.Second,
		Clock: clock,
	})
	require.NoError(t, err)

	// First attempt fires immediately.
	require.Equal(t, time.Duration(0), r.Duration())
	select {
	case <-r.After():
	default:
		t.Fatal("expected closed channel on zero duration")
	}

	r.Inc()
	require.Equal(t, time.Second, r.Duration())
	r.Inc()
	require.Equal(t, 2*time.Second, r.Duration())

	// Progression caps at Max.
	for i := 0; i < 5; i++ {
		r.Inc()
	}
	require.Equal(t, 3*time.Second, r.Duration())

	r.Reset()
	require.Equal(t, time.Duration(0), r.Duration())
}

func TestConstantRetry(t *testing.T) {
	t.Parallel()

	r, err := NewConstant(10 * time.Second)
	require.NoError(t, err)

	require.Equal(t, 10*time.Second, r.Duration())
	r.Inc()
	r.Inc()
	require.Equal(t, 10*time.Second, r.Duration())
}

func TestLinearConfigValidation(t *testing.T) {
	t.Parallel()

	_, err := NewLinear(LinearConfig{Max: time.Second})
	require.True(t, trace.IsBadParameter(err))

	_, err = NewLinear(LinearConfig{Step: time.Second})
	require.True(t, trace.IsBadParameter(err))
}

func TestRetryFor(t *testing.T) {
	t.Parallel()

	r, err := NewLinear(LinearConfig{First: time.Microsecond, Step: time.Microsecond, Max: time.Millisecond})
	require.NoError(t, err)

	attempts := 0
	err = r.For(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return trace.ConnectionProblem(nil, "not yet")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, attempts)
}

func TestRetryForPermanentError(t *testing.T) {
	t.Parallel()

	r, err := NewLinear(LinearConfig{Step: time.Second, Max: time.Second})
	require.NoError(t, err)

	attempts := 0
	err = r.For(context.Background(), func() error {
		attempts++
		return PermanentRetryError(trace.AccessDenied("no"))
	})
	require.Error(t, err)
	require.Equal(t, 1, attempts)
}

func TestRetryForContextCanceled(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	r, err := NewLinear(LinearConfig{First: time.Minute, Step: time.Minute, Max: time.Hour, Clock: clock})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- r.For(ctx, func() error {
			return trace.ConnectionProblem(nil, "still down")
		})
	}()

	cancel()
	select {
	case err := <-done:
		require.True(t, trace.IsLimitExceeded(err))
	case <-time.After(5 * time.Second):
		t.Fatal("retry loop did not stop on canceled context")
	}
}
