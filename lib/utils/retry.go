package utils

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gravitational/trace"
	"github.com/jonboulle/clockwork"
)

// Retry paces repeated attempts of an operation. Implementations are
// not safe for concurrent use; a retry belongs to one loop.
type Retry interface {
	// Inc advances to the next attempt, growing the delay.
	Inc()
	// Reset rewinds the delay to the first-attempt value.
	Reset()
	// Duration reports the current delay. Zero means no wait.
	Duration() time.Duration
	// After fires after Duration. A zero duration yields a channel
	// that is already closed, so the first attempt is not delayed.
	After() <-chan time.Time
}

// LinearConfig parameterizes a delay that grows by Step per attempt
// from First up to Max.
type LinearConfig struct {
	// First is the delay before the first attempt. Zero fires the
	// attempt immediately.
	First time.Duration
	// Step is added to the delay on every Inc. Required.
	Step time.Duration
	// Max caps the delay. Required.
	Max time.Duration
	// Clock drives the timers. Defaults to the real clock.
	Clock clockwork.Clock
}

func (c *LinearConfig) checkAndSetDefaults() error {
	if c.Step == 0 {
		return trace.BadParameter("missing parameter Step")
	}
	if c.Max == 0 {
		return trace.BadParameter("missing parameter Max")
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	return nil
}

// Linear grows its delay arithmetically. The zero value is not usable,
// construct it with NewLinear.
type Linear struct {
	cfg   LinearConfig
	delay time.Duration
	fired chan time.Time
}

// NewLinear returns a linear retry on cfg.
func NewLinear(cfg LinearConfig) (*Linear, error) {
	if err := cfg.checkAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}

	fired := make(chan time.Time)
	close(fired)

	return &Linear{cfg: cfg, delay: cfg.First, fired: fired}, nil
}

// NewConstant returns a retry with the same delay on every attempt.
func NewConstant(interval time.Duration) (*Linear, error) {
	return NewLinear(LinearConfig{First: interval, Step: interval, Max: interval})
}

// Inc advances the delay by one Step, clamped at Max.
func (r *Linear) Inc() {
	r.delay += r.cfg.Step
	if r.delay > r.cfg.Max {
		r.delay = r.cfg.Max
	}
}

// Reset rewinds the delay to First.
func (r *Linear) Reset() {
	r.delay = r.cfg.First
}

// Duration reports the current delay.
func (r *Linear) Duration() time.Duration {
	return r.delay
}

// After fires once the current delay elapses. A zero delay returns a
// closed channel so callers select through without blocking.
func (r *Linear) After() <-chan time.Time {
	if r.delay <= 0 {
		return r.fired
	}

	return r.cfg.Clock.After(r.delay)
}

// For runs retryFn until it returns nil, a permanent error, or ctx
// expires. Context expiry surfaces as a limit-exceeded error so
// callers can tell an exhausted loop from the operation's own
// failures.
func (r *Linear) For(ctx context.Context, retryFn func() error) error {
	for {
		err := retryFn()
		if err == nil {
			return nil
		}

		var permanent *permanentRetryError
		if errors.As(err, &permanent) {
			return trace.Wrap(err)
		}

		slog.DebugContext(ctx, "Operation failed, retrying",
			"delay", r.Duration(), "error", err)

		select {
		case <-r.After():
			r.Inc()
		case <-ctx.Done():
			return trace.LimitExceeded("%s", ctx.Err().Error())
		}
	}
}

// PermanentRetryError marks err as not worth retrying. Retry.For
// stops and returns it on first sight.
func PermanentRetryError(err error) error {
	return &permanentRetryError{err: err}
}

type permanentRetryError struct {
	err error
}

func (e *permanentRetryError) Error() string {
	return e.err.Error()
}

func (e *permanentRetryError) Unwrap() error {
	return e.err
}
