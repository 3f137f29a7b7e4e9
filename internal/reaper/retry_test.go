package reaper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryWithExponentialBackoff(t *testing.T) {
	errTransient := errors.New("connection reset")
	fast := []RetryOption{WithBaseDelay(time.Millisecond), WithJitterFactor(0)}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := RetryWithExponentialBackoff(context.Background(), func(context.Context) error {
			calls++
			if calls < 3 {
				return errTransient
			}
			return nil
		}, fast...)
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := RetryWithExponentialBackoff(context.Background(), func(context.Context) error {
			calls++
			return errTransient
		}, append(fast, WithMaxAttempts(2))...)
		assert.ErrorIs(t, err, errTransient)
		assert.Equal(t, 2, calls)
	})

	t.Run("context errors fail fast", func(t *testing.T) {
		calls := 0
		err := RetryWithExponentialBackoff(context.Background(), func(context.Context) error {
			calls++
			return context.DeadlineExceeded
		}, fast...)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled while waiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		err := RetryWithExponentialBackoff(ctx, func(context.Context) error {
			cancel()
			return errTransient
		}, WithBaseDelay(time.Hour))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("invalid options", func(t *testing.T) {
		noop := func(context.Context) error { return nil }
		assert.ErrorIs(t, RetryWithExponentialBackoff(context.Background(), noop, WithMaxAttempts(0)), ErrInvalidMaxAttempts)
		assert.ErrorIs(t, RetryWithExponentialBackoff(context.Background(), noop, WithBaseDelay(-1)), ErrNegativeBaseDelay)
		assert.ErrorIs(t, RetryWithExponentialBackoff(context.Background(), noop, WithJitterFactor(1.5)), ErrInvalidJitterFactor)
	})
}
