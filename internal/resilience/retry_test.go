package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/prepwise/interview-engine/internal/errors"
)

func fastRetryConfig(maxAttempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:   maxAttempts,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
		RetryableErrors: func(err error) bool {
			return apperrors.IsRetryableError(err)
		},
	}
}

func TestRetryWithConfig(t *testing.T) {
	t.Run("succeeds on first attempt", func(t *testing.T) {
		attempts := 0
		err := RetryWithConfig(context.Background(), fastRetryConfig(3), func() error {
			attempts++
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("retries retryable errors until success", func(t *testing.T) {
		attempts := 0
		err := RetryWithConfig(context.Background(), fastRetryConfig(3), func() error {
			attempts++
			if attempts < 3 {
				return apperrors.NewProviderError("AssemblyAI", errors.New("transient"))
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("stops immediately on non-retryable errors", func(t *testing.T) {
		attempts := 0
		err := RetryWithConfig(context.Background(), fastRetryConfig(3), func() error {
			attempts++
			return apperrors.NewValidationError("bad payload")
		})

		assert.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("returns last error when attempts are exhausted", func(t *testing.T) {
		attempts := 0
		err := RetryWithConfig(context.Background(), fastRetryConfig(3), func() error {
			attempts++
			return apperrors.NewProviderError("gemini", errors.New("still failing"))
		})

		assert.Error(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := RetryWithConfig(ctx, fastRetryConfig(3), func() error {
			return apperrors.NewProviderError("gemini", errors.New("never reached"))
		})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCalculateDelayBackoff(t *testing.T) {
	config := RetryConfig{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      time.Second,
		BackoffFactor: 2.0,
	}

	assert.Equal(t, 100*time.Millisecond, calculateDelay(config, 0))
	assert.Equal(t, 200*time.Millisecond, calculateDelay(config, 1))
	assert.Equal(t, 400*time.Millisecond, calculateDelay(config, 2))
	assert.Equal(t, time.Second, calculateDelay(config, 5)) // capped
}

func TestPoll(t *testing.T) {
	config := PollConfig{Interval: time.Millisecond, MaxAttempts: 5}

	t.Run("stops when done", func(t *testing.T) {
		attempts := 0
		err := Poll(context.Background(), config, func() (bool, error) {
			attempts++
			return attempts == 3, nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("aborts on error", func(t *testing.T) {
		attempts := 0
		err := Poll(context.Background(), config, func() (bool, error) {
			attempts++
			return false, errors.New("job failed")
		})

		assert.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("times out at the attempt cap", func(t *testing.T) {
		attempts := 0
		err := Poll(context.Background(), config, func() (bool, error) {
			attempts++
			return false, nil
		})

		assert.Error(t, err)
		assert.Equal(t, 5, attempts)
		assert.Contains(t, err.Error(), "polling attempt limit")
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := Poll(ctx, config, func() (bool, error) {
			return false, nil
		})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
