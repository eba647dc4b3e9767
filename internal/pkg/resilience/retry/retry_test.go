package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fast(opts ...Option) Retry {
	return New(append([]Option{WithDelay(time.Millisecond), WithMaxDelay(2 * time.Millisecond)}, opts...)...)
}

func TestNew(t *testing.T) {
	r, ok := New().(*retrier)
	require.True(t, ok)

	assert.Equal(t, uint(3), r.cfg.attempts)
	assert.Equal(t, time.Second, r.cfg.delay)
	assert.Equal(t, 5*time.Second, r.cfg.maxDelay)
	assert.True(t, r.cfg.lastErrOnly)
	assert.Nil(t, r.cfg.retryIf)
}

func TestOptions(t *testing.T) {
	var cfg config

	WithAttempts(7)(&cfg)
	WithDelay(250 * time.Millisecond)(&cfg)
	WithMaxDelay(3 * time.Second)(&cfg)
	WithLastErrorOnly(false)(&cfg)
	WithRetryIf(func(error) bool { return false })(&cfg)

	assert.Equal(t, uint(7), cfg.attempts)
	assert.Equal(t, 250*time.Millisecond, cfg.delay)
	assert.Equal(t, 3*time.Second, cfg.maxDelay)
	assert.False(t, cfg.lastErrOnly)
	require.NotNil(t, cfg.retryIf)
	assert.False(t, cfg.retryIf(errors.New("x")))
}

func TestRetrier_Execute(t *testing.T) {
	t.Run("succeeds on the first attempt", func(t *testing.T) {
		calls := 0

		err := fast().Execute(t.Context(), func() error {
			calls++
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		calls := 0

		err := fast(WithAttempts(3)).Execute(t.Context(), func() error {
			calls++
			if calls < 3 {
				return errors.New("unavailable")
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns the last error when exhausted", func(t *testing.T) {
		calls := 0
		last := errors.New("attempt 3")

		err := fast(WithAttempts(3)).Execute(t.Context(), func() error {
			calls++
			if calls == 3 {
				return last
			}
			return errors.New("earlier attempt")
		})

		assert.ErrorIs(t, err, last)
		assert.Equal(t, 3, calls)
	})

	t.Run("joins every error when asked to", func(t *testing.T) {
		first := errors.New("first")
		second := errors.New("second")
		errs := []error{first, second}
		calls := 0

		err := fast(WithAttempts(2), WithLastErrorOnly(false)).Execute(t.Context(), func() error {
			e := errs[calls]
			calls++
			return e
		})

		assert.ErrorIs(t, err, first)
		assert.ErrorIs(t, err, second)
	})

	t.Run("stops on errors the predicate rejects", func(t *testing.T) {
		permanent := errors.New("unauthenticated")
		calls := 0

		err := fast(
			WithAttempts(5),
			WithRetryIf(func(err error) bool { return !errors.Is(err, permanent) }),
		).Execute(t.Context(), func() error {
			calls++
			return permanent
		})

		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		calls := 0

		err := New(WithAttempts(10), WithDelay(50*time.Millisecond)).Execute(ctx, func() error {
			calls++
			cancel()
			return errors.New("unavailable")
		})

		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}
