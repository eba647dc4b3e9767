// Package retry runs operations under an exponential backoff policy. It wraps
// avast/retry-go behind a small interface so callers can hold a policy value
// and tests can swap it out.
//
// Every failed attempt that will be retried is logged at warn level with the
// context passed to Execute, so retries carry the caller's session fields.
//
//	r := retry.New(
//	    retry.WithAttempts(5),
//	    retry.WithRetryIf(isTransient),
//	)
//	err := r.Execute(ctx, openStream)
package retry

import (
	"context"
	"time"

	"github.com/gabapcia/geyserwatch/internal/pkg/logger"

	retry "github.com/avast/retry-go/v4"
)

// Retry executes an operation until it succeeds, the policy gives up, or
// ctx is done. Operations must be safe to run more than once.
type Retry interface {
	Execute(ctx context.Context, operation func() error) error
}

type config struct {
	attempts    uint
	delay       time.Duration
	maxDelay    time.Duration
	lastErrOnly bool
	retryIf     func(error) bool
}

type Option func(*config)

type retrier struct {
	cfg config
}

var _ Retry = (*retrier)(nil)

// New returns a policy with the given options applied over the defaults:
// 3 attempts, 1s base delay doubling up to 5s, only the last error returned
// and every error considered retryable.
func New(opts ...Option) Retry {
	cfg := config{
		attempts:    3,
		delay:       1 * time.Second,
		maxDelay:    5 * time.Second,
		lastErrOnly: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{
		cfg: cfg,
	}
}

// Execute runs operation immediately and then after each backoff delay.
// An error rejected by the WithRetryIf predicate is returned at once.
func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	options := []retry.Option{
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(r.cfg.lastErrOnly),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn(ctx, "attempt failed, retrying",
				"retry.attempt", n+1,
				"retry.max_attempts", r.cfg.attempts,
				"error", err,
			)
		}),
	}

	if r.cfg.retryIf != nil {
		options = append(options, retry.RetryIf(r.cfg.retryIf))
	}

	return retry.Do(operation, options...)
}

// WithAttempts sets the total number of attempts, the first one included.
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the delay before the first retry. Later delays double.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the backoff delay.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithLastErrorOnly controls whether Execute returns only the final error
// or every attempt's error joined together.
func WithLastErrorOnly(b bool) Option {
	return func(c *config) {
		c.lastErrOnly = b
	}
}

// WithRetryIf restricts retries to errors for which fn reports true.
func WithRetryIf(fn func(error) bool) Option {
	return func(c *config) {
		c.retryIf = fn
	}
}
