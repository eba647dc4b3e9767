// Package http builds outbound HTTP clients for notifier sinks. Requests are
// retried with exponential backoff and every retry attempt is logged through
// the ctx-aware logger, so a flaky receiver shows up in the session logs.
package http

import (
	"net/http"
	"time"

	"github.com/gabapcia/geyserwatch/internal/pkg/logger"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultRetryWaitMin = 500 * time.Millisecond
	defaultRetryWaitMax = 5 * time.Second
	defaultRetryMax     = 3
)

type config struct {
	timeout      time.Duration
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	retryMax     int
}

// Option customizes a client built by NewClient.
type Option func(*config)

// NewClient returns a retryablehttp.Client ready for notifier use.
//
// Defaults: 10s per attempt, backoff between 500ms and 5s, 3 retries.
// The library's own logger is disabled; retries are reported with
// logger.Warn using the request context instead.
func NewClient(opts ...Option) *retryablehttp.Client {
	cfg := config{
		timeout:      defaultTimeout,
		retryWaitMin: defaultRetryWaitMin,
		retryWaitMax: defaultRetryWaitMax,
		retryMax:     defaultRetryMax,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RequestLogHook = logRetry
	client.HTTPClient.Timeout = cfg.timeout
	client.RetryWaitMin = cfg.retryWaitMin
	client.RetryWaitMax = cfg.retryWaitMax
	client.RetryMax = cfg.retryMax
	return client
}

// logRetry is installed as the RequestLogHook. Attempt 0 is the first try and
// is not logged.
func logRetry(_ retryablehttp.Logger, req *http.Request, attempt int) {
	if attempt == 0 {
		return
	}

	logger.Warn(req.Context(), "retrying http request",
		"http.method", req.Method,
		"http.url", req.URL.Redacted(),
		"retry.attempt", attempt,
	)
}

// WithTimeout bounds a single attempt, not the whole retry sequence.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithRetryWait sets the backoff bounds between attempts.
func WithRetryWait(min, max time.Duration) Option {
	return func(c *config) {
		c.retryWaitMin = min
		c.retryWaitMax = max
	}
}

// WithRetryMax sets how many times a failed request is retried. Zero disables retries.
func WithRetryMax(n int) Option {
	return func(c *config) {
		c.retryMax = n
	}
}
