// Package retry wraps read-side AWS calls with exponential backoff on
// API throttling. Mutating calls are never routed through here: a
// failed update is reported and re-evaluated on the next scheduled run.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/smithy-go"
)

// Config holds backoff configuration
type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

// Option customises the backoff configuration
type Option func(*Config)

// WithMaxAttempts overrides the attempt count
func WithMaxAttempts(n int) Option {
	return func(c *Config) { c.MaxAttempts = n }
}

// WithInitialDelay overrides the first backoff delay
func WithInitialDelay(d time.Duration) Option {
	return func(c *Config) { c.InitialDelay = d }
}

// OnThrottle runs op, retrying only throttling errors. Defaults match
// the platform guidance: three attempts with 1s, 2s, 4s waits.
// Context cancellation is respected between attempts.
func OnThrottle(ctx context.Context, op func() error, opts ...Option) error {
	cfg := &Config{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	delay := cfg.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !IsThrottle(lastErr) {
			return lastErr
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("cancelled after %d attempts: %w", attempt, ctx.Err())
		case <-time.After(delay):
			delay *= 2
		}
	}

	return fmt.Errorf("throttled after %d attempts: %w", cfg.MaxAttempts, lastErr)
}

// IsThrottle reports whether err is an AWS API throttling error
func IsThrottle(err error) bool {
	var ae smithy.APIError
	if !errors.As(err, &ae) {
		return false
	}
	switch ae.ErrorCode() {
	case "ThrottlingException", "TooManyRequestsException", "RequestLimitExceeded", "Throttling":
		return true
	}
	return false
}
