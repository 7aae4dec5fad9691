package resilience

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

// BackoffStrategy selects how retry delays grow across attempts.
type BackoffStrategy string

const (
	BackoffExponential BackoffStrategy = "exponential"
	BackoffLinear      BackoffStrategy = "linear"
	BackoffFixed       BackoffStrategy = "fixed"
)

// RetryConfig configures the retry loop for one class of errors.
type RetryConfig struct {
	MaxAttempts     int             `mapstructure:"max_attempts" yaml:"max_attempts"`
	BaseDelay       time.Duration   `mapstructure:"base_delay" yaml:"base_delay"`
	MaxDelay        time.Duration   `mapstructure:"max_delay" yaml:"max_delay"`
	ExponentialBase float64         `mapstructure:"exponential_base" yaml:"exponential_base"`
	Jitter          bool            `mapstructure:"jitter" yaml:"jitter"`
	Strategy        BackoffStrategy `mapstructure:"strategy" yaml:"strategy"`
}

// DefaultRetryConfig returns the retry configuration used when no kind-specific
// policy is registered.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:     3,
		BaseDelay:       time.Second,
		MaxDelay:        60 * time.Second,
		ExponentialBase: 2.0,
		Jitter:          true,
		Strategy:        BackoffExponential,
	}
}

// Delay computes the backoff delay before the next attempt. attempt is 1-based:
// the delay after the first failed attempt is Delay(1).
func (c RetryConfig) Delay(attempt int) time.Duration {
	var delay time.Duration

	switch c.Strategy {
	case BackoffLinear:
		delay = c.BaseDelay * time.Duration(attempt)
	case BackoffFixed:
		delay = c.BaseDelay
	default:
		delay = time.Duration(float64(c.BaseDelay) * math.Pow(c.ExponentialBase, float64(attempt-1)))
	}

	if delay > c.MaxDelay {
		delay = c.MaxDelay
	}

	if c.Jitter {
		delay = time.Duration(float64(delay) * (0.5 + rand.Float64()*0.5))
	}

	return delay
}

// Retry runs op up to cfg.MaxAttempts times. A non-retryable error propagates
// immediately. A retryable error triggers a backoff sleep and another attempt;
// when attempts exhaust, the last retryable error is surfaced wrapped as
// RETRIES_EXHAUSTED with the original message retained. Errors without a
// retryability tag are treated as non-retryable.
//
// The context is honored during backoff sleeps; cancellation propagates as
// the context error.
func Retry(ctx context.Context, cfg RetryConfig, logger *slog.Logger, op func(context.Context) error) error {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			if attempt > 1 {
				logger.Info("operation succeeded after retry", "attempt", attempt)
			}
			return nil
		}

		if !IsRetryable(err, types.KindOf(err)) {
			return err
		}

		lastErr = err
		if attempt == cfg.MaxAttempts {
			break
		}

		delay := cfg.Delay(attempt)
		logger.Warn("operation failed, retrying",
			"attempt", attempt,
			"max_attempts", cfg.MaxAttempts,
			"delay", delay,
			"error", err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return types.WrapKind(types.RETRIES_EXHAUSTED, types.KindOf(lastErr),
				"retry cancelled", ctx.Err())
		}
	}

	return types.WrapKind(types.RETRIES_EXHAUSTED, types.KindOf(lastErr),
		lastErr.Error(), lastErr)
}
