package sheets

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
)

// RetryPolicy defines how rate-limited calls are retried. Only the
// rate-limit signal is retryable; every other failure propagates on the
// first attempt.
type RetryPolicy struct {
	MaxAttempts  int           // total attempts, including the first
	InitialDelay time.Duration // delay before the second attempt
	MaxDelay     time.Duration // backoff cap
	MaxJitter    time.Duration // uniform random addition per wait
}

// DefaultRetryPolicy matches the quota behavior of the Sheets API: five
// attempts, 1s doubling backoff capped at 15s, up to 250ms jitter.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  5,
		InitialDelay: 1000 * time.Millisecond,
		MaxDelay:     15000 * time.Millisecond,
		MaxJitter:    250 * time.Millisecond,
	}
}

// retrier executes remote calls under a RetryPolicy. sleep and jitter are
// replaceable in tests so the backoff schedule can be observed without
// waiting it out.
type retrier struct {
	policy RetryPolicy
	logger *zap.Logger
	sleep  func(context.Context, time.Duration) error
	jitter func(time.Duration) time.Duration
}

func newRetrier(policy RetryPolicy, logger *zap.Logger) *retrier {
	return &retrier{
		policy: policy,
		logger: logger,
		sleep:  sleepContext,
		jitter: randomJitter,
	}
}

// Do runs fn, retrying on rate-limit failures per the policy. Exhausting
// attempts returns the last failure; any other error returns immediately.
func (r *retrier) Do(ctx context.Context, op string, fn func() error) error {
	delay := r.policy.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !isRateLimited(err) {
			return err
		}
		lastErr = err
		if attempt == r.policy.MaxAttempts {
			break
		}

		wait := delay + r.jitter(r.policy.MaxJitter)
		r.logger.Warn("rate limited, backing off",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait))
		if err := r.sleep(ctx, wait); err != nil {
			return err
		}

		delay *= 2
		if delay > r.policy.MaxDelay {
			delay = r.policy.MaxDelay
		}
	}

	return fmt.Errorf("%s: rate limited after %d attempts: %w", op, r.policy.MaxAttempts, lastErr)
}

// isRateLimited reports whether err is the Sheets API quota signal: HTTP
// 429, or 403 carrying a rate-limit reason.
func isRateLimited(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == 429 {
		return true
	}
	if apiErr.Code == 403 {
		for _, item := range apiErr.Errors {
			if item.Reason == "rateLimitExceeded" || item.Reason == "userRateLimitExceeded" {
				return true
			}
		}
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func randomJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(max)))
}
