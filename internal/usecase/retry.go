package usecase

import (
	"context"
	"time"

	"identity-service/pkg/utils"
)

// SleepFunc suspends the caller for the given duration, aborting early when
// the context is done. Tests inject a recording fake.
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryPolicy controls the profile writer's bounded retry loop.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
	Sleep       SleepFunc
}

// LinearBackoff returns attempt*base, so with a 1s base the delays before
// attempts 2..5 are 1s, 2s, 3s, 4s.
func LinearBackoff(base time.Duration) func(attempt int) time.Duration {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * base
	}
}

func NewRetryPolicy(config utils.ProfileRetryConfig) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: config.MaxAttempts,
		Backoff:     LinearBackoff(config.BaseDelay),
		Sleep:       sleepContext,
	}
}

// sleepContext is a timer-based suspend, not a busy wait, so one stuck
// registration never blocks others.
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
